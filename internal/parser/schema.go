package parser

import (
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// FieldSpec 规范字段及其解析方式
type FieldSpec struct {
	Field model.Field
	Kind  FieldKind
}

// Schema 一类表格的字段表：列名规则（有序）、字段类型、标识字段与派生字段
type Schema struct {
	Name     model.RecordKind
	Labels   []LabelRule
	Fields   []FieldSpec
	Identity []model.Field
	Layout   Layout
	Derive   func(r *model.Record, today time.Time)
}

// KindOf 字段的解析方式，未声明的字段按文本处理
func (s *Schema) KindOf(f model.Field) FieldKind {
	for _, fs := range s.Fields {
		if fs.Field == f {
			return fs.Kind
		}
	}
	return FieldText
}

// ClientSchema 客户登记表
var ClientSchema = &Schema{
	Name: model.KindClients,
	Labels: []LabelRule{
		{"cliente novo", model.FieldClientName},
		{"nome", model.FieldClientName},
		{"cpf", model.FieldClientCPF},
		{"estado", model.FieldClientState},
		{"cidade", model.FieldClientCity},
		{"responsável da fidelização", model.FieldLoyaltyResponsible},
		{"responsável pela fidelização", model.FieldLoyaltyResponsible},
		{"responsável fidelização", model.FieldLoyaltyResponsible},
		{"ações informadas", model.FieldInformedActions},
		{"situação", model.FieldClientStatus},
		{"pendências", model.FieldPendingItems},
		{"data da procuração", model.FieldPowerOfAttorney},
		{"data do envio da procuração", model.FieldPowerOfAttorneySent},
		{"data limite para cadastro", model.FieldDeadlineRegister},
		{"data limite para análise", model.FieldDeadlineAnalysis},
		{"data limite para petição inicial", model.FieldDeadlinePetition},
		{"data limite para protocolo", model.FieldDeadlineProtocol},
		{"prazo de 20 dias", model.FieldTwentyDayTerm},
		{"quantos dias está atrasado", model.FieldDaysOverdue},
		{"responsável pelo cadastramento", model.FieldRegisterResponsible},
		{"responsável pelo cadastro", model.FieldRegisterResponsible},
		{"responsável", model.FieldRegisterResponsible},
	},
	Fields: []FieldSpec{
		{model.FieldPendingItems, FieldList},
		{model.FieldPowerOfAttorney, FieldDate},
		{model.FieldPowerOfAttorneySent, FieldDate},
		{model.FieldDeadlineRegister, FieldDate},
		{model.FieldDeadlineAnalysis, FieldDate},
		{model.FieldDeadlinePetition, FieldDate},
		{model.FieldDeadlineProtocol, FieldDate},
		{model.FieldDaysOverdue, FieldNumber},
	},
	Identity: []model.Field{model.FieldClientName, model.FieldClientCPF},
	Layout:   Layout{HeaderRow: 0},
	Derive:   deriveDaysOverdue,
}

// FilingSchema 起诉状登记表（第 0 行为标题，第 1 行为表头）
var FilingSchema = &Schema{
	Name: model.KindFilings,
	Labels: []LabelRule{
		{"data", model.FieldFilingDate},
		{"controle de ações analisadas petição inicial", model.FieldFilingDate},
		{"resp. pela análise", model.FieldAnalysisResponsible},
		{"resp. pela petição", model.FieldFilingResponsible},
		{"nome do cliente", model.FieldFilingClient},
		{"ação", model.FieldAction},
		{"localidade", model.FieldLocality},
		{"fase", model.FieldPhase},
		{"observações", model.FieldNotes},
	},
	Fields: []FieldSpec{
		{model.FieldFilingDate, FieldDate},
		{model.FieldAction, FieldCategory},
	},
	Identity: []model.Field{model.FieldFilingClient},
	Layout:   Layout{HeaderRow: 1},
}

// SchemaFor 按记录类型取字段表
func SchemaFor(kind model.RecordKind) (*Schema, bool) {
	switch kind {
	case model.KindClients:
		return ClientSchema, true
	case model.KindFilings:
		return FilingSchema, true
	}
	return nil, false
}

// deriveDaysOverdue 未提供逾期天数时按“协议截止日”计算，按天比较
func deriveDaysOverdue(r *model.Record, today time.Time) {
	if r.Number(model.FieldDaysOverdue) != nil {
		return
	}
	deadline := r.Date(model.FieldDeadlineProtocol)
	if deadline == nil {
		return
	}
	days := DaysBetween(*deadline, today)
	if days < 0 {
		days = 0
	}
	r.Set(model.FieldDaysOverdue, model.NumberValue(float64(days), true))
}

// DaysBetween 两个日期相差的整天数（忽略时刻）
func DaysBetween(from, to time.Time) int {
	a := dateOf(from)
	b := dateOf(to)
	return int(b.Sub(a).Hours() / 24)
}
