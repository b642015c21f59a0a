package model

import "time"

// 起诉状登记表字段
const (
	FieldFilingDate          Field = "data"
	FieldAnalysisResponsible Field = "resp_analise"
	FieldFilingResponsible   Field = "resp_peticao"
	FieldFilingClient        Field = "nome_cliente"
	FieldAction              Field = "acao"
	FieldLocality            Field = "localidade"
	FieldPhase               Field = "fase"
	FieldNotes               Field = "observacoes"
)

// Filing 起诉状（petição inicial）登记记录
type Filing struct {
	Data        *time.Time `json:"data,omitempty"`
	RespAnalise string     `json:"respAnalise,omitempty"`
	RespPeticao string     `json:"respPeticao,omitempty"`
	NomeCliente string     `json:"nomeCliente,omitempty"`
	Acao        string     `json:"acao,omitempty"`
	Localidade  string     `json:"localidade,omitempty"`
	Fase        string     `json:"fase,omitempty"`
	Observacoes string     `json:"observacoes,omitempty"`

	SourceSheet string `json:"sourceSheet,omitempty"`
	RowNo       int    `json:"rowNo,omitempty"`
}

// FilingFromRecord 由规范记录构造起诉状记录
func FilingFromRecord(r *Record) Filing {
	return Filing{
		Data:        r.Date(FieldFilingDate),
		RespAnalise: r.String(FieldAnalysisResponsible),
		RespPeticao: r.String(FieldFilingResponsible),
		NomeCliente: r.String(FieldFilingClient),
		Acao:        r.String(FieldAction),
		Localidade:  r.String(FieldLocality),
		Fase:        r.String(FieldPhase),
		Observacoes: r.String(FieldNotes),
		SourceSheet: r.SheetName,
		RowNo:       r.RowNo,
	}
}
