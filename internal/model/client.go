package model

import "time"

// 客户登记表字段
const (
	FieldClientName          Field = "nome"
	FieldClientCPF           Field = "cpf"
	FieldClientState         Field = "estado"
	FieldClientCity          Field = "cidade"
	FieldLoyaltyResponsible  Field = "responsavel_fidelizacao"
	FieldInformedActions     Field = "acoes_informadas"
	FieldClientStatus        Field = "situacao"
	FieldPendingItems        Field = "pendencias"
	FieldPowerOfAttorney     Field = "data_procuracao"
	FieldPowerOfAttorneySent Field = "data_envio_procuracao"
	FieldDeadlineRegister    Field = "data_limite_cadastro"
	FieldDeadlineAnalysis    Field = "data_limite_analise"
	FieldDeadlinePetition    Field = "data_limite_peticao"
	FieldDeadlineProtocol    Field = "data_limite_protocolo"
	FieldTwentyDayTerm       Field = "prazo_20_dias"
	FieldDaysOverdue         Field = "dias_atrasado"
	FieldRegisterResponsible Field = "responsavel_cadastramento"
)

// Client 客户登记记录
type Client struct {
	Nome                     string     `json:"nome,omitempty"`
	CPF                      string     `json:"cpf,omitempty"`
	Estado                   string     `json:"estado,omitempty"`
	Cidade                   string     `json:"cidade,omitempty"`
	ResponsavelFidelizacao   string     `json:"responsavelFidelizacao,omitempty"`
	AcoesInformadas          string     `json:"acoesInformadas,omitempty"`
	Situacao                 string     `json:"situacao,omitempty"`
	Pendencias               []string   `json:"pendencias,omitempty"`
	DataProc                 *time.Time `json:"dataProc,omitempty"`
	DataEnvioProc            *time.Time `json:"dataEnvioProc,omitempty"`
	DataLimiteCadastro       *time.Time `json:"dataLimiteCadastro,omitempty"`
	DataLimiteAnalise        *time.Time `json:"dataLimiteAnalise,omitempty"`
	DataLimitePeticao        *time.Time `json:"dataLimitePeticao,omitempty"`
	DataLimiteProtocolo      *time.Time `json:"dataLimiteProtocolo,omitempty"`
	Prazo20Dias              string     `json:"prazo20dias,omitempty"`
	DiasAtrasado             *int       `json:"diasAtrasado,omitempty"`
	ResponsavelCadastramento string     `json:"responsavelCadastramento,omitempty"`

	SourceSheet string `json:"sourceSheet,omitempty"`
	RowNo       int    `json:"rowNo,omitempty"`
}

// ClientFromRecord 由规范记录构造客户
func ClientFromRecord(r *Record) Client {
	c := Client{
		Nome:                     r.String(FieldClientName),
		CPF:                      r.String(FieldClientCPF),
		Estado:                   r.String(FieldClientState),
		Cidade:                   r.String(FieldClientCity),
		ResponsavelFidelizacao:   r.String(FieldLoyaltyResponsible),
		AcoesInformadas:          r.String(FieldInformedActions),
		Situacao:                 r.String(FieldClientStatus),
		Pendencias:               r.List(FieldPendingItems),
		DataProc:                 r.Date(FieldPowerOfAttorney),
		DataEnvioProc:            r.Date(FieldPowerOfAttorneySent),
		DataLimiteCadastro:       r.Date(FieldDeadlineRegister),
		DataLimiteAnalise:        r.Date(FieldDeadlineAnalysis),
		DataLimitePeticao:        r.Date(FieldDeadlinePetition),
		DataLimiteProtocolo:      r.Date(FieldDeadlineProtocol),
		Prazo20Dias:              r.String(FieldTwentyDayTerm),
		ResponsavelCadastramento: r.String(FieldRegisterResponsible),
		SourceSheet:              r.SheetName,
		RowNo:                    r.RowNo,
	}
	if n := r.Number(FieldDaysOverdue); n != nil {
		d := int(*n)
		c.DiasAtrasado = &d
	}
	return c
}
