package report

import (
	"strings"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
)

const (
	topCitiesLimit   = 10
	internalLoyalty  = "comercial 1"
	unspecifiedLabel = "Sem especificar"
)

// ComparedStates 新客户按州对比的固定顺序
var ComparedStates = []string{"RN", "MA", "RJ", "SP"}

// LoyaltySplit 新客户的内部/外部维护对比
type LoyaltySplit struct {
	Interno int `json:"interno"`
	Externo int `json:"externo"`
}

// ClientReport 客户登记报告
type ClientReport struct {
	Total          int               `json:"total"`
	Novos          int               `json:"novos"`
	Atualizacoes   int               `json:"atualizacoes"`
	Atrasados      int               `json:"atrasados"`
	Pendencias     []model.CountItem `json:"pendencias"`
	TopCidades     []model.CountItem `json:"topCidades"`
	PorResponsavel []model.CountItem `json:"porResponsavel"`
	Fechamentos    []model.CountItem `json:"fechamentos"`
	Fidelizacao    LoyaltySplit      `json:"fidelizacao"`
	PorEstado      []model.CountItem `json:"porEstado"`
}

// IsNewClient 新客户：informed actions 含 “novo” 或状态含 “concluido”
func IsNewClient(c model.Client) bool {
	return strings.Contains(parser.FoldText(c.AcoesInformadas), "novo") ||
		strings.Contains(parser.FoldText(c.Situacao), "concluido")
}

// IsUpdate 更新登记：任一字段含 “atualiza”
func IsUpdate(c model.Client) bool {
	return strings.Contains(parser.FoldText(c.AcoesInformadas), "atualiza") ||
		strings.Contains(parser.FoldText(c.Situacao), "atualiza")
}

// responsibleOf 登记负责人，其次维护负责人
func responsibleOf(c model.Client) string {
	for _, s := range []string{c.ResponsavelCadastramento, c.ResponsavelFidelizacao} {
		if s = strings.TrimSpace(s); s != "" {
			return s
		}
	}
	return NotInformed
}

// BuildClientReport 构建客户登记报告
func BuildClientReport(clients []model.Client) ClientReport {
	report := ClientReport{Total: len(clients)}

	pending := newCounter()
	cities := newCounter()
	responsible := newCounter()
	closings := newCounter()
	states := newCounter()

	for _, c := range clients {
		for _, p := range c.Pendencias {
			if p = strings.TrimSpace(p); p == "" {
				p = unspecifiedLabel
			}
			pending.add(p)
		}

		city := strings.TrimSpace(c.Cidade)
		if city == "" {
			city = NotInformed
		}
		cities.add(city)
		responsible.add(responsibleOf(c))

		if IsUpdate(c) {
			report.Atualizacoes++
		}
		if c.DiasAtrasado != nil && *c.DiasAtrasado > 0 {
			report.Atrasados++
		}

		if !IsNewClient(c) {
			continue
		}
		report.Novos++
		closings.add(responsibleOf(c))
		states.add(strings.ToUpper(strings.TrimSpace(c.Estado)))

		loyalty := strings.ToLower(strings.TrimSpace(c.ResponsavelFidelizacao))
		switch {
		case loyalty == internalLoyalty:
			report.Fidelizacao.Interno++
		case loyalty != "":
			report.Fidelizacao.Externo++
		}
	}

	report.Pendencias = pending.sorted()
	report.TopCidades = cities.top(topCitiesLimit)
	report.PorResponsavel = responsible.sorted()
	report.Fechamentos = closings.sorted()
	report.PorEstado = make([]model.CountItem, 0, len(ComparedStates))
	for _, uf := range ComparedStates {
		report.PorEstado = append(report.PorEstado, model.CountItem{Nome: uf, Total: states.get(uf)})
	}
	return report
}
