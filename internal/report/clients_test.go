package report

import (
	"testing"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func intPtr(v int) *int { return &v }

func TestBuildClientReport(t *testing.T) {
	t.Parallel()

	clients := []model.Client{
		{Nome: "Ana", AcoesInformadas: "Cliente NOVO", Estado: "rn", Cidade: "Natal", ResponsavelFidelizacao: "Comercial 1", Pendencias: []string{"RG", "CPF"}},
		{Nome: "Beto", Situacao: "Concluído", Estado: "SP", Cidade: "Natal", ResponsavelCadastramento: "Lia", ResponsavelFidelizacao: "Parceiro X", DiasAtrasado: intPtr(3)},
		{Nome: "Caio", AcoesInformadas: "atualização cadastral", Cidade: "", Pendencias: []string{"RG"}, DiasAtrasado: intPtr(0)},
		{Nome: "Dora", Situacao: "Atualizado", Estado: "BA", Cidade: "Mossoró", ResponsavelCadastramento: "Lia"},
		{Nome: "Eva", AcoesInformadas: "novo", Estado: "MA"},
	}

	r := BuildClientReport(clients)

	if r.Total != 5 || r.Novos != 3 || r.Atualizacoes != 2 || r.Atrasados != 1 {
		t.Fatalf("totals want=5/3/2/1 got=%d/%d/%d/%d", r.Total, r.Novos, r.Atualizacoes, r.Atrasados)
	}
	assertCounts(t, "pendencias", r.Pendencias, []model.CountItem{{Nome: "RG", Total: 2}, {Nome: "CPF", Total: 1}})
	assertCounts(t, "topCidades", r.TopCidades, []model.CountItem{
		{Nome: "Natal", Total: 2}, {Nome: NotInformed, Total: 2}, {Nome: "Mossoró", Total: 1},
	})
	assertCounts(t, "porResponsavel", r.PorResponsavel, []model.CountItem{
		{Nome: "Lia", Total: 2}, {Nome: NotInformed, Total: 2}, {Nome: "Comercial 1", Total: 1},
	})
	assertCounts(t, "fechamentos", r.Fechamentos, []model.CountItem{
		{Nome: "Comercial 1", Total: 1}, {Nome: "Lia", Total: 1}, {Nome: NotInformed, Total: 1},
	})
	if r.Fidelizacao != (LoyaltySplit{Interno: 1, Externo: 1}) {
		t.Fatalf("fidelizacao want=1/1 got=%+v", r.Fidelizacao)
	}
	assertCounts(t, "porEstado", r.PorEstado, []model.CountItem{
		{Nome: "RN", Total: 1}, {Nome: "MA", Total: 1}, {Nome: "RJ", Total: 0}, {Nome: "SP", Total: 1},
	})
}

func TestBuildClientReport_TopCitiesLimit(t *testing.T) {
	t.Parallel()

	var clients []model.Client
	for i := 0; i < 15; i++ {
		clients = append(clients, model.Client{Nome: "c", Cidade: string(rune('A' + i))})
	}
	r := BuildClientReport(clients)
	if len(r.TopCidades) != topCitiesLimit || r.TopCidades[0].Nome != "A" {
		t.Fatalf("topCidades want %d entries starting at A, got %+v", topCitiesLimit, r.TopCidades)
	}
}
