package report

import (
	"testing"
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func sampleFilings() []model.Filing {
	return []model.Filing{
		{Data: day(2024, 3, 28), RespAnalise: "Bruna", RespPeticao: "Caio", Acao: "Danos", Localidade: "Natal", Fase: "Inicial"},
		{Data: day(2024, 4, 1), RespAnalise: "Bruna", RespPeticao: "", Acao: "Danos", Localidade: "ESTADUAL", Fase: "Inicial"},
		{Data: day(2024, 4, 2), RespAnalise: "", RespPeticao: "Caio", Acao: "Piso Salarial", Localidade: "Mossoró", Fase: "Recurso"},
		{Data: nil, RespAnalise: "Lia", RespPeticao: "Não informado", Acao: "", Localidade: "Não informado"},
		{Data: day(2024, 4, 5), RespAnalise: "Lia", RespPeticao: "Lia", Acao: "Danos", Localidade: "Natal"},
	}
}

func TestBuildFilingReport_Counters(t *testing.T) {
	t.Parallel()

	r := BuildFilingReport(sampleFilings(), FilingOptions{})

	if r.Total != 5 || r.DistinctPhases != 2 || r.DistinctLocalities != 4 {
		t.Fatalf("totals want=5/2/4 got=%d/%d/%d", r.Total, r.DistinctPhases, r.DistinctLocalities)
	}

	wantAnalysis := []model.CountItem{{Nome: "Bruna", Total: 2}, {Nome: "Lia", Total: 2}, {Nome: NotInformed, Total: 1}, {Nome: TotalLabel, Total: 5}}
	assertCounts(t, "byAnalysis", r.ByAnalysis, wantAnalysis)
	assertCounts(t, "byFiling", r.ByFiling, []model.CountItem{{Nome: "Caio", Total: 2}, {Nome: "Lia", Total: 1}})
	assertCounts(t, "byLocality", r.ByLocality, []model.CountItem{{Nome: "Natal", Total: 2}, {Nome: "Mossoró", Total: 1}})
	assertCounts(t, "byAction", r.ByAction, []model.CountItem{{Nome: "Danos", Total: 3}, {Nome: "Piso Salarial", Total: 1}})

	if len(r.ByMonth) != 2 || r.ByMonth[0] != (MonthCount{Mes: "2024-03", Total: 1}) || r.ByMonth[1] != (MonthCount{Mes: "2024-04", Total: 3}) {
		t.Fatalf("byMonth unexpected: %+v", r.ByMonth)
	}
	if len(r.AnalysisMetrics) != 2 || r.AnalysisMetrics[0].Responsavel != "Bruna" {
		t.Fatalf("analysis metrics unexpected: %+v", r.AnalysisMetrics)
	}
}

func TestBuildFilingReport_DateRangeInclusive(t *testing.T) {
	t.Parallel()

	from := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)
	r := BuildFilingReport(sampleFilings(), FilingOptions{From: &from, To: &to})

	if r.Total != 2 {
		t.Fatalf("filtered total want=2 got=%d", r.Total)
	}
	last := r.ByAnalysis[len(r.ByAnalysis)-1]
	if last.Nome != TotalLabel || last.Total != 2 {
		t.Fatalf("TOTAL row want=2 got=%+v", last)
	}

	onlyTo := BuildFilingReport(sampleFilings(), FilingOptions{To: &to})
	if onlyTo.Total != 3 {
		t.Fatalf("upper bound only want=3 got=%d", onlyTo.Total)
	}
}

func assertCounts(t *testing.T, name string, got, want []model.CountItem) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s want=%v got=%v", name, want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s[%d] want=%+v got=%+v", name, i, want[i], got[i])
		}
	}
}
