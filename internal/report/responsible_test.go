package report

import (
	"testing"
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func filing(analysis, petition string, date *time.Time) model.Filing {
	return model.Filing{RespAnalise: analysis, RespPeticao: petition, Data: date, NomeCliente: "X"}
}

func TestAnalysisMetrics_DaysAndMean(t *testing.T) {
	t.Parallel()

	filings := []model.Filing{
		filing("Bruna", "", day(2024, 4, 1)),
		filing("Bruna", "", day(2024, 4, 1)),
		filing("Bruna", "", day(2024, 4, 1)),
		filing(" Bruna ", "", day(2024, 4, 3)),
		filing("Bruna", "", day(2024, 4, 3)),
	}

	got := AnalysisMetrics(filings)
	if len(got) != 1 {
		t.Fatalf("metrics want=1 got=%d", len(got))
	}
	m := got[0]
	if m.Responsavel != "Bruna" || m.Total != 5 || m.DiasAtivos != 2 || m.MediaDiaria != 2.5 {
		t.Fatalf("unexpected metric: %+v", m)
	}
	if m.SemanasAtivas != 1 || m.MediaSemanal != 5 {
		t.Fatalf("weekly want=1 week mean 5 got=%d/%v", m.SemanasAtivas, m.MediaSemanal)
	}
}

func TestResponsibleMetrics_ExclusionsAndOrder(t *testing.T) {
	t.Parallel()

	filings := []model.Filing{
		filing("", "Caio", day(2024, 4, 1)),
		filing("", "NAO INFORMADO", day(2024, 4, 1)),
		filing("", "não informado", day(2024, 4, 2)),
		filing("", "Lia", day(2024, 4, 2)),
		filing("", "Lia", nil),
		filing("", "Dora", day(2024, 4, 9)),
		filing("", "Dora", day(2024, 4, 10)),
	}

	got := FilingMetrics(filings)
	wantOrder := []string{"Dora", "Caio", "Lia"}
	if len(got) != len(wantOrder) {
		t.Fatalf("metrics want=%d got=%d (%+v)", len(wantOrder), len(got), got)
	}
	for i, w := range wantOrder {
		if got[i].Responsavel != w {
			t.Fatalf("position %d want=%s got=%s", i, w, got[i].Responsavel)
		}
	}
	if got[2].Total != 1 {
		t.Fatalf("undated record must be excluded, Lia total=%d", got[2].Total)
	}
}

func TestYearWeekKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		date *time.Time
		want string
	}{
		// 2023-01-01 是星期日
		{day(2023, 1, 1), "2023-W01"},
		{day(2023, 1, 7), "2023-W01"},
		{day(2023, 1, 8), "2023-W02"},
		// 2024-01-01 是星期一
		{day(2024, 1, 6), "2024-W01"},
		{day(2024, 1, 7), "2024-W02"},
	}
	for _, tt := range tests {
		if got := YearWeekKey(*tt.date); got != tt.want {
			t.Errorf("YearWeekKey(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
		}
	}
}
