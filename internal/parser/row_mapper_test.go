package parser

import (
	"reflect"
	"testing"
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 15, 0, 0, 0, time.UTC) }
}

func TestRowMapper_ClientRow(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(ClientSchema, WithClock(fixedClock(2024, 5, 20)))
	headers := []string{"Nome", "CPF", "Pendências", "Quantos dias está atrasado?", "Data limite para protocolo", "Cidade"}
	cells := []any{"  Maria Souza ", "123.456.789-00", "RG; CPF | comprovante\nendereço", "12 dias", "10/05/2024", ""}

	r := m.MapRow(headers, cells, "Janeiro", 2)

	if got := r.String(model.FieldClientName); got != "Maria Souza" {
		t.Fatalf("nome want=%q got=%q", "Maria Souza", got)
	}
	wantList := []string{"RG", "CPF", "comprovante endereço"}
	if got := r.List(model.FieldPendingItems); !reflect.DeepEqual(got, wantList) {
		t.Fatalf("pendencias want=%v got=%v", wantList, got)
	}
	if n := r.Number(model.FieldDaysOverdue); n == nil || *n != 12 {
		t.Fatalf("dias_atrasado want=12 got=%v", n)
	}
	if d := r.Date(model.FieldDeadlineProtocol); d == nil || DayKey(*d) != "2024-05-10" {
		t.Fatalf("data_limite_protocolo want=2024-05-10 got=%v", d)
	}
	// 空单元格不产生字段
	if r.Has(model.FieldClientCity) {
		t.Fatalf("empty cidade should be absent")
	}
	if r.SheetName != "Janeiro" || r.RowNo != 2 {
		t.Fatalf("provenance want=Janeiro/2 got=%s/%d", r.SheetName, r.RowNo)
	}
}

func TestRowMapper_UnparseableValuesArePresentButEmpty(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(ClientSchema, WithClock(fixedClock(2024, 5, 20)))
	r := m.MapRow(
		[]string{"Nome", "Data da procuração", "Quantos dias está atrasado?"},
		[]any{"João", "sem data", "n/a"},
		"S", 2,
	)

	if !r.Has(model.FieldPowerOfAttorney) || r.Date(model.FieldPowerOfAttorney) != nil {
		t.Fatalf("unparseable date should be present with nil value")
	}
	if !r.Has(model.FieldDaysOverdue) || r.Number(model.FieldDaysOverdue) != nil {
		t.Fatalf("unparseable number should be present with nil value")
	}
}

func TestRowMapper_DerivesDaysOverdue(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(ClientSchema, WithClock(fixedClock(2024, 5, 20)))
	headers := []string{"Nome", "Data limite para protocolo"}

	r := m.MapRow(headers, []any{"Ana", "2024-05-15"}, "S", 2)
	if n := r.Number(model.FieldDaysOverdue); n == nil || *n != 5 {
		t.Fatalf("derived dias_atrasado want=5 got=%v", n)
	}

	// 截止日在未来时为 0
	r = m.MapRow(headers, []any{"Ana", "2024-06-01"}, "S", 3)
	if n := r.Number(model.FieldDaysOverdue); n == nil || *n != 0 {
		t.Fatalf("future deadline want=0 got=%v", n)
	}

	// 没有截止日则不派生
	r = m.MapRow(headers[:1], []any{"Ana"}, "S", 4)
	if r.Has(model.FieldDaysOverdue) {
		t.Fatalf("dias_atrasado should be absent without deadline")
	}
}

func TestRowMapper_FilingActionIsClassified(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(FilingSchema)
	r := m.MapRow(
		[]string{"Data", "Nome do cliente", "Ação", "Resp. pela Análise"},
		[]any{"03/04/2024", "Carlos", "danos morais ipern", "Bruna"},
		"Abril", 3,
	)

	if got := r.String(model.FieldAction); got != "Danos IPERN" {
		t.Fatalf("acao want=Danos IPERN got=%q", got)
	}
	if d := r.Date(model.FieldFilingDate); d == nil || DayKey(*d) != "2024-04-03" {
		t.Fatalf("data want=2024-04-03 got=%v", d)
	}
	if got := r.String(model.FieldAnalysisResponsible); got != "Bruna" {
		t.Fatalf("resp_analise want=Bruna got=%q", got)
	}
}

func TestRowMapper_LaterColumnWins(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(ClientSchema)
	r := m.MapRow([]string{"Cliente novo", "Nome"}, []any{"Primeiro", "Segundo"}, "S", 2)
	if got := r.String(model.FieldClientName); got != "Segundo" {
		t.Fatalf("later column should win want=Segundo got=%q", got)
	}
}

func TestRowMapper_MapKeyedIsDeterministic(t *testing.T) {
	t.Parallel()

	m := NewRowMapper(ClientSchema)
	row := map[string]any{
		"Nome":         "Segundo",
		"Cliente novo": "Primeiro",
		"CPF":          "000",
	}
	for i := 0; i < 20; i++ {
		r := m.MapKeyed(row, "S", 2)
		// 按列名字典序处理："Nome" 排在 "Cliente novo" 之后
		if got := r.String(model.FieldClientName); got != "Segundo" {
			t.Fatalf("iteration %d want=Segundo got=%q", i, got)
		}
		if got := r.String(model.FieldClientCPF); got != "000" {
			t.Fatalf("cpf want=000 got=%q", got)
		}
	}
}

func TestParseNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input any
		want  float64
		ok    bool
	}{
		{"12 dias", 12, true},
		{"-3", -3, true},
		{"7.6", 8, true},
		{float64(4.4), 4, true},
		{"abc", 0, false},
		{"", 0, false},
		{"1.2.3", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.input)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseNumber(%v) = %v,%v want %v,%v", tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestSplitList(t *testing.T) {
	t.Parallel()

	got := SplitList(" a, b;;c | d/e ,, ")
	want := []string{"a", "b", "c", "d", "e"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SplitList want=%v got=%v", want, got)
	}
	if got := SplitList("  "); len(got) != 0 {
		t.Fatalf("blank list want empty got=%v", got)
	}
}
