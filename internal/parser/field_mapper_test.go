package parser

import (
	"testing"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

func TestFieldMapper_ExactBeatsSubstring(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper([]LabelRule{
		{"responsável", model.FieldRegisterResponsible},
		{"responsável da fidelização", model.FieldLoyaltyResponsible},
	})

	got, ok := m.Map("responsavel da fidelizacao")
	if !ok || got != model.FieldLoyaltyResponsible {
		t.Fatalf("exact match want=%s got=%s ok=%v", model.FieldLoyaltyResponsible, got, ok)
	}

	// 无精确匹配时按声明顺序取第一个子串命中的规则
	got, ok = m.Map("responsavel pela fidelizacao externo")
	if !ok || got != model.FieldRegisterResponsible {
		t.Fatalf("substring match want=%s got=%s ok=%v", model.FieldRegisterResponsible, got, ok)
	}
}

func TestFieldMapper_Unmapped(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(FilingSchema.Labels)
	if f, ok := m.Map("numero do processo"); ok {
		t.Fatalf("expected unmapped, got %s", f)
	}
	if _, ok := m.Map(""); ok {
		t.Fatalf("empty header must be unmapped")
	}
}

func TestFieldMapper_MapHeaders_ClientSheet(t *testing.T) {
	t.Parallel()

	m := NewFieldMapper(ClientSchema.Labels)
	headers := []string{
		"Cliente novo",
		"CPF",
		"Coluna X",
		"Responsável pela fidelização",
		"Pendências",
		"Quantos dias está atrasado?",
		"Nome do responsável técnico",
	}
	mappings := m.MapHeaders(headers)

	want := map[int]model.Field{
		0: model.FieldClientName,
		1: model.FieldClientCPF,
		3: model.FieldLoyaltyResponsible,
		4: model.FieldPendingItems,
		5: model.FieldDaysOverdue,
		6: model.FieldClientName, // "nome" 是第一个子串命中的规则
	}
	if len(mappings) != len(want) {
		t.Fatalf("mapped columns want=%d got=%d (%v)", len(want), len(mappings), mappings)
	}
	for idx, f := range want {
		if mappings[idx].Field != f {
			t.Fatalf("column %d want=%s got=%s", idx, f, mappings[idx].Field)
		}
	}
	if _, ok := mappings[2]; ok {
		t.Fatalf("column 2 should be unmapped")
	}
}
