package importer

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
)

type sheetFixture struct {
	name string
	rows [][]interface{}
}

func buildWorkbook(t *testing.T, sheets ...sheetFixture) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer wb.Close()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for _, s := range sheets {
		if _, err := wb.NewSheet(s.name); err != nil {
			t.Fatalf("NewSheet %s failed: %v", s.name, err)
		}
		for i := range s.rows {
			cell, _ := excelize.CoordinatesToCellName(1, i+1)
			if err := wb.SetSheetRow(s.name, cell, &s.rows[i]); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", s.name, err)
			}
		}
	}
	if err := wb.DeleteSheet(defaultSheet); err != nil {
		t.Fatalf("DeleteSheet failed: %v", err)
	}

	buf, err := wb.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer failed: %v", err)
	}
	return buf.Bytes()
}

func filingWorkbook(t *testing.T) []byte {
	return buildWorkbook(t,
		sheetFixture{name: "Março", rows: [][]interface{}{
			{"CONTROLE DE AÇÕES ANALISADAS - PETIÇÃO INICIAL"},
			{"Data", "Resp. pela Análise", "Resp. pela Petição", "Nome do Cliente", "Ação", "Localidade", "Fase"},
			{"28/03/2024", "Bruna", "Caio", "Ana", "danos morais", "Natal", "Inicial"},
			{"29/03/2024", "Bruna", "Caio", "", "piso", "Natal", "Inicial"},
		}},
		sheetFixture{name: "Abril", rows: [][]interface{}{
			{"CONTROLE DE AÇÕES ANALISADAS - PETIÇÃO INICIAL"},
			{"Data", "Resp. pela Análise", "Resp. pela Petição", "Nome do Cliente", "Ação"},
			{"2024-04-02", "Lia", "Caio", "Beto", "Retroativo letra"},
		}},
		sheetFixture{name: "Resumo", rows: [][]interface{}{{"só título"}}},
	)
}

func TestParse_FilingWorkbook(t *testing.T) {
	t.Parallel()

	res, err := Parse(context.Background(), bytes.NewReader(filingWorkbook(t)), Options{Kind: model.KindFilings, Filename: "peticoes.xlsx"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	r := res.Report
	if r.TotalSheets != 3 || r.ImportedSheets != 2 || r.SkippedSheets != 1 {
		t.Fatalf("sheets want=3/2/1 got=%d/%d/%d (%+v)", r.TotalSheets, r.ImportedSheets, r.SkippedSheets, r.Sheets)
	}
	if r.TotalRows != 3 || r.ValidRows != 2 || r.DroppedRows != 1 {
		t.Fatalf("rows want=3/2/1 got=%d/%d/%d", r.TotalRows, r.ValidRows, r.DroppedRows)
	}
	if r.ImportID == "" || r.Filename != "peticoes.xlsx" || r.Kind != model.KindFilings {
		t.Fatalf("report header unexpected: %+v", r)
	}
	if len(res.Filings) != 2 || len(res.Clients) != 0 {
		t.Fatalf("filings want=2 got=%d clients=%d", len(res.Filings), len(res.Clients))
	}
	if res.Filings[0].Acao != "Danos" || res.Filings[1].Acao != "Retroativo Letra" {
		t.Fatalf("actions unexpected: %q %q", res.Filings[0].Acao, res.Filings[1].Acao)
	}
	if res.Filings[1].SourceSheet != "Abril" || res.Filings[1].RowNo != 3 {
		t.Fatalf("provenance unexpected: %s/%d", res.Filings[1].SourceSheet, res.Filings[1].RowNo)
	}
}

func TestParse_ClientWorkbookWithInjectedClock(t *testing.T) {
	t.Parallel()

	content := buildWorkbook(t, sheetFixture{name: "Clientes", rows: [][]interface{}{
		{"Cliente novo", "CPF", "Pendências", "Data limite para protocolo"},
		{"Ana", "111", "RG, CPF", "10/05/2024"},
	}})
	now := func() time.Time { return time.Date(2024, 5, 13, 0, 0, 0, 0, time.UTC) }

	res, err := Parse(context.Background(), bytes.NewReader(content), Options{Kind: model.KindClients, Now: now})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Clients) != 1 {
		t.Fatalf("clients want=1 got=%d", len(res.Clients))
	}
	c := res.Clients[0]
	if c.DiasAtrasado == nil || *c.DiasAtrasado != 3 || len(c.Pendencias) != 2 {
		t.Fatalf("client unexpected: %+v", c)
	}
}

func TestParse_TypedDateCells(t *testing.T) {
	t.Parallel()

	content := buildWorkbook(t, sheetFixture{name: "Dezembro", rows: [][]interface{}{
		{"CONTROLE DE AÇÕES ANALISADAS - PETIÇÃO INICIAL"},
		{"Data", "Nome do Cliente"},
		{time.Date(2023, 12, 25, 0, 0, 0, 0, time.UTC), "Ana"},
	}})

	res, err := Parse(context.Background(), bytes.NewReader(content), Options{Kind: model.KindFilings})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Filings) != 1 || res.Filings[0].Data == nil {
		t.Fatalf("typed date cell should parse: %+v", res.Filings)
	}
	if got := parser.DayKey(*res.Filings[0].Data); got != "2023-12-25" {
		t.Fatalf("date want=2023-12-25 got=%s", got)
	}
}

func TestParse_LayoutOverride(t *testing.T) {
	t.Parallel()

	// 客户表带标题行，需要覆盖默认布局
	content := buildWorkbook(t, sheetFixture{name: "Clientes", rows: [][]interface{}{
		{"Relatório"},
		{"Nome", "CPF"},
		{"Ana", "111"},
	}})

	res, err := Parse(context.Background(), bytes.NewReader(content), Options{
		Kind:   model.KindClients,
		Layout: &parser.Layout{HeaderRow: parser.HeaderRowAuto},
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(res.Clients) != 1 || res.Clients[0].Nome != "Ana" || res.Report.Sheets[0].HeaderRow != 1 {
		t.Fatalf("auto layout unexpected: %+v %+v", res.Clients, res.Report.Sheets)
	}
}

func TestParse_AutoKind(t *testing.T) {
	t.Parallel()

	res, err := Parse(context.Background(), bytes.NewReader(filingWorkbook(t)), Options{Kind: model.KindAuto})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if res.Report.Kind != model.KindFilings || len(res.Filings) != 2 || res.Report.ValidRows != 2 {
		t.Fatalf("auto kind unexpected: kind=%s filings=%d", res.Report.Kind, len(res.Filings))
	}

	unknown := buildWorkbook(t, sheetFixture{name: "Estoque", rows: [][]interface{}{{"Produto", "Preço"}, {"x", 1}}})
	if _, err := Parse(context.Background(), bytes.NewReader(unknown), Options{Kind: model.KindAuto}); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind got=%v", err)
	}
}

func TestParse_InvalidInput(t *testing.T) {
	t.Parallel()

	_, err := Parse(context.Background(), strings.NewReader("not a workbook"), Options{Kind: model.KindFilings})
	if !errors.Is(err, ErrOpenWorkbook) {
		t.Fatalf("want ErrOpenWorkbook got=%v", err)
	}

	_, err = Parse(context.Background(), bytes.NewReader(filingWorkbook(t)), Options{Kind: "tasks"})
	if !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("want ErrUnknownKind got=%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Parse(ctx, bytes.NewReader(filingWorkbook(t)), Options{Kind: model.KindFilings}); !errors.Is(err, context.Canceled) {
		t.Fatalf("want context.Canceled got=%v", err)
	}
}

func TestCoordinator_ImportWritesLogAndEvents(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "controladoria.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	coordinator := NewCoordinator(st, nil)
	ch := coordinator.Import(context.Background(), ImportOptions{
		Options: Options{Kind: model.KindFilings, Filename: "peticoes.xlsx"},
		Content: filingWorkbook(t),
	})

	var (
		types  []string
		result *Result
	)
	for evt := range ch {
		types = append(types, evt.Type)
		if evt.Type == EventError {
			t.Fatalf("import error event: %s", evt.Message)
		}
		if evt.Type == EventDone {
			r, ok := evt.Data.(*Result)
			if !ok {
				t.Fatalf("unexpected done payload: %T", evt.Data)
			}
			result = r
		}
	}

	if result == nil {
		t.Fatalf("missing done event, got %v", types)
	}
	if types[0] != EventStart || types[len(types)-1] != EventDone {
		t.Fatalf("event order unexpected: %v", types)
	}
	if countOf(types, EventSheetStart) != 3 || countOf(types, EventSheetDone) != 2 || countOf(types, EventWarning) != 1 {
		t.Fatalf("event counts unexpected: %v", types)
	}

	last, err := st.LastImportLog()
	if err != nil {
		t.Fatalf("last import log: %v", err)
	}
	if last.ImportID != result.Report.ImportID || last.Status != store.ImportStatusSuccess || last.ValidRows != 2 || last.FileHash == "" {
		t.Fatalf("import log unexpected: %+v", last)
	}
}

func TestCoordinator_AutoKindUpdatesLog(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "controladoria.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ch := NewCoordinator(st, nil).Import(context.Background(), ImportOptions{
		Options: Options{Kind: model.KindAuto, Filename: "peticoes.xlsx"},
		Content: filingWorkbook(t),
	})
	for range ch {
	}

	last, err := st.LastImportLog()
	if err != nil {
		t.Fatalf("last import log: %v", err)
	}
	if last.Kind != model.KindFilings || last.Status != store.ImportStatusSuccess {
		t.Fatalf("import log unexpected: %+v", last)
	}
}

func TestCoordinator_ImportBadFileFails(t *testing.T) {
	t.Parallel()

	st, err := store.New(filepath.Join(t.TempDir(), "controladoria.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	ch := NewCoordinator(st, nil).Import(context.Background(), ImportOptions{
		Options: Options{Kind: model.KindClients, Filename: "x.xlsx"},
		Content: []byte("garbage"),
	})
	var lastType string
	for evt := range ch {
		lastType = evt.Type
	}
	if lastType != EventError {
		t.Fatalf("last event want=error got=%s", lastType)
	}

	last, err := st.LastImportLog()
	if err != nil {
		t.Fatalf("last import log: %v", err)
	}
	if last.Status != store.ImportStatusFailed || last.ErrorMessage == "" {
		t.Fatalf("failed import log unexpected: %+v", last)
	}
}

func countOf(types []string, want string) int {
	n := 0
	for _, typ := range types {
		if typ == want {
			n++
		}
	}
	return n
}
