package exporter

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/report"
)

// XLSXContentType xlsx 的 MIME 类型
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// table 一个工作表的表头与数据
type table struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

// FilingWorkbook 诉讼报表导出为工作簿，每个维度一个 Sheet
func FilingWorkbook(rep report.FilingReport) (*excelize.File, error) {
	months := make([][]interface{}, 0, len(rep.ByMonth))
	for _, m := range rep.ByMonth {
		months = append(months, []interface{}{m.Mes, m.Total})
	}
	return build([]table{
		{
			sheet:   "Resumo",
			headers: []string{"Indicador", "Valor"},
			rows: [][]interface{}{
				{"Total de ações", rep.Total},
				{"Fases distintas", rep.DistinctPhases},
				{"Localidades distintas", rep.DistinctLocalities},
			},
		},
		countTable("Por análise", "Responsável pela análise", rep.ByAnalysis),
		countTable("Por protocolo", "Responsável pela petição", rep.ByFiling),
		countTable("Por localidade", "Localidade", rep.ByLocality),
		countTable("Por ação", "Ação", rep.ByAction),
		{sheet: "Por mês", headers: []string{"Mês", "Total"}, rows: months},
		metricTable("Métricas análise", rep.AnalysisMetrics),
		metricTable("Métricas protocolo", rep.FilingMetrics),
	})
}

// ClientWorkbook 客户报表导出为工作簿
func ClientWorkbook(rep report.ClientReport) (*excelize.File, error) {
	return build([]table{
		{
			sheet:   "Resumo",
			headers: []string{"Indicador", "Valor"},
			rows: [][]interface{}{
				{"Total de clientes", rep.Total},
				{"Clientes novos", rep.Novos},
				{"Atualizações", rep.Atualizacoes},
				{"Atrasados", rep.Atrasados},
				{"Fidelização interna", rep.Fidelizacao.Interno},
				{"Fidelização externa", rep.Fidelizacao.Externo},
			},
		},
		countTable("Pendências", "Pendência", rep.Pendencias),
		countTable("Cidades", "Cidade", rep.TopCidades),
		countTable("Responsáveis", "Responsável", rep.PorResponsavel),
		countTable("Fechamentos", "Responsável", rep.Fechamentos),
		countTable("Estados", "UF", rep.PorEstado),
	})
}

// TaskWorkbook 任务报表导出为工作簿
func TaskWorkbook(rep report.TaskReport) (*excelize.File, error) {
	types := make([][]interface{}, 0, len(rep.PorTipo))
	for _, s := range rep.PorTipo {
		var points interface{}
		if s.Pontos != nil {
			points = *s.Pontos
		}
		types = append(types, []interface{}{s.Tipo, s.Completas, s.Incompletas, points})
	}
	days := make([][]interface{}, 0, len(rep.PorDia))
	for _, d := range rep.PorDia {
		days = append(days, []interface{}{d.Date, d.Qtd, d.Pontos})
	}
	weeks := make([][]interface{}, 0, len(rep.Semanas))
	for _, w := range rep.Semanas {
		first, last := "", ""
		if len(w.Dias) > 0 {
			first, last = w.Dias[0].Date, w.Dias[len(w.Dias)-1].Date
		}
		weeks = append(weeks, []interface{}{w.Semana, first, last, len(w.Dias), w.Media})
	}

	return build([]table{
		{
			sheet:   "Resumo",
			headers: []string{"Indicador", "Valor"},
			rows: [][]interface{}{
				{"Completas", rep.Totais.Completas},
				{"Pendentes", rep.Totais.Pendentes},
				{"Pontos", rep.Totais.Pontos},
				{"Média diária", rep.MediaDiaria},
				{"Média semanal (mês)", rep.MediaSemanalMensal},
			},
		},
		{sheet: "Por tipo", headers: []string{"Tipo", "Completas", "Incompletas", "Pontos"}, rows: types},
		{sheet: "Por dia", headers: []string{"Data", "Quantidade", "Pontos"}, rows: days},
		{sheet: "Semanas", headers: []string{"Semana", "Início", "Fim", "Dias", "Média"}, rows: weeks},
	})
}

// ContentDisposition 附件下载头，filename* 携带 UTF-8 文件名
func ContentDisposition(filename string) string {
	ascii := strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e || r == '"' || r == '\\' {
			return '_'
		}
		return r
	}, filename)
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s", ascii, url.PathEscape(filename))
}

func countTable(sheet, label string, items []model.CountItem) table {
	rows := make([][]interface{}, 0, len(items))
	for _, it := range items {
		rows = append(rows, []interface{}{it.Nome, it.Total})
	}
	return table{sheet: sheet, headers: []string{label, "Total"}, rows: rows}
}

func metricTable(sheet string, metrics []model.ResponsibleMetric) table {
	rows := make([][]interface{}, 0, len(metrics))
	for _, m := range metrics {
		rows = append(rows, []interface{}{m.Responsavel, m.Total, m.DiasAtivos, m.SemanasAtivas, m.MediaDiaria, m.MediaSemanal})
	}
	return table{
		sheet:   sheet,
		headers: []string{"Responsável", "Total", "Dias ativos", "Semanas ativas", "Média diária", "Média semanal"},
		rows:    rows,
	}
}

func build(tables []table) (*excelize.File, error) {
	f := excelize.NewFile()
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#E2E8F0"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	defaultSheet := f.GetSheetName(0)
	for i, t := range tables {
		if i == 0 {
			err = f.SetSheetName(defaultSheet, t.sheet)
		} else {
			_, err = f.NewSheet(t.sheet)
		}
		if err == nil {
			err = writeTable(f, t, headerStyle)
		}
		if err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", t.sheet, err)
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func writeTable(f *excelize.File, t table, headerStyle int) error {
	header := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetRowStyle(t.sheet, 1, 1, headerStyle); err != nil {
		return err
	}
	for i := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(t.sheet, cell, &t.rows[i]); err != nil {
			return err
		}
	}

	lastCol, err := excelize.ColumnNumberToName(len(t.headers))
	if err != nil {
		return err
	}
	if err := f.SetColWidth(t.sheet, "A", "A", 30); err != nil {
		return err
	}
	if lastCol != "A" {
		return f.SetColWidth(t.sheet, "B", lastCol, 15)
	}
	return nil
}
