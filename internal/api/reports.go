package api

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/exporter"
	"github.com/helderdsa/dashboard-controladoria/internal/importer"
	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
	"github.com/helderdsa/dashboard-controladoria/internal/report"
)

// ReportResponse 报表响应：解析摘要 + 报表
type ReportResponse[T any] struct {
	Import *parser.ImportReport `json:"import"`
	Report T                    `json:"report"`
}

// FilingReport 上传诉讼表格并计算报表
// POST /api/reports/filings
func (h *Handler) FilingReport(c *gin.Context) {
	up, err := h.readUpload(c)
	if err != nil {
		h.writeError(c, "读取上传文件失败", err)
		return
	}
	from, err := parseDay("from", formOrQuery(c, "from"))
	if err != nil {
		h.writeError(c, "无效的日期参数", err)
		return
	}
	to, err := parseDay("to", formOrQuery(c, "to"))
	if err != nil {
		h.writeError(c, "无效的日期参数", err)
		return
	}
	if from != nil && to != nil && to.Before(*from) {
		h.writeError(c, "无效的日期参数", badRequest("to 早于 from"))
		return
	}

	result, ok := h.parseUpload(c, up, model.KindFilings)
	if !ok {
		return
	}
	rep := report.BuildFilingReport(result.Filings, report.FilingOptions{From: from, To: to})
	if wantsXLSX(c) {
		f, err := exporter.FilingWorkbook(rep)
		h.writeWorkbook(c, "relatorio-peticoes.xlsx", f, err)
		return
	}
	c.JSON(http.StatusOK, ReportResponse[report.FilingReport]{
		Import: result.Report,
		Report: rep,
	})
}

// ClientReport 上传客户表格并计算报表
// POST /api/reports/clients
func (h *Handler) ClientReport(c *gin.Context) {
	up, err := h.readUpload(c)
	if err != nil {
		h.writeError(c, "读取上传文件失败", err)
		return
	}
	result, ok := h.parseUpload(c, up, model.KindClients)
	if !ok {
		return
	}
	rep := report.BuildClientReport(result.Clients)
	if wantsXLSX(c) {
		f, err := exporter.ClientWorkbook(rep)
		h.writeWorkbook(c, "relatorio-clientes.xlsx", f, err)
		return
	}
	c.JSON(http.StatusOK, ReportResponse[report.ClientReport]{
		Import: result.Report,
		Report: rep,
	})
}

func (h *Handler) parseUpload(c *gin.Context, up *upload, kind model.RecordKind) (*importer.Result, bool) {
	layout, err := h.layoutFor(c, kind)
	if err != nil {
		h.writeError(c, "无效的表头行", err)
		return nil, false
	}
	result, err := importer.Parse(c.Request.Context(), bytes.NewReader(up.Content), importer.Options{
		Kind:     kind,
		Filename: up.Filename,
		Layout:   layout,
	})
	if err != nil {
		h.writeError(c, "解析表格失败", err)
		return nil, false
	}
	h.logger.Debug("report computed",
		zap.String("kind", string(kind)),
		zap.String("filename", up.Filename),
		zap.Int("valid_rows", result.Report.ValidRows),
	)
	return result, true
}

// wantsXLSX format=xlsx 时以工作簿下载代替 JSON
func wantsXLSX(c *gin.Context) bool {
	return strings.EqualFold(strings.TrimSpace(formOrQuery(c, "format")), "xlsx")
}

func (h *Handler) writeWorkbook(c *gin.Context, filename string, f *excelize.File, err error) {
	if err != nil {
		h.writeError(c, "导出工作簿失败", err)
		return
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		h.writeError(c, "导出工作簿失败", err)
		return
	}
	c.Header("Content-Disposition", exporter.ContentDisposition(filename))
	c.Data(http.StatusOK, exporter.XLSXContentType, buf.Bytes())
}
