package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/helderdsa/dashboard-controladoria/internal/importer"
	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// Import 导入表格并记录导入日志 (SSE 流式响应)
// POST /api/import
func (h *Handler) Import(c *gin.Context) {
	up, err := h.readUpload(c)
	if err != nil {
		h.writeError(c, "读取上传文件失败", err)
		return
	}

	kind := model.RecordKind(strings.ToLower(strings.TrimSpace(formOrQuery(c, "kind"))))
	if kind == "" {
		kind = model.KindAuto
	}
	if !kind.Valid() && kind != model.KindAuto {
		h.writeError(c, "无效的导入类型", badRequest(fmt.Sprintf("kind 应为 %s、%s 或 %s", model.KindFilings, model.KindClients, model.KindAuto)))
		return
	}
	layout, err := h.layoutFor(c, kind)
	if err != nil {
		h.writeError(c, "无效的表头行", err)
		return
	}

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "不支持流式响应"})
		return
	}

	// 设置 SSE 响应头
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)

	progressChan := h.coordinator.Import(c.Request.Context(), importer.ImportOptions{
		Options: importer.Options{
			Kind:     kind,
			Filename: up.Filename,
			Layout:   layout,
		},
		Content: up.Content,
	})

	for event := range progressChan {
		if event.Type == importer.EventDone {
			// 只回传摘要，记录明细由报表接口提供
			if result, ok := event.Data.(*importer.Result); ok {
				event.Data = result.Report
			}
		}
		eventData, err := json.Marshal(event)
		if err != nil {
			continue
		}

		// SSE 格式: data: {json}\n\n
		fmt.Fprintf(c.Writer, "data: %s\n\n", eventData)
		flusher.Flush()
	}
}
