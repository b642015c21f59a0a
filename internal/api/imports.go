package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

const maxImportLogLimit = 200

// ListImports 导入日志
// GET /api/imports?limit=
func (h *Handler) ListImports(c *gin.Context) {
	if h.store == nil {
		c.JSON(http.StatusOK, gin.H{"items": []model.ImportLog{}})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := cast.ToIntE(raw)
		if err != nil || n <= 0 {
			h.writeError(c, "无效的 limit 参数", badRequest("limit 应为正整数"))
			return
		}
		limit = min(n, maxImportLogLimit)
	}

	logs, err := h.store.ListImportLogs(limit)
	if err != nil {
		h.writeError(c, "查询导入日志失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": logs})
}
