package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
)

// StatusResponse 系统状态响应
type StatusResponse struct {
	Version           string           `json:"version"`
	StartedAt         time.Time        `json:"startedAt"`
	UptimeSeconds     int64            `json:"uptimeSeconds"`
	TaskAPIConfigured bool             `json:"taskApiConfigured"` // 是否配置了任务系统
	StoreEnabled      bool             `json:"storeEnabled"`      // 是否记录导入日志
	LastImport        *model.ImportLog `json:"lastImport,omitempty"`
	LastImportAgo     string           `json:"lastImportAgo,omitempty"` // 如 "3 minutes ago"
}

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Version:           h.version,
		StartedAt:         h.startedAt,
		UptimeSeconds:     int64(time.Since(h.startedAt) / time.Second),
		TaskAPIConfigured: h.tasks != nil,
		StoreEnabled:      h.store != nil,
	}

	if h.store != nil {
		last, err := h.store.LastImportLog()
		switch {
		case err == nil:
			resp.LastImport = &last
			resp.LastImportAgo = humanize.Time(last.CreatedAt)
		case errors.Is(err, store.ErrImportLogNotFound):
		default:
			h.logger.Warn("read last import log failed", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, resp)
}
