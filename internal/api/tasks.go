package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/exporter"
	"github.com/helderdsa/dashboard-controladoria/internal/report"
	"github.com/helderdsa/dashboard-controladoria/internal/taskapi"
)

// ListUsers 任务系统协作者
// GET /api/users
func (h *Handler) ListUsers(c *gin.Context) {
	if h.tasks == nil {
		h.writeUpstreamError(c, "任务系统未配置", taskapi.ErrNotConfigured)
		return
	}
	users, err := h.tasks.ListUsers(c.Request.Context())
	if err != nil {
		h.writeUpstreamError(c, "获取用户失败", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": users})
}

// TaskReport 指定用户在日期区间内的任务报表
// GET /api/tasks/report?user=&start=&end=
func (h *Handler) TaskReport(c *gin.Context) {
	user := strings.TrimSpace(c.Query("user"))
	if user == "" {
		h.writeError(c, "缺少 user 参数", badRequest("user is required"))
		return
	}
	start, err := parseDay("start", c.Query("start"))
	if err != nil || start == nil {
		h.writeError(c, "无效的 start 参数", badRequest("start 日期格式应为 YYYY-MM-DD"))
		return
	}
	end, err := parseDay("end", c.Query("end"))
	if err != nil || end == nil {
		h.writeError(c, "无效的 end 参数", badRequest("end 日期格式应为 YYYY-MM-DD"))
		return
	}
	if end.Before(*start) {
		h.writeError(c, "无效的日期参数", badRequest("end 早于 start"))
		return
	}
	if h.tasks == nil {
		h.writeUpstreamError(c, "任务系统未配置", taskapi.ErrNotConfigured)
		return
	}

	completed, pending, err := h.tasks.FetchBoth(c.Request.Context(), user, start.Format(dayLayout), end.Format(dayLayout))
	if err != nil {
		h.writeUpstreamError(c, "获取任务失败", err)
		return
	}
	h.logger.Debug("task report",
		zap.String("user", user),
		zap.Int("completed", len(completed)),
		zap.Int("pending", len(pending)),
	)
	rep := report.BuildTaskReport(completed, pending)
	if wantsXLSX(c) {
		f, err := exporter.TaskWorkbook(rep)
		h.writeWorkbook(c, fmt.Sprintf("tarefas-%s-%s.xlsx", user, start.Format(dayLayout)), f, err)
		return
	}
	c.JSON(http.StatusOK, rep)
}
