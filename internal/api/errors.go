package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/importer"
	"github.com/helderdsa/dashboard-controladoria/internal/taskapi"
)

// errTooLarge 上传文件超过大小上限
var errTooLarge = errors.New("upload exceeds size limit")

// requestError 请求参数问题，映射为 400
type requestError struct {
	msg string
}

func (e *requestError) Error() string { return e.msg }

func badRequest(msg string) error {
	return &requestError{msg: msg}
}

// statusOf 错误到 HTTP 状态码
func statusOf(err error) int {
	var reqErr *requestError
	var maxErr *http.MaxBytesError
	var statusErr *taskapi.StatusError
	switch {
	case errors.As(err, &reqErr),
		errors.Is(err, importer.ErrOpenWorkbook),
		errors.Is(err, importer.ErrUnknownKind):
		return http.StatusBadRequest
	case errors.As(err, &maxErr), errors.Is(err, errTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, taskapi.ErrNotConfigured):
		return http.StatusServiceUnavailable
	case errors.As(err, &statusErr), errors.Is(err, taskapi.ErrTooManyPages):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError 按错误类型写出 {"error": ...}
func (h *Handler) writeError(c *gin.Context, message string, err error) {
	status := statusOf(err)
	_ = c.Error(err)
	body := gin.H{"error": message}
	if status < 500 || status == http.StatusBadGateway {
		body["detail"] = err.Error()
	}
	c.JSON(status, body)
}

// writeUpstreamError 任务系统调用失败：未配置为 503，其余一律 502
func (h *Handler) writeUpstreamError(c *gin.Context, message string, err error) {
	status := http.StatusBadGateway
	if errors.Is(err, taskapi.ErrNotConfigured) {
		status = http.StatusServiceUnavailable
	}
	h.logger.Warn("task api call failed", zap.String("path", c.Request.URL.Path), zap.Error(err))
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": message, "detail": err.Error()})
}
