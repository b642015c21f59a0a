package taskapi

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotConfigured 未配置任务系统地址
var ErrNotConfigured = errors.New("task api base url not configured")

// ErrTooManyPages 分页超过上限仍未结束
var ErrTooManyPages = errors.New("task api pagination exceeded max pages")

// StatusError 任务系统返回非 2xx 状态
type StatusError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("task api %s: unexpected status %d: %s", e.Path, e.StatusCode, e.Body)
}

// Temporary 是否值得重试（429 与 5xx）
func (e *StatusError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= 500
}

// transportError 请求未得到响应（连接失败、超时等）
type transportError struct {
	path string
	err  error
}

func (e *transportError) Error() string {
	return fmt.Sprintf("request %s: %v", e.path, e.err)
}

func (e *transportError) Unwrap() error {
	return e.err
}
