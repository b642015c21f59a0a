package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
)

const dayLayout = "2006-01-02"

// upload 上传文件内容
type upload struct {
	Filename string
	Content  []byte
}

// readUpload 读取 multipart 中的 file 字段，超过 maxBody 时返回 errTooLarge
func (h *Handler) readUpload(c *gin.Context) (*upload, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBody+1<<20)

	header, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, errTooLarge
		}
		return nil, badRequest("未找到上传文件")
	}
	if header.Size > h.maxBody {
		return nil, errTooLarge
	}

	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	content, err := io.ReadAll(io.LimitReader(f, h.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	if int64(len(content)) > h.maxBody {
		return nil, errTooLarge
	}
	return &upload{Filename: header.Filename, Content: content}, nil
}

// layoutFor 表头行：请求参数 > 配置；"auto" 表示自动识别，自动识别类型时由导入器决定
func (h *Handler) layoutFor(c *gin.Context, kind model.RecordKind) (*parser.Layout, error) {
	raw := strings.TrimSpace(formOrQuery(c, "headerRow"))
	if raw == "" && kind == model.KindAuto {
		return nil, nil
	}
	if raw == "" {
		row := h.ingest.FilingHeaderRow
		if kind == model.KindClients {
			row = h.ingest.ClientHeaderRow
		}
		return &parser.Layout{HeaderRow: row}, nil
	}
	return parseHeaderRow(raw)
}

func parseHeaderRow(raw string) (*parser.Layout, error) {
	layout, err := parser.ParseLayout(raw)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("无效的表头行: %q", raw))
	}
	return &layout, nil
}

// parseDay 解析 YYYY-MM-DD，空串返回 nil
func parseDay(name, raw string) (*time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	d, err := time.Parse(dayLayout, raw)
	if err != nil {
		return nil, badRequest(fmt.Sprintf("%s 日期格式应为 YYYY-MM-DD: %q", name, raw))
	}
	return &d, nil
}

// formOrQuery 先取表单字段再取查询参数
func formOrQuery(c *gin.Context, key string) string {
	if v := c.PostForm(key); v != "" {
		return v
	}
	return c.Query(key)
}
