package importer

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
)

// 进度事件类型
const (
	EventStart      = "start"
	EventInfo       = "info"
	EventSheetStart = "sheet_start"
	EventSheetDone  = "sheet_done"
	EventWarning    = "warning"
	EventDone       = "done"
	EventError      = "error"
)

// Coordinator 导入协调器
type Coordinator struct {
	store  *store.Store
	logger *zap.Logger
}

// NewCoordinator 创建导入协调器；store 为 nil 时不写导入日志
func NewCoordinator(st *store.Store, logger *zap.Logger) *Coordinator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Coordinator{
		store:  st,
		logger: logger.Named("importer"),
	}
}

// ImportOptions 导入选项
type ImportOptions struct {
	Options
	Content []byte // 上传文件的完整内容
}

// ProgressEvent 进度事件
type ProgressEvent struct {
	Type      string      `json:"type"`      // start/info/sheet_start/sheet_done/warning/done/error
	Message   string      `json:"message"`   // 事件消息
	Data      interface{} `json:"data"`      // 附加数据
	Timestamp time.Time   `json:"timestamp"` // 时间戳
}

func newEvent(typ, message string, data interface{}) ProgressEvent {
	return ProgressEvent{Type: typ, Message: message, Data: data, Timestamp: time.Now()}
}

// Import 执行导入，返回进度通道；done 事件携带 *Result
func (c *Coordinator) Import(ctx context.Context, opts ImportOptions) <-chan ProgressEvent {
	progressChan := make(chan ProgressEvent, 100)

	go func() {
		defer close(progressChan)
		c.doImport(ctx, opts, progressChan)
	}()

	return progressChan
}

func (c *Coordinator) doImport(ctx context.Context, opts ImportOptions, progressChan chan ProgressEvent) {
	importID := uuid.NewString()
	sum := sha256.Sum256(opts.Content)
	fileHash := hex.EncodeToString(sum[:])
	logger := c.logger.With(
		zap.String("import_id", importID),
		zap.String("kind", string(opts.Kind)),
		zap.String("filename", opts.Filename),
	)

	size := humanize.Bytes(uint64(len(opts.Content)))
	c.sendProgress(progressChan, newEvent(EventStart, fmt.Sprintf("开始导入 Excel 文件 (%s)", size), map[string]string{
		"import_id": importID,
		"filename":  opts.Filename,
		"size":      size,
	}))

	logID := c.createLog(logger, progressChan, importID, opts, fileHash)

	fail := func(err error) {
		logger.Warn("import failed", zap.Error(err))
		c.completeLog(logger, logID, 0, 0, 0, 0, store.ImportStatusFailed, err.Error())
		c.sendFinal(ctx, progressChan, newEvent(EventError, fmt.Sprintf("导入失败: %v", err), nil))
	}

	if !acceptedKind(opts.Kind) {
		fail(fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind))
		return
	}

	file, err := openWorkbook(bytes.NewReader(opts.Content))
	if err != nil {
		fail(err)
		return
	}
	defer file.Close()

	result, err := parseWorkbook(ctx, file, opts.Options, importID, func(evt ProgressEvent) {
		c.sendProgress(progressChan, evt)
	})
	if err != nil {
		fail(err)
		return
	}

	r := result.Report
	if opts.Kind == model.KindAuto && c.store != nil && logID != 0 {
		if err := c.store.SetImportLogKind(logID, r.Kind); err != nil {
			logger.Warn("update import log kind failed", zap.Error(err))
		}
	}
	c.completeLog(logger, logID, r.TotalSheets, r.TotalRows, r.ValidRows, r.DroppedRows, store.ImportStatusSuccess, "")
	logger.Info("import done",
		zap.Int("sheets", r.TotalSheets),
		zap.Int("valid_rows", r.ValidRows),
		zap.Int("dropped_rows", r.DroppedRows),
		zap.Duration("duration", r.Duration),
	)

	c.sendFinal(ctx, progressChan, newEvent(EventDone, "导入完成", result))
}

func (c *Coordinator) createLog(logger *zap.Logger, ch chan ProgressEvent, importID string, opts ImportOptions, fileHash string) int64 {
	if c.store == nil {
		return 0
	}
	id, err := c.store.CreateImportLog(importID, opts.Kind, opts.Filename, int64(len(opts.Content)), fileHash)
	if err != nil {
		logger.Warn("create import log failed", zap.Error(err))
		c.sendProgress(ch, newEvent(EventWarning, fmt.Sprintf("写入导入日志失败: %v", err), nil))
		return 0
	}
	return id
}

func (c *Coordinator) completeLog(logger *zap.Logger, id int64, totalSheets, totalRows, validRows, droppedRows int, status, message string) {
	if c.store == nil || id == 0 {
		return
	}
	if err := c.store.CompleteImportLog(id, totalSheets, totalRows, validRows, droppedRows, status, message); err != nil {
		logger.Warn("complete import log failed", zap.Error(err))
	}
}

// sendProgress 发送进度事件
func (c *Coordinator) sendProgress(ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	default:
		// 通道已满，丢弃事件
	}
}

// sendFinal 结束事件必须送达，除非调用方已取消
func (c *Coordinator) sendFinal(ctx context.Context, ch chan ProgressEvent, event ProgressEvent) {
	select {
	case ch <- event:
	case <-ctx.Done():
	}
}
