package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/importer"
	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
)

// TaskSource 外部任务系统
type TaskSource interface {
	FetchBoth(ctx context.Context, user, start, end string) (completed, pending []model.Task, err error)
	ListUsers(ctx context.Context) ([]model.Collaborator, error)
}

// Options 处理器依赖
type Options struct {
	Store   *store.Store         // 可为 nil，此时不记录导入日志
	Tasks   TaskSource           // 可为 nil，任务相关接口返回 503
	Ingest  *config.IngestConfig // nil 时使用默认表头行
	MaxBody int64                // 上传文件大小上限（字节）
	Version string
	Logger  *zap.Logger
}

// Handler API 处理器
type Handler struct {
	store       *store.Store
	tasks       TaskSource
	coordinator *importer.Coordinator
	ingest      config.IngestConfig
	maxBody     int64
	version     string
	startedAt   time.Time
	logger      *zap.Logger
}

const defaultMaxBody = 32 << 20

// NewHandler 创建 API 处理器
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBody := opts.MaxBody
	if maxBody <= 0 {
		maxBody = defaultMaxBody
	}
	ingest := config.DefaultConfig().Ingest
	if opts.Ingest != nil {
		ingest = *opts.Ingest
	}
	return &Handler{
		store:       opts.Store,
		tasks:       opts.Tasks,
		coordinator: importer.NewCoordinator(opts.Store, logger),
		ingest:      ingest,
		maxBody:     maxBody,
		version:     opts.Version,
		startedAt:   time.Now(),
		logger:      logger.Named("api"),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 表格报表（上传即计算，不落库）
	router.POST("/reports/filings", h.FilingReport)
	router.POST("/reports/clients", h.ClientReport)

	// 数据导入
	router.POST("/import", h.Import)
	router.GET("/imports", h.ListImports)

	// 任务系统
	router.GET("/users", h.ListUsers)
	router.GET("/tasks/report", h.TaskReport)
}

// RequestLogger 记录每个请求的结构化日志
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.Named("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		switch {
		case c.Writer.Status() >= 500:
			logger.Error("request", fields...)
		case c.Writer.Status() >= 400:
			logger.Warn("request", fields...)
		default:
			logger.Info("request", fields...)
		}
	}
}
