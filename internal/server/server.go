package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/api"
	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
	"github.com/helderdsa/dashboard-controladoria/internal/taskapi"
)

// Server HTTP服务器
type Server struct {
	cfg    *config.AppConfig
	router *gin.Engine
	store  *store.Store
	http   *http.Server
	logger *zap.Logger
}

// NewServer 创建服务器：初始化导入日志库、任务系统客户端与路由
func NewServer(cfg *config.AppConfig, version string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("prepare data dir: %w", err)
	}
	sqliteStore, err := store.New(config.DBPath(cfg, dataDir))
	if err != nil {
		return nil, fmt.Errorf("init import log store: %w", err)
	}

	var tasks api.TaskSource
	if cfg.TaskAPI.Configured() {
		client, err := taskapi.New(taskapi.Options{
			BaseURL:      cfg.TaskAPI.BaseURL,
			Token:        cfg.TaskAPI.Token,
			PageSize:     cfg.TaskAPI.PageSize,
			MaxPages:     cfg.TaskAPI.MaxPages,
			MaxRetries:   cfg.TaskAPI.MaxRetries,
			RetryBackoff: cfg.TaskAPI.RetryBackoff(),
			HTTPClient:   &http.Client{Timeout: cfg.TaskAPI.Timeout()},
			Logger:       logger,
		})
		if err != nil {
			_ = sqliteStore.Close()
			return nil, err
		}
		tasks = client
	} else {
		logger.Info("task api not configured; task endpoints disabled")
	}

	handler := api.NewHandler(api.Options{
		Store:   sqliteStore,
		Tasks:   tasks,
		Ingest:  &cfg.Ingest,
		MaxBody: int64(cfg.Server.MaxUploadMB) << 20,
		Version: version,
		Logger:  logger,
	})

	s := &Server{
		cfg:    cfg,
		router: gin.New(),
		store:  sqliteStore,
		logger: logger.Named("server"),
	}
	s.router.Use(gin.Recovery(), api.RequestLogger(logger))
	s.setupRoutes(handler)
	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(handler *api.Handler) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	handler.RegisterRoutes(s.router.Group("/api"))

	if s.cfg.Server.DevMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
	}
}

// Handler 路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run 启动服务器，直到 ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	s.http = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.Server.ReadTimeoutS) * time.Second,
		WriteTimeout: time.Duration(s.cfg.Server.WriteTimeoutS) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", addr))
		errCh <- s.http.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Close 关闭导入日志库
func (s *Server) Close() error {
	return s.store.Close()
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.Store {
	return s.store
}
