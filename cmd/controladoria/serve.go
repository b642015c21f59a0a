package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/server"
)

func newServeCmd(global *globalOptions) *cobra.Command {
	var (
		port    int
		devMode bool
		dataDir string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP API 服务",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, info, logger, err := global.runtime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			// 命令行参数覆盖配置；config.toml 显式配置的端口优先
			if port > 0 && !info.PortSpecified {
				cfg.Server.Port = port
			}
			if devMode {
				cfg.Server.DevMode = true
			}
			if dataDir != "" {
				cfg.Data.DataDir = dataDir
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "==========================================")
			fmt.Fprintln(out, "  Controladoria - painel de produtividade")
			fmt.Fprintln(out, "==========================================")
			if info.FileFound {
				fmt.Fprintf(out, "配置文件: %s\n", info.Path)
			}

			srv, err := server.NewServer(cfg, version, logger)
			if err != nil {
				return err
			}
			defer func() {
				if err := srv.Close(); err != nil {
					logger.Warn("close store failed", zap.Error(err))
				}
			}()

			addr := fmt.Sprintf(":%d", cfg.Server.Port)
			fmt.Fprintf(out, "服务启动中: http://localhost:%d (Ctrl+C 停止)\n", cfg.Server.Port)
			if err := srv.Run(cmd.Context(), addr); err != nil {
				return fmt.Errorf("server: %w", err)
			}
			fmt.Fprintln(out, "服务已关闭")
			return nil
		},
	}

	cmd.Flags().IntVar(&port, "port", 0, "服务端口（仅当 config.toml 未显式配置 port 时生效）")
	cmd.Flags().BoolVar(&devMode, "dev", false, "开发模式")
	cmd.Flags().StringVar(&dataDir, "data-dir", "", "数据目录（覆盖配置文件）")
	return cmd
}
