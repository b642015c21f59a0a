package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/logging"
)

var version = "dev"

// globalOptions 所有子命令共享的参数
type globalOptions struct {
	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts globalOptions

	cmd := &cobra.Command{
		Use:           "controladoria",
		Short:         "Dashboard da controladoria: ingestão de planilhas e relatórios",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "config.toml 路径（默认可执行文件同目录）")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "日志级别，覆盖配置文件 (debug/info/warn/error)")

	cmd.AddCommand(
		newServeCmd(&opts),
		newReportCmd(&opts),
		newTasksCmd(&opts),
		newImportsCmd(&opts),
	)
	return cmd
}

// runtime 加载配置与日志
func (o *globalOptions) runtime() (*config.AppConfig, config.LoadConfigInfo, *zap.Logger, error) {
	cfg, info, err := config.LoadConfigWithInfo(o.configPath)
	if err != nil {
		return nil, info, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	logger, err := logging.New(logging.Options{Level: cfg.Log.Level, Format: cfg.Log.Format})
	if err != nil {
		return nil, info, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, info, logger, nil
}
