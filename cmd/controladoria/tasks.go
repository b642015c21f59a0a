package main

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/report"
	"github.com/helderdsa/dashboard-controladoria/internal/taskapi"
)

type tasksOptions struct {
	user  string
	start string
	end   string
	users bool
}

func newTasksCmd(global *globalOptions) *cobra.Command {
	var opts tasksOptions

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "从任务系统拉取任务并输出报表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, logger, err := global.runtime()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

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
			if errors.Is(err, taskapi.ErrNotConfigured) {
				return fmt.Errorf("%w: set [taskapi] base_url or %s", err, config.EnvTaskAPIBaseURL)
			}
			if err != nil {
				return err
			}

			if opts.users {
				users, err := client.ListUsers(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), users)
			}

			if opts.user == "" || opts.start == "" || opts.end == "" {
				return errors.New("--user, --start and --end are required")
			}
			for _, d := range []string{opts.start, opts.end} {
				if _, err := time.Parse("2006-01-02", d); err != nil {
					return fmt.Errorf("invalid date %q: want YYYY-MM-DD", d)
				}
			}

			completed, pending, err := client.FetchBoth(cmd.Context(), opts.user, opts.start, opts.end)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), report.BuildTaskReport(completed, pending))
		},
	}

	cmd.Flags().StringVar(&opts.user, "user", "", "协作者名称")
	cmd.Flags().StringVar(&opts.start, "start", "", "起始日期 YYYY-MM-DD")
	cmd.Flags().StringVar(&opts.end, "end", "", "结束日期 YYYY-MM-DD")
	cmd.Flags().BoolVar(&opts.users, "users", false, "只列出任务系统中的协作者")
	return cmd
}
