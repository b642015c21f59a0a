package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/store"
)

func newImportsCmd(global *globalOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "imports",
		Short: "列出最近的导入日志",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, _, err := global.runtime()
			if err != nil {
				return err
			}
			dataDir, err := config.EnsureDataDir(cfg)
			if err != nil {
				return err
			}
			st, err := store.New(config.DBPath(cfg, dataDir))
			if err != nil {
				return err
			}
			defer st.Close()

			logs, err := st.ListImportLogs(limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tKIND\tFILE\tSIZE\tROWS\tVALID\tSTATUS\tWHEN")
			for _, l := range logs {
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
					l.ID, l.Kind, l.Filename, humanize.Bytes(uint64(l.FileSize)),
					l.TotalRows, l.ValidRows, l.Status, humanize.Time(l.CreatedAt))
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 20, "最多显示条数")
	return cmd
}
