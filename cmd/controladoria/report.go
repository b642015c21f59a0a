package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/helderdsa/dashboard-controladoria/internal/config"
	"github.com/helderdsa/dashboard-controladoria/internal/exporter"
	"github.com/helderdsa/dashboard-controladoria/internal/importer"
	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
	"github.com/helderdsa/dashboard-controladoria/internal/report"
)

type reportOptions struct {
	headerRow string
	from      string
	to        string
	xlsx      string
}

func newReportCmd(global *globalOptions) *cobra.Command {
	var opts reportOptions

	cmd := &cobra.Command{
		Use:   "report",
		Short: "从表格计算报表并以 JSON 输出",
	}
	cmd.PersistentFlags().StringVar(&opts.headerRow, "header-row", "", "表头行（从 0 开始，或 auto），默认取配置")
	cmd.PersistentFlags().StringVar(&opts.xlsx, "xlsx", "", "写入 xlsx 工作簿而不是输出 JSON")

	filings := &cobra.Command{
		Use:   "filings <file.xlsx>",
		Short: "诉讼登记报表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fopts, err := filingOptions(opts.from, opts.to)
			if err != nil {
				return err
			}
			result, err := parseFile(cmd, global, args[0], model.KindFilings, opts.headerRow)
			if err != nil {
				return err
			}
			rep := report.BuildFilingReport(result.Filings, fopts)
			if opts.xlsx != "" {
				return saveWorkbook(cmd, opts.xlsx, func() (*excelize.File, error) { return exporter.FilingWorkbook(rep) })
			}
			return writeJSON(cmd.OutOrStdout(), rep)
		},
	}
	filings.Flags().StringVar(&opts.from, "from", "", "起始日期 YYYY-MM-DD（含）")
	filings.Flags().StringVar(&opts.to, "to", "", "结束日期 YYYY-MM-DD（含）")

	clients := &cobra.Command{
		Use:   "clients <file.xlsx>",
		Short: "客户登记报表",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := parseFile(cmd, global, args[0], model.KindClients, opts.headerRow)
			if err != nil {
				return err
			}
			rep := report.BuildClientReport(result.Clients)
			if opts.xlsx != "" {
				return saveWorkbook(cmd, opts.xlsx, func() (*excelize.File, error) { return exporter.ClientWorkbook(rep) })
			}
			return writeJSON(cmd.OutOrStdout(), rep)
		},
	}

	cmd.AddCommand(filings, clients)
	return cmd
}

// parseFile 读取表格，摘要写到 stderr，报表写到 stdout
func parseFile(cmd *cobra.Command, global *globalOptions, path string, kind model.RecordKind, headerRow string) (*importer.Result, error) {
	cfg, _, logger, err := global.runtime()
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	layout, err := layoutFor(cfg, kind, headerRow)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}

	result, err := importer.Parse(cmd.Context(), f, importer.Options{
		Kind:     kind,
		Filename: filepath.Base(path),
		Layout:   &layout,
	})
	if err != nil {
		return nil, err
	}

	r := result.Report
	fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s): %d 个工作表, %d 行, 有效 %d, 丢弃 %d\n",
		r.Filename, humanize.Bytes(uint64(stat.Size())), r.TotalSheets, r.TotalRows, r.ValidRows, r.DroppedRows)
	return result, nil
}

func layoutFor(cfg *config.AppConfig, kind model.RecordKind, raw string) (parser.Layout, error) {
	if raw != "" {
		return parser.ParseLayout(raw)
	}
	if kind == model.KindClients {
		return parser.Layout{HeaderRow: cfg.Ingest.ClientHeaderRow}, nil
	}
	return parser.Layout{HeaderRow: cfg.Ingest.FilingHeaderRow}, nil
}

func filingOptions(from, to string) (report.FilingOptions, error) {
	var opts report.FilingOptions
	for _, b := range []struct {
		flag string
		raw  string
		dst  **time.Time
	}{
		{"--from", from, &opts.From},
		{"--to", to, &opts.To},
	} {
		if b.raw == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", b.raw)
		if err != nil {
			return opts, fmt.Errorf("invalid %s %q: want YYYY-MM-DD", b.flag, b.raw)
		}
		*b.dst = &d
	}
	return opts, nil
}

func saveWorkbook(cmd *cobra.Command, path string, build func() (*excelize.File, error)) error {
	f, err := build()
	if err != nil {
		return err
	}
	defer f.Close()
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "已写入 %s\n", path)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
