package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
	"github.com/helderdsa/dashboard-controladoria/internal/parser"
)

var (
	// ErrOpenWorkbook 文件无法作为工作簿打开
	ErrOpenWorkbook = errors.New("failed to open workbook")
	// ErrUnknownKind 未知的记录类型
	ErrUnknownKind = errors.New("unknown record kind")
)

// Options 解析选项
type Options struct {
	Kind     model.RecordKind
	Filename string
	Layout   *parser.Layout   // nil 时使用字段表默认布局
	Now      func() time.Time // 派生字段使用的“今天”，nil 时为 time.Now
}

// Result 一次解析的全部输出，只存在于内存中
type Result struct {
	Report  *parser.ImportReport `json:"report"`
	Records []*model.Record      `json:"-"`
	Clients []model.Client       `json:"clients,omitempty"`
	Filings []model.Filing       `json:"filings,omitempty"`
}

// Parse 读取工作簿的所有 Sheet 并映射为记录；工作簿无法打开时不返回任何数据
func Parse(ctx context.Context, r io.Reader, opts Options) (*Result, error) {
	if !acceptedKind(opts.Kind) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
	file, err := openWorkbook(r)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return parseWorkbook(ctx, file, opts, uuid.NewString(), nil)
}

func acceptedKind(kind model.RecordKind) bool {
	return kind.Valid() || kind == model.KindAuto
}

// DetectKind 按表头识别工作簿类型：取第一个能识别的 Sheet
func DetectKind(file *excelize.File) (parser.Recognition, error) {
	recognizer := parser.NewKindRecognizer()
	for _, name := range file.GetSheetList() {
		rows, err := parser.ReadRows(file, name)
		if err != nil {
			continue
		}
		if rec := recognizer.Recognize(name, rows); rec.Recognized() {
			return rec, nil
		}
	}
	return parser.Recognition{}, fmt.Errorf("%w: no sheet matches a known layout", ErrUnknownKind)
}

func openWorkbook(r io.Reader) (*excelize.File, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenWorkbook, err)
	}
	return file, nil
}

// parseWorkbook 逐个 Sheet 解析，emit 非 nil 时上报进度
func parseWorkbook(ctx context.Context, file *excelize.File, opts Options, importID string, emit func(ProgressEvent)) (*Result, error) {
	start := time.Now()
	if emit == nil {
		emit = func(ProgressEvent) {}
	}

	if opts.Kind == model.KindAuto {
		rec, err := DetectKind(file)
		if err != nil {
			return nil, err
		}
		opts.Kind = rec.Kind
		if opts.Layout == nil {
			opts.Layout = &parser.Layout{HeaderRow: parser.HeaderRowAuto}
		}
		emit(newEvent(EventInfo, fmt.Sprintf("识别为 %s（Sheet %s，第 %d 行表头）", rec.Kind, rec.SheetName, rec.HeaderRow), rec))
	}

	schema, ok := parser.SchemaFor(opts.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
	var mapperOpts []parser.RowMapperOption
	if opts.Now != nil {
		mapperOpts = append(mapperOpts, parser.WithClock(opts.Now))
	}
	sheetParser := parser.NewSheetParser(file, parser.NewRowMapper(schema, mapperOpts...), opts.Layout)

	sheets := file.GetSheetList()
	result := &Result{
		Report: &parser.ImportReport{
			ImportID:    importID,
			Filename:    opts.Filename,
			Kind:        opts.Kind,
			TotalSheets: len(sheets),
			Sheets:      []parser.ParseResult{},
		},
	}

	emit(newEvent(EventInfo, fmt.Sprintf("发现 %d 个 Sheet", len(sheets)), map[string]interface{}{
		"total_sheets": len(sheets),
	}))

	for _, name := range sheets {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		emit(newEvent(EventSheetStart, fmt.Sprintf("正在解析 Sheet: %s", name), map[string]string{
			"sheet_name": name,
		}))

		records, sheetResult, err := sheetParser.ParseSheet(name)
		result.Report.Add(sheetResult)
		switch {
		case err != nil:
			emit(newEvent(EventWarning, fmt.Sprintf("读取 Sheet 失败: %s: %v", name, err), sheetResult))
			continue
		case sheetResult.Status == "skipped":
			emit(newEvent(EventWarning, fmt.Sprintf("跳过 Sheet: %s（没有数据行）", name), sheetResult))
			continue
		}

		result.Records = append(result.Records, records...)
		emit(newEvent(EventSheetDone, fmt.Sprintf("Sheet \"%s\" 解析完成: %d 行有效, %d 行丢弃", name, sheetResult.ValidRows, sheetResult.DroppedRows), sheetResult))
	}

	switch opts.Kind {
	case model.KindClients:
		result.Clients = make([]model.Client, 0, len(result.Records))
		for _, r := range result.Records {
			result.Clients = append(result.Clients, model.ClientFromRecord(r))
		}
	case model.KindFilings:
		result.Filings = make([]model.Filing, 0, len(result.Records))
		for _, r := range result.Records {
			result.Filings = append(result.Filings, model.FilingFromRecord(r))
		}
	}

	result.Report.Duration = time.Since(start)
	return result, nil
}
