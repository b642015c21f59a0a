package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// HeaderRowAuto 自动在第 0/1 行中选择映射字段更多的一行作为表头
const HeaderRowAuto = -1

// Layout 工作表布局
type Layout struct {
	HeaderRow int `json:"headerRow"` // 表头所在行（从 0 开始），数据从下一行开始
}

// MinRows 该布局下至少需要的行数（表头 + 一行数据）
func (l Layout) MinRows() int {
	if l.HeaderRow < 0 {
		return 2
	}
	return l.HeaderRow + 2
}

// ParseLayout 解析表头行参数："auto" 或不小于 -1 的整数
func ParseLayout(raw string) (Layout, error) {
	raw = strings.TrimSpace(raw)
	if strings.EqualFold(raw, "auto") {
		return Layout{HeaderRow: HeaderRowAuto}, nil
	}
	row, err := cast.ToIntE(raw)
	if err != nil || row < HeaderRowAuto {
		return Layout{}, fmt.Errorf("invalid header row %q: want auto or an integer >= -1", raw)
	}
	return Layout{HeaderRow: row}, nil
}

// FieldKind 字段值类型，决定单元格的解析方式
type FieldKind int

const (
	FieldText     FieldKind = iota // 去空白字符串，空值省略
	FieldDate                      // 日期解析
	FieldCategory                  // 自由文本分类
	FieldList                      // 分隔符拆分列表
	FieldNumber                    // 数值（去除非数字字符）
)

// FieldMapping 字段映射结果
type FieldMapping struct {
	ColumnIndex int         `json:"columnIndex"` // Excel 列索引
	ColumnName  string      `json:"columnName"`  // 规范化后的列名
	Field       model.Field `json:"field"`       // 规范字段
}

// ParseResult 单个 Sheet 的解析结果
type ParseResult struct {
	SheetName    string        `json:"sheetName"`
	Status       string        `json:"status"` // imported/skipped/error
	HeaderRow    int           `json:"headerRow"`
	MappedFields int           `json:"mappedFields"`
	TotalRows    int           `json:"totalRows"`
	ValidRows    int           `json:"validRows"`
	DroppedRows  int           `json:"droppedRows"`
	Errors       []string      `json:"errors,omitempty"`
	Duration     time.Duration `json:"duration"`
}

// ImportReport 导入报告
type ImportReport struct {
	ImportID       string           `json:"importId"`
	Filename       string           `json:"filename"`
	Kind           model.RecordKind `json:"kind"`
	TotalSheets    int              `json:"totalSheets"`
	ImportedSheets int              `json:"importedSheets"`
	SkippedSheets  int              `json:"skippedSheets"`
	TotalRows      int              `json:"totalRows"`
	ValidRows      int              `json:"validRows"`
	DroppedRows    int              `json:"droppedRows"`
	Duration       time.Duration    `json:"duration"`
	Sheets         []ParseResult    `json:"sheets"`
}

// Add 汇总单个 Sheet 的结果
func (r *ImportReport) Add(result ParseResult) {
	r.Sheets = append(r.Sheets, result)
	switch result.Status {
	case "imported":
		r.ImportedSheets++
	case "skipped":
		r.SkippedSheets++
	}
	r.TotalRows += result.TotalRows
	r.ValidRows += result.ValidRows
	r.DroppedRows += result.DroppedRows
}
