package parser

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// SheetParser 工作表解析器
type SheetParser struct {
	file      *excelize.File
	mapper    *RowMapper
	validator *Validator
	layout    Layout
}

// NewSheetParser 创建工作表解析器；layout 为 nil 时使用字段表默认布局
func NewSheetParser(file *excelize.File, mapper *RowMapper, layout *Layout) *SheetParser {
	l := mapper.Schema().Layout
	if layout != nil {
		l = *layout
	}
	return &SheetParser{
		file:      file,
		mapper:    mapper,
		validator: NewValidator(mapper.Schema()),
		layout:    l,
	}
}

// ParseSheet 解析单个 Sheet，返回有效记录与解析结果
func (p *SheetParser) ParseSheet(sheetName string) ([]*model.Record, ParseResult, error) {
	rows, err := ReadRows(p.file, sheetName)
	if err != nil {
		return nil, ParseResult{SheetName: sheetName, Status: "error", Errors: []string{err.Error()}},
			fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}
	records, result := ParseRows(p.mapper, p.validator, sheetName, rows, p.layout)
	return records, result, nil
}

// ReadRows 读取 Sheet 的原始单元格值，日期单元格保留序列号而不是显示格式
func ReadRows(file *excelize.File, sheetName string) ([][]string, error) {
	return file.GetRows(sheetName, excelize.Options{RawCellValue: true})
}

// ParseRows 按布局解析二维单元格：表头行之前的行忽略，表头之后为数据
func ParseRows(mapper *RowMapper, validator *Validator, sheetName string, rows [][]string, layout Layout) ([]*model.Record, ParseResult) {
	start := time.Now()
	result := ParseResult{
		SheetName: sheetName,
		HeaderRow: layout.HeaderRow,
	}

	if len(rows) < layout.MinRows() {
		result.Status = "skipped"
		result.Errors = []string{"sheet has no data rows"}
		result.Duration = time.Since(start)
		return nil, result
	}

	headerRow := layout.HeaderRow
	if headerRow == HeaderRowAuto {
		headerRow = DetectHeaderRow(mapper, rows)
		result.HeaderRow = headerRow
	}
	if len(rows) < headerRow+2 {
		result.Status = "skipped"
		result.Errors = []string{"sheet has no data rows"}
		result.Duration = time.Since(start)
		return nil, result
	}

	mappings := mapper.Mappings(rows[headerRow])
	result.MappedFields = len(mappings)

	var records []*model.Record
	for rowIdx := headerRow + 1; rowIdx < len(rows); rowIdx++ {
		result.TotalRows++
		cells := make([]any, len(rows[rowIdx]))
		for i, c := range rows[rowIdx] {
			cells[i] = c
		}
		record := mapper.mapWith(mappings, cells, sheetName, rowIdx+1)
		if !validator.Valid(record) {
			result.DroppedRows++
			continue
		}
		records = append(records, record)
	}

	result.ValidRows = len(records)
	result.Status = "imported"
	result.Duration = time.Since(start)
	return records, result
}

// DetectHeaderRow 比较第 0 行与第 1 行可映射的字段数，取多者；相同取第 0 行
func DetectHeaderRow(mapper *RowMapper, rows [][]string) int {
	if len(rows) < 2 {
		return 0
	}
	first := len(mapper.Mappings(rows[0]))
	second := len(mapper.Mappings(rows[1]))
	if second > first {
		return 1
	}
	return 0
}
