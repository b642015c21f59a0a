package parser

import (
	"sort"
	"strings"
	"time"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// RowMapper 把原始行映射为规范记录
type RowMapper struct {
	schema     *Schema
	mapper     *FieldMapper
	classifier *Classifier
	now        func() time.Time
}

// RowMapperOption 行映射器选项
type RowMapperOption func(*RowMapper)

// WithClock 注入“今天”（用于逾期天数等派生字段）
func WithClock(now func() time.Time) RowMapperOption {
	return func(m *RowMapper) {
		if now != nil {
			m.now = now
		}
	}
}

// WithClassifier 替换默认的诉讼类型分类器
func WithClassifier(c *Classifier) RowMapperOption {
	return func(m *RowMapper) {
		if c != nil {
			m.classifier = c
		}
	}
}

// NewRowMapper 创建行映射器
func NewRowMapper(schema *Schema, opts ...RowMapperOption) *RowMapper {
	m := &RowMapper{
		schema:     schema,
		mapper:     NewFieldMapper(schema.Labels),
		classifier: NewActionClassifier(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Schema 当前字段表
func (m *RowMapper) Schema() *Schema {
	return m.schema
}

// Mappings 表头映射结果
func (m *RowMapper) Mappings(headers []string) map[int]FieldMapping {
	return m.mapper.MapHeaders(headers)
}

// MapRow 映射与表头对齐的一行；同一字段出现在多列时后面的列覆盖前面的
func (m *RowMapper) MapRow(headers []string, cells []any, sheetName string, rowNo int) *model.Record {
	return m.mapWith(m.Mappings(headers), cells, sheetName, rowNo)
}

// MapKeyed 映射“列名 → 值”形式的一行，列名按字典序处理以保证结果确定
func (m *RowMapper) MapKeyed(row map[string]any, sheetName string, rowNo int) *model.Record {
	keys := make([]string, 0, len(row))
	for k := range row {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cells := make([]any, len(keys))
	for i, k := range keys {
		cells[i] = row[k]
	}
	return m.MapRow(keys, cells, sheetName, rowNo)
}

func (m *RowMapper) mapWith(mappings map[int]FieldMapping, cells []any, sheetName string, rowNo int) *model.Record {
	record := model.NewRecord(sheetName, rowNo)

	cols := make([]int, 0, len(mappings))
	for idx := range mappings {
		cols = append(cols, idx)
	}
	sort.Ints(cols)

	for _, idx := range cols {
		if idx >= len(cells) {
			continue
		}
		cell := cells[idx]
		if isEmptyCell(cell) {
			continue
		}
		f := mappings[idx].Field
		if v, ok := m.convert(f, cell); ok {
			record.Set(f, v)
		}
	}

	if m.schema.Derive != nil {
		m.schema.Derive(record, m.now())
	}
	return record
}

// convert 按字段类型转换单元格，返回 false 表示该字段省略
func (m *RowMapper) convert(f model.Field, cell any) (model.Value, bool) {
	switch m.schema.KindOf(f) {
	case FieldDate:
		t, ok := ParseDate(cell)
		return model.DateValue(t, ok), true
	case FieldCategory:
		s := m.classifier.Classify(toText(cell))
		if s == "" {
			return model.Value{}, false
		}
		return model.StringValue(s), true
	case FieldList:
		return model.ListValue(SplitList(toText(cell))), true
	case FieldNumber:
		n, ok := ParseNumber(cell)
		return model.NumberValue(n, ok), true
	default:
		s := strings.TrimSpace(toText(cell))
		if s == "" {
			return model.Value{}, false
		}
		return model.StringValue(s), true
	}
}
