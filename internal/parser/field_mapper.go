package parser

import (
	"strings"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// LabelRule 已知列名到规范字段的映射规则
type LabelRule struct {
	Label string
	Field model.Field
}

// FieldMapper 列名映射器：先精确匹配，再按声明顺序做子串匹配
type FieldMapper struct {
	exact map[string]model.Field
	rules []LabelRule // 已规范化，保持声明顺序
}

// NewFieldMapper 创建列名映射器，规则中的列名在此统一规范化
func NewFieldMapper(rules []LabelRule) *FieldMapper {
	m := &FieldMapper{
		exact: make(map[string]model.Field, len(rules)),
		rules: make([]LabelRule, 0, len(rules)),
	}
	for _, r := range rules {
		label := NormalizeHeader(r.Label)
		if label == "" {
			continue
		}
		if _, dup := m.exact[label]; dup {
			continue
		}
		m.exact[label] = r.Field
		m.rules = append(m.rules, LabelRule{Label: label, Field: r.Field})
	}
	return m
}

// Map 映射已规范化的列名，未命中返回 false
func (m *FieldMapper) Map(normalized string) (model.Field, bool) {
	if normalized == "" {
		return "", false
	}
	if f, ok := m.exact[normalized]; ok {
		return f, true
	}
	for _, r := range m.rules {
		if strings.Contains(normalized, r.Label) {
			return r.Field, true
		}
	}
	return "", false
}

// MapHeaders 映射整行表头，未映射的列不出现在结果中
func (m *FieldMapper) MapHeaders(headers []string) map[int]FieldMapping {
	mappings := make(map[int]FieldMapping)
	for idx, h := range headers {
		col := NormalizeHeader(h)
		f, ok := m.Map(col)
		if !ok {
			continue
		}
		mappings[idx] = FieldMapping{
			ColumnIndex: idx,
			ColumnName:  col,
			Field:       f,
		}
	}
	return mappings
}
