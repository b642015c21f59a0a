package parser

import (
	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// Recognition 工作表类型识别结果
type Recognition struct {
	SheetName  string           `json:"sheetName"`
	Kind       model.RecordKind `json:"kind"` // 无法识别时为空
	HeaderRow  int              `json:"headerRow"`
	Fields     int              `json:"fields"`     // 表头命中的不同字段数
	Confidence float64          `json:"confidence"` // Fields / 字段表字段数
}

// Recognized 是否识别出类型
func (r Recognition) Recognized() bool {
	return r.Kind != ""
}

type candidate struct {
	schema *Schema
	mapper *FieldMapper
	total  int
}

// KindRecognizer 根据表头判断工作表属于哪种记录
type KindRecognizer struct {
	candidates []candidate
}

// NewKindRecognizer 创建识别器，依次尝试给定字段表；不传时使用全部内置字段表
func NewKindRecognizer(schemas ...*Schema) *KindRecognizer {
	if len(schemas) == 0 {
		schemas = []*Schema{FilingSchema, ClientSchema}
	}
	r := &KindRecognizer{}
	for _, s := range schemas {
		fields := map[model.Field]struct{}{}
		for _, l := range s.Labels {
			fields[l.Field] = struct{}{}
		}
		r.candidates = append(r.candidates, candidate{
			schema: s,
			mapper: NewFieldMapper(s.Labels),
			total:  len(fields),
		})
	}
	return r
}

// Recognize 在第 0/1 行中找命中字段最多的表头；两种字段表得分相同时视为无法识别
func (r *KindRecognizer) Recognize(sheetName string, rows [][]string) Recognition {
	best := Recognition{SheetName: sheetName}
	tie := false

	for _, c := range r.candidates {
		for headerRow := 0; headerRow < 2 && headerRow < len(rows); headerRow++ {
			n := distinctFields(c.mapper.MapHeaders(rows[headerRow]))
			if n == 0 {
				continue
			}
			switch {
			case n > best.Fields:
				best = Recognition{
					SheetName:  sheetName,
					Kind:       c.schema.Name,
					HeaderRow:  headerRow,
					Fields:     n,
					Confidence: float64(n) / float64(c.total),
				}
				tie = false
			case n == best.Fields && c.schema.Name != best.Kind:
				tie = true
			}
		}
	}

	if tie {
		return Recognition{SheetName: sheetName, Fields: best.Fields}
	}
	return best
}

func distinctFields(mappings map[int]FieldMapping) int {
	seen := map[model.Field]struct{}{}
	for _, m := range mappings {
		seen[m.Field] = struct{}{}
	}
	return len(seen)
}
