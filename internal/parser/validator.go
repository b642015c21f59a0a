package parser

import "github.com/helderdsa/dashboard-controladoria/internal/model"

// Validator 记录校验：至少一个标识字段非空
type Validator struct {
	identity []model.Field
}

// NewValidator 按字段表的标识字段创建校验器
func NewValidator(schema *Schema) *Validator {
	return &Validator{identity: schema.Identity}
}

// Valid 记录是否有效
func (v *Validator) Valid(r *model.Record) bool {
	if r == nil {
		return false
	}
	for _, f := range v.identity {
		if r.HasText(f) {
			return true
		}
	}
	return false
}

// Filter 丢弃无效记录，保持原有顺序
func (v *Validator) Filter(records []*model.Record) []*model.Record {
	valid := make([]*model.Record, 0, len(records))
	for _, r := range records {
		if v.Valid(r) {
			valid = append(valid, r)
		}
	}
	return valid
}
