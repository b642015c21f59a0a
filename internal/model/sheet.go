package model

// RecordKind 导入表格的记录类型
type RecordKind string

const (
	KindClients RecordKind = "clients" // 客户登记表
	KindFilings RecordKind = "filings" // 起诉状登记表
	KindAuto    RecordKind = "auto"    // 按表头自动识别
)

// Valid 是否为已知类型
func (k RecordKind) Valid() bool {
	switch k {
	case KindClients, KindFilings:
		return true
	}
	return false
}
