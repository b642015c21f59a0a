package model

import "time"

// ImportLog 导入日志（仅记录导入过程，不保存记录本身）
type ImportLog struct {
	ID           int64      `json:"id"`
	ImportID     string     `json:"importId"`
	Kind         RecordKind `json:"kind"`
	Filename     string     `json:"filename"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	TotalSheets  int        `json:"totalSheets"`
	TotalRows    int        `json:"totalRows"`
	ValidRows    int        `json:"validRows"`
	DroppedRows  int        `json:"droppedRows"`
	Status       string     `json:"status"` // processing/success/failed
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}
