package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/helderdsa/dashboard-controladoria/internal/model"
)

// 导入状态
const (
	ImportStatusProcessing = "processing"
	ImportStatusSuccess    = "success"
	ImportStatusFailed     = "failed"
)

// ErrImportLogNotFound 没有导入日志
var ErrImportLogNotFound = errors.New("import log not found")

const importLogColumns = `id, import_id, kind, filename, file_size, file_hash, total_sheets,
	total_rows, valid_rows, dropped_rows, status, error_message, created_at, completed_at`

// CreateImportLog 创建导入日志，返回 import_log_id
func (s *Store) CreateImportLog(importID string, kind model.RecordKind, filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.db.Exec(`
		INSERT INTO import_logs (import_id, kind, filename, file_size, file_hash, status)
		VALUES (?, ?, ?, ?, ?, ?)
	`, importID, string(kind), filename, fileSize, fileHash, ImportStatusProcessing)
	if err != nil {
		return 0, fmt.Errorf("failed to create import log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get import log id: %w", err)
	}
	return id, nil
}

// CompleteImportLog 完成导入日志更新
func (s *Store) CompleteImportLog(id int64, totalSheets, totalRows, validRows, droppedRows int, status, errorMessage string) error {
	res, err := s.db.Exec(`
		UPDATE import_logs SET
			total_sheets = ?,
			total_rows = ?,
			valid_rows = ?,
			dropped_rows = ?,
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, totalSheets, totalRows, validRows, droppedRows, status, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to update import log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("failed to update import log %d: %w", id, ErrImportLogNotFound)
	}
	return nil
}

// SetImportLogKind 自动识别后回写实际记录类型
func (s *Store) SetImportLogKind(id int64, kind model.RecordKind) error {
	if _, err := s.db.Exec(`UPDATE import_logs SET kind = ? WHERE id = ?`, string(kind), id); err != nil {
		return fmt.Errorf("failed to update import log kind: %w", err)
	}
	return nil
}

// ListImportLogs 最近的导入日志，按时间倒序
func (s *Store) ListImportLogs(limit int) ([]model.ImportLog, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`SELECT `+importLogColumns+` FROM import_logs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list import logs: %w", err)
	}
	defer rows.Close()

	logs := make([]model.ImportLog, 0)
	for rows.Next() {
		l, err := scanImportLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate import logs: %w", err)
	}
	return logs, nil
}

// LastImportLog 最近一次导入
func (s *Store) LastImportLog() (model.ImportLog, error) {
	row := s.db.QueryRow(`SELECT ` + importLogColumns + ` FROM import_logs ORDER BY id DESC LIMIT 1`)
	l, err := scanImportLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.ImportLog{}, ErrImportLogNotFound
	}
	return l, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanImportLog(row rowScanner) (model.ImportLog, error) {
	var (
		l         model.ImportLog
		kind      string
		completed sql.NullTime
	)
	err := row.Scan(&l.ID, &l.ImportID, &kind, &l.Filename, &l.FileSize, &l.FileHash, &l.TotalSheets,
		&l.TotalRows, &l.ValidRows, &l.DroppedRows, &l.Status, &l.ErrorMessage, &l.CreatedAt, &completed)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return l, err
		}
		return l, fmt.Errorf("failed to scan import log: %w", err)
	}
	l.Kind = model.RecordKind(kind)
	if completed.Valid {
		t := completed.Time
		l.CompletedAt = &t
	}
	return l, nil
}
