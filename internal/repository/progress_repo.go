package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"kidlearn/internal/database"
	"kidlearn/internal/models"
)

const progressColumns = `id, user_id, activity_type, level, completed_items, total_items, stars, updated_at`

// ProgressRepository handles the progress ledger
type ProgressRepository struct {
	db database.DBTX
}

// NewProgressRepository creates a new progress repository
func NewProgressRepository(db database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *ProgressRepository) WithTx(tx database.DBTX) *ProgressRepository {
	return &ProgressRepository{db: tx}
}

// GetByKey looks a record up by its natural key. Returns nil, nil when absent.
func (r *ProgressRepository) GetByKey(ctx context.Context, userID int64, activityType string, level int) (*models.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? AND activity_type = ? AND level = ?`
	record, err := scanProgress(r.db.QueryRowContext(ctx, query, userID, activityType, level))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return record, nil
}

// Insert stores a new record and sets its ID
func (r *ProgressRepository) Insert(ctx context.Context, record *models.ProgressRecord) error {
	items, err := encodeItems(record.CompletedItems)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO user_progress (user_id, activity_type, level, completed_items, total_items, stars, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query,
		record.UserID, record.ActivityType, record.Level, items, record.TotalItems, record.Stars, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert progress: %w", err)
	}
	record.ID = id
	return nil
}

// Replace overwrites the completed items and stars of an existing record
func (r *ProgressRepository) Replace(ctx context.Context, id int64, completedItems []int64, stars int, updatedAt time.Time) error {
	items, err := encodeItems(completedItems)
	if err != nil {
		return err
	}

	query := `UPDATE user_progress SET completed_items = ?, stars = ?, updated_at = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, items, stars, updatedAt, id); err != nil {
		return fmt.Errorf("failed to update progress: %w", err)
	}
	return nil
}

// ListByUser returns all records for a user ordered by type and level
func (r *ProgressRepository) ListByUser(ctx context.Context, userID int64) ([]models.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? ORDER BY activity_type, level`
	return r.list(ctx, query, userID)
}

// ListByUserAndType returns a user's records for one activity type
func (r *ProgressRepository) ListByUserAndType(ctx context.Context, userID int64, activityType string) ([]models.ProgressRecord, error) {
	query := `SELECT ` + progressColumns + ` FROM user_progress WHERE user_id = ? AND activity_type = ? ORDER BY level`
	return r.list(ctx, query, userID, activityType)
}

// ListAll returns every record, for backups
func (r *ProgressRepository) ListAll(ctx context.Context) ([]models.ProgressRecord, error) {
	return r.list(ctx, `SELECT `+progressColumns+` FROM user_progress ORDER BY id`)
}

// DeleteByUser removes all of a user's records
func (r *ProgressRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	return r.delete(ctx, `DELETE FROM user_progress WHERE user_id = ?`, userID)
}

// DeleteByUserAndType removes a user's records for one activity type
func (r *ProgressRepository) DeleteByUserAndType(ctx context.Context, userID int64, activityType string) (int64, error) {
	return r.delete(ctx, `DELETE FROM user_progress WHERE user_id = ? AND activity_type = ?`, userID, activityType)
}

// Restore inserts a record with its original ID and timestamp
func (r *ProgressRepository) Restore(ctx context.Context, record models.ProgressRecord) error {
	items, err := encodeItems(record.CompletedItems)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO user_progress (id, user_id, activity_type, level, completed_items, total_items, stars, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = r.db.ExecContext(ctx, query, record.ID, record.UserID, record.ActivityType, record.Level,
		items, record.TotalItems, record.Stars, record.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to restore progress %d: %w", record.ID, err)
	}
	return nil
}

func (r *ProgressRepository) list(ctx context.Context, query string, args ...any) ([]models.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	records := []models.ProgressRecord{}
	for rows.Next() {
		record, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	return records, nil
}

func (r *ProgressRepository) delete(ctx context.Context, query string, args ...any) (int64, error) {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete progress: %w", err)
	}
	return result.RowsAffected()
}

func scanProgress(row rowScanner) (*models.ProgressRecord, error) {
	record := &models.ProgressRecord{}
	var items []byte
	err := row.Scan(&record.ID, &record.UserID, &record.ActivityType, &record.Level,
		&items, &record.TotalItems, &record.Stars, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	record.CompletedItems, err = decodeItems(items)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func encodeItems(items []int64) (string, error) {
	if items == nil {
		items = []int64{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode completed items: %w", err)
	}
	return string(data), nil
}

func decodeItems(data []byte) ([]int64, error) {
	items := []int64{}
	if len(data) == 0 {
		return items, nil
	}
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to decode completed items: %w", err)
	}
	if items == nil {
		items = []int64{}
	}
	return items, nil
}
