package repository

import (
	"context"
	"fmt"

	"kidlearn/internal/database"
	"kidlearn/internal/models"
)

// AchievementRepository handles the append-only achievement log
type AchievementRepository struct {
	db database.DBTX
}

// NewAchievementRepository creates a new achievement repository
func NewAchievementRepository(db database.DBTX) *AchievementRepository {
	return &AchievementRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *AchievementRepository) WithTx(tx database.DBTX) *AchievementRepository {
	return &AchievementRepository{db: tx}
}

// Create appends an achievement and sets its ID
func (r *AchievementRepository) Create(ctx context.Context, a *models.Achievement) error {
	query := `
		INSERT INTO achievements (user_id, title, description, icon, earned_at)
		VALUES (?, ?, ?, ?, ?)
	`
	id, err := r.db.ExecReturningID(ctx, query, a.UserID, a.Title, a.Description, a.Icon, a.EarnedAt)
	if err != nil {
		return fmt.Errorf("failed to create achievement: %w", err)
	}
	a.ID = id
	return nil
}

// ListByUser returns a user's achievements, newest first
func (r *AchievementRepository) ListByUser(ctx context.Context, userID int64) ([]models.Achievement, error) {
	query := `
		SELECT id, user_id, title, description, icon, earned_at
		FROM achievements
		WHERE user_id = ?
		ORDER BY earned_at DESC, id DESC
	`
	return r.list(ctx, query, userID)
}

// ListAll returns every achievement, for backups
func (r *AchievementRepository) ListAll(ctx context.Context) ([]models.Achievement, error) {
	return r.list(ctx, `SELECT id, user_id, title, description, icon, earned_at FROM achievements ORDER BY id`)
}

// DeleteByUser removes all of a user's achievements
func (r *AchievementRepository) DeleteByUser(ctx context.Context, userID int64) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM achievements WHERE user_id = ?`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete achievements: %w", err)
	}
	return result.RowsAffected()
}

// Restore inserts an achievement with its original ID
func (r *AchievementRepository) Restore(ctx context.Context, a models.Achievement) error {
	query := `
		INSERT INTO achievements (id, user_id, title, description, icon, earned_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`
	if _, err := r.db.ExecContext(ctx, query, a.ID, a.UserID, a.Title, a.Description, a.Icon, a.EarnedAt); err != nil {
		return fmt.Errorf("failed to restore achievement %d: %w", a.ID, err)
	}
	return nil
}

func (r *AchievementRepository) list(ctx context.Context, query string, args ...any) ([]models.Achievement, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	defer rows.Close()

	achievements := []models.Achievement{}
	for rows.Next() {
		var a models.Achievement
		if err := rows.Scan(&a.ID, &a.UserID, &a.Title, &a.Description, &a.Icon, &a.EarnedAt); err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		achievements = append(achievements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}
