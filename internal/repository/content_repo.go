package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"kidlearn/internal/database"
	"kidlearn/internal/models"
)

// ContentRepository handles the reading word and math activity catalogs
type ContentRepository struct {
	db database.DBTX
}

// NewContentRepository creates a new content repository
func NewContentRepository(db database.DBTX) *ContentRepository {
	return &ContentRepository{db: db}
}

// WithTx returns a copy of the repository bound to tx
func (r *ContentRepository) WithTx(tx database.DBTX) *ContentRepository {
	return &ContentRepository{db: tx}
}

// CreateWord inserts a reading word
func (r *ContentRepository) CreateWord(ctx context.Context, word *models.ReadingWord) error {
	query := `INSERT INTO reading_words (word, level, image_url) VALUES (?, ?, ?)`
	id, err := r.db.ExecReturningID(ctx, query, word.Word, word.Level, word.ImageURL)
	if err != nil {
		return fmt.Errorf("failed to create word: %w", err)
	}
	word.ID = id
	return nil
}

// GetWordByID retrieves a reading word. Returns nil, nil when absent.
func (r *ContentRepository) GetWordByID(ctx context.Context, id int64) (*models.ReadingWord, error) {
	word := &models.ReadingWord{}
	err := r.db.QueryRowContext(ctx, `SELECT id, word, level, image_url FROM reading_words WHERE id = ?`, id).
		Scan(&word.ID, &word.Word, &word.Level, &word.ImageURL)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get word: %w", err)
	}
	return word, nil
}

// ListWordsByLevel returns the words of one level in catalog order
func (r *ContentRepository) ListWordsByLevel(ctx context.Context, level int) ([]models.ReadingWord, error) {
	return r.listWords(ctx, `SELECT id, word, level, image_url FROM reading_words WHERE level = ? ORDER BY id`, level)
}

// ListAllWords returns every word ordered by level
func (r *ContentRepository) ListAllWords(ctx context.Context) ([]models.ReadingWord, error) {
	return r.listWords(ctx, `SELECT id, word, level, image_url FROM reading_words ORDER BY level, id`)
}

// UpdateWord replaces a word's fields. Returns false when it does not exist.
func (r *ContentRepository) UpdateWord(ctx context.Context, word *models.ReadingWord) (bool, error) {
	existing, err := r.GetWordByID(ctx, word.ID)
	if err != nil || existing == nil {
		return false, err
	}
	query := `UPDATE reading_words SET word = ?, level = ?, image_url = ? WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, word.Word, word.Level, word.ImageURL, word.ID); err != nil {
		return false, fmt.Errorf("failed to update word: %w", err)
	}
	return true, nil
}

// DeleteWord removes a word. Returns false when it does not exist.
func (r *ContentRepository) DeleteWord(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, `DELETE FROM reading_words WHERE id = ?`, id)
}

// CountWords returns the size of the reading catalog
func (r *ContentRepository) CountWords(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM reading_words`)
}

// RestoreWord inserts a word with its original ID
func (r *ContentRepository) RestoreWord(ctx context.Context, word models.ReadingWord) error {
	query := `INSERT INTO reading_words (id, word, level, image_url) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, word.ID, word.Word, word.Level, word.ImageURL); err != nil {
		return fmt.Errorf("failed to restore word %d: %w", word.ID, err)
	}
	return nil
}

// CreateActivity inserts a math activity
func (r *ContentRepository) CreateActivity(ctx context.Context, activity *models.MathActivity) error {
	objects, err := encodeObjects(activity.Objects)
	if err != nil {
		return err
	}
	query := `INSERT INTO math_activities (type, level, question, answer, objects) VALUES (?, ?, ?, ?, ?)`
	id, err := r.db.ExecReturningID(ctx, query, activity.Type, activity.Level, activity.Question, activity.Answer, objects)
	if err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}
	activity.ID = id
	return nil
}

// GetActivityByID retrieves a math activity. Returns nil, nil when absent.
func (r *ContentRepository) GetActivityByID(ctx context.Context, id int64) (*models.MathActivity, error) {
	query := `SELECT id, type, level, question, answer, objects FROM math_activities WHERE id = ?`
	activity, err := scanActivity(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get activity: %w", err)
	}
	return activity, nil
}

// ListActivities returns the activities of one type and level
func (r *ContentRepository) ListActivities(ctx context.Context, activityType string, level int) ([]models.MathActivity, error) {
	query := `SELECT id, type, level, question, answer, objects FROM math_activities WHERE type = ? AND level = ? ORDER BY id`
	return r.listActivities(ctx, query, activityType, level)
}

// ListAllActivities returns the full math catalog
func (r *ContentRepository) ListAllActivities(ctx context.Context) ([]models.MathActivity, error) {
	query := `SELECT id, type, level, question, answer, objects FROM math_activities ORDER BY type, level, id`
	return r.listActivities(ctx, query)
}

// UpdateActivity replaces an activity's fields. Returns false when it does not exist.
func (r *ContentRepository) UpdateActivity(ctx context.Context, activity *models.MathActivity) (bool, error) {
	existing, err := r.GetActivityByID(ctx, activity.ID)
	if err != nil || existing == nil {
		return false, err
	}
	objects, err := encodeObjects(activity.Objects)
	if err != nil {
		return false, err
	}
	query := `UPDATE math_activities SET type = ?, level = ?, question = ?, answer = ?, objects = ? WHERE id = ?`
	_, err = r.db.ExecContext(ctx, query, activity.Type, activity.Level, activity.Question, activity.Answer, objects, activity.ID)
	if err != nil {
		return false, fmt.Errorf("failed to update activity: %w", err)
	}
	return true, nil
}

// DeleteActivity removes an activity. Returns false when it does not exist.
func (r *ContentRepository) DeleteActivity(ctx context.Context, id int64) (bool, error) {
	return r.deleteByID(ctx, `DELETE FROM math_activities WHERE id = ?`, id)
}

// CountActivities returns the size of the math catalog
func (r *ContentRepository) CountActivities(ctx context.Context) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM math_activities`)
}

// RestoreActivity inserts an activity with its original ID
func (r *ContentRepository) RestoreActivity(ctx context.Context, activity models.MathActivity) error {
	objects, err := encodeObjects(activity.Objects)
	if err != nil {
		return err
	}
	query := `INSERT INTO math_activities (id, type, level, question, answer, objects) VALUES (?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, query, activity.ID, activity.Type, activity.Level, activity.Question, activity.Answer, objects)
	if err != nil {
		return fmt.Errorf("failed to restore activity %d: %w", activity.ID, err)
	}
	return nil
}

func (r *ContentRepository) listWords(ctx context.Context, query string, args ...any) ([]models.ReadingWord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	defer rows.Close()

	words := []models.ReadingWord{}
	for rows.Next() {
		var w models.ReadingWord
		if err := rows.Scan(&w.ID, &w.Word, &w.Level, &w.ImageURL); err != nil {
			return nil, fmt.Errorf("failed to scan word: %w", err)
		}
		words = append(words, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list words: %w", err)
	}
	return words, nil
}

func (r *ContentRepository) listActivities(ctx context.Context, query string, args ...any) ([]models.MathActivity, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []models.MathActivity{}
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		activities = append(activities, *activity)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	return activities, nil
}

func (r *ContentRepository) deleteByID(ctx context.Context, query string, id int64) (bool, error) {
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete content: %w", err)
	}
	return n > 0, nil
}

func (r *ContentRepository) count(ctx context.Context, query string) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count content: %w", err)
	}
	return n, nil
}

func scanActivity(row rowScanner) (*models.MathActivity, error) {
	activity := &models.MathActivity{}
	var objects []byte
	err := row.Scan(&activity.ID, &activity.Type, &activity.Level, &activity.Question, &activity.Answer, &objects)
	if err != nil {
		return nil, err
	}
	activity.Objects = []string{}
	if len(objects) > 0 {
		if err := json.Unmarshal(objects, &activity.Objects); err != nil {
			return nil, fmt.Errorf("failed to decode objects: %w", err)
		}
	}
	if activity.Objects == nil {
		activity.Objects = []string{}
	}
	return activity, nil
}

func encodeObjects(objects []string) (string, error) {
	if objects == nil {
		objects = []string{}
	}
	data, err := json.Marshal(objects)
	if err != nil {
		return "", fmt.Errorf("failed to encode objects: %w", err)
	}
	return string(data), nil
}
