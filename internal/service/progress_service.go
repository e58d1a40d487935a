package service

import (
	"context"
	"time"

	"kidlearn/internal/apperr"
	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/repository"
	"kidlearn/internal/validation"
)

// ProgressInput is the payload of a progress upsert. Only its shape is
// checked: item IDs, level range, activity type and stars are trusted.
type ProgressInput struct {
	UserID         int64   `json:"userId" validate:"required,gt=0"`
	ActivityType   string  `json:"activityType" validate:"required"`
	Level          *int    `json:"level" validate:"required"`
	CompletedItems []int64 `json:"completedItems"`
	Stars          int     `json:"stars"`
}

// DefaultTotalItems is the totalItems stamped on a new record of any type
const DefaultTotalItems = 10

// ProgressService owns the progress ledger
type ProgressService struct {
	db       *database.DB
	progress *repository.ProgressRepository
	total    int
	log      *logger.Logger
	now      func() time.Time
}

// NewProgressService creates a new progress service. New records get
// defaultTotal items, or DefaultTotalItems when it is not positive.
func NewProgressService(db *database.DB, defaultTotal int, log *logger.Logger) *ProgressService {
	if defaultTotal <= 0 {
		defaultTotal = DefaultTotalItems
	}
	return &ProgressService{
		db:       db,
		progress: repository.NewProgressRepository(db),
		total:    defaultTotal,
		log:      log,
		now:      time.Now,
	}
}

// RecordProgress creates or replaces the record for (user, activity type, level).
// An existing record gets the new items and stars wholesale; a new one gets the
// default item count whatever its type. Repeated item IDs are stored once.
// Concurrent calls for the same key are last-write-wins.
func (s *ProgressService) RecordProgress(ctx context.Context, input ProgressInput) (*models.ProgressRecord, error) {
	input.ActivityType = trim(input.ActivityType)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	items := models.DedupeItems(input.CompletedItems)
	now := s.now().UTC()
	level := *input.Level

	var record *models.ProgressRecord
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.progress.WithTx(tx)

		existing, err := repo.GetByKey(ctx, input.UserID, input.ActivityType, level)
		if err != nil {
			return err
		}

		if existing != nil {
			if err := repo.Replace(ctx, existing.ID, items, input.Stars, now); err != nil {
				return err
			}
			existing.CompletedItems = items
			existing.Stars = input.Stars
			existing.UpdatedAt = now
			record = existing
			return nil
		}

		record = &models.ProgressRecord{
			UserID:         input.UserID,
			ActivityType:   input.ActivityType,
			Level:          level,
			CompletedItems: items,
			TotalItems:     s.total,
			Stars:          input.Stars,
			UpdatedAt:      now,
		}
		return repo.Insert(ctx, record)
	})
	if err != nil {
		return nil, apperr.Storage("failed to record progress", err)
	}

	s.log.Debug("progress recorded",
		"user_id", record.UserID,
		"activity_type", record.ActivityType,
		"level", record.Level,
		"items", record.CompletedCount(),
		"stars", record.Stars,
	)
	return record, nil
}

// ListProgress returns every record for a user
func (s *ProgressService) ListProgress(ctx context.Context, userID int64) ([]models.ProgressRecord, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to list progress", err)
	}
	return records, nil
}

// ListProgressByType returns a user's records for one activity type
func (s *ProgressService) ListProgressByType(ctx context.Context, userID int64, activityType string) ([]models.ProgressRecord, error) {
	records, err := s.progress.ListByUserAndType(ctx, userID, activityType)
	if err != nil {
		return nil, apperr.Storage("failed to list progress", err)
	}
	return records, nil
}

// ClearProgress removes all of a user's records and returns how many
func (s *ProgressService) ClearProgress(ctx context.Context, userID int64) (int64, error) {
	n, err := s.progress.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, apperr.Storage("failed to clear progress", err)
	}
	s.log.Info("progress cleared", "user_id", userID, "rows", n)
	return n, nil
}

// ClearProgressByType removes a user's records for one activity type
func (s *ProgressService) ClearProgressByType(ctx context.Context, userID int64, activityType string) (int64, error) {
	n, err := s.progress.DeleteByUserAndType(ctx, userID, activityType)
	if err != nil {
		return 0, apperr.Storage("failed to clear progress", err)
	}
	s.log.Info("progress cleared", "user_id", userID, "activity_type", activityType, "rows", n)
	return n, nil
}
