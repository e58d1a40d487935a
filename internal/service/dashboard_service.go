package service

import (
	"context"
	"time"

	"kidlearn/internal/apperr"
	"kidlearn/internal/database"
	"kidlearn/internal/models"
	"kidlearn/internal/repository"
)

// LevelSizes holds the total shown for a level the user has not started.
// Stored records keep their own totalItems.
type LevelSizes struct {
	Reading int
	Math    int
}

// DashboardService computes the parent dashboard at request time.
// Nothing it returns is persisted.
type DashboardService struct {
	users        *repository.UserRepository
	progress     *repository.ProgressRepository
	achievements *repository.AchievementRepository
	agg          *Aggregator
	sizes        LevelSizes
	levels       int
	now          func() time.Time
}

// NewDashboardService creates a dashboard service reporting levels 1..levels
func NewDashboardService(db *database.DB, agg *Aggregator, sizes LevelSizes, levels int) *DashboardService {
	if levels <= 0 {
		levels = 6
	}
	return &DashboardService{
		users:        repository.NewUserRepository(db),
		progress:     repository.NewProgressRepository(db),
		achievements: repository.NewAchievementRepository(db),
		agg:          agg,
		sizes:        sizes,
		levels:       levels,
		now:          time.Now,
	}
}

// Dashboard returns the full summary for one user
func (s *DashboardService) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	user, err := s.user(ctx, userID)
	if err != nil {
		return nil, err
	}
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	achievements, err := s.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to list achievements", err)
	}

	week := s.agg.WeeklyActivity(records, s.now())
	_, total := s.agg.TotalSessionMinutes(records)

	return &models.Dashboard{
		User:           *user,
		Reading:        LevelSummaries(records, models.ActivityReading, s.levels, s.sizes.Reading),
		Math:           LevelSummaries(records, models.ActivityMath, s.levels, s.sizes.Math),
		WeeklyActivity: week,
		WeeklyMinutes:  WeeklyMinutes(week),
		TotalMinutes:   total,
		Achievements:   achievements,
	}, nil
}

// WeeklyActivity returns the seven day buckets of the current week
func (s *DashboardService) WeeklyActivity(ctx context.Context, userID int64) ([]models.DayActivity, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.agg.WeeklyActivity(records, s.now()), nil
}

// SessionTime returns the uncapped time estimate over all records
func (s *DashboardService) SessionTime(ctx context.Context, userID int64) (*models.SessionTime, error) {
	if _, err := s.user(ctx, userID); err != nil {
		return nil, err
	}
	records, err := s.records(ctx, userID)
	if err != nil {
		return nil, err
	}
	items, minutes := s.agg.TotalSessionMinutes(records)
	return &models.SessionTime{UserID: userID, CompletedItems: items, Minutes: minutes}, nil
}

func (s *DashboardService) user(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to get user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}
	return user, nil
}

func (s *DashboardService) records(ctx context.Context, userID int64) ([]models.ProgressRecord, error) {
	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to list progress", err)
	}
	return records, nil
}
