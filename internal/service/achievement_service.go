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

// AchievementInput is the payload for awarding a badge
type AchievementInput struct {
	Title       string `json:"title" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Icon        string `json:"icon" validate:"required,max=64"`
}

// AchievementService manages the append-only achievement log
type AchievementService struct {
	users        *repository.UserRepository
	achievements *repository.AchievementRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewAchievementService creates a new achievement service
func NewAchievementService(db *database.DB, log *logger.Logger) *AchievementService {
	return &AchievementService{
		users:        repository.NewUserRepository(db),
		achievements: repository.NewAchievementRepository(db),
		log:          log,
		now:          time.Now,
	}
}

// ListAchievements returns a user's badges, newest first
func (s *AchievementService) ListAchievements(ctx context.Context, userID int64) ([]models.Achievement, error) {
	list, err := s.achievements.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to list achievements", err)
	}
	return list, nil
}

// AwardAchievement appends a badge stamped with the current time
func (s *AchievementService) AwardAchievement(ctx context.Context, userID int64, input AchievementInput) (*models.Achievement, error) {
	input.Title = trim(input.Title)
	input.Icon = trim(input.Icon)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}

	user, err := s.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, apperr.Storage("failed to get user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", userID)
	}

	achievement := &models.Achievement{
		UserID:      userID,
		Title:       input.Title,
		Description: trim(input.Description),
		Icon:        input.Icon,
		EarnedAt:    s.now().UTC(),
	}
	if err := s.achievements.Create(ctx, achievement); err != nil {
		return nil, apperr.Storage("failed to award achievement", err)
	}
	s.log.Info("achievement awarded", "user_id", userID, "title", achievement.Title)
	return achievement, nil
}
