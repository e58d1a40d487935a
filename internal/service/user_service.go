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

// UserInput is the payload for creating or updating a profile
type UserInput struct {
	Name string `json:"name" validate:"required,max=50"`
	Age  int    `json:"age" validate:"min=1,max=18"`
}

// UserService manages child profiles
type UserService struct {
	db           *database.DB
	users        *repository.UserRepository
	progress     *repository.ProgressRepository
	achievements *repository.AchievementRepository
	filter       WordFilter
	log          *logger.Logger
	now          func() time.Time
}

// NewUserService creates a new user service
func NewUserService(db *database.DB, filter WordFilter, log *logger.Logger) *UserService {
	return &UserService{
		db:           db,
		users:        repository.NewUserRepository(db),
		progress:     repository.NewProgressRepository(db),
		achievements: repository.NewAchievementRepository(db),
		filter:       filter,
		log:          log,
		now:          time.Now,
	}
}

// CreateUser creates a profile with no stars and no activity
func (s *UserService) CreateUser(ctx context.Context, input UserInput) (*models.User, error) {
	input.Name = trim(input.Name)
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}

	user, err := s.users.CreateUser(ctx, input.Name, input.Age, s.now().UTC())
	if err != nil {
		return nil, apperr.Storage("failed to create user", err)
	}
	s.log.Info("user created", "user_id", user.ID)
	return user, nil
}

// UpdateUser changes a profile's name and age
func (s *UserService) UpdateUser(ctx context.Context, id int64, input UserInput) (*models.User, error) {
	input.Name = trim(input.Name)
	if err := s.validate(ctx, input); err != nil {
		return nil, err
	}
	if _, err := s.mustGet(ctx, id); err != nil {
		return nil, err
	}

	if err := s.users.UpdateUser(ctx, id, input.Name, input.Age); err != nil {
		return nil, apperr.Storage("failed to update user", err)
	}
	return s.mustGet(ctx, id)
}

// GetUser returns a profile and records the access as activity
func (s *UserService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return s.touch(ctx, id)
}

// ActivateUser marks a profile as the one currently in use
func (s *UserService) ActivateUser(ctx context.Context, id int64) (*models.User, error) {
	return s.touch(ctx, id)
}

// PeekUser returns a profile without touching its activity time
func (s *UserService) PeekUser(ctx context.Context, id int64) (*models.User, error) {
	return s.mustGet(ctx, id)
}

// ListUsers returns all profiles, most recently active first
func (s *UserService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.users.ListUsers(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to list users", err)
	}
	return users, nil
}

// DeleteUser removes a profile with all its progress and achievements.
// The three deletes share one transaction.
func (s *UserService) DeleteUser(ctx context.Context, id int64) error {
	var progressRows, achievementRows int64
	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		user, err := s.users.WithTx(tx).GetUserByID(ctx, id)
		if err != nil {
			return err
		}
		if user == nil {
			return apperr.NotFound("user %d not found", id)
		}

		if progressRows, err = s.progress.WithTx(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if achievementRows, err = s.achievements.WithTx(tx).DeleteByUser(ctx, id); err != nil {
			return err
		}
		if _, err := s.users.WithTx(tx).DeleteUser(ctx, id); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return apperr.Storage("failed to delete user", err)
	}

	s.log.Info("user deleted", "user_id", id, "progress_rows", progressRows, "achievements", achievementRows)
	return nil
}

func (s *UserService) touch(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	if err := s.users.TouchLastActive(ctx, id, now); err != nil {
		return nil, apperr.Storage("failed to update last active", err)
	}
	user.LastActive = &now
	return user, nil
}

func (s *UserService) mustGet(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to get user", err)
	}
	if user == nil {
		return nil, apperr.NotFound("user %d not found", id)
	}
	return user, nil
}

func (s *UserService) validate(ctx context.Context, input UserInput) error {
	if err := validation.Struct(input); err != nil {
		return err
	}
	return checkWords(ctx, s.filter, "name", input.Name)
}
