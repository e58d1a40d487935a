package service

import (
	"context"

	"kidlearn/internal/apperr"
	"kidlearn/internal/content"
	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/repository"
	"kidlearn/internal/validation"
)

// WordInput is the admin payload for a reading word
type WordInput struct {
	Word     string `json:"word" validate:"required,max=64"`
	ImageURL string `json:"imageUrl" validate:"required"`
	Level    int    `json:"level" validate:"required,gt=0"`
}

// ActivityInput is the admin payload for a math activity
type ActivityInput struct {
	Type     string   `json:"type" validate:"required,oneof=counting addition"`
	Level    int      `json:"level" validate:"required,gt=0"`
	Question string   `json:"question" validate:"required,max=200"`
	Answer   int      `json:"answer" validate:"gte=0"`
	Objects  []string `json:"objects"`
}

// SpeechCache drops cached pronunciations of text that changed
type SpeechCache interface {
	Forget(text string) error
}

// ContentService manages the reading and math catalogs
type ContentService struct {
	db      *database.DB
	content *repository.ContentRepository
	filter  WordFilter
	speech  SpeechCache
	log     *logger.Logger
}

// NewContentService creates a new content service
func NewContentService(db *database.DB, filter WordFilter, log *logger.Logger) *ContentService {
	return &ContentService{
		db:      db,
		content: repository.NewContentRepository(db),
		filter:  filter,
		log:     log,
	}
}

// UseSpeechCache makes word and question edits evict their cached audio
func (s *ContentService) UseSpeechCache(c SpeechCache) {
	s.speech = c
}

func (s *ContentService) forgetSpeech(text string) {
	if s.speech == nil {
		return
	}
	if err := s.speech.Forget(text); err != nil {
		s.log.Warn("failed to evict cached speech", "error", err)
	}
}

// SeedCatalog loads the starter words and activities into empty tables
func (s *ContentService) SeedCatalog(ctx context.Context) error {
	words, err := s.content.CountWords(ctx)
	if err != nil {
		return apperr.Storage("failed to count words", err)
	}
	activities, err := s.content.CountActivities(ctx)
	if err != nil {
		return apperr.Storage("failed to count activities", err)
	}

	err = s.db.WithTx(ctx, func(tx *database.Tx) error {
		repo := s.content.WithTx(tx)
		if words == 0 {
			for _, w := range content.ReadingWords() {
				if err := repo.CreateWord(ctx, &w); err != nil {
					return err
				}
			}
		}
		if activities == 0 {
			for _, a := range content.MathActivities() {
				if err := repo.CreateActivity(ctx, &a); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return apperr.Storage("failed to seed catalog", err)
	}

	if words == 0 || activities == 0 {
		s.log.Info("seeded content catalog", "words", words == 0, "activities", activities == 0)
	}
	return nil
}

// ListWords returns the reading words of one level
func (s *ContentService) ListWords(ctx context.Context, level int) ([]models.ReadingWord, error) {
	words, err := s.content.ListWordsByLevel(ctx, level)
	if err != nil {
		return nil, apperr.Storage("failed to list words", err)
	}
	return words, nil
}

// GetWord returns one reading word
func (s *ContentService) GetWord(ctx context.Context, id int64) (*models.ReadingWord, error) {
	word, err := s.content.GetWordByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to get word", err)
	}
	if word == nil {
		return nil, apperr.NotFound("word %d not found", id)
	}
	return word, nil
}

// ListAllWords returns the whole reading catalog
func (s *ContentService) ListAllWords(ctx context.Context) ([]models.ReadingWord, error) {
	words, err := s.content.ListAllWords(ctx)
	if err != nil {
		return nil, apperr.Storage("failed to list words", err)
	}
	return words, nil
}

// CreateWord adds a reading word. The word is stored upper-case.
func (s *ContentService) CreateWord(ctx context.Context, input WordInput) (*models.ReadingWord, error) {
	word, err := s.wordFromInput(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.content.CreateWord(ctx, word); err != nil {
		return nil, apperr.Storage("failed to create word", err)
	}
	s.log.Info("reading word created", "word_id", word.ID, "level", word.Level)
	return word, nil
}

// UpdateWord replaces a reading word
func (s *ContentService) UpdateWord(ctx context.Context, id int64, input WordInput) (*models.ReadingWord, error) {
	word, err := s.wordFromInput(ctx, input)
	if err != nil {
		return nil, err
	}
	old, err := s.GetWord(ctx, id)
	if err != nil {
		return nil, err
	}
	word.ID = id
	ok, err := s.content.UpdateWord(ctx, word)
	if err != nil {
		return nil, apperr.Storage("failed to update word", err)
	}
	if !ok {
		return nil, apperr.NotFound("word %d not found", id)
	}
	if old.Word != word.Word {
		s.forgetSpeech(old.Word)
	}
	return word, nil
}

// DeleteWord removes a reading word
func (s *ContentService) DeleteWord(ctx context.Context, id int64) error {
	old, err := s.GetWord(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.content.DeleteWord(ctx, id)
	if err != nil {
		return apperr.Storage("failed to delete word", err)
	}
	if !ok {
		return apperr.NotFound("word %d not found", id)
	}
	s.forgetSpeech(old.Word)
	s.log.Info("reading word deleted", "word_id", id)
	return nil
}

// ListActivities filters by type and level when both are given,
// otherwise returns the whole math catalog.
func (s *ContentService) ListActivities(ctx context.Context, activityType string, level int) ([]models.MathActivity, error) {
	var (
		activities []models.MathActivity
		err        error
	)
	if activityType != "" && level > 0 {
		activities, err = s.content.ListActivities(ctx, activityType, level)
	} else {
		activities, err = s.content.ListAllActivities(ctx)
	}
	if err != nil {
		return nil, apperr.Storage("failed to list activities", err)
	}
	return activities, nil
}

// GetActivity returns one math activity
func (s *ContentService) GetActivity(ctx context.Context, id int64) (*models.MathActivity, error) {
	activity, err := s.content.GetActivityByID(ctx, id)
	if err != nil {
		return nil, apperr.Storage("failed to get activity", err)
	}
	if activity == nil {
		return nil, apperr.NotFound("activity %d not found", id)
	}
	return activity, nil
}

// AnswerOptions returns the stable multiple-choice options for an activity
func (s *ContentService) AnswerOptions(ctx context.Context, id int64) (*models.AnswerOptions, error) {
	activity, err := s.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	options := content.AnswerOptions(*activity)
	return &options, nil
}

// CreateActivity adds a math activity
func (s *ContentService) CreateActivity(ctx context.Context, input ActivityInput) (*models.MathActivity, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	activity := activityFromInput(input)
	if err := s.content.CreateActivity(ctx, activity); err != nil {
		return nil, apperr.Storage("failed to create activity", err)
	}
	s.log.Info("math activity created", "activity_id", activity.ID, "type", activity.Type, "level", activity.Level)
	return activity, nil
}

// UpdateActivity replaces a math activity
func (s *ContentService) UpdateActivity(ctx context.Context, id int64, input ActivityInput) (*models.MathActivity, error) {
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	old, err := s.GetActivity(ctx, id)
	if err != nil {
		return nil, err
	}
	activity := activityFromInput(input)
	activity.ID = id
	ok, err := s.content.UpdateActivity(ctx, activity)
	if err != nil {
		return nil, apperr.Storage("failed to update activity", err)
	}
	if !ok {
		return nil, apperr.NotFound("activity %d not found", id)
	}
	if old.Question != activity.Question {
		s.forgetSpeech(old.Question)
	}
	return activity, nil
}

// DeleteActivity removes a math activity
func (s *ContentService) DeleteActivity(ctx context.Context, id int64) error {
	old, err := s.GetActivity(ctx, id)
	if err != nil {
		return err
	}
	ok, err := s.content.DeleteActivity(ctx, id)
	if err != nil {
		return apperr.Storage("failed to delete activity", err)
	}
	if !ok {
		return apperr.NotFound("activity %d not found", id)
	}
	s.forgetSpeech(old.Question)
	s.log.Info("math activity deleted", "activity_id", id)
	return nil
}

func (s *ContentService) wordFromInput(ctx context.Context, input WordInput) (*models.ReadingWord, error) {
	input.Word = content.NormalizeWord(input.Word)
	input.ImageURL = trim(input.ImageURL)
	if err := validation.Struct(input); err != nil {
		return nil, err
	}
	if err := checkWords(ctx, s.filter, "word", input.Word); err != nil {
		return nil, err
	}
	return &models.ReadingWord{Word: input.Word, Level: input.Level, ImageURL: input.ImageURL}, nil
}

func activityFromInput(input ActivityInput) *models.MathActivity {
	objects := input.Objects
	if objects == nil {
		objects = []string{}
	}
	return &models.MathActivity{
		Type:     input.Type,
		Level:    input.Level,
		Question: trim(input.Question),
		Answer:   input.Answer,
		Objects:  objects,
	}
}
