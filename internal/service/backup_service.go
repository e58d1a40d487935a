package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
	"kidlearn/internal/repository"
)

const backupVersion = "1.0"

// BackupData represents the complete database backup structure
type BackupData struct {
	Version      string                  `json:"version"`
	ExportedAt   time.Time               `json:"exportedAt"`
	DatabaseType string                  `json:"databaseType"`
	Users        []models.User           `json:"users"`
	Progress     []models.ProgressRecord `json:"progress"`
	Achievements []models.Achievement    `json:"achievements"`
	Words        []models.ReadingWord    `json:"words"`
	Activities   []models.MathActivity   `json:"activities"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db           *database.DB
	users        *repository.UserRepository
	progress     *repository.ProgressRepository
	achievements *repository.AchievementRepository
	content      *repository.ContentRepository
	log          *logger.Logger
	now          func() time.Time
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB, log *logger.Logger) *BackupService {
	return &BackupService{
		db:           db,
		users:        repository.NewUserRepository(db),
		progress:     repository.NewProgressRepository(db),
		achievements: repository.NewAchievementRepository(db),
		content:      repository.NewContentRepository(db),
		log:          log,
		now:          time.Now,
	}
}

// Export writes a complete backup as JSON to w
func (s *BackupService) Export(ctx context.Context, w io.Writer) (*BackupData, error) {
	s.log.Info("starting database export")

	backup := &BackupData{
		Version:      backupVersion,
		ExportedAt:   s.now().UTC(),
		DatabaseType: s.db.Dialect.DriverName(),
	}

	var err error
	if backup.Users, err = s.users.ListUsers(ctx); err != nil {
		return nil, fmt.Errorf("failed to export users: %w", err)
	}
	if backup.Progress, err = s.progress.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export progress: %w", err)
	}
	if backup.Achievements, err = s.achievements.ListAll(ctx); err != nil {
		return nil, fmt.Errorf("failed to export achievements: %w", err)
	}
	if backup.Words, err = s.content.ListAllWords(ctx); err != nil {
		return nil, fmt.Errorf("failed to export words: %w", err)
	}
	if backup.Activities, err = s.content.ListAllActivities(ctx); err != nil {
		return nil, fmt.Errorf("failed to export activities: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}

	s.log.Info("database export completed",
		"users", len(backup.Users),
		"progress", len(backup.Progress),
		"achievements", len(backup.Achievements),
		"words", len(backup.Words),
		"activities", len(backup.Activities),
	)
	return backup, nil
}

// ExportFile writes a backup to outputPath
func (s *BackupService) ExportFile(ctx context.Context, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if _, err := s.Export(ctx, file); err != nil {
		return err
	}
	return file.Close()
}

// Import restores a backup read from r. With clear set, existing rows are
// removed first. Everything runs in one transaction.
func (s *BackupService) Import(ctx context.Context, r io.Reader, clear bool) error {
	var backup BackupData
	if err := json.NewDecoder(r).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}
	s.log.Info("starting database import", "version", backup.Version, "exported_at", backup.ExportedAt, "clear", clear)

	err := s.db.WithTx(ctx, func(tx *database.Tx) error {
		if clear {
			if err := clearAll(ctx, tx); err != nil {
				return err
			}
		}

		users := s.users.WithTx(tx)
		for _, u := range backup.Users {
			if err := users.RestoreUser(ctx, u); err != nil {
				return err
			}
		}
		progress := s.progress.WithTx(tx)
		for _, p := range backup.Progress {
			if err := progress.Restore(ctx, p); err != nil {
				return err
			}
		}
		achievements := s.achievements.WithTx(tx)
		for _, a := range backup.Achievements {
			if err := achievements.Restore(ctx, a); err != nil {
				return err
			}
		}
		content := s.content.WithTx(tx)
		for _, w := range backup.Words {
			if err := content.RestoreWord(ctx, w); err != nil {
				return err
			}
		}
		for _, a := range backup.Activities {
			if err := content.RestoreActivity(ctx, a); err != nil {
				return err
			}
		}
		return resetSequences(ctx, tx)
	})
	if err != nil {
		return fmt.Errorf("failed to import backup: %w", err)
	}

	s.log.Info("database import completed", "users", len(backup.Users), "progress", len(backup.Progress))
	return nil
}

// ImportFile restores a backup from inputPath
func (s *BackupService) ImportFile(ctx context.Context, inputPath string, clear bool) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()
	return s.Import(ctx, file, clear)
}

var restoredTables = []string{"user_progress", "achievements", "users", "reading_words", "math_activities"}

// clearAll deletes in dependency order
func clearAll(ctx context.Context, tx *database.Tx) error {
	for _, table := range restoredTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	return nil
}

// resetSequences moves postgres serial sequences past the restored IDs.
// sqlite and mysql advance their counters on explicit inserts.
func resetSequences(ctx context.Context, tx *database.Tx) error {
	if tx.GetDialect().DriverName() != "postgres" {
		return nil
	}
	for _, table := range restoredTables {
		query := fmt.Sprintf(
			"SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE(MAX(id), 0) + 1, false) FROM %s",
			table, table)
		if _, err := tx.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to reset sequence for %s: %w", table, err)
		}
	}
	return nil
}
