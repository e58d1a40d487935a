package service

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"kidlearn/internal/database"
	"kidlearn/internal/logger"
	"kidlearn/internal/models"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Initialize(filepath.Join(t.TempDir(), "service.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

// stubFilter blocks the listed words
type stubFilter []string

func (f stubFilter) ValidateWords(_ context.Context, words []string) ([]string, error) {
	var bad []string
	for _, w := range words {
		for _, blocked := range f {
			if strings.Contains(strings.ToLower(w), blocked) {
				bad = append(bad, w)
				break
			}
		}
	}
	return bad, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func createUser(t *testing.T, s *UserService, name string) *models.User {
	t.Helper()
	user, err := s.CreateUser(context.Background(), UserInput{Name: name, Age: 6})
	require.NoError(t, err)
	return user
}

func intPtr(v int) *int { return &v }

var nop = logger.NewNop()
