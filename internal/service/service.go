// Package service holds the application logic between the HTTP handlers and
// the repositories.
package service

import (
	"context"
	"strings"

	"kidlearn/internal/apperr"
	"kidlearn/internal/validation"
)

// WordFilter reports which of the given words are on the blocked list.
// *database.DB implements it.
type WordFilter interface {
	ValidateWords(ctx context.Context, words []string) ([]string, error)
}

// checkWords rejects field values that match the word filter
func checkWords(ctx context.Context, filter WordFilter, field string, values ...string) error {
	if filter == nil {
		return nil
	}
	bad, err := filter.ValidateWords(ctx, values)
	if err != nil {
		return apperr.Storage("failed to check words", err)
	}
	if len(bad) > 0 {
		return validation.Fail(field, "contains a word that is not allowed")
	}
	return nil
}

func trim(s string) string {
	return strings.TrimSpace(s)
}
