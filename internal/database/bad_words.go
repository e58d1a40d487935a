package database

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"kidlearn/internal/config"
	"kidlearn/internal/logger"
)

// SeedBadWords downloads the bad words list from url and stores it.
// It is a no-op once the table holds any rows.
func (db *DB) SeedBadWords(ctx context.Context, url string, log *logger.Logger) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bad_words").Scan(&count); err != nil {
		return fmt.Errorf("failed to check bad words count: %w", err)
	}

	if count > 0 {
		log.Debug("bad words filter already populated", "count", count)
		return nil
	}

	if url == "" {
		url = config.DefaultBadWordsURL
	}
	log.Info("downloading bad words list", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build bad words request: %w", err)
	}
	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download bad words list: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status code from bad words URL: %d", resp.StatusCode)
	}

	// Duplicates are dropped here; a failed insert would abort the
	// whole transaction on postgres.
	seen := make(map[string]struct{})
	var words []string
	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		word := normalizeWord(scanner.Text())
		if word == "" {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		words = append(words, word)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading bad words: %w", err)
	}

	err = db.WithTx(ctx, func(tx *Tx) error {
		for _, word := range words {
			if _, err := tx.ExecContext(ctx, "INSERT INTO bad_words (word) VALUES (?)", word); err != nil {
				return fmt.Errorf("failed to insert bad word: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Info("bad words filter populated", "count", len(words))
	return nil
}

// IsBadWord checks if a word is in the bad words list
func (db *DB) IsBadWord(ctx context.Context, word string) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM bad_words WHERE word = ?", normalizeWord(word)).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check bad word: %w", err)
	}
	return count > 0, nil
}

// ValidateWords checks a list of words against the bad words filter.
// Multi-word entries are checked whole and token by token.
// Returns the entries that matched.
func (db *DB) ValidateWords(ctx context.Context, words []string) ([]string, error) {
	var badWords []string
	for _, word := range words {
		candidates := append([]string{word}, strings.Fields(word)...)
		for _, candidate := range candidates {
			isBad, err := db.IsBadWord(ctx, candidate)
			if err != nil {
				return nil, err
			}
			if isBad {
				badWords = append(badWords, word)
				break
			}
		}
	}
	return badWords, nil
}

func normalizeWord(word string) string {
	return strings.TrimSpace(strings.ToLower(word))
}
