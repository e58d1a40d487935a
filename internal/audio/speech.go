// Package audio caches spoken pronunciations of catalog text as MP3 files.
package audio

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/singleflight"

	"kidlearn/internal/logger"
)

// DefaultTTSURL is Google Translate's speech endpoint, which needs no API key
const DefaultTTSURL = "https://translate.google.com/translate_tts"

const ttsRequestTimeout = 10 * time.Second

// MaxTextLength is the longest text the speech endpoint accepts in one request
const MaxTextLength = 200

var (
	ErrEmptyText   = errors.New("nothing to speak")
	ErrTextTooLong = fmt.Errorf("text is longer than %d characters", MaxTextLength)
)

// Speaker fetches speech for short phrases and keeps the results on disk.
// Concurrent requests for the same phrase share one download.
type Speaker struct {
	cacheDir string
	endpoint string
	lang     string
	client   *http.Client
	group    singleflight.Group
	log      *logger.Logger
}

// NewSpeaker creates a speaker caching into cacheDir. An empty endpoint
// selects DefaultTTSURL.
func NewSpeaker(cacheDir, endpoint string, log *logger.Logger) *Speaker {
	if endpoint == "" {
		endpoint = DefaultTTSURL
	}
	return &Speaker{
		cacheDir: cacheDir,
		endpoint: endpoint,
		lang:     "en",
		client:   &http.Client{Timeout: ttsRequestTimeout},
		log:      log,
	}
}

// FileName is the cache file name for text. Case and surrounding space do
// not change it.
func FileName(text string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(strings.TrimSpace(text))))
	return "speech_" + hex.EncodeToString(sum[:8]) + ".mp3"
}

// Speak returns the path of an MP3 for text, downloading it on first use
func (s *Speaker) Speak(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	if utf8.RuneCountInString(text) > MaxTextLength {
		return "", ErrTextTooLong
	}

	name := FileName(text)
	path := filepath.Join(s.cacheDir, name)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	// The download is shared, so one caller going away must not cancel it
	dlCtx := context.WithoutCancel(ctx)
	_, err, shared := s.group.Do(name, func() (any, error) {
		// Another caller may have finished while we waited
		if _, err := os.Stat(path); err == nil {
			return nil, nil
		}
		return nil, s.download(dlCtx, text, path)
	})
	if err != nil {
		return "", err
	}
	s.log.Debug("speech cached", "file", name, "shared", shared)
	return path, nil
}

// Forget removes the cached file for text, if any
func (s *Speaker) Forget(text string) error {
	err := os.Remove(filepath.Join(s.cacheDir, FileName(text)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Speaker) download(ctx context.Context, text, path string) error {
	params := url.Values{}
	params.Set("ie", "UTF-8")
	params.Set("q", text)
	params.Set("tl", s.lang)
	params.Set("client", "tw-ob")
	params.Set("textlen", fmt.Sprintf("%d", len(text)))

	ctx, cancel := context.WithTimeout(ctx, ttsRequestTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	// The endpoint rejects requests without a browser user agent
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch audio: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if err := os.MkdirAll(s.cacheDir, 0755); err != nil {
		return fmt.Errorf("failed to create audio directory: %w", err)
	}

	// Write to a temp file so a failed download never leaves a partial MP3
	tmp, err := os.CreateTemp(s.cacheDir, ".speech-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write audio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to store audio file: %w", err)
	}
	return nil
}
