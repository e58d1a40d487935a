package audio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kidlearn/internal/logger"
	"kidlearn/internal/service"
)

var _ service.SpeechCache = (*Speaker)(nil)

func newTTSServer(t *testing.T, status int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("mp3:" + r.URL.Query().Get("q")))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestSpeakCachesToDisk(t *testing.T) {
	srv, hits := newTTSServer(t, http.StatusOK)
	dir := t.TempDir()
	s := NewSpeaker(dir, srv.URL, logger.NewNop())

	path, err := s.Speak(context.Background(), "CAT")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, FileName("cat")), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "mp3:CAT", string(data))

	_, err = s.Speak(context.Background(), " cat ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSpeakConcurrentRequestsShareDownload(t *testing.T) {
	srv, hits := newTTSServer(t, http.StatusOK)
	s := NewSpeaker(t.TempDir(), srv.URL, logger.NewNop())

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Speak(context.Background(), "How many apples?")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.LessOrEqual(t, hits.Load(), int32(8))
	assert.GreaterOrEqual(t, hits.Load(), int32(1))
}

func TestSpeakUpstreamFailureLeavesNoFile(t *testing.T) {
	srv, _ := newTTSServer(t, http.StatusTooManyRequests)
	dir := t.TempDir()
	s := NewSpeaker(dir, srv.URL, logger.NewNop())

	_, err := s.Speak(context.Background(), "DOG")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpeakRejectsBadText(t *testing.T) {
	s := NewSpeaker(t.TempDir(), "http://127.0.0.1:0", logger.NewNop())

	_, err := s.Speak(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyText)

	_, err = s.Speak(context.Background(), strings.Repeat("a", MaxTextLength+1))
	assert.ErrorIs(t, err, ErrTextTooLong)
}

func TestSpeakCountsCharacters(t *testing.T) {
	srv, hits := newTTSServer(t, http.StatusOK)
	s := NewSpeaker(t.TempDir(), srv.URL, logger.NewNop())

	_, err := s.Speak(context.Background(), strings.Repeat("é", MaxTextLength))
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load())
}

func TestSpeakSurvivesCanceledCaller(t *testing.T) {
	srv, hits := newTTSServer(t, http.StatusOK)
	s := NewSpeaker(t.TempDir(), srv.URL, logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path, err := s.Speak(ctx, "MOON")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, int32(1), hits.Load())
}

func TestForget(t *testing.T) {
	srv, hits := newTTSServer(t, http.StatusOK)
	s := NewSpeaker(t.TempDir(), srv.URL, logger.NewNop())

	path, err := s.Speak(context.Background(), "SUN")
	require.NoError(t, err)
	require.NoError(t, s.Forget("sun"))
	assert.NoFileExists(t, path)
	require.NoError(t, s.Forget("sun"))

	_, err = s.Speak(context.Background(), "SUN")
	require.NoError(t, err)
	assert.Equal(t, int32(2), hits.Load())
}
