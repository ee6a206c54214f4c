package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	output []byte
	err    error

	names []string
	args  [][]string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	f.names = append(f.names, name)
	f.args = append(f.args, args)
	return f.output, f.err
}

func TestScraper_LiveStats(t *testing.T) {
	t.Run("parses views and likes", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(`{"view_count": 1500, "like_count": 42}`)}
		s := newScraper(runner, 0, 0, nil)

		snap, err := s.LiveStats(context.Background(), "abc123")
		require.NoError(t, err)

		assert.Equal(t, "abc123", snap.VideoID)
		assert.Equal(t, int64(1500), snap.ViewCount)
		require.NotNil(t, snap.LikeCount)
		assert.Equal(t, int64(42), *snap.LikeCount)

		require.Len(t, runner.names, 1)
		assert.Equal(t, "yt-dlp", runner.names[0])
		assert.Contains(t, runner.args[0], "https://www.youtube.com/watch?v=abc123")
	})

	t.Run("missing like count is kept as nil", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(`{"view_count": 7}`)}
		s := newScraper(runner, 0, 0, nil)

		snap, err := s.LiveStats(context.Background(), "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(7), snap.ViewCount)
		assert.Nil(t, snap.LikeCount)
	})

	t.Run("missing view count fails the scrape", func(t *testing.T) {
		runner := &fakeRunner{output: []byte(`{"like_count": 42}`)}
		s := newScraper(runner, 0, 0, nil)

		_, err := s.LiveStats(context.Background(), "abc123")
		require.ErrorIs(t, err, ErrNoViewCount)
	})

	t.Run("extractor failure is wrapped", func(t *testing.T) {
		runner := &fakeRunner{err: errors.New("exit status 1")}
		s := newScraper(runner, 0, 0, nil)

		_, err := s.LiveStats(context.Background(), "abc123")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "abc123")
	})

	t.Run("malformed output fails the scrape", func(t *testing.T) {
		runner := &fakeRunner{output: []byte("not json")}
		s := newScraper(runner, 0, 0, nil)

		_, err := s.LiveStats(context.Background(), "abc123")
		require.Error(t, err)
	})
}

func TestScraper_DelayBetweenCalls(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"view_count": 1}`)}
	s := newScraper(runner, 3*time.Second, 5*time.Second, nil)

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	for i := 0; i < 3; i++ {
		_, err := s.LiveStats(context.Background(), "abc123")
		require.NoError(t, err)
	}

	// The first call never waits; every later one waits within bounds.
	require.Len(t, slept, 2)
	for _, d := range slept {
		assert.GreaterOrEqual(t, d, 3*time.Second)
		assert.Less(t, d, 5*time.Second)
	}
}

func TestScraper_DegenerateDelayBounds(t *testing.T) {
	runner := &fakeRunner{output: []byte(`{"view_count": 1}`)}
	s := newScraper(runner, 2*time.Second, 2*time.Second, nil)

	var slept []time.Duration
	s.sleep = func(d time.Duration) { slept = append(slept, d) }

	for i := 0; i < 2; i++ {
		_, err := s.LiveStats(context.Background(), "abc123")
		require.NoError(t, err)
	}

	require.Len(t, slept, 1)
	assert.Equal(t, 2*time.Second, slept[0])
}
