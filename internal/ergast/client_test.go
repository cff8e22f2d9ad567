package ergast

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bcdxn/f1next/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchNext(t *testing.T) {
	body, err := os.ReadFile(path.Join(testdataDir(), "next-conventional.json"))
	require.NoError(t, err)

	t.Run("Download", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			assert.Equal(t, "/ergast/f1/current/next.json", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write(body)
		}))
		defer server.Close()

		c := newTestClient(t, server.URL+"/ergast/f1/current/next.json", nil)
		w, err := c.FetchNext(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, "British Grand Prix", w.RaceName)
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("CachedResponse", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write(body)
		}))
		defer server.Close()

		rc := cache.New(filepath.Join(t.TempDir(), "f1next_cache"))
		c := newTestClient(t, server.URL, rc)

		for i := 0; i < 3; i++ {
			w, err := c.FetchNext(context.Background(), false)
			require.NoError(t, err)
			assert.Equal(t, 12, w.Round)
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("ForceRefresh", func(t *testing.T) {
		var hits atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Write(body)
		}))
		defer server.Close()

		rc := cache.New(filepath.Join(t.TempDir(), "f1next_cache"))
		require.NoError(t, rc.Set(server.URL, []byte(raceTable(`{}`))))
		c := newTestClient(t, server.URL, rc)

		w, err := c.FetchNext(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "British Grand Prix", w.RaceName)
		assert.Equal(t, int32(1), hits.Load())

		cached, ok := rc.Get(server.URL)
		require.True(t, ok)
		assert.Equal(t, body, cached)
	})

	t.Run("ErrorStatusClearsCache", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer server.Close()

		rc := cache.New(filepath.Join(t.TempDir(), "f1next_cache"))
		require.NoError(t, rc.Set("http://other.example/next.json", body))
		c := newTestClient(t, server.URL, rc)

		_, err := c.FetchNext(context.Background(), false)
		var ne *NetworkError
		require.True(t, errors.As(err, &ne), "expected NetworkError but found %v", err)
		assert.False(t, ne.Timeout)
		assert.ErrorContains(t, err, "status 503")

		_, ok := rc.Get("http://other.example/next.json")
		assert.False(t, ok)
	})

	t.Run("Timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-r.Context().Done():
			}
		}))
		defer server.Close()
		defer close(release)

		c := New(
			WithURL(server.URL),
			WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}),
			WithLogger(testLogger(t)),
		)
		_, err := c.FetchNext(context.Background(), false)
		var ne *NetworkError
		require.True(t, errors.As(err, &ne), "expected NetworkError but found %v", err)
		assert.True(t, ne.Timeout)
	})

	t.Run("ConnectionRefused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		url := server.URL
		server.Close()

		c := newTestClient(t, url, nil)
		_, err := c.FetchNext(context.Background(), false)
		var ne *NetworkError
		assert.True(t, errors.As(err, &ne), "expected NetworkError but found %v", err)
	})

	t.Run("MalformedBodyNotCached", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"MRData": {"RaceTable": {"Races": []}}}`))
		}))
		defer server.Close()

		rc := cache.New(filepath.Join(t.TempDir(), "f1next_cache"))
		c := newTestClient(t, server.URL, rc)

		_, err := c.FetchNext(context.Background(), false)
		var dse *DataShapeError
		require.True(t, errors.As(err, &dse), "expected DataShapeError but found %v", err)

		_, ok := rc.Get(server.URL)
		assert.False(t, ok)
	})
}

func TestNewFetcher(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		f := NewFetcher(path.Join(testdataDir(), "next-sprint.json"))
		require.IsType(t, &FileFetcher{}, f)

		w, err := f.FetchNext(context.Background(), true)
		require.NoError(t, err)
		assert.Equal(t, "Miami Grand Prix", w.RaceName)
	})

	t.Run("MissingFile", func(t *testing.T) {
		f := NewFetcher(path.Join(t.TempDir(), "missing.json"))

		_, err := f.FetchNext(context.Background(), false)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("HTTP", func(t *testing.T) {
		f := NewFetcher("", WithURL("http://localhost:3000"))
		assert.IsType(t, &Client{}, f)
	})
}

func newTestClient(t *testing.T, url string, rc ResponseCache) *Client {
	t.Helper()
	opts := []ClientOption{WithURL(url), WithLogger(testLogger(t))}
	if rc != nil {
		opts = append(opts, WithCache(rc))
	}
	return New(opts...)
}

// testLogger creates a new logger to be used in tests that writes all logs to /dev/null so they
// don't uglify the test output.
func testLogger(t *testing.T) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
