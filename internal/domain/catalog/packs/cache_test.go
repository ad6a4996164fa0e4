package packs

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crambox/internal/domain/topic"
)

func packServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	pack := Pack{
		Name: "Test Pack",
		Topics: []topic.Topic{
			{
				ID:          "bloom-filters",
				Title:       "Bloom Filters",
				Summary:     "Probabilistic set membership.",
				Explanation: "Bits set by k hash functions; false positives possible, false negatives not.",
			},
			{
				// Invalid: no summary. The fetch path must drop it.
				ID:          "broken",
				Title:       "Broken",
				Explanation: "e",
			},
		},
	}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		json.NewEncoder(w).Encode(pack)
	}))
}

func TestGetFetchesAndCaches(t *testing.T) {
	hits := 0
	srv := packServer(t, &hits)
	defer srv.Close()

	dir := t.TempDir()
	cache := NewCache(srv.URL, dir, time.Hour)

	pack, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, "Test Pack", pack.Name)
	require.Len(t, pack.Topics, 1, "invalid record should be dropped")
	assert.Equal(t, "bloom-filters", pack.Topics[0].ID)
	assert.Equal(t, 1, hits)

	// Second call is served from the fresh cache, no network.
	pack, err = cache.Get()
	require.NoError(t, err)
	assert.Len(t, pack.Topics, 1)
	assert.Equal(t, 1, hits)

	_, err = os.Stat(filepath.Join(dir, "topic_pack.json"))
	assert.NoError(t, err)
}

func TestGetFallsBackToStaleCache(t *testing.T) {
	hits := 0
	srv := packServer(t, &hits)

	dir := t.TempDir()
	cache := NewCache(srv.URL, dir, time.Nanosecond) // everything is instantly stale

	_, err := cache.Get()
	require.NoError(t, err)

	// Host goes away; the stale cache still answers.
	srv.Close()
	pack, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, "Test Pack", pack.Name)
}

func TestGetRefetchesWhenFreshCacheIsCorrupt(t *testing.T) {
	hits := 0
	srv := packServer(t, &hits)
	defer srv.Close()

	dir := t.TempDir()
	cache := NewCache(srv.URL, dir, time.Hour)

	// A fresh cache file that won't decode must not fail the command.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topic_pack.json"), []byte("{garbage"), 0644))

	pack, err := cache.Get()
	require.NoError(t, err)
	assert.Equal(t, "Test Pack", pack.Name)
	assert.Equal(t, 1, hits)

	// The refetch rewrote the cache; the next call reads it cleanly.
	_, err = cache.Get()
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

func TestGetFailsWithNoServerAndNoCache(t *testing.T) {
	cache := NewCache("http://127.0.0.1:1/pack.json", t.TempDir(), time.Hour)
	_, err := cache.Get()
	assert.Error(t, err)
}

func TestClearAndInfo(t *testing.T) {
	hits := 0
	srv := packServer(t, &hits)
	defer srv.Close()

	dir := t.TempDir()
	cache := NewCache(srv.URL, dir, time.Hour)

	info, err := cache.Info()
	require.NoError(t, err)
	assert.False(t, info["exists"].(bool))

	_, err = cache.Get()
	require.NoError(t, err)

	info, err = cache.Info()
	require.NoError(t, err)
	require.True(t, info["exists"].(bool))
	assert.True(t, info["is_fresh"].(bool))
	assert.Equal(t, 1.0, info["max_age_hours"].(float64))

	require.NoError(t, cache.Clear())
	require.NoError(t, cache.Clear()) // idempotent

	info, err = cache.Info()
	require.NoError(t, err)
	assert.False(t, info["exists"].(bool))
}

func TestBadStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cache := NewCache(srv.URL, t.TempDir(), time.Hour)
	_, err := cache.Get()
	assert.Error(t, err)
}
