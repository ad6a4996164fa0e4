package packs

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Cache fetches a remote topic pack and keeps a local JSON copy so the CLI
// works offline and doesn't hammer the pack host.
type Cache struct {
	packURL    string
	cacheDir   string
	cacheFile  string
	maxAge     time.Duration
	httpClient *http.Client
}

// cachedPack is the on-disk envelope around a fetched pack.
type cachedPack struct {
	Pack        Pack      `json:"pack"`
	LastUpdated time.Time `json:"last_updated"`
	SourceURL   string    `json:"source_url"`
}

// NewCache creates a pack cache rooted at cacheDir.
func NewCache(packURL, cacheDir string, maxAge time.Duration) *Cache {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		logrus.WithError(err).Warn("Failed to create pack cache directory")
	}

	return &Cache{
		packURL:   packURL,
		cacheDir:  cacheDir,
		cacheFile: filepath.Join(cacheDir, "topic_pack.json"),
		maxAge:    maxAge,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Get returns the pack, from the local cache when it is fresh and from the
// network otherwise. A failed fetch falls back to a stale cache rather than
// failing the command.
func (c *Cache) Get() (*Pack, error) {
	if c.isFresh() {
		logrus.Info("Loading topic pack from cache")
		pack, err := c.loadFromCache()
		if err == nil {
			return pack, nil
		}
		logrus.WithError(err).Warn("Pack cache unreadable, refetching")
	}

	logrus.WithField("url", c.packURL).Info("Fetching topic pack")
	pack, err := c.fetch()
	if err != nil {
		logrus.WithError(err).Warn("Pack fetch failed, trying stale cache")
		if cached, cacheErr := c.loadFromCache(); cacheErr == nil {
			return cached, nil
		}
		return nil, fmt.Errorf("failed to fetch pack and no cache available: %w", err)
	}

	if err := c.save(pack); err != nil {
		logrus.WithError(err).Warn("Failed to save pack cache")
	}

	return pack, nil
}

func (c *Cache) isFresh() bool {
	info, err := os.Stat(c.cacheFile)
	if err != nil {
		return false
	}
	return time.Since(info.ModTime()) < c.maxAge
}

func (c *Cache) loadFromCache() (*Pack, error) {
	file, err := os.Open(c.cacheFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open pack cache: %w", err)
	}
	defer file.Close()

	var cached cachedPack
	if err := json.NewDecoder(file).Decode(&cached); err != nil {
		return nil, fmt.Errorf("failed to decode pack cache: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"pack":         cached.Pack.Name,
		"topics":       len(cached.Pack.Topics),
		"last_updated": cached.LastUpdated.Format(time.RFC3339),
	}).Info("Loaded topic pack from cache")

	return &cached.Pack, nil
}

func (c *Cache) save(pack *Pack) error {
	cached := cachedPack{
		Pack:        *pack,
		LastUpdated: time.Now(),
		SourceURL:   c.packURL,
	}

	file, err := os.Create(c.cacheFile)
	if err != nil {
		return fmt.Errorf("failed to create pack cache: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cached); err != nil {
		return fmt.Errorf("failed to encode pack cache: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"topics": len(pack.Topics),
		"file":   c.cacheFile,
	}).Info("Saved topic pack to cache")

	return nil
}

func (c *Cache) fetch() (*Pack, error) {
	resp, err := c.httpClient.Get(c.packURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", c.packURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pack host returned status %d for %s", resp.StatusCode, c.packURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read pack body: %w", err)
	}

	var pack Pack
	if err := json.Unmarshal(body, &pack); err != nil {
		return nil, fmt.Errorf("failed to parse pack JSON: %w", err)
	}
	if pack.URL == "" {
		pack.URL = c.packURL
	}

	// Drop malformed records up front so a bad pack entry can't poison
	// the catalog later.
	valid := pack.Topics[:0]
	for _, t := range pack.Topics {
		if err := t.Validate(); err != nil {
			logrus.WithError(err).WithField("pack", pack.Name).Warn("Skipping invalid pack topic")
			continue
		}
		valid = append(valid, t)
	}
	pack.Topics = valid

	logrus.WithField("count", len(pack.Topics)).Info("Fetched topic pack")
	return &pack, nil
}

// Clear removes the cache file.
func (c *Cache) Clear() error {
	if err := os.Remove(c.cacheFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear pack cache: %w", err)
	}
	logrus.Info("Cleared topic pack cache")
	return nil
}

// Info returns facts about the cache file for the status command.
func (c *Cache) Info() (map[string]interface{}, error) {
	info := make(map[string]interface{})

	if stat, err := os.Stat(c.cacheFile); err == nil {
		info["exists"] = true
		info["path"] = c.cacheFile
		info["size"] = stat.Size()
		info["last_modified"] = stat.ModTime()
		info["is_fresh"] = c.isFresh()
		info["max_age_hours"] = c.maxAge.Hours()
	} else {
		info["exists"] = false
	}

	return info, nil
}
