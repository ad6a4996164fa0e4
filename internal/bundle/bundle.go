// Package bundle moves topics across the filesystem boundary: exporting the
// catalog as a static JSON bundle a web front-end can serve as-is, and
// importing author-written topic packs from JSON or YAML files.
package bundle

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"crambox/internal/domain/catalog"
	"crambox/internal/domain/catalog/packs"
	"crambox/internal/domain/topic"
)

// IndexEntry is one row of the exported bundle's index.json.
type IndexEntry struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Summary  string   `json:"summary"`
}

// Index is the bundle manifest.
type Index struct {
	Name        string       `json:"name"`
	GeneratedAt time.Time    `json:"generated_at"`
	Topics      []IndexEntry `json:"topics"`
}

// Export writes the catalog to dir as a static bundle: an index.json
// manifest plus one topics/<id>.json per record.
func Export(cat *catalog.Catalog, dir string) error {
	topicsDir := filepath.Join(dir, "topics")
	if err := os.MkdirAll(topicsDir, 0755); err != nil {
		return fmt.Errorf("failed to create bundle directory: %w", err)
	}

	index := Index{
		Name:        cat.Name,
		GeneratedAt: time.Now().UTC(),
	}

	for _, t := range cat.All() {
		index.Topics = append(index.Topics, IndexEntry{
			ID:       t.ID,
			Title:    t.Title,
			Subtitle: t.Subtitle,
			Category: t.Category,
			Tags:     t.Tags,
			Summary:  t.Summary,
		})

		data, err := json.MarshalIndent(t, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal topic %s: %w", t.ID, err)
		}
		path := filepath.Join(topicsDir, t.ID+".json")
		if err := writeFileAtomic(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}
	if err := writeFileAtomic(filepath.Join(dir, "index.json"), data, 0644); err != nil {
		return fmt.Errorf("failed to write index: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"topics": cat.Len(),
		"dir":    dir,
	}).Info("Exported topic bundle")

	return nil
}

// Import reads a topic pack from a local JSON or YAML file. The file may
// hold a full pack object, a bare topic list, or a single topic.
func Import(path string) (*packs.Pack, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	isYAML := false
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		isYAML = true
	}

	unmarshal := func(out any) error {
		if isYAML {
			return yaml.Unmarshal(data, out)
		}
		return json.Unmarshal(data, out)
	}

	var pack packs.Pack
	if err := unmarshal(&pack); err == nil && len(pack.Topics) > 0 {
		return &pack, nil
	}

	var list []topic.Topic
	if err := unmarshal(&list); err == nil && len(list) > 0 {
		return &packs.Pack{Name: filepath.Base(path), Topics: list}, nil
	}

	var single topic.Topic
	if err := unmarshal(&single); err == nil && single.ID != "" {
		return &packs.Pack{Name: filepath.Base(path), Topics: []topic.Topic{single}}, nil
	}

	return nil, fmt.Errorf("%s contains no recognizable topics", path)
}

// writeFileAtomic writes via a temp file and rename so a crash mid-export
// never leaves a half-written bundle file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
