// Package content carries the built-in topic corpus, compiled into the
// binary so the CLI works with no files on disk.
package content

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"

	"github.com/sirupsen/logrus"

	"crambox/internal/domain/catalog"
	"crambox/internal/domain/topic"
)

//go:embed topics/*.json
var topicsFS embed.FS

// CatalogName labels the built-in corpus in listings and exports.
const CatalogName = "Built-in Topics"

// Load parses every embedded topic file into a fresh catalog. Files load in
// lexical order, so listing order is stable across runs.
func Load() (*catalog.Catalog, error) {
	cat := catalog.New(CatalogName)

	entries, err := fs.Glob(topicsFS, "topics/*.json")
	if err != nil {
		return nil, fmt.Errorf("failed to glob embedded topics: %w", err)
	}

	for _, name := range entries {
		data, err := topicsFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded topic %s: %w", name, err)
		}

		var t topic.Topic
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to parse embedded topic %s: %w", name, err)
		}

		if err := cat.Add(t); err != nil {
			return nil, fmt.Errorf("failed to register %s: %w", name, err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"topics":     cat.Len(),
		"categories": len(cat.Categories()),
	}).Debug("Loaded built-in topic corpus")

	return cat, nil
}

// MustLoad loads the embedded corpus or dies. The corpus ships inside the
// binary, so a failure here is a build defect, not a runtime condition.
func MustLoad() *catalog.Catalog {
	cat, err := Load()
	if err != nil {
		logrus.WithError(err).Fatal("built-in topic corpus is invalid")
	}
	return cat
}
