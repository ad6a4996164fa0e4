package packs

import (
	"crambox/internal/domain/topic"
)

// Pack is a downloadable bundle of extra topics published as a single JSON
// (or YAML) document.
type Pack struct {
	Name   string        `json:"name" yaml:"name"`
	URL    string        `json:"url,omitempty" yaml:"url,omitempty"`
	Topics []topic.Topic `json:"topics" yaml:"topics"`
}
