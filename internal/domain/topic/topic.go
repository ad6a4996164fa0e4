package topic

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validation errors.
var (
	ErrMissingID          = errors.New("topic has no id")
	ErrMissingTitle       = errors.New("topic has no title")
	ErrMissingSummary     = errors.New("topic has no summary")
	ErrMissingExplanation = errors.New("topic has no explanation")
	ErrEmptyCodeExample   = errors.New("code example has neither code nor content")
	ErrBadResourceURL     = errors.New("resource url is not a valid http(s) url")
	ErrIncompleteQuestion = errors.New("question and answer must both be set")
)

// Topic is one subject's bundled study content. Records are authored by
// hand, loaded once, and never mutated afterwards.
type Topic struct {
	ID            string        `json:"id" yaml:"id"`
	Title         string        `json:"title" yaml:"title"`
	Subtitle      string        `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Category      string        `json:"category,omitempty" yaml:"category,omitempty"`
	Tags          []string      `json:"tags,omitempty" yaml:"tags,omitempty"`
	Summary       string        `json:"summary" yaml:"summary"`
	Analogy       string        `json:"analogy,omitempty" yaml:"analogy,omitempty"`
	VisualConcept string        `json:"visualConcept,omitempty" yaml:"visualConcept,omitempty"`
	RealWorldUse  string        `json:"realWorldUse,omitempty" yaml:"realWorldUse,omitempty"`
	Explanation   string        `json:"explanation" yaml:"explanation"`
	KeyPoints     []string      `json:"keyPoints,omitempty" yaml:"keyPoints,omitempty"`
	CodeExamples  []CodeExample `json:"codeExamples,omitempty" yaml:"codeExamples,omitempty"`
	Resources     []Resource    `json:"resources,omitempty" yaml:"resources,omitempty"`
	Questions     []Question    `json:"questions,omitempty" yaml:"questions,omitempty"`
}

// CodeExample is an illustrative snippet shown to the learner. It is never
// executed. Either Language+Code are set, or Content holds a pre-rendered
// HTML fragment.
type CodeExample struct {
	Title    string `json:"title" yaml:"title"`
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Code     string `json:"code,omitempty" yaml:"code,omitempty"`
	Content  string `json:"content,omitempty" yaml:"content,omitempty"`
}

// Resource links to third-party reading material.
type Resource struct {
	Type        string `json:"type" yaml:"type"`
	Title       string `json:"title" yaml:"title"`
	URL         string `json:"url" yaml:"url"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Question is one FAQ-style study pair.
type Question struct {
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// IsHTML reports whether the example carries a pre-rendered HTML fragment
// instead of a language-tagged snippet.
func (c CodeExample) IsHTML() bool {
	return strings.TrimSpace(c.Content) != ""
}

// Validate checks the structural rules every record must satisfy. It returns
// the first problem found; the check package collects all of them across
// the corpus.
func (t Topic) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrMissingID
	}
	if strings.TrimSpace(t.Title) == "" {
		return fmt.Errorf("%w: %s", ErrMissingTitle, t.ID)
	}
	if strings.TrimSpace(t.Summary) == "" {
		return fmt.Errorf("%w: %s", ErrMissingSummary, t.ID)
	}
	if strings.TrimSpace(t.Explanation) == "" {
		return fmt.Errorf("%w: %s", ErrMissingExplanation, t.ID)
	}

	for i, ex := range t.CodeExamples {
		if ex.IsHTML() {
			continue
		}
		if strings.TrimSpace(ex.Language) == "" || strings.TrimSpace(ex.Code) == "" {
			return fmt.Errorf("%w: %s codeExamples[%d]", ErrEmptyCodeExample, t.ID, i)
		}
	}

	for i, r := range t.Resources {
		if !ValidURL(r.URL) {
			return fmt.Errorf("%w: %s resources[%d] (%q)", ErrBadResourceURL, t.ID, i, r.URL)
		}
	}

	for i, q := range t.Questions {
		if strings.TrimSpace(q.Question) == "" || strings.TrimSpace(q.Answer) == "" {
			return fmt.Errorf("%w: %s questions[%d]", ErrIncompleteQuestion, t.ID, i)
		}
	}

	return nil
}

// ValidURL reports whether s parses as an absolute http or https URL.
func ValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// HasTag reports whether the topic carries the given tag (case-insensitive).
func (t Topic) HasTag(tag string) bool {
	for _, have := range t.Tags {
		if strings.EqualFold(have, tag) {
			return true
		}
	}
	return false
}

// Matches reports whether the free-text query appears in the topic's id,
// title, subtitle, summary or tags. Used by the list --search filter.
func (t Topic) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	for _, field := range []string{t.ID, t.Title, t.Subtitle, t.Summary} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return t.HasTag(q)
}
