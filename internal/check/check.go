// Package check runs content-integrity checks over a whole catalog. Unlike
// topic.Validate, which stops at the first problem, the checker reports
// everything wrong so an author can fix a batch of issues in one pass.
package check

import (
	"fmt"
	"strings"

	"crambox/internal/domain/catalog"
	"crambox/internal/domain/topic"
)

// Issue is one problem found in one record.
type Issue struct {
	TopicID string
	Field   string
	Problem string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s: %s", i.TopicID, i.Field, i.Problem)
}

// Report collects every issue across the corpus.
type Report struct {
	Checked int
	Issues  []Issue
}

// OK reports whether the corpus passed every check.
func (r Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) add(id, field, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		TopicID: id,
		Field:   field,
		Problem: fmt.Sprintf(format, args...),
	})
}

// Run checks every record in the catalog against the structural rules:
// required fields, the code-example variant rule, resource URL shape, and
// complete question/answer pairs. Id uniqueness is enforced by catalog.Add
// at load time, so a loaded catalog cannot contain duplicates.
func Run(cat *catalog.Catalog) Report {
	return RunTopics(cat.All())
}

// RunTopics checks records that have not been through catalog.Add yet, such
// as a freshly parsed pack. Duplicate ids across the slice are reported here
// since no catalog index has seen them.
func RunTopics(topics []topic.Topic) Report {
	var r Report
	seen := make(map[string]bool)
	for _, t := range topics {
		r.Checked++
		checkTopic(&r, t)
		if t.ID != "" {
			if seen[t.ID] {
				r.add(t.ID, "id", "duplicate of an earlier record")
			}
			seen[t.ID] = true
		}
	}
	return r
}

func checkTopic(r *Report, t topic.Topic) {
	id := t.ID
	if strings.TrimSpace(id) == "" {
		id = "(missing id)"
		r.add(id, "id", "empty")
	}
	if strings.TrimSpace(t.Title) == "" {
		r.add(id, "title", "empty")
	}
	if strings.TrimSpace(t.Summary) == "" {
		r.add(id, "summary", "empty")
	}
	if strings.TrimSpace(t.Explanation) == "" {
		r.add(id, "explanation", "empty")
	}

	for i, ex := range t.CodeExamples {
		if ex.IsHTML() {
			continue
		}
		if strings.TrimSpace(ex.Language) == "" {
			r.add(id, fmt.Sprintf("codeExamples[%d]", i), "no language and no content")
		}
		if strings.TrimSpace(ex.Code) == "" {
			r.add(id, fmt.Sprintf("codeExamples[%d]", i), "no code and no content")
		}
	}

	for i, res := range t.Resources {
		if strings.TrimSpace(res.Title) == "" {
			r.add(id, fmt.Sprintf("resources[%d]", i), "no title")
		}
		if !topic.ValidURL(res.URL) {
			r.add(id, fmt.Sprintf("resources[%d]", i), "malformed url %q", res.URL)
		}
	}

	for i, q := range t.Questions {
		if strings.TrimSpace(q.Question) == "" {
			r.add(id, fmt.Sprintf("questions[%d]", i), "empty question")
		}
		if strings.TrimSpace(q.Answer) == "" {
			r.add(id, fmt.Sprintf("questions[%d]", i), "empty answer")
		}
	}
}
