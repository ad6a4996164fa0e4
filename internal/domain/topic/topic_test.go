package topic

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTopic() Topic {
	return Topic{
		ID:          "two-phase-commit",
		Title:       "Two-Phase Commit",
		Category:    "distributed-systems",
		Tags:        []string{"transactions", "consensus"},
		Summary:     "A protocol for atomic commit across nodes.",
		Explanation: "A coordinator asks every participant to prepare, then commits or aborts everywhere.",
		CodeExamples: []CodeExample{
			{Title: "Prepare phase", Language: "python", Code: "def prepare(): ..."},
		},
		Resources: []Resource{
			{Type: "article", Title: "2PC explained", URL: "https://example.com/2pc"},
		},
		Questions: []Question{
			{Question: "What happens if the coordinator dies after prepare?", Answer: "Participants block until it recovers or a recovery protocol decides."},
		},
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid topic passes", func(t *testing.T) {
		require.NoError(t, validTopic().Validate())
	})

	t.Run("missing required fields", func(t *testing.T) {
		cases := []struct {
			name   string
			mutate func(*Topic)
			want   error
		}{
			{"no id", func(tp *Topic) { tp.ID = "" }, ErrMissingID},
			{"blank id", func(tp *Topic) { tp.ID = "   " }, ErrMissingID},
			{"no title", func(tp *Topic) { tp.Title = "" }, ErrMissingTitle},
			{"no summary", func(tp *Topic) { tp.Summary = "" }, ErrMissingSummary},
			{"no explanation", func(tp *Topic) { tp.Explanation = "" }, ErrMissingExplanation},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				tp := validTopic()
				tc.mutate(&tp)
				err := tp.Validate()
				require.Error(t, err)
				assert.True(t, errors.Is(err, tc.want), "got %v, want %v", err, tc.want)
			})
		}
	})

	t.Run("code example needs language+code or content", func(t *testing.T) {
		tp := validTopic()
		tp.CodeExamples = append(tp.CodeExamples, CodeExample{Title: "broken"})
		err := tp.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrEmptyCodeExample))
	})

	t.Run("html content variant is accepted alone", func(t *testing.T) {
		tp := validTopic()
		tp.CodeExamples = []CodeExample{
			{Title: "table", Content: "<table><tr><td>ok</td></tr></table>"},
		}
		require.NoError(t, tp.Validate())
	})

	t.Run("malformed resource url", func(t *testing.T) {
		tp := validTopic()
		tp.Resources[0].URL = "not a url"
		err := tp.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrBadResourceURL))
	})

	t.Run("incomplete question pair", func(t *testing.T) {
		tp := validTopic()
		tp.Questions = append(tp.Questions, Question{Question: "Why?"})
		err := tp.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrIncompleteQuestion))
	})
}

func TestValidURL(t *testing.T) {
	assert.True(t, ValidURL("https://example.com/path?q=1"))
	assert.True(t, ValidURL("http://example.com"))
	assert.False(t, ValidURL(""))
	assert.False(t, ValidURL("example.com"))             // no scheme
	assert.False(t, ValidURL("ftp://example.com/file"))  // wrong scheme
	assert.False(t, ValidURL("https://"))                // no host
	assert.False(t, ValidURL("just some words"))
}

func TestIsHTML(t *testing.T) {
	assert.True(t, CodeExample{Content: "<p>hi</p>"}.IsHTML())
	assert.False(t, CodeExample{Language: "go", Code: "package main"}.IsHTML())
	assert.False(t, CodeExample{Content: "   "}.IsHTML())
}

func TestMatches(t *testing.T) {
	tp := validTopic()

	assert.True(t, tp.Matches(""))
	assert.True(t, tp.Matches("two-phase"))
	assert.True(t, tp.Matches("COMMIT"))     // case-insensitive, matches title
	assert.True(t, tp.Matches("consensus"))  // tag hit
	assert.False(t, tp.Matches("paxos"))
}

func TestHasTag(t *testing.T) {
	tp := validTopic()
	assert.True(t, tp.HasTag("Transactions"))
	assert.False(t, tp.HasTag("caching"))
}
