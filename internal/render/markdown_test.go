package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crambox/internal/domain/topic"
)

func sampleTopic() topic.Topic {
	return topic.Topic{
		ID:           "consistent-hashing",
		Title:        "Consistent Hashing",
		Subtitle:     "Sharding without reshuffling everything",
		Summary:      "A hash ring maps keys to nodes so that adding a node moves only a small fraction of keys.",
		Analogy:      "Seats around a circular table.",
		Explanation:  "Keys and nodes hash onto the same ring. A key belongs to the first node clockwise from it.\n\n```python\nnode = ring.successor(hash(key))\n```\n\nVirtual nodes smooth the load.",
		RealWorldUse: "Memcached client sharding, Dynamo, Cassandra.",
		KeyPoints:    []string{"Only K/N keys move on membership change"},
		CodeExamples: []topic.CodeExample{
			{Title: "Ring lookup", Language: "python", Code: "def lookup(ring, key): ..."},
			{Title: "Ring diagram", Content: "<svg><circle r=\"5\"/></svg>"},
		},
		Resources: []topic.Resource{
			{Type: "paper", Title: "The original paper", URL: "https://example.com/chash", Description: "Karger et al."},
		},
		Questions: []topic.Question{{Question: "Q?", Answer: "A."}},
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleTopic())

	assert.True(t, strings.HasPrefix(md, "# Consistent Hashing\n"))
	assert.Contains(t, md, "*Sharding without reshuffling everything*")
	assert.Contains(t, md, "> 💡 Seats around a circular table.")
	assert.Contains(t, md, "## Key Points")
	assert.Contains(t, md, "- Only K/N keys move on membership change")
	assert.Contains(t, md, "```python\ndef lookup(ring, key): ...\n```")
	assert.Contains(t, md, "<svg><circle r=\"5\"/></svg>")
	assert.Contains(t, md, "## In the Wild")
	assert.Contains(t, md, "[The original paper](https://example.com/chash) — Karger et al.")
}

func TestMarkdownOmitsEmptySections(t *testing.T) {
	bare := topic.Topic{
		ID:          "bare",
		Title:       "Bare",
		Summary:     "Just a summary.",
		Explanation: "Just an explanation.",
	}
	md := Markdown(bare)

	assert.NotContains(t, md, "## Key Points")
	assert.NotContains(t, md, "## Further Reading")
	assert.NotContains(t, md, "## In the Wild")
	assert.NotContains(t, md, "> 💡")
}

func TestSpeakableText(t *testing.T) {
	text := SpeakableText(sampleTopic())

	assert.Contains(t, text, "Consistent Hashing.")
	assert.Contains(t, text, "Here is an analogy.")
	// Fenced code must not be read aloud.
	assert.NotContains(t, text, "ring.successor")
	assert.NotContains(t, text, "```")
	// Inline markdown noise is stripped.
	assert.NotContains(t, text, "**")
}

func TestTerminalNotty(t *testing.T) {
	out, err := Terminal(sampleTopic(), "notty", 80)
	require.NoError(t, err)
	assert.Contains(t, out, "Consistent Hashing")
}
