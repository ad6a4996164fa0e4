// Package render turns a topic record into a markdown document and, for the
// terminal, pipes it through glamour.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"crambox/internal/domain/topic"
)

// Markdown renders the full study page for a topic as a markdown document.
func Markdown(t topic.Topic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", t.Title)
	if t.Subtitle != "" {
		fmt.Fprintf(&b, "*%s*\n\n", t.Subtitle)
	}
	fmt.Fprintf(&b, "%s\n\n", t.Summary)

	if t.Analogy != "" {
		fmt.Fprintf(&b, "> 💡 %s\n\n", t.Analogy)
	}

	fmt.Fprintf(&b, "%s\n\n", t.Explanation)

	if len(t.KeyPoints) > 0 {
		b.WriteString("## Key Points\n\n")
		for _, p := range t.KeyPoints {
			fmt.Fprintf(&b, "- %s\n", p)
		}
		b.WriteString("\n")
	}

	for _, ex := range t.CodeExamples {
		fmt.Fprintf(&b, "## %s\n\n", ex.Title)
		if ex.IsHTML() {
			// Pre-rendered fragment; glamour passes raw HTML through.
			fmt.Fprintf(&b, "%s\n\n", ex.Content)
			continue
		}
		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", ex.Language, ex.Code)
	}

	if t.RealWorldUse != "" {
		fmt.Fprintf(&b, "## In the Wild\n\n%s\n\n", t.RealWorldUse)
	}

	if len(t.Resources) > 0 {
		b.WriteString("## Further Reading\n\n")
		for _, r := range t.Resources {
			fmt.Fprintf(&b, "- [%s](%s)", r.Title, r.URL)
			if r.Description != "" {
				fmt.Fprintf(&b, " — %s", r.Description)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return b.String()
}

// SpeakableText flattens the topic's prose for a TTS engine: titles and
// explanations read well aloud, code blocks and URLs do not.
func SpeakableText(t topic.Topic) string {
	parts := []string{t.Title + "."}
	if t.Subtitle != "" {
		parts = append(parts, t.Subtitle+".")
	}
	parts = append(parts, t.Summary)
	if t.Analogy != "" {
		parts = append(parts, "Here is an analogy. "+t.Analogy)
	}
	parts = append(parts, stripMarkdown(t.Explanation))
	for _, p := range t.KeyPoints {
		parts = append(parts, p+".")
	}
	return strings.Join(parts, " ")
}

func stripMarkdown(s string) string {
	var out []string
	inFence := false
	for _, line := range strings.Split(s, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		line = strings.ReplaceAll(line, "**", "")
		line = strings.ReplaceAll(line, "*", "")
		line = strings.ReplaceAll(line, "`", "")
		out = append(out, line)
	}
	return strings.Join(out, " ")
}

// Terminal renders the topic's markdown for display in the terminal. Style
// is "auto" by default; --plain callers pass "notty".
func Terminal(t topic.Topic, style string, width int) (string, error) {
	opts := []glamour.TermRendererOption{
		glamour.WithWordWrap(width),
	}
	if style == "" || style == "auto" {
		opts = append(opts, glamour.WithAutoStyle())
	} else {
		opts = append(opts, glamour.WithStylePath(style))
	}

	renderer, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}

	return renderer.Render(Markdown(t))
}
