package catalog

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"crambox/internal/domain/topic"
)

// Catalog is the registry of every loaded topic. Insertion order is kept for
// display; the id index backs O(1) lookup and enforces corpus-wide id
// uniqueness.
type Catalog struct {
	Name   string
	topics []topic.Topic
	byID   map[string]int
}

// New returns an empty catalog.
func New(name string) *Catalog {
	return &Catalog{
		Name: name,
		byID: make(map[string]int),
	}
}

// Add validates t and appends it to the catalog. Duplicate ids are rejected
// so that every topic id stays unique across the whole corpus.
func (c *Catalog) Add(t topic.Topic) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, exists := c.byID[t.ID]; exists {
		return fmt.Errorf("duplicate topic id %q", t.ID)
	}
	c.byID[t.ID] = len(c.topics)
	c.topics = append(c.topics, t)
	return nil
}

// Get returns the topic with the given id.
func (c *Catalog) Get(id string) (topic.Topic, bool) {
	i, ok := c.byID[id]
	if !ok {
		return topic.Topic{}, false
	}
	return c.topics[i], true
}

// All returns every topic in insertion order. The returned slice is a copy;
// records themselves are treated as immutable.
func (c *Catalog) All() []topic.Topic {
	out := make([]topic.Topic, len(c.topics))
	copy(out, c.topics)
	return out
}

// Len returns the number of topics in the catalog.
func (c *Catalog) Len() int {
	return len(c.topics)
}

// IDs returns every topic id in insertion order.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.topics))
	for _, t := range c.topics {
		ids = append(ids, t.ID)
	}
	return ids
}

// Categories returns the distinct category labels in sorted order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, t := range c.topics {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		cats = append(cats, t.Category)
	}
	sort.Strings(cats)
	return cats
}

// Filter narrows the listing. Empty arguments match everything.
type Filter struct {
	Category string
	Tag      string
	Query    string
}

// Select returns the topics matching f, in insertion order.
func (c *Catalog) Select(f Filter) []topic.Topic {
	var out []topic.Topic
	for _, t := range c.topics {
		if f.Category != "" && !strings.EqualFold(t.Category, f.Category) {
			continue
		}
		if f.Tag != "" && !t.HasTag(f.Tag) {
			continue
		}
		if !t.Matches(f.Query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Random returns a uniformly chosen topic.
func (c *Catalog) Random() (topic.Topic, bool) {
	if len(c.topics) == 0 {
		return topic.Topic{}, false
	}
	return c.topics[rand.Intn(len(c.topics))], true
}

// Merge adds every topic from other, failing on the first invalid or
// duplicate record.
func (c *Catalog) Merge(other *Catalog) error {
	for _, t := range other.topics {
		if err := c.Add(t); err != nil {
			return err
		}
	}
	return nil
}
