package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crambox/internal/domain/catalog"
)

// TopicHandler serves the catalog read-only. Records are immutable after
// load, so handlers need no locking.
type TopicHandler struct {
	catalog *catalog.Catalog
}

func NewTopicHandler(cat *catalog.Catalog) *TopicHandler {
	return &TopicHandler{catalog: cat}
}

// topicSummary is the listing shape; the full record is one more request
// away.
type topicSummary struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Subtitle string   `json:"subtitle,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Summary  string   `json:"summary"`
}

// GET /api/topics?category=&tag=&q=
func (h *TopicHandler) ListTopics(c *gin.Context) {
	topics := h.catalog.Select(catalog.Filter{
		Category: c.Query("category"),
		Tag:      c.Query("tag"),
		Query:    c.Query("q"),
	})

	out := make([]topicSummary, 0, len(topics))
	for _, t := range topics {
		out = append(out, topicSummary{
			ID:       t.ID,
			Title:    t.Title,
			Subtitle: t.Subtitle,
			Category: t.Category,
			Tags:     t.Tags,
			Summary:  t.Summary,
		})
	}

	RespondOK(c, gin.H{"topics": out, "count": len(out)})
}

// GET /api/topics/:id
func (h *TopicHandler) GetTopic(c *gin.Context) {
	t, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "topic_not_found", "no topic with id "+c.Param("id"))
		return
	}
	RespondOK(c, t)
}

// GET /api/topics/:id/quiz
// Just the question pairs, for a front-end flashcard view.
func (h *TopicHandler) GetTopicQuiz(c *gin.Context) {
	t, ok := h.catalog.Get(c.Param("id"))
	if !ok {
		RespondError(c, http.StatusNotFound, "topic_not_found", "no topic with id "+c.Param("id"))
		return
	}
	RespondOK(c, gin.H{"topicId": t.ID, "questions": t.Questions})
}

// GET /api/categories
func (h *TopicHandler) ListCategories(c *gin.Context) {
	RespondOK(c, gin.H{"categories": h.catalog.Categories()})
}

// GET /healthcheck
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
