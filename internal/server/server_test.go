package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crambox/internal/domain/catalog"
	"crambox/internal/domain/topic"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cat := catalog.New("test")
	require.NoError(t, cat.Add(topic.Topic{
		ID:          "tcp-handshake",
		Title:       "TCP Handshake",
		Category:    "networking",
		Tags:        []string{"tcp"},
		Summary:     "SYN, SYN-ACK, ACK.",
		Explanation: "Three segments establish sequence numbers in both directions.",
		Questions: []topic.Question{
			{Question: "Why three messages?", Answer: "Both sides must prove they can send and receive."},
		},
	}))
	require.NoError(t, cat.Add(topic.Topic{
		ID:          "write-ahead-log",
		Title:       "Write-Ahead Logging",
		Category:    "databases",
		Summary:     "Log before you mutate.",
		Explanation: "Changes hit an append-only log before the data pages, so recovery can replay.",
	}))

	return NewRouter(cat)
}

func doGET(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	w := doGET(t, testRouter(t), "/healthcheck")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestListTopics(t *testing.T) {
	router := testRouter(t)

	w := doGET(t, router, "/api/topics")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Topics []map[string]any `json:"topics"`
		Count  int              `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "tcp-handshake", resp.Topics[0]["id"])
	// Listing is summaries only.
	assert.NotContains(t, resp.Topics[0], "explanation")
}

func TestListTopicsFiltered(t *testing.T) {
	router := testRouter(t)

	w := doGET(t, router, "/api/topics?category=databases")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestGetTopic(t *testing.T) {
	router := testRouter(t)

	w := doGET(t, router, "/api/topics/tcp-handshake")
	require.Equal(t, http.StatusOK, w.Code)

	var rec topic.Topic
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rec))
	assert.Equal(t, "TCP Handshake", rec.Title)
	assert.NotEmpty(t, rec.Explanation)
}

func TestGetTopicNotFound(t *testing.T) {
	w := doGET(t, testRouter(t), "/api/topics/nope")
	require.Equal(t, http.StatusNotFound, w.Code)

	var envelope ErrorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "topic_not_found", envelope.Error.Code)
}

func TestGetTopicQuiz(t *testing.T) {
	router := testRouter(t)

	w := doGET(t, router, "/api/topics/tcp-handshake/quiz")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		TopicID   string           `json:"topicId"`
		Questions []topic.Question `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tcp-handshake", resp.TopicID)
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, "Why three messages?", resp.Questions[0].Question)
}

func TestListCategories(t *testing.T) {
	w := doGET(t, testRouter(t), "/api/categories")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"categories":["databases","networking"]}`, w.Body.String())
}
