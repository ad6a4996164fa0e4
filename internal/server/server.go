// Package server exposes the loaded catalog as a small read-only JSON API,
// the same data the export bundle carries but live.
package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"crambox/internal/domain/catalog"
)

// NewRouter builds the gin engine with all routes registered.
func NewRouter(cat *catalog.Catalog) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "OPTIONS"},
		AllowHeaders:  []string{"Content-Type"},
		ExposeHeaders: []string{"Content-Length"},
	}))

	h := NewTopicHandler(cat)

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	{
		api.GET("/topics", h.ListTopics)
		api.GET("/topics/:id", h.GetTopic)
		api.GET("/topics/:id/quiz", h.GetTopicQuiz)
		api.GET("/categories", h.ListCategories)
	}

	return router
}

// Run serves the catalog on addr until the process is stopped.
func Run(cat *catalog.Catalog, addr string) error {
	logrus.WithFields(logrus.Fields{
		"addr":   addr,
		"topics": cat.Len(),
	}).Info("Serving topic catalog")

	return NewRouter(cat).Run(addr)
}
