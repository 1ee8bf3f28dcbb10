package web

import (
	"embed"
	"html/template"
	"log/slog"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html
var templateFS embed.FS

// NewRouter assembles the gin engine with all routes and the embedded
// HTML templates.
func NewRouter(handler *Handler, logger *slog.Logger, debug bool) *gin.Engine {
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	router.GET("/healthz", handler.Health)
	router.GET("/", handler.Index)
	router.POST("/", handler.Submit)
	router.GET("/live_news_feed", handler.LiveFeed)
	router.POST("/live_news_feed", handler.SelectHeadline)

	return router
}
