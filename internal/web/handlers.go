package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"

	"NewsVerifier/internal/domain"
	"NewsVerifier/internal/usecase"
)

const minTextLength = 5

// Handler serves the credibility-check UI.
type Handler struct {
	checker *usecase.Checker
	feed    *usecase.Feed
	logger  *slog.Logger
}

// NewHandler wires the use cases into the HTTP layer.
func NewHandler(checker *usecase.Checker, feed *usecase.Feed, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{checker: checker, feed: feed, logger: logger}
}

// indexView carries everything the check page renders. Errors are a
// separate field, never smuggled through the verdict.
type indexView struct {
	FormURL  string
	FormText string
	Result   *domain.CheckResult
	Error    string
}

// Health handles GET /healthz.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// Index handles GET /. A url query parameter (arriving from the live
// feed) triggers an immediate check.
func (h *Handler) Index(c *gin.Context) {
	pageURL := c.Query("url")
	if pageURL == "" {
		c.HTML(http.StatusOK, "index.html", indexView{})
		return
	}

	view := indexView{FormURL: pageURL}
	result, err := h.checker.CheckURL(c.Request.Context(), pageURL)
	if err != nil {
		view.Error = checkErrorMessage(err)
	} else {
		view.Result = &result
	}
	c.HTML(http.StatusOK, "index.html", view)
}

// Submit handles POST /: a URL or raw text from the check form.
func (h *Handler) Submit(c *gin.Context) {
	formURL := strings.TrimSpace(c.PostForm("url"))
	formText := strings.TrimSpace(c.PostForm("text"))
	view := indexView{FormURL: formURL, FormText: formText}

	switch {
	case formURL != "":
		if !validURL(formURL) {
			view.Error = "Please enter a valid http(s) URL."
			break
		}
		result, err := h.checker.CheckURL(c.Request.Context(), formURL)
		if err != nil {
			view.Error = checkErrorMessage(err)
			break
		}
		view.Result = &result

	case formText != "":
		if len(formText) < minTextLength {
			view.Error = "Text must be at least 5 characters long."
			break
		}
		result, err := h.checker.CheckText(c.Request.Context(), formText)
		if err != nil {
			view.Error = checkErrorMessage(err)
			break
		}
		view.Result = &result

	default:
		view.Error = "Please enter a URL or news text."
	}

	c.HTML(http.StatusOK, "index.html", view)
}

// LiveFeed handles GET /live_news_feed.
func (h *Handler) LiveFeed(c *gin.Context) {
	headlines, err := h.feed.Headlines(c.Request.Context())
	view := gin.H{"Headlines": headlines}
	if err != nil {
		h.logger.Warn("live feed unavailable", "error", err)
		view["Error"] = "Live feed is currently unavailable."
	}
	c.HTML(http.StatusOK, "live_news.html", view)
}

// SelectHeadline handles POST /live_news_feed: redirects the chosen
// headline into the check page.
func (h *Handler) SelectHeadline(c *gin.Context) {
	selected := c.PostForm("selected_url")
	if selected == "" {
		c.Redirect(http.StatusFound, "/live_news_feed")
		return
	}
	c.Redirect(http.StatusFound, "/?url="+url.QueryEscape(selected))
}

func validURL(raw string) bool {
	parsed, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func checkErrorMessage(err error) string {
	switch {
	case errors.Is(err, usecase.ErrNoContent):
		return "Could not extract article content from that URL."
	case errors.Is(err, usecase.ErrModelUnavailable):
		return "Model Error: ML components not loaded correctly."
	default:
		return "Check failed: " + err.Error()
	}
}
