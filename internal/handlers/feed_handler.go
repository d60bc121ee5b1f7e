package handlers

import (
	"net/http"
	"time"

	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedService
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedService) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/feed", h.GetFeed)
	g.GET("/feed/stream", h.StreamFeed)
}

// GetFeed returns the ranked feed for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	entries, err := h.feed.Compose(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"recipes": entries, "total": len(entries)})
}

// StreamFeed pushes a recomposed feed whenever any recipe changes, until the
// client disconnects.
func (h *FeedHandler) StreamFeed(c echo.Context) error {
	feeds := h.feed.Stream(c.Request().Context(), getUserIDFromContext(c))
	startSSE(c)

	ticker := time.NewTicker(keepAliveInterval)
	defer ticker.Stop()
	for {
		select {
		case entries, ok := <-feeds:
			if !ok {
				return nil
			}
			if err := writeSSE(c, "feed", entries); err != nil {
				return nil
			}
		case <-ticker.C:
			if err := writeKeepAlive(c); err != nil {
				return nil
			}
		}
	}
}
