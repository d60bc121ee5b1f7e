package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// LikeHandler handles like toggles
type LikeHandler struct {
	engagement *services.EngagementService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

// RegisterLikeRoutes registers like routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/recipes/:id/like", h.ToggleLike)
	g.GET("/recipes/liked", h.GetLikedRecipeIDs)
}

// ToggleLike flips the current user's like and returns the new state
func (h *LikeHandler) ToggleLike(c echo.Context) error {
	result, err := h.engagement.ToggleLike(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, result)
}

func (h *LikeHandler) GetLikedRecipeIDs(c echo.Context) error {
	ids, err := h.engagement.LikedRecipeIDs(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	if ids == nil {
		ids = []string{}
	}
	return success(c, http.StatusOK, echo.Map{"recipe_ids": ids})
}
