package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// SavedPostHandler handles bookmarks
type SavedPostHandler struct {
	engagement *services.EngagementService
}

// NewSavedPostHandler creates a new SavedPostHandler
func NewSavedPostHandler(engagement *services.EngagementService) *SavedPostHandler {
	return &SavedPostHandler{engagement: engagement}
}

// RegisterSavedPostRoutes registers saved post routes
func (h *SavedPostHandler) RegisterSavedPostRoutes(g *echo.Group) {
	g.POST("/recipes/:id/save", h.ToggleSave)
	g.GET("/recipes/saved", h.GetSavedRecipes)
}

func (h *SavedPostHandler) ToggleSave(c echo.Context) error {
	result, err := h.engagement.ToggleSave(c.Request().Context(), getUserIDFromContext(c), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, result)
}

// GetSavedRecipes returns the current user's saved recipes
func (h *SavedPostHandler) GetSavedRecipes(c echo.Context) error {
	recipes, err := h.engagement.SavedRecipes(c.Request().Context(), getUserIDFromContext(c))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"recipes": recipes})
}
