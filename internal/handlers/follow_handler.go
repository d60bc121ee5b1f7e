package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// FollowHandler handles follow/unfollow requests
type FollowHandler struct {
	graph *services.SocialGraphService
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.SocialGraphService) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.ToggleFollow)
	g.PUT("/users/:id/follow", h.Follow)
	g.DELETE("/users/:id/follow", h.Unfollow)
	g.GET("/users/:id/followers", h.GetFollowers)
	g.GET("/users/:id/following", h.GetFollowing)
}

type followFunc func(c echo.Context, viewerID, targetID uint) (*models.FollowState, error)

func (h *FollowHandler) transition(c echo.Context, fn followFunc) error {
	targetID, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	state, err := fn(c, getUserIDFromContext(c), targetID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, state)
}

func (h *FollowHandler) ToggleFollow(c echo.Context) error {
	return h.transition(c, func(c echo.Context, viewerID, targetID uint) (*models.FollowState, error) {
		return h.graph.ToggleFollow(c.Request().Context(), viewerID, targetID)
	})
}

func (h *FollowHandler) Follow(c echo.Context) error {
	return h.transition(c, func(c echo.Context, viewerID, targetID uint) (*models.FollowState, error) {
		return h.graph.Follow(c.Request().Context(), viewerID, targetID)
	})
}

func (h *FollowHandler) Unfollow(c echo.Context) error {
	return h.transition(c, func(c echo.Context, viewerID, targetID uint) (*models.FollowState, error) {
		return h.graph.Unfollow(c.Request().Context(), viewerID, targetID)
	})
}

func (h *FollowHandler) GetFollowers(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.graph.Followers(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"users": users})
}

func (h *FollowHandler) GetFollowing(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	users, err := h.graph.Following(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"users": users})
}
