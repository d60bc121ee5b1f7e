package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users   *services.UserService
	recipes *services.RecipeService
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.UserService, recipes *services.RecipeService) *UserHandler {
	return &UserHandler{users: users, recipes: recipes}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.UpdateProfile)
	g.GET("/users/:id", h.GetUser)
	g.GET("/users/:id/recipes", h.GetUserRecipes)
	g.GET("/search", h.Search)
}

func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	profile, err := h.users.Profile(c.Request().Context(), getUserIDFromContext(c), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, profile)
}

// GetProfile retrieves the authenticated user's profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	profile, err := h.users.Profile(c.Request().Context(), currentUserID, currentUserID)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, profile)
}

// UpdateProfile updates the authenticated user's profile. An "avatar" file
// may accompany a multipart request.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	avatar, closer, err := formFile(c, "avatar")
	if err != nil {
		return err
	}
	defer closer.Close()

	user, err := h.users.UpdateProfile(c.Request().Context(), getUserIDFromContext(c), req, avatar)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, user)
}

func (h *UserHandler) GetUserRecipes(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	recipes, err := h.recipes.ListByUser(c.Request().Context(), id)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, echo.Map{"recipes": recipes})
}

// Search finds users and recipes by a query string
func (h *UserHandler) Search(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Search query 'q' is required")
	}

	result, err := h.users.Search(c.Request().Context(), query)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, result)
}
