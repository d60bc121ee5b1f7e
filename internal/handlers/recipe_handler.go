package handlers

import (
	"net/http"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
)

// RecipeHandler handles recipe CRUD requests
type RecipeHandler struct {
	recipes *services.RecipeService
}

// NewRecipeHandler creates a new RecipeHandler
func NewRecipeHandler(recipes *services.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRecipeRoutes registers recipe routes
func (h *RecipeHandler) RegisterRecipeRoutes(g *echo.Group) {
	g.POST("/recipes", h.CreateRecipe)
	g.GET("/recipes/:id", h.GetRecipe)
	g.PUT("/recipes/:id", h.UpdateRecipe)
	g.DELETE("/recipes/:id", h.DeleteRecipe)
}

// CreateRecipe posts a recipe from JSON or a multipart form with an "image" file
func (h *RecipeHandler) CreateRecipe(c echo.Context) error {
	var req models.CreateRecipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	image, closer, err := formFile(c, "image")
	if err != nil {
		return err
	}
	defer closer.Close()

	recipe, err := h.recipes.Create(c.Request().Context(), getUserIDFromContext(c), req, image)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusCreated, recipe)
}

func (h *RecipeHandler) GetRecipe(c echo.Context) error {
	recipe, err := h.recipes.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c echo.Context) error {
	var req models.UpdateRecipeRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	image, closer, err := formFile(c, "image")
	if err != nil {
		return err
	}
	defer closer.Close()

	recipe, err := h.recipes.Update(c.Request().Context(), getUserIDFromContext(c), c.Param("id"), req, image)
	if err != nil {
		return toHTTPError(err)
	}
	return success(c, http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c echo.Context) error {
	if err := h.recipes.Delete(c.Request().Context(), getUserIDFromContext(c), c.Param("id")); err != nil {
		return toHTTPError(err)
	}
	return c.NoContent(http.StatusNoContent)
}
