package services

import (
	"context"
	"log/slog"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/storage"
)

// RecipeService handles posting and editing recipes
type RecipeService struct {
	recipes repositories.RecipeRepository
	users   repositories.UserRepository
	saved   repositories.SavedPostRepository
	blobs   storage.BlobStore
	hub     *live.Hub
	logger  *slog.Logger
}

func NewRecipeService(
	recipes repositories.RecipeRepository,
	users repositories.UserRepository,
	saved repositories.SavedPostRepository,
	blobs storage.BlobStore,
	hub *live.Hub,
	logger *slog.Logger,
) *RecipeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecipeService{
		recipes: recipes,
		users:   users,
		saved:   saved,
		blobs:   blobs,
		hub:     hub,
		logger:  logger,
	}
}

// IsCategory reports whether category is one of the fixed recipe categories
func IsCategory(category string) bool {
	for _, c := range models.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Create posts a recipe owned by viewerID. A supplied image is uploaded and
// takes precedence over req.ImageURL.
func (s *RecipeService) Create(ctx context.Context, viewerID uint, req models.CreateRecipeRequest, image *Upload) (*models.Recipe, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if !IsCategory(req.Category) {
		return nil, invalid("unknown category %q", req.Category)
	}
	author, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get author", err)
	}

	recipe := &models.Recipe{
		UserID:       author.ID,
		DisplayName:  author.Name,
		RecipeName:   req.RecipeName,
		Ingredients:  req.Ingredients,
		Instructions: req.Instructions,
		Difficulty:   req.Difficulty,
		PrepTime:     req.PrepTime,
		Serving:      req.Serving,
		Category:     req.Category,
		ImageURL:     req.ImageURL,
	}
	if image != nil {
		recipe.ImageURL, err = s.upload(ctx, storage.RecipeImagePath(viewerID, image.Filename), image)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recipes.CreateRecipe(ctx, recipe); err != nil {
		return nil, storeErr("create recipe", err)
	}
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "created", Payload: recipe.ID.Hex()})
	return recipe, nil
}

func (s *RecipeService) upload(ctx context.Context, path string, file *Upload) (string, error) {
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	url, err := s.blobs.Upload(ctx, path, file.Body, contentType)
	if err != nil {
		return "", storeErr("upload image", err)
	}
	return url, nil
}

func (s *RecipeService) Get(ctx context.Context, recipeID string) (*models.Recipe, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr("get recipe", err)
	}
	return recipe, nil
}

func (s *RecipeService) ListByUser(ctx context.Context, userID uint) ([]models.Recipe, error) {
	recipes, err := s.recipes.GetRecipesByUserID(ctx, userID)
	if err != nil {
		return nil, storeErr("list recipes", err)
	}
	return recipes, nil
}

func (s *RecipeService) owned(ctx context.Context, viewerID uint, recipeID string) (*models.Recipe, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr("get recipe", err)
	}
	if recipe.UserID != viewerID {
		return nil, ErrForbidden
	}
	return recipe, nil
}

// Update applies the non-empty fields of req. Only the owner may edit.
func (s *RecipeService) Update(ctx context.Context, viewerID uint, recipeID string, req models.UpdateRecipeRequest, image *Upload) (*models.Recipe, error) {
	recipe, err := s.owned(ctx, viewerID, recipeID)
	if err != nil {
		return nil, err
	}
	if req.Category != "" && !IsCategory(req.Category) {
		return nil, invalid("unknown category %q", req.Category)
	}

	if req.RecipeName != "" {
		recipe.RecipeName = req.RecipeName
	}
	if len(req.Ingredients) > 0 {
		recipe.Ingredients = req.Ingredients
	}
	if len(req.Instructions) > 0 {
		recipe.Instructions = req.Instructions
	}
	if req.Difficulty != "" {
		recipe.Difficulty = req.Difficulty
	}
	if req.PrepTime != "" {
		recipe.PrepTime = req.PrepTime
	}
	if req.Serving != "" {
		recipe.Serving = req.Serving
	}
	if req.Category != "" {
		recipe.Category = req.Category
	}
	if req.ImageURL != "" {
		recipe.ImageURL = req.ImageURL
	}
	if image != nil {
		recipe.ImageURL, err = s.upload(ctx, storage.RecipeImagePath(viewerID, image.Filename), image)
		if err != nil {
			return nil, err
		}
	}

	if err := s.recipes.UpdateRecipe(ctx, recipeID, recipe); err != nil {
		return nil, storeErr("update recipe", err)
	}
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "updated", Payload: recipeID})
	return recipe, nil
}

// Delete removes the viewer's own recipe
func (s *RecipeService) Delete(ctx context.Context, viewerID uint, recipeID string) error {
	if _, err := s.owned(ctx, viewerID, recipeID); err != nil {
		return err
	}
	return s.remove(ctx, recipeID)
}

// remove deletes a recipe regardless of owner and drops it from every saved list
func (s *RecipeService) remove(ctx context.Context, recipeID string) error {
	if err := s.recipes.DeleteRecipe(ctx, recipeID); err != nil {
		return storeErr("delete recipe", err)
	}
	if err := s.saved.RemoveEverywhere(ctx, recipeID); err != nil {
		s.logger.Warn("saved lists still reference deleted recipe", "recipe_id", recipeID, "error", err)
	}
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "deleted", Payload: recipeID})
	return nil
}
