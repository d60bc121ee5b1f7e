package services

import (
	"context"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
)

// EngagementService toggles likes and saves for a (viewer, recipe) pair
type EngagementService struct {
	recipes  repositories.RecipeRepository
	saved    repositories.SavedPostRepository
	notifier *Notifier
	hub      *live.Hub
	metrics  metrics.Recorder
}

func NewEngagementService(
	recipes repositories.RecipeRepository,
	saved repositories.SavedPostRepository,
	notifier *Notifier,
	hub *live.Hub,
	rec metrics.Recorder,
) *EngagementService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &EngagementService{
		recipes:  recipes,
		saved:    saved,
		notifier: notifier,
		hub:      hub,
		metrics:  rec,
	}
}

// ToggleLike flips the viewer's like on a recipe. A new like on someone
// else's recipe notifies its owner in the background.
func (s *EngagementService) ToggleLike(ctx context.Context, viewerID uint, recipeID string) (*models.LikeResult, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}

	recipe, err := s.recipes.ToggleLike(ctx, recipeID, viewerID)
	if err != nil {
		return nil, storeErr("toggle like", err)
	}

	liked := recipe.LikedBy(viewerID)
	s.metrics.RecordToggle("like", liked)
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "like", Payload: recipeID})

	if liked && recipe.UserID != viewerID {
		s.notifier.EmitAsync(NotifyEvent{
			Type:     models.NotificationLike,
			RecipeID: recipeID,
			OwnerID:  recipe.UserID,
			ActorID:  viewerID,
		})
	}

	return &models.LikeResult{
		RecipeID:   recipeID,
		Liked:      liked,
		LikesCount: len(recipe.Likes),
	}, nil
}

// ToggleSave flips the recipe's membership in the viewer's saved list,
// creating the list on first use.
func (s *EngagementService) ToggleSave(ctx context.Context, viewerID uint, recipeID string) (*models.SaveResult, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	if _, err := s.recipes.GetRecipeByID(ctx, recipeID); err != nil {
		return nil, storeErr("get recipe", err)
	}

	record, err := s.saved.ToggleSave(ctx, viewerID, recipeID)
	if err != nil {
		return nil, storeErr("toggle save", err)
	}

	saved := record.Has(recipeID)
	s.metrics.RecordToggle("save", saved)
	return &models.SaveResult{
		RecipeID:   recipeID,
		Saved:      saved,
		SavedCount: len(record.SavedPostIDs),
	}, nil
}

// SavedRecipes resolves the viewer's saved list. Recipes deleted since they
// were saved are skipped.
func (s *EngagementService) SavedRecipes(ctx context.Context, viewerID uint) ([]models.Recipe, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	record, err := s.saved.GetSavedPosts(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get saved posts", err)
	}
	recipes, err := s.recipes.GetRecipesByIDs(ctx, record.SavedPostIDs)
	if err != nil {
		return nil, storeErr("get saved recipes", err)
	}
	return recipes, nil
}

func (s *EngagementService) LikedRecipeIDs(ctx context.Context, viewerID uint) ([]string, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	ids, err := s.recipes.GetLikedRecipeIDs(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get liked recipes", err)
	}
	return ids, nil
}
