package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/services"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// likeOnlyRecipes implements just the like toggle; other methods are unused here.
type likeOnlyRecipes struct {
	repositories.RecipeRepository
	mu     sync.Mutex
	recipe models.Recipe
}

func (r *likeOnlyRecipes) ToggleLike(_ context.Context, id string, userID uint) (*models.Recipe, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id != r.recipe.ID.Hex() {
		return nil, repositories.ErrNotFound
	}
	if r.recipe.LikedBy(userID) {
		kept := r.recipe.Likes[:0]
		for _, u := range r.recipe.Likes {
			if u != userID {
				kept = append(kept, u)
			}
		}
		r.recipe.Likes = kept
	} else {
		r.recipe.Likes = append(r.recipe.Likes, userID)
	}
	cp := r.recipe
	cp.Likes = append([]uint(nil), r.recipe.Likes...)
	return &cp, nil
}

type likeResponse struct {
	Success bool              `json:"success"`
	Data    models.LikeResult `json:"data"`
}

func newLikeServer(t *testing.T) (*echo.Echo, string) {
	t.Helper()
	recipes := &likeOnlyRecipes{recipe: models.Recipe{ID: primitive.NewObjectID(), UserID: 1, Likes: []uint{2, 3}}}
	hub := live.NewHub(1)
	// Viewer 1 owns the recipe, so no notification is emitted.
	notifier := services.NewNotifier(nil, nil, hub, nil, nil, nil)
	engagement := services.NewEngagementService(recipes, nil, notifier, hub, nil)

	e := echo.New()
	g := e.Group("", func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("X-Test-User") == "1" {
				c.Set(ContextUserID, uint(1))
			}
			return next(c)
		}
	})
	NewLikeHandler(engagement).RegisterLikeRoutes(g)
	return e, recipes.recipe.ID.Hex()
}

func TestToggleLikeRoundTrip(t *testing.T) {
	e, id := newLikeServer(t)

	toggle := func() likeResponse {
		req := httptest.NewRequest(http.MethodPost, "/recipes/"+id+"/like", nil)
		req.Header.Set("X-Test-User", "1")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp likeResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		return resp
	}

	first := toggle()
	assert.True(t, first.Success)
	assert.True(t, first.Data.Liked)
	assert.Equal(t, 3, first.Data.LikesCount)

	second := toggle()
	assert.False(t, second.Data.Liked)
	assert.Equal(t, 2, second.Data.LikesCount)
}

func TestToggleLikeErrors(t *testing.T) {
	e, id := newLikeServer(t)

	req := httptest.NewRequest(http.MethodPost, "/recipes/"+id+"/like", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/recipes/"+primitive.NewObjectID().Hex()+"/like", nil)
	req.Header.Set("X-Test-User", "1")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
