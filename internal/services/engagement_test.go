package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLike_DoubleToggleRestoresMembership(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	viewer := e.users.add("viewer", "viewer@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	first, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, first.Liked)
	assert.Equal(t, 1, first.LikesCount)

	second, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.False(t, second.Liked)
	assert.Equal(t, 0, second.LikesCount)

	e.notifier.Wait()
	stored, _ := e.recipes.GetRecipeByID(ctx, recipe.ID.Hex())
	assert.Empty(t, stored.Likes)
}

func TestToggleLike_CountChangesByOnePerCall(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{42, 43}, time.Now())
	viewer := e.users.add("viewer", "viewer@example.com")

	prev := 2
	for i := 0; i < 4; i++ {
		res, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
		require.NoError(t, err)
		diff := res.LikesCount - prev
		assert.True(t, diff == 1 || diff == -1, "like count moved by %d", diff)
		prev = res.LikesCount
	}
	e.notifier.Wait()
}

func TestToggleLike_ConcurrentTogglesKeepSetUnique(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = e.engagement.ToggleLike(ctx, owner.ID, recipe.ID.Hex())
		}()
	}
	wg.Wait()

	stored, _ := e.recipes.GetRecipeByID(ctx, recipe.ID.Hex())
	assert.LessOrEqual(t, len(stored.Likes), 1)
}

func TestToggleLike_SelfLikeEmitsNothing(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	res, err := e.engagement.ToggleLike(ctx, owner.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)

	e.notifier.Wait()
	assert.Empty(t, e.notifications.snapshot())
}

func TestToggleLike_OtherUserEmitsExactlyOneLike(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	viewer := e.users.add("viewer", "viewer@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	_, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	e.notifier.Wait()

	got := e.notifications.snapshot()
	require.Len(t, got, 1)
	assert.Equal(t, models.NotificationLike, got[0].Type)
	assert.Equal(t, owner.ID, got[0].RecipientID)
	assert.Equal(t, viewer.ID, got[0].SenderID)
	assert.Equal(t, "viewer", got[0].SenderName)
	assert.Equal(t, recipe.ID.Hex(), got[0].RecipeID)
}

func TestToggleLike_UnlikeDoesNotNotify(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	viewer := e.users.add("viewer", "viewer@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{viewer.ID}, time.Now())

	res, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.False(t, res.Liked)
	e.notifier.Wait()
	assert.Empty(t, e.notifications.snapshot())
}

func TestToggleLike_NotificationFailureDoesNotFailLike(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	viewer := e.users.add("viewer", "viewer@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())
	e.notifications.err = errBoom("insert")

	res, err := e.engagement.ToggleLike(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Liked)
	e.notifier.Wait()
}

func TestToggleLike_Errors(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	viewer := e.users.add("viewer", "viewer@example.com")

	_, err := e.engagement.ToggleLike(ctx, 0, "65f000000000000000000000")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = e.engagement.ToggleLike(ctx, viewer.ID, "65f000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestToggleSave_FirstSaveCreatesSingleRecord(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	viewer := e.users.add("viewer", "viewer@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	res, err := e.engagement.ToggleSave(ctx, viewer.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.True(t, res.Saved)
	assert.Equal(t, 1, res.SavedCount)

	require.Len(t, e.saved.records, 1)
	assert.Equal(t, []string{recipe.ID.Hex()}, e.saved.records[viewer.ID].SavedPostIDs)

	e.notifier.Wait()
	assert.Empty(t, e.notifications.snapshot(), "saving never notifies")
}

func TestToggleSave_SecondToggleRemoves(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	recipe := e.recipes.seed(owner, "Soup", []uint{}, time.Now())

	_, err := e.engagement.ToggleSave(ctx, owner.ID, recipe.ID.Hex())
	require.NoError(t, err)
	res, err := e.engagement.ToggleSave(ctx, owner.ID, recipe.ID.Hex())
	require.NoError(t, err)
	assert.False(t, res.Saved)
	assert.Equal(t, 0, res.SavedCount)
}

func TestToggleSave_Errors(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	viewer := e.users.add("viewer", "viewer@example.com")

	_, err := e.engagement.ToggleSave(ctx, 0, "x")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = e.engagement.ToggleSave(ctx, viewer.ID, "65f000000000000000000000")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, e.saved.records)
}

func TestSavedRecipes_SkipsDeleted(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	kept := e.recipes.seed(owner, "Kept", []uint{}, time.Now())
	gone := e.recipes.seed(owner, "Gone", []uint{}, time.Now())

	_, err := e.engagement.ToggleSave(ctx, owner.ID, kept.ID.Hex())
	require.NoError(t, err)
	_, err = e.engagement.ToggleSave(ctx, owner.ID, gone.ID.Hex())
	require.NoError(t, err)
	require.NoError(t, e.recipes.DeleteRecipe(ctx, gone.ID.Hex()))

	recipes, err := e.engagement.SavedRecipes(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Kept", recipes[0].RecipeName)
}

func TestLikedRecipeIDs(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	owner := e.users.add("owner", "owner@example.com")
	liked := e.recipes.seed(owner, "Liked", []uint{owner.ID}, time.Now())
	e.recipes.seed(owner, "Other", []uint{}, time.Now())

	ids, err := e.engagement.LikedRecipeIDs(ctx, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{liked.ID.Hex()}, ids)
}
