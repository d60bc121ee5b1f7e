package services

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"golang.org/x/sync/errgroup"
)

// FeedService composes the ranked home feed
type FeedService struct {
	recipes repositories.RecipeRepository
	users   repositories.UserRepository
	follows repositories.FollowRepository
	saved   repositories.SavedPostRepository
	hub     *live.Hub
	metrics metrics.Recorder
	logger  *slog.Logger
}

func NewFeedService(
	recipes repositories.RecipeRepository,
	users repositories.UserRepository,
	follows repositories.FollowRepository,
	saved repositories.SavedPostRepository,
	hub *live.Hub,
	rec metrics.Recorder,
	logger *slog.Logger,
) *FeedService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedService{
		recipes: recipes,
		users:   users,
		follows: follows,
		saved:   saved,
		hub:     hub,
		metrics: rec,
		logger:  logger,
	}
}

// Compose returns every recipe joined to its author and ranked for viewerID.
// viewerID 0 is an anonymous viewer with no follows and no saves.
func (s *FeedService) Compose(ctx context.Context, viewerID uint) ([]models.FeedEntry, error) {
	start := time.Now()

	var (
		recipes   []models.Recipe
		users     []models.User
		following []uint
		saved     = &models.SavedPosts{}
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		recipes, err = s.recipes.GetAllRecipes(gctx)
		return storeErrOrNil("load recipes", err)
	})
	g.Go(func() error {
		var err error
		users, err = s.users.GetUsers(gctx)
		return storeErrOrNil("load profiles", err)
	})
	if viewerID != 0 {
		g.Go(func() error {
			var err error
			following, err = s.follows.GetFollowingIDs(gctx, viewerID)
			return storeErrOrNil("load following", err)
		})
		g.Go(func() error {
			var err error
			saved, err = s.saved.GetSavedPosts(gctx, viewerID)
			return storeErrOrNil("load saved posts", err)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := buildFeed(viewerID, recipes, users, following, saved)
	s.metrics.RecordFeedComposed(time.Since(start), len(entries))
	return entries, nil
}

func storeErrOrNil(op string, err error) error {
	if err == nil {
		return nil
	}
	return storeErr(op, err)
}

func buildFeed(viewerID uint, recipes []models.Recipe, users []models.User, following []uint, saved *models.SavedPosts) []models.FeedEntry {
	authors := make(map[uint]*models.User, len(users))
	for i := range users {
		authors[users[i].ID] = &users[i]
	}
	followed := make(map[uint]bool, len(following))
	for _, id := range following {
		followed[id] = true
	}

	entries := make([]models.FeedEntry, 0, len(recipes))
	for _, recipe := range recipes {
		entry := models.FeedEntry{
			Recipe:        recipe,
			AuthorName:    recipe.DisplayName,
			IsLiked:       viewerID != 0 && recipe.LikedBy(viewerID),
			IsSaved:       saved != nil && saved.Has(recipe.ID.Hex()),
			IsFollowed:    followed[recipe.UserID],
			LikesCount:    len(recipe.Likes),
			CommentsCount: len(recipe.Comments),
		}
		if author, ok := authors[recipe.UserID]; ok {
			compact := author.ToCompact()
			entry.Author = &compact
			entry.AuthorName = author.Name
		}
		entries = append(entries, entry)
	}

	rankFeed(entries)
	return entries
}

// rankFeed orders followed authors first, then by like count, then newest.
// The recipe ID breaks any remaining tie so the order is deterministic.
func rankFeed(entries []models.FeedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := &entries[i], &entries[j]
		if a.IsFollowed != b.IsFollowed {
			return a.IsFollowed
		}
		if a.LikesCount != b.LikesCount {
			return a.LikesCount > b.LikesCount
		}
		if !a.Recipe.CreatedAt.Equal(b.Recipe.CreatedAt) {
			return a.Recipe.CreatedAt.After(b.Recipe.CreatedAt)
		}
		return a.Recipe.ID.Hex() > b.Recipe.ID.Hex()
	})
}

// Stream sends a freshly composed feed on subscription and again after every
// recipe change until ctx ends. The channel is closed when the subscription
// is released.
func (s *FeedService) Stream(ctx context.Context, viewerID uint) <-chan []models.FeedEntry {
	changes := s.hub.Subscribe(ctx, live.TopicRecipes)
	out := make(chan []models.FeedEntry, 1)

	go func() {
		defer close(out)
		send := func() bool {
			feed, err := s.Compose(ctx, viewerID)
			if err != nil {
				if ctx.Err() == nil {
					s.logger.Warn("feed recompose failed", "viewer_id", viewerID, "error", err)
				}
				return ctx.Err() == nil
			}
			select {
			case out <- feed:
				return true
			case <-ctx.Done():
				return false
			}
		}

		if !send() {
			return
		}
		for range changes {
			if !send() {
				return
			}
		}
	}()
	return out
}
