package services

import (
	"context"
	"strings"

	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/search"
	"github.com/anonto42/recipebook/backend/internal/storage"
	"golang.org/x/sync/errgroup"
)

// searchLimit caps each half of a search result
const searchLimit = 50

// UserService serves profiles and search
type UserService struct {
	users   repositories.UserRepository
	recipes repositories.RecipeRepository
	graph   *SocialGraphService
	blobs   storage.BlobStore
}

func NewUserService(users repositories.UserRepository, recipes repositories.RecipeRepository, graph *SocialGraphService, blobs storage.BlobStore) *UserService {
	return &UserService{users: users, recipes: recipes, graph: graph, blobs: blobs}
}

// SearchResult holds the users and recipes matching a query
type SearchResult struct {
	Users   []models.UserCompact `json:"users"`
	Recipes []models.Recipe      `json:"recipes"`
}

// Profile returns targetID's profile with the viewer's relationship to it
func (s *UserService) Profile(ctx context.Context, viewerID, targetID uint) (*models.UserProfile, error) {
	user, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}
	state, err := s.graph.Relationship(ctx, viewerID, targetID)
	if err != nil {
		return nil, err
	}
	return &models.UserProfile{
		User:        *user,
		IsFollowing: state.Following,
		CanChat:     state.CanChat,
	}, nil
}

// UpdateProfile edits the viewer's own profile; avatar may be nil
func (s *UserService) UpdateProfile(ctx context.Context, viewerID uint, req models.UpdateUserRequest, avatar *Upload) (*models.User, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	user, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get profile", err)
	}

	if name := strings.TrimSpace(req.Name); name != "" {
		user.Name = name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.DeviceToken != nil {
		user.DeviceToken = *req.DeviceToken
	}
	if avatar != nil {
		contentType := avatar.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		url, err := s.blobs.Upload(ctx, storage.AvatarPath(viewerID, avatar.Filename), avatar.Body, contentType)
		if err != nil {
			return nil, storeErr("upload avatar", err)
		}
		user.AvatarURL = url
	}

	if err := s.users.UpdateUser(ctx, user); err != nil {
		return nil, storeErr("update profile", err)
	}
	return user, nil
}

// Search ranks users by name and recipes by name, author and ingredients
// against the query, tolerating typos. Each term of the query is matched on
// its own and the best term decides an item's rank.
func (s *UserService) Search(ctx context.Context, query string) (*SearchResult, error) {
	if len(search.Terms(query)) == 0 {
		return nil, invalid("search query is required")
	}

	var (
		users   []models.User
		recipes []models.Recipe
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if users, err = s.users.GetUsers(gctx); err != nil {
			return storeErr("list users", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if recipes, err = s.recipes.GetAllRecipes(gctx); err != nil {
			return storeErr("list recipes", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := make(map[uint]string, len(users))
	active := users[:0]
	for _, u := range users {
		names[u.ID] = u.Name
		if !u.IsBanned() {
			active = append(active, u)
		}
	}

	matchedUsers := search.Rank(query, active, func(u models.User) []string {
		return []string{u.Name}
	}, searchLimit)
	matchedRecipes := search.Rank(query, recipes, func(r models.Recipe) []string {
		fields := make([]string, 0, len(r.Ingredients)+2)
		fields = append(fields, r.RecipeName, authorName(names, r))
		return append(fields, r.Ingredients...)
	}, searchLimit)

	return &SearchResult{Users: compactAll(matchedUsers), Recipes: matchedRecipes}, nil
}

func authorName(names map[uint]string, r models.Recipe) string {
	if name, ok := names[r.UserID]; ok {
		return name
	}
	return r.DisplayName
}
