package services

import (
	"context"
	"strings"
	"time"

	"github.com/anonto42/recipebook/backend/internal/live"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/google/uuid"
)

const maxCommentLength = 500

// CommentService manages the comments embedded in a recipe
type CommentService struct {
	recipes  repositories.RecipeRepository
	users    repositories.UserRepository
	notifier *Notifier
	hub      *live.Hub
	now      func() time.Time
}

func NewCommentService(recipes repositories.RecipeRepository, users repositories.UserRepository, notifier *Notifier, hub *live.Hub) *CommentService {
	return &CommentService{
		recipes:  recipes,
		users:    users,
		notifier: notifier,
		hub:      hub,
		now:      time.Now,
	}
}

func commentText(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", invalid("comment text is required")
	}
	if len([]rune(text)) > maxCommentLength {
		return "", invalid("comment text exceeds %d characters", maxCommentLength)
	}
	return text, nil
}

// Add appends a comment and notifies the recipe owner when someone else wrote it
func (s *CommentService) Add(ctx context.Context, viewerID uint, recipeID, text string) (*models.CommentView, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	text, err := commentText(text)
	if err != nil {
		return nil, err
	}
	author, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return nil, storeErr("get author", err)
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr("get recipe", err)
	}

	now := s.now().UTC()
	comment := models.Comment{
		ID:          uuid.NewString(),
		AuthorID:    author.ID,
		AuthorEmail: author.Email,
		Text:        text,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.recipes.AddComment(ctx, recipeID, comment); err != nil {
		return nil, storeErr("add comment", err)
	}

	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "comment", Payload: recipeID})
	if recipe.UserID != viewerID {
		s.notifier.EmitAsync(NotifyEvent{
			Type:     models.NotificationComment,
			RecipeID: recipeID,
			OwnerID:  recipe.UserID,
			ActorID:  viewerID,
		})
	}

	return &models.CommentView{
		Comment:    comment,
		UserName:   displayName(author),
		UserAvatar: author.AvatarURL,
	}, nil
}

// Edit rewrites a comment's text. Only the comment's author may edit it.
func (s *CommentService) Edit(ctx context.Context, viewerID uint, recipeID, commentID, text string) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	text, err := commentText(text)
	if err != nil {
		return err
	}
	viewer, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return storeErr("get viewer", err)
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return storeErr("get recipe", err)
	}
	comment, ok := recipe.FindComment(commentID)
	if !ok {
		return ErrNotFound
	}
	if comment.AuthorEmail != viewer.Email {
		return ErrForbidden
	}

	if err := s.recipes.UpdateComment(ctx, recipeID, commentID, viewer.Email, text); err != nil {
		return storeErr("update comment", err)
	}
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "comment", Payload: recipeID})
	return nil
}

// Delete removes a comment. The comment's author and the recipe's owner may
// both delete it.
func (s *CommentService) Delete(ctx context.Context, viewerID uint, recipeID, commentID string) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	viewer, err := s.users.GetUserByID(ctx, viewerID)
	if err != nil {
		return storeErr("get viewer", err)
	}
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return storeErr("get recipe", err)
	}
	comment, ok := recipe.FindComment(commentID)
	if !ok {
		return ErrNotFound
	}
	if comment.AuthorEmail != viewer.Email && recipe.UserID != viewerID {
		return ErrForbidden
	}

	if err := s.recipes.DeleteComment(ctx, recipeID, commentID); err != nil {
		return storeErr("delete comment", err)
	}
	s.hub.Publish(live.Event{Topic: live.TopicRecipes, Kind: "comment", Payload: recipeID})
	return nil
}

// List returns a recipe's comments in order, each with its author's current
// name and avatar.
func (s *CommentService) List(ctx context.Context, recipeID string) ([]models.CommentView, error) {
	recipe, err := s.recipes.GetRecipeByID(ctx, recipeID)
	if err != nil {
		return nil, storeErr("get recipe", err)
	}

	ids := make([]uint, 0, len(recipe.Comments))
	for _, c := range recipe.Comments {
		ids = append(ids, c.AuthorID)
	}
	authors := map[uint]*models.User{}
	if len(ids) > 0 {
		users, err := s.users.GetUsersByIDs(ctx, ids)
		if err != nil {
			return nil, storeErr("get comment authors", err)
		}
		for i := range users {
			authors[users[i].ID] = &users[i]
		}
	}

	views := make([]models.CommentView, len(recipe.Comments))
	for i, c := range recipe.Comments {
		views[i] = models.CommentView{Comment: c, UserName: anonymousName}
		if author, ok := authors[c.AuthorID]; ok {
			views[i].UserName = displayName(author)
			views[i].UserAvatar = author.AvatarURL
		}
	}
	return views, nil
}

func displayName(u *models.User) string {
	if u == nil || u.Name == "" {
		return anonymousName
	}
	return u.Name
}
