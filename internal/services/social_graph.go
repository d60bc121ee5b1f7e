package services

import (
	"context"

	"github.com/anonto42/recipebook/backend/internal/metrics"
	"github.com/anonto42/recipebook/backend/internal/models"
	"github.com/anonto42/recipebook/backend/internal/repositories"
)

// SocialGraphService maintains follow edges between profiles
type SocialGraphService struct {
	users   repositories.UserRepository
	follows repositories.FollowRepository
	metrics metrics.Recorder
}

func NewSocialGraphService(users repositories.UserRepository, follows repositories.FollowRepository, rec metrics.Recorder) *SocialGraphService {
	if rec == nil {
		rec = metrics.Nop{}
	}
	return &SocialGraphService{users: users, follows: follows, metrics: rec}
}

func (s *SocialGraphService) resolvePair(ctx context.Context, viewerID, targetID uint) error {
	if err := requireViewer(viewerID); err != nil {
		return err
	}
	if viewerID == targetID {
		return invalid("cannot follow yourself")
	}
	if _, err := s.users.GetUserByID(ctx, viewerID); err != nil {
		return storeErr("get viewer", err)
	}
	if _, err := s.users.GetUserByID(ctx, targetID); err != nil {
		return storeErr("get target", err)
	}
	return nil
}

// Follow makes viewerID follow targetID. Following an already followed
// profile succeeds without changes.
func (s *SocialGraphService) Follow(ctx context.Context, viewerID, targetID uint) (*models.FollowState, error) {
	if err := s.resolvePair(ctx, viewerID, targetID); err != nil {
		return nil, err
	}
	changed, err := s.follows.Follow(ctx, viewerID, targetID)
	if err != nil {
		return nil, storeErr("follow", err)
	}
	if changed {
		s.metrics.RecordToggle("follow", true)
	}
	return s.Relationship(ctx, viewerID, targetID)
}

// Unfollow removes the edge. Unfollowing a profile that is not followed
// succeeds without changes.
func (s *SocialGraphService) Unfollow(ctx context.Context, viewerID, targetID uint) (*models.FollowState, error) {
	if err := s.resolvePair(ctx, viewerID, targetID); err != nil {
		return nil, err
	}
	changed, err := s.follows.Unfollow(ctx, viewerID, targetID)
	if err != nil {
		return nil, storeErr("unfollow", err)
	}
	if changed {
		s.metrics.RecordToggle("follow", false)
	}
	return s.Relationship(ctx, viewerID, targetID)
}

// ToggleFollow follows or unfollows depending on the current state
func (s *SocialGraphService) ToggleFollow(ctx context.Context, viewerID, targetID uint) (*models.FollowState, error) {
	if err := requireViewer(viewerID); err != nil {
		return nil, err
	}
	following, err := s.follows.IsFollowing(ctx, viewerID, targetID)
	if err != nil {
		return nil, storeErr("check follow", err)
	}
	if following {
		return s.Unfollow(ctx, viewerID, targetID)
	}
	return s.Follow(ctx, viewerID, targetID)
}

// Relationship reports whether viewerID follows targetID along with the
// target's counters.
func (s *SocialGraphService) Relationship(ctx context.Context, viewerID, targetID uint) (*models.FollowState, error) {
	target, err := s.users.GetUserByID(ctx, targetID)
	if err != nil {
		return nil, storeErr("get target", err)
	}
	state := &models.FollowState{
		FollowersCount: target.FollowersCount,
		FollowingCount: target.FollowingCount,
	}
	if viewerID != 0 && viewerID != targetID {
		state.Following, err = s.follows.IsFollowing(ctx, viewerID, targetID)
		if err != nil {
			return nil, storeErr("check follow", err)
		}
	}
	state.CanChat = state.Following
	return state, nil
}

func (s *SocialGraphService) Followers(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := s.follows.GetFollowers(ctx, userID)
	if err != nil {
		return nil, storeErr("get followers", err)
	}
	return compactAll(users), nil
}

func (s *SocialGraphService) Following(ctx context.Context, userID uint) ([]models.UserCompact, error) {
	users, err := s.follows.GetFollowing(ctx, userID)
	if err != nil {
		return nil, storeErr("get following", err)
	}
	return compactAll(users), nil
}

func compactAll(users []models.User) []models.UserCompact {
	out := make([]models.UserCompact, len(users))
	for i := range users {
		out[i] = users[i].ToCompact()
	}
	return out
}
