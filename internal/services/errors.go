// Package services holds the social engine: feed ranking, engagement
// toggles, the follow graph, comments, notifications, messaging and
// moderation. Every backend reaches a service through an interface given to
// its constructor.
package services

import (
	"errors"
	"fmt"

	"github.com/anonto42/recipebook/backend/internal/repositories"
	"github.com/anonto42/recipebook/backend/internal/storage"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrValidation       = errors.New("validation failed")
	ErrBanned           = errors.New("account is banned")
	ErrConflict         = errors.New("already exists")
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

// storeErr wraps a repository or blob store error, mapping a missing row or
// document to ErrNotFound.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, storage.ErrUploadsDisabled):
		return invalid("%s: %v", op, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func requireViewer(viewerID uint) error {
	if viewerID == 0 {
		return ErrNotAuthenticated
	}
	return nil
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
