// Package storage uploads user media (recipe photos, avatars, ID documents)
// to the Firebase Storage bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	gcs "cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// BlobStore stores bytes under a path and returns a URL clients can fetch
type BlobStore interface {
	Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error)
	URL(objectPath string) string
}

// BucketStore implements BlobStore on a Cloud Storage bucket handle
type BucketStore struct {
	bucket     *gcs.BucketHandle
	bucketName string
}

// NewBucketStore wraps a bucket handle obtained from the Firebase app
func NewBucketStore(bucket *gcs.BucketHandle, bucketName string) *BucketStore {
	return &BucketStore{bucket: bucket, bucketName: bucketName}
}

func (s *BucketStore) Upload(ctx context.Context, objectPath string, r io.Reader, contentType string) (string, error) {
	writer := s.bucket.Object(objectPath).NewWriter(ctx)
	writer.ContentType = contentType
	writer.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(writer, r); err != nil {
		_ = writer.Close()
		return "", fmt.Errorf("failed to copy upload to object %s: %w", objectPath, err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer for %s: %w", objectPath, err)
	}
	return s.URL(objectPath), nil
}

func (s *BucketStore) URL(objectPath string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucketName, escapePath(objectPath))
}

func escapePath(p string) string {
	parts := strings.Split(p, "/")
	for i, part := range parts {
		parts[i] = url.PathEscape(part)
	}
	return strings.Join(parts, "/")
}

// RecipeImagePath is where a recipe photo uploaded by userID is stored
func RecipeImagePath(userID uint, filename string) string {
	return fmt.Sprintf("images/%d/%s%s", userID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

// AvatarPath is where a profile picture for userID is stored
func AvatarPath(userID uint, filename string) string {
	return fmt.Sprintf("avatars/%d/%s%s", userID, uuid.NewString(), strings.ToLower(path.Ext(filename)))
}

// VerificationPath is where the given side ("id_front" or "id_back") of a
// user's ID document is stored
func VerificationPath(userID uint, side string) string {
	return fmt.Sprintf("verification/%d/%s", userID, side)
}

// ErrUploadsDisabled is returned by Disabled when no bucket is configured
var ErrUploadsDisabled = errors.New("media uploads are not configured")

// Disabled is the BlobStore used when no storage bucket is configured
type Disabled struct{}

func (Disabled) Upload(context.Context, string, io.Reader, string) (string, error) {
	return "", ErrUploadsDisabled
}

func (Disabled) URL(string) string { return "" }
