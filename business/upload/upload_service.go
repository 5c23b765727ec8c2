package upload

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"klontong/domain"
	"klontong/pkg/logger"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Storage contract interface
type Storage interface {
	Upload(ctx context.Context, data []byte, originalName string, opts domain.FileOptions) (domain.UploadResult, error)
	Delete(ctx context.Context, path string) error
}

type uploadService struct {
	storage Storage
}

func NewUploadService(storage Storage) *uploadService {
	return &uploadService{
		storage: storage,
	}
}

// UploadProductImage gates type and size before touching storage and returns
// the content URL of the stored image.
func (s *uploadService) UploadProductImage(ctx context.Context, data []byte, originalName, contentType string) (string, error) {
	if int64(len(data)) > maxImageSize {
		return "", fmt.Errorf("%w: maximum %dMB", domain.ErrFileTooLarge, maxImageSize/1024/1024)
	}

	allowed := false
	for _, t := range allowedImageTypes {
		if t == contentType {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", fmt.Errorf("%w: %s, allowed: %s", domain.ErrFileTypeNotAllowed, contentType, strings.Join(allowedImageTypes, ", "))
	}

	result, err := s.storage.Upload(ctx, data, originalName, domain.FileOptions{
		MaxSize:      maxImageSize,
		AllowedTypes: allowedImageTypes,
		ContentType:  contentType,
	})
	if err != nil {
		return "", err
	}

	return result.URL, nil
}

// DeleteProductImage is best-effort: a failed delete of an old or orphaned
// image is logged and ignored, never aborting the surrounding mutation.
func (s *uploadService) DeleteProductImage(ctx context.Context, imageURL string) {
	if imageURL == "" {
		return
	}

	path := objectPathFromURL(imageURL)
	if path == "" {
		logger.Warn("cannot resolve object path from image url", "url", imageURL)
		return
	}

	if err := s.storage.Delete(ctx, path); err != nil {
		logger.Warn("failed to delete image", "path", path, err)
	}
}

// ReplaceProductImage deletes the old image (best-effort) and uploads the new
// one.
func (s *uploadService) ReplaceProductImage(ctx context.Context, oldImageURL string, data []byte, originalName, contentType string) (string, error) {
	if oldImageURL != "" {
		s.DeleteProductImage(ctx, oldImageURL)
	}

	return s.UploadProductImage(ctx, data, originalName, contentType)
}

// objectPathFromURL recovers the stored object path from a content URL.
// Regular URLs look like scheme://endpoint/bucket/products/<name>, fallback
// URLs like /fallback-images/<name> with objects stored under fallback/.
func objectPathFromURL(imageURL string) string {
	u, err := url.Parse(imageURL)
	if err != nil {
		return ""
	}

	path := strings.TrimPrefix(u.Path, "/")

	if rest, ok := strings.CutPrefix(path, "fallback-images/"); ok {
		return "fallback/" + rest
	}

	// Strip the leading bucket segment.
	if i := strings.Index(path, "/"); i >= 0 {
		return path[i+1:]
	}

	return ""
}
