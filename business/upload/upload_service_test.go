package upload

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"klontong/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockStorage struct {
	uploadErr error
	deleteErr error
	uploaded  []string
	deleted   []string
	result    domain.UploadResult
}

func (m *mockStorage) Upload(ctx context.Context, data []byte, originalName string, opts domain.FileOptions) (domain.UploadResult, error) {
	if m.uploadErr != nil {
		return domain.UploadResult{}, m.uploadErr
	}
	m.uploaded = append(m.uploaded, originalName)
	return m.result, nil
}

func (m *mockStorage) Delete(ctx context.Context, path string) error {
	m.deleted = append(m.deleted, path)
	return m.deleteErr
}

func TestUploadProductImage(t *testing.T) {
	storage := &mockStorage{result: domain.UploadResult{
		URL:  "http://localhost:9000/products/products/abc.png",
		Path: "products/abc.png",
	}}
	svc := NewUploadService(storage)

	url, err := svc.UploadProductImage(context.Background(), []byte("png-bytes"), "photo.png", "image/png")

	require.NoError(t, err)
	assert.Equal(t, storage.result.URL, url)
	assert.Equal(t, []string{"photo.png"}, storage.uploaded)
}

func TestUploadProductImage_RejectsOversizedFile(t *testing.T) {
	storage := &mockStorage{}
	svc := NewUploadService(storage)

	data := bytes.Repeat([]byte{0xFF}, maxImageSize+1)
	_, err := svc.UploadProductImage(context.Background(), data, "huge.jpg", "image/jpeg")

	assert.ErrorIs(t, err, domain.ErrFileTooLarge)
	assert.Empty(t, storage.uploaded, "oversized file must not reach storage")
}

func TestUploadProductImage_RejectsDisallowedType(t *testing.T) {
	storage := &mockStorage{}
	svc := NewUploadService(storage)

	for _, contentType := range []string{"application/pdf", "text/html", ""} {
		_, err := svc.UploadProductImage(context.Background(), []byte("x"), "f", contentType)
		assert.ErrorIs(t, err, domain.ErrFileTypeNotAllowed)
	}
	assert.Empty(t, storage.uploaded)
}

func TestDeleteProductImage_BestEffort(t *testing.T) {
	storage := &mockStorage{deleteErr: errors.New("minio down")}
	svc := NewUploadService(storage)

	svc.DeleteProductImage(context.Background(), "http://localhost:9000/products/products/abc.png")
	assert.Equal(t, []string{"products/abc.png"}, storage.deleted)

	// Empty URL is a no-op.
	storage.deleted = nil
	svc.DeleteProductImage(context.Background(), "")
	assert.Empty(t, storage.deleted)
}

func TestReplaceProductImage(t *testing.T) {
	storage := &mockStorage{result: domain.UploadResult{URL: "http://localhost:9000/products/products/new.png"}}
	svc := NewUploadService(storage)

	url, err := svc.ReplaceProductImage(context.Background(),
		"http://localhost:9000/products/products/old.png",
		[]byte("png"), "new.png", "image/png")

	require.NoError(t, err)
	assert.Equal(t, storage.result.URL, url)
	assert.Equal(t, []string{"products/old.png"}, storage.deleted)
	assert.Equal(t, []string{"new.png"}, storage.uploaded)
}

func TestObjectPathFromURL(t *testing.T) {
	testCases := []struct {
		name     string
		url      string
		expected string
	}{
		{"minio content url", "http://localhost:9000/products/products/abc.png", "products/abc.png"},
		{"fallback url", "/fallback-images/abc.png", "fallback/abc.png"},
		{"bare path", "abc.png", ""},
		{"not a url", "://", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, objectPathFromURL(tc.url))
		})
	}
}
