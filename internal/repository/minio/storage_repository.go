package minio

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"klontong/domain"
	"klontong/pkg/logger"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// StorageRepository stores product images in MinIO. While the server is
// unreachable it degrades to placeholder URLs under /fallback-images/ so a
// product mutation never hard-fails on a down storage backend.
type StorageRepository struct {
	client    *minio.Client
	cfg       Config
	available atomic.Bool
}

const probeInterval = 30 * time.Second

func NewStorageRepository(cfg Config) (*StorageRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build minio client: %w", err)
	}

	r := &StorageRepository{
		client: client,
		cfg:    cfg,
	}

	r.probe()
	go r.watchAvailability()

	return r, nil
}

func (r *StorageRepository) watchAvailability() {
	ticker := time.NewTicker(probeInterval)
	defer ticker.Stop()

	for range ticker.C {
		if !r.available.Load() {
			r.probe()
		}
	}
}

func (r *StorageRepository) probe() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	exists, err := r.client.BucketExists(ctx, r.cfg.Bucket)
	if err != nil {
		r.available.Store(false)
		logger.Warn("object storage unreachable, uploads degrade to fallback urls", "endpoint", r.cfg.Endpoint, "error", err)
		return
	}

	if !exists {
		if err := r.client.MakeBucket(ctx, r.cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			r.available.Store(false)
			logger.Warn("failed to create bucket", "bucket", r.cfg.Bucket, "error", err)
			return
		}
		logger.Info("bucket created", "bucket", r.cfg.Bucket)
	}

	r.available.Store(true)
}

func (r *StorageRepository) Upload(ctx context.Context, data []byte, originalName string, opts domain.FileOptions) (domain.UploadResult, error) {
	if opts.MaxSize > 0 && int64(len(data)) > opts.MaxSize {
		return domain.UploadResult{}, fmt.Errorf("%w: maximum %d bytes", domain.ErrFileTooLarge, opts.MaxSize)
	}

	if len(opts.AllowedTypes) > 0 && opts.ContentType != "" {
		allowed := false
		for _, t := range opts.AllowedTypes {
			if t == opts.ContentType {
				allowed = true
				break
			}
		}
		if !allowed {
			return domain.UploadResult{}, fmt.Errorf("%w: %s", domain.ErrFileTypeNotAllowed, opts.ContentType)
		}
	}

	if !r.available.Load() {
		return r.fallbackUpload(originalName), nil
	}

	objectName := "products/" + uuid.NewString() + filepath.Ext(originalName)

	_, err := r.client.PutObject(ctx, r.cfg.Bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: opts.ContentType},
	)
	if err != nil {
		logger.Error("upload failed, using fallback url", "object", objectName, "error", err)
		return r.fallbackUpload(originalName), nil
	}

	scheme := "http"
	if r.cfg.UseSSL {
		scheme = "https"
	}

	return domain.UploadResult{
		URL:  fmt.Sprintf("%s://%s/%s/%s", scheme, r.cfg.Endpoint, r.cfg.Bucket, objectName),
		Path: objectName,
	}, nil
}

// fallbackUpload hands out a placeholder URL so the surrounding product
// mutation still succeeds while storage is down.
func (r *StorageRepository) fallbackUpload(originalName string) domain.UploadResult {
	filename := uuid.NewString() + filepath.Ext(originalName)

	logger.Info("using fallback storage", "original_name", originalName, "filename", filename)

	return domain.UploadResult{
		URL:  "/fallback-images/" + filename,
		Path: "fallback/" + filename,
	}
}

func (r *StorageRepository) Delete(ctx context.Context, path string) error {
	if err := r.client.RemoveObject(ctx, r.cfg.Bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object %s: %w", path, err)
	}

	return nil
}
