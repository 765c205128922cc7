package service

import (
	"bytes"
	"context"
	"fmt"
	"learnpath_backend/internal/config"
	"learnpath_backend/internal/util"
	"learnpath_backend/pkg/logger"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ArchiveProvider stores one object and returns where it went.
type ArchiveProvider interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type LocalArchiveProvider struct {
	Root string
}

func (p *LocalArchiveProvider) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	dst := filepath.Join(p.Root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return "", err
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return "", err
	}
	return dst, nil
}

type MinioArchiveProvider struct {
	Bucket string
	Client *minio.Client
}

func NewMinioArchiveProvider(cfg *config.StorageConfig) (*MinioArchiveProvider, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessID, cfg.MinioSecret, ""),
		Secure: cfg.MinioSecure,
	})
	if err != nil {
		return nil, err
	}
	return &MinioArchiveProvider{Bucket: cfg.MinioBucket, Client: client}, nil
}

func (p *MinioArchiveProvider) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	_, err := p.Client.PutObject(ctx, p.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return "/" + p.Bucket + "/" + key, nil
}

type OSSArchiveProvider struct {
	Endpoint string
	Bucket   *oss.Bucket
}

func NewOSSArchiveProvider(cfg *config.StorageConfig) (*OSSArchiveProvider, error) {
	client, err := oss.New(cfg.OSSEndpoint, cfg.OSSAccessKey, cfg.OSSSecretKey)
	if err != nil {
		return nil, err
	}
	bucket, err := client.Bucket(cfg.OSSBucket)
	if err != nil {
		return nil, err
	}
	return &OSSArchiveProvider{Endpoint: cfg.OSSEndpoint, Bucket: bucket}, nil
}

func (p *OSSArchiveProvider) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	err := p.Bucket.PutObject(key, bytes.NewReader(data), oss.ContentType(contentType))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("https://%s.%s/%s", p.Bucket.BucketName, p.Endpoint, key), nil
}

// ArchiveService keeps a copy of every raw generation response. Failures are
// logged and never reach the caller.
type ArchiveService struct {
	Provider ArchiveProvider
	now      func() time.Time
}

// NewArchiveService picks the provider named by storage.type. Archiving is
// off when generation.archive_payload is false or the type is "none".
func NewArchiveService(cfg *config.Config) (*ArchiveService, error) {
	s := &ArchiveService{now: time.Now}
	if !cfg.Generation.ArchivePayload {
		return s, nil
	}

	switch cfg.Storage.Type {
	case util.StorageLocal:
		s.Provider = &LocalArchiveProvider{Root: cfg.Storage.LocalPath}
	case util.StorageMinio:
		p, err := NewMinioArchiveProvider(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("minio archive: %w", err)
		}
		s.Provider = p
	case util.StorageOSS:
		p, err := NewOSSArchiveProvider(&cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("oss archive: %w", err)
		}
		s.Provider = p
	case util.StorageNone, "":
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Storage.Type)
	}
	return s, nil
}

// Key names the object for one payload: generations/<kind>/<yyyy-mm-dd>/<uuid>.json
func (s *ArchiveService) Key(kind string) string {
	return fmt.Sprintf("generations/%s/%s/%s.json", kind, s.now().UTC().Format("2006-01-02"), uuid.NewString())
}

func (s *ArchiveService) Save(ctx context.Context, kind, subject string, raw []byte) {
	if s == nil || s.Provider == nil || len(raw) == 0 {
		return
	}
	key := s.Key(kind)
	location, err := s.Provider.Put(ctx, key, raw, util.MimeJSON)
	if err != nil {
		logger.Log.Warn("Failed to archive generation payload",
			zap.String("kind", kind),
			zap.String("subject", strings.TrimSpace(subject)),
			zap.Error(err),
		)
		return
	}
	logger.Log.Debug("Archived generation payload",
		zap.String("kind", kind),
		zap.String("subject", subject),
		zap.String("location", location),
	)
}
