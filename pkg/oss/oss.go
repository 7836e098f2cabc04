package oss

import (
	"context"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"

	"TubeFuss.com/pkg/metrics"
	"TubeFuss.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
)

const (
	ResourceImage = "image"
	ResourceVideo = "video"
)

// Upload is what the media host reports for a stored file.
type Upload struct {
	URL      string  `json:"url"`
	Duration float64 `json:"duration"`
	PublicID string  `json:"publicId"`
}

// Storage is the media host seen by the services.
type Storage interface {
	// Upload stores the staged file and removes it locally whatever the outcome.
	Upload(ctx context.Context, localPath, resourceType string) (*Upload, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}

type MinioStorage struct {
	client  *minio.Client
	opts    Options
	breaker *gobreaker.CircuitBreaker[interface{}]
	probe   func(path, resourceType string) float64
}

var _ Storage = (*MinioStorage)(nil)

// PublicIDFromURL 从URL中提取 public id: 最后一段去掉扩展名
func PublicIDFromURL(url string) string {
	if url == "" {
		return ""
	}
	if i := strings.IndexAny(url, "?#"); i >= 0 {
		url = url[:i]
	}
	name := path.Base(url)
	if name == "/" || name == "." {
		return ""
	}
	return strings.TrimSuffix(name, path.Ext(name))
}

func (s *MinioStorage) bucket(resourceType string) string {
	if resourceType == ResourceVideo {
		return s.opts.VideoBucket
	}
	return s.opts.ImageBucket
}

func (s *MinioStorage) Upload(ctx context.Context, localPath, resourceType string) (*Upload, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove staged file %s failed: %v", localPath, err)
		}
	}()
	if localPath == "" {
		return nil, errors.New("no file to upload")
	}

	ext := strings.ToLower(filepath.Ext(localPath))
	publicID := uuid.NewString()
	objectName := publicID + ext
	bucket := s.bucket(resourceType)
	contentType := mime.TypeByExtension(ext)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	duration := s.probe(localPath, resourceType)

	_, err := s.breaker.Execute(func() (interface{}, error) {
		return s.client.FPutObject(ctx, bucket, objectName, localPath, minio.PutObjectOptions{ContentType: contentType})
	})
	metrics.RecordMediaOperation("upload", resourceType, err)
	if err != nil {
		return nil, errors.Wrapf(err, "upload %s to %s failed", objectName, bucket)
	}

	return &Upload{
		URL:      strings.TrimRight(s.opts.PublicURL, "/") + "/" + bucket + "/" + objectName,
		Duration: duration,
		PublicID: publicID,
	}, nil
}

// Delete removes every object stored under publicID.
func (s *MinioStorage) Delete(ctx context.Context, publicID, resourceType string) error {
	if publicID == "" {
		return nil
	}
	bucket := s.bucket(resourceType)
	_, err := s.breaker.Execute(func() (interface{}, error) {
		for obj := range s.client.ListObjects(ctx, bucket, minio.ListObjectsOptions{Prefix: publicID}) {
			if obj.Err != nil {
				return nil, obj.Err
			}
			if err := s.client.RemoveObject(ctx, bucket, obj.Key, minio.RemoveObjectOptions{}); err != nil {
				return nil, err
			}
		}
		return nil, nil
	})
	metrics.RecordMediaOperation("delete", resourceType, err)
	if err != nil {
		return errors.Wrapf(err, "delete %s from %s failed", publicID, bucket)
	}
	return nil
}

func probeDuration(localPath, resourceType string) float64 {
	if resourceType != ResourceVideo {
		return 0
	}
	d, err := utils.ProbeDuration(localPath)
	if err != nil {
		hlog.Warnf("probe %s failed: %v", localPath, err)
		return 0
	}
	return d
}
