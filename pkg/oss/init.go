package oss

import (
	"context"
	"time"

	"TubeFuss.com/pkg/metrics"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	gobreaker "github.com/sony/gobreaker/v2"
)

const location = "us-east-1"

type Options struct {
	Endpoint    string
	AccessKey   string
	SecretKey   string
	UseSSL      bool
	PublicURL   string
	ImageBucket string
	VideoBucket string
}

// NewMinioStorage connects to MinIO and makes sure both buckets exist.
func NewMinioStorage(ctx context.Context, opts Options) (*MinioStorage, error) {
	hlog.Infof("Initializing MinIO client with endpoint: %s", opts.Endpoint)
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKey, opts.SecretKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client failed")
	}

	for _, bucket := range []string{opts.ImageBucket, opts.VideoBucket} {
		exists, err := client.BucketExists(ctx, bucket)
		if err != nil {
			return nil, errors.Wrapf(err, "check bucket %s failed", bucket)
		}
		if !exists {
			if err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: location}); err != nil {
				return nil, errors.Wrapf(err, "create bucket %s failed", bucket)
			}
		}
	}

	hlog.Info("Connect Minio Success")
	return &MinioStorage{
		client:  client,
		opts:    opts,
		breaker: newBreaker("media-host"),
		probe:   probeDuration,
	}, nil
}

func newBreaker(name string) *gobreaker.CircuitBreaker[interface{}] {
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	return gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			hlog.Warnf("circuit breaker %s: %s -> %s", name, from, to)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(float64(to))
		},
	})
}
