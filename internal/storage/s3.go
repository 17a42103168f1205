package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// S3Storage implements ObjectStore for AWS S3 and S3-compatible stores.
// Each call makes a single attempt unless retries were enabled with
// WithRetries.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	retries   int
	baseDelay time.Duration
}

// S3Config holds the client settings of an S3 store.
type S3Config struct {
	Region string
	// Endpoint overrides the AWS endpoint, e.g. for MinIO or LocalStack.
	Endpoint     string
	UsePathStyle bool
	// Retries is the number of extra attempts after a transient failure;
	// 0 disables retrying.
	Retries int
}

// DefaultS3Config returns the default S3 configuration.
func DefaultS3Config() S3Config {
	return S3Config{Region: "us-east-1"}
}

// NewS3Storage creates a store for bucket. Credentials come from the default
// AWS chain.
func NewS3Storage(ctx context.Context, bucket string, cfg S3Config) (*S3Storage, error) {
	var loadOpts []func(*config.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(cfg.Region))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})
	return NewS3StorageWithClient(client, bucket).WithRetries(cfg.Retries, defaultRetryDelay), nil
}

const defaultRetryDelay = 100 * time.Millisecond

// NewS3StorageWithClient wraps a pre-configured client. Retries are off.
func NewS3StorageWithClient(client *s3.Client, bucket string) *S3Storage {
	return &S3Storage{client: client, bucket: bucket}
}

// WithRetries makes transient failures retry up to n times, doubling the
// delay after each attempt starting from baseDelay. Missing objects are
// never retried.
func (s *S3Storage) WithRetries(n int, baseDelay time.Duration) *S3Storage {
	if n < 0 {
		n = 0
	}
	s.retries = n
	s.baseDelay = baseDelay
	return s
}

func (s *S3Storage) url(objectPath string) string {
	return fmt.Sprintf("s3://%s/%s", s.bucket, objectPath)
}

// classify maps the "no such object" errors of GetObject and HeadObject to
// ErrObjectNotFound and leaves other errors untouched.
func (s *S3Storage) classify(objectPath string, err error) error {
	var noSuchKey *types.NoSuchKey
	var notFound *types.NotFound
	if errors.As(err, &noSuchKey) || errors.As(err, &notFound) {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, s.url(objectPath))
	}
	return err
}

// Download streams the object to localPath.
func (s *S3Storage) Download(ctx context.Context, objectPath, localPath string) error {
	var out *s3.GetObjectOutput
	err := s.retry(ctx, func() error {
		var err error
		out, err = s.client.GetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectPath),
		})
		return s.classify(objectPath, err)
	})
	switch {
	case errors.Is(err, ErrObjectNotFound):
		return err
	case err != nil:
		return fmt.Errorf("%w: %s: %v", ErrDownloadFailed, s.url(objectPath), err)
	}
	defer out.Body.Close()

	return writeObject(localPath, out.Body)
}

// Exists reports whether the object exists, using a HEAD request.
func (s *S3Storage) Exists(ctx context.Context, objectPath string) (bool, error) {
	err := s.retry(ctx, func() error {
		_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
			Bucket: aws.String(s.bucket),
			Key:    aws.String(objectPath),
		})
		return s.classify(objectPath, err)
	})
	switch {
	case errors.Is(err, ErrObjectNotFound):
		return false, nil
	case err != nil:
		return false, err
	}
	return true, nil
}

// retry runs op until it succeeds, fails permanently or the configured
// retries are used up. With no retries op runs once.
func (s *S3Storage) retry(ctx context.Context, op func() error) error {
	var err error
	delay := s.baseDelay
	for attempt := 0; ; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err = op(); err == nil || errors.Is(err, ErrObjectNotFound) {
			return err
		}
		if attempt >= s.retries {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
}
