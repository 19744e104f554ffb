package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/sociopedia/server/internal/metrics"
)

// S3Config holds the bucket settings. Endpoint and static credentials are
// optional and target MinIO-style deployments.
type S3Config struct {
	Bucket       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	PublicURL    string
	UsePathStyle bool
}

type objectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3 stores pictures as objects named <uuid>-<file name>.
type S3 struct {
	client    objectPutter
	bucket    string
	publicURL string
	newKey    func(name string) string
}

func NewS3(ctx context.Context, cfg S3Config) (*S3, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 storage: bucket is required")
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(cfg.Region)}
	if cfg.AccessKey != "" {
		opts = append(opts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("s3 storage: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return newS3(client, cfg.Bucket, cfg.PublicURL), nil
}

func newS3(client objectPutter, bucket, publicURL string) *S3 {
	return &S3{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
		newKey:    func(name string) string { return uuid.NewString() + "-" + name },
	}
}

// Save uploads the content and returns the object key, prefixed with the
// public URL when one is configured.
func (s *S3) Save(ctx context.Context, filename string, content io.Reader, size int64, contentType string) (string, error) {
	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}
	key := s.newKey(name)

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if size > 0 {
		in.ContentLength = aws.Int64(size)
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}

	if _, err := s.client.PutObject(ctx, in); err != nil {
		metrics.UploadsTotal.WithLabelValues(DriverS3, "error").Inc()
		return "", fmt.Errorf("put object %s: %w", key, err)
	}

	metrics.UploadsTotal.WithLabelValues(DriverS3, "success").Inc()
	if size > 0 {
		metrics.UploadBytes.Observe(float64(size))
	}
	if s.publicURL != "" {
		return s.publicURL + "/" + key, nil
	}
	return key, nil
}
