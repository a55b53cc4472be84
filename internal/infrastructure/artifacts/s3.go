package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"VirtualScreening/internal/ports"
)

// Config describes an S3-compatible bucket (AWS S3 or MinIO).
type Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string // optional; enables a custom endpoint
	AccessKeyID     string // optional; falls back to the default credentials chain
	SecretAccessKey string
	PathStyle       bool
}

// S3Publisher uploads run artifacts under a key prefix.
type S3Publisher struct {
	client *s3.Client
	bucket string
	prefix string
	logger *slog.Logger
}

var _ ports.ArtifactPublisher = (*S3Publisher)(nil)

// NewS3Publisher builds a client from cfg.
func NewS3Publisher(ctx context.Context, cfg Config, logger *slog.Logger) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3 bucket required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	loadOpts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if cfg.AccessKeyID != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.PathStyle
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	})
	return NewS3PublisherWithClient(client, cfg.Bucket, cfg.Prefix, logger), nil
}

// NewS3PublisherWithClient wraps an existing client.
func NewS3PublisherWithClient(client *s3.Client, bucket, prefix string, logger *slog.Logger) *S3Publisher {
	return &S3Publisher{client: client, bucket: bucket, prefix: strings.Trim(prefix, "/"), logger: logger}
}

// Publish uploads each file, overwriting objects with the same key.
func (p *S3Publisher) Publish(ctx context.Context, paths ...string) error {
	for _, local := range paths {
		if local == "" {
			continue
		}
		if err := p.upload(ctx, local); err != nil {
			return err
		}
	}
	return nil
}

func (p *S3Publisher) upload(ctx context.Context, local string) error {
	f, err := os.Open(local)
	if err != nil {
		return fmt.Errorf("open artifact %s: %w", local, err)
	}
	defer f.Close()

	key := p.Key(local)
	_, err = p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        f,
		ContentType: aws.String(contentType(local)),
	})
	if err != nil {
		return fmt.Errorf("upload %s to s3://%s/%s: %w", local, p.bucket, key, err)
	}
	if p.logger != nil {
		p.logger.Info("artifact uploaded", "bucket", p.bucket, "key", key)
	}
	return nil
}

// Key maps a local file to its object key.
func (p *S3Publisher) Key(local string) string {
	name := filepath.Base(local)
	if p.prefix == "" {
		return name
	}
	return path.Join(p.prefix, name)
}

func contentType(local string) string {
	switch strings.ToLower(filepath.Ext(local)) {
	case ".csv":
		return "text/csv"
	case ".xlsx":
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case ".png":
		return "image/png"
	case ".prom":
		return "text/plain; version=0.0.4"
	default:
		return "application/octet-stream"
	}
}
