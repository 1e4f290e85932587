// Package publish uploads generated reports to S3 compatible object storage.
package publish

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/ktlint-report/pkg/observability"
)

// ObjectPutter is the part of the S3 API the publisher needs. *s3.Client satisfies it.
type ObjectPutter interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Config configures the S3 client
type Config struct {
	Bucket       string
	Prefix       string
	Region       string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool
}

// S3Publisher uploads report directories under a key prefix
type S3Publisher struct {
	client  ObjectPutter
	bucket  string
	prefix  string
	tracer  trace.Tracer
	metrics *observability.OTelMetrics
}

// NewS3Publisher creates a publisher backed by a real S3 client
func NewS3Publisher(ctx context.Context, cfg Config) (*S3Publisher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("publish bucket is required")
	}

	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	var awsConfig aws.Config
	var err error

	if cfg.AccessKey != "" && cfg.SecretKey != "" {
		// Static credentials (MinIO or explicit keys)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
			config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
				cfg.AccessKey,
				cfg.SecretKey,
				"",
			)),
		)
	} else {
		// Default credential chain (IAM roles, env vars, etc.)
		awsConfig, err = config.LoadDefaultConfig(ctx,
			config.WithRegion(region),
		)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		if cfg.UsePathStyle {
			o.UsePathStyle = true
		}
	})

	return NewPublisher(client, cfg.Bucket, cfg.Prefix), nil
}

// NewPublisher creates a publisher on top of client
func NewPublisher(client ObjectPutter, bucket, prefix string) *S3Publisher {
	return &S3Publisher{
		client: client,
		bucket: bucket,
		prefix: strings.Trim(prefix, "/"),
		tracer: observability.Tracer(),
	}
}

// WithMetrics records every upload on m
func (p *S3Publisher) WithMetrics(m *observability.OTelMetrics) *S3Publisher {
	p.metrics = m
	return p
}

// Key returns the object key of a file path relative to the published directory
func (p *S3Publisher) Key(rel string) string {
	return path.Join(p.prefix, filepath.ToSlash(rel))
}

// PublishDir uploads every regular file below dir and returns the written keys in
// lexical order. The first failed upload stops the walk.
func (p *S3Publisher) PublishDir(ctx context.Context, dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("report directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("report directory: %s is not a directory", dir)
	}

	var keys []string
	err = filepath.WalkDir(dir, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(dir, name)
		if err != nil {
			return err
		}

		data, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", rel, err)
		}

		key := p.Key(rel)
		if err := p.PutObject(ctx, key, data, ContentType(rel)); err != nil {
			return err
		}
		keys = append(keys, key)
		return nil
	})
	if err != nil {
		return keys, err
	}

	return keys, nil
}

// PutObject uploads one object with a sha256 checksum in its metadata
func (p *S3Publisher) PutObject(ctx context.Context, key string, data []byte, contentType string) error {
	ctx, span := p.tracer.Start(ctx, "S3.PutObject",
		trace.WithAttributes(
			attribute.String("s3.bucket", p.bucket),
			attribute.String("s3.key", key),
			attribute.String("content.type", contentType),
			attribute.Int("content.size", len(data)),
		),
	)
	defer span.End()

	start := time.Now()
	hash := sha256.Sum256(data)

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
		Metadata: map[string]string{
			"checksum-sha256": hex.EncodeToString(hash[:]),
		},
	})

	if p.metrics != nil {
		p.metrics.RecordPublish(ctx, int64(len(data)), time.Since(start), err)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to upload to s3")
		return fmt.Errorf("failed to upload %s: %w", key, err)
	}

	span.SetStatus(codes.Ok, "object uploaded")
	return nil
}

var contentTypes = map[string]string{
	".md":   "text/markdown; charset=utf-8",
	".json": "application/json",
	".xml":  "application/xml",
	".txt":  "text/plain; charset=utf-8",
	".prom": "text/plain; version=0.0.4",
	".html": "text/html; charset=utf-8",
}

// ContentType guesses the content type of a report file from its extension
func ContentType(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
