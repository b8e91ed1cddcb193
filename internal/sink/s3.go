package sink

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"rn-go/internal/config"
)

// S3Sink delivers artifacts to an S3 (or S3-compatible) bucket. Keys are
// "<prefix>/<artifact name>". The bucket must already exist; this sink does
// not create it.
type S3Sink struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
}

// NewS3Sink builds an S3 client from the sink config. Static credentials and
// a custom endpoint are supported for S3-compatible storage; with neither
// set, the default AWS credential chain applies.
func NewS3Sink(ctx context.Context, cfg config.SinkConfig) (*S3Sink, error) {
	if cfg.S3Bucket == "" {
		return nil, fmt.Errorf("s3 sink requires s3_bucket to be set")
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.S3Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.S3Region))
	}
	if cfg.S3AccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("loading aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3Endpoint)
			// Path-style addressing for non-AWS endpoints.
			o.UsePathStyle = true
		}
	})

	return &S3Sink{
		client:    client,
		bucket:    cfg.S3Bucket,
		keyPrefix: cfg.S3Prefix,
	}, nil
}

// Deliver uploads the artifact with a single PutObject. Artifacts are
// bounded (a zip already in memory), so multipart upload is not needed.
func (s *S3Sink) Deliver(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := s.objectKey(name)
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("uploading artifact to s3://%s/%s: %w", s.bucket, key, err)
	}
	return nil
}

// ValidateSetup verifies bucket access.
func (s *S3Sink) ValidateSetup(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err != nil {
		return fmt.Errorf("cannot access bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Sink) objectKey(name string) string {
	if s.keyPrefix == "" {
		return name
	}
	return path.Join(s.keyPrefix, name)
}

// Compile-time check that S3Sink implements Sink
var _ Sink = (*S3Sink)(nil)
