package provider

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/impulse-lab/lab-booking-service/internal/config"
)

// ObjectStore issues presigned URLs for report files. The service never
// proxies file bytes; clients talk to storage directly.
type ObjectStore interface {
	PresignUpload(ctx context.Context, key, contentType string) (string, error)
	PresignDownload(ctx context.Context, key string) (string, error)
}

type s3ObjectStore struct {
	presigner *s3.PresignClient
	bucket    string
	ttl       time.Duration
}

// NewS3ObjectStore builds an S3-backed store from the ambient AWS credential
// chain.
func NewS3ObjectStore(ctx context.Context, cfg config.StorageConfig) (ObjectStore, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg)
	return &s3ObjectStore{
		presigner: s3.NewPresignClient(client),
		bucket:    cfg.Bucket,
		ttl:       cfg.PresignTTL(),
	}, nil
}

func (o *s3ObjectStore) PresignUpload(ctx context.Context, key, contentType string) (string, error) {
	req, err := o.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(o.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(o.ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}

func (o *s3ObjectStore) PresignDownload(ctx context.Context, key string) (string, error) {
	req, err := o.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(o.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(o.ttl))
	if err != nil {
		return "", err
	}
	return req.URL, nil
}
