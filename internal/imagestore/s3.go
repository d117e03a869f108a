// Package imagestore persists uploaded images in an S3-compatible bucket
// (AWS S3 or MinIO). The object key doubles as the public id handed back
// to callers.
package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"time"

	"github.com/ErlanBelekov/storefront-api/internal/domain"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
)

type Config struct {
	Region    string
	Bucket    string
	Endpoint  string // empty for AWS, set for MinIO
	AccessKey string
	SecretKey string
}

type S3Store struct {
	client *s3.Client
	cfg    Config
}

func NewS3Store(ctx context.Context, cfg Config) (*S3Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey, cfg.SecretKey, "",
		)))
	if err != nil {
		return nil, fmt.Errorf("load s3 config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &S3Store{client: client, cfg: cfg}, nil
}

// storageKey buckets objects by upload date and keeps the file extension,
// so keys stay unique while objects remain browsable.
func storageKey(filename string) string {
	d := time.Now()
	return fmt.Sprintf("images/%d/%02d/%v%s", d.Year(), d.Month(), uuid.New(), path.Ext(filename))
}

func (s *S3Store) Upload(ctx context.Context, files []domain.Upload) ([]domain.Image, error) {
	images := make([]domain.Image, 0, len(files))
	for _, f := range files {
		key := storageKey(f.Filename)

		input := &s3.PutObjectInput{
			Bucket: aws.String(s.cfg.Bucket),
			Key:    aws.String(key),
			Body:   bytes.NewReader(f.Data),
		}
		if f.ContentType != "" {
			input.ContentType = aws.String(f.ContentType)
		}
		if _, err := s.client.PutObject(ctx, input); err != nil {
			return nil, fmt.Errorf("upload %s: %w", f.Filename, err)
		}

		images = append(images, domain.Image{PublicID: key, URL: s.objectURL(key)})
	}
	return images, nil
}

func (s *S3Store) Delete(ctx context.Context, publicIDs []string) error {
	if len(publicIDs) == 0 {
		return nil
	}

	objects := make([]types.ObjectIdentifier, 0, len(publicIDs))
	for _, id := range publicIDs {
		objects = append(objects, types.ObjectIdentifier{Key: aws.String(id)})
	}

	_, err := s.client.DeleteObjects(ctx, &s3.DeleteObjectsInput{
		Bucket: aws.String(s.cfg.Bucket),
		Delete: &types.Delete{Objects: objects},
	})
	if err != nil {
		return fmt.Errorf("delete objects: %w", err)
	}
	return nil
}

func (s *S3Store) objectURL(key string) string {
	if s.cfg.Endpoint != "" {
		return fmt.Sprintf("%s/%s/%s", s.cfg.Endpoint, s.cfg.Bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key)
}
