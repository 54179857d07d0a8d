// Package storage handles uploaded pet images in S3-compatible object
// storage.
package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type ImageStore struct {
	client    *s3.Client
	bucket    string
	keyPrefix string
	baseURL   string
}

func NewImageStore(client *s3.Client, bucket, keyPrefix, baseURL string) *ImageStore {
	return &ImageStore{
		client:    client,
		bucket:    bucket,
		keyPrefix: strings.Trim(keyPrefix, "/"),
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// Upload stores an image under the configured prefix and returns the storage
// key to persist on the pet record.
func (s *ImageStore) Upload(ctx context.Context, name string, body io.Reader, contentType string) (string, error) {
	key := path.Join(s.keyPrefix, name)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", key, err)
	}

	return key, nil
}

// Delete removes an uploaded image. Missing keys are not an error; S3 delete
// is idempotent.
func (s *ImageStore) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image %s: %w", key, err)
	}

	return nil
}

// PublicURL maps a storage key to its public serving URL.
func (s *ImageStore) PublicURL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + "/" + strings.TrimLeft(key, "/")
}
