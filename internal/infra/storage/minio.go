package storage

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps uploaded photos in an S3-compatible bucket. Selected by
// config when the journal should survive the host filesystem.
type MinioStore struct {
	client     *minio.Client
	bucketName string
	region     string
}

func NewMinioStore(ctx context.Context, endpoint, region, bucket, accessKey, secretKey string, useSSL bool) (*MinioStore, error) {
	cli, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
		Region: region,
	})
	if err != nil {
		return nil, err
	}

	exists, err := cli.BucketExists(ctx, bucket)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := cli.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
			return nil, err
		}
	}

	return &MinioStore{client: cli, bucketName: bucket, region: region}, nil
}

func contentTypeFor(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	}
	return "application/octet-stream"
}

func (s *MinioStore) Save(ctx context.Context, data []byte, originalName string) (string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	key := fmt.Sprintf("uploads/%d-%s%s", time.Now().UnixMilli(), strings.SplitN(uuid.New().String(), "-", 2)[0], ext)

	_, err := s.client.PutObject(ctx, s.bucketName, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeFor(originalName),
	})
	if err != nil {
		return "", err
	}

	// Public URL; a private bucket would need presigned URLs instead.
	return fmt.Sprintf("http://%s/%s/%s", s.client.EndpointURL().Host, s.bucketName, key), nil
}

func (s *MinioStore) Remove(ctx context.Context, ref string) error {
	marker := "/" + s.bucketName + "/"
	idx := strings.Index(ref, marker)
	if idx < 0 {
		return nil
	}
	key := ref[idx+len(marker):]
	return s.client.RemoveObject(ctx, s.bucketName, key, minio.RemoveObjectOptions{})
}
