// Package storage stages review tables in an S3-compatible object store
// and converts them to and from their delimited-text wire form.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ObjectStore is the minimal blob-store surface the loader needs.
type ObjectStore interface {
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket, region string) error
	Put(ctx context.Context, bucket, key string, body []byte, contentType string) error
	// Get returns found=false when the key or bucket does not exist;
	// other failures come back as errors.
	Get(ctx context.Context, bucket, key string) (body []byte, found bool, err error)
}

// S3Store implements ObjectStore on the MinIO S3 client.
type S3Store struct {
	client *minio.Client
}

// NewS3Store dials an S3-compatible endpoint with static credentials.
func NewS3Store(endpoint, accessKey, secretKey, region string, secure bool) (*S3Store, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: secure,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("dial object store %s: %w", endpoint, err)
	}
	return &S3Store{client: client}, nil
}

func (s *S3Store) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return s.client.BucketExists(ctx, bucket)
}

func (s *S3Store) MakeBucket(ctx context.Context, bucket, region string) error {
	return s.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region})
}

func (s *S3Store) Put(ctx context.Context, bucket, key string, body []byte, contentType string) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)),
		minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (s *S3Store) Get(ctx context.Context, bucket, key string) ([]byte, bool, error) {
	object, err := s.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, false, err
	}
	defer object.Close()

	body, err := io.ReadAll(object)
	if err != nil {
		// The client reports missing keys lazily, on first read.
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.Code == "NoSuchBucket" {
			return nil, false, nil
		}
		return nil, false, err
	}
	return body, true, nil
}
