package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/strutynskyi/movie-catalog/internal/domain"
)

const fileNameMeta = "Filename"

// Config holds MinIO connection settings.
type Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	UseSSL          bool
}

// MinioImageStore keeps images as objects in a single bucket, keyed by the
// image key. The original file name travels as user metadata.
type MinioImageStore struct {
	client *minio.Client
	bucket string
}

func NewMinioImageStore(ctx context.Context, cfg Config) (*MinioImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	store := &MinioImageStore{
		client: client,
		bucket: cfg.Bucket,
	}

	err = store.ensureBucket(ctx)
	if err != nil {
		return nil, err
	}

	return store, nil
}

func (s *MinioImageStore) ensureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("check bucket %q: %w", s.bucket, err)
	}
	if exists {
		return nil
	}

	return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
}

func (s *MinioImageStore) Put(ctx context.Context, image *domain.Image) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		image.Key,
		bytes.NewReader(image.Data),
		int64(len(image.Data)),
		minio.PutObjectOptions{
			ContentType:  image.ContentType,
			UserMetadata: map[string]string{fileNameMeta: image.Name},
		},
	)

	return err
}

func (s *MinioImageStore) Get(ctx context.Context, key string) (*domain.Image, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, translateError(err)
	}
	defer obj.Close()

	info, err := obj.Stat()
	if err != nil {
		return nil, translateError(err)
	}

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, translateError(err)
	}

	return &domain.Image{
		Key:         key,
		Name:        info.UserMetadata[fileNameMeta],
		ContentType: info.ContentType,
		Data:        data,
	}, nil
}

func (s *MinioImageStore) Delete(ctx context.Context, key string) error {
	return s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{})
}

func translateError(err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return domain.ErrImageNotFound
	}

	return err
}
