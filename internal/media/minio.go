// Package media turns stored product media object keys into download URLs.
package media

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
	URLExpiry time.Duration
}

type MinioSigner struct {
	client *minio.Client
	bucket string
	expiry time.Duration
}

func NewMinioSigner(cfg *Config) (*MinioSigner, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, err
	}
	return &MinioSigner{client: client, bucket: cfg.Bucket, expiry: cfg.URLExpiry}, nil
}

// URL returns a presigned GET URL for objectKey.
func (s *MinioSigner) URL(ctx context.Context, objectKey string) (string, error) {
	u, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, s.expiry, url.Values{})
	if err != nil {
		return "", err
	}
	return u.String(), nil
}
