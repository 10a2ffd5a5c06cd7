package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"marketplace-service/src/internal/model"
	"marketplace-service/src/pkg/log"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/spf13/viper"
)

type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// PublicURL is the base that returned document URLs are built on.
	PublicURL string
}

func ConfigFromViper(v *viper.Viper) Config {
	return Config{
		Endpoint:  v.GetString("minio.endpoint"),
		AccessKey: v.GetString("minio.access_key"),
		SecretKey: v.GetString("minio.secret_key"),
		Bucket:    v.GetString("minio.bucket"),
		UseSSL:    v.GetBool("minio.use_ssl"),
		PublicURL: v.GetString("minio.public_url"),
	}
}

type MinioStorage struct {
	Client    *minio.Client
	Bucket    string
	PublicURL string
	Log       log.Log
}

func NewMinioStorage(cfg Config, logger log.Log) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, err
	}
	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}
	return &MinioStorage{Client: client, Bucket: cfg.Bucket, PublicURL: publicURL, Log: logger}, nil
}

// EnsureBucket creates the document bucket on first start.
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.Client.BucketExists(ctx, s.Bucket)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return s.Client.MakeBucket(ctx, s.Bucket, minio.MakeBucketOptions{})
}

func (s *MinioStorage) Upload(ctx context.Context, key string, file *model.FileUpload) (string, error) {
	info, err := s.Client.PutObject(ctx, s.Bucket, key, file.Content, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
	})
	if err != nil {
		s.Log.Error("gateway/storage", err.Error(), "Upload", key)
		return "", err
	}
	s.Log.Info("gateway/storage", "document stored", "Upload", fmt.Sprintf("%s size=%d", info.Key, info.Size))
	return ObjectURL(s.PublicURL, s.Bucket, key), nil
}

// ObjectKey places a document under prefix/owner with a random name that keeps the file extension.
func ObjectKey(prefix, ownerID, filename string) string {
	return path.Join(prefix, ownerID, uuid.NewString()+strings.ToLower(path.Ext(filename)))
}

func ObjectURL(publicURL, bucket, key string) string {
	return strings.TrimRight(publicURL, "/") + "/" + bucket + "/" + key
}
