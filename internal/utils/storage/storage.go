package storage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"recipe-catalog/internal/utils"

	"github.com/google/uuid"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
	DriverMinio = "minio"
)

// Storage keeps uploaded objects addressed by object key.
type Storage interface {
	UploadFile(ctx context.Context, objectKey string, body []byte, contentType string) error
	DeleteFile(ctx context.Context, objectKey string) error
	GetPublicLinkKey(objectKey string) string
}

// NewStorage builds the driver selected by STORAGE_DRIVER. Local is the default.
func NewStorage() (Storage, error) {
	switch driver := strings.ToLower(utils.GetConfigOr("STORAGE_DRIVER", DriverLocal)); driver {
	case DriverLocal:
		local, err := NewLocalStorage(
			utils.GetConfigOr("MEDIA_ROOT", "./media"),
			utils.GetConfigOr("MEDIA_URL", "/media"),
		)
		if err != nil {
			return nil, err
		}
		return local, nil
	case DriverS3:
		s3, err := NewAwsS3(context.Background(), AwsS3Config{
			Bucket:    utils.GetConfig("AWS_S3_BUCKET"),
			Region:    utils.GetConfig("AWS_S3_REGION"),
			AccessKey: utils.GetConfig("AWS_ACCESS_KEY"),
			SecretKey: utils.GetConfig("AWS_SECRET_KEY"),
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	case DriverMinio:
		m, err := NewMinioStorage(context.Background(), MinioConfig{
			Endpoint:  utils.GetConfig("MINIO_ENDPOINT"),
			AccessKey: utils.GetConfig("MINIO_ACCESS_KEY"),
			SecretKey: utils.GetConfig("MINIO_SECRET_KEY"),
			Bucket:    utils.GetConfig("MINIO_BUCKET"),
			UseSSL:    utils.GetConfig("MINIO_USE_SSL") == "true",
			PublicURL: utils.GetConfig("MINIO_PUBLIC_URL"),
		})
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q", driver)
	}
}

// NewObjectKey returns a collision-free key such as uploads/recipe/<uuid>.jpg.
func NewObjectKey(folder, extension string) string {
	if extension != "" && !strings.HasPrefix(extension, ".") {
		extension = "." + extension
	}
	return path.Join("uploads", folder, uuid.NewString()+strings.ToLower(extension))
}

func joinURL(base, objectKey string) string {
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(objectKey, "/")
}
