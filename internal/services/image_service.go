package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ImageService stores vehicle photos in object storage and hands out
// presigned URLs for reads.
type ImageService interface {
	UploadVehicleImage(ctx context.Context, vehicleID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error)
	VehicleImageURL(vehicleID uuid.UUID, expiry time.Duration) (string, error)
	DeleteVehicleImage(ctx context.Context, vehicleID uuid.UUID) error
	EnsureBucketExists(ctx context.Context) error
}

type imageService struct {
	client *minio.Client
	bucket string
}

func NewImageService(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (ImageService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &imageService{client: client, bucket: bucket}, nil
}

func vehicleObjectName(vehicleID uuid.UUID) string {
	return fmt.Sprintf("vehicles/%s.jpg", vehicleID)
}

func (s *imageService) UploadVehicleImage(ctx context.Context, vehicleID uuid.UUID, reader io.Reader, size int64, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	objectName := vehicleObjectName(vehicleID)
	_, err := s.client.PutObject(ctx, s.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (s *imageService) VehicleImageURL(vehicleID uuid.UUID, expiry time.Duration) (string, error) {
	url, err := s.client.PresignedGetObject(context.Background(), s.bucket, vehicleObjectName(vehicleID), expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (s *imageService) DeleteVehicleImage(ctx context.Context, vehicleID uuid.UUID) error {
	return s.client.RemoveObject(ctx, s.bucket, vehicleObjectName(vehicleID), minio.RemoveObjectOptions{})
}

func (s *imageService) EnsureBucketExists(ctx context.Context) error {
	found, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !found {
		return s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{})
	}
	return nil
}
