package services

import (
	"context"
	"fmt"
	"io"
	"os"

	appContext "github.com/alphabatem/common/context"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

type MinIOService struct {
	appContext.DefaultService
	client     *minio.Client
	bucketName string
	endpoint   string
	accessKey  string
	secretKey  string
	useSSL     bool
}

const MINIO_SVC = "minio_svc"

func (svc MinIOService) Id() string {
	return MINIO_SVC
}

func (svc *MinIOService) Configure(ctx *appContext.Context) error {
	svc.endpoint = os.Getenv("MINIO_ENDPOINT")
	if svc.endpoint == "" {
		svc.endpoint = "localhost:9000"
	}

	svc.accessKey = os.Getenv("MINIO_ACCESS_KEY")
	svc.secretKey = os.Getenv("MINIO_SECRET_KEY")
	svc.useSSL = os.Getenv("MINIO_USE_SSL") == "true"

	svc.bucketName = os.Getenv("MINIO_BUCKET_NAME")
	if svc.bucketName == "" {
		svc.bucketName = "cookhound-media"
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *MinIOService) Start() error {
	client, err := minio.New(svc.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(svc.accessKey, svc.secretKey, ""),
		Secure: svc.useSSL,
	})
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %v", err)
	}

	svc.client = client

	if err := svc.ensureBucket(); err != nil {
		return fmt.Errorf("failed to ensure bucket exists: %v", err)
	}

	log.Printf("MinIO service started successfully with endpoint: %s", svc.endpoint)
	return nil
}

func (svc *MinIOService) ensureBucket() error {
	ctx := context.Background()

	exists, err := svc.client.BucketExists(ctx, svc.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %v", err)
	}

	if !exists {
		err = svc.client.MakeBucket(ctx, svc.bucketName, minio.MakeBucketOptions{})
		if err != nil {
			return fmt.Errorf("failed to create bucket: %v", err)
		}
		log.Printf("Created MinIO bucket: %s", svc.bucketName)
	}

	return nil
}

func (svc *MinIOService) UploadFile(ctx context.Context, objectName string, reader io.Reader, objectSize int64, contentType string) (*minio.UploadInfo, error) {
	uploadInfo, err := svc.client.PutObject(ctx, svc.bucketName, objectName, reader, objectSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload file to MinIO: %v", err)
	}

	return &uploadInfo, nil
}

func (svc *MinIOService) DeleteFile(ctx context.Context, objectName string) error {
	return svc.client.RemoveObject(ctx, svc.bucketName, objectName, minio.RemoveObjectOptions{})
}

// DeletePrefix removes every object under the given key prefix.
func (svc *MinIOService) DeletePrefix(ctx context.Context, prefix string) error {
	objects := svc.client.ListObjects(ctx, svc.bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})

	for object := range objects {
		if object.Err != nil {
			return object.Err
		}
		if err := svc.DeleteFile(ctx, object.Key); err != nil {
			return err
		}
	}

	return nil
}

func (svc *MinIOService) ObjectURL(objectName string) string {
	scheme := "http"
	if svc.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, svc.endpoint, svc.bucketName, objectName)
}
