package storage

import (
	"context"
	"errors"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/opsvix-api/config"
	"github.com/opsvix-api/dto"
	"github.com/opsvix-api/models"
)

// ObjectAPI is the subset of the S3 client used by S3Store
type ObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps assets in an S3-compatible bucket. The storage id of an
// asset is its object key.
type S3Store struct {
	client        ObjectAPI
	bucket        string
	rootFolder    string
	publicBaseURL string
}

// NewS3Store creates an S3Store from the shared AWS configuration chain.
// A custom endpoint switches to path-style addressing (MinIO, R2, ...).
func NewS3Store(ctx context.Context, cfg config.StorageConfig) (*S3Store, error) {
	if cfg.Bucket == "" {
		return nil, ErrNotConfigured
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Region))
	if err != nil {
		return nil, fmt.Errorf("unable to load SDK config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return NewS3StoreWithClient(client, cfg.Bucket, cfg.Folder, baseURL), nil
}

// NewS3StoreWithClient creates an S3Store around an existing client
func NewS3StoreWithClient(client ObjectAPI, bucket, rootFolder, publicBaseURL string) *S3Store {
	return &S3Store{
		client:        client,
		bucket:        bucket,
		rootFolder:    rootFolder,
		publicBaseURL: publicBaseURL,
	}
}

// Upload puts the file under <root>/<folder>/<uuid>.<ext>
func (s *S3Store) Upload(ctx context.Context, folder Folder, file dto.FileUpload) (models.Asset, error) {
	if err := folder.CheckUpload(file); err != nil {
		return models.Asset{}, err
	}
	if file.Body == nil {
		return models.Asset{}, errors.New("upload has no content")
	}

	key := path.Join(s.rootFolder, folder.Name, uuid.NewString()+"."+Format(file.Filename))
	input := &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        file.Body,
		ContentType: aws.String(ContentType(file)),
	}
	if file.Size > 0 {
		input.ContentLength = aws.Int64(file.Size)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return models.Asset{}, fmt.Errorf("failed to put object %s: %w", key, err)
	}

	return models.Asset{
		URL:      s.publicBaseURL + "/" + key,
		PublicID: key,
	}, nil
}

// Destroy deletes the object; deleting a missing key succeeds
func (s *S3Store) Destroy(ctx context.Context, publicID string) error {
	if publicID == "" {
		return errors.New("empty asset id")
	}
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(publicID),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", publicID, err)
	}
	return nil
}
