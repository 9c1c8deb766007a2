// Package storage turns logical image names into blob store keys and
// time-limited presigned URLs, and deletes stored blobs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/ayerecipes/recipes-api/internal/logger"
)

const (
	// keyPrefix namespaces every uploaded object.
	keyPrefix = "recipes/"

	// UploadExpiry bounds the validity of presigned upload URLs.
	UploadExpiry = 600 * time.Second

	// DownloadExpiry bounds the validity of presigned download URLs.
	DownloadExpiry = 86400 * time.Second
)

// ErrBucketNotConfigured is returned when no target bucket is set.
var ErrBucketNotConfigured = errors.New("blob storage bucket is not configured")

// PresignAPI is the subset of the S3 presign client used here.
type PresignAPI interface {
	PresignPutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// ObjectAPI is the subset of the S3 client used for deletions.
type ObjectAPI interface {
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Storage issues presigned upload/download URLs and deletes blobs.
// It keeps no local state between calls.
type S3Storage struct {
	bucket  string
	presign PresignAPI
	objects ObjectAPI
}

// New builds an S3Storage with static credentials.
func New(ctx context.Context, bucket, region, accessKey, secretKey string) (*S3Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			accessKey,
			secretKey,
			"",
		)))
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg)

	return &S3Storage{
		bucket:  bucket,
		presign: s3.NewPresignClient(client),
		objects: client,
	}, nil
}

// NewWithClients builds an S3Storage around existing clients. Used by tests.
func NewWithClients(bucket string, presign PresignAPI, objects ObjectAPI) *S3Storage {
	return &S3Storage{bucket: bucket, presign: presign, objects: objects}
}

// PresignUpload generates a unique storage key for fileName and returns a
// short-lived upload URL together with the canonical locator to persist.
func (s *S3Storage) PresignUpload(ctx context.Context, fileName, contentType string) (key, uploadURL, fileURL string, err error) {
	if s.bucket == "" {
		return "", "", "", ErrBucketNotConfigured
	}

	key = fmt.Sprintf("%s%s-%s", keyPrefix, uuid.New(), fileName)

	req, err := s.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &key,
		ContentType: &contentType,
	}, s3.WithPresignExpires(UploadExpiry))
	if err != nil {
		return "", "", "", fmt.Errorf("failed to presign upload: %w", err)
	}

	fileURL = fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, key)
	return key, req.URL, fileURL, nil
}

// PresignDownload returns a time-limited read URL for a stored locator.
func (s *S3Storage) PresignDownload(ctx context.Context, fileURL string) (string, error) {
	if s.bucket == "" {
		return "", ErrBucketNotConfigured
	}

	key := s.extractKey(fileURL)

	req, err := s.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	}, s3.WithPresignExpires(DownloadExpiry))
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}

	return req.URL, nil
}

// Delete removes the blob behind a locator. Storage errors are logged and
// reported as false so cleanup callers are never blocked.
func (s *S3Storage) Delete(ctx context.Context, fileURL string) bool {
	if s.bucket == "" || fileURL == "" {
		return false
	}

	key := s.extractKey(fileURL)

	_, err := s.objects.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &key,
	})
	if err != nil {
		logger.Log.Errorw("failed to delete blob", "key", key, "err", err)
		return false
	}

	return true
}

// extractKey recovers the storage key from a canonical locator. Both the
// virtual-hosted and the path-style URL shapes are supported; anything else
// is treated as a bare key.
func (s *S3Storage) extractKey(fileURL string) string {
	if _, after, ok := strings.Cut(fileURL, s.bucket+".s3.amazonaws.com/"); ok {
		return after
	}
	if _, after, ok := strings.Cut(fileURL, "s3.amazonaws.com/"+s.bucket+"/"); ok {
		return after
	}
	return fileURL
}
