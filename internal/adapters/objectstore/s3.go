package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"localinfo/internal/ports/storage"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"go.uber.org/zap"
)

type S3Store struct {
	client   s3iface.S3API
	uploader *s3manager.Uploader
	bucket   string
	baseURL  string
	logger   *zap.Logger
}

// NewS3Session builds an AWS session. A non-empty endpoint selects an
// S3-compatible server addressed path-style.
func NewS3Session(region, endpoint string) (*session.Session, error) {
	cfg := aws.NewConfig().WithRegion(region)
	if endpoint != "" {
		cfg = cfg.WithEndpoint(endpoint).WithS3ForcePathStyle(true)
	}
	return session.NewSession(cfg)
}

// NewS3Store stores objects in bucket. When baseURL is empty the URL reported
// by S3 is returned from Upload.
func NewS3Store(sess *session.Session, bucket, baseURL string, logger *zap.Logger) *S3Store {
	client := s3.New(sess)
	return &S3Store{
		client:   client,
		uploader: s3manager.NewUploaderWithClient(client),
		bucket:   bucket,
		baseURL:  strings.TrimRight(baseURL, "/"),
		logger:   logger,
	}
}

func (s *S3Store) Upload(ctx context.Context, file storage.File, namespace string) (string, error) {
	key, err := objectKey(namespace, file.Name)
	if err != nil {
		return "", err
	}
	in := &s3manager.UploadInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(file.Content),
	}
	if file.ContentType != "" {
		in.ContentType = aws.String(file.ContentType)
	}

	out, err := s.uploader.UploadWithContext(ctx, in)
	if err != nil {
		return "", fmt.Errorf("s3 upload %s: %w", key, err)
	}
	s.logger.Debug("object uploaded", zap.String("bucket", s.bucket), zap.String("key", key))

	if s.baseURL != "" {
		return s.baseURL + "/" + key, nil
	}
	return out.Location, nil
}

func (s *S3Store) Delete(ctx context.Context, rawURL string) error {
	key, err := s.keyOf(rawURL)
	if err != nil {
		return err
	}
	_, err = s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	s.logger.Debug("object deleted", zap.String("bucket", s.bucket), zap.String("key", key))
	return nil
}

func (s *S3Store) keyOf(rawURL string) (string, error) {
	if s.baseURL != "" && strings.HasPrefix(rawURL, s.baseURL+"/") {
		return strings.TrimPrefix(rawURL, s.baseURL+"/"), nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse object url: %w", err)
	}
	key := strings.TrimPrefix(u.Path, "/")
	key = strings.TrimPrefix(key, s.bucket+"/")
	if key == "" {
		return "", fmt.Errorf("object url %q has no key", rawURL)
	}
	return key, nil
}
