// internal/export/storage.go

package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// Store persists export documents and returns a URL to fetch them
type Store interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
	// Open returns ErrExportNotFound when key does not name a stored export
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

// LocalStore writes exports under dir. Files are fetched through the
// authenticated download route at baseURL, which resolves a bare file name
// against the caller's own prefix.
type LocalStore struct {
	dir     string
	baseURL string
}

// NewLocalStore creates a new local export store
func NewLocalStore(dir, baseURL string) *LocalStore {
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Put writes body to dir/key
func (s *LocalStore) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	file, err := s.path(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}
	if err := os.WriteFile(file, body, 0o640); err != nil {
		return "", fmt.Errorf("failed to write export: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.baseURL, path.Base(key)), nil
}

// Open opens dir/key for reading; directories are never served
func (s *LocalStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	file, err := s.path(key)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(file)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to stat export: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, ErrExportNotFound
	}

	f, err := os.Open(file)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	return f, nil
}

// Delete removes dir/key; a missing file is not an error
func (s *LocalStore) Delete(ctx context.Context, key string) error {
	file, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(file); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete export: %w", err)
	}
	return nil
}

func (s *LocalStore) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if filepath.IsAbs(clean) || clean == "." || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid export key %q", key)
	}
	return filepath.Join(s.dir, clean), nil
}

// S3Store keeps exports in a private bucket and hands out presigned URLs
type S3Store struct {
	client    s3iface.S3API
	bucket    string
	urlExpiry time.Duration
}

// NewS3Store creates a new S3 export store
func NewS3Store(bucket, region string, urlExpiry time.Duration) (*S3Store, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(region),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return newS3Store(s3.New(sess), bucket, urlExpiry), nil
}

func newS3Store(client s3iface.S3API, bucket string, urlExpiry time.Duration) *S3Store {
	return &S3Store{
		client:    client,
		bucket:    bucket,
		urlExpiry: urlExpiry,
	}
}

// Put uploads body and presigns a GET for it
func (s *S3Store) Put(ctx context.Context, key, contentType string, body []byte) (string, error) {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	req, _ := s.client.GetObjectRequest(&s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	url, err := req.Presign(s.urlExpiry)
	if err != nil {
		return "", fmt.Errorf("failed to presign export URL: %w", err)
	}
	return url, nil
}

// Open streams the object back
func (s *S3Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, ErrExportNotFound
		}
		return nil, fmt.Errorf("failed to download from S3: %w", err)
	}
	return out.Body, nil
}

// Delete removes the object
func (s *S3Store) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete from S3: %w", err)
	}
	return nil
}
