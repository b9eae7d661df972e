// Package storage is the blob store for practical-work deliverables,
// backed by MinIO.
package storage

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type DeliverableStore struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

type Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	PublicBaseURL   string
}

func NewDeliverableStore(opts Options) (*DeliverableStore, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing MinIO client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return nil, fmt.Errorf("checking bucket %s: %w", opts.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("creating bucket %s: %w", opts.Bucket, err)
		}
		log.Printf("Created bucket: %s", opts.Bucket)
	}

	baseURL := opts.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if opts.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, opts.Endpoint)
	}

	return &DeliverableStore{
		client:        client,
		bucket:        opts.Bucket,
		publicBaseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Upload stores one deliverable file under the user/work path and returns
// its URL.
func (s *DeliverableStore) Upload(ctx context.Context, fileHeader *multipart.FileHeader, userID, workID string) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("opening upload: %w", err)
	}
	defer file.Close()

	objectName := fmt.Sprintf("%s/%s/%d-%s",
		workID, userID, time.Now().UnixNano(), filepath.Base(fileHeader.Filename))

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, s.bucket, objectName, file, fileHeader.Size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("uploading to MinIO: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", s.publicBaseURL, s.bucket, objectName), nil
}

// Delete removes a deliverable by the URL Upload returned.
func (s *DeliverableStore) Delete(ctx context.Context, url string) error {
	prefix := fmt.Sprintf("%s/%s/", s.publicBaseURL, s.bucket)
	objectName := strings.TrimPrefix(url, prefix)
	if objectName == url {
		return fmt.Errorf("url %q does not belong to this store", url)
	}
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}

// Fetch streams a stored deliverable; callers must close the reader.
func (s *DeliverableStore) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	prefix := fmt.Sprintf("%s/%s/", s.publicBaseURL, s.bucket)
	objectName := strings.TrimPrefix(url, prefix)
	if objectName == url {
		return nil, fmt.Errorf("url %q does not belong to this store", url)
	}
	return s.client.GetObject(ctx, s.bucket, objectName, minio.GetObjectOptions{})
}
