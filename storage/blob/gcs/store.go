// Package gcsblob implements core.BlobStore on Google Cloud Storage.
package gcsblob

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"github.com/pkg/errors"
	"google.golang.org/api/option"

	"github.com/trezcool/darasa/core"
)

const uploadTimeout = 2 * time.Minute

type Store struct {
	client    *storage.Client
	bucket    string
	cdnDomain string
}

var _ core.BlobStore = (*Store)(nil) // interface compliance check

func Open(ctx context.Context, conf *core.Config) (*Store, error) {
	if conf.Storage.Bucket == "" {
		return nil, errors.New("storage bucket not configured")
	}

	var opts []option.ClientOption
	if conf.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firebase.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(storage.ScopeReadWrite))
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "creating storage client")
	}

	return &Store{
		client:    client,
		bucket:    conf.Storage.Bucket,
		cdnDomain: conf.Storage.CDNDomain,
	}, nil
}

func (s *Store) Close() error { return s.client.Close() }

func (s *Store) Upload(ctx context.Context, key string, payload io.Reader, contentType string) (core.BlobHandle, error) {
	ctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	w := s.client.Bucket(s.bucket).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, payload); err != nil {
		_ = w.Close()
		return "", errors.Wrap(err, "writing payload to bucket")
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrap(err, "closing bucket writer")
	}
	return core.BlobHandle(key), nil
}

func (s *Store) DownloadURL(ctx context.Context, handle core.BlobHandle) (string, error) {
	if s.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", s.cdnDomain, handle), nil
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, handle), nil
}
