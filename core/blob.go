package core

import (
	"context"
	"io"
)

// BlobHandle identifies an uploaded object within the blob store.
type BlobHandle string

// BlobStore is any service that can persist binary payloads and hand back
// durable, fetchable URLs for them.
type BlobStore interface {
	// Upload writes the payload under `key` and returns a handle to the stored object.
	Upload(ctx context.Context, key string, payload io.Reader, contentType string) (BlobHandle, error)
	// DownloadURL returns a durable public URL for a previously uploaded object.
	DownloadURL(ctx context.Context, handle BlobHandle) (string, error)
}
