// Package inmemblob is an in-memory core.BlobStore used in tests and local
// development.
package inmemblob

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type Store struct {
	mu    sync.RWMutex
	blobs map[string][]byte

	// FailUploads makes every Upload fail; used to simulate blob store outages.
	FailUploads bool
}

var _ core.BlobStore = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{blobs: make(map[string][]byte)}
}

func (s *Store) Upload(ctx context.Context, key string, payload io.Reader, contentType string) (core.BlobHandle, error) {
	if s.FailUploads {
		return "", errors.New("upload failed")
	}
	content, err := io.ReadAll(payload)
	if err != nil {
		return "", errors.Wrap(err, "reading payload")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.blobs[key] = content
	return core.BlobHandle(key), nil
}

func (s *Store) DownloadURL(ctx context.Context, handle core.BlobHandle) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.blobs[string(handle)]; !ok {
		return "", errors.Errorf("unknown blob %q", handle)
	}
	return "memory://" + string(handle), nil
}

// Len reports how many blobs are stored.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blobs)
}
