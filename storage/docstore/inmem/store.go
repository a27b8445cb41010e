// Package inmemstore is an in-memory docstore.Store used in tests and local
// development. Documents live in a flat map keyed by slash-joined paths.
package inmemstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/storage/docstore"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{}
}

var _ docstore.Store = (*Store)(nil) // interface compliance check

func Open() *Store {
	return &Store{docs: make(map[string]map[string]interface{})}
}

func key(segs []string) string { return strings.Join(segs, "/") }

func (s *Store) Create(ctx context.Context, collection []string, data map[string]interface{}) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[key(append(append([]string{}, collection...), id))] = copyMap(data)
	return id, nil
}

func (s *Store) Get(ctx context.Context, path []string) (map[string]interface{}, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if data, ok := s.docs[key(path)]; ok {
		return copyMap(data), nil
	}
	return nil, errors.Wrap(docstore.ErrNotFound, key(path))
}

func (s *Store) List(ctx context.Context, collection []string) ([]docstore.Document, error) {
	prefix := key(collection) + "/"
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]docstore.Document, 0)
	for k, data := range s.docs {
		if !strings.HasPrefix(k, prefix) {
			continue
		}
		rest := strings.TrimPrefix(k, prefix)
		if strings.Contains(rest, "/") { // document of a nested collection
			continue
		}
		docs = append(docs, docstore.Document{ID: rest, Data: copyMap(data)})
	}
	return docs, nil
}

func (s *Store) Set(ctx context.Context, path []string, data map[string]interface{}, merge bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set(path, data, merge)
	return nil
}

func (s *Store) Delete(ctx context.Context, path []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, key(path))
	return nil
}

func (s *Store) set(path []string, data map[string]interface{}, merge bool) {
	k := key(path)
	if orig, ok := s.docs[k]; ok && merge {
		for fld, val := range data {
			orig[fld] = val
		}
		return
	}
	s.docs[k] = copyMap(data)
}

// Batch

type batchOp struct {
	path   []string
	data   map[string]interface{}
	merge  bool
	delete bool
}

type batch struct {
	store *Store
	ops   []batchOp
}

var _ docstore.Batch = (*batch)(nil)

func (s *Store) Batch() docstore.Batch {
	return &batch{store: s}
}

func (b *batch) Create(collection []string, data map[string]interface{}) string {
	id := uuid.NewString()
	path := append(append([]string{}, collection...), id)
	b.ops = append(b.ops, batchOp{path: path, data: copyMap(data)})
	return id
}

func (b *batch) Set(path []string, data map[string]interface{}, merge bool) {
	b.ops = append(b.ops, batchOp{path: path, data: copyMap(data), merge: merge})
}

func (b *batch) Delete(path []string) {
	b.ops = append(b.ops, batchOp{path: path, delete: true})
}

func (b *batch) Commit(ctx context.Context) error {
	b.store.mu.Lock()
	defer b.store.mu.Unlock()
	for _, op := range b.ops {
		if op.delete {
			delete(b.store.docs, key(op.path))
			continue
		}
		b.store.set(op.path, op.data, op.merge)
	}
	b.ops = nil
	return nil
}

func copyMap(data map[string]interface{}) map[string]interface{} {
	cp := make(map[string]interface{}, len(data))
	for k, v := range data {
		cp[k] = v
	}
	return cp
}
