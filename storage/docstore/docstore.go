// Package docstore defines the contract this application expects from its
// hosted hierarchical document store. Paths are ordered segment lists
// alternating collection and document ids, as produced by the catalog path
// resolver.
package docstore

import (
	"context"

	"github.com/pkg/errors"
)

var ErrNotFound = errors.New("document not found")

type (
	// Document is one stored document: its id and its raw field map.
	Document struct {
		ID   string
		Data map[string]interface{}
	}

	Store interface {
		// Create adds a document with a generated id to the collection and
		// returns the id.
		Create(ctx context.Context, collection []string, data map[string]interface{}) (string, error)
		// Get returns the document's field map, or ErrNotFound.
		Get(ctx context.Context, path []string) (map[string]interface{}, error)
		// List returns every document in the collection; an empty collection
		// yields an empty slice, not an error.
		List(ctx context.Context, collection []string) ([]Document, error)
		// Set writes the document at path, creating it if absent. With merge,
		// only the given fields are touched; otherwise the document is replaced.
		Set(ctx context.Context, path []string, data map[string]interface{}, merge bool) error
		// Delete removes the document. Deleting an absent document is not an error.
		Delete(ctx context.Context, path []string) error
		// Batch groups writes to be committed together. Commit is not atomic
		// across multiple batches.
		Batch() Batch
	}

	Batch interface {
		// Create queues a document with a generated id and returns the id.
		Create(collection []string, data map[string]interface{}) string
		Set(path []string, data map[string]interface{}, merge bool)
		Delete(path []string)
		Commit(ctx context.Context) error
	}
)
