// Package firestorestore implements docstore.Store on Cloud Firestore.
package firestorestore

import (
	"context"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/storage/docstore"
)

type Store struct {
	client *firestore.Client
}

var _ docstore.Store = (*Store)(nil) // interface compliance check

// Open connects to the project's Firestore database using the configured
// service-account credentials (or Application Default Credentials).
func Open(ctx context.Context, conf *core.Config) (*Store, error) {
	var opts []option.ClientOption
	if conf.Firebase.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(conf.Firebase.CredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: conf.Firebase.ProjectID}, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firebase app")
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "initializing firestore client")
	}
	return &Store{client: client}, nil
}

func (s *Store) Close() error { return s.client.Close() }

// collection walks an odd-length segment list down to a collection reference.
func (s *Store) collection(segs []string) (*firestore.CollectionRef, error) {
	if len(segs) == 0 || len(segs)%2 == 0 {
		return nil, errors.Errorf("not a collection path: %v", segs)
	}
	col := s.client.Collection(segs[0])
	for i := 1; i < len(segs); i += 2 {
		col = col.Doc(segs[i]).Collection(segs[i+1])
	}
	return col, nil
}

// doc walks an even-length segment list down to a document reference.
func (s *Store) doc(segs []string) (*firestore.DocumentRef, error) {
	if len(segs) < 2 || len(segs)%2 != 0 {
		return nil, errors.Errorf("not a document path: %v", segs)
	}
	col, err := s.collection(segs[:len(segs)-1])
	if err != nil {
		return nil, err
	}
	return col.Doc(segs[len(segs)-1]), nil
}

func (s *Store) Create(ctx context.Context, collection []string, data map[string]interface{}) (string, error) {
	col, err := s.collection(collection)
	if err != nil {
		return "", err
	}
	ref, _, err := col.Add(ctx, data)
	if err != nil {
		return "", errors.Wrap(err, "creating document")
	}
	return ref.ID, nil
}

func (s *Store) Get(ctx context.Context, path []string) (map[string]interface{}, error) {
	ref, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, errors.Wrap(docstore.ErrNotFound, ref.Path)
	}
	if err != nil {
		return nil, errors.Wrap(err, "getting document")
	}
	return snap.Data(), nil
}

func (s *Store) List(ctx context.Context, collection []string) ([]docstore.Document, error) {
	col, err := s.collection(collection)
	if err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0)
	iter := col.Documents(ctx)
	defer iter.Stop()
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "iterating documents")
		}
		docs = append(docs, docstore.Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *Store) Set(ctx context.Context, path []string, data map[string]interface{}, merge bool) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	var opts []firestore.SetOption
	if merge {
		opts = append(opts, firestore.MergeAll)
	}
	_, err = ref.Set(ctx, data, opts...)
	return errors.Wrap(err, "setting document")
}

func (s *Store) Delete(ctx context.Context, path []string) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	_, err = ref.Delete(ctx)
	return errors.Wrap(err, "deleting document")
}

// Batch

type batch struct {
	store *Store
	wb    *firestore.WriteBatch
	errs  []error
}

var _ docstore.Batch = (*batch)(nil)

func (s *Store) Batch() docstore.Batch {
	return &batch{store: s, wb: s.client.Batch()}
}

func (b *batch) Create(collection []string, data map[string]interface{}) string {
	col, err := b.store.collection(collection)
	if err != nil {
		b.errs = append(b.errs, err)
		return ""
	}
	ref := col.NewDoc()
	b.wb.Set(ref, data)
	return ref.ID
}

func (b *batch) Set(path []string, data map[string]interface{}, merge bool) {
	ref, err := b.store.doc(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}
	if merge {
		b.wb.Set(ref, data, firestore.MergeAll)
	} else {
		b.wb.Set(ref, data)
	}
}

func (b *batch) Delete(path []string) {
	ref, err := b.store.doc(path)
	if err != nil {
		b.errs = append(b.errs, err)
		return
	}
	b.wb.Delete(ref)
}

func (b *batch) Commit(ctx context.Context) error {
	if len(b.errs) > 0 {
		return b.errs[0]
	}
	_, err := b.wb.Commit(ctx)
	return errors.Wrap(err, "committing batch")
}
