package inmemstore

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/storage/docstore"
)

var subjects = []string{"cbc", "grade_5", "subjects"}

func TestStore_CreateGet(t *testing.T) {
	s := Open()
	ctx := context.Background()

	id, err := s.Create(ctx, subjects, map[string]interface{}{"name": "Mathematics"})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if id == "" {
		t.Fatal("Create() returned an empty id")
	}

	data, err := s.Get(ctx, append(subjects, id))
	if err != nil {
		t.Fatalf("Get() failed: %v", err)
	}
	if data["name"] != "Mathematics" {
		t.Errorf("data = %v", data)
	}

	if _, err := s.Get(ctx, append(subjects, "nope")); errors.Cause(err) != docstore.ErrNotFound {
		t.Errorf("Get(absent) error = %v, want ErrNotFound", err)
	}
}

func TestStore_Get_returnsCopy(t *testing.T) {
	s := Open()
	ctx := context.Background()

	id, _ := s.Create(ctx, subjects, map[string]interface{}{"name": "Mathematics"})
	data, _ := s.Get(ctx, append(subjects, id))
	data["name"] = "tampered"

	fresh, _ := s.Get(ctx, append(subjects, id))
	if fresh["name"] != "Mathematics" {
		t.Errorf("stored data was mutated through a read: %v", fresh)
	}
}

// List must return only the collection's own documents, not those of nested
// subcollections.
func TestStore_List_excludesNested(t *testing.T) {
	s := Open()
	ctx := context.Background()

	id, _ := s.Create(ctx, subjects, map[string]interface{}{"name": "Mathematics"})
	nested := append(subjects, id, "topics")
	if _, err := s.Create(ctx, nested, map[string]interface{}{"title": "Fractions"}); err != nil {
		t.Fatalf("Create() failed: %v", err)
	}

	docs, err := s.List(ctx, subjects)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(docs) != 1 || docs[0].ID != id {
		t.Errorf("List() = %+v, want only the subject", docs)
	}

	topics, err := s.List(ctx, nested)
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(topics) != 1 {
		t.Errorf("List(nested) = %+v, want the topic", topics)
	}

	empty, err := s.List(ctx, []string{"cbc", "grade_6", "subjects"})
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("List(empty collection) = %+v, want none", empty)
	}
}

func TestStore_Set(t *testing.T) {
	s := Open()
	ctx := context.Background()
	path := append(subjects, "sub1")

	if err := s.Set(ctx, path, map[string]interface{}{"title": "Fractions", "videoUrl": "u"}, false); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}

	// merge only touches the given fields
	if err := s.Set(ctx, path, map[string]interface{}{"title": "Decimals"}, true); err != nil {
		t.Fatalf("Set(merge) failed: %v", err)
	}
	data, _ := s.Get(ctx, path)
	if data["title"] != "Decimals" || data["videoUrl"] != "u" {
		t.Errorf("data = %v, want merged fields", data)
	}

	// full set replaces the document
	if err := s.Set(ctx, path, map[string]interface{}{"title": "Algebra"}, false); err != nil {
		t.Fatalf("Set() failed: %v", err)
	}
	data, _ = s.Get(ctx, path)
	if _, ok := data["videoUrl"]; ok {
		t.Errorf("data = %v, want videoUrl gone after replace", data)
	}
}

func TestStore_Delete(t *testing.T) {
	s := Open()
	ctx := context.Background()
	path := append(subjects, "sub1")

	_ = s.Set(ctx, path, map[string]interface{}{"name": "Mathematics"}, false)
	if err := s.Delete(ctx, path); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := s.Get(ctx, path); errors.Cause(err) != docstore.ErrNotFound {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}

	// deleting an absent document is not an error
	if err := s.Delete(ctx, path); err != nil {
		t.Errorf("Delete(absent) = %v, want nil", err)
	}
}

func TestStore_Batch(t *testing.T) {
	s := Open()
	ctx := context.Background()
	keep := append(subjects, "keep")
	drop := append(subjects, "drop")
	_ = s.Set(ctx, drop, map[string]interface{}{"name": "Old"}, false)

	b := s.Batch()
	id := b.Create(subjects, map[string]interface{}{"name": "Mathematics"})
	b.Set(keep, map[string]interface{}{"name": "Chemistry"}, false)
	b.Delete(drop)

	// nothing applied before commit
	if _, err := s.Get(ctx, append(subjects, id)); errors.Cause(err) != docstore.ErrNotFound {
		t.Fatalf("Get() before commit error = %v, want ErrNotFound", err)
	}

	if err := b.Commit(ctx); err != nil {
		t.Fatalf("Commit() failed: %v", err)
	}
	if _, err := s.Get(ctx, append(subjects, id)); err != nil {
		t.Errorf("Get(created) failed: %v", err)
	}
	if _, err := s.Get(ctx, keep); err != nil {
		t.Errorf("Get(set) failed: %v", err)
	}
	if _, err := s.Get(ctx, drop); errors.Cause(err) != docstore.ErrNotFound {
		t.Errorf("Get(deleted) error = %v, want ErrNotFound", err)
	}
}
