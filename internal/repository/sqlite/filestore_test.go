package sqlite_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/msomdec/user-records/internal/domain"
)

func TestFileStore_SaveGet(t *testing.T) {
	db := newTestDB(t)
	store := db.FileStore()
	ctx := context.Background()

	file := &domain.StoredFile{Key: "k1", Filename: "notes.txt", ContentType: "text/plain"}
	data := []byte("hello world")
	if err := store.Save(ctx, file, data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if file.Size != int64(len(data)) {
		t.Fatalf("expected size %d, got %d", len(data), file.Size)
	}
	if file.CreatedAt.IsZero() {
		t.Fatal("expected CreatedAt to be set")
	}

	got, gotData, err := store.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Filename != "notes.txt" || got.ContentType != "text/plain" {
		t.Fatalf("unexpected metadata %+v", got)
	}
	if !bytes.Equal(gotData, data) {
		t.Fatalf("expected %q, got %q", data, gotData)
	}
}

func TestFileStore_DuplicateKey(t *testing.T) {
	db := newTestDB(t)
	store := db.FileStore()
	ctx := context.Background()

	if err := store.Save(ctx, &domain.StoredFile{Key: "dup", Filename: "a", ContentType: "text/plain"}, []byte("a")); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := store.Save(ctx, &domain.StoredFile{Key: "dup", Filename: "b", ContentType: "text/plain"}, []byte("b")); err == nil {
		t.Fatal("expected duplicate key to fail")
	}

	_, data, err := store.Get(ctx, "dup")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(data) != "a" {
		t.Fatalf("expected original content to survive, got %q", data)
	}
}

func TestFileStore_NotFound(t *testing.T) {
	db := newTestDB(t)
	store := db.FileStore()

	if _, _, err := store.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := store.Delete(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on delete, got %v", err)
	}
}

func TestFileStore_Delete(t *testing.T) {
	db := newTestDB(t)
	store := db.FileStore()
	ctx := context.Background()

	if err := store.Save(ctx, &domain.StoredFile{Key: "gone", Filename: "x", ContentType: "text/plain"}, []byte("x")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Delete(ctx, "gone"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, _, err := store.Get(ctx, "gone"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
