package blogservice

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/halvard/skald/internal/apperr"
	"github.com/halvard/skald/internal/poststore"
	"github.com/halvard/skald/internal/storage"
	"github.com/halvard/skald/internal/testutil"
	"github.com/halvard/skald/internal/uploads"
)

type change struct {
	kind, slug string
}

func newService(t *testing.T) (*Service, *[]change) {
	t.Helper()

	posts := testutil.PostStore(t)
	blobs, err := storage.NewBlobDir(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatal(err)
	}

	var changes []change
	svc := NewService(posts, uploads.NewRegistrar(blobs), func(kind, slug string) {
		changes = append(changes, change{kind, slug})
	})
	return svc, &changes
}

func TestMutationsAnnounceChanges(t *testing.T) {
	svc, changes := newService(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, poststore.Draft{Title: "Hello", Content: "c", Excerpt: "e"})
	if err != nil {
		t.Fatal(err)
	}

	newTitle := "Renamed"
	if _, err := svc.UpdatePost(ctx, post.ID, poststore.Patch{Title: &newTitle}); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeletePost(ctx, post.ID); err != nil {
		t.Fatal(err)
	}

	want := []change{
		{"post-created", "hello"},
		{"post-updated", "renamed"},
		{"post-deleted", "renamed"},
	}
	if len(*changes) != len(want) {
		t.Fatalf("changes = %v, want %v", *changes, want)
	}
	for i, c := range want {
		if (*changes)[i] != c {
			t.Errorf("change[%d] = %v, want %v", i, (*changes)[i], c)
		}
	}
}

func TestFailedMutationsStaySilent(t *testing.T) {
	svc, changes := newService(t)
	ctx := context.Background()

	title := "x"
	if _, err := svc.UpdatePost(ctx, "missing", poststore.Patch{Title: &title}); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("update err = %v, want ErrNotFound", err)
	}
	if err := svc.DeletePost(ctx, "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("delete err = %v, want ErrNotFound", err)
	}
	if len(*changes) != 0 {
		t.Errorf("failed mutations announced changes: %v", *changes)
	}
}

func TestNilChangeFuncIsSafe(t *testing.T) {
	posts := testutil.PostStore(t)
	blobs, err := storage.NewBlobDir(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatal(err)
	}
	svc := NewService(posts, uploads.NewRegistrar(blobs), nil)

	if _, err := svc.CreatePost(context.Background(), poststore.Draft{Title: "t", Content: "c", Excerpt: "e"}); err != nil {
		t.Fatal(err)
	}
}
