package storage

import (
	"os"
	"path/filepath"
	"testing"
)

type record struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestLoadMissingFile(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "missing.json"))
	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected empty collection, got %d records", len(got))
	}
}

func TestSaveAndLoad(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))
	in := []record{{ID: "1", Name: "a"}, {ID: "2", Name: "b"}}
	if err := c.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 2 || got[0].ID != "1" || got[1].Name != "b" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestSaveRewritesWholeFile(t *testing.T) {
	c := NewCollection[record](filepath.Join(t.TempDir(), "records.json"))
	_ = c.Save([]record{{ID: "1"}, {ID: "2"}, {ID: "3"}})
	_ = c.Save([]record{{ID: "9"}})

	got, err := c.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "9" {
		t.Errorf("expected single record 9, got %+v", got)
	}
}

func TestSaveNilRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	c := NewCollection[record](path)
	if err := c.Save(nil); err != nil {
		t.Fatalf("Save(nil): %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "[]" {
		t.Errorf("nil save should write an empty array, got %q", data)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewCollection[record](path).Load(); err == nil {
		t.Error("expected decode error for corrupt file")
	}
}

func TestBlobDirStoreAndRoot(t *testing.T) {
	b, err := NewBlobDir(filepath.Join(t.TempDir(), "uploads"))
	if err != nil {
		t.Fatalf("NewBlobDir: %v", err)
	}
	name, err := b.Store("pic.png", []byte("bytes"))
	if err != nil {
		t.Fatalf("Store: %v", err)
	}
	if name != "pic.png" {
		t.Errorf("stored name = %q", name)
	}
	data, err := os.ReadFile(filepath.Join(b.Root(), "pic.png"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "bytes" {
		t.Errorf("content = %q", data)
	}
}

func TestBlobDirRejectsTraversal(t *testing.T) {
	b, err := NewBlobDir(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"../escape.png", "a/b.png", "..", ""} {
		if _, err := b.Store(name, []byte("x")); err == nil {
			t.Errorf("Store(%q) should be rejected", name)
		}
	}
}
