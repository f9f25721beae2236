package clipback

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestImageStorePersistAndCompare(t *testing.T) {
	store, err := NewImageStore(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	a, err := store.Persist(fakePNG(100), "png")
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	b, err := store.Persist(fakePNG(100), "png")
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}
	c, err := store.Persist(fakePNG(200), "png")
	if err != nil {
		t.Fatalf("persist failed: %v", err)
	}

	if !strings.HasSuffix(a, ".png") {
		t.Fatalf("expected png extension, got %q", a)
	}
	if a == b {
		t.Fatalf("expected unique scratch names")
	}
	if !store.Compare(a, b) {
		t.Fatalf("identical payloads should compare equal")
	}
	if store.Compare(a, c) {
		t.Fatalf("different sizes should compare unequal")
	}
}

func TestImageStoreCompareDiffersPastHead(t *testing.T) {
	store, err := NewImageStore(filepath.Join(t.TempDir(), "images"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	old := CompareHead
	CompareHead = 16
	defer func() { CompareHead = old }()

	base := fakePNG(64)
	other := append([]byte(nil), base...)
	other[len(other)-1] ^= 0xff // differs beyond the compared head

	a, _ := store.Persist(base, "png")
	b, _ := store.Persist(other, "png")

	if !store.Compare(a, b) {
		t.Fatalf("heuristic should treat same-size same-head files as equal")
	}
}

func TestImageStoreRemoveGuardsForeignPaths(t *testing.T) {
	dir := t.TempDir()
	store, err := NewImageStore(filepath.Join(dir, "images"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	foreign := filepath.Join(dir, "keep.txt")
	if err := os.WriteFile(foreign, []byte("keep"), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	store.Remove(foreign)
	if _, err := os.Stat(foreign); err != nil {
		t.Fatalf("foreign file must survive Remove: %v", err)
	}
	if store.Owns(foreign) {
		t.Fatalf("store must not claim foreign paths")
	}

	owned, _ := store.Persist(fakePNG(10), "png")
	if !store.Owns(owned) {
		t.Fatalf("store should own its scratch files")
	}
	store.Remove(owned)
	if _, err := os.Stat(owned); !os.IsNotExist(err) {
		t.Fatalf("owned scratch file should be deleted")
	}
}
