package cache

import (
	"path/filepath"
	"testing"
)

func TestFragmentKey(t *testing.T) {
	got := FragmentKey("cfg", 7, "line")
	if got != "svg_cfg_7_line" {
		t.Errorf("FragmentKey = %q", got)
	}
}

func TestFragmentStoreRoundTrip(t *testing.T) {
	store, err := OpenFragmentStore(filepath.Join(t.TempDir(), "fragments.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	var stats Stats
	key := FragmentKey("cfg", 0, "abc")

	if _, ok := store.Get(key, &stats); ok {
		t.Fatal("unexpected hit on empty store")
	}
	if stats.FragmentMisses != 1 {
		t.Errorf("stats = %+v", stats)
	}

	payload := []byte(`<text x="20.00" y="34.00">hi</text>`)
	store.Put(key, payload)

	got, ok := store.Get(key, &stats)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if string(got) != string(payload) {
		t.Errorf("payload = %q, want %q", got, payload)
	}
	if stats.FragmentHits != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestFragmentStoreReplace(t *testing.T) {
	store, err := OpenFragmentStore(filepath.Join(t.TempDir(), "fragments.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	var stats Stats
	key := FragmentKey("cfg", 1, "def")
	store.Put(key, []byte("first"))
	store.Put(key, []byte("second"))

	got, ok := store.Get(key, &stats)
	if !ok || string(got) != "second" {
		t.Errorf("payload = %q, ok=%v, want %q", got, ok, "second")
	}
}

func TestFragmentStoreReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fragments.db")
	store, err := OpenFragmentStore(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	key := FragmentKey("cfg", 2, "ghi")
	store.Put(key, []byte("persisted"))
	store.Close()

	store, err = OpenFragmentStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer store.Close()

	var stats Stats
	got, ok := store.Get(key, &stats)
	if !ok || string(got) != "persisted" {
		t.Errorf("payload after reopen = %q, ok=%v", got, ok)
	}
}
