package cache

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGlobalFingerprintProperties(t *testing.T) {
	hashes := []string{"111", "222", "333"}

	if GlobalFingerprint(hashes) != GlobalFingerprint([]string{"111", "222", "333"}) {
		t.Error("identical hash lists must fingerprint identically")
	}
	if GlobalFingerprint(hashes) == GlobalFingerprint([]string{"111", "999", "333"}) {
		t.Error("changing one line hash must change the fingerprint")
	}
	if GlobalFingerprint(hashes) == GlobalFingerprint([]string{"222", "111", "333"}) {
		t.Error("reordering distinct lines must change the fingerprint")
	}
}

func TestIncrementalRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incremental.json")
	inc := NewIncremental(path)

	if inc.Load() != nil {
		t.Fatal("missing file should load as nil")
	}

	hashes := []string{"10", "20", "30"}
	stats := Stats{SegmentHits: 2, SegmentMisses: 1, FragmentHits: 3, FragmentMisses: 0}
	global := GlobalFingerprint(hashes)
	if err := inc.Save(global, "cfg123", hashes, stats); err != nil {
		t.Fatalf("save: %v", err)
	}

	state := inc.Load()
	if state == nil {
		t.Fatal("expected state after save")
	}
	if state.GlobalInputHash != global {
		t.Errorf("global hash = %q, want %q", state.GlobalInputHash, global)
	}
	if state.ConfigHash != "cfg123" {
		t.Errorf("config hash = %q", state.ConfigHash)
	}
	if state.LineCount != 3 || len(state.LineHashes) != 3 {
		t.Errorf("line count = %d, hashes = %v", state.LineCount, state.LineHashes)
	}
	if state.Stats != stats {
		t.Errorf("stats = %+v, want %+v", state.Stats, stats)
	}
	if state.Timestamp == 0 {
		t.Error("timestamp not recorded")
	}
}

func TestIncrementalCorruptFileLoadsAsNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "incremental.json")
	if err := os.WriteFile(path, []byte("%%%"), 0o644); err != nil {
		t.Fatal(err)
	}
	if NewIncremental(path).Load() != nil {
		t.Error("corrupt state should load as nil")
	}
}

func TestIncrementalSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "incremental.json")
	inc := NewIncremental(path)
	if err := inc.Save("1", "2", []string{"3"}, Stats{}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
	// Overwrite succeeds and remains loadable.
	if err := inc.Save("9", "8", []string{"7", "6"}, Stats{}); err != nil {
		t.Fatalf("second save: %v", err)
	}
	state := inc.Load()
	if state == nil || state.GlobalInputHash != "9" || state.LineCount != 2 {
		t.Errorf("state after overwrite = %+v", state)
	}
}
