package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/framegrace/ansisnap/parser"
)

func testLine() parser.Line {
	return parser.Line{
		Segments: []parser.Segment{
			{Text: "hello ", FG: "#ffffff", BG: "", Bold: false, Pos: 0},
			{Text: "world", FG: "#cd3131", BG: "#2472c8", Bold: true, Pos: 6},
		},
		VisibleLength: 11,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	s := NewStore(t.TempDir())
	var stats Stats

	line := testLine()
	s.Put("123", "456", line)

	got, ok := s.Get("123", "456", &stats)
	if !ok {
		t.Fatal("expected hit after put")
	}
	if got.VisibleLength != line.VisibleLength {
		t.Errorf("visible length = %d, want %d", got.VisibleLength, line.VisibleLength)
	}
	if len(got.Segments) != len(line.Segments) {
		t.Fatalf("segment count = %d, want %d", len(got.Segments), len(line.Segments))
	}
	for i := range line.Segments {
		if got.Segments[i] != line.Segments[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got.Segments[i], line.Segments[i])
		}
	}
	if stats.SegmentHits != 1 || stats.SegmentMisses != 0 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreMissOnUnknownKey(t *testing.T) {
	s := NewStore(t.TempDir())
	var stats Stats
	if _, ok := s.Get("nope", "cfg", &stats); ok {
		t.Fatal("unexpected hit")
	}
	if stats.SegmentMisses != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestStoreCorruptPayloadIsMiss(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	key := Key("1", "2")
	if err := os.WriteFile(filepath.Join(dir, key+".json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	var stats Stats
	if _, ok := s.Get("1", "2", &stats); ok {
		t.Fatal("corrupt payload must be a miss")
	}
}

func TestStoreEmptyFieldsPreserved(t *testing.T) {
	s := NewStore(t.TempDir())
	var stats Stats

	line := parser.Line{
		Segments:      []parser.Segment{{Text: "x", FG: "", BG: "", Bold: false, Pos: 0}},
		VisibleLength: 1,
	}
	s.Put("a", "b", line)
	got, ok := s.Get("a", "b", &stats)
	if !ok {
		t.Fatal("expected hit")
	}
	if got.Segments[0].FG != "" || got.Segments[0].BG != "" {
		t.Errorf("empty color fields not preserved: %+v", got.Segments[0])
	}
}

func TestStoreReadsLegacyPipePayload(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(dir)
	key := Key("9", "8")

	legacy := map[string]any{
		"cache_key":      key,
		"visible_length": 5,
		"segments": []string{
			"ab|#ffffff||false|0",
			"cde|#cd3131|#2472c8|true|2",
		},
		"timestamp": 1700000000,
	}
	payload, err := json.Marshal(legacy)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, key+".json"), payload, 0o644); err != nil {
		t.Fatal(err)
	}

	var stats Stats
	got, ok := s.Get("9", "8", &stats)
	if !ok {
		t.Fatal("legacy payload should load")
	}
	want := []parser.Segment{
		{Text: "ab", FG: "#ffffff", BG: "", Bold: false, Pos: 0},
		{Text: "cde", FG: "#cd3131", BG: "#2472c8", Bold: true, Pos: 2},
	}
	for i := range want {
		if got.Segments[i] != want[i] {
			t.Errorf("segment %d = %+v, want %+v", i, got.Segments[i], want[i])
		}
	}
}

func TestParseLegacySegmentFieldDefaults(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want parser.Segment
	}{
		{"all fields", "txt|#fff|#000|true|7", parser.Segment{Text: "txt", FG: "#fff", BG: "#000", Bold: true, Pos: 7}},
		{"empty bg significant", "txt|#fff||false|3", parser.Segment{Text: "txt", FG: "#fff", Pos: 3}},
		{"missing trailing fields", "txt|#fff", parser.Segment{Text: "txt", FG: "#fff"}},
		{"bare text", "txt", parser.Segment{Text: "txt"}},
		{"garbage pos ignored", "txt|a|b|true|xyz", parser.Segment{Text: "txt", FG: "a", BG: "b", Bold: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseLegacySegment(tt.in); got != tt.want {
				t.Errorf("parseLegacySegment(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestStorePathTooLongIsNonFatal(t *testing.T) {
	s := NewStore(t.TempDir())
	s.MaxPathLength = 20

	var stats Stats
	longHash := strings.Repeat("9", 64)
	s.Put(longHash, longHash, testLine()) // must not panic or error
	if _, ok := s.Get(longHash, longHash, &stats); ok {
		t.Fatal("over-long key should miss")
	}
	if stats.SegmentMisses != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestKey(t *testing.T) {
	if got := Key("111", "222"); got != "222_111" {
		t.Errorf("Key = %q, want %q", got, "222_111")
	}
}
