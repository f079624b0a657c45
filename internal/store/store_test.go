package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tilegraph/api/internal/state"
)

func openTestStore(t *testing.T, dir string) *Store {
	t.Helper()
	s, err := Open(dir, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return s
}

func sampleTrace() []state.Packed {
	return []state.Packed{0x40d2c688, 0x2292c688, 0x12491688}
}

func TestStore_PutGet(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	if got := s.Get(1, 2); got != nil {
		t.Fatalf("Get on empty store = %v", got)
	}

	want := sampleTrace()
	s.Put(1, 2, want)

	got := s.Get(1, 2)
	if len(got) != len(want) {
		t.Fatalf("Get = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("state %d = %#x, want %#x", i, uint32(got[i]), uint32(want[i]))
		}
	}
}

func TestStore_FirstWriteWins(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	first := sampleTrace()
	s.Put(1, 2, first)
	s.Put(1, 2, []state.Packed{0xdeadbeef})

	if got := s.Get(1, 2); len(got) != len(first) {
		t.Errorf("second Put replaced the entry: %v", got)
	}
}

func TestStore_Reopen(t *testing.T) {
	dir := t.TempDir()

	s := openTestStore(t, dir)
	s.Put(10, 20, sampleTrace())
	s.Put(30, 40, sampleTrace()[:2])
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2 := openTestStore(t, dir)
	defer s2.Close()

	if s2.Len() != 2 {
		t.Fatalf("reopened store has %d entries, want 2", s2.Len())
	}
	if got := s2.Get(10, 20); len(got) != 3 {
		t.Errorf("Get(10, 20) = %v after reopen", got)
	}
	if got := s2.Get(30, 40); len(got) != 2 {
		t.Errorf("Get(30, 40) = %v after reopen", got)
	}
}

func TestStore_FlushIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := openTestStore(t, dir)
	defer s.Close()

	s.Put(1, 2, sampleTrace())
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(filepath.Join(dir, segmentName))
	if err != nil {
		t.Fatal(err)
	}

	// Nothing changed; a second flush must not rewrite the file.
	if err := s.Flush(); err != nil {
		t.Fatal(err)
	}
	info2, err := os.Stat(filepath.Join(dir, segmentName))
	if err != nil {
		t.Fatal(err)
	}
	if !info2.ModTime().Equal(info.ModTime()) {
		t.Error("clean flush rewrote the segment file")
	}
}

func TestStore_RejectsOversizeTrace(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	s.Put(1, 2, make([]state.Packed, maxTraceStates+1))
	s.Put(3, 4, nil)
	if s.Len() != 0 {
		t.Errorf("store accepted invalid traces, Len = %d", s.Len())
	}
}

func TestStore_Stats(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	s.Put(1, 2, sampleTrace())
	s.Get(1, 2)
	s.Get(9, 9)

	stats := s.Stats()
	if stats.Entries != 1 || stats.Hits != 1 || stats.Misses != 1 || stats.Writes != 1 {
		t.Errorf("Stats = %+v, want entries=1 hits=1 misses=1 writes=1", stats)
	}
}

func TestOpen_BadSegment(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		wantErr error
	}{
		{"wrong magic", append([]byte("NOPE"), make([]byte, 12)...), ErrBadMagic},
		{"truncated header", []byte("TRC1"), ErrTruncated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if err := os.WriteFile(filepath.Join(dir, segmentName), tt.data, 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Open(dir, zerolog.Nop())
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Open error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSegment_RoundTrip(t *testing.T) {
	s := openTestStore(t, t.TempDir())
	defer s.Close()

	entries := map[Key][]state.Packed{
		{Start: 1, Goal: 2}:     sampleTrace(),
		{Start: 100, Goal: 200}: sampleTrace()[:1],
	}
	data := encodeSegment(entries, s.enc)
	got, err := decodeSegment(data, s.dec)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(entries) {
		t.Fatalf("decoded %d entries, want %d", len(got), len(entries))
	}
	for key, want := range entries {
		states, ok := got[key]
		if !ok || len(states) != len(want) {
			t.Errorf("key %+v: got %v, want %v", key, states, want)
		}
	}
}
