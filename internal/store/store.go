// Package store persists solved traces so a repeated (start, goal) pair
// is served from disk instead of re-running the search. Traces are keyed
// by permutation rank pairs and kept in one zstd-compressed segment file.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/klauspost/compress/zstd"
	"github.com/rs/zerolog"

	"github.com/tilegraph/api/internal/state"
)

const segmentName = "traces.trc"

// Key identifies a cached trace by the permutation ranks of its
// endpoints.
type Key struct {
	Start uint32
	Goal  uint32
}

// Store is an in-memory trace cache backed by a single segment file.
// All entries are loaded at Open and flushed on demand.
type Store struct {
	mu      sync.RWMutex
	path    string
	entries map[Key][]state.Packed
	dirty   bool

	enc *zstd.Encoder
	dec *zstd.Decoder
	log zerolog.Logger

	hits   uint64
	misses uint64
	writes uint64
}

// Stats is a snapshot of store counters.
type Stats struct {
	Entries int
	Hits    uint64
	Misses  uint64
	Writes  uint64
}

// Open loads the trace cache from dir, creating the directory if needed.
// A missing segment file is an empty cache, not an error.
func Open(dir string, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}

	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}
	dec, err := zstd.NewReader(nil)
	if err != nil {
		enc.Close()
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	s := &Store{
		path:    filepath.Join(dir, segmentName),
		entries: make(map[Key][]state.Packed),
		enc:     enc,
		dec:     dec,
		log:     log,
	}

	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return s, nil
	case err != nil:
		s.release()
		return nil, fmt.Errorf("read trace segment: %w", err)
	}

	entries, err := decodeSegment(data, dec)
	if err != nil {
		s.release()
		return nil, fmt.Errorf("load %s: %w", s.path, err)
	}
	s.entries = entries
	s.log.Info().Int("traces", len(entries)).Str("path", s.path).Msg("trace cache loaded")
	return s, nil
}

// Get returns the cached trace states for a key, or nil if not cached.
// The returned slice is shared and must not be mutated.
func (s *Store) Get(startRank, goalRank uint32) []state.Packed {
	s.mu.RLock()
	states := s.entries[Key{Start: startRank, Goal: goalRank}]
	s.mu.RUnlock()

	if states == nil {
		atomic.AddUint64(&s.misses, 1)
		return nil
	}
	atomic.AddUint64(&s.hits, 1)
	return states
}

// Put caches a trace. First write wins; a key already present is left
// untouched since BFS always yields the same optimal length.
func (s *Store) Put(startRank, goalRank uint32, states []state.Packed) {
	if len(states) == 0 || len(states) > maxTraceStates {
		return
	}
	key := Key{Start: startRank, Goal: goalRank}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.entries[key]; exists {
		return
	}
	s.entries[key] = states
	s.dirty = true
	atomic.AddUint64(&s.writes, 1)
}

// Len returns the number of cached traces.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// Stats returns the store counters.
func (s *Store) Stats() Stats {
	return Stats{
		Entries: s.Len(),
		Hits:    atomic.LoadUint64(&s.hits),
		Misses:  atomic.LoadUint64(&s.misses),
		Writes:  atomic.LoadUint64(&s.writes),
	}
}

// Flush writes the segment file if anything changed since the last
// flush. The file is written to a temp path and renamed into place.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.dirty {
		return nil
	}

	data := encodeSegment(s.entries, s.enc)
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write trace segment: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename trace segment: %w", err)
	}
	s.dirty = false
	s.log.Info().
		Int("traces", len(s.entries)).
		Int("bytes", len(data)).
		Msg("trace cache flushed")
	return nil
}

// Close flushes and releases the compressors.
func (s *Store) Close() error {
	err := s.Flush()
	s.release()
	return err
}

func (s *Store) release() {
	s.enc.Close()
	s.dec.Close()
}
