package store

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"

	"github.com/tilegraph/api/internal/state"
)

// Segment format: a single file holding every cached trace.
//
// File structure:
//
//	Header (16 bytes):
//	  - Magic (4): "TRC1"
//	  - Version (2): 1
//	  - Flags (2): reserved
//	  - RecordCount (4): number of traces
//	  - Checksum (4): CRC32 of the uncompressed body
//	Body (compressed with zstd), per record:
//	  - StartRank (4): permutation index of the start board
//	  - GoalRank (4): permutation index of the goal board
//	  - StateCount (2): states in the trace, start and goal inclusive
//	  - States (4 each): packed states in start-to-goal order
const (
	segmentMagic      = "TRC1"
	segmentVersion    = 1
	segmentHeaderSize = 16

	// Longest optimal 8-puzzle solution is 31 moves; cap records well
	// above that so a corrupt length can't drive a huge allocation.
	maxTraceStates = 64
)

var (
	ErrBadMagic     = errors.New("not a trace segment file")
	ErrBadChecksum  = errors.New("trace segment checksum mismatch")
	ErrTruncated    = errors.New("trace segment truncated")
	ErrRecordLength = errors.New("trace record has impossible length")
)

// encodeSegment serializes and compresses all entries.
func encodeSegment(entries map[Key][]state.Packed, enc *zstd.Encoder) []byte {
	var body bytes.Buffer
	for key, states := range entries {
		var rec [10]byte
		binary.LittleEndian.PutUint32(rec[0:4], key.Start)
		binary.LittleEndian.PutUint32(rec[4:8], key.Goal)
		binary.LittleEndian.PutUint16(rec[8:10], uint16(len(states)))
		body.Write(rec[:])
		for _, p := range states {
			var sb [4]byte
			binary.LittleEndian.PutUint32(sb[:], uint32(p))
			body.Write(sb[:])
		}
	}

	header := make([]byte, segmentHeaderSize)
	copy(header[0:4], segmentMagic)
	binary.LittleEndian.PutUint16(header[4:6], segmentVersion)
	binary.LittleEndian.PutUint16(header[6:8], 0)
	binary.LittleEndian.PutUint32(header[8:12], uint32(len(entries)))
	binary.LittleEndian.PutUint32(header[12:16], crc32.ChecksumIEEE(body.Bytes()))

	return append(header, enc.EncodeAll(body.Bytes(), nil)...)
}

// decodeSegment verifies and parses a segment file's contents.
func decodeSegment(data []byte, dec *zstd.Decoder) (map[Key][]state.Packed, error) {
	if len(data) < segmentHeaderSize {
		return nil, ErrTruncated
	}
	if string(data[0:4]) != segmentMagic {
		return nil, ErrBadMagic
	}
	if v := binary.LittleEndian.Uint16(data[4:6]); v != segmentVersion {
		return nil, fmt.Errorf("unsupported trace segment version: %d", v)
	}
	count := binary.LittleEndian.Uint32(data[8:12])
	checksum := binary.LittleEndian.Uint32(data[12:16])

	body, err := dec.DecodeAll(data[segmentHeaderSize:], nil)
	if err != nil {
		return nil, fmt.Errorf("decompress trace segment: %w", err)
	}
	if crc32.ChecksumIEEE(body) != checksum {
		return nil, ErrBadChecksum
	}

	entries := make(map[Key][]state.Packed, count)
	off := 0
	for i := uint32(0); i < count; i++ {
		if off+10 > len(body) {
			return nil, ErrTruncated
		}
		key := Key{
			Start: binary.LittleEndian.Uint32(body[off : off+4]),
			Goal:  binary.LittleEndian.Uint32(body[off+4 : off+8]),
		}
		n := int(binary.LittleEndian.Uint16(body[off+8 : off+10]))
		off += 10
		if n == 0 || n > maxTraceStates {
			return nil, ErrRecordLength
		}
		if off+n*4 > len(body) {
			return nil, ErrTruncated
		}
		states := make([]state.Packed, n)
		for k := range states {
			states[k] = state.Packed(binary.LittleEndian.Uint32(body[off : off+4]))
			off += 4
		}
		entries[key] = states
	}
	return entries, nil
}
