// Package state packs a 3x3 sliding-tile board into a single uint32 and
// implements the slide moves as pure bit transforms on that integer.
package state

import "github.com/tilegraph/api/internal/board"

// Packed encoding (uint32):
//
//	bits 0-26:  nine 3-bit tile codes, slot i at bits [3i, 3i+3)
//	            (slot 0 top-left, slot 8 bottom-right, row-major)
//	bits 27-31: blank slot position (0-8)
//
// The blank slot's own 3 bits are always zero. Keeping the blank position
// in the top field makes the hottest lookup of the search loop a single
// shift instead of a nine-slot scan. The move transform's wraparound
// shift trick assumes this exact 32-bit width.
type Packed uint32

const (
	tileBits   = 3
	tileMask   = 0x7
	blankShift = 27
)

// slotMask returns the 3-bit mask covering slot i.
func slotMask(i int) uint32 {
	return tileMask << (i * tileBits)
}

// Pack encodes a board. The board is assumed valid (see board.Validate);
// the blank slot contributes only to the position field.
func Pack(b board.Board) Packed {
	var p uint32
	for i, c := range b {
		if c == board.Blank {
			p |= uint32(i) << blankShift
		} else {
			p |= uint32(c) << (i * tileBits)
		}
	}
	return Packed(p)
}

// Tile extracts the 3-bit tile code at a slot. The blank slot decodes as
// 0; callers distinguish it via BlankPos.
func (p Packed) Tile(slot int) uint8 {
	return uint8((uint32(p) >> (slot * tileBits)) & tileMask)
}

// BlankPos returns the blank's slot index without scanning the tiles.
func (p Packed) BlankPos() int {
	return int(uint32(p) >> blankShift)
}

// Unpack decodes a Packed back into a board.
func (p Packed) Unpack() board.Board {
	var b board.Board
	blank := p.BlankPos()
	for i := range b {
		if i == blank {
			b[i] = board.Blank
		} else {
			b[i] = p.Tile(i)
		}
	}
	return b
}
