// Package board holds the unpacked 3x3 board representation, the symbol
// alphabet that maps caller-supplied runes onto canonical tile codes, and
// the inversion-parity solvability check.
package board

import "errors"

const (
	// Size is the number of slots on the board (3x3, row-major,
	// slot 8 bottom-right).
	Size = 9

	// Blank is the sentinel tile code for the empty slot. Real tiles
	// carry codes 0..7.
	Blank uint8 = 0xFF
)

var (
	ErrSizeMismatch     = errors.New("sequence is not exactly 9 symbols")
	ErrAlphabetMismatch = errors.New("sequences are not permutations of the same alphabet")
	ErrUnsolvable       = errors.New("no sequence of slides connects start and goal")
)

// Board is a 3x3 arrangement of canonical tile codes, one slot Blank.
type Board [Size]uint8

// Validate checks that b holds each of the codes 0..7 exactly once plus
// exactly one Blank.
func (b Board) Validate() error {
	var seen [Size]bool
	blanks := 0
	for _, c := range b {
		switch {
		case c == Blank:
			blanks++
		case int(c) < Size-1 && !seen[c]:
			seen[c] = true
		default:
			return ErrAlphabetMismatch
		}
	}
	if blanks != 1 {
		return ErrAlphabetMismatch
	}
	return nil
}

// BlankSlot returns the slot index holding the blank.
func (b Board) BlankSlot() int {
	for i, c := range b {
		if c == Blank {
			return i
		}
	}
	return -1
}

// Inversions counts pairs (i, k) with i < k where the tile at slot i has
// a higher code than the tile at slot k. The blank does not participate.
func (b Board) Inversions() int {
	n := 0
	for i := 0; i < Size; i++ {
		if b[i] == Blank {
			continue
		}
		for k := i + 1; k < Size; k++ {
			if b[k] != Blank && b[i] > b[k] {
				n++
			}
		}
	}
	return n
}

// Solvable reports whether goal is reachable from start. On an odd-width
// board the slide moves preserve inversion parity, so the two are
// connected iff their inversion counts have the same parity. This is a
// necessary and sufficient condition; search never needs to discover
// unreachability on its own.
func Solvable(start, goal Board) bool {
	return start.Inversions()%2 == goal.Inversions()%2
}
