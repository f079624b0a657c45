// Package rank maps boards to dense permutation indices and back using
// the factorial number system (Lehmer codes). Every one of the 9!
// arrangements gets a distinct index in [0, 9!), which makes the index a
// compact fixed-width key for the trace store.
package rank

import "github.com/tilegraph/api/internal/board"

// Count is the total number of board arrangements, 9!.
const Count = 362880

// factorials[i] = i!
var factorials = [board.Size]uint32{1, 1, 2, 6, 24, 120, 720, 5040, 40320}

// asValue collapses the code space to 0..8 so the board reads as a plain
// permutation: real tiles keep their codes, the blank ranks above all of
// them.
func asValue(c uint8) int {
	if c == board.Blank {
		return board.Size - 1
	}
	return int(c)
}

// Rank returns the Lehmer index of a board: for each slot, the number of
// later slots holding a smaller value, weighted by the factorial of the
// remaining slot count.
func Rank(b board.Board) uint32 {
	var r uint32
	for i := 0; i < board.Size; i++ {
		smaller := uint32(0)
		vi := asValue(b[i])
		for k := i + 1; k < board.Size; k++ {
			if asValue(b[k]) < vi {
				smaller++
			}
		}
		r += smaller * factorials[board.Size-1-i]
	}
	return r
}

// Unrank inverts Rank: it peels factoriadic digits off the index and
// picks the digit-th smallest unused value for each slot.
func Unrank(r uint32) board.Board {
	var b board.Board
	var used [board.Size]bool
	for i := 0; i < board.Size; i++ {
		digit := r / factorials[board.Size-1-i]
		r %= factorials[board.Size-1-i]
		for v := 0; v < board.Size; v++ {
			if used[v] {
				continue
			}
			if digit == 0 {
				used[v] = true
				if v == board.Size-1 {
					b[i] = board.Blank
				} else {
					b[i] = uint8(v)
				}
				break
			}
			digit--
		}
	}
	return b
}
