package state

import (
	"testing"

	"github.com/tilegraph/api/internal/board"
)

// boardWithBlankAt builds a fixed tile arrangement with the blank moved
// to the given slot.
func boardWithBlankAt(blank int) board.Board {
	var b board.Board
	code := uint8(0)
	for i := range b {
		if i == blank {
			b[i] = board.Blank
		} else {
			b[i] = code
			code++
		}
	}
	return b
}

func TestApply_Blocked(t *testing.T) {
	tests := []struct {
		name    string
		dir     Direction
		blocked []int // blank positions where the move is illegal
	}{
		{"up", Up, []int{0, 1, 2}},
		{"down", Down, []int{6, 7, 8}},
		{"left", Left, []int{0, 3, 6}},
		{"right", Right, []int{2, 5, 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, blank := range tt.blocked {
				p := Pack(boardWithBlankAt(blank))
				if got := p.Apply(tt.dir); got != p {
					t.Errorf("blank at %d: Apply(%s) = %#x, want unchanged %#x",
						blank, tt.dir, uint32(got), uint32(p))
				}
			}
		})
	}
}

func TestApply_MovesBlank(t *testing.T) {
	// Blank in the center: all four moves are legal and the blank lands
	// on the expected slot with the displaced tile in the old slot.
	b := boardWithBlankAt(4)
	p := Pack(b)

	tests := []struct {
		name      string
		dir       Direction
		wantBlank int
	}{
		{"up", Up, 1},
		{"down", Down, 7},
		{"left", Left, 3},
		{"right", Right, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Apply(tt.dir)
			if got == p {
				t.Fatalf("Apply(%s) did not change the state", tt.dir)
			}
			if got.BlankPos() != tt.wantBlank {
				t.Errorf("BlankPos() = %d, want %d", got.BlankPos(), tt.wantBlank)
			}
			// The displaced tile ends up in the blank's old slot.
			if got.Tile(4) != b[tt.wantBlank] {
				t.Errorf("old blank slot holds %d, want %d", got.Tile(4), b[tt.wantBlank])
			}
			// The vacated slot reads as zero bits.
			if got.Tile(tt.wantBlank) != 0 {
				t.Errorf("new blank slot bits = %d, want 0", got.Tile(tt.wantBlank))
			}
			// Everything decodes back to a consistent board.
			moved := got.Unpack()
			if err := moved.Validate(); err != nil {
				t.Errorf("moved board invalid: %v", err)
			}
		})
	}
}

func TestApply_InverseRestores(t *testing.T) {
	for blank := 0; blank < board.Size; blank++ {
		p := Pack(boardWithBlankAt(blank))
		for _, d := range Directions {
			moved := p.Apply(d)
			if moved == p {
				continue // blocked here
			}
			if back := moved.Apply(d.Inverse()); back != p {
				t.Errorf("blank at %d: %s then %s = %#x, want %#x",
					blank, d, d.Inverse(), uint32(back), uint32(p))
			}
		}
	}
}

func TestDirection_Inverse(t *testing.T) {
	pairs := [][2]Direction{{Up, Down}, {Down, Up}, {Left, Right}, {Right, Left}}
	for _, pair := range pairs {
		if got := pair[0].Inverse(); got.String() != pair[1].String() {
			t.Errorf("%s.Inverse() = %s, want %s", pair[0], got, pair[1])
		}
	}
}
