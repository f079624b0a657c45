package board

import "testing"

func TestBoard_Validate(t *testing.T) {
	tests := []struct {
		name    string
		b       Board
		wantErr error
	}{
		{"solved", Board{0, 1, 2, 3, 4, 5, 6, 7, Blank}, nil},
		{"blank first", Board{Blank, 7, 6, 5, 4, 3, 2, 1, 0}, nil},
		{"duplicate tile", Board{0, 0, 2, 3, 4, 5, 6, 7, Blank}, ErrAlphabetMismatch},
		{"no blank", Board{0, 1, 2, 3, 4, 5, 6, 7, 8}, ErrAlphabetMismatch},
		{"two blanks", Board{0, 1, 2, 3, 4, 5, 6, Blank, Blank}, ErrAlphabetMismatch},
		{"code out of range", Board{0, 1, 2, 3, 4, 5, 6, 9, Blank}, ErrAlphabetMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.b.Validate(); err != tt.wantErr {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestBoard_BlankSlot(t *testing.T) {
	b := Board{0, 1, 2, 3, Blank, 4, 5, 6, 7}
	if got := b.BlankSlot(); got != 4 {
		t.Errorf("BlankSlot() = %d, want 4", got)
	}
}

func TestBoard_Inversions(t *testing.T) {
	tests := []struct {
		name string
		b    Board
		want int
	}{
		{"sorted", Board{0, 1, 2, 3, 4, 5, 6, 7, Blank}, 0},
		{"one swap", Board{1, 0, 2, 3, 4, 5, 6, 7, Blank}, 1},
		{"reversed", Board{7, 6, 5, 4, 3, 2, 1, 0, Blank}, 28},
		{"blank ignored", Board{1, Blank, 0, 2, 3, 4, 5, 6, 7}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.b.Inversions(); got != tt.want {
				t.Errorf("Inversions() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSolvable(t *testing.T) {
	solved := Board{0, 1, 2, 3, 4, 5, 6, 7, Blank}

	tests := []struct {
		name  string
		start Board
		want  bool
	}{
		{"identity", solved, true},
		// A single adjacent swap flips parity; no slide sequence can fix it.
		{"adjacent swap", Board{1, 0, 2, 3, 4, 5, 6, 7, Blank}, false},
		// Two swaps restore even parity.
		{"double swap", Board{1, 0, 3, 2, 4, 5, 6, 7, Blank}, true},
		// Blank elsewhere does not affect parity on an odd-width board.
		{"blank moved", Board{0, 1, 2, 3, Blank, 4, 5, 6, 7}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Solvable(tt.start, solved); got != tt.want {
				t.Errorf("Solvable() = %v, want %v", got, tt.want)
			}
		})
	}
}
