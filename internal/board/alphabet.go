package board

import "strings"

// Alphabet is the bijection between the caller's symbols and canonical
// tile codes. Codes are handed out in first-occurrence order within the
// start sequence, so the start board always translates cleanly; the goal
// board must then spend exactly the same symbols.
type Alphabet struct {
	codes map[rune]uint8
	runes [Size - 1]rune // code -> symbol
	blank rune
}

// NewAlphabet derives an alphabet from the start sequence. blank marks
// the empty slot and must occur exactly once; the remaining eight
// symbols must be distinct.
func NewAlphabet(start []rune, blank rune) (*Alphabet, error) {
	if len(start) != Size {
		return nil, ErrSizeMismatch
	}
	a := &Alphabet{
		codes: make(map[rune]uint8, Size-1),
		blank: blank,
	}
	blanks := 0
	for _, r := range start {
		if r == blank {
			blanks++
			continue
		}
		if _, dup := a.codes[r]; dup {
			return nil, ErrAlphabetMismatch
		}
		if len(a.codes) == Size-1 {
			// Nine distinct non-blank symbols means no blank at all.
			return nil, ErrAlphabetMismatch
		}
		code := uint8(len(a.codes))
		a.codes[r] = code
		a.runes[code] = r
	}
	if blanks != 1 {
		return nil, ErrAlphabetMismatch
	}
	return a, nil
}

// Translate maps a sequence onto a Board. Every non-blank symbol must be
// known to the alphabet and used exactly once.
func (a *Alphabet) Translate(seq []rune) (Board, error) {
	var b Board
	if len(seq) != Size {
		return b, ErrSizeMismatch
	}
	var used [Size - 1]bool
	blanks := 0
	for i, r := range seq {
		if r == a.blank {
			b[i] = Blank
			blanks++
			continue
		}
		code, ok := a.codes[r]
		if !ok || used[code] {
			return b, ErrAlphabetMismatch
		}
		used[code] = true
		b[i] = code
	}
	if blanks != 1 {
		return b, ErrAlphabetMismatch
	}
	return b, nil
}

// Symbol returns the symbol for a tile code, or the blank symbol for the
// Blank sentinel.
func (a *Alphabet) Symbol(code uint8) rune {
	if code == Blank {
		return a.blank
	}
	return a.runes[code]
}

// Flatten renders a board as its nine symbols in slot order, blank
// included.
func (a *Alphabet) Flatten(b Board) string {
	var sb strings.Builder
	for _, c := range b {
		sb.WriteRune(a.Symbol(c))
	}
	return sb.String()
}

// Format renders a board as three rows of symbols, blank shown as a
// space.
func (a *Alphabet) Format(b Board) string {
	var sb strings.Builder
	for i, c := range b {
		if c == Blank {
			sb.WriteByte(' ')
		} else {
			sb.WriteRune(a.runes[c])
		}
		if i%3 == 2 {
			sb.WriteByte('\n')
		} else {
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}
