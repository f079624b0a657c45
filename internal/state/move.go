package state

import "math/bits"

// Direction describes one of the four slides as data: the slot delta the
// blank travels and the predicate that keeps it on the board. The four
// directions differ in nothing else.
type Direction struct {
	name     string
	delta    int
	inBounds func(pos int) bool
}

var (
	// Up slides the tile above the blank down into it.
	Up = Direction{"up", -3, func(pos int) bool { return pos >= 3 }}
	// Down slides the tile below the blank up into it.
	Down = Direction{"down", 3, func(pos int) bool { return pos <= 5 }}
	// Left slides the tile left of the blank right into it.
	Left = Direction{"left", -1, func(pos int) bool { return pos%3 != 0 }}
	// Right slides the tile right of the blank left into it.
	Right = Direction{"right", 1, func(pos int) bool { return pos%3 != 2 }}

	// Directions lists all four moves in expansion order.
	Directions = [4]Direction{Up, Down, Left, Right}
)

func (d Direction) String() string { return d.name }

// Inverse returns the direction that undoes d. Every slide is undone by
// its opposite, which is what lets the search run backward from the goal
// over the same move set.
func (d Direction) Inverse() Direction {
	switch d.name {
	case "up":
		return Down
	case "down":
		return Up
	case "left":
		return Right
	default:
		return Left
	}
}

// Apply performs the slide, returning p unchanged when the blank sits on
// the boundary for that direction. An illegal move is a no-op, not an
// error.
func (p Packed) Apply(d Direction) Packed {
	blank := p.BlankPos()
	if !d.inBounds(blank) {
		return p
	}
	target := blank + d.delta

	// Lift the 3-bit code out of the slot the blank moves into, then
	// rotate it into the blank's old slot. A negative shift of delta*3
	// becomes a rotate right by (32+shift)%32; this only works because
	// the packed width is exactly 32 bits.
	mask := slotMask(target)
	tile := uint32(p) & mask
	moved := bits.RotateLeft32(tile, -((32 + d.delta*tileBits) % 32))

	f := uint32(p)
	f &^= mask
	f |= moved
	f &^= uint32(0x1F) << blankShift
	f |= uint32(target) << blankShift
	return Packed(f)
}
