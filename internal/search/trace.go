package search

import (
	"github.com/tilegraph/api/internal/board"
	"github.com/tilegraph/api/internal/state"
)

// Trace is the reconstructed solution: every state visited from start to
// goal inclusive. A trivial trace (start == goal) has one state and zero
// moves.
type Trace struct {
	states []state.Packed
}

// newTrace walks the predecessor map from start until the self-mapped
// root. The search ran backward from goal, so the walk emits states in
// start-to-goal order with no reversal needed.
func newTrace(pred map[state.Packed]state.Packed, start state.Packed) *Trace {
	states := []state.Packed{start}
	for cur := start; cur != pred[cur]; {
		cur = pred[cur]
		states = append(states, cur)
	}
	return &Trace{states: states}
}

// NewTrace builds a trace directly from a state sequence. Used by the
// trace store when serving cached solutions.
func NewTrace(states []state.Packed) *Trace {
	return &Trace{states: states}
}

// States returns the packed states, start first.
func (t *Trace) States() []state.Packed {
	return t.states
}

// Moves returns the number of slides in the solution.
func (t *Trace) Moves() int {
	return len(t.states) - 1
}

// Boards decodes the whole trace.
func (t *Trace) Boards() []board.Board {
	out := make([]board.Board, len(t.states))
	for i, p := range t.states {
		out[i] = p.Unpack()
	}
	return out
}
