// Package search runs breadth-first search over the implicit graph of
// packed board states and reconstructs shortest slide sequences from a
// predecessor map.
package search

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tilegraph/api/internal/board"
	"github.com/tilegraph/api/internal/rank"
	"github.com/tilegraph/api/internal/state"
)

// Solver owns the BFS engine. It is stateless between calls apart from
// counters; a single Solver can serve many Solve calls, one at a time
// each.
type Solver struct {
	log zerolog.Logger

	solves     uint64
	unsolvable uint64
}

// Stats is a snapshot of solver counters.
type Stats struct {
	Solves     uint64
	Unsolvable uint64
}

func New(log zerolog.Logger) *Solver {
	return &Solver{log: log}
}

// Stats returns the solver counters.
func (s *Solver) Stats() Stats {
	return Stats{
		Solves:     atomic.LoadUint64(&s.solves),
		Unsolvable: atomic.LoadUint64(&s.unsolvable),
	}
}

// Solve finds a shortest slide sequence from start to goal. Both boards
// are validated first; unsolvable pairs are rejected by the parity check
// before any state is expanded. The returned trace runs start to goal
// inclusive.
func (s *Solver) Solve(start, goal board.Board) (*Trace, error) {
	if err := start.Validate(); err != nil {
		return nil, err
	}
	if err := goal.Validate(); err != nil {
		return nil, err
	}
	if !board.Solvable(start, goal) {
		atomic.AddUint64(&s.unsolvable, 1)
		return nil, board.ErrUnsolvable
	}

	began := time.Now()
	trace, expanded, err := bfs(state.Pack(start), state.Pack(goal))
	if err != nil {
		// Parity said the pair is connected, so the frontier cannot
		// drain without finding start. Fail rather than trust that.
		atomic.AddUint64(&s.unsolvable, 1)
		return nil, err
	}
	atomic.AddUint64(&s.solves, 1)

	s.log.Debug().
		Int("moves", trace.Moves()).
		Int("expanded", expanded).
		Dur("dur", time.Since(began)).
		Msg("solved")
	return trace, nil
}

// bfs searches backward from goal until it discovers start. Running
// backward costs nothing: every slide is undone by its opposite, so the
// backward graph is the same graph, and the predecessor chain from start
// then reads off the trace already in start-to-goal order.
func bfs(start, goal state.Packed) (*Trace, int, error) {
	// Sized for the full reachable component up front so the hot loop
	// never reallocates.
	pred := make(map[state.Packed]state.Packed, rank.Count)
	frontier := make([]state.Packed, 0, rank.Count)

	pred[goal] = goal // self-mapped root
	if start == goal {
		return newTrace(pred, start), 0, nil
	}
	frontier = append(frontier, goal)

	for head := 0; head < len(frontier); head++ {
		cur := frontier[head]
		for _, d := range state.Directions {
			next := cur.Apply(d)
			// A blocked move returns cur, which is already mapped,
			// so no-ops fall out here with everything else seen.
			if _, seen := pred[next]; seen {
				continue
			}
			pred[next] = cur
			if next == start {
				// Short-circuit at discovery: with unit edge costs
				// the first discovery is already on a shortest path.
				return newTrace(pred, start), head + 1, nil
			}
			frontier = append(frontier, next)
		}
	}

	return nil, len(frontier), board.ErrUnsolvable
}
