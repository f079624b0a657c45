package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/tilegraph/api/internal/board"
	"github.com/tilegraph/api/internal/logx"
	"github.com/tilegraph/api/internal/rank"
	"github.com/tilegraph/api/internal/search"
	"github.com/tilegraph/api/internal/store"
)

func main() {
	var (
		startSeq = flag.String("start", "", "start arrangement, nine symbols in row-major order (e.g. 123450678)")
		goalSeq  = flag.String("goal", "123456780", "goal arrangement, nine symbols in row-major order")
		blankSym = flag.String("blank", "0", "symbol marking the empty slot")
		cacheDir = flag.String("cache", "", "trace cache directory (empty = no cache)")
		logLevel = flag.String("log-level", "info", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	if *startSeq == "" {
		logger.Fatal().Msg("missing -start")
	}
	blankRunes := []rune(*blankSym)
	if len(blankRunes) != 1 {
		logger.Fatal().Msg("-blank must be a single symbol")
	}

	alpha, err := board.NewAlphabet([]rune(*startSeq), blankRunes[0])
	if err != nil {
		logger.Fatal().Err(err).Str("start", *startSeq).Msg("bad start arrangement")
	}
	start, err := alpha.Translate([]rune(*startSeq))
	if err != nil {
		logger.Fatal().Err(err).Str("start", *startSeq).Msg("bad start arrangement")
	}
	goal, err := alpha.Translate([]rune(*goalSeq))
	if err != nil {
		logger.Fatal().Err(err).Str("goal", *goalSeq).Msg("bad goal arrangement")
	}

	var traces *store.Store
	if *cacheDir != "" {
		traces, err = store.Open(*cacheDir, logger.With().Str("component", "store").Logger())
		if err != nil {
			logger.Fatal().Err(err).Str("dir", *cacheDir).Msg("open trace cache")
		}
		defer func() {
			if err := traces.Close(); err != nil {
				logger.Warn().Err(err).Msg("trace cache close")
			}
		}()
	}

	solver := search.New(logger.With().Str("component", "search").Logger())

	trace, err := solveCached(solver, traces, start, goal)
	if err != nil {
		logger.Error().Err(err).Msg("solve failed")
		closeAndExit(traces, logger)
	}

	for _, b := range trace.Boards() {
		fmt.Println(alpha.Format(b))
	}
	logger.Info().Int("moves", trace.Moves()).Msg("solved")
}

// solveCached consults the cache first when one is configured, and
// caches fresh solutions.
func solveCached(solver *search.Solver, traces *store.Store, start, goal board.Board) (*search.Trace, error) {
	if traces == nil {
		return solver.Solve(start, goal)
	}

	startRank, goalRank := rank.Rank(start), rank.Rank(goal)
	if states := traces.Get(startRank, goalRank); states != nil {
		return search.NewTrace(states), nil
	}

	trace, err := solver.Solve(start, goal)
	if err != nil {
		return nil, err
	}
	traces.Put(startRank, goalRank, trace.States())
	return trace, nil
}

// closeAndExit runs the cache flush that the deferred close would have
// done, then exits nonzero. os.Exit skips defers.
func closeAndExit(traces *store.Store, logger zerolog.Logger) {
	if traces != nil {
		if err := traces.Close(); err != nil {
			logger.Warn().Err(err).Msg("trace cache close")
		}
	}
	os.Exit(1)
}
