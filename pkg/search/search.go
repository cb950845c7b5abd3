// Package search implements alpha-beta tree search over pkg/board positions:
// move ordering (TT move, SEE/MVV-LVA captures, killers, history), static
// exchange evaluation, quiescence search, principal-variation negamax with
// null-move/futility/late-move-reduction pruning, and iterative deepening
// with aspiration windows.
package search

import (
	"context"
	"fmt"
	"time"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/san"
	"github.com/corvidchess/engine/pkg/eval"
	"github.com/corvidchess/engine/pkg/tt"
)

// PV is the principal variation produced by one completed (or cancelled)
// iterative-deepening pass.
type PV struct {
	Depth    int
	SelDepth int
	Moves    []board.Move
	Score    board.Score
	Nodes    uint64
	Time     time.Duration

	// Aborted reports whether the time or context limit cut the search short
	// before the deepest requested depth completed. Not an error: Moves
	// still holds the best result found (the last fully completed iteration,
	// or a single legal move if none completed in time).
	Aborted bool
}

// NPS is nodes searched per second, using Time as the denominator.
func (p PV) NPS() uint64 {
	secs := p.Time.Seconds()
	if secs <= 0 {
		return 0
	}
	return uint64(float64(p.Nodes) / secs)
}

func (p PV) String() string {
	return fmt.Sprintf("depth=%v seldepth=%v score=%v nodes=%v time=%v aborted=%v pv=%v", p.Depth, p.SelDepth, p.Score, p.Nodes, p.Time, p.Aborted, formatMoves(p.Moves))
}

// SAN renders p.Moves in Standard Algebraic Notation, replaying them one at a
// time against a fork of root (the position the PV was searched from). root
// itself is left unmodified.
func (p PV) SAN(root *board.Board) []string {
	b := root.Fork()
	out := make([]string, 0, len(p.Moves))
	for _, m := range p.Moves {
		legal := b.Position().PseudoLegalMoves(b.Turn())
		out = append(out, san.Encode(b.Position(), b.Turn(), m, legal))
		if !b.PushMove(m) {
			break
		}
	}
	return out
}

func formatMoves(moves []board.Move) string {
	s := ""
	for i, m := range moves {
		if i > 0 {
			s += " "
		}
		s += m.String()
	}
	return s
}

// Options controls the extent of a single Search call. The Disable* flags
// default to false (every technique enabled), so the zero Options already
// requests full-strength search; they exist to build difficulty profiles
// that deliberately weaken play (pkg/engine's easy/medium profiles) and to
// let a caller isolate one technique's effect when investigating a position.
type Options struct {
	DepthLimit int // 0 == no limit short of MaxDepth
	MultiPV    int // 0 or 1 == single best line

	// TimeLimit, if positive, bounds the whole Search/SearchMultiPV call: a
	// context.WithTimeout is derived internally and checked the same way as
	// a caller-supplied cancellation. Zero means no time limit is imposed
	// here (the caller's ctx, if any, still applies).
	TimeLimit time.Duration

	// Progress, if set, receives the PV from every completed
	// iterative-deepening depth as it finishes, not just the final one.
	// Sends are non-blocking: a full buffer is drained and replaced rather
	// than blocking the search, so a slow or absent reader never stalls it.
	Progress chan<- PV

	DisableNullMove          bool
	DisableLMR               bool
	DisableAspirationWindows bool
	DisableQuiescence        bool
	DisableFutilityPruning   bool
	DisableKillerMoves       bool
	DisableHistoryHeuristic  bool
}

// MaxDepth bounds iterative deepening regardless of Options.DepthLimit, as a
// backstop against runaway searches with no time limit set.
const MaxDepth = 64

// searcher holds the state threaded through one Search call's recursion:
// shared tables that must survive across iterative-deepening depths
// (killers, history, counter-moves) plus the position being searched.
type searcher struct {
	b   *board.Board
	tt  *tt.Table
	ev  eval.Evaluator
	rnd eval.Random
	opt Options

	nodes    uint64
	seldepth int
	killers  killerTable
	history  historyTable
	counter  counterTable

	// excludeRoot holds root moves to skip when generating moves at ply 0,
	// used by SearchMultiPV to find each subsequent line after the best one.
	excludeRoot map[board.Move]bool
}

func (s *searcher) isExcludedRoot(ply int, m board.Move) bool {
	return ply == 0 && s.excludeRoot[m]
}

// Search runs iterative deepening from the root position in b (which is
// mutated and restored via MakeMove/UnmakeMove during the search, but left
// unchanged on return), returning the PV from the deepest completed
// iteration. If ctx is cancelled mid-iteration, the previous iteration's PV
// is returned instead of a partial one.
func Search(ctx context.Context, b *board.Board, table *tt.Table, ev eval.Evaluator, rnd eval.Random, opt Options) PV {
	ctx, cancel := withTimeLimit(ctx, opt.TimeLimit)
	defer cancel()

	table.NewGeneration()
	return runIterativeDeepening(ctx, b, table, ev, rnd, opt, nil)
}

// withTimeLimit derives a deadline-bound child context when limit is
// positive; otherwise it returns ctx unchanged with a no-op cancel.
func withTimeLimit(ctx context.Context, limit time.Duration) (context.Context, context.CancelFunc) {
	if limit <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, limit)
}

// SearchMultiPV returns up to opt.MultiPV distinct principal variations,
// best first: the best line, then the best line excluding the first line's
// root move, and so on. Stops early if fewer legal root moves remain than
// requested lines.
func SearchMultiPV(ctx context.Context, b *board.Board, table *tt.Table, ev eval.Evaluator, rnd eval.Random, opt Options) []PV {
	ctx, cancel := withTimeLimit(ctx, opt.TimeLimit)
	defer cancel()

	n := opt.MultiPV
	if n < 1 {
		n = 1
	}

	table.NewGeneration()
	excluded := map[board.Move]bool{}
	var lines []PV
	for i := 0; i < n; i++ {
		pv := runIterativeDeepening(ctx, b, table, ev, rnd, opt, excluded)
		if len(pv.Moves) == 0 {
			break
		}
		lines = append(lines, pv)
		excluded[pv.Moves[0]] = true
		if isCancelled(ctx) {
			break
		}
	}
	return lines
}

func runIterativeDeepening(ctx context.Context, b *board.Board, table *tt.Table, ev eval.Evaluator, rnd eval.Random, opt Options, excludeRoot map[board.Move]bool) PV {
	s := &searcher{b: b, tt: table, ev: ev, rnd: rnd, opt: opt, excludeRoot: excludeRoot}

	limit := opt.DepthLimit
	if limit <= 0 || limit > MaxDepth {
		limit = MaxDepth
	}

	var last PV
	alpha, beta := -board.Infinity, board.Infinity

	for depth := 1; depth <= limit; depth++ {
		start := time.Now()
		s.nodes = 0
		s.seldepth = 0

		score, moves := s.searchWithAspiration(ctx, depth, alpha, beta, last.Score)
		if isCancelled(ctx) {
			last.Aborted = true
			if len(last.Moves) == 0 {
				if m, ok := firstLegalMove(b); ok {
					last.Moves = []board.Move{m}
				}
			}
			return last
		}

		last = PV{Depth: depth, SelDepth: s.seldepth, Moves: moves, Score: score, Nodes: s.nodes, Time: time.Since(start)}
		alpha, beta = score-aspirationWindow, score+aspirationWindow

		if opt.Progress != nil {
			select {
			case <-opt.Progress:
			default:
			}
			opt.Progress <- last
		}

		if score.IsMate() {
			break
		}
	}
	return last
}

// searchWithAspiration re-searches with a widening window on fail-high/low,
// falling back to (-Infinity, Infinity) if narrow windows keep failing or
// the re-search cap is hit.
func (s *searcher) searchWithAspiration(ctx context.Context, depth int, alpha, beta, prev board.Score) (board.Score, []board.Move) {
	if s.opt.DisableAspirationWindows || depth < aspirationMinDepth || prev == 0 {
		return s.negamax(ctx, depth, 0, -board.Infinity, board.Infinity, true)
	}

	lo, hi := alpha, beta
	for i := 0; ; i++ {
		score, moves := s.negamax(ctx, depth, 0, lo, hi, true)
		if isCancelled(ctx) {
			return score, moves
		}
		if i >= aspirationMaxResearches {
			return s.negamax(ctx, depth, 0, -board.Infinity, board.Infinity, true)
		}
		if score <= lo {
			lo = -board.Infinity
			continue
		}
		if score >= hi {
			hi = board.Infinity
			continue
		}
		return score, moves
	}
}

// firstLegalMove returns any one legal move in b's current position, used as
// the fallback result when a search is aborted before its first iteration
// completes.
func firstLegalMove(b *board.Board) (board.Move, bool) {
	turn := b.Turn()
	for _, m := range b.Position().PseudoLegalMoves(turn) {
		if b.PushMove(m) {
			b.PopMove()
			return m, true
		}
	}
	return board.Move{}, false
}

func isCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
