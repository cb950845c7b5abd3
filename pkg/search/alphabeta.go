package search

import (
	"context"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/tt"
)

// negamax is a principal-variation negamax search: full-window search of the
// first move at each node, null-window "scout" search of the rest, with a
// full-window re-search if a scout unexpectedly raises alpha. pv is true for
// nodes on the current principal variation, which disables null-move
// pruning and widens late-move reductions.
func (s *searcher) negamax(ctx context.Context, depth, ply int, alpha, beta board.Score, pv bool) (board.Score, []board.Move) {
	if s.nodes%nodeCheckInterval == 0 && isCancelled(ctx) {
		return 0, nil
	}

	if ply > 0 && s.b.Result().IsTerminal() {
		return terminalScore(s.b.Result(), s.b.Turn()), nil
	}

	hash := s.b.Hash()
	var ttMove board.Move
	if entry, ok := s.tt.Probe(hash); ok {
		ttMove = entry.Move
		if entry.Depth >= depth && !pv {
			switch entry.Bound {
			case tt.ExactBound:
				return entry.Score, []board.Move{entry.Move}
			case tt.LowerBound:
				if entry.Score >= beta {
					return entry.Score, []board.Move{entry.Move}
				}
			case tt.UpperBound:
				if entry.Score <= alpha {
					return entry.Score, []board.Move{entry.Move}
				}
			}
		}
	}

	inCheck := s.b.Position().IsChecked(s.b.Turn())
	if inCheck {
		depth++ // check extension: never let a checking line run out of depth
	}

	if depth <= 0 {
		if s.opt.DisableQuiescence {
			return s.evaluate(ctx), nil
		}
		return s.quiesce(ctx, ply, alpha, beta), nil
	}
	s.nodes++

	staticEval := s.evaluate(ctx)

	if !pv && !inCheck {
		if ok, score := s.tryNullMove(ctx, depth, ply, beta); ok {
			return score, nil
		}
		if ok, score := s.tryFutility(depth, alpha, staticEval); ok {
			return score, nil
		}
	}

	lastMove, _ := s.b.LastMove()
	moves := board.NewMoveList(s.b.Position().PseudoLegalMoves(s.b.Turn()), s.orderingFn(ttMove, ply, lastMove))

	var best []board.Move
	bestScore := -board.Infinity
	bound := tt.UpperBound
	searched := 0
	hasLegalMove := false

	for {
		m, ok := moves.Next()
		if !ok {
			break
		}
		if !s.b.PushMove(m) {
			continue
		}
		hasLegalMove = true
		if s.isExcludedRoot(ply, m) {
			s.b.PopMove()
			continue
		}

		childDepth := depth - 1
		if reduction := s.lmrReduction(depth, searched, pv, m); reduction > 0 {
			childDepth -= reduction
		}

		var score board.Score
		var line []board.Move
		if searched == 0 {
			score, line = s.negamax(ctx, childDepth, ply+1, beta.Negate(), alpha.Negate(), pv)
			score = score.Negate()
		} else {
			score, line = s.negamax(ctx, childDepth, ply+1, alpha.Negate()-1, alpha.Negate(), false)
			score = score.Negate()
			if score > alpha && (childDepth < depth-1 || score < beta) {
				// Reduced or null-window search beat alpha: re-search at full
				// depth/window to get an accurate score and PV.
				score, line = s.negamax(ctx, depth-1, ply+1, beta.Negate(), alpha.Negate(), pv)
				score = score.Negate()
			}
		}

		s.b.PopMove()
		searched++

		if score > bestScore {
			bestScore = score
			best = append([]board.Move{m}, line...)
		}
		if score > alpha {
			alpha = score
			bound = tt.ExactBound
		}
		if alpha >= beta {
			if m.IsQuiet() {
				if !s.opt.DisableKillerMoves {
					s.killers.add(ply, m)
				}
				if !s.opt.DisableHistoryHeuristic {
					s.history.add(m, depth)
				}
				s.counter.add(lastMove, m)
			}
			bound = tt.LowerBound
			break
		}
	}

	if !hasLegalMove {
		result := s.b.AdjudicateNoLegalMoves()
		return terminalScore(result, s.b.Turn()), nil
	}

	// A root search with excluded moves (SearchMultiPV hunting for the 2nd,
	// 3rd, ... line) finds the best score/move among a deliberately
	// incomplete move set. Storing that into the shared, persistent table
	// would let a later full-width search at the same hash reuse a
	// constrained result as if it were the true best.
	if !(ply == 0 && len(s.excludeRoot) > 0) {
		s.tt.Store(hash, bound, depth, bestScore, firstOf(best))
	}
	return bestScore, best
}

func terminalScore(result board.Result, turn board.Color) board.Score {
	switch result.Reason {
	case board.Checkmate:
		return -board.Mate
	default:
		return board.Draw
	}
}

func firstOf(moves []board.Move) board.Move {
	if len(moves) == 0 {
		return board.Move{}
	}
	return moves[0]
}

// tryNullMove attempts null-move pruning: if passing the turn still leaves
// the opponent unable to beat beta, the position is so good that the real
// move will too (fails in zugzwang-heavy endgames, avoided by the caller's
// !inCheck / material-left heuristics being left to future tuning).
func (s *searcher) tryNullMove(ctx context.Context, depth, ply int, beta board.Score) (bool, board.Score) {
	if s.opt.DisableNullMove || depth < nullMoveMinDepth {
		return false, 0
	}
	r := nullMoveReductionShallow
	if depth > nullMoveDeepDepth {
		r = nullMoveReductionDeep
	}

	s.b.PushNull()
	score, _ := s.negamax(ctx, depth-1-r, ply+1, beta.Negate(), beta.Negate()+1, false)
	score = score.Negate()
	s.b.PopNull()

	if score >= beta {
		return true, beta
	}
	return false, 0
}

// tryFutility prunes near the leaves when the static eval plus a
// depth-dependent margin still can't reach alpha: the position is too far
// gone for a shallow search to recover, so the static eval is returned
// without searching the subtree.
func (s *searcher) tryFutility(depth int, alpha, staticEval board.Score) (bool, board.Score) {
	if s.opt.DisableFutilityPruning || depth < 1 || depth > futilityMaxDepth {
		return false, 0
	}
	if staticEval+futilityMargins[depth] <= alpha {
		return true, staticEval
	}
	return false, 0
}

// lmrReduction returns how many extra plies to shave off a late, quiet move
// search, per the standard floor(sqrt(depth-1)+sqrt(movesSearched-1))
// formula, reduced by one in PV nodes.
func (s *searcher) lmrReduction(depth, searched int, pv bool, m board.Move) int {
	if s.opt.DisableLMR || depth < lmrMinDepth || searched < lmrMinMoveIndex || !m.IsQuiet() {
		return 0
	}
	r := isqrt(depth-1) + isqrt(searched-1)
	if pv && r > 0 {
		r--
	}
	if r > depth-1 {
		r = depth - 1
	}
	return r
}

func isqrt(n int) int {
	if n <= 0 {
		return 0
	}
	r := 0
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
