package search

import (
	"context"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/eval"
)

// deltaMargin is added to the stand-pat score before comparing against alpha
// when deciding whether a capture could possibly raise the score enough to
// be worth searching (delta pruning).
const deltaMargin board.Score = 200

// quiesce extends the search along captures (and, while in check, all
// evasions) past the nominal depth limit, to avoid misjudging a position
// mid-exchange. Returns a score from the side-to-move's perspective. ply is
// the distance from the search root, tracked (but never capped) to report
// the selective depth reached.
func (s *searcher) quiesce(ctx context.Context, ply int, alpha, beta board.Score) board.Score {
	s.nodes++
	if ply > s.seldepth {
		s.seldepth = ply
	}
	if s.nodes%nodeCheckInterval == 0 && isCancelled(ctx) {
		return alpha
	}

	inCheck := s.b.Position().IsChecked(s.b.Turn())

	standPat := s.evaluate(ctx)
	if !inCheck {
		if standPat >= beta {
			return beta
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	moves := s.b.Position().PseudoLegalMoves(s.b.Turn())
	for _, m := range moves {
		if !inCheck {
			if !m.IsCapture() && !m.IsPromotion() {
				continue
			}
			if standPat+deltaMargin+captureValue(m) <= alpha {
				continue // delta pruning
			}
			if see(s.b.Position(), m) < 0 {
				continue // SEE pruning: losing captures can't help in quiescence
			}
		}

		if !s.b.PushMove(m) {
			continue
		}
		score := s.quiesce(ctx, ply+1, beta.Negate(), alpha.Negate()).Negate()
		s.b.PopMove()

		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (s *searcher) evaluate(ctx context.Context) board.Score {
	score := s.ev.Evaluate(ctx, s.b)
	if s.b.Turn() == board.Black {
		score = score.Negate()
	}
	return score
}

func captureValue(m board.Move) board.Score {
	v := eval.NominalValue(m.Capture)
	if m.IsPromotion() {
		v += eval.NominalValue(m.Promotion) - eval.NominalValue(board.Pawn)
	}
	return v
}
