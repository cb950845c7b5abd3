// Package eval contains static position evaluation: material, piece-square
// tables, pawn structure, mobility, king safety and the tapered midgame/endgame
// blend that combines them into a single centipawn score.
package eval

import (
	"context"

	"github.com/corvidchess/engine/pkg/board"
)

// Evaluator is a static position evaluator. Scores are always reported from
// White's perspective at rest, in centipawns, per board.Score's convention.
type Evaluator interface {
	Evaluate(ctx context.Context, b *board.Board) board.Score
}

// Breakdown is a per-term decomposition of an evaluation, for explain/debug
// tooling.
type Breakdown struct {
	Material   board.Score
	PST        board.Score
	Pawns      board.Score
	Mobility   board.Score
	KingSafety board.Score
	Center     board.Score
	BishopPair board.Score
	RookFile   board.Score
	Total      board.Score
	Phase      int // 0 (pure endgame) .. 256 (pure midgame)
}

// Engine is the default tapered Evaluator: it combines every term below,
// blended between midgame and endgame weights by Phase.
type Engine struct {
	Pawns *PawnCache
	Noise Random
}

// NewEngine returns an Engine with a pawn hash sized for a single search.
func NewEngine(noise Random) *Engine {
	return &Engine{Pawns: NewPawnCache(defaultPawnCacheEntries), Noise: noise}
}

func (e *Engine) Evaluate(ctx context.Context, b *board.Board) board.Score {
	return e.Explain(ctx, b).Total
}

// Explain computes the full per-term Breakdown for b's position, from White's
// perspective at rest.
func (e *Engine) Explain(ctx context.Context, b *board.Board) Breakdown {
	pos := b.Position()
	phase := Phase(pos)

	var out Breakdown
	out.Phase = phase
	out.Material = materialScore(pos)
	out.PST = pstScore(pos, phase)
	out.Pawns = e.Pawns.Score(pos, phase)
	out.Mobility = mobilityScore(pos, phase)
	out.KingSafety = kingSafetyScore(pos, phase)
	out.Center = centerControlScore(pos)
	out.BishopPair = bishopPairScore(pos)
	out.RookFile = rookFileScore(pos)

	out.Total = out.Material + out.PST + out.Pawns + out.Mobility + out.KingSafety + out.Center + out.BishopPair + out.RookFile
	out.Total += e.Noise.Evaluate(ctx, b)
	out.Total = board.Crop(out.Total)
	return out
}

// NominalValue is the static material value of a piece in centipawns, shared
// with SEE and MVV-LVA move ordering so "is this capture good" uses one scale.
func NominalValue(p board.Piece) board.Score {
	switch p {
	case board.Pawn:
		return 100
	case board.Knight:
		return 320
	case board.Bishop:
		return 330
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing m, ignoring
// recapture (used for move-ordering heuristics, not SEE).
func NominalValueGain(m board.Move) board.Score {
	switch m.Type {
	case board.CapturePromotion:
		return NominalValue(m.Capture) + NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Promotion:
		return NominalValue(m.Promotion) - NominalValue(board.Pawn)
	case board.Capture:
		return NominalValue(m.Capture)
	case board.EnPassant:
		return NominalValue(board.Pawn)
	default:
		return 0
	}
}

func materialScore(pos *board.Position) board.Score {
	var s board.Score
	for p := board.Pawn; p <= board.King; p++ {
		s += board.Score(pos.Piece(board.White, p).Count()-pos.Piece(board.Black, p).Count()) * NominalValue(p)
	}
	return s
}
