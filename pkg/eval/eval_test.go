package eval_test

import (
	"context"
	"testing"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestEvaluateStartingPositionIsSymmetric(t *testing.T) {
	e := eval.NewEngine(eval.NewRandom(0, 0))
	b := newBoard(t, fen.Initial)

	got := e.Evaluate(context.Background(), b)
	assert.Equal(t, board.Score(0), got)
}

func TestEvaluateRewardsExtraMaterial(t *testing.T) {
	e := eval.NewEngine(eval.NewRandom(0, 0))
	// Black is down a knight.
	b := newBoard(t, "rnbqkb1r/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1")

	got := e.Evaluate(context.Background(), b)
	assert.Greater(t, int(got), 0)
}

func TestExplainBreakdownSumsToTotal(t *testing.T) {
	e := eval.NewEngine(eval.NewRandom(0, 0))
	b := newBoard(t, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")

	out := e.Explain(context.Background(), b)
	sum := out.Material + out.PST + out.Pawns + out.Mobility + out.KingSafety + out.Center + out.BishopPair + out.RookFile
	assert.Equal(t, board.Crop(sum), out.Total)
}

func TestNominalValueGain(t *testing.T) {
	m := board.Move{Type: board.Capture, Capture: board.Rook}
	assert.Equal(t, eval.NominalValue(board.Rook), eval.NominalValueGain(m))

	promo := board.Move{Type: board.Promotion, Promotion: board.Queen}
	assert.Equal(t, eval.NominalValue(board.Queen)-eval.NominalValue(board.Pawn), eval.NominalValueGain(promo))
}

func TestRandomZeroLimitIsNoiseless(t *testing.T) {
	n := eval.NewRandom(0, 1)
	b := newBoard(t, fen.Initial)
	assert.Equal(t, board.Score(0), n.Evaluate(context.Background(), b))
}
