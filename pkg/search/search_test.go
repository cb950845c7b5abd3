package search_test

import (
	"context"
	"testing"
	"time"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/eval"
	"github.com/corvidchess/engine/pkg/search"
	"github.com/corvidchess/engine/pkg/tt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBoard(t *testing.T, f string) *board.Board {
	t.Helper()
	pos, turn, noprogress, fullmoves, err := fen.Decode(f)
	require.NoError(t, err)
	return board.NewBoard(board.NewZobristTable(1), pos, turn, noprogress, fullmoves)
}

func TestSearchFindsMateInOne(t *testing.T) {
	// White rook on e1 delivers back-rank mate with Re8#: the black king's
	// own pawns block every escape square.
	b := newBoard(t, "6k1/5ppp/8/8/8/8/8/4R1K1 w - - 0 1")
	e := eval.NewEngine(eval.NewRandom(0, 0))
	table := tt.New(1 << 16)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	pv := search.Search(ctx, b, table, e, eval.NewRandom(0, 0), search.Options{DepthLimit: 4})
	require.NotEmpty(t, pv.Moves)
	assert.True(t, pv.Score.IsMate())

	best := pv.Moves[0]
	assert.Equal(t, board.E1, best.From)
	assert.Equal(t, board.E8, best.To)
}

func TestSearchRespectsDepthLimit(t *testing.T) {
	b := newBoard(t, fen.Initial)
	e := eval.NewEngine(eval.NewRandom(0, 0))
	table := tt.New(1 << 16)

	ctx := context.Background()
	pv := search.Search(ctx, b, table, e, eval.NewRandom(0, 0), search.Options{DepthLimit: 2})
	assert.Equal(t, 2, pv.Depth)
}

func TestSearchReturnsLegalFirstMove(t *testing.T) {
	b := newBoard(t, fen.Initial)
	e := eval.NewEngine(eval.NewRandom(0, 0))
	table := tt.New(1 << 16)

	ctx := context.Background()
	pv := search.Search(ctx, b, table, e, eval.NewRandom(0, 0), search.Options{DepthLimit: 3})
	require.NotEmpty(t, pv.Moves)

	legal := b.Position().LegalMoves(b.Turn())
	found := false
	for _, m := range legal {
		if m.Equals(pv.Moves[0]) {
			found = true
		}
	}
	assert.True(t, found)
}

func TestSearchCancellationReturnsPriorIteration(t *testing.T) {
	b := newBoard(t, fen.Initial)
	e := eval.NewEngine(eval.NewRandom(0, 0))
	table := tt.New(1 << 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// No iteration completes, so the result falls back to one legal move.
	pv := search.Search(ctx, b, table, e, eval.NewRandom(0, 0), search.Options{DepthLimit: 10})
	assert.Len(t, pv.Moves, 1)
}
