package board_test

import (
	"testing"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZobristHashStable(t *testing.T) {
	zt := board.NewZobristTable(42)

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	h1 := zt.Hash(pos, turn)
	h2 := zt.Hash(pos, turn)
	assert.Equal(t, h1, h2)
}

func TestZobristMoveIncrementalMatchesRecompute(t *testing.T) {
	zt := board.NewZobristTable(7)

	pos, turn, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	h := zt.Hash(pos, turn)

	m := board.Move{Type: board.Jump, From: board.E2, To: board.E4, Piece: board.Pawn}
	incremental := zt.Move(h, pos, m)

	pos.MakeMove(turn, m)
	recomputed := zt.Hash(pos, turn.Opponent())

	assert.Equal(t, recomputed, incremental)
}

func TestZobristDistinguishesPositions(t *testing.T) {
	zt := board.NewZobristTable(1)

	a, turnA, _, _, err := fen.Decode(fen.Initial)
	require.NoError(t, err)
	b, turnB, _, _, err := fen.Decode("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1")
	require.NoError(t, err)

	assert.NotEqual(t, zt.Hash(a, turnA), zt.Hash(b, turnB))
}
