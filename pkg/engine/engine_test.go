package engine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/engine"
	"github.com/corvidchess/engine/pkg/search"
)

func TestNewEngineStartsAtInitialPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	assert.Equal(t, fen.Initial, e.Position())
}

func TestMoveThenTakeBackRestoresPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	before := e.Position()
	require.NoError(t, e.Move(ctx, "e2e4"))
	assert.NotEqual(t, before, e.Position())

	require.NoError(t, e.TakeBack(ctx))
	assert.Equal(t, before, e.Position())
}

func TestMoveRejectsIllegalMove(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	assert.Error(t, e.Move(ctx, "e2e5"))
}

func TestTakeBackWithNoHistoryErrors(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	assert.Error(t, e.TakeBack(ctx))
}

func TestResetChangesPosition(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	const scholarsMateSetup = "rnbqkbnr/pppp1ppp/8/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"
	require.NoError(t, e.Reset(ctx, scholarsMateSetup))
	assert.Equal(t, scholarsMateSetup, e.Position())
}

func TestBestMoveReturnsLegalMoveAtShallowDepth(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", engine.WithOptions(engine.Options{Depth: 2}))

	result, err := e.BestMove(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Source)
	assert.NotEmpty(t, result.SAN)
	require.NoError(t, e.Move(ctx, result.Move.String()))
}

func TestAnalyzeThenHaltReturnsPV(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	out, err := e.Analyze(ctx, search.Options{DepthLimit: 3})
	require.NoError(t, err)

	pv := <-out
	assert.NotEmpty(t, pv.Moves)

	got, err := e.Halt(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, got.Moves)
}

func TestAnalyzeWhileActiveErrors(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody")

	_, err := e.Analyze(ctx, search.Options{DepthLimit: 20})
	require.NoError(t, err)

	_, err = e.Analyze(ctx, search.Options{DepthLimit: 20})
	assert.Error(t, err)

	_, _ = e.Halt(ctx)
}

func TestClearCacheSucceeds(t *testing.T) {
	ctx := context.Background()
	e := engine.New(ctx, "test", "nobody", engine.WithOptions(engine.Options{Hash: 4}))

	require.NoError(t, e.ClearCache(ctx))
}
