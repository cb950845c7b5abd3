package tt_test

import (
	"testing"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/tt"
	"github.com/stretchr/testify/assert"
)

func TestStoreThenProbeRoundTrips(t *testing.T) {
	table := tt.New(1 << 20)

	hash := board.ZobristHash(0xDEADBEEF)
	move := board.Move{From: board.E2, To: board.E4, Type: board.Jump, Piece: board.Pawn}

	ok := table.Store(hash, tt.ExactBound, 6, 42, move)
	assert.True(t, ok)

	got, found := table.Probe(hash)
	assert.True(t, found)
	assert.Equal(t, hash, got.Hash)
	assert.Equal(t, tt.ExactBound, got.Bound)
	assert.Equal(t, 6, got.Depth)
	assert.Equal(t, board.Score(42), got.Score)
	assert.Equal(t, move, got.Move)
}

func TestProbeMissReturnsFalse(t *testing.T) {
	table := tt.New(1 << 16)
	_, found := table.Probe(board.ZobristHash(123))
	assert.False(t, found)
}

func TestBucketOverflowKeepsHighestPriority(t *testing.T) {
	table := tt.New(64) // smallest possible: a single bucket.

	base := uint64(1) // all hashes below collide into bucket 0 regardless of mask.
	for i := 0; i < 4; i++ {
		table.Store(board.ZobristHash(base+uint64(i)), tt.UpperBound, 1, 0, board.Move{})
	}
	// A 5th, much deeper entry should displace the shallowest of the four.
	table.Store(board.ZobristHash(base+4), tt.ExactBound, 20, 500, board.Move{})

	got, found := table.Probe(board.ZobristHash(base + 4))
	assert.True(t, found)
	assert.Equal(t, 20, got.Depth)
}

func TestStoreSameKeyKeepsDeeperEntryRegardlessOfAge(t *testing.T) {
	table := tt.New(1 << 16)
	hash := board.ZobristHash(99)

	table.Store(hash, tt.ExactBound, 10, 0, board.Move{})
	for i := 0; i < 5; i++ {
		table.NewGeneration()
	}
	// A shallow same-key write must not replace the deeper entry, no matter
	// how stale that entry now is under the age-based priority() formula.
	ok := table.Store(hash, tt.ExactBound, 2, 0, board.Move{})
	assert.False(t, ok)

	got, found := table.Probe(hash)
	assert.True(t, found)
	assert.Equal(t, 10, got.Depth)

	// A same-key write at least as deep does replace.
	ok = table.Store(hash, tt.ExactBound, 10, 0, board.Move{})
	assert.True(t, ok)
}

func TestNewGenerationAgesOutStaleEntries(t *testing.T) {
	table := tt.New(64) // a single bucket, so every hash below shares it.
	hash := board.ZobristHash(7)

	table.Store(hash, tt.ExactBound, 10, 0, board.Move{})
	for i := 0; i < 20; i++ {
		table.NewGeneration()
	}
	// Fill the bucket with fresh shallow entries and overflow it: the deep
	// but stale entry now has the lowest priority and is the one displaced.
	for i := 1; i <= 4; i++ {
		table.Store(hash+board.ZobristHash(i), tt.ExactBound, 1, 0, board.Move{})
	}

	_, found := table.Probe(hash)
	assert.False(t, found)
	_, found = table.Probe(hash + 4)
	assert.True(t, found)
}

func TestClearResetsTable(t *testing.T) {
	table := tt.New(1 << 16)
	table.Store(board.ZobristHash(1), tt.ExactBound, 4, 10, board.Move{})
	table.Clear()

	_, found := table.Probe(board.ZobristHash(1))
	assert.False(t, found)
}
