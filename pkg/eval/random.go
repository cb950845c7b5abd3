package eval

import (
	"context"
	"math/rand"

	"github.com/corvidchess/engine/pkg/board"
)

// Random adds a small amount of noise to evaluations, in centipawns, so that
// low difficulty profiles do not always play the single objectively-best
// move. Limit bounds the noise to [-limit/2, limit/2]; the zero value never
// perturbs anything.
type Random struct {
	rand  *rand.Rand
	limit int
}

func NewRandom(limit int, seed int64) Random {
	return Random{
		limit: limit,
		rand:  rand.New(rand.NewSource(seed)),
	}
}

func (n Random) Evaluate(ctx context.Context, b *board.Board) board.Score {
	if n.limit <= 0 {
		return 0
	}
	return board.Score(n.rand.Intn(n.limit) - n.limit/2)
}
