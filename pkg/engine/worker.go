package engine

import (
	"context"
	"sync"

	"go.uber.org/atomic"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/eval"
	"github.com/corvidchess/engine/pkg/search"
	"github.com/corvidchess/engine/pkg/tt"
)

// handle manages one in-flight SEARCH command: a background goroutine running
// search.Search to completion or cancellation. STOP cancels it; the result
// either way is reported as RESULT (via Halt) once, then cached for any later
// caller that missed it.
type handle struct {
	cancel context.CancelFunc
	out    chan search.PV
	done   atomic.Bool

	mu sync.Mutex
	pv search.PV
}

// launch starts a SEARCH: b must be exclusively owned by this handle (callers
// pass a forked board) since the goroutine mutates it via make/unmake during
// the search.
func launch(b *board.Board, table *tt.Table, ev eval.Evaluator, rnd eval.Random, opt search.Options) *handle {
	ctx, cancel := context.WithCancel(context.Background())
	h := &handle{cancel: cancel, out: make(chan search.PV, 1)}
	go h.run(ctx, b, table, ev, rnd, opt)
	return h
}

func (h *handle) run(ctx context.Context, b *board.Board, table *tt.Table, ev eval.Evaluator, rnd eval.Random, opt search.Options) {
	defer h.cancel()

	opt.Progress = h.out
	pv := search.Search(ctx, b, table, ev, rnd, opt)

	h.mu.Lock()
	h.pv = pv
	h.mu.Unlock()

	h.done.Store(true)
	close(h.out)
}

// Done reports whether the search has finished, without blocking.
func (h *handle) Done() bool {
	return h.done.Load()
}

// Halt issues STOP if the search is still running, then returns its principal
// variation as RESULT. Idempotent: later calls return the same PV.
func (h *handle) Halt() search.PV {
	h.cancel()

	if pv, ok := <-h.out; ok {
		return pv
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pv
}
