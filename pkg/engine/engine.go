// Package engine ties board, eval, search, tt and book together into a
// single stateful game-playing session: position management (Reset/Move/
// TakeBack), background analysis (Analyze/Halt) and move selection
// (BestMove), the latter consulting an opening book before falling back to
// search.
package engine

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/board/san"
	"github.com/corvidchess/engine/pkg/book"
	"github.com/corvidchess/engine/pkg/eval"
	"github.com/corvidchess/engine/pkg/search"
	"github.com/corvidchess/engine/pkg/tt"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the search depth limit. If zero, there is no limit.
	Depth uint
	// Hash is the transposition table size in MB. If zero, the engine uses a
	// minimal single-bucket table.
	Hash uint
	// Noise adds some millipawn randomness to the leaf evaluations.
	Noise uint
	// TopN, if > 1, makes BestMove sample uniformly among the TopN
	// highest-scoring root moves instead of always playing the single best.
	TopN uint
	// TimeMs, if > 0, bounds BestMove and Analyze by wall-clock time in
	// addition to Depth. Zero means depth is the only limit.
	TimeMs uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, hash=%v, noise=%v, topN=%v, timeMs=%v}", o.Depth, o.Hash, o.Noise, o.TopN, o.TimeMs)
}

// Engine encapsulates game-playing logic, search, evaluation and book lookup
// for a single position under management.
type Engine struct {
	name, author string

	zt        *board.ZobristTable
	seed      int64
	opts      Options
	bookLines []book.Line
	book      *book.Book
	rnd       *rand.Rand

	b      *board.Board
	tt     *tt.Table
	ev     eval.Evaluator
	active *handle
	mu     sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobrist configures the engine to use the given random seed instead of
// the default seed of zero.
func WithZobrist(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

// WithBook attaches an opening book built from lines, consulted by BestMove
// before falling back to search. The book is constructed once the engine's
// Zobrist table exists, since its position keys depend on it.
func WithBook(lines []book.Line) Option {
	return func(e *Engine) {
		e.bookLines = lines
	}
}

// New creates an engine at the initial position.
func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{name: name, author: author}
	for _, fn := range opts {
		fn(e)
	}
	e.zt = board.NewZobristTable(e.seed)
	e.rnd = rand.New(rand.NewSource(e.seed))

	if e.bookLines != nil {
		bk, err := book.New(e.zt, e.bookLines)
		if err != nil {
			logw.Errorf(ctx, "Invalid opening book, continuing without one: %v", err)
		} else {
			e.book = bk
		}
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "Initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetHash(size uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Hash = size
}

func (e *Engine) SetNoise(millipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = millipawns
}

// SetTimeMs sets the per-search time budget in milliseconds (zero means
// depth is the only limit).
func (e *Engine) SetTimeMs(ms uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.TimeMs = ms
}

// SetProfile applies a named difficulty profile's depth, hash, noise, time
// budget and top-N sampling width in one call.
func (e *Engine) SetProfile(p DifficultyProfile) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = p.Depth
	e.opts.Hash = p.Hash
	e.opts.Noise = p.Noise
	e.opts.TopN = uint(p.TopN)
	e.opts.TimeMs = p.TimeMs
}

// Board returns a forked board.
func (e *Engine) Board() *board.Board {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.b.Fork()
}

// Position returns the current position in FEN format. Convenience function.
func (e *Engine) Position() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.b.Position(), e.b.Turn(), e.b.NoProgress(), e.b.FullMoves())
}

// Reset resets the engine to a new starting position in FEN format.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Reset %v, depth=%v, TT=%vMB, noise=%vcp", position, e.opts.Depth, e.opts.Hash, e.opts.Noise/10)

	e.haltSearchIfActive(ctx)

	pos, turn, noprogress, fullmoves, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.b = board.NewBoard(e.zt, pos, turn, noprogress, fullmoves)

	e.tt = tt.New(0)
	if e.opts.Hash > 0 {
		e.tt = tt.New(uint64(e.opts.Hash) << 20)
	}

	var noise eval.Random
	if e.opts.Noise > 0 {
		noise = eval.NewRandom(int(e.opts.Noise)/10, e.seed)
	}
	e.ev = eval.NewEngine(noise)

	logw.Infof(ctx, "New board: %v", e.b)
	return nil
}

// Move selects the given move, usually an opponent move.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Move %v", move)

	candidate, err := board.ParseMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %v", err)
	}

	e.haltSearchIfActive(ctx)

	moves := e.b.Position().PseudoLegalMoves(e.b.Turn())
	for _, m := range moves {
		if !candidate.Equals(m) {
			continue
		}

		// Candidate is at least pseudo-legal.

		if !e.b.PushMove(m) {
			return fmt.Errorf("%w: %v", board.ErrIllegalMove, m)
		}

		logw.Infof(ctx, "Move %v: %v", m, e.b)
		return nil
	}
	return fmt.Errorf("%w: %v", board.ErrIllegalMove, candidate)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.haltSearchIfActive(ctx)

	m, ok := e.b.PopMove()
	if !ok {
		return fmt.Errorf("no move to take back")
	}

	logw.Infof(ctx, "Takeback %v", m)
	return nil
}

// BestMoveResult is the full outcome of a BestMove call: the chosen move
// together with the search stats behind it (score, depth, seldepth, nodes,
// elapsed time, nps, hash fill and whether the search was cut short).
// A book move carries only Move, SAN, Source and PV; the remaining fields are
// zero since no search ran.
type BestMoveResult struct {
	Move   board.Move
	SAN    string
	Source string // opening book label, or "search"

	Score            board.Score
	Depth            int
	SelDepth         int
	Nodes            uint64
	TimeMs           int64
	NPS              uint64
	PV               []string // SAN, root move first
	HashFullPermille int
	Aborted          bool
}

// BestMove returns the engine's chosen move for the current position: an
// opening book hit if one exists, otherwise the result of a search. When the
// active profile's TopN is greater than one, the move is sampled uniformly
// among the TopN highest-scoring lines search finds rather than always the
// single best, so the engine doesn't play identically every time a position
// recurs.
func (e *Engine) BestMove(ctx context.Context) (BestMoveResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.book != nil {
		if m, eco, name, ok := e.book.Find(e.b, e.rnd); ok {
			label := name
			if eco != "" {
				label = fmt.Sprintf("%v %v", eco, name)
			}
			legal := e.b.Position().PseudoLegalMoves(e.b.Turn())
			str := san.Encode(e.b.Position(), e.b.Turn(), m, legal)
			logw.Infof(ctx, "Book move %v (%v)", m, label)
			return BestMoveResult{Move: m, SAN: str, Source: label, PV: []string{str}}, nil
		}
	}

	opt := search.Options{DepthLimit: int(e.opts.Depth), TimeLimit: time.Duration(e.opts.TimeMs) * time.Millisecond}

	topN := int(e.opts.TopN)
	if topN < 1 {
		topN = 1
	}
	if topN == 1 {
		pv := search.Search(ctx, e.b.Fork(), e.tt, e.ev, eval.Random{}, opt)
		if len(pv.Moves) == 0 {
			return BestMoveResult{}, fmt.Errorf("no legal move")
		}
		logw.Infof(ctx, "BestMove %v", pv)
		return e.toBestMoveResult(pv, "search"), nil
	}

	opt.MultiPV = topN
	lines := search.SearchMultiPV(ctx, e.b.Fork(), e.tt, e.ev, eval.Random{}, opt)
	if len(lines) == 0 {
		return BestMoveResult{}, fmt.Errorf("no legal move")
	}
	pick := lines[e.rnd.Intn(len(lines))]
	logw.Infof(ctx, "BestMove (1 of %v) %v", len(lines), pick)
	return e.toBestMoveResult(pick, "search"), nil
}

// toBestMoveResult bundles pv's stats into the caller-facing result contract;
// must be called with e.mu held, since it reads e.b and e.tt.
func (e *Engine) toBestMoveResult(pv search.PV, source string) BestMoveResult {
	moves := pv.SAN(e.b)
	var first string
	if len(moves) > 0 {
		first = moves[0]
	}
	return BestMoveResult{
		Move:             pv.Moves[0],
		SAN:              first,
		Source:           source,
		Score:            pv.Score,
		Depth:            pv.Depth,
		SelDepth:         pv.SelDepth,
		Nodes:            pv.Nodes,
		TimeMs:           pv.Time.Milliseconds(),
		NPS:              pv.NPS(),
		PV:               moves,
		HashFullPermille: int(e.tt.Used() * 1000),
		Aborted:          pv.Aborted,
	}
}

// SAN renders pv's moves in SAN against the engine's current position, the
// root a PV returned by Analyze/Halt was searched from.
func (e *Engine) SAN(pv search.PV) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return pv.SAN(e.b)
}

// Analyze starts analyzing the current position in the background, reporting
// principal variations from successive iterative-deepening depths on the
// returned channel until Halt is called.
func (e *Engine) Analyze(ctx context.Context, opt search.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if opt.DepthLimit == 0 {
		opt.DepthLimit = int(e.opts.Depth)
	}
	if opt.TimeLimit == 0 {
		opt.TimeLimit = time.Duration(e.opts.TimeMs) * time.Millisecond
	}

	logw.Infof(ctx, "Analyze %v, opt=%v", e.b, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	h := launch(e.b.Fork(), e.tt, e.ev, eval.Random{}, opt)
	e.active = h
	return h.out, nil
}

// Halt halts the active search and returns the principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "Halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

// ClearCache drops all transposition table entries, e.g. between unrelated
// games sharing one engine instance.
func (e *Engine) ClearCache(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "ClearCache")
	e.tt.Clear()
	return nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "Search %v halted: %v", e.b, pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
