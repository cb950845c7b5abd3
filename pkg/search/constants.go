package search

import "github.com/corvidchess/engine/pkg/board"

// Tuning constants for the alpha-beta driver. Values are the conventional
// starting points used across the open-source engine corpus surveyed for
// this module's construction, not independently tuned.
const (
	// nullMoveMinDepth is the shallowest depth at which null-move pruning is
	// attempted.
	nullMoveMinDepth = 3
	// nullMoveReductionDeep and nullMoveReductionShallow are R in "search at
	// depth-1-R instead of depth-1" for the null move; deeper searches can
	// afford a larger reduction.
	nullMoveReductionDeep    = 3
	nullMoveReductionShallow = 2
	nullMoveDeepDepth        = 6

	// futilityMaxDepth bounds how close to the leaves futility pruning
	// applies; beyond it, positional swings are too large to prune on
	// material margin alone.
	futilityMaxDepth = 3

	// lmrMinDepth and lmrMinMoveIndex gate late-move reductions: only once
	// several moves have already been searched at a reasonable depth.
	lmrMinDepth     = 3
	lmrMinMoveIndex = 4

	// aspirationWindow is the half-width of the window re-searched around
	// the previous iteration's score before falling back to a full window.
	aspirationWindow board.Score = 50

	// aspirationMinDepth is the shallowest depth at which a narrow window is
	// tried at all; below it every iteration searches [-Infinity,
	// +Infinity].
	aspirationMinDepth = 5

	// aspirationMaxResearches caps widen-and-retry attempts within one
	// iteration before falling back to a full [-Infinity, +Infinity] window,
	// guarding against a pathological repeated-fail-high/low loop.
	aspirationMaxResearches = 3

	// nodeCheckInterval is how often (in visited nodes) the search polls
	// ctx for cancellation; checking every node would dominate runtime.
	nodeCheckInterval = 1024
)

// futilityMargins[depth] is the margin added to the static eval at that
// remaining depth. In a non-PV node that is not in check, if the static eval
// plus the margin is still at or below alpha, the whole node returns the
// static eval without searching any move (see tryFutility). Captures,
// checking moves and the first move are not exempted, and alpha is not
// checked for being a mate score.
var futilityMargins = [futilityMaxDepth + 1]board.Score{0, 200, 300, 500}
