package search

import (
	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/eval"
)

const maxKillersPerPly = 2

// killerTable remembers, per ply, the last few quiet moves that caused a
// beta cutoff elsewhere in the tree at that depth — they are tried early
// since they are likely good regardless of the exact position.
type killerTable struct {
	moves [MaxDepth + 1][maxKillersPerPly]board.Move
}

func (k *killerTable) add(ply int, m board.Move) {
	if ply > MaxDepth || !m.IsQuiet() {
		return
	}
	if k.moves[ply][0].Equals(m) {
		return
	}
	k.moves[ply][1] = k.moves[ply][0]
	k.moves[ply][0] = m
}

func (k *killerTable) isKiller(ply int, m board.Move) int {
	if ply > MaxDepth {
		return 0
	}
	for i, km := range k.moves[ply] {
		if km.Equals(m) {
			return maxKillersPerPly - i
		}
	}
	return 0
}

// historyTable scores quiet moves by how often they have caused a cutoff
// anywhere in the tree, indexed by origin and destination square (the
// classic Butterfly history heuristic).
type historyTable struct {
	score [64][64]int
}

func (h *historyTable) add(m board.Move, depth int) {
	if !m.IsQuiet() {
		return
	}
	h.score[m.From][m.To] += depth * depth
}

func (h *historyTable) value(m board.Move) int {
	return h.score[m.From][m.To]
}

// counterTable remembers, per opponent move, the reply that most recently
// caused a cutoff, tried just after killers.
type counterTable struct {
	move [64][64]board.Move
	set  [64][64]bool
}

func (c *counterTable) add(last, reply board.Move) {
	if !reply.IsQuiet() {
		return
	}
	c.move[last.From][last.To] = reply
	c.set[last.From][last.To] = true
}

func (c *counterTable) get(last board.Move) (board.Move, bool) {
	if last == (board.Move{}) {
		return board.Move{}, false
	}
	if c.set[last.From][last.To] {
		return c.move[last.From][last.To], true
	}
	return board.Move{}, false
}

// priority scores defining broad ordering tiers; finer-grained ranking
// within a tier comes from the tier-specific term added on top.
const (
	tierTT        board.MovePriority = 30000
	tierGoodCap   board.MovePriority = 20000
	tierPromotion board.MovePriority = 15000
	tierKiller    board.MovePriority = 10000
	tierCounter   board.MovePriority = 9000
	tierQuiet     board.MovePriority = 0
	tierBadCap    board.MovePriority = -10000
)

// orderingFn builds the composite move-priority function for one node: TT
// move first, then captures that win material by SEE (ranked by MVV-LVA),
// then promotions, then killers, then the counter-move to the opponent's
// last move, then quiet moves by history score, with losing captures sorted
// last instead of alongside quiet moves.
func (s *searcher) orderingFn(ttMove board.Move, ply int, lastMove board.Move) board.MovePriorityFn {
	counter, hasCounter := s.counter.get(lastMove)

	fn := func(m board.Move) board.MovePriority {
		switch {
		case m.IsCapture():
			gain := see(s.b.Position(), m)
			// MovePriority is int16, so the MVV-LVA term must stay well inside
			// its range: victim weighs most, attacker breaks ties among equal
			// victims, scaled down from the raw centipawn values.
			mvvlva := board.MovePriority(8*eval.NominalValue(m.Capture) - eval.NominalValue(m.Piece)/10)
			if gain >= 0 {
				return tierGoodCap + mvvlva
			}
			return tierBadCap + mvvlva
		case m.IsPromotion():
			return tierPromotion + board.MovePriority(eval.NominalValue(m.Promotion))
		case s.killers.isKiller(ply, m) > 0:
			return tierKiller + board.MovePriority(s.killers.isKiller(ply, m))
		case hasCounter && counter.Equals(m):
			return tierCounter
		default:
			return tierQuiet + board.MovePriority(s.history.value(m))
		}
	}
	return board.First(ttMove, fn)
}
