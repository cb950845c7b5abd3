package eval

import "github.com/corvidchess/engine/pkg/board"

// phaseWeight is how much each piece type contributes to the game phase.
// Sums to 24 at the start of a game (4 knights + 4 bishops + 4 rooks*2 + 2
// queens*4 = 4+4+8+8 = 24); Phase scales that down to [0,256] so midgame and
// endgame evaluation tables can be linearly interpolated.
var phaseWeight = [board.NumPieces]int{
	board.NoPiece: 0,
	board.Pawn:    0,
	board.Knight:  1,
	board.Bishop:  1,
	board.Rook:    2,
	board.Queen:   4,
	board.King:    0,
}

const totalPhaseWeight = 24

// Phase returns the game phase in [0,256]: 256 is the full midgame material
// set, 0 is bare kings (and pawns).
func Phase(pos *board.Position) int {
	weight := 0
	for p := board.Knight; p <= board.Queen; p++ {
		weight += phaseWeight[p] * (pos.Piece(board.White, p).Count() + pos.Piece(board.Black, p).Count())
	}
	if weight > totalPhaseWeight {
		weight = totalPhaseWeight
	}
	return weight * 256 / totalPhaseWeight
}

// Taper linearly interpolates between a midgame and endgame value by phase.
func Taper(mg, eg board.Score, phase int) board.Score {
	return (mg*board.Score(phase) + eg*board.Score(256-phase)) / 256
}
