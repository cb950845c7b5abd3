package eval

import "github.com/corvidchess/engine/pkg/board"

// mobilityWeight scales the number of squares a piece attacks (including
// defended own pieces, excluding the piece's own square) into centipawns.
// Knight/bishop weights are the same in both phases; rooks/queens weigh more
// in the endgame, where open lines matter more than king safety.
var mobilityWeightMG = [board.NumPieces]board.Score{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   2,
	board.Queen:  1,
}
var mobilityWeightEG = [board.NumPieces]board.Score{
	board.Knight: 4,
	board.Bishop: 5,
	board.Rook:   4,
	board.Queen:  2,
}

func mobilityScore(pos *board.Position, phase int) board.Score {
	return mobilityFor(pos, board.White, phase) - mobilityFor(pos, board.Black, phase)
}

func mobilityFor(pos *board.Position, c board.Color, phase int) board.Score {
	var s board.Score
	for _, p := range [4]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		for _, from := range pos.Piece(c, p).ToSquares() {
			count := board.Score(board.Attackboard(pos.Rotated(), from, p).Count())
			s += Taper(count*mobilityWeightMG[p], count*mobilityWeightEG[p], phase)
		}
	}
	return s
}
