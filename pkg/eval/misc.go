package eval

import "github.com/corvidchess/engine/pkg/board"

const bishopPairBonus board.Score = 30

var centerSquares = [4]board.Square{board.D4, board.E4, board.D5, board.E5}

const centerOccupancyBonus board.Score = 12

// centerControlScore rewards occupying (not merely attacking) the four
// central squares.
func centerControlScore(pos *board.Position) board.Score {
	var s board.Score
	for _, sq := range centerSquares {
		if c, p, ok := pos.Square(sq); ok && p != board.King {
			if c == board.White {
				s += centerOccupancyBonus
			} else {
				s -= centerOccupancyBonus
			}
		}
	}
	return s
}

// bishopPairScore rewards holding both bishops, a long-recognized structural
// advantage independent of the tapered material count.
func bishopPairScore(pos *board.Position) board.Score {
	var s board.Score
	if pos.Piece(board.White, board.Bishop).Count() >= 2 {
		s += bishopPairBonus
	}
	if pos.Piece(board.Black, board.Bishop).Count() >= 2 {
		s -= bishopPairBonus
	}
	return s
}

const (
	rookOpenFileBonus     board.Score = 15
	rookSemiOpenFileBonus board.Score = 8
	rookSeventhRankBonus  board.Score = 20
)

// rookFileScore rewards rooks on open/semi-open files and on the seventh
// rank (second rank from the opponent's perspective).
func rookFileScore(pos *board.Position) board.Score {
	return rookFileFor(pos, board.White) - rookFileFor(pos, board.Black)
}

func rookFileFor(pos *board.Position, c board.Color) board.Score {
	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)
	seventh := board.Rank7
	if c == board.Black {
		seventh = board.Rank2
	}

	var s board.Score
	for _, sq := range pos.Piece(c, board.Rook).ToSquares() {
		file := board.BitFile(sq.File())
		switch {
		case ownPawns&file == 0 && oppPawns&file == 0:
			s += rookOpenFileBonus
		case ownPawns&file == 0:
			s += rookSemiOpenFileBonus
		}
		if sq.Rank() == seventh {
			s += rookSeventhRankBonus
		}
	}
	return s
}
