package eval

import "github.com/corvidchess/engine/pkg/board"

const (
	pawnShieldBonus       board.Score = 10
	openFilePenalty       board.Score = 20
	semiOpenPenalty       board.Score = 10
	pinnedDefenderPenalty board.Score = 15
)

// kingSafetyScore rewards an intact pawn shield in front of the king and
// penalizes open/semi-open files next to it, plus a piece pinned against the
// king (it cannot move to block or capture a threat); all three only matter
// while there is enough material on the board to mount an attack, so the
// term is weighted down towards the endgame.
func kingSafetyScore(pos *board.Position, phase int) board.Score {
	mg := kingSafetyFor(pos, board.White) - kingSafetyFor(pos, board.Black)
	return Taper(mg, 0, phase)
}

func kingSafetyFor(pos *board.Position, c board.Color) board.Score {
	king := pos.Piece(c, board.King)
	if king == 0 {
		return 0
	}
	sq := king.LastPopSquare()

	var s board.Score
	shield := shieldSquares(c, sq)
	for shield != 0 {
		var target board.Square
		target, shield = shield.Pop()
		if pos.Piece(c, board.Pawn).IsSet(target) {
			s += pawnShieldBonus
		}
	}

	ownPawns := pos.Piece(c, board.Pawn)
	oppPawns := pos.Piece(c.Opponent(), board.Pawn)
	for df := -1; df <= 1; df++ {
		f := int(sq.File()) + df
		if f < 0 || f > 7 {
			continue
		}
		file := board.BitFile(board.File(f))
		switch {
		case ownPawns&file == 0 && oppPawns&file == 0:
			s -= openFilePenalty
		case ownPawns&file == 0:
			s -= semiOpenPenalty
		}
	}

	s -= board.Score(len(FindPins(pos, c, board.King))) * pinnedDefenderPenalty
	return s
}

// shieldSquares returns the three squares directly in front of the king
// (from its own side's perspective) that a pawn shield would occupy.
func shieldSquares(c board.Color, king board.Square) board.Bitboard {
	rank := int(king.Rank())
	var shieldRank int
	if c == board.White {
		shieldRank = rank + 1
	} else {
		shieldRank = rank - 1
	}
	if shieldRank < 0 || shieldRank > 7 {
		return 0
	}

	var bb board.Bitboard
	for df := -1; df <= 1; df++ {
		f := int(king.File()) + df
		if f < 0 || f > 7 {
			continue
		}
		bb |= board.BitMask(board.NewSquare(board.File(f), board.Rank(shieldRank)))
	}
	return bb
}
