package search

import (
	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/eval"
)

// see runs Static Exchange Evaluation for a capture move: the net material
// gain, in centipawns, of playing m and then letting both sides trade off
// the captured square in order of increasing piece value. A positive result
// means the capture wins material even against the best defended recapture.
//
// Each attacker is removed from occ as it is used, and the attacker set is
// re-derived from occ each step, so that sliding x-ray attacks revealed by a
// removed blocker are picked up automatically by Attackboard.
func see(pos *board.Position, m board.Move) board.Score {
	if !m.IsCapture() {
		return 0
	}

	target := m.To
	occ := pos.Rotated().Xor(m.From)
	removed := board.BitMask(m.From)

	gains := []board.Score{eval.NominalValue(m.Capture)}
	attackerValue := eval.NominalValue(m.Piece)
	side := attackerColor(pos, m.Piece, m.From).Opponent()

	for {
		from, piece, ok := leastValuableAttacker(pos, occ, removed, target, side)
		if !ok {
			break
		}

		gains = append(gains, attackerValue-gains[len(gains)-1])
		attackerValue = eval.NominalValue(piece)

		occ = occ.Xor(from)
		removed |= board.BitMask(from)
		side = side.Opponent()
	}

	for i := len(gains) - 2; i >= 0; i-- {
		if v := -gains[i+1]; v < gains[i] {
			gains[i] = v
		}
	}
	return gains[0]
}

func attackerColor(pos *board.Position, piece board.Piece, from board.Square) board.Color {
	if pos.Piece(board.White, piece).IsSet(from) {
		return board.White
	}
	return board.Black
}

// leastValuableAttacker finds the cheapest piece of side that attacks target
// given occupancy occ, excluding any square already in removed.
func leastValuableAttacker(pos *board.Position, occ board.RotatedBitboard, removed board.Bitboard, target board.Square, side board.Color) (board.Square, board.Piece, bool) {
	pawnAttackers := board.PawnCaptureboard(side.Opponent(), board.BitMask(target)) & pos.Piece(side, board.Pawn) &^ removed
	if pawnAttackers != 0 {
		sq, _ := pawnAttackers.Pop()
		return sq, board.Pawn, true
	}

	for _, piece := range [4]board.Piece{board.Knight, board.Bishop, board.Rook, board.Queen} {
		bb := board.Attackboard(occ, target, piece) & pos.Piece(side, piece) &^ removed
		if bb != 0 {
			sq, _ := bb.Pop()
			return sq, piece, true
		}
	}

	kingAttackers := board.Attackboard(occ, target, board.King) & pos.Piece(side, board.King) &^ removed
	if kingAttackers != 0 {
		sq, _ := kingAttackers.Pop()
		return sq, board.King, true
	}
	return 0, board.NoPiece, false
}
