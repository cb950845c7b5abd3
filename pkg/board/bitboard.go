package board

import (
	"math/bits"
	"strings"
)

// Bitboard is a 64-bit set of squares, one bit per square (bit 0 = H1, bit 63 = A8).
// Sliding-piece attacks are computed via precomputed "rotated" occupancy lookups
// rather than hardware-specific magic bitboards, so the engine needs no external
// magic-number tables.
type Bitboard uint64

const EmptyBitboard Bitboard = 0

func (b Bitboard) IsSet(sq Square) bool {
	return b&BitMask(sq) != 0
}

// Count returns the number of set squares.
func (b Bitboard) Count() int {
	return bits.OnesCount64(uint64(b))
}

// PopCount is an alias for Count, kept for readers used to chess-engine terminology.
func (b Bitboard) PopCount() int {
	return b.Count()
}

// LastPopSquare returns the least-significant set square, or NumSquares if empty.
func (b Bitboard) LastPopSquare() Square {
	return Square(bits.TrailingZeros64(uint64(b)))
}

// Pop returns the least-significant set square and the bitboard with it cleared.
func (b Bitboard) Pop() (Square, Bitboard) {
	sq := b.LastPopSquare()
	return sq, b &^ BitMask(sq)
}

// ToSquares expands the bitboard into a slice of set squares, low to high.
func (b Bitboard) ToSquares() []Square {
	var ret []Square
	for b != 0 {
		var sq Square
		sq, b = b.Pop()
		ret = append(ret, sq)
	}
	return ret
}

func (b Bitboard) String() string {
	var sb strings.Builder
	for i := ZeroSquare; i < NumSquares; i++ {
		if i != 0 && i%8 == 0 {
			sb.WriteRune('/')
		}
		if b.IsSet(NumSquares - 1 - i) {
			sb.WriteRune('X')
		} else {
			sb.WriteRune('-')
		}
	}
	return sb.String()
}

// BitMask returns a bitboard with only sq populated.
func BitMask(sq Square) Bitboard {
	return Bitboard(1) << sq
}

// BitRank returns the bitboard of an entire rank.
func BitRank(r Rank) Bitboard {
	return Bitboard(0xff) << (r << 3)
}

// BitFile returns the bitboard of an entire file.
func BitFile(f File) Bitboard {
	return Bitboard(0x0101010101010101) << f
}

// PawnCaptureboard returns every square a pawn of the given color, standing on any
// square in pawns, could capture on (ignoring whether a piece is actually there).
func PawnCaptureboard(c Color, pawns Bitboard) Bitboard {
	if c == White {
		return ((pawns << 9) &^ BitFile(FileH)) | ((pawns << 7) &^ BitFile(FileA))
	}
	return ((pawns >> 9) &^ BitFile(FileA)) | ((pawns >> 7) &^ BitFile(FileH))
}

// PawnPushboard returns the single-step advance squares for pawns, excluding any
// that land on an occupied square.
func PawnPushboard(occupied Bitboard, c Color, pawns Bitboard) Bitboard {
	if c == White {
		return (pawns << 8) &^ occupied
	}
	return (pawns >> 8) &^ occupied
}

// PawnPromotionRank returns Rank8 for White, Rank1 for Black.
func PawnPromotionRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank8)
	}
	return BitRank(Rank1)
}

// PawnHomeRank returns the rank pawns of the given color start on.
func PawnHomeRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank2)
	}
	return BitRank(Rank7)
}

// PawnJumpRank returns the landing rank of a double pawn push: Rank4 for White,
// Rank5 for Black.
func PawnJumpRank(c Color) Bitboard {
	if c == White {
		return BitRank(Rank4)
	}
	return BitRank(Rank5)
}

// Attackboard dispatches to the piece-specific attack function.
func Attackboard(bb RotatedBitboard, sq Square, piece Piece) Bitboard {
	switch piece {
	case King:
		return KingAttackboard(sq)
	case Queen:
		return QueenAttackboard(bb, sq)
	case Rook:
		return RookAttackboard(bb, sq)
	case Bishop:
		return BishopAttackboard(bb, sq)
	case Knight:
		return KnightAttackboard(sq)
	default:
		panic("invalid piece for Attackboard: " + piece.String())
	}
}

func KingAttackboard(sq Square) Bitboard {
	return kingAttacks[sq]
}

var kingAttacks [NumSquares]Bitboard

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		tmp := BitMask(sq)
		tmp |= ((tmp << 1) &^ BitFile(FileH)) | ((tmp >> 1) &^ BitFile(FileA))
		tmp |= tmp<<8 | tmp>>8
		tmp = tmp &^ BitMask(sq)
		kingAttacks[sq] = tmp
	}
}

func KnightAttackboard(sq Square) Bitboard {
	return knightAttacks[sq]
}

var knightAttacks [NumSquares]Bitboard

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		one := ((BitMask(sq) << 1) &^ BitFile(FileH)) | ((BitMask(sq) >> 1) &^ BitFile(FileA))
		two := ((BitMask(sq) << 2) &^ (BitFile(FileG) | BitFile(FileH))) | ((BitMask(sq) >> 2) &^ (BitFile(FileA) | BitFile(FileB)))
		knightAttacks[sq] = one<<16 | one>>16 | two<<8 | two>>8
	}
}

// RotatedBitboard tracks a single occupancy bitboard in four orientations
// (straight, rotated 90, and the two 45-degree diagonal rotations) so that
// RookAttackboard/BishopAttackboard can look up a slider's reach with a table
// lookup instead of ray-tracing the board at search time.
type RotatedBitboard struct {
	straight, vertical, diagL, diagR Bitboard
}

// NewRotatedBitboard builds all four orientations of a starting occupancy.
func NewRotatedBitboard(bb Bitboard) RotatedBitboard {
	var ret RotatedBitboard
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		if bb.IsSet(sq) {
			ret = ret.Xor(sq)
		}
	}
	return ret
}

// Mask returns the occupancy in normal (straight) orientation.
func (r RotatedBitboard) Mask() Bitboard {
	return r.straight
}

// Xor toggles a square's occupancy across all four orientations.
func (r RotatedBitboard) Xor(sq Square) RotatedBitboard {
	return RotatedBitboard{
		straight: r.straight ^ BitMask(sq),
		vertical: r.vertical ^ BitMask(rotateVertical[sq]),
		diagL:    r.diagL ^ BitMask(rotateDiagL[sq]),
		diagR:    r.diagR ^ BitMask(rotateDiagR[sq]),
	}
}

func (r RotatedBitboard) String() string {
	return r.straight.String()
}

const numLineStates = 256 // 2^8 possible occupancy patterns along any rank/file/diagonal

// rotateVertical maps a square to its index when files are read as if they were
// ranks, so a file lookup becomes a rank-shaped table lookup.
var rotateVertical = [NumSquares]Square{
	0, 8, 16, 24, 32, 40, 48, 56,
	1, 9, 17, 25, 33, 41, 49, 57,
	2, 10, 18, 26, 34, 42, 50, 58,
	3, 11, 19, 27, 35, 43, 51, 59,
	4, 12, 20, 28, 36, 44, 52, 60,
	5, 13, 21, 29, 37, 45, 53, 61,
	6, 14, 22, 30, 38, 46, 54, 62,
	7, 15, 23, 31, 39, 47, 55, 63,
}

func RookAttackboard(bb RotatedBitboard, sq Square) Bitboard {
	rankState := bb.straight >> (sq.Rank() << 3) & 0xff
	fileState := bb.vertical >> (sq.File() << 3) & 0xff
	return rookRankAttacks[sq][rankState] | rookFileAttacks[sq][fileState]
}

var (
	rookRankAttacks [NumSquares][numLineStates]Bitboard
	rookFileAttacks [NumSquares][numLineStates]Bitboard
)

func init() {
	// For each square and each of the 256 possible occupancy patterns along its
	// rank, ray-trace outward in both directions, stopping just past the first
	// blocker (a slider can capture onto a blocker's square, hence the `break`
	// happens after including it).
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state < numLineStates; state++ {
			var tmp Bitboard
			for i := Square(sq.File()) + 1; i < 8; i++ {
				tmp |= BitMask(i + Square(sq.Rank()<<3))
				if BitMask(i)&state != 0 {
					break
				}
			}
			for i := int(sq.File()) - 1; i > -1; i-- {
				tmp |= BitMask(Square(i) + Square(sq.Rank()<<3))
				if BitMask(Square(i))&state != 0 {
					break
				}
			}
			rookRankAttacks[sq][state] = tmp
		}
	}

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state < numLineStates; state++ {
			var tmp Bitboard
			for i := Square(sq.Rank()) + 1; i < 8; i++ {
				tmp |= BitMask(Square(sq.File()) + i<<3)
				if BitMask(i)&state != 0 {
					break
				}
			}
			for i := int(sq.Rank()) - 1; i > -1; i-- {
				tmp |= BitMask(Square(sq.File()) + Square(i<<3))
				if BitMask(Square(i))&state != 0 {
					break
				}
			}
			rookFileAttacks[sq][state] = tmp
		}
	}
}

// rotateDiagL/rotateDiagR map a square to its index along the two diagonal
// directions, together with the mask/offset tables needed to carve the right
// run of bits out of the rotated occupancy word for a given square.
var rotateDiagL = [NumSquares]Square{
	28, 21, 15, 10, 6, 3, 1, 0,
	36, 29, 22, 16, 11, 7, 4, 2,
	43, 37, 30, 23, 17, 12, 8, 5,
	49, 44, 38, 31, 24, 18, 13, 9,
	54, 50, 45, 39, 32, 25, 19, 14,
	58, 55, 51, 46, 40, 33, 26, 20,
	61, 59, 56, 52, 47, 41, 34, 27,
	63, 62, 60, 57, 53, 48, 42, 35,
}

var diagLMask = [NumSquares]int{
	255, 127, 63, 31, 15, 7, 3, 1,
	127, 255, 127, 63, 31, 15, 7, 3,
	63, 127, 255, 127, 63, 31, 15, 7,
	31, 63, 127, 255, 127, 63, 31, 15,
	15, 31, 63, 127, 255, 127, 63, 31,
	7, 15, 31, 63, 127, 255, 127, 63,
	3, 7, 15, 31, 63, 127, 255, 127,
	1, 3, 7, 15, 31, 63, 127, 255,
}

var diagLOffset = [NumSquares]int{
	28, 21, 15, 10, 6, 3, 1, 0,
	36, 28, 21, 15, 10, 6, 3, 1,
	43, 36, 28, 21, 15, 10, 6, 3,
	49, 43, 36, 28, 21, 15, 10, 6,
	54, 49, 43, 36, 28, 21, 15, 10,
	58, 54, 49, 43, 36, 28, 21, 15,
	61, 58, 54, 49, 43, 36, 28, 21,
	63, 61, 58, 54, 49, 43, 36, 28,
}

var rotateDiagR = [NumSquares]Square{
	0, 1, 3, 6, 10, 15, 21, 28,
	2, 4, 7, 11, 16, 22, 29, 36,
	5, 8, 12, 17, 23, 30, 37, 43,
	9, 13, 18, 24, 31, 38, 44, 49,
	14, 19, 25, 32, 39, 45, 50, 54,
	20, 26, 33, 40, 46, 51, 55, 58,
	27, 34, 41, 47, 52, 56, 59, 61,
	35, 42, 48, 53, 57, 60, 62, 63,
}

var diagRMask = [NumSquares]int{
	1, 3, 7, 15, 31, 63, 127, 255,
	3, 7, 15, 31, 63, 127, 255, 127,
	7, 15, 31, 63, 127, 255, 127, 63,
	15, 31, 63, 127, 255, 127, 63, 31,
	31, 63, 127, 255, 127, 63, 31, 15,
	63, 127, 255, 127, 63, 31, 15, 7,
	127, 255, 127, 63, 31, 15, 7, 3,
	255, 127, 63, 31, 15, 7, 3, 1,
}

var diagROffset = [NumSquares]int{
	0, 1, 3, 6, 10, 15, 21, 28,
	1, 3, 6, 10, 15, 21, 28, 36,
	3, 6, 10, 15, 21, 28, 36, 43,
	6, 10, 15, 21, 28, 36, 43, 49,
	10, 15, 21, 28, 36, 43, 49, 54,
	15, 21, 28, 36, 43, 49, 54, 58,
	21, 28, 36, 43, 49, 54, 58, 61,
	28, 36, 43, 49, 54, 58, 61, 63,
}

func BishopAttackboard(bb RotatedBitboard, sq Square) Bitboard {
	left := int(bb.diagL>>diagLOffset[sq]) & diagLMask[sq]
	right := int(bb.diagR>>diagROffset[sq]) & diagRMask[sq]
	return bishopDiagLAttacks[sq][left] | bishopDiagRAttacks[sq][right]
}

var (
	bishopDiagLAttacks, bishopDiagRAttacks [NumSquares][numLineStates]Bitboard
)

func init() {
	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state <= Bitboard(diagLMask[sq]); state++ {
			var tmp Bitboard
			for i := 1; i < minInt(8-sq.Rank().V(), 8-sq.File().V()); i++ {
				tmp |= BitMask(Square(sq.Rank().V()+i)<<3 + Square(sq.File().V()+i))
				if BitMask(Square(minRF(sq.Rank(), sq.File())+i))&state != 0 {
					break
				}
			}
			for i := 1; i < minRF(sq.Rank(), sq.File())+1; i++ {
				tmp |= BitMask(Square(sq.Rank().V()-i)<<3 + Square(sq.File().V()-i))
				if BitMask(Square(minRF(sq.Rank(), sq.File())-i))&state != 0 {
					break
				}
			}
			bishopDiagLAttacks[sq][state] = tmp
		}
	}

	for sq := ZeroSquare; sq < NumSquares; sq++ {
		for state := EmptyBitboard; state <= Bitboard(diagRMask[sq]); state++ {
			var tmp Bitboard
			for i := 1; i < minInt(8-sq.Rank().V(), sq.File().V()+1); i++ {
				tmp |= BitMask(Square(sq.Rank().V()+i)<<3 + Square(sq.File().V()-i))
				if BitMask(Square(minRF(sq.Rank(), 7-sq.File())+i))&state != 0 {
					break
				}
			}
			for i := 1; i < minInt(sq.Rank().V()+1, 8-sq.File().V()); i++ {
				tmp |= BitMask(Square(sq.Rank().V()-i)<<3 + Square(sq.File().V()+i))
				if BitMask(Square(minRF(sq.Rank(), 7-sq.File())-i))&state != 0 {
					break
				}
			}
			bishopDiagRAttacks[sq][state] = tmp
		}
	}
}

func QueenAttackboard(bb RotatedBitboard, sq Square) Bitboard {
	return RookAttackboard(bb, sq) | BishopAttackboard(bb, sq)
}

func minRF(r Rank, f File) int {
	if int(r) < int(f) {
		return int(r)
	}
	return int(f)
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
