package board

import (
	"errors"
	"fmt"
)

// ErrIllegalMove marks a move that fails legality against a specific
// position (as opposed to ParseMove's "invalid move" parse failures), so
// callers can distinguish the two with errors.Is.
var ErrIllegalMove = errors.New("illegal move")

// MoveType classifies a move for zobrist updates, undo bookkeeping and SEE/MVV-LVA
// ordering. The half-move clock is reset by anything other than Normal or castling.
type MoveType uint8

const (
	Normal MoveType = iota
	Push             // single pawn advance
	Jump             // double pawn advance (sets the en passant target)
	EnPassant        // pawn capture of a square it does not occupy
	KingSideCastle
	QueenSideCastle
	Capture
	Promotion
	CapturePromotion
)

func (t MoveType) String() string {
	switch t {
	case Normal:
		return "normal"
	case Push:
		return "push"
	case Jump:
		return "jump"
	case EnPassant:
		return "ep"
	case KingSideCastle:
		return "O-O"
	case QueenSideCastle:
		return "O-O-O"
	case Capture:
		return "capture"
	case Promotion:
		return "promotion"
	case CapturePromotion:
		return "capture-promotion"
	default:
		return "?"
	}
}

// Move is a verbose, not-necessarily-legal move: enough information to apply and
// reverse it without consulting the position. Passed by value throughout search
// to avoid per-node allocation.
type Move struct {
	Type      MoveType
	From, To  Square
	Piece     Piece // piece moved; needed by SEE/MVV-LVA and zobrist updates
	Promotion Piece // desired piece for promotion, NoPiece otherwise
	Capture   Piece // captured piece, NoPiece otherwise
}

// ParseMove parses a move in UCI long algebraic notation, e.g. "e2e4" or "e7e8q".
// The result carries From/To/Promotion only; Piece/Capture/Type are filled in by
// whatever generates or applies it against a position.
func ParseMove(str string) (Move, error) {
	runes := []rune(str)
	if len(runes) < 4 || len(runes) > 5 {
		return Move{}, fmt.Errorf("invalid move: %q", str)
	}

	from, err := ParseSquare(runes[0], runes[1])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: bad from-square: %w", str, err)
	}
	to, err := ParseSquare(runes[2], runes[3])
	if err != nil {
		return Move{}, fmt.Errorf("invalid move %q: bad to-square: %w", str, err)
	}

	m := Move{From: from, To: to}
	if len(runes) == 5 {
		promo, ok := ParsePiece(runes[4])
		if !ok || promo == Pawn || promo == King {
			return Move{}, fmt.Errorf("invalid move %q: bad promotion", str)
		}
		m.Promotion = promo
	}
	return m, nil
}

// Equals compares the squares and promotion only, so a move parsed from user
// input can be matched against a generated move that also carries Piece/Capture.
func (m Move) Equals(o Move) bool {
	return m.From == o.From && m.To == o.To && m.Promotion == o.Promotion
}

func (m Move) IsCapture() bool {
	return m.Type == Capture || m.Type == CapturePromotion || m.Type == EnPassant
}

func (m Move) IsPromotion() bool {
	return m.Type == Promotion || m.Type == CapturePromotion
}

func (m Move) IsCastle() bool {
	return m.Type == KingSideCastle || m.Type == QueenSideCastle
}

// IsQuiet reports whether the move is neither a capture nor a promotion: the
// class of moves eligible for killer/history heuristics and for LMR.
func (m Move) IsQuiet() bool {
	return !m.IsCapture() && !m.IsPromotion()
}

// String renders the move in UCI long algebraic notation.
func (m Move) String() string {
	if m.Promotion.IsValid() {
		return fmt.Sprintf("%v%v%v", lower(m.From.String()), lower(m.To.String()), m.Promotion)
	}
	return fmt.Sprintf("%v%v", lower(m.From.String()), lower(m.To.String()))
}

func lower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// CastlingRookMove returns the rook's from/to squares for a castling move.
func (m Move) CastlingRookMove() (from, to Square, ok bool) {
	switch m.Type {
	case KingSideCastle:
		if m.From.Rank() == Rank1 {
			return H1, F1, true
		}
		return H8, F8, true
	case QueenSideCastle:
		if m.From.Rank() == Rank1 {
			return A1, D1, true
		}
		return A8, D8, true
	default:
		return 0, 0, false
	}
}

// EnPassantCapture returns the square of the pawn captured en passant.
func (m Move) EnPassantCapture() (Square, bool) {
	if m.Type != EnPassant {
		return 0, false
	}
	if m.To.Rank() == Rank6 {
		return NewSquare(m.To.File(), Rank5), true
	}
	return NewSquare(m.To.File(), Rank4), true
}

// EnPassantTarget returns the square a subsequent en passant capture would use,
// if this move is a pawn double push; false otherwise.
func (m Move) EnPassantTarget() (Square, bool) {
	if m.Type != Jump {
		return ZeroSquare, false
	}
	if m.To.Rank() == Rank4 {
		return NewSquare(m.To.File(), Rank3), true
	}
	return NewSquare(m.To.File(), Rank6), true
}

// CastlingRightsLost returns the castling rights that this move revokes: moving
// the king revokes both of that side's rights; moving a rook, or capturing an
// enemy rook, on its home square revokes that one right.
func (m Move) CastlingRightsLost() Castling {
	var lost Castling
	if m.Piece == King {
		if m.From.Rank() == Rank1 {
			lost |= WhiteKingSideCastle | WhiteQueenSideCastle
		} else {
			lost |= BlackKingSideCastle | BlackQueenSideCastle
		}
	}
	lost |= rookCastlingRight(m.From)
	if m.IsCapture() {
		lost |= rookCastlingRight(m.To)
	}
	return lost
}

func rookCastlingRight(sq Square) Castling {
	switch sq {
	case A1:
		return WhiteQueenSideCastle
	case H1:
		return WhiteKingSideCastle
	case A8:
		return BlackQueenSideCastle
	case H8:
		return BlackKingSideCastle
	default:
		return 0
	}
}
