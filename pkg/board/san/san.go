// Package san encodes and decodes moves in Standard Algebraic Notation.
package san

import (
	"fmt"
	"strings"

	"github.com/corvidchess/engine/pkg/board"
)

// Encode renders m in SAN relative to pos (pos must be the position the move
// is played from, turn to move). legal is the full legal move list for turn
// in pos, used to disambiguate and to detect check/mate after the move.
func Encode(pos *board.Position, turn board.Color, m board.Move, legal []board.Move) string {
	if m.IsCastle() {
		base := "O-O"
		if m.Type == board.QueenSideCastle {
			base = "O-O-O"
		}
		return base + checkSuffix(pos, turn, m)
	}

	var sb strings.Builder
	if m.Piece != board.Pawn {
		sb.WriteString(m.Piece.SANLetter())
		sb.WriteString(disambiguate(pos, turn, m, legal))
	} else if m.IsCapture() {
		sb.WriteString(strings.ToLower(m.From.File().String()))
	}

	if m.IsCapture() {
		sb.WriteString("x")
	}
	sb.WriteString(strings.ToLower(m.To.String()))

	if m.IsPromotion() {
		sb.WriteString("=")
		sb.WriteString(m.Promotion.SANLetter())
	}

	sb.WriteString(checkSuffix(pos, turn, m))
	return sb.String()
}

// disambiguate returns the file, rank, or full origin square needed to
// distinguish m from other legal moves of the same piece to the same square.
func disambiguate(pos *board.Position, turn board.Color, m board.Move, legal []board.Move) string {
	var sameFile, sameRank, ambiguous bool
	for _, other := range legal {
		if other.Piece != m.Piece || other.To != m.To || other.From == m.From {
			continue
		}
		ambiguous = true
		if other.From.File() == m.From.File() {
			sameFile = true
		}
		if other.From.Rank() == m.From.Rank() {
			sameRank = true
		}
	}
	if !ambiguous {
		return ""
	}
	switch {
	case !sameFile:
		return strings.ToLower(m.From.File().String())
	case !sameRank:
		return strings.ToLower(m.From.Rank().String())
	default:
		return strings.ToLower(m.From.String())
	}
}

func checkSuffix(pos *board.Position, turn board.Color, m board.Move) string {
	u := pos.MakeMove(turn, m)
	defer pos.UnmakeMove(turn, m, u)

	opp := turn.Opponent()
	if !pos.IsChecked(opp) {
		return ""
	}
	if pos.HasLegalMove(opp) {
		return "+"
	}
	return "#"
}

// Decode resolves a SAN move string against the legal moves available in pos
// for turn. Returns an error if the text is ambiguous or matches no legal move.
func Decode(str string, turn board.Color, legal []board.Move) (board.Move, error) {
	clean := strings.TrimRight(str, "+#")
	clean = strings.ReplaceAll(clean, "x", "")

	if clean == "O-O" {
		return findCastle(legal, board.KingSideCastle)
	}
	if clean == "O-O-O" {
		return findCastle(legal, board.QueenSideCastle)
	}

	var promo board.Piece
	if i := strings.IndexByte(clean, '='); i >= 0 {
		p, ok := board.ParsePiece(rune(clean[i+1]))
		if !ok {
			return board.Move{}, fmt.Errorf("invalid SAN %q: bad promotion", str)
		}
		promo = p
		clean = clean[:i]
	}

	piece := board.Pawn
	rest := clean
	if len(clean) > 0 {
		if p, ok := board.ParsePiece(rune(clean[0])); ok && clean[0] >= 'A' && clean[0] <= 'Z' {
			piece = p
			rest = clean[1:]
		}
	}
	if len(rest) < 2 {
		return board.Move{}, fmt.Errorf("invalid SAN %q", str)
	}

	to, err := board.ParseSquareStr(rest[len(rest)-2:])
	if err != nil {
		return board.Move{}, fmt.Errorf("invalid SAN %q: bad target square: %w", str, err)
	}
	disambig := rest[:len(rest)-2]

	var matches []board.Move
	for _, m := range legal {
		if m.Piece != piece || m.To != to || m.Promotion != promo {
			continue
		}
		if disambig != "" && !matchesDisambiguation(m.From, disambig) {
			continue
		}
		matches = append(matches, m)
	}

	switch len(matches) {
	case 0:
		return board.Move{}, fmt.Errorf("no legal move matches SAN %q", str)
	case 1:
		return matches[0], nil
	default:
		return board.Move{}, fmt.Errorf("ambiguous SAN %q", str)
	}
}

func matchesDisambiguation(from board.Square, disambig string) bool {
	return strings.Contains(strings.ToLower(from.String()), strings.ToLower(disambig))
}

func findCastle(legal []board.Move, t board.MoveType) (board.Move, error) {
	for _, m := range legal {
		if m.Type == t {
			return m, nil
		}
	}
	return board.Move{}, fmt.Errorf("castle not legal in this position")
}
