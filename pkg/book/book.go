// Package book implements a small opening book: a set of named lines keyed
// by the Zobrist hash of the positions they pass through, with weighted
// random selection among the replies known at a given position.
package book

import (
	"fmt"
	"math/rand"

	"github.com/corvidchess/engine/pkg/board"
	"github.com/corvidchess/engine/pkg/board/fen"
	"github.com/corvidchess/engine/pkg/board/san"
)

// Line is one named opening line, given in SAN from the initial position,
// e.g. Moves: []string{"e4", "e5", "Nf3"}.
type Line struct {
	ECO    string
	Name   string
	Moves  []string
	Weight int // defaults to 1 if <= 0
}

type candidate struct {
	move   board.Move
	weight int
}

type entry struct {
	candidates []candidate
	eco        string
	name       string
}

// Book is a read-only registry of opening lines, keyed by position hash for
// O(1) lookup. Construction is the only way to populate it; there is no
// runtime mutation API.
type Book struct {
	zt        *board.ZobristTable
	positions map[board.ZobristHash]*entry
}

// New builds a Book from a set of lines, replaying each against the initial
// position to validate every move and accumulate weights for transposing
// lines that reach the same position.
func New(zt *board.ZobristTable, lines []Line) (*Book, error) {
	b := &Book{zt: zt, positions: map[board.ZobristHash]*entry{}}
	for _, line := range lines {
		if err := b.addLine(line); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Book) addLine(line Line) error {
	weight := line.Weight
	if weight <= 0 {
		weight = 1
	}

	pos, turn, noprogress, fullmoves, err := fen.Decode(fen.Initial)
	if err != nil {
		return fmt.Errorf("book: %w", err)
	}
	bd := board.NewBoard(b.zt, pos, turn, noprogress, fullmoves)

	for _, str := range line.Moves {
		legal := bd.Position().PseudoLegalMoves(bd.Turn())
		m, err := san.Decode(str, bd.Turn(), legal)
		if err != nil {
			return fmt.Errorf("book: line %v: %w", line.Moves, err)
		}

		hash := bd.Hash()
		if !bd.PushMove(m) {
			return fmt.Errorf("book: line %v: move %v leaves mover in check", line.Moves, str)
		}
		b.record(hash, m, weight, line.ECO, line.Name)
	}
	return nil
}

func (b *Book) record(hash board.ZobristHash, m board.Move, weight int, eco, name string) {
	e, ok := b.positions[hash]
	if !ok {
		e = &entry{}
		b.positions[hash] = e
	}
	if e.eco == "" {
		e.eco = eco
		e.name = name
	}
	for i := range e.candidates {
		if e.candidates[i].move.Equals(m) {
			e.candidates[i].weight += weight
			return
		}
	}
	e.candidates = append(e.candidates, candidate{move: m, weight: weight})
}

// Find samples a reply for the board's current position using rnd, weighted
// by the summed Weight of the lines that registered each candidate move. It reports the ECO/name
// attribution of the line the position was reached through, and false once
// the position falls outside the book (the caller should stop consulting it
// for the rest of the game).
func (b *Book) Find(bd *board.Board, rnd *rand.Rand) (m board.Move, eco, name string, ok bool) {
	e, found := b.positions[bd.Hash()]
	if !found || len(e.candidates) == 0 {
		return board.Move{}, "", "", false
	}

	total := 0
	for _, c := range e.candidates {
		total += c.weight
	}
	pick := rnd.Intn(total)
	for _, c := range e.candidates {
		if pick < c.weight {
			return c.move, e.eco, e.name, true
		}
		pick -= c.weight
	}
	last := e.candidates[len(e.candidates)-1]
	return last.move, e.eco, e.name, true
}

// Size returns the number of distinct positions registered in the book.
func (b *Book) Size() int {
	return len(b.positions)
}
