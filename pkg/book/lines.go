package book

// Lines is the curated registry of named openings and their early replies,
// passed to New to build the default book. Weights favor the main line of
// each opening over its sidelines. Moves are given in SAN, matching the
// notation the rest of the engine's external interfaces use.
var Lines = []Line{
	{ECO: "C50", Name: "Italian Game", Weight: 3, Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bc4"}},
	{ECO: "C60", Name: "Ruy Lopez", Weight: 3, Moves: []string{"e4", "e5", "Nf3", "Nc6", "Bb5"}},
	{ECO: "C42", Name: "Petrov's Defense", Weight: 2, Moves: []string{"e4", "e5", "Nf3", "Nf6"}},
	{ECO: "C20", Name: "King's Pawn Game", Weight: 1, Moves: []string{"e4", "e5"}},

	{ECO: "B01", Name: "Scandinavian Defense", Weight: 2, Moves: []string{"e4", "d5"}},
	{ECO: "B10", Name: "Caro-Kann Defense", Weight: 2, Moves: []string{"e4", "c6"}},
	{ECO: "B20", Name: "Sicilian Defense", Weight: 3, Moves: []string{"e4", "c5"}},
	{ECO: "B27", Name: "Sicilian, Hyperaccelerated Dragon", Weight: 2, Moves: []string{"e4", "c5", "Nf3", "g6"}},
	{ECO: "C00", Name: "French Defense", Weight: 2, Moves: []string{"e4", "e6"}},

	{ECO: "D06", Name: "Queen's Gambit", Weight: 3, Moves: []string{"d4", "d5", "c4"}},
	{ECO: "D30", Name: "Queen's Gambit Declined", Weight: 2, Moves: []string{"d4", "d5", "c4", "e6"}},
	{ECO: "D10", Name: "Slav Defense", Weight: 2, Moves: []string{"d4", "d5", "c4", "c6"}},
	{ECO: "E60", Name: "King's Indian Defense", Weight: 2, Moves: []string{"d4", "Nf6", "c4", "g6"}},
	{ECO: "D70", Name: "Grunfeld Defense", Weight: 1, Moves: []string{"d4", "Nf6", "c4", "g6", "Nc3", "d5"}},
	{ECO: "A10", Name: "English Opening", Weight: 2, Moves: []string{"c4"}},
	{ECO: "A04", Name: "Reti Opening", Weight: 1, Moves: []string{"Nf3"}},
}
