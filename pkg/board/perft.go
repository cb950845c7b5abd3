package board

// Perft counts the leaf nodes of the legal move tree to the given depth, the
// standard move-generator correctness check: the counts for the standard
// starting position are well known for depths 0 through 6 (1, 20, 400, 8902,
// 197281, 4865609, 119060324) and any divergence pinpoints a move generation
// or make/unmake bug.
func Perft(pos *Position, turn Color, depth int) uint64 {
	if depth == 0 {
		return 1
	}

	var nodes uint64
	for _, m := range pos.PseudoLegalMoves(turn) {
		u := pos.MakeMove(turn, m)
		if !pos.IsChecked(turn) {
			nodes += Perft(pos, turn.Opponent(), depth-1)
		}
		pos.UnmakeMove(turn, m, u)
	}
	return nodes
}

// Divide is Perft split by the root's immediate moves, for bisecting a
// divergence against a reference engine's per-move counts.
func Divide(pos *Position, turn Color, depth int) map[string]uint64 {
	ret := map[string]uint64{}
	if depth == 0 {
		return ret
	}

	for _, m := range pos.PseudoLegalMoves(turn) {
		u := pos.MakeMove(turn, m)
		if !pos.IsChecked(turn) {
			ret[m.String()] = Perft(pos, turn.Opponent(), depth-1)
		}
		pos.UnmakeMove(turn, m, u)
	}
	return ret
}
