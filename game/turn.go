package game

// Turn is the outcome of turn resolution: either a player to move or the end of
// the game.
type Turn struct {
	Player Player  // Side to move, only meaningful while !Over
	Over   bool    // Neither side can move
	Winner Outcome // Set once Over
	Passed bool    // The candidate had no move and was skipped
}

// Resolve decides who moves next on b, starting from candidate (normally the
// opponent of whoever just moved). A candidate without moves is skipped in
// favour of its opponent; when neither can move the game is over and the disc
// majority wins.
func Resolve(b Board, candidate Player) Turn {
	if b.HasLegalMove(candidate) {
		return Turn{Player: candidate}
	}
	if other := candidate.Opponent(); b.HasLegalMove(other) {
		return Turn{Player: other, Passed: true}
	}
	return Turn{Over: true, Winner: Winner(b.DiscCounts())}
}

// Winner compares disc counts.
func Winner(c Counts) Outcome {
	switch {
	case c.Black > c.White:
		return BlackWins
	case c.White > c.Black:
		return WhiteWins
	default:
		return Draw
	}
}
