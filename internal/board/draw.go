package board

// Repetitions counts earlier occurrences of the current position with the
// same side to move. Only plies since the last irreversible move are
// searched; matching is by hash alone.
func (p *Position) Repetitions() int {
	return p.repetitions(MaxPlies)
}

func (p *Position) repetitions(limit int) int {
	// Search back until the last halfmoveClock reset
	n := 0
	stop := max(0, p.history.size-p.halfMoveClock)
	for i := p.history.size - 2; i >= stop; i -= 2 {
		if p.history.states[i].hash == p.hash {
			n++
			if n >= limit {
				break
			}
		}
	}
	return n
}

// HasRepeated returns true if the current position occurred at least once
// before. Search uses this to score repeated lines as draws early.
func (p *Position) HasRepeated() bool {
	return p.repetitions(1) > 0
}

// IsRepetition returns true on the third occurrence of the position
// (threefold repetition). HasRepeated is the check that fires on the
// first earlier occurrence.
func (p *Position) IsRepetition() bool {
	return p.repetitions(2) >= 2
}

// IsFiftyMoveDraw returns true once fifty full moves passed without a pawn
// move or capture.
func (p *Position) IsFiftyMoveDraw() bool {
	return p.halfMoveClock >= 100
}

// HasInsufficientMaterial returns true if neither side can checkmate:
// no pawns, rooks or queens and at most one minor piece per side.
func (p *Position) HasInsufficientMaterial() bool {
	for c := White; c <= Black; c++ {
		if p.pieces[c][Pawn]|p.pieces[c][Rook]|p.pieces[c][Queen] != 0 {
			return false
		}
		if p.pieces[c][Knight].Count()+p.pieces[c][Bishop].Count() > 1 {
			return false
		}
	}
	return true
}
