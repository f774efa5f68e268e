package game

// Rotation tracks who serves and for how many more points, following
// tournament rules: the server switches every ServesPerTurn points, or after
// every single point once both sides have reached the deuce threshold.
type Rotation struct {
	Server Side
	count  int
}

// Winner reports the match winner when the given post-point scores satisfy
// the win condition: reaching WinningScore with a lead of at least two.
func Winner(player, opponent int, cfg Config) (Side, bool) {
	lead := player - opponent
	if lead < 0 {
		lead = -lead
	}
	if lead < 2 {
		return Player, false
	}
	if player >= cfg.WinningScore && player > opponent {
		return Player, true
	}
	if opponent >= cfg.WinningScore && opponent > player {
		return Opponent, true
	}
	return Player, false
}

// Advance applies one completed point. player and opponent are the post-point
// scores; they decide whether the deuce rule is in effect. The serve counter
// resets to zero whenever the server changes.
func (r *Rotation) Advance(player, opponent int, cfg Config) {
	r.count++

	turn := cfg.ServesPerTurn
	if player >= cfg.DeuceThreshold && opponent >= cfg.DeuceThreshold {
		turn = 1
	}

	if r.count >= turn {
		r.Server = r.Server.Other()
		r.count = 0
	}
}

// Reset restarts the rotation with the given first server.
func (r *Rotation) Reset(first Side) {
	r.Server = first
	r.count = 0
}
