package game

// Ball is the game ball. During the Serving phase its velocity is exactly
// zero and its position is pinned to the serving paddle; during Active play
// it advances by simple explicit Euler integration once per tick.
type Ball struct {
	X, Y   float64
	DX, DY float64
}

// PinToServe places the ball on the face of the serving side's paddle and
// zeroes its velocity.
func (b *Ball) PinToServe(server Side, paddleX float64, cfg Config) {
	b.X = paddleX
	b.DX = 0
	b.DY = 0
	if server == Player {
		b.Y = cfg.CourtHeight - cfg.PaddleDepth - cfg.BallRadius
	} else {
		b.Y = cfg.PaddleDepth + cfg.BallRadius
	}
}

// Launch sends a pinned ball toward the receiving side. drift is the random
// horizontal bias, bounded by cfg.ServeDriftMax at the call site.
func (b *Ball) Launch(server Side, drift float64, cfg Config) {
	b.DX = drift
	if server == Player {
		b.DY = -cfg.ServeSpeed
	} else {
		b.DY = cfg.ServeSpeed
	}
}

// Step advances the ball one tick and reflects it off the side walls. The
// horizontal reflection is perfectly elastic.
func (b *Ball) Step(cfg Config) {
	b.X += b.DX
	b.Y += b.DY

	if b.X-cfg.BallRadius <= 0 {
		b.X = cfg.BallRadius
		b.DX = -b.DX
	} else if b.X+cfg.BallRadius >= cfg.CourtWidth {
		b.X = cfg.CourtWidth - cfg.BallRadius
		b.DX = -b.DX
	}
}

// HitPaddle tests and resolves a collision with side's paddle. A hit requires
// the ball to be moving toward that side, inside the paddle's depth band, and
// horizontally overlapping the paddle. On hit the vertical velocity is
// negated and amplified by RallySpeedup, the horizontal velocity is set from
// the normalized hit offset scaled by SpinFactor, and the ball is moved just
// outside the band so the same hit cannot re-trigger next tick.
func (b *Ball) HitPaddle(side Side, paddle Paddle, cfg Config) bool {
	reach := paddle.HalfWidth + cfg.BallRadius
	if b.X < paddle.X-reach || b.X > paddle.X+reach {
		return false
	}

	if side == Opponent {
		band := cfg.PaddleDepth
		if b.DY >= 0 || b.Y-cfg.BallRadius > band {
			return false
		}
		b.DY = -b.DY * cfg.RallySpeedup
		b.Y = band + cfg.BallRadius
	} else {
		band := cfg.CourtHeight - cfg.PaddleDepth
		if b.DY <= 0 || b.Y+cfg.BallRadius < band {
			return false
		}
		b.DY = -b.DY * cfg.RallySpeedup
		b.Y = band - cfg.BallRadius
	}

	impact := (b.X - paddle.X) / paddle.HalfWidth
	b.DX = impact * cfg.SpinFactor

	return true
}

// OutOfBounds reports whether the ball has crossed the top or bottom edge and
// which side is awarded the point: a ball leaving the top edge is a point for
// the bottom (player) side and vice versa.
func (b *Ball) OutOfBounds(cfg Config) (winner Side, out bool) {
	if b.Y < 0 {
		return Player, true
	}
	if b.Y > cfg.CourtHeight {
		return Opponent, true
	}
	return Player, false
}
