package game

import "math/rand"

// Opponent computes the computer paddle's target using a noisy intercept
// heuristic. The aim error is cached, never redrawn per tick: it refreshes at
// exactly two events, serve start (wide range) and the player's return
// (narrow range), so each rally leg carries one fixed misjudgment.
type Opponent struct {
	aimError float64
	rng      *rand.Rand
}

// NewOpponent creates an opponent using the given random source.
func NewOpponent(rng *rand.Rand) *Opponent {
	return &Opponent{rng: rng}
}

// OnServe redraws the cached aim error from the wide serve range.
func (o *Opponent) OnServe(cfg Config) {
	o.aimError = o.uniform(cfg.ServeErrorRange)
}

// OnPlayerHit redraws the cached aim error from the narrow return range.
func (o *Opponent) OnPlayerHit(cfg Config) {
	o.aimError = o.uniform(cfg.ReturnErrorRange)
}

// AimError exposes the cached error for snapshots and tests.
func (o *Opponent) AimError() float64 {
	return o.aimError
}

// Target computes this tick's paddle target. A ball receding during active
// play sends the paddle back to center; otherwise the paddle shadows the ball
// plus the cached error, including while a serve is being set up.
func (o *Opponent) Target(ball Ball, phase Phase, cfg Config) float64 {
	if phase == PhaseActive && ball.DY > 0 {
		return cfg.CenterX()
	}
	return ball.X + o.aimError
}

// Advance steps the paddle toward target at the configured rate limit.
func (o *Opponent) Advance(p *Paddle, target float64, cfg Config) {
	p.Step(target, cfg.OpponentSpeed, cfg.CourtWidth)
}

func (o *Opponent) uniform(bound float64) float64 {
	return (o.rng.Float64()*2 - 1) * bound
}
