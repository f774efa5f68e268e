package game

// Paddle is one side's paddle: a horizontal position on a fixed depth band.
type Paddle struct {
	X         float64
	HalfWidth float64
}

// Glide moves the paddle toward target with exponential smoothing, then
// clamps to the court. Used for the player's hand-driven paddle.
func (p *Paddle) Glide(target, smoothing, courtWidth float64) {
	p.X += (target - p.X) * smoothing
	p.clamp(courtWidth)
}

// Step moves the paddle toward target at most maxStep, then clamps. Used for
// the rate-limited opponent paddle.
func (p *Paddle) Step(target, maxStep, courtWidth float64) {
	d := target - p.X
	switch {
	case d > maxStep:
		p.X += maxStep
	case d < -maxStep:
		p.X -= maxStep
	default:
		p.X = target
	}
	p.clamp(courtWidth)
}

func (p *Paddle) clamp(courtWidth float64) {
	if p.X < p.HalfWidth {
		p.X = p.HalfWidth
	}
	if p.X > courtWidth-p.HalfWidth {
		p.X = courtWidth - p.HalfWidth
	}
}
