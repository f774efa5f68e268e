// Package game implements the table-tennis simulation: ball physics, paddle
// control, the computer opponent, and the serve/score/turn state machine.
package game

import "errors"

// Side identifies one end of the court.
type Side int

const (
	// Player is the human side, at the bottom edge of the court.
	Player Side = iota
	// Opponent is the computer side, at the top edge.
	Opponent
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == Player {
		return Opponent
	}
	return Player
}

func (s Side) String() string {
	if s == Player {
		return "player"
	}
	return "opponent"
}

// ServeTriggerPolicy selects when the serve gesture is accepted during the
// serve countdown. The two observed game variants disagree here, so it is an
// explicit configuration choice rather than a hard-coded behavior.
type ServeTriggerPolicy int

const (
	// TriggerDuringCountdown accepts the serve gesture as soon as the
	// Serving phase begins.
	TriggerDuringCountdown ServeTriggerPolicy = iota
	// TriggerAfterCountdown ignores the serve gesture until the countdown
	// has run out.
	TriggerAfterCountdown
)

// Config collects every tunable of the simulation. Wall reflection, rally
// speed-up and spin jointly determine rally length, so the values are tuned
// together; none of them appear as inline literals in the physics code.
type Config struct {
	// Court dimensions in pixels. The court is taller than wide play-wise:
	// the ball travels vertically between the paddles.
	CourtWidth  float64 `json:"courtWidth"`
	CourtHeight float64 `json:"courtHeight"`

	// PaddleHalfWidth is half the horizontal paddle extent.
	PaddleHalfWidth float64 `json:"paddleHalfWidth"`
	// PaddleDepth is the distance of each paddle's face from its court edge.
	// The ball bounces when it enters this band.
	PaddleDepth float64 `json:"paddleDepth"`

	BallRadius float64 `json:"ballRadius"`
	// ServeSpeed is the vertical launch speed of a serve, px/tick.
	ServeSpeed float64 `json:"serveSpeed"`
	// ServeDriftMax bounds the random horizontal bias given to a serve.
	ServeDriftMax float64 `json:"serveDriftMax"`
	// RallySpeedup multiplies the vertical speed on every paddle hit (> 1).
	RallySpeedup float64 `json:"rallySpeedup"`
	// SpinFactor scales the normalized hit offset into horizontal velocity.
	SpinFactor float64 `json:"spinFactor"`

	// Smoothing is the exponential smoothing factor applied per tick when
	// the player's paddle glides toward the hand target.
	Smoothing float64 `json:"smoothing"`

	// OpponentSpeed is the opponent paddle's maximum step per tick.
	OpponentSpeed float64 `json:"opponentSpeed"`
	// ServeErrorRange bounds the opponent's aim error drawn at serve start.
	ServeErrorRange float64 `json:"serveErrorRange"`
	// ReturnErrorRange bounds the narrower aim error drawn when the player
	// returns the ball.
	ReturnErrorRange float64 `json:"returnErrorRange"`

	WinningScore   int `json:"winningScore"`
	DeuceThreshold int `json:"deuceThreshold"`
	// ServesPerTurn is how many consecutive points one side serves below
	// deuce; at deuce the server always switches after a single point.
	ServesPerTurn int `json:"servesPerTurn"`

	// HandLostAfter is the presence debounce window in ticks.
	HandLostAfter int `json:"handLostAfter"`
	// CountdownTicks is the length of the serve countdown in ticks.
	CountdownTicks int `json:"countdownTicks"`
	// OpponentServeDelay is how many Serving ticks pass before the opponent
	// serves on its own.
	OpponentServeDelay int `json:"opponentServeDelay"`

	ServeTrigger ServeTriggerPolicy `json:"serveTrigger"`
}

// DefaultConfig returns the tuning used by the shipped game: a 720x960 court
// at a 30 Hz tick.
func DefaultConfig() Config {
	return Config{
		CourtWidth:  720,
		CourtHeight: 960,

		PaddleHalfWidth: 70,
		PaddleDepth:     36,

		BallRadius:    10,
		ServeSpeed:    7,
		ServeDriftMax: 2.5,
		RallySpeedup:  1.05,
		SpinFactor:    5.5,

		Smoothing: 0.25,

		OpponentSpeed:    6.5,
		ServeErrorRange:  90,
		ReturnErrorRange: 45,

		WinningScore:   11,
		DeuceThreshold: 10,
		ServesPerTurn:  2,

		HandLostAfter:      15,
		CountdownTicks:     90,
		OpponentServeDelay: 45,

		ServeTrigger: TriggerDuringCountdown,
	}
}

// Validate rejects tunings that would break the simulation.
func (c Config) Validate() error {
	switch {
	case c.CourtWidth <= 0 || c.CourtHeight <= 0:
		return errors.New("court dimensions must be positive")
	case c.PaddleHalfWidth <= 0 || c.PaddleHalfWidth*2 > c.CourtWidth:
		return errors.New("paddle must be wider than zero and fit the court")
	case c.PaddleDepth <= 0 || c.BallRadius <= 0:
		return errors.New("paddle depth and ball radius must be positive")
	case c.ServeSpeed <= 0:
		return errors.New("serve speed must be positive")
	case c.RallySpeedup < 1:
		return errors.New("rally speedup must not slow the ball")
	case c.Smoothing <= 0 || c.Smoothing > 1:
		return errors.New("smoothing must be in (0, 1]")
	case c.OpponentSpeed <= 0:
		return errors.New("opponent speed must be positive")
	case c.WinningScore < 1:
		return errors.New("winning score must be at least 1")
	case c.DeuceThreshold < 0 || c.DeuceThreshold >= c.WinningScore:
		return errors.New("deuce threshold must sit below the winning score")
	case c.ServesPerTurn < 1:
		return errors.New("serves per turn must be at least 1")
	case c.HandLostAfter < 1:
		return errors.New("hand debounce window must be at least one tick")
	case c.CountdownTicks < 0 || c.OpponentServeDelay < 0:
		return errors.New("countdown and serve delay must not be negative")
	case c.ServeTrigger != TriggerDuringCountdown && c.ServeTrigger != TriggerAfterCountdown:
		return errors.New("unknown serve trigger policy")
	}
	return nil
}

// HandToCourtX converts a normalized camera x coordinate to a court x
// coordinate. The displayed camera view is mirrored for natural interaction
// while landmarks arrive un-mirrored, so the horizontal axis flips here; this
// is the only camera-to-court crossing in the codebase.
func (c Config) HandToCourtX(camX float64) float64 {
	return (1 - camX) * c.CourtWidth
}

// CenterX is the horizontal middle of the court.
func (c Config) CenterX() float64 {
	return c.CourtWidth / 2
}
