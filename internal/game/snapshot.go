package game

// Snapshot is a read-only copy of the match state for presentation: the
// renderer and WebSocket clients consume these, never the live Match.
type Snapshot struct {
	Phase         string  `json:"phase"`
	PlayerScore   int     `json:"playerScore"`
	OpponentScore int     `json:"opponentScore"`
	Server        string  `json:"server"`
	BallX         float64 `json:"ballX"`
	BallY         float64 `json:"ballY"`
	BallDX        float64 `json:"ballDX"`
	BallDY        float64 `json:"ballDY"`
	PlayerX       float64 `json:"playerX"`
	OpponentX     float64 `json:"opponentX"`
	HandPresent   bool    `json:"handPresent"`

	// The remaining fields are display state filled in by the host loop,
	// not simulation state.

	// Countdown is the UI-facing serve countdown value.
	Countdown int `json:"countdown"`
	// Session identifies one engine run, so a renderer can tell a restart
	// from a new game.
	Session string `json:"session"`
	// HandX and HandY are the mirrored wrist position in court coordinates,
	// for drawing a hand cursor. Zero when no hand is tracked.
	HandX float64 `json:"handX"`
	HandY float64 `json:"handY"`
}

// Snapshot copies the presentable state of the match.
func (m *Match) Snapshot() Snapshot {
	return Snapshot{
		Phase:         m.Phase.String(),
		PlayerScore:   m.PlayerScore,
		OpponentScore: m.OpponentScore,
		Server:        m.Rotation.Server.String(),
		BallX:         m.Ball.X,
		BallY:         m.Ball.Y,
		BallDX:        m.Ball.DX,
		BallDY:        m.Ball.DY,
		PlayerX:       m.PlayerPaddle.X,
		OpponentX:     m.OpponentPaddle.X,
		HandPresent:   m.presence.Present(),
	}
}
