package game

import "github.com/ayusman/handpong/internal/detector"

// HandMapper turns a tracked hand into the player's paddle position: the
// wrist's camera x is mirrored into court space and the paddle glides toward
// it with exponential smoothing. With no hand this tick, the paddle holds.
type HandMapper struct{}

// Apply updates the player paddle from one hand frame.
func (HandMapper) Apply(p *Paddle, hand *detector.HandLandmarks, cfg Config) {
	if hand == nil {
		return
	}
	target := cfg.HandToCourtX(hand.Points[detector.Wrist].X)
	p.Glide(target, cfg.Smoothing, cfg.CourtWidth)
}
