package gesture

// DefaultLostAfter is the number of consecutive hand-free ticks before the
// hand counts as lost: about half a second at the 30 Hz game tick.
const DefaultLostAfter = 15

// Presence debounces hand visibility. The tracking source updates slower than
// the game tick, so single missing frames are routine and must not flicker
// the "hand lost" state; detection, by contrast, takes effect immediately.
type Presence struct {
	// LostAfter is the consecutive-missing-tick count that declares the hand
	// lost. Must be > 0.
	LostAfter int

	missing  int
	present  bool
	everSeen bool
}

// NewPresence creates a Presence tracker with the default debounce window.
func NewPresence() *Presence {
	return &Presence{LostAfter: DefaultLostAfter}
}

// Observe records one tick's detection outcome and returns whether the hand
// was newly acquired this tick.
func (p *Presence) Observe(detected bool) (acquired bool) {
	if detected {
		p.missing = 0
		if !p.present {
			p.present = true
			p.everSeen = true
			return true
		}
		return false
	}

	p.missing++
	if p.present && p.missing > p.LostAfter {
		p.present = false
	}
	return false
}

// Present reports whether the hand currently counts as visible.
func (p *Presence) Present() bool {
	return p.present
}

// EverSeen reports whether a hand has been detected at least once since the
// tracker was created.
func (p *Presence) EverSeen() bool {
	return p.everSeen
}

// Reset clears all presence state.
func (p *Presence) Reset() {
	p.missing = 0
	p.present = false
	p.everSeen = false
}
