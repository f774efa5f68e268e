// Package gesture classifies tracked hand poses into the discrete signals the
// game reacts to.
package gesture

import (
	"github.com/ayusman/handpong/internal/detector"
)

// Default thresholds, in normalized camera units.
const (
	// DefaultFistThreshold bounds the mean fingertip-to-wrist distance of a
	// closed hand. A closed hand pulls every fingertip toward the wrist
	// regardless of hand size or distance from the camera.
	DefaultFistThreshold = 0.13
	// DefaultCurlThreshold bounds the index tip-to-knuckle distance of a
	// curled index finger, the serve trigger.
	DefaultCurlThreshold = 0.07
)

// Signals are the boolean predicates derived from a single hand frame.
// The zero value means "nothing recognized" and is what callers get when no
// hand is present.
type Signals struct {
	// Fist is true when the hand is fully closed.
	Fist bool
	// IndexCurl is true when the index finger is curled back to its knuckle.
	// A fist also curls the index finger, so callers that need the trigger
	// distinct from a fist must check Fist first.
	IndexCurl bool
}

// Classifier turns hand landmarks into Signals using fixed pose thresholds.
type Classifier struct {
	// FistThreshold: a hand is a fist iff the mean planar distance from the
	// four non-thumb fingertips to the wrist is strictly below it. Exactly at
	// the threshold is not a fist; the boundary is `<`, not `<=`.
	FistThreshold float64
	// CurlThreshold: the index finger is curled iff the planar distance from
	// its tip to its MCP knuckle is strictly below it.
	CurlThreshold float64
}

// NewClassifier creates a Classifier with the default thresholds.
func NewClassifier() *Classifier {
	return &Classifier{
		FistThreshold: DefaultFistThreshold,
		CurlThreshold: DefaultCurlThreshold,
	}
}

// Classify computes the gesture signals for one hand frame.
// A nil hand yields the zero Signals.
func (c *Classifier) Classify(hand *detector.HandLandmarks) Signals {
	if hand == nil {
		return Signals{}
	}

	wrist := hand.Points[detector.Wrist]

	var total float64
	for _, tip := range detector.FingerTips {
		total += detector.PlanarDistance(hand.Points[tip], wrist)
	}
	mean := total / float64(len(detector.FingerTips))

	curl := detector.PlanarDistance(
		hand.Points[detector.IndexTip],
		hand.Points[detector.IndexMCP],
	)

	return Signals{
		Fist:      mean < c.FistThreshold,
		IndexCurl: curl < c.CurlThreshold,
	}
}
