// Package detector provides hand tracking interfaces and landmark types.
package detector

import "math"

// Hand landmark indices following MediaPipe convention.
// See: https://developers.google.com/mediapipe/solutions/vision/hand_landmarker
const (
	Wrist        = 0
	ThumbCMC     = 1
	ThumbMCP     = 2
	ThumbIP      = 3
	ThumbTip     = 4
	IndexMCP     = 5
	IndexPIP     = 6
	IndexDIP     = 7
	IndexTip     = 8
	MiddleMCP    = 9
	MiddlePIP    = 10
	MiddleDIP    = 11
	MiddleTip    = 12
	RingMCP      = 13
	RingPIP      = 14
	RingDIP      = 15
	RingTip      = 16
	PinkyMCP     = 17
	PinkyPIP     = 18
	PinkyDIP     = 19
	PinkyTip     = 20
	NumLandmarks = 21
)

// FingerTips lists the four non-thumb fingertip indices, used by the fist check.
var FingerTips = [4]int{IndexTip, MiddleTip, RingTip, PinkyTip}

// Point3D is one landmark in normalized camera space: x and y in [0,1] with the
// origin at the top-left of the un-mirrored camera frame, z is relative depth.
// Camera space must never be mixed with court coordinates; the only crossing is
// game.Court.HandToCourtX.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// HandLandmarks is one tracked hand: exactly 21 landmarks in camera space.
// The fixed-size array makes a wrong landmark count unrepresentable; the decode
// boundary in mediapipe.go rejects malformed payloads before constructing one.
type HandLandmarks struct {
	Points     [NumLandmarks]Point3D `json:"points"`
	Handedness string                `json:"handedness"` // "Left" or "Right"
	Score      float64               `json:"score"`
}

// PlanarDistance is the Euclidean distance between two landmarks in the camera
// x/y plane. Gesture predicates ignore z: MediaPipe's relative depth is far
// noisier than its image-plane coordinates.
func PlanarDistance(a, b Point3D) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}
