package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// MockDetector is a test implementation of the Detector interface.
// It allows tests to script the detection results frame by frame, including
// while a pipeline goroutine is reading it.
type MockDetector struct {
	mu    sync.Mutex
	hands []HandLandmarks
	queue [][]HandLandmarks
	err   error
}

// NewMockDetector creates a new MockDetector instance.
func NewMockDetector() *MockDetector {
	return &MockDetector{}
}

// SetHands sets the hands that will be returned by every Detect call.
func (m *MockDetector) SetHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hands = hands
	m.queue = nil
}

// QueueHands appends a per-call result; once queued results are exhausted
// Detect falls back to the hands set via SetHands.
func (m *MockDetector) QueueHands(hands []HandLandmarks) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue = append(m.queue, hands)
}

// SetError sets the error that will be returned by Detect.
func (m *MockDetector) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Detect returns the pre-configured hands or error.
func (m *MockDetector) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.err != nil {
		return nil, m.err
	}
	if len(m.queue) > 0 {
		hands := m.queue[0]
		m.queue = m.queue[1:]
		return hands, nil
	}
	return m.hands, nil
}

// Close is a no-op for the mock detector.
func (m *MockDetector) Close() error {
	return nil
}

// Fixture geometry, in normalized camera units. An adult hand at typical
// webcam distance spans roughly a quarter of the frame.
const (
	fixtureOpenReach = 0.22 // fingertip to wrist, fingers extended
	fixtureFistReach = 0.06 // fingertip to wrist, hand closed
	fixtureCurlGap   = 0.03 // index tip to index MCP, finger curled
	fixtureMCPReach  = 0.11 // knuckle row distance from wrist
)

// OpenHandAt returns an open-palm hand with the wrist at (x, y) in camera
// space. All four fingertips are extended well past the fist threshold.
func OpenHandAt(x, y float64) HandLandmarks {
	lm := baseHandAt(x, y)
	spread := [4]float64{-0.06, -0.02, 0.02, 0.06}
	for i, tip := range FingerTips {
		lm.Points[tip] = Point3D{X: x + spread[i], Y: y - fixtureOpenReach, Z: 0}
	}
	lm.Points[IndexPIP] = Point3D{X: x - 0.06, Y: y - 0.16, Z: 0}
	return lm
}

// FistAt returns a closed-fist hand with the wrist at (x, y): every fingertip
// is pulled in close to the wrist.
func FistAt(x, y float64) HandLandmarks {
	lm := baseHandAt(x, y)
	spread := [4]float64{-0.03, -0.01, 0.01, 0.03}
	for i, tip := range FingerTips {
		lm.Points[tip] = Point3D{X: x + spread[i], Y: y - fixtureFistReach, Z: -0.02}
	}
	return lm
}

// IndexCurlAt returns a hand with only the index finger curled back to its
// knuckle while the remaining fingers stay extended. This is the serve
// trigger pose.
func IndexCurlAt(x, y float64) HandLandmarks {
	lm := OpenHandAt(x, y)
	mcp := lm.Points[IndexMCP]
	lm.Points[IndexTip] = Point3D{X: mcp.X + fixtureCurlGap, Y: mcp.Y, Z: -0.02}
	return lm
}

// baseHandAt fills wrist, knuckle row and thumb for a hand centered at (x, y).
func baseHandAt(x, y float64) HandLandmarks {
	lm := HandLandmarks{
		Handedness: "Right",
		Score:      0.95,
	}

	lm.Points[Wrist] = Point3D{X: x, Y: y, Z: 0}

	mcps := [4]int{IndexMCP, MiddleMCP, RingMCP, PinkyMCP}
	spread := [4]float64{-0.06, -0.02, 0.02, 0.06}
	for i, mcp := range mcps {
		lm.Points[mcp] = Point3D{X: x + spread[i], Y: y - fixtureMCPReach, Z: 0}
	}

	lm.Points[ThumbCMC] = Point3D{X: x - 0.05, Y: y - 0.02, Z: 0}
	lm.Points[ThumbMCP] = Point3D{X: x - 0.08, Y: y - 0.05, Z: 0}
	lm.Points[ThumbIP] = Point3D{X: x - 0.10, Y: y - 0.08, Z: 0}
	lm.Points[ThumbTip] = Point3D{X: x - 0.12, Y: y - 0.10, Z: 0}

	return lm
}
