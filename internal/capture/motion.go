package capture

import (
	"image"
	"sync"

	"gocv.io/x/gocv"
)

// Motion detection constants.
const (
	// GaussianBlurSize is the kernel size for Gaussian blur (21x21).
	GaussianBlurSize = 21
	// DiffThreshold is the binary threshold for difference detection.
	DiffThreshold = 25
)

// MotionDetector detects motion between consecutive video frames using frame
// differencing with Gaussian blur for noise reduction. The game uses it to
// drop the camera to an idle frame rate while nobody is at the table.
type MotionDetector struct {
	threshold   float64
	prevGray    gocv.Mat
	initialized bool
	mu          sync.Mutex
}

// NewMotionDetector creates a MotionDetector. threshold is the percentage of
// pixels that must change between frames to count as motion.
func NewMotionDetector(threshold float64) *MotionDetector {
	return &MotionDetector{
		threshold: threshold,
		prevGray:  gocv.NewMat(),
	}
}

// Detect analyzes a frame for motion compared to the previous frame.
// Returns whether motion was detected and the percentage of pixels that
// changed. The first frame only establishes the baseline.
func (m *MotionDetector) Detect(frame *gocv.Mat) (bool, float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if frame == nil || frame.Empty() {
		return false, 0
	}

	gray := gocv.NewMat()
	defer gray.Close()

	if frame.Channels() > 1 {
		gocv.CvtColor(*frame, &gray, gocv.ColorBGRToGray)
	} else {
		frame.CopyTo(&gray)
	}

	blurred := gocv.NewMat()
	defer blurred.Close()
	gocv.GaussianBlur(gray, &blurred, image.Point{X: GaussianBlurSize, Y: GaussianBlurSize}, 0, 0, gocv.BorderDefault)

	if !m.initialized {
		blurred.CopyTo(&m.prevGray)
		m.initialized = true
		return false, 0
	}

	diff := gocv.NewMat()
	defer diff.Close()
	gocv.AbsDiff(blurred, m.prevGray, &diff)

	thresh := gocv.NewMat()
	defer thresh.Close()
	gocv.Threshold(diff, &thresh, DiffThreshold, 255, gocv.ThresholdBinary)

	nonZero := gocv.CountNonZero(thresh)
	totalPixels := thresh.Rows() * thresh.Cols()

	changePercent := float64(nonZero) / float64(totalPixels) * 100.0

	blurred.CopyTo(&m.prevGray)

	return changePercent > m.threshold, changePercent
}

// Reset clears the detector state so the next frame becomes a new baseline.
func (m *MotionDetector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.prevGray.Empty() {
		m.prevGray.Close()
		m.prevGray = gocv.NewMat()
	}
	m.initialized = false
}

// Close releases resources used by the motion detector.
func (m *MotionDetector) Close() {
	m.Reset()
}

// SetThreshold updates the motion threshold. Non-positive values are ignored.
func (m *MotionDetector) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.threshold = threshold
}
