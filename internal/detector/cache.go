package detector

import (
	"sync"

	"gocv.io/x/gocv"
)

// Cached wraps a Detector and deduplicates calls against an unchanged camera
// frame. The game loop ticks at display rate while the camera may deliver
// frames slower; when the frame sequence has not advanced, DetectSeq returns
// the previous result without invoking the underlying detector, so gesture
// logic never runs twice for the same underlying frame.
type Cached struct {
	inner Detector

	mu       sync.Mutex
	haveSeq  bool
	lastSeq  uint64
	lastRes  []HandLandmarks
	lastErr  error
	innerRun int
}

// NewCached creates a deduplicating wrapper around the given detector.
func NewCached(inner Detector) *Cached {
	return &Cached{inner: inner}
}

// DetectSeq runs detection for the frame identified by seq. Calls that repeat
// the previous sequence number return the cached result.
func (c *Cached) DetectSeq(frame *gocv.Mat, seq uint64) ([]HandLandmarks, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.haveSeq && seq == c.lastSeq {
		return c.lastRes, c.lastErr
	}

	hands, err := c.inner.Detect(frame)
	c.haveSeq = true
	c.lastSeq = seq
	c.lastRes = hands
	c.lastErr = err
	c.innerRun++

	return hands, err
}

// Detect implements Detector by always invoking the underlying detector.
func (c *Cached) Detect(frame *gocv.Mat) ([]HandLandmarks, error) {
	return c.inner.Detect(frame)
}

// Runs reports how many times the underlying detector has actually been
// invoked through DetectSeq.
func (c *Cached) Runs() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.innerRun
}

// Close closes the underlying detector.
func (c *Cached) Close() error {
	return c.inner.Close()
}
