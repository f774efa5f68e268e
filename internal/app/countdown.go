package app

import (
	"sync"
	"sync/atomic"
	"time"
)

// countdown tracks the serve countdown shown to the player. It is display
// state only: the simulation gates the serve by tick count, while this runs
// on a wall-clock second so the on-screen digits feel steady. The pipeline
// restarts it on every serve and reads the current value when publishing a
// snapshot.
type countdown struct {
	value  atomic.Int32
	mu     sync.Mutex
	cancel chan struct{}
}

func newCountdown() *countdown {
	return &countdown{}
}

// start resets the countdown to the given number of seconds and ticks it down
// once per second. A start while a previous countdown is running replaces it.
func (c *countdown) start(seconds int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		close(c.cancel)
	}
	cancel := make(chan struct{})
	c.cancel = cancel

	c.value.Store(int32(seconds))

	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()

		for {
			select {
			case <-cancel:
				return
			case <-ticker.C:
				if v := c.value.Load(); v > 0 {
					c.value.Store(v - 1)
					if v-1 == 0 {
						return
					}
				} else {
					return
				}
			}
		}
	}()
}

// clear stops any running countdown and zeroes the display value.
func (c *countdown) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cancel != nil {
		close(c.cancel)
		c.cancel = nil
	}
	c.value.Store(0)
}

// current returns the seconds remaining on the display.
func (c *countdown) current() int {
	return int(c.value.Load())
}
