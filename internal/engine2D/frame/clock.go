// Package frame provides the per-frame scheduling used by the render loops.
//
// Hosts own a Clock and call Tick once per presented frame. Loops request
// exactly one future invocation at the end of each step, mirroring a browser
// requestAnimationFrame chain, so tests can drive them deterministically.
package frame

// CancelFunc withdraws a scheduled callback. Calling it after the callback
// ran, or more than once, is a no-op.
type CancelFunc func()

// Scheduler queues a callback for the next frame.
type Scheduler interface {
	Schedule(callback func()) CancelFunc
}

type entry struct {
	callback  func()
	cancelled bool
}

// Clock is a manually ticked Scheduler. It is not safe for concurrent use:
// Schedule and Tick belong to the host's render goroutine.
type Clock struct {
	queue  []*entry
	frames uint64
}

func NewClock() *Clock {
	return &Clock{}
}

func (c *Clock) Schedule(callback func()) CancelFunc {
	e := &entry{callback: callback}
	c.queue = append(c.queue, e)
	return func() { e.cancelled = true }
}

// Tick runs every callback scheduled before the call. Callbacks scheduled
// while ticking wait for the next Tick.
func (c *Clock) Tick() {
	due := c.queue
	c.queue = nil
	c.frames++

	for _, e := range due {
		if e.cancelled {
			continue
		}
		e.cancelled = true
		e.callback()
	}
}

// Pending reports the callbacks waiting for the next Tick.
func (c *Clock) Pending() int {
	n := 0
	for _, e := range c.queue {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Frames reports how many times Tick ran.
func (c *Clock) Frames() uint64 {
	return c.frames
}
