package frame

// Loop re-runs a step once per frame until stopped.
type Loop struct {
	scheduler Scheduler
	step      func()
	cancel    CancelFunc
	stopped   bool
	steps     uint64
}

// Start schedules the first run of step on s.
func Start(s Scheduler, step func()) *Loop {
	l := &Loop{scheduler: s, step: step}
	l.cancel = s.Schedule(l.run)
	return l
}

func (l *Loop) run() {
	if l.stopped {
		return
	}
	l.step()
	l.steps++
	// step may have stopped the loop itself.
	if l.stopped {
		return
	}
	l.cancel = l.scheduler.Schedule(l.run)
}

// Stop cancels the pending invocation. It is safe to call more than once,
// including from inside the step.
func (l *Loop) Stop() {
	if l.stopped {
		return
	}
	l.stopped = true
	if l.cancel != nil {
		l.cancel()
	}
}

func (l *Loop) Stopped() bool {
	return l.stopped
}

// Steps reports how many times the step ran.
func (l *Loop) Steps() uint64 {
	return l.steps
}
