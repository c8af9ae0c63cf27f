package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClockRunsOnlyCallbacksScheduledBeforeTick(t *testing.T) {
	clock := NewClock()
	var order []string

	clock.Schedule(func() {
		order = append(order, "a")
		clock.Schedule(func() { order = append(order, "c") })
	})
	clock.Schedule(func() { order = append(order, "b") })

	clock.Tick()
	assert.Equal(t, []string{"a", "b"}, order)
	assert.Equal(t, 1, clock.Pending())

	clock.Tick()
	assert.Equal(t, []string{"a", "b", "c"}, order)
	assert.Equal(t, 0, clock.Pending())
	assert.Equal(t, uint64(2), clock.Frames())
}

func TestClockCancel(t *testing.T) {
	clock := NewClock()
	ran := false

	cancel := clock.Schedule(func() { ran = true })
	cancel()
	cancel()

	assert.Equal(t, 0, clock.Pending())
	clock.Tick()
	assert.False(t, ran)
}

func TestLoopStepsOncePerTick(t *testing.T) {
	clock := NewClock()
	count := 0
	loop := Start(clock, func() { count++ })

	for i := 0; i < 5; i++ {
		assert.Equal(t, 1, clock.Pending())
		clock.Tick()
	}

	assert.Equal(t, 5, count)
	assert.Equal(t, uint64(5), loop.Steps())
	assert.Equal(t, 1, clock.Pending())
}

func TestLoopStop(t *testing.T) {
	clock := NewClock()
	count := 0
	loop := Start(clock, func() { count++ })

	clock.Tick()
	loop.Stop()
	loop.Stop()

	clock.Tick()
	clock.Tick()
	assert.Equal(t, 1, count)
	assert.True(t, loop.Stopped())
	assert.Equal(t, 0, clock.Pending())
}

func TestLoopStopFromInsideStep(t *testing.T) {
	clock := NewClock()
	count := 0
	var loop *Loop
	loop = Start(clock, func() {
		count++
		if count == 3 {
			loop.Stop()
		}
	})

	for i := 0; i < 10; i++ {
		clock.Tick()
	}
	assert.Equal(t, 3, count)
	assert.Equal(t, 0, clock.Pending())
}

func TestIndependentLoopsShareClock(t *testing.T) {
	clock := NewClock()
	var a, b int
	first := Start(clock, func() { a++ })
	Start(clock, func() { b++ })

	clock.Tick()
	first.Stop()
	clock.Tick()

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, clock.Pending())
}
