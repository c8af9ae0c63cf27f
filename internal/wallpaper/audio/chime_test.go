package audio

import (
	"math"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
)

func TestChimeGeneratorEnds(t *testing.T) {
	sr := beep.SampleRate(8000)
	g := NewChimeGenerator(sr, 1)

	total := 0
	peak := 0.0
	buf := make([][2]float64, 512)
	for {
		n, ok := g.Stream(buf)
		for _, s := range buf[:n] {
			assert.Equal(t, s[0], s[1])
			peak = math.Max(peak, math.Abs(s[0]))
		}
		total += n
		if !ok {
			break
		}
	}

	assert.Equal(t, sr.N(600*time.Millisecond), total)
	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 0.3)
	assert.NoError(t, g.Err())
}

func TestChimeWithoutSpeakerIsSilent(t *testing.T) {
	c := NewChime(0.5)
	c.Play()
	c.Close()
}
