package audio

import (
	"math"
	"sync"
	"time"

	"linux-backdrop/internal/utils"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const chimeSampleRate = beep.SampleRate(48000)

// ChimeGenerator is a two note sine chime with a fast attack and an
// exponential tail.
type ChimeGenerator struct {
	sr     beep.SampleRate
	notes  []float64
	volume float64
	pos    int
	length int
}

func NewChimeGenerator(sr beep.SampleRate, volume float64) *ChimeGenerator {
	return &ChimeGenerator{
		sr:     sr,
		notes:  []float64{880, 1318.5},
		volume: volume,
		length: sr.N(600 * time.Millisecond),
	}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.length {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.length {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)

		sample := 0.0
		for k, freq := range g.notes {
			// Second note enters after 120ms.
			start := float64(k) * 0.12
			if t < start {
				continue
			}
			local := t - start
			attack := math.Min(local/0.005, 1.0)
			sample += 0.5 * math.Sin(2*math.Pi*freq*local) * attack * math.Exp(-local*6)
		}
		sample *= g.volume * 0.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}

// Chime plays a short notification through the system speaker. It backs the
// terminal host, which has no raylib audio device.
type Chime struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	volume      float64
	initialized bool
}

func NewChime(volume float64) *Chime {
	return &Chime{mixer: &beep.Mixer{}, volume: volume}
}

func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || utils.SilentMode {
		return nil
	}

	if err := speaker.Init(chimeSampleRate, chimeSampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(NewChimeGenerator(chimeSampleRate, c.volume))
	speaker.Unlock()
}

func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
