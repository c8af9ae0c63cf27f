package particle

import (
	"math/rand"
	"time"
)

// NewField creates the fixed particle population. Particles are never added
// or removed afterwards. Zero options take their DefaultOptions value and a
// nil rng is replaced by a time-seeded source.
func NewField(opts Options, bounds Bounds, rng *rand.Rand) *Field {
	opts = opts.withDefaults()
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	f := &Field{
		Particles: make([]*Particle, 0, opts.Count),
		bounds:    bounds,
		opts:      opts,
	}
	for i := 0; i < opts.Count; i++ {
		f.Particles = append(f.Particles, newParticle(rng, bounds, opts))
	}
	return f
}

// OnResize changes the wrap bounds used by the next Step. Particles are not
// moved; any that now lie outside are wrapped lazily.
func (f *Field) OnResize(width, height float64) {
	f.bounds = Bounds{Width: width, Height: height}
}

func (f *Field) Bounds() Bounds {
	return f.bounds
}

func (f *Field) Options() Options {
	return f.opts
}

// Step advances and draws one frame: clear, then per particle in creation
// order move, wrap, draw the disc and connect it to close neighbours.
func (f *Field) Step(surface Surface) FrameStats {
	surface.Clear(0, 0, f.bounds.Width, f.bounds.Height)

	stats := FrameStats{Particles: len(f.Particles)}
	for i, p := range f.Particles {
		p.update(f.bounds)
		surface.FillCircle(p.Position, p.Radius, p.Color, f.opts.Alpha)
		stats.Segments += f.connect(surface, i)
	}
	return stats
}

func (p *Particle) update(bounds Bounds) {
	p.Position.X = wrap(p.Position.X+p.Velocity.X, bounds.Width)
	p.Position.Y = wrap(p.Position.Y+p.Velocity.Y, bounds.Height)
}

// wrap is a hard toroidal wrap: below zero jumps to the far bound, at or past
// the bound jumps to zero. Velocity is never touched.
func wrap(v, bound float64) float64 {
	if v < 0 {
		return bound
	}
	if v >= bound {
		return 0
	}
	return v
}
