package particle

import "math"

// connect strokes a segment from particle i to every earlier particle closer
// than the connect distance. Earlier particles have already moved this
// frame, so both ends use post-update positions and each unordered pair is
// drawn once.
func (f *Field) connect(surface Surface, i int) int {
	p := f.Particles[i]
	segments := 0

	for j := 0; j < i; j++ {
		q := f.Particles[j]
		dx := p.Position.X - q.Position.X
		dy := p.Position.Y - q.Position.Y
		if math.Sqrt(dx*dx+dy*dy) < f.opts.ConnectDistance {
			surface.StrokeLine(p.Position, q.Position, f.opts.LineColor, f.opts.LineWidth)
			segments++
		}
	}
	return segments
}
