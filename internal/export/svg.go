package export

import (
	"fmt"
	"io"
	"math"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/sim"
)

// WriteSVG renders the final state of a run: the constraint wireframe
// with a dot per particle, plus the path particle 0 traced over the
// whole run. World Y grows upward and SVG Y grows downward, so the
// image is flipped while fitting.
func WriteSVG(w io.Writer, world *sim.World, t *Trajectory, width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("export: bad svg size %dx%d", width, height)
	}
	if len(t.Ticks) == 0 {
		return fmt.Errorf("export: empty trajectory")
	}

	// Fit the viewport to everything that will be drawn.
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(p geom.Vec2) {
		minX = math.Min(minX, p.X)
		minY = math.Min(minY, p.Y)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, p.Y)
	}
	for _, tk := range t.Ticks {
		if len(tk.Positions) > 0 {
			grow(tk.Positions[0])
		}
	}
	final := t.Ticks[len(t.Ticks)-1].Positions
	for _, p := range final {
		grow(p)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	toX := func(x float64) float64 {
		return (x - minX) / rangeX * float64(width)
	}
	toY := func(y float64) float64 {
		return float64(height) - (y-minY)/rangeY*float64(height)
	}

	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height)

	// Trail of particle 0.
	fmt.Fprintf(w, `<path fill="none" stroke="#3a9bdc" stroke-width="1" d="`)
	for i, tk := range t.Ticks {
		if len(tk.Positions) == 0 {
			continue
		}
		if i == 0 {
			fmt.Fprintf(w, "M%.1f,%.1f", toX(tk.Positions[0].X), toY(tk.Positions[0].Y))
		} else {
			fmt.Fprintf(w, " L%.1f,%.1f", toX(tk.Positions[0].X), toY(tk.Positions[0].Y))
		}
	}
	fmt.Fprintf(w, "\"/>\n")

	// Constraint wireframe of the final state.
	world.EachConstraint(func(_ sim.ConstraintID, c sim.Constraint) bool {
		pa, errA := world.Position(c.A)
		pb, errB := world.Position(c.B)
		if errA != nil || errB != nil {
			return true
		}
		fmt.Fprintf(w, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#00ff00" stroke-width="1.5"/>`+"\n",
			toX(pa.X), toY(pa.Y), toX(pb.X), toY(pb.Y))
		return true
	})

	fmt.Fprintf(w, `<g fill="#00ff00">`+"\n")
	for _, p := range final {
		fmt.Fprintf(w, `<circle cx="%.1f" cy="%.1f" r="2.5"/>`+"\n", toX(p.X), toY(p.Y))
	}
	fmt.Fprintf(w, "</g>\n</svg>\n")
	return nil
}
