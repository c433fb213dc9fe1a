package gui

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/rigid"
	"github.com/ropelab/ropesim/internal/sim"
)

func (a *App) drawScene() {
	if a.bounds != nil {
		lo := a.toScreen(a.bounds.Min)
		hi := a.toScreen(a.bounds.Max)
		rl.DrawRectangleLines(int32(lo.X), int32(hi.Y), int32(hi.X-lo.X), int32(lo.Y-hi.Y), colTextDim)
	}

	w := a.sc.World
	w.EachConstraint(func(_ sim.ConstraintID, c sim.Constraint) bool {
		pa, errA := w.Position(c.A)
		pb, errB := w.Position(c.B)
		if errA != nil || errB != nil {
			return true
		}
		rl.DrawLineV(a.toScreen(pa), a.toScreen(pb), colText)
		return true
	})

	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		r := float32(p.Radius * a.scale)
		if r < 2 {
			r = 2
		}
		rl.DrawCircleV(a.toScreen(p.Pos), r, colSelect)
		return true
	})

	for _, b := range a.sc.Bodies {
		a.drawBody(b)
	}
}

// drawBody outlines a rigid body. Circles get a spoke from center to
// rim so rotation is visible.
func (a *App) drawBody(b *rigid.Body) {
	pos := a.toScreen(b.Pos)
	switch s := b.Shape.(type) {
	case rigid.Circle:
		rl.DrawCircleLines(int32(pos.X), int32(pos.Y), float32(s.Radius*a.scale), colAccent)
		rim := b.Pos.Add(geom.V(math.Cos(b.Rotation), math.Sin(b.Rotation)).Scale(s.Radius))
		rl.DrawLineV(pos, a.toScreen(rim), colAccent)
	case rigid.Rect:
		hw, hh := s.Width/2, s.Height/2
		cos, sin := math.Cos(b.Rotation), math.Sin(b.Rotation)
		corners := [4]geom.Vec2{
			geom.V(-hw, -hh), geom.V(hw, -hh), geom.V(hw, hh), geom.V(-hw, hh),
		}
		var pts [5]rl.Vector2
		for i, c := range corners {
			world := geom.V(b.Pos.X+c.X*cos-c.Y*sin, b.Pos.Y+c.X*sin+c.Y*cos)
			pts[i] = a.toScreen(world)
		}
		pts[4] = pts[0]
		for i := 0; i < 4; i++ {
			rl.DrawLineV(pts[i], pts[i+1], colAccent)
		}
	}
}

func (a *App) drawHUD() {
	a.drawText("ropesim", 30, 30, 24, colSelect)
	a.drawText(fmt.Sprintf(":: %s", a.sc.Name), 150, 34, 16, colText)

	a.drawTelemetry()

	status, col := "RUNNING", colSelect
	switch {
	case a.err != nil:
		status, col = "ERROR", colFault
	case !a.running:
		status, col = "PAUSED", colTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	if a.err != nil {
		a.drawText(a.err.Error(), 30, 60, 14, colFault)
	}

	a.drawText(fmt.Sprintf("tick %d", a.sc.World.Tick()), 30, 680, 14, colTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 140, 680, 14, colTextDim)
	if a.faults > 0 {
		a.drawText(fmt.Sprintf("FAULTS %d", a.faults), 240, 680, 14, colFault)
	}
	a.drawText("[SPACE] PAUSE  [.] STEP  [R] RESET  [ESC] MENU  [Q] QUIT", 770, 680, 14, colTextDim)
}

// drawTelemetry plots the kinetic energy ring buffer as a line strip.
func (a *App) drawTelemetry() {
	if len(a.telemetry) < 2 {
		return
	}

	rectX, rectY := 30, 600
	width, height := 400, 60

	lo, hi := a.telemetry[0], a.telemetry[0]
	for _, v := range a.telemetry {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		hi = lo + 1
	}

	points := make([]rl.Vector2, len(a.telemetry))
	for i, val := range a.telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.telemetry)))*float32(width)
		norm := (val - lo) / (hi - lo)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, colAccent)
	a.drawText(fmt.Sprintf("KE %.2e", a.telemetry[len(a.telemetry)-1]), int32(rectX+width+10), int32(rectY+height-10), 14, colText)
}

func (a *App) drawMenu() {
	a.drawText("ropesim", 50, 50, 40, colSelect)
	a.drawText("Select Scene", 50, 100, 16, colTextDim)

	y := int32(160)
	for i, name := range a.names {
		if i == a.selected {
			a.drawText(fmt.Sprintf("> %s", name), 50, y, 20, colSelect)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, colText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  ESC: BACK  Q: QUIT", 800, 680, 14, colTextDim)
}

func (a *App) drawText(text string, x, y int32, size int32, col rl.Color) {
	rl.DrawText(text, x, y, size, col)
}
