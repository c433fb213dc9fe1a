// Package gui is the raylib front end. It renders a scene into a
// window at the configured fps, one fixed-dt tick per frame, with a
// scene picker on escape.
package gui

import (
	"math"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/metrics"
	"github.com/ropelab/ropesim/internal/scene"
	"github.com/ropelab/ropesim/internal/sim"
)

const (
	screenW      = 1280
	screenH      = 720
	viewMargin   = 60
	telemetryCap = 200
)

// Monochrome palette.
var (
	colBg      = rl.NewColor(10, 10, 10, 255)
	colAccent  = rl.NewColor(180, 180, 180, 255)
	colSelect  = rl.NewColor(255, 255, 255, 255)
	colText    = rl.NewColor(140, 140, 140, 255)
	colTextDim = rl.NewColor(60, 60, 60, 255)
	colFault   = rl.NewColor(255, 80, 80, 255)
)

// App owns the window state and the running scene.
type App struct {
	reg *scene.Registry
	cfg *config.Config

	sc     *scene.Scene
	bounds *sim.Bounds

	names    []string
	selected int
	inMenu   bool
	running  bool
	quit     bool
	err      error
	faults   int

	telemetry []float64

	// world-to-screen mapping, fixed per scene
	center geom.Vec2
	scale  float64
}

// NewApp builds the app around the configured scene.
func NewApp(reg *scene.Registry, cfg *config.Config) (*App, error) {
	a := &App{
		reg:       reg,
		cfg:       cfg,
		names:     reg.List(),
		telemetry: make([]float64, 0, telemetryCap),
	}
	for i, name := range a.names {
		if name == cfg.Scene {
			a.selected = i
		}
	}
	if err := a.rebuild(); err != nil {
		return nil, err
	}
	return a, nil
}

// Run opens the window and blocks until it closes.
func Run(reg *scene.Registry, cfg *config.Config) error {
	app, err := NewApp(reg, cfg)
	if err != nil {
		return err
	}

	rl.InitWindow(screenW, screenH, "ropesim")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.FPS))
	rl.SetExitKey(0)

	for !rl.WindowShouldClose() && !app.quit {
		app.update()
		app.draw()
	}
	return nil
}

// rebuild constructs the scene from scratch and refits the view.
func (a *App) rebuild() error {
	sc, err := a.reg.Build(a.cfg.Scene, a.cfg)
	if err != nil {
		return err
	}
	a.sc = sc
	a.bounds = a.cfg.WorldBounds()
	a.fitView()
	a.telemetry = a.telemetry[:0]
	a.faults = 0
	a.running = true
	return nil
}

// loadScene switches to the named scene using its first preset, or the
// current config renamed when the scene has none.
func (a *App) loadScene(name string) {
	variants := config.ListPresets(name)
	sort.Strings(variants)
	if len(variants) > 0 {
		c := *config.GetPreset(name, variants[0])
		a.cfg = &c
	} else {
		c := *a.cfg
		a.cfg = &c
	}
	a.cfg.Scene = name
	a.err = a.rebuild()
	a.inMenu = false
}

// fitView centers the world rectangle on screen, preserving aspect.
func (a *App) fitView() {
	var minX, minY, maxX, maxY float64
	if a.bounds != nil {
		minX, minY = a.bounds.Min.X, a.bounds.Min.Y
		maxX, maxY = a.bounds.Max.X, a.bounds.Max.Y
	} else {
		minX, minY = math.Inf(1), math.Inf(1)
		maxX, maxY = math.Inf(-1), math.Inf(-1)
		w := a.sc.World
		w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
			minX = math.Min(minX, p.Pos.X)
			minY = math.Min(minY, p.Pos.Y)
			maxX = math.Max(maxX, p.Pos.X)
			maxY = math.Max(maxY, p.Pos.Y)
			return true
		})
		if w.NumParticles() == 0 {
			minX, minY, maxX, maxY = -40, -30, 40, 30
		}
		pad := math.Max(maxX-minX, maxY-minY)*0.75 + 5
		minX -= pad
		minY -= pad
		maxX += pad
		maxY += pad
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX <= 0 {
		rangeX = 1
	}
	if rangeY <= 0 {
		rangeY = 1
	}
	a.center = geom.V((minX+maxX)/2, (minY+maxY)/2)
	a.scale = math.Min(
		float64(screenW-2*viewMargin)/rangeX,
		float64(screenH-2*viewMargin)/rangeY,
	)
}

// toScreen maps a world point to window coordinates, Y flipped.
func (a *App) toScreen(p geom.Vec2) rl.Vector2 {
	x := (p.X-a.center.X)*a.scale + screenW/2
	y := screenH/2 - (p.Y-a.center.Y)*a.scale
	return rl.NewVector2(float32(x), float32(y))
}

func (a *App) update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.inMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inMenu = true
		a.running = false
		return
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.running = !a.running
	}
	if rl.IsKeyPressed(rl.KeyPeriod) && !a.running {
		a.step()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.err = a.rebuild()
	}

	if a.running {
		a.step()
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.selected--
	}
	if a.selected >= len(a.names) {
		a.selected = 0
	}
	if a.selected < 0 {
		a.selected = len(a.names) - 1
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.loadScene(a.names[a.selected])
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		a.inMenu = false
	}
}

// step advances the scene one fixed-dt tick.
func (a *App) step() {
	if a.err != nil {
		return
	}
	diag, err := a.sc.Advance(a.cfg.Dt, a.cfg.Iterations, a.bounds)
	if err != nil {
		a.err = err
		a.running = false
		return
	}
	a.faults = len(diag.Faults)

	a.telemetry = append(a.telemetry, metrics.KineticEnergy(a.sc.World, a.cfg.Dt))
	if len(a.telemetry) > telemetryCap {
		a.telemetry = a.telemetry[1:]
	}
}

func (a *App) draw() {
	rl.BeginDrawing()
	rl.ClearBackground(colBg)

	if a.inMenu {
		a.drawMenu()
	} else {
		a.drawScene()
		a.drawHUD()
	}

	rl.EndDrawing()
}
