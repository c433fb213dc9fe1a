package viz

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/geom"
	"github.com/ropelab/ropesim/internal/metrics"
	"github.com/ropelab/ropesim/internal/rigid"
	"github.com/ropelab/ropesim/internal/scene"
	"github.com/ropelab/ropesim/internal/sim"
)

const (
	canvasWidth     = 80
	canvasHeight    = 24
	historyCapacity = 600
)

// TickMsg drives the fixed-rate animation loop.
type TickMsg time.Time

var metricNames = []string{"kinetic", "momentum", "stretch"}

type bodyPose struct {
	pos geom.Vec2
	rot float64
}

// snapshot stores one tick for replay scrubbing.
type snapshot struct {
	tick      int
	faults    int
	particles []geom.Vec2
	bodies    []bodyPose
}

// Model runs a scene in the terminal: braille canvas on the left, a
// stats sidebar with a metric chart on the right. The simulation steps
// once per animation tick at the configured fps.
type Model struct {
	reg    *scene.Registry
	cfg    *config.Config
	names  []string
	which  int
	sc     *scene.Scene
	bounds *sim.Bounds

	canvas *Canvas
	view   Viewport

	running  bool
	err      error
	faults   int
	history  []snapshot
	playHead int

	series    [3][]float64
	metricSel int

	showHelp bool
}

// NewModel builds the live view for the configured scene.
func NewModel(reg *scene.Registry, cfg *config.Config) (Model, error) {
	m := Model{
		reg:      reg,
		cfg:      cfg,
		names:    reg.List(),
		canvas:   NewCanvas(canvasWidth, canvasHeight),
		running:  true,
		playHead: -1,
	}
	for i, name := range m.names {
		if name == cfg.Scene {
			m.which = i
		}
	}
	if err := m.rebuild(); err != nil {
		return Model{}, err
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case ".":
			if !m.running && m.playHead == -1 {
				m.step()
			}
		case "r":
			m.err = m.rebuild()
		case "[":
			m.scrub(-1)
		case "]":
			m.scrub(1)
		case "m":
			m.metricSel = (m.metricSel + 1) % len(metricNames)
		case "n":
			m.switchScene(1)
		case "p":
			m.switchScene(-1)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			if m.playHead == -1 {
				m.step()
			} else {
				m.playHead++
				if m.playHead >= len(m.history) {
					m.playHead = -1
				}
			}
		}
		return m, m.tickCmd()
	}
	return m, nil
}

// rebuild constructs the scene from scratch and clears all histories.
func (m *Model) rebuild() error {
	sc, err := m.reg.Build(m.cfg.Scene, m.cfg)
	if err != nil {
		return err
	}
	m.sc = sc
	m.bounds = m.cfg.WorldBounds()
	m.view = m.fitView()
	m.faults = 0
	m.history = m.history[:0]
	m.playHead = -1
	for i := range m.series {
		m.series[i] = m.series[i][:0]
	}
	return nil
}

// switchScene cycles to the neighbouring scene. The scene's first
// preset supplies the parameters; scenes without presets reuse the
// current config under the new name.
func (m *Model) switchScene(dir int) {
	m.which = (m.which + dir + len(m.names)) % len(m.names)
	name := m.names[m.which]

	variants := config.ListPresets(name)
	sort.Strings(variants)
	if len(variants) > 0 {
		c := *config.GetPreset(name, variants[0])
		m.cfg = &c
	} else {
		c := *m.cfg
		c.Scene = name
		m.cfg = &c
	}
	m.cfg.Scene = name
	m.err = m.rebuild()
}

// fitView picks the world rectangle to show. Bounded worlds show the
// whole domain; open worlds fit the initial layout with generous
// margins so moving particles stay visible for a while.
func (m *Model) fitView() Viewport {
	if m.bounds != nil {
		return NewViewport(m.bounds.Min.X, m.bounds.Min.Y, m.bounds.Max.X, m.bounds.Max.Y, m.canvas)
	}

	w := m.sc.World
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
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
	return NewViewport(minX-pad, minY-pad, maxX+pad, maxY+pad, m.canvas)
}

// step advances the scene one tick and records it.
func (m *Model) step() {
	if m.err != nil {
		return
	}
	diag, err := m.sc.Advance(m.cfg.Dt, m.cfg.Iterations, m.bounds)
	if err != nil {
		m.err = err
		m.running = false
		return
	}
	m.faults = len(diag.Faults)

	w := m.sc.World
	m.pushSample(0, metrics.KineticEnergy(w, m.cfg.Dt))
	m.pushSample(1, metrics.MomentumMagnitude(w, m.cfg.Dt))
	m.pushSample(2, metrics.Stretch(w))

	positions := make([]geom.Vec2, 0, w.NumParticles())
	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		positions = append(positions, p.Pos)
		return true
	})
	poses := make([]bodyPose, len(m.sc.Bodies))
	for i, b := range m.sc.Bodies {
		poses[i] = bodyPose{pos: b.Pos, rot: b.Rotation}
	}
	m.history = append(m.history, snapshot{
		tick:      diag.Tick,
		faults:    len(diag.Faults),
		particles: positions,
		bodies:    poses,
	})
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) pushSample(idx int, v float64) {
	m.series[idx] = append(m.series[idx], v)
	if len(m.series[idx]) > historyCapacity {
		m.series[idx] = m.series[idx][1:]
	}
}

// scrub changes the playback position in history.
func (m *Model) scrub(dir int) {
	if m.playHead == -1 {
		if len(m.history) == 0 {
			return
		}
		m.playHead = len(m.history) - 1
		m.running = false
	}
	m.playHead += dir
	if m.playHead < 0 {
		m.playHead = 0
	}
	if m.playHead >= len(m.history) {
		m.playHead = -1
	}
}

// frameState returns what to draw: the live world, or the snapshot
// under the playhead.
func (m *Model) frameState() ([]geom.Vec2, []bodyPose, int) {
	if m.playHead >= 0 && m.playHead < len(m.history) {
		s := m.history[m.playHead]
		return s.particles, s.bodies, s.faults
	}
	w := m.sc.World
	positions := make([]geom.Vec2, 0, w.NumParticles())
	w.EachParticle(func(_ sim.ParticleID, p sim.Particle) bool {
		positions = append(positions, p.Pos)
		return true
	})
	poses := make([]bodyPose, len(m.sc.Bodies))
	for i, b := range m.sc.Bodies {
		poses[i] = bodyPose{pos: b.Pos, rot: b.Rotation}
	}
	return positions, poses, m.faults
}

func (m *Model) draw() {
	m.canvas.Clear()

	if m.bounds != nil {
		x0, y0 := m.view.Dot(m.bounds.Min.X, m.bounds.Min.Y)
		x1, y1 := m.view.Dot(m.bounds.Max.X, m.bounds.Max.Y)
		m.canvas.DrawLine(x0, y0, x1, y0)
		m.canvas.DrawLine(x1, y0, x1, y1)
		m.canvas.DrawLine(x1, y1, x0, y1)
		m.canvas.DrawLine(x0, y1, x0, y0)
	}

	positions, poses, _ := m.frameState()

	m.sc.World.EachConstraint(func(_ sim.ConstraintID, c sim.Constraint) bool {
		ia, ib := int(c.A), int(c.B)
		if ia < 0 || ia >= len(positions) || ib < 0 || ib >= len(positions) {
			return true
		}
		x0, y0 := m.view.Dot(positions[ia].X, positions[ia].Y)
		x1, y1 := m.view.Dot(positions[ib].X, positions[ib].Y)
		m.canvas.DrawLine(x0, y0, x1, y1)
		return true
	})

	for _, p := range positions {
		x, y := m.view.Dot(p.X, p.Y)
		m.canvas.Set(x, y)
		m.canvas.Set(x+1, y)
	}

	for i, pose := range poses {
		if i < len(m.sc.Bodies) {
			m.drawBody(pose, m.sc.Bodies[i].Shape)
		}
	}
}

// drawBody outlines a rigid body. Circles get a spoke from center to
// rim so rotation is visible.
func (m *Model) drawBody(pose bodyPose, shape rigid.Shape) {
	switch s := shape.(type) {
	case rigid.Circle:
		cx, cy := m.view.Dot(pose.pos.X, pose.pos.Y)
		m.canvas.DrawCircle(cx, cy, m.view.Span(s.Radius))
		rim := pose.pos.Add(geom.V(math.Cos(pose.rot), math.Sin(pose.rot)).Scale(s.Radius))
		rx, ry := m.view.Dot(rim.X, rim.Y)
		m.canvas.DrawLine(cx, cy, rx, ry)
	case rigid.Rect:
		hw, hh := s.Width/2, s.Height/2
		cos, sin := math.Cos(pose.rot), math.Sin(pose.rot)
		corners := [4]geom.Vec2{
			geom.V(-hw, -hh), geom.V(hw, -hh), geom.V(hw, hh), geom.V(-hw, hh),
		}
		var xs, ys [4]int
		for i, c := range corners {
			wx := pose.pos.X + c.X*cos - c.Y*sin
			wy := pose.pos.Y + c.X*sin + c.Y*cos
			xs[i], ys[i] = m.view.Dot(wx, wy)
		}
		for i := 0; i < 4; i++ {
			j := (i + 1) % 4
			m.canvas.DrawLine(xs[i], ys[i], xs[j], ys[j])
		}
	}
}

// View renders the TUI frame.
func (m Model) View() string {
	m.draw()

	status := statusRunning.Render("RUNNING")
	switch {
	case m.err != nil:
		status = faultStyle.Render("ERROR " + m.err.Error())
	case m.playHead != -1:
		status = statusReplay.Render(fmt.Sprintf("REPLAY %d/%d", m.playHead+1, len(m.history)))
	case !m.running:
		status = statusPaused.Render("PAUSED")
	}

	_, _, faults := m.frameState()

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.sc.Name)) + "\n")
	s.WriteString(status + "\n\n")

	sel := m.series[m.metricSel]
	if len(sel) > 1 {
		chart := asciigraph.Plot(sel,
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.Caption(metricNames[m.metricSel]))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	s.WriteString(row("Tick", fmt.Sprintf("%d", m.sc.World.Tick())))
	s.WriteString(row("Mode", m.cfg.Mode))
	s.WriteString(row("Dt", fmt.Sprintf("%.4fs", m.cfg.Dt)))
	s.WriteString(row("Iterations", fmt.Sprintf("%d", m.cfg.Iterations)))
	s.WriteString(row("Particles", fmt.Sprintf("%d", m.sc.World.NumParticles())))
	s.WriteString(row("Constraints", fmt.Sprintf("%d", m.sc.World.NumConstraints())))
	if faults > 0 {
		s.WriteString(labelStyle.Render("Faults") + faultStyle.Render(fmt.Sprintf("%d", faults)) + "\n")
	} else {
		s.WriteString(row("Faults", "0"))
	}

	s.WriteString("\nMETRICS\n")
	for i, name := range metricNames {
		var last float64
		if n := len(m.series[i]); n > 0 {
			last = m.series[i][n-1]
		}
		line := fmt.Sprintf("%-9s %s %9.3f", name, Sparkline(m.series[i], 14), last)
		if i == m.metricSel {
			s.WriteString(selectedStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + line + "\n")
		}
	}

	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause .:Step R:Reset Q:Quit\nN/P:Scene M:Metric ?:Help\n[ ]:Replay"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.String()), statsView)
	if m.showHelp {
		return helpOverlay + "\n\n" + mainView
	}
	return mainView
}

func row(label, value string) string {
	return labelStyle.Render(label) + valueStyle.Render(value) + "\n"
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  .        - Single step (paused)     ║
║  R        - Rebuild scene            ║
║  N / P    - Next / previous scene    ║
║  M        - Cycle metric chart       ║
║  [        - Rewind (replay)          ║
║  ]        - Forward (replay)         ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`
