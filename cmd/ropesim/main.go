package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ropelab/ropesim/internal/config"
	"github.com/ropelab/ropesim/internal/export"
	"github.com/ropelab/ropesim/internal/gui"
	"github.com/ropelab/ropesim/internal/metrics"
	"github.com/ropelab/ropesim/internal/scene"
	"github.com/ropelab/ropesim/internal/sim"
	"github.com/ropelab/ropesim/internal/viz"
)

var (
	configFile       string
	presetName       string
	modeName         string
	dt               float64
	ticks            int
	iterations       int
	seed             int64
	fps              int
	gravityY         float64
	restitution      float64
	particles        int
	correctPositions bool
	svgWidth         int
	svgHeight        int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ropesim",
		Short: "deterministic rope and particle simulation",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the live terminal view when no command given
			return runLive(cmd, args)
		},
	}
	addConfigFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run a scene and print metrics",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScene,
	}
	addConfigFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run a scene with live terminal visualization",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addConfigFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui [scene]",
		Short: "run a scene in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runGUI,
	}
	addConfigFlags(guiCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [scene] [mode1] [mode2] ...",
		Short: "run the same scene under different integration modes",
		Args:  cobra.MinimumNArgs(0),
		RunE:  compareModes,
	}
	addConfigFlags(compareCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list preset configurations",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listPresets,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [scene]",
		Short: "run a scene and write the trajectory as CSV to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}
	addConfigFlags(exportCSVCmd)

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [scene]",
		Short: "run a scene and write the trajectory as JSON to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}
	addConfigFlags(exportJSONCmd)

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene]",
		Short: "run a scene and write the final state as SVG to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	addConfigFlags(exportSVGCmd)
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "svg width in pixels")
	exportSVGCmd.Flags().IntVar(&svgHeight, "height", 600, "svg height in pixels")

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark stepping across sizes and iteration counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchScene,
	}
	addConfigFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, compareCmd, presetsCmd,
		exportCSVCmd, exportJSONCmd, exportSVGCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&presetName, "preset", "", "preset configuration (scene/name)")
	cmd.Flags().StringVar(&modeName, "mode", "verlet", "integration mode (verlet or euler)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "number of steps")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "relaxation passes per step")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for seeded scenes")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate for interactive views")
	cmd.Flags().Float64Var(&gravityY, "gravity-y", config.DefaultGravityY, "vertical gravity (euler mode)")
	cmd.Flags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "boundary velocity multiplier")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "particle count for sized scenes")
	cmd.Flags().BoolVar(&correctPositions, "correct-positions", false, "force position corrections in euler mode")
}

// buildConfig resolves the effective config: preset, then file, then
// defaults, with explicitly set CLI flags overriding all of them. The
// positional scene argument, when present, wins over everything.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	var cfg *config.Config

	switch {
	case presetName != "":
		parts := strings.SplitN(presetName, "/", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("preset must be scene/name, got %q", presetName)
		}
		p := config.GetPreset(parts[0], parts[1])
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets(parts[0]))
		}
		c := *p
		cfg = &c
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
	}

	if cmd.Flags().Changed("mode") {
		cfg.Mode = modeName
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("ticks") {
		cfg.Ticks = ticks
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Iterations = iterations
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = fps
	}
	if cmd.Flags().Changed("gravity-y") {
		cfg.Gravity.Y = gravityY
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Restitution = restitution
	}
	if cmd.Flags().Changed("particles") {
		cfg.Setup.Particles = particles
	}
	if cmd.Flags().Changed("correct-positions") {
		cfg.CorrectPositions = correctPositions
	}
	if len(args) > 0 {
		cfg.Scene = args[0]
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runBatch builds the configured scene and advances it for the
// configured tick count, recording the trajectory and the standard
// metrics.
func runBatch(cfg *config.Config) (*scene.Scene, *export.Trajectory, error) {
	reg := scene.NewRegistry()
	sc, err := reg.Build(cfg.Scene, cfg)
	if err != nil {
		return nil, nil, err
	}
	bounds := cfg.WorldBounds()

	observers := []metrics.Metric{
		metrics.NewKinetic(),
		metrics.NewMomentum(),
		metrics.NewMaxStretch(),
	}

	tr := export.NewTrajectory(cfg.Scene, cfg.Mode, cfg.Dt, cfg.Iterations)
	for i := 0; i < cfg.Ticks; i++ {
		diag, err := sc.Advance(cfg.Dt, cfg.Iterations, bounds)
		if err != nil {
			return nil, nil, err
		}
		tr.Record(sc.World, diag)
		for _, m := range observers {
			m.Observe(sc.World, cfg.Dt)
		}
	}
	for _, m := range observers {
		tr.Metrics[m.Name()] = m.Value()
	}
	return sc, tr, nil
}

func runScene(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	fmt.Printf("running %s scene...\n", cfg.Scene)
	start := time.Now()
	_, tr, err := runBatch(cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("ticks: %d\n", len(tr.Ticks))
	fmt.Printf("faults: %d\n", tr.FaultCount())

	if energies := tr.Energies(); len(energies) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(energies,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy"),
		)
		fmt.Println(graph)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(tr.Metrics))
	for name := range tr.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, tr.Metrics[name])
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	m, err := viz.NewModel(scene.NewRegistry(), cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	return gui.Run(scene.NewRegistry(), cfg)
}

type compareResult struct {
	mode    string
	err     error
	kinetic float64
	stretch float64
	faults  int
	elapsed time.Duration
}

// compareModes runs the same scene once per integration mode, each in
// its own world, and prints a comparison table. Worlds are independent
// so the runs proceed in parallel.
func compareModes(cmd *cobra.Command, args []string) error {
	var sceneArgs []string
	if len(args) > 0 {
		sceneArgs = args[:1]
	}
	cfg, err := buildConfig(cmd, sceneArgs)
	if err != nil {
		return err
	}

	modes := []string{"verlet", "euler"}
	if len(args) > 1 {
		modes = args[1:]
	}
	for _, mode := range modes {
		if _, err := sim.ParseMode(mode); err != nil {
			return err
		}
	}

	fmt.Printf("comparing modes for %s (dt=%.4f, ticks=%d)\n\n", cfg.Scene, cfg.Dt, cfg.Ticks)

	results := make([]compareResult, len(modes))
	var wg sync.WaitGroup
	for i, mode := range modes {
		wg.Add(1)
		go func(i int, mode string) {
			defer wg.Done()
			c := *cfg
			c.Mode = mode

			start := time.Now()
			_, tr, err := runBatch(&c)
			elapsed := time.Since(start)
			if err != nil {
				results[i] = compareResult{mode: mode, err: err}
				return
			}
			results[i] = compareResult{
				mode:    mode,
				kinetic: tr.Metrics["kinetic"],
				stretch: tr.Metrics["max_stretch"],
				faults:  tr.FaultCount(),
				elapsed: elapsed,
			}
		}(i, mode)
	}
	wg.Wait()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MODE\tKINETIC\tMAX_STRETCH\tFAULTS\tTIME_MS")
	for _, r := range results {
		if r.err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", r.mode, r.err)
			continue
		}
		fmt.Fprintf(w, "%s\t%.6f\t%.6f\t%d\t%.2f\n",
			r.mode, r.kinetic, r.stretch, r.faults,
			float64(r.elapsed.Microseconds())/1000)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	scenes := make([]string, 0, len(config.Presets))
	for name := range config.Presets {
		scenes = append(scenes, name)
	}
	sort.Strings(scenes)

	if len(args) == 1 {
		variants := config.ListPresets(args[0])
		if len(variants) == 0 {
			fmt.Printf("no presets for scene: %s\n", args[0])
			return nil
		}
		sort.Strings(variants)
		fmt.Printf("presets for %s:\n", args[0])
		for _, v := range variants {
			fmt.Printf("  %s/%s\n", args[0], v)
		}
		return nil
	}

	for _, name := range scenes {
		variants := config.ListPresets(name)
		sort.Strings(variants)
		for _, v := range variants {
			fmt.Printf("%s/%s\n", name, v)
		}
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	_, tr, err := runBatch(cfg)
	if err != nil {
		return err
	}
	return export.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	_, tr, err := runBatch(cfg)
	if err != nil {
		return err
	}
	return export.WriteJSON(os.Stdout, tr)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}
	sc, tr, err := runBatch(cfg)
	if err != nil {
		return err
	}
	return export.WriteSVG(os.Stdout, sc.World, tr, svgWidth, svgHeight)
}

func benchScene(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	sizes := []int{16, 64, 256}
	passes := []int{1, 8, 32}

	fmt.Printf("benchmarking %s\n\n", cfg.Scene)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tITERATIONS\tTICKS\tTIME\tSTEPS/SEC")

	for _, n := range sizes {
		for _, it := range passes {
			c := *cfg
			c.Setup.Particles = n
			c.Iterations = it

			start := time.Now()
			_, tr, err := runBatch(&c)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			steps := len(tr.Ticks)
			stepsPerSec := float64(steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", n, it, steps, elapsed, stepsPerSec)
		}
	}
	return w.Flush()
}
