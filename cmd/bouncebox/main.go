package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bouncebox/internal/analysis"
	"github.com/san-kum/bouncebox/internal/automation"
	"github.com/san-kum/bouncebox/internal/boxes"
	"github.com/san-kum/bouncebox/internal/config"
	"github.com/san-kum/bouncebox/internal/export"
	"github.com/san-kum/bouncebox/internal/gui"
	"github.com/san-kum/bouncebox/internal/metrics"
	"github.com/san-kum/bouncebox/internal/optim"
	"github.com/san-kum/bouncebox/internal/screen"
	"github.com/san-kum/bouncebox/internal/sim"
	"github.com/san-kum/bouncebox/internal/storage"
	"github.com/san-kum/bouncebox/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	quiet      bool
	configFile string
	preset     string
	seed       uint64
	frames     int
	frameMs    float32
	width      uint32
	height     uint32
	save       bool
	outFile    string
	svgFile    string
	runs       int
	workers    int
	backend    string
	paramName  string
	paramMin   float64
	paramMax   float64
	steps      int
	grid       []string
	metric     string
	maximize   bool
	sound      bool
	braille    bool
)

// main registers the commands and exits with status 1 on any command error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "bouncebox",
		Short: "bouncing boxes physics demo",
		Args:  cobra.NoArgs,
		RunE:  launch,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if quiet {
				log.SetOutput(io.Discard)
			}
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bouncebox", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "silence lifecycle logging")
	addSessionFlags(rootCmd)
	rootCmd.Flags().StringVar(&backend, "backend", "", "front end to start (headless, term, raylib, ebiten)")
	rootCmd.Flags().BoolVar(&save, "save", true, "store headless runs under --data")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run the simulation headless",
		Args:  cobra.NoArgs,
		RunE:  runHeadless,
	}
	addSessionFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "store the run under --data")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSessionFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a raylib window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return gui.Run(cfg.Width, cfg.Height, sound, sessionOptions(cfg)...)
		},
	}
	addSessionFlags(guiCmd)
	guiCmd.Flags().BoolVar(&sound, "sound", false, "sonify energy and bounces")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in an ebiten window",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return screen.Run(cfg.Width, cfg.Height, sessionOptions(cfg)...)
		},
	}
	addSessionFlags(windowCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the energy curve as SVG")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "re-run a stored run and check it reproduces",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "run headless and write the final frame as SVG",
		Args:  cobra.NoArgs,
		RunE:  snapshot,
	}
	addSessionFlags(snapshotCmd)
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output file")
	snapshotCmd.Flags().BoolVar(&braille, "braille", false, "render the frame as terminal braille dots")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run many seeds in parallel",
		Args:  cobra.NoArgs,
		RunE:  bench,
	}
	addSessionFlags(benchCmd)
	benchCmd.Flags().IntVar(&runs, "runs", 8, "number of seeds")
	benchCmd.Flags().IntVar(&workers, "workers", 4, "concurrent runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "bounce frequency and settling time of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a scripted sequence of sessions",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep one physics parameter",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	addSessionFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&paramName, "param", "bounce_damping", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&steps, "steps", 6, "number of values")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search physics parameters for the best metric",
		Args:  cobra.NoArgs,
		RunE:  tune,
	}
	addSessionFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "parameter values, e.g. gravity=200,500,800 (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "energy", "metric to optimize")
	tuneCmd.Flags().BoolVar(&maximize, "max", false, "maximize instead of minimize")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, windowCmd, listCmd, plotCmd, exportJSONCmd, replayCmd, snapshotCmd, benchCmd, presetsCmd, analyzeCmd, scenarioCmd, sweepCmd, tuneCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSessionFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Uint64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "headless frame count")
	cmd.Flags().Float32Var(&frameMs, "dt", config.DefaultFrameMs, "frame delta in milliseconds")
	cmd.Flags().Uint32Var(&width, "width", config.DefaultWidth, "screen width")
	cmd.Flags().Uint32Var(&height, "height", config.DefaultHeight, "screen height")
}

// resolveConfig layers preset, then config file, then explicitly set flags.
// It returns the config and the name the run is stored under.
func resolveConfig(cmd *cobra.Command) (*config.Config, string, error) {
	cfg := config.DefaultConfig()
	name := "default"

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, "", fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		name = preset
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		name = filepath.Base(configFile)
		name = name[:len(name)-len(filepath.Ext(name))]
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("dt") {
		cfg.FrameMs = frameMs
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return cfg, name, nil
}

func sessionOptions(cfg *config.Config) []boxes.Option {
	opts := []boxes.Option{boxes.WithParams(cfg.Params())}
	if cfg.Seed != 0 {
		opts = append(opts, boxes.WithSeed(cfg.Seed))
	}
	return opts
}

func newSimulator() *sim.Simulator {
	s := sim.New()
	for _, m := range metrics.Default() {
		s.AddMetric(m)
	}
	return s
}

// runOnce is a session runner with fresh metrics per call.
func runOnce(ctx context.Context, cfg *config.Config) (*sim.Result, error) {
	return newSimulator().Run(ctx, cfg)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// launch starts the front end named by the config's backend.
func launch(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	switch cfg.Backend {
	case "term":
		return runLive(cmd, args)
	case "raylib":
		return gui.Run(cfg.Width, cfg.Height, false, sessionOptions(cfg)...)
	case "ebiten":
		return screen.Run(cfg.Width, cfg.Height, sessionOptions(cfg)...)
	default:
		return runHeadless(cmd, args)
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %s for %d frames...\n", name, cfg.Frames)
	start := time.Now()

	result, err := newSimulator().Run(ctx, cfg)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("seed: %d\n", result.Seed)
	fmt.Printf("frames: %d\n", result.FramesRun)
	fmt.Printf("boxes: %d\n", len(result.Final))
	fmt.Printf("bounces: %d (floor %d, wall %d, ceiling %d)\n",
		result.Stats.Bounces(), result.Stats.FloorBounces, result.Stats.WallBounces, result.Stats.CeilingBounces)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for n := range result.Metrics {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		fmt.Printf("  %s: %.6f\n", n, result.Metrics[n])
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(name, cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}
	f, err := tea.LogToFile(filepath.Join(dataDir, "live.log"), "")
	if err != nil {
		return err
	}
	defer f.Close()

	m, err := viz.NewModel(cfg.Width, cfg.Height, cfg.FrameMs, sessionOptions(cfg)...)
	if err != nil {
		return err
	}
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tFRAMES\tSIZE\tBOXES\tBOUNCES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dx%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.Width, run.Height,
			run.Boxes,
			run.Stats.Bounces(),
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(sim.Sample) float64
	}{
		{"box count", func(s sim.Sample) float64 { return float64(s.Count) }},
		{"kinetic energy", func(s sim.Sample) float64 { return s.Energy }},
		{"mean height above floor (px)", func(s sim.Sample) float64 { return s.MeanHeight }},
	}

	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgFile == "" {
		return nil
	}
	points := make([]export.Point, len(samples))
	for i, s := range samples {
		points[i] = export.Point{X: s.Time, Y: s.Energy}
	}
	if err := os.WriteFile(svgFile, []byte(export.SeriesToSVG(points, 800, 400, "#8fb8ff")), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgFile)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 4 {
		return fmt.Errorf("not enough samples to analyze: %d", len(samples))
	}

	heights := make([]float64, len(samples))
	energies := make([]float64, len(samples))
	for i, s := range samples {
		heights[i] = s.MeanHeight
		energies[i] = s.Energy
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("preset: %s\n\n", meta.Preset)

	rate := 1000 / float64(meta.FrameMs)
	ps := analysis.PowerSpectrum(heights)
	graph := asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (mean height)"),
	)
	fmt.Println(graph)
	fmt.Println()

	freq, _ := analysis.DominantFrequency(heights, rate)
	fmt.Printf("dominant bounce frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1/freq)
	}

	if idx := analysis.SettleIndex(energies, 0.05); idx >= 0 {
		fmt.Printf("settled below 5%% of peak energy at %.2f s\n", samples[idx].Time)
	} else {
		fmt.Println("energy has not settled below 5% of peak")
	}
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	cfg, err := st.LoadConfig(runID)
	if err != nil {
		return err
	}
	want, err := st.LoadFinal(runID)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := newSimulator().Run(ctx, cfg)
	if err != nil {
		return err
	}

	// stored positions carry six decimals
	diff := cmp.Diff(want, result.Final, cmp.Comparer(func(a, b float64) bool {
		d := a - b
		return d < 1e-5 && d > -1e-5
	}))
	if diff != "" {
		return fmt.Errorf("replay of %s diverged (-stored +replayed):\n%s", runID, diff)
	}
	fmt.Printf("replay of %s matches (%d boxes, seed %d)\n", runID, len(want), cfg.Seed)
	return nil
}

func snapshot(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	result, err := newSimulator().Run(ctx, cfg)
	if err != nil {
		return err
	}

	svg := export.FrameToSVG(result.LastFrame, result.Width, result.Height, result.ClearColor)
	if braille {
		tr := viz.NewTermRenderer(result.Width, result.Height, viz.DefaultScale)
		for _, rect := range result.LastFrame {
			tr.DrawRect(rect)
		}
		tr.RenderFrame(cfg.FrameMs)
		svg = export.CanvasToSVG(tr.Canvas(), 4)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d rects, seed %d)\n", outFile, len(result.LastFrame), result.Seed)
	return nil
}

func bench(cmd *cobra.Command, args []string) error {
	cfg, name, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if runs <= 0 {
		return fmt.Errorf("runs must be positive, got %d", runs)
	}

	base := cfg.Seed
	if base == 0 {
		base = 1
	}
	seeds := make([]uint64, runs)
	for i := range seeds {
		seeds[i] = base + uint64(i)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("benchmarking %s: %d runs x %d frames, %d workers\n\n", name, runs, cfg.Frames, workers)
	start := time.Now()
	results, err := sim.NewEnsemble(metrics.Default, workers).Run(ctx, cfg, seeds)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBOXES\tBOUNCES\tENERGY\tDECAY\tCONTAINED\tSPIN")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.1f\t%.3f\t%.3f\t%.3f\n",
			r.Seed,
			len(r.Final),
			r.Stats.Bounces(),
			r.Metrics["energy"],
			r.Metrics["energy_decay"],
			r.Metrics["containment"],
			r.Metrics["spin"],
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	total := runs * cfg.Frames
	fmt.Printf("\n%d frames in %v (%.0f frames/sec)\n", total, elapsed, float64(total)/elapsed.Seconds())
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s (%d steps)\n", sc.Name, len(sc.Steps))
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}

	results, err := automation.RunScenario(ctx, sc, runOnce)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPRESET\tSEED\tBOXES\tBOUNCES\tENERGY\tRUN")
	for i, r := range results {
		runID := "-"
		if r.Step.SaveAs != "" {
			if runID, err = st.Save(r.Step.SaveAs, r.Config, r.Result); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.1f\t%s\n",
			i+1,
			r.Step.Preset,
			r.Result.Seed,
			len(r.Result.Final),
			r.Result.Stats.Bounces(),
			r.Result.Metrics["energy"],
			runID,
		)
	}
	return w.Flush()
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  steps,
	}
	results, err := automation.RunSweep(ctx, sweep, runOnce)
	if err != nil {
		return err
	}

	fmt.Printf("sweep %s, seed %d\n\n", paramName, cfg.Seed)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBOXES\tBOUNCES\tENERGY\tCONTAINED\n", strings.ToUpper(paramName))
	energies := make([]float64, len(results))
	for i, r := range results {
		energies[i] = r.Energy
		fmt.Fprintf(w, "%.4f\t%d\t%d\t%.1f\t%.3f\n", r.ParamValue, r.Boxes, r.Bounces, r.Energy, r.Containment)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(energies, asciigraph.Height(8), asciigraph.Caption("mean kinetic energy per step")))
	return nil
}

// parseGrid turns "name=v1,v2,..." entries into parallel name and value
// slices.
func parseGrid(entries []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(entries))
	ranges := make([][]float64, 0, len(entries))
	for _, e := range entries {
		name, list, ok := strings.Cut(e, "=")
		if !ok || name == "" || list == "" {
			return nil, nil, fmt.Errorf("bad grid entry %q, want name=v1,v2", e)
		}
		var vals []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad grid value in %q: %w", e, err)
			}
			vals = append(vals, v)
		}
		names = append(names, name)
		ranges = append(ranges, vals)
	}
	return names, ranges, nil
}

func tune(cmd *cobra.Command, args []string) error {
	cfg, _, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}
	if len(grid) == 0 {
		return fmt.Errorf("no --grid given (tunable: %v)", config.Tunable)
	}
	names, ranges, err := parseGrid(grid)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch(names, ranges)
	g.Maximize = maximize
	best, val, err := g.Search(ctx, cfg, metric, runOnce)
	if err != nil {
		return err
	}

	fmt.Printf("best %s: %.6f (seed %d)\n", metric, val, cfg.Seed)
	for _, n := range names {
		fmt.Printf("  %s = %g\n", n, best[n])
	}
	return nil
}
