package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/san-kum/boxsim/internal/analysis"
	"github.com/san-kum/boxsim/internal/config"
	"github.com/san-kum/boxsim/internal/dynamo"
	"github.com/san-kum/boxsim/internal/experiment"
	"github.com/san-kum/boxsim/internal/export"
	"github.com/san-kum/boxsim/internal/log"
	"github.com/san-kum/boxsim/internal/metrics"
	"github.com/san-kum/boxsim/internal/optim"
	"github.com/san-kum/boxsim/internal/report"
	"github.com/san-kum/boxsim/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	logLevel   string
	configFile string
	preset     string
	dt         float64
	subSteps   int
	frames     int
	gravity    float64
	metricList []string
	saveConfig string
	sweepGrid  []string
	sweepBy    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "boxsim",
		Short:        "1-D box and spring physics simulation",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := log.ParseLevel(logLevel)
			if err != nil {
				return err
			}
			log.SetLevel(level)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".boxsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (error, warn, info, debug, trace)")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run simulation",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultTimestep, "macro timestep")
	runCmd.Flags().IntVar(&subSteps, "substeps", config.DefaultSubSteps, "sub-steps per frame")
	runCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	runCmd.Flags().Float64Var(&gravity, "gravity", 0, "constant acceleration along +y")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to record (default all)")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective scenario to this path")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body positions of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).ExportJSON(os.Stdout, args[0])
		},
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).CopyStates(os.Stdout, args[0])
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tBODIES\tSPRINGS\tSUBSTEPS\tGRAVITY")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%g\n", name, len(p.Bodies), len(p.Springs), p.SubSteps, p.Gravity)
			}
			return w.Flush()
		},
	}

	metricsCmd := &cobra.Command{
		Use:   "metrics",
		Short: "list available metrics",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range experiment.NewRegistry().ListMetrics() {
				fmt.Println(name)
			}
		},
	}

	compareCmd := &cobra.Command{
		Use:   "compare [preset] [substeps...]",
		Short: "compare sub-step counts on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareSubSteps,
	}
	compareCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	compareCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of body positions",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id] [body]",
		Short: "position against velocity plot of one body",
		Args:  cobra.ExactArgs(2),
		RunE:  phasePlot,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export body trajectories to SVG",
		Args:  cobra.ExactArgs(2),
		RunE:  exportSVG,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid search scenario parameters for the lowest metric value",
		Args:  cobra.MaximumNArgs(1),
		RunE:  sweepParams,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "scenario file path (yaml)")
	sweepCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of frames")
	sweepCmd.Flags().StringArrayVar(&sweepGrid, "param", nil, "parameter grid, e.g. substeps=4,8,14 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepBy, "metric", "energy_drift", "metric to minimize")

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, presetsCmd, metricsCmd, compareCmd, analyzeCmd, phaseCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadScenario resolves the scenario from a preset name, then a config file,
// then explicitly set flags, each overriding the previous.
func loadScenario(cmd *cobra.Command, name string) (*config.Scenario, error) {
	s := config.DefaultScenario()

	if name != "" {
		p := config.GetPreset(name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		s = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		s.Timestep = dt
	}
	if flags.Changed("substeps") {
		s.SubSteps = subSteps
	}
	if flags.Changed("frames") {
		s.Frames = frames
	}
	if flags.Changed("gravity") {
		s.Gravity = gravity
	}

	if len(s.Bodies) == 0 {
		return nil, fmt.Errorf("no bodies: pass a preset or --config (presets: %v)", config.ListPresets())
	}
	return s, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	name := preset
	if len(args) > 0 {
		name = args[0]
	}

	s, err := loadScenario(cmd, name)
	if err != nil {
		return err
	}

	exp := experiment.New(s)
	if err := exp.Setup(metricList...); err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, s); err != nil {
			return err
		}
		log.Info("scenario written to %s", saveConfig)
	}

	world := exp.Simulator().World()
	trace := &energyTrace{springs: world.Springs}
	exp.Simulator().AddObserver(trace)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s: %d bodies, %d springs, %d frames x %d sub-steps\n",
		s.Name, len(world.Bodies), len(world.Springs), s.Frames, s.SubSteps)
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		if result == nil || result.FramesRun == 0 {
			return err
		}
		log.Warn("run stopped after %d frames: %v", result.FramesRun, err)
	}

	elapsed := time.Since(start)

	runID, err := st.Save(exp.Metadata(), result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", result.FramesRun)
	fmt.Printf("energy drift: %.6f\n\n", result.EnergyDrift)
	fmt.Println(report.MetricsTable(result.Metrics))
	fmt.Println()
	fmt.Println(report.StatsTable(metrics.Compute(world.Bodies, world.Springs)))
	fmt.Println()
	fmt.Printf("%s %s\n", report.Subtle.Render("energy"), report.Sparkline(trace.values, 60))

	return nil
}

// energyTrace records total energy after every frame.
type energyTrace struct {
	springs []dynamo.Spring
	values  []float64
}

func (e *energyTrace) OnFrame(bodies []dynamo.Body, _ float64) {
	e.values = append(e.values, metrics.Compute(bodies, e.springs).Total)
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tDT\tSUBSTEPS\tBODIES\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%g\t%d\t%d\t%.2e\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Timestep,
			run.SubSteps,
			len(run.Bodies),
			run.EnergyDrift,
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

	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(states.Rows))

	cols := states.PositionColumns()
	maxPlots := 6
	if len(cols) > maxPlots {
		cols = cols[:maxPlots]
	}

	series := make([][]float64, 0, len(cols))
	for _, col := range cols {
		id := strings.TrimSuffix(col, "_y")
		data := states.Column(col)
		series = append(series, data)
		fmt.Println(report.Chart(data, id+" position"))
		fmt.Println()
	}

	if len(series) > 1 {
		fmt.Println(report.MultiChart(series, "all positions"))
	}

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tPERIOD\tFREQUENCY")
	for _, col := range states.PositionColumns() {
		id := strings.TrimSuffix(col, "_y")
		period, ok := analysis.DominantPeriod(states.Column(col), meta.Timestep)
		if !ok {
			fmt.Fprintf(w, "%s\t-\t-\n", id)
			continue
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.5f\n", id, period, 1/period)
	}
	return w.Flush()
}

func phasePlot(cmd *cobra.Command, args []string) error {
	runID, body := args[0], args[1]

	states, err := storage.New(dataDir).LoadStates(runID)
	if err != nil {
		return err
	}

	pos := states.Column(body + "_y")
	vel := states.Column(body + "_v")
	if pos == nil || vel == nil {
		return fmt.Errorf("body %q not found in run %s (columns: %v)", body, runID, states.Columns)
	}

	fmt.Printf("phase portrait: %s (x: position, y: velocity)\n\n", body)
	fmt.Print(analysis.NewPhasePortrait(pos, vel).ASCII(70, 20))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID, path := args[0], args[1]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	states, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	var tracks []export.Track
	for _, col := range states.PositionColumns() {
		tracks = append(tracks, export.Track{Name: strings.TrimSuffix(col, "_y"), Positions: states.Column(col)})
	}

	svg := export.TrajectoriesSVG(states.Times, tracks, meta.LowerBound, meta.UpperBound, 800, 400)
	if svg == "" {
		return fmt.Errorf("no data to export")
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func compareSubSteps(cmd *cobra.Command, args []string) error {
	s, err := loadScenario(cmd, args[0])
	if err != nil {
		return err
	}

	counts := make([]int, 0, len(args)-1)
	for _, a := range args[1:] {
		n, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("invalid sub-step count %q: %w", a, err)
		}
		counts = append(counts, n)
	}

	fmt.Printf("comparing sub-steps for %s (dt=%g, frames=%d)\n\n", s.Name, s.Timestep, s.Frames)

	results, err := experiment.CompareSubSteps(context.Background(), s, counts)
	if err != nil {
		return err
	}

	fmt.Printf("%-10s  %-14s  %-14s  %-12s\n", "substeps", "energy_drift", "momentum", "containment")
	fmt.Println(strings.Repeat("-", 56))
	for _, c := range results {
		fmt.Printf("%-10d  %14.6e  %14.6e  %12.4f\n",
			c.SubSteps, c.EnergyDrift, c.Metrics["momentum_drift"], c.Metrics["containment"])
	}
	fmt.Printf("\nelapsed: %v\n", results[0].Elapsed)

	return nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	s, err := loadScenario(cmd, name)
	if err != nil {
		return err
	}
	if len(sweepGrid) == 0 {
		return fmt.Errorf("no --param given")
	}

	names := make([]string, 0, len(sweepGrid))
	ranges := make([][]float64, 0, len(sweepGrid))
	for _, entry := range sweepGrid {
		key, list, ok := strings.Cut(entry, "=")
		if !ok {
			return fmt.Errorf("invalid --param %q, want name=v1,v2", entry)
		}
		var values []float64
		for _, f := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
			if err != nil {
				return fmt.Errorf("invalid value in --param %q: %w", entry, err)
			}
			values = append(values, v)
		}
		names = append(names, key)
		ranges = append(ranges, values)
	}

	best, trials, err := optim.NewGridSearch(names, ranges).Search(cmd.Context(), s, sweepBy)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepBy))
	for _, t := range trials {
		cells := make([]string, len(names))
		for i, n := range names {
			cells[i] = strconv.FormatFloat(t.Params[n], 'g', -1, 64)
		}
		value := fmt.Sprintf("%.6e", t.Value)
		if t.Err != nil {
			value = "error: " + t.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(cells, "\t"), value)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest: %v (%s=%.6e)\n", best.Params, sweepBy, best.Value)
	return nil
}
