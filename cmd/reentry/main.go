package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/reentry/internal/automation"
	"github.com/san-kum/reentry/internal/config"
	"github.com/san-kum/reentry/internal/dynamo"
	"github.com/san-kum/reentry/internal/experiment"
	"github.com/san-kum/reentry/internal/export"
	"github.com/san-kum/reentry/internal/logging"
	"github.com/san-kum/reentry/internal/optim"
	"github.com/san-kum/reentry/internal/physics"
	"github.com/san-kum/reentry/internal/storage"
	"github.com/san-kum/reentry/internal/trajectory"
	"github.com/san-kum/reentry/internal/tui"
)

var (
	settingsDir string
	dataDir     string
	backendKind string
	logLevel    string
	logFormat   string

	preset       string
	scenarioFile string
	integrator   string
	dt           float64
	maxSteps     int
	angle        float64
	lift         float64
	mass         float64

	jsonOut  bool
	noSave   bool
	progress bool

	delay       time.Duration
	integrators []string
	withTrace   bool
	svgOut      string

	sweepParams []string
	metricName  string
	mcConfig    automation.MonteCarloConfig
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "reentry",
		Short:         "atmospheric entry landing prediction",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsDir, "settings", ".", "directory holding reentry.yaml")
	pf.StringVar(&dataDir, "data", "", "run storage directory (overrides storage.dir)")
	pf.StringVar(&backendKind, "storage", "", "storage backend: fs, sqlite or memory")
	pf.StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
	pf.StringVar(&logFormat, "log-format", "", "log format: text or json")

	predictCmd := &cobra.Command{
		Use:   "predict [body]",
		Short: "predict where a vehicle lands",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runPredict,
	}
	scenarioFlags(predictCmd)
	predictCmd.Flags().BoolVar(&jsonOut, "json", false, "print the result as JSON")
	predictCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	predictCmd.Flags().BoolVar(&progress, "progress", false, "print a status line while running")

	traceCmd := &cobra.Command{
		Use:   "trace [body]",
		Short: "watch a prediction live",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTrace,
	}
	scenarioFlags(traceCmd)
	traceCmd.Flags().DurationVar(&delay, "delay", 2*time.Millisecond, "pause per step")
	traceCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	compareCmd := &cobra.Command{
		Use:   "compare [body]",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runCompare,
	}
	scenarioFlags(compareCmd)
	compareCmd.Flags().StringSliceVar(&integrators, "integrators", nil, "integrators to compare (default all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot altitude and temperature of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().BoolVar(&withTrace, "trace", false, "include every sample")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a stored trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&svgOut, "output", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [body]",
		Short: "list scenario presets for a body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for body: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	bodiesCmd := &cobra.Command{
		Use:   "bodies",
		Short: "list known bodies",
		RunE:  listBodies,
	}

	optimizeCmd := &cobra.Command{
		Use:   "optimize [body]",
		Short: "grid search scenario parameters for the lowest metric",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runOptimize,
	}
	scenarioFlags(optimizeCmd)
	optimizeCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "swept parameter, e.g. angle=0:90:15 or lift=0,0.1")
	optimizeCmd.Flags().StringVar(&metricName, "metric", "peak_temperature", "metric to minimise")

	batchCmd := &cobra.Command{
		Use:   "batch [file]",
		Short: "run every prediction in a batch file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	dispersionCmd := &cobra.Command{
		Use:   "dispersion [body]",
		Short: "monte carlo landing footprint",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDispersion,
	}
	scenarioFlags(dispersionCmd)
	dispersionCmd.Flags().IntVar(&mcConfig.Trials, "trials", 100, "number of trials")
	dispersionCmd.Flags().Int64Var(&mcConfig.Seed, "seed", 0, "random seed (0 uses the clock)")
	dispersionCmd.Flags().Float64Var(&mcConfig.SpeedSigma, "speed-sigma", 10, "entry speed sigma in m/s")
	dispersionCmd.Flags().Float64Var(&mcConfig.FlightPathSigma, "fpa-sigma", 0.1, "flight path angle sigma in degrees")
	dispersionCmd.Flags().Float64Var(&mcConfig.MassSigma, "mass-sigma", 0.01, "mass sigma as a fraction")
	dispersionCmd.Flags().IntVar(&mcConfig.Workers, "workers", 0, "concurrent trials (0 uses GOMAXPROCS)")

	rootCmd.AddCommand(predictCmd, traceCmd, compareCmd, optimizeCmd, batchCmd, dispersionCmd,
		listCmd, plotCmd, exportJSONCmd, svgCmd, presetsCmd, bodiesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func scenarioFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "", "use a preset scenario")
	f.StringVar(&scenarioFile, "config", "", "scenario file (yaml)")
	f.StringVar(&integrator, "integrator", "", "integrator")
	f.Float64Var(&dt, "dt", 0, "step size in seconds")
	f.IntVar(&maxSteps, "steps", 0, "step budget")
	f.Float64Var(&angle, "angle", 0, "entry angle in degrees")
	f.Float64Var(&lift, "lift", 0, "lift coefficient")
	f.Float64Var(&mass, "mass", 0, "vehicle mass in kg")
}

// loadScenario picks the scenario from a preset, a file or the default,
// then applies explicitly set flags on top.
func loadScenario(cmd *cobra.Command, args []string) (*config.Config, error) {
	body := config.DefaultBody
	if len(args) > 0 {
		body = args[0]
	}

	var cfg *config.Config
	switch {
	case scenarioFile != "":
		loaded, err := config.Load(scenarioFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load scenario: %w", err)
		}
		cfg = loaded
	case preset != "":
		cfg = config.GetPreset(body, preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(body))
		}
	case body == config.DefaultBody:
		cfg = config.DefaultConfig()
	default:
		return nil, fmt.Errorf("no default scenario for %s: use --preset (available: %v) or --config", body, config.ListPresets(body))
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("dt") {
		cfg.SetStepSize(dt)
	}
	if flags.Changed("steps") {
		cfg.SetMaxSteps(maxSteps)
	}
	if flags.Changed("angle") {
		cfg.Angle = angle
	}
	if flags.Changed("lift") {
		cfg.Lift = lift
	}
	if flags.Changed("mass") {
		cfg.Vehicle.Mass = mass
	}
	if cfg.Name == "" {
		cfg.Name = cfg.Body
	}
	return cfg, nil
}

func loadSettings() (*config.Settings, error) {
	s, err := config.LoadSettings(settingsDir)
	if err != nil {
		return nil, err
	}
	if dataDir != "" {
		s.Storage.Dir = dataDir
	}
	if backendKind != "" {
		s.Storage.Backend = backendKind
	}
	if logLevel != "" {
		s.Log.Level = logLevel
	}
	if logFormat != "" {
		s.Log.Format = logFormat
	}
	return s, nil
}

func openStorage(s *config.Settings) (storage.Backend, error) {
	return storage.Open(s.Storage.Backend, s.Storage.Dir)
}

func newLogger(s *config.Settings) *slog.Logger {
	return logging.New(os.Stderr, s.Log.Level, s.Log.Format)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPredict(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	logger := newLogger(s)

	var bar *tui.Progress
	opts := []experiment.Option{experiment.WithLogger(logger)}
	if progress {
		bar = tui.NewProgress(os.Stderr, cfg.Name, 20)
		opts = append(opts, experiment.WithObserver(bar))
	}

	exp, err := experiment.New(cfg, s.Simulation, opts...)
	if err != nil {
		if jsonOut {
			return export.Write(os.Stdout, export.FromError(err))
		}
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	if bar != nil {
		bar.Start()
	}
	res, runErr := exp.Run(ctx)
	if bar != nil {
		var last *dynamo.Sample
		if n := len(res.Samples); n > 0 {
			last = &res.Samples[n-1]
		}
		bar.Stop(last)
	}

	runID := ""
	if !noSave && !errors.Is(runErr, context.Canceled) {
		runID, err = saveRun(s, exp, res, runErr)
		if err != nil {
			logger.Warn("failed to store run", "error", err)
		}
	}

	if jsonOut {
		return export.Write(os.Stdout, export.FromRun(res.Landing, runErr))
	}
	if runErr != nil {
		return runErr
	}
	printLanding(cfg, res, runID)
	return nil
}

func saveRun(s *config.Settings, exp *experiment.Experiment, res *trajectory.Result, runErr error) (string, error) {
	st, err := openStorage(s)
	if err != nil {
		return "", err
	}
	defer st.Close()

	meta := storage.NewRunMetadata(exp.Config().Name, exp.Settings(), exp.Snapshot(), exp.Body().Name(), res, runErr)
	return st.Save(meta, res.Samples)
}

func printLanding(cfg *config.Config, res *trajectory.Result, runID string) {
	l := res.Landing
	fmt.Printf("scenario: %s\n", cfg.Name)
	fmt.Printf("termination: %s\n", l.Termination)
	fmt.Printf("landing: angle %.4f°  x %.1f  y %.1f  height %.1fm\n", l.Point.Angle, l.Point.X, l.Point.Y, l.Point.Height)
	fmt.Printf("steps: %d  flight %.2fs  impact %.2fs\n", l.Steps, l.FlightTime, l.ImpactTime)
	fmt.Printf("temperature: %.1fK  speed %.1fm/s\n", l.Temperature, l.Velocity.Len())
	fmt.Printf("computed in %v\n", res.Elapsed)
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	if len(res.Metrics) > 0 {
		fmt.Println("\nmetrics:")
		for name, val := range res.Metrics {
			fmt.Printf("  %s: %.6g\n", name, val)
		}
	}
}

func runTrace(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	feed := tui.NewFeed(delay)
	exp, err := experiment.New(cfg, s.Simulation, experiment.WithObserver(feed), experiment.WithoutMetrics())
	if err != nil {
		return err
	}

	tr, err := tui.RunTrace(context.Background(), cfg.Name, exp.Runner(), feed)
	if err != nil {
		return err
	}
	if tr.Canceled {
		fmt.Printf("cancelled after %d steps\n", len(tr.Samples))
		return nil
	}

	res := &trajectory.Result{Samples: tr.Samples, Termination: tr.Termination, Landing: tr.Landing}
	if !noSave {
		runID, err := saveRun(s, exp, res, tr.Err)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return export.Write(os.Stdout, export.FromRun(tr.Landing, tr.Err))
}

func runCompare(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	names := integrators
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	ctx, cancel := signalContext()
	defer cancel()

	results, err := experiment.Compare(ctx, cfg, s.Simulation, names, experiment.WithLogger(newLogger(s)))
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s  dt=%gs\n\n", cfg.Name, cfg.Apply(s.Simulation).StepSize)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tSTEPS\tANGLE\tΔANGLE\tIMPACT\tΔIMPACT\tRESULT")
	for _, c := range results {
		if c.Err != nil {
			fmt.Fprintf(w, "%s\t%d\t-\t-\t-\t-\t%s\n", c.Integrator, len(c.Result.Samples), export.FromError(c.Err).Error)
			continue
		}
		l := c.Result.Landing
		fmt.Fprintf(w, "%s\t%d\t%.4f°\t%+.4f°\t%.2fs\t%+.3fs\t%s\n",
			c.Integrator, l.Steps, l.Point.Angle, c.AngleDelta, l.ImpactTime, c.ImpactDelta, l.Termination)
	}
	return w.Flush()
}

func runOptimize(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("at least one --param is required")
	}
	params := make([]optim.Param, 0, len(sweepParams))
	for _, p := range sweepParams {
		param, err := optim.ParseParam(p)
		if err != nil {
			return err
		}
		params = append(params, param)
	}

	ctx, cancel := signalContext()
	defer cancel()

	g := optim.NewGridSearch(params...)
	fmt.Printf("searching %d points of %s for the lowest %s...\n", g.Size(), cfg.Name, metricName)
	best, trials, err := g.Search(ctx, optim.Builder(cfg, s.Simulation, experiment.WithLogger(newLogger(s))), metricName)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	header := make([]string, 0, len(params)+1)
	for _, p := range params {
		header = append(header, strings.ToUpper(p.Name))
	}
	fmt.Fprintln(w, strings.Join(header, "\t")+"\t"+strings.ToUpper(metricName))
	for _, t := range trials {
		for _, p := range params {
			fmt.Fprintf(w, "%g\t", t.Params[p.Name])
		}
		if t.Err != nil {
			fmt.Fprintf(w, "%s\n", export.FromError(t.Err).Error)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", t.Value)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	fmt.Printf("\nbest %s: %.6g at", metricName, best.Value)
	for _, p := range params {
		fmt.Printf(" %s=%g", p.Name, best.Params[p.Name])
	}
	fmt.Println()
	return nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	b, err := automation.LoadBatch(args[0])
	if err != nil {
		return fmt.Errorf("failed to load batch: %w", err)
	}

	ctx, cancel := signalContext()
	defer cancel()

	logger := newLogger(s)
	outcomes, err := automation.RunBatch(ctx, b, s.Simulation, experiment.WithLogger(logger))
	if err != nil {
		return err
	}

	var st storage.Backend
	if !noSave {
		st, err = openStorage(s)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	fmt.Printf("batch: %s (%d runs)\n\n", b.Name, len(outcomes))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "LABEL\tSTEPS\tANGLE\tIMPACT\tRESULT\tRUN ID")
	for _, o := range outcomes {
		runID := ""
		if st != nil {
			exp := o.Experiment
			meta := storage.NewRunMetadata(exp.Config().Name, exp.Settings(), exp.Snapshot(), exp.Body().Name(), o.Result, o.Err)
			if runID, err = st.Save(meta, o.Result.Samples); err != nil {
				logger.Warn("failed to store run", "label", o.Label, "error", err)
			}
		}
		if o.Err != nil {
			fmt.Fprintf(w, "%s\t%d\t-\t-\t%s\t%s\n", o.Label, len(o.Result.Samples), export.FromError(o.Err).Error, runID)
			continue
		}
		l := o.Result.Landing
		fmt.Fprintf(w, "%s\t%d\t%.4f°\t%.2fs\t%s\t%s\n", o.Label, l.Steps, l.Point.Angle, l.ImpactTime, l.Termination, runID)
	}
	return w.Flush()
}

func runDispersion(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	cfg, err := loadScenario(cmd, args)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("running %d trials of %s...\n", mcConfig.Trials, cfg.Name)
	results, err := automation.RunMonteCarlo(ctx, cfg, s.Simulation, mcConfig, experiment.WithLogger(newLogger(s)))
	if err != nil {
		return err
	}

	fp := automation.Summarize(results)
	fmt.Printf("landed: %d  failed: %d\n", fp.Landed, fp.Failed)
	if fp.Landed == 0 {
		return nil
	}
	fmt.Printf("angle: mean %.4f°  sigma %.4f°  range [%.4f°, %.4f°]\n", fp.MeanAngle, fp.StdAngle, fp.MinAngle, fp.MaxAngle)
	fmt.Printf("mean impact time: %.2fs\n", fp.MeanImpactTime)

	angles := make([]float64, 0, fp.Landed)
	for _, r := range results {
		if r.Landing != nil {
			angles = append(angles, r.Landing.Point.Angle)
		}
	}
	if len(angles) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(angles,
			asciigraph.Height(8),
			asciigraph.Width(80),
			asciigraph.Caption("landing angle (deg) per trial"),
		))
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	s, err := loadSettings()
	if err != nil {
		return err
	}
	st, err := openStorage(s)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tINTEG\tDT\tSTEPS\tRESULT")
	for _, run := range runs {
		result := run.Termination
		if !run.Success {
			result = "error: " + run.Error
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%gs\t%d\t%s\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Integrator,
			run.StepSize,
			run.Steps,
			result,
		)
	}
	return w.Flush()
}

func loadStored(id string) (*storage.RunMetadata, []dynamo.Sample, error) {
	s, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	st, err := openStorage(s)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadTrace(id)
	if err != nil {
		return nil, nil, err
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadStored(args[0])
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(samples))

	alt := make([]float64, len(samples))
	temp := make([]float64, len(samples))
	for i, s := range samples {
		alt[i] = s.Altitude / 1000
		temp[i] = s.Temperature
	}

	fmt.Println(asciigraph.Plot(alt,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("altitude (km) vs step"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(temp,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("temperature (K) vs step"),
	))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadStored(args[0])
	if err != nil {
		return err
	}
	if withTrace {
		return export.WriteTrace(os.Stdout, meta, samples)
	}
	return export.Write(os.Stdout, export.FromMetadata(meta))
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadStored(args[0])
	if err != nil {
		return err
	}
	body, err := physics.Lookup(meta.Body)
	if err != nil {
		return err
	}
	points := (&trajectory.Result{Samples: samples}).Points()
	svg := export.TrajectoryToSVG(points, body.Radius(), 800, 800, "#00ccff")

	if svgOut == "" {
		_, err = fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func listBodies(cmd *cobra.Command, args []string) error {
	reg := experiment.NewRegistry()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODY\tRADIUS\tGM\tATMOSPHERE\tPRESETS")
	for _, name := range reg.ListBodies() {
		b, err := reg.GetBody(name)
		if err != nil {
			return err
		}
		atmo := "none"
		if b.HasAtmosphere() {
			atmo = fmt.Sprintf("%.0fkm", b.AtmosphereHeight()/1000)
		}
		fmt.Fprintf(w, "%s\t%.1fkm\t%.4g\t%s\t%s\n",
			name, b.Radius()/1000, b.GravParam(), atmo, strings.Join(config.ListPresets(name), ","))
	}
	return w.Flush()
}
