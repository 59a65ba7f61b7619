package main

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/attractorlab/attractor/internal/config"
	"github.com/attractorlab/attractor/internal/experiment"
	"github.com/attractorlab/attractor/internal/metrics"
	"github.com/attractorlab/attractor/internal/particle"
	"github.com/attractorlab/attractor/internal/sim"
	"github.com/attractorlab/attractor/internal/storage"
	"github.com/attractorlab/attractor/internal/viz"
)

var (
	dataDir    string
	field      string
	integrator string
	dt         float64
	tickHz     int
	particles  int
	lifespan   float64
	fadeStep   int
	queueCap   int
	seed       int64
	duration   float64
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "attractor",
		Short: "strange attractor particle simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".attractor", "data directory")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run simulation with live visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless simulation and record a trace",
		RunE:  runHeadless,
	}
	addSimFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration in seconds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(liveCmd, runCmd, listCmd, plotCmd, exportCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&field, "field", "lorenz", "vector field")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "integration step per tick")
	cmd.Flags().IntVar(&tickHz, "tick-hz", config.DefaultTickHz, "simulation tick rate")
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "initial particle count")
	cmd.Flags().Float64Var(&lifespan, "lifespan", config.DefaultLifespan, "particle lifespan in seconds (0 = immortal)")
	cmd.Flags().IntVar(&fadeStep, "fade-step", config.DefaultFadeStep, "per-tick color decrement")
	cmd.Flags().IntVar(&queueCap, "queue-capacity", config.DefaultQueueCap, "seed queue capacity")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers preset, config file, and CLI flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("field") {
		cfg.Field = field
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("tick-hz") {
		cfg.TickHz = tickHz
	}
	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("lifespan") {
		cfg.Lifespan = lifespan
	}
	if cmd.Flags().Changed("fade-step") {
		cfg.FadeStep = fadeStep
	}
	if cmd.Flags().Changed("queue-capacity") {
		cfg.QueueCap = queueCap
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func buildEngine(cfg *config.Config) (*sim.Engine, error) {
	registry := experiment.NewRegistry()

	f, err := registry.GetField(cfg.Field)
	if err != nil {
		return nil, err
	}
	integ, err := registry.GetIntegrator(cfg.Integrator)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	return sim.NewEngine(sim.Options{
		Field:      f,
		Integrator: integ,
		Dt:         cfg.Dt,
		Period:     cfg.TickPeriod(),
		Lifespan:   cfg.Lifespan,
		FadeStep:   uint8(cfg.FadeStep),
		Initial:    particle.RandomCloud(cfg.Particles, rng),
		QueueCap:   cfg.QueueCap,
	}), nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	return viz.Run(engine, cfg.Field, cfg.Seed)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	engine, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	observers := registry.DefaultMetrics()

	ticks := int(cfg.Duration * float64(cfg.TickHz))
	trace := make([]storage.TraceRow, 0, ticks+1)

	observe := func() {
		frame := engine.OnFrame()
		if frame == nil {
			return
		}
		for _, m := range observers {
			m.Observe(frame)
		}
		trace = append(trace, storage.TraceRow{
			Generation: frame.Generation,
			Time:       frame.Time,
			Population: len(frame.Particles),
			Spread:     metrics.SnapshotSpread(frame),
		})
	}

	fmt.Printf("running %s simulation...\n", cfg.Field)
	start := time.Now()

	observe()
	tickSeconds := cfg.TickPeriod().Seconds()
	for i := 1; i <= ticks; i++ {
		engine.Tick(float64(i) * tickSeconds)
		observe()
	}

	elapsed := time.Since(start)

	results := make(map[string]float64, len(observers))
	for _, m := range observers {
		results[m.Name()] = m.Value()
	}

	runID, err := st.Save(storage.RunMetadata{
		Field:      cfg.Field,
		Integrator: cfg.Integrator,
		Seed:       cfg.Seed,
		Dt:         cfg.Dt,
		TickHz:     cfg.TickHz,
		Lifespan:   cfg.Lifespan,
		Duration:   cfg.Duration,
		Ticks:      uint64(ticks),
		Metrics:    results,
	}, trace)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", ticks)
	fmt.Println("\nmetrics:")
	for name, val := range results {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tFIELD\tTIME\tDURATION\tDT\tINTEG\tLIFESPAN")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%s\t%.1fs\n",
			run.ID,
			run.Field,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Lifespan,
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

	trace, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}
	if len(trace) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("field: %s\n", meta.Field)
	fmt.Printf("samples: %d\n\n", len(trace))

	population := make([]float64, len(trace))
	spread := make([]float64, len(trace))
	for i, row := range trace {
		population[i] = float64(row.Population)
		spread[i] = row.Spread
	}

	fmt.Println(asciigraph.Plot(population,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population vs time"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(spread,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("spread vs time"),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFIELD\tINTEG\tDT\tPARTICLES\tLIFESPAN")

	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%d\t%.1fs\n",
			name, p.Field, p.Integrator, p.Dt, p.Particles, p.Lifespan)
	}

	return w.Flush()
}
