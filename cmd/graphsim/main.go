package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/ooblahman/graph-turbulence/internal/config"
	"github.com/ooblahman/graph-turbulence/internal/scenario"
	"github.com/ooblahman/graph-turbulence/internal/transport"
	"github.com/ooblahman/graph-turbulence/internal/viz"
)

var (
	dt         float64
	duration   float64
	integrator string
	gridN      int
	seed       int64
	frameRate  int
	addr       string
	topic      string
	configFile string
	preset     string
	setParams  []string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "graphsim",
		Short: "scalar field simulations on graphs",
	}

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a simulation headless and plot the result",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a simulation with a live terminal view",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	serveCmd := &cobra.Command{
		Use:   "serve [scenario]",
		Short: "run a simulation and publish frames for remote viewers",
		Args:  cobra.ExactArgs(1),
		RunE:  runServe,
	}
	addSimFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", transport.DefaultAddr, "publish address")
	serveCmd.Flags().StringVar(&topic, "topic", transport.DefaultTopic, "publish topic")
	serveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "attach a terminal view to a running publisher",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}
	viewCmd.Flags().StringVar(&addr, "addr", transport.DefaultAddr, "publisher address")
	viewCmd.Flags().StringVar(&topic, "topic", transport.DefaultTopic, "publisher topic")
	viewCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list registered scenarios",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range scenario.Names() {
				fmt.Println(name)
			}
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [scenario]",
		Short: "list available presets for a scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scenario: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, serveCmd, viewCmd, scenariosCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "time advanced per frame")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	cmd.Flags().IntVar(&gridN, "grid", config.DefaultGridN, "grid side length")
	cmd.Flags().Int64Var(&seed, "seed", config.DefaultSeed, "random seed")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringArrayVar(&setParams, "set", nil, "scenario parameter override (name=value)")
}

// resolveConfig layers defaults, preset, config file, then CLI flags.
func resolveConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		c := config.GetPreset(scenarioName, preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)",
				preset, config.ListPresets(scenarioName))
		}
		cfg = c
	}

	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	}

	cfg.Scenario = scenarioName
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("grid") {
		cfg.GridN = gridN
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("fps") {
		cfg.FPS = frameRate
	}
	if cmd.Flags().Changed("addr") {
		cfg.Addr = addr
	}
	if cmd.Flags().Changed("topic") {
		cfg.Topic = topic
	}

	for _, kv := range setParams {
		name, raw, ok := strings.Cut(kv, "=")
		if !ok {
			return nil, fmt.Errorf("bad --set value %q, want name=value", kv)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("bad --set value %q: %w", kv, err)
		}
		if cfg.Params == nil {
			cfg.Params = map[string]float64{}
		}
		cfg.Params[name] = v
	}

	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sim, err := scenario.Build(cfg.Scenario, cfg)
	if err != nil {
		return err
	}

	obs := sim.Observables()
	histories := make([][]float64, len(obs))

	fmt.Printf("running %s...\n", sim.Desc())
	start := time.Now()

	frames := int(cfg.Duration / cfg.Dt)
	var simErr error
	for i := 0; i < frames; i++ {
		if err := sim.Step(cfg.Dt); err != nil {
			simErr = err
			break
		}
		vecs, err := sim.Measure()
		if err != nil {
			simErr = err
			break
		}
		for j, v := range vecs {
			histories[j] = append(histories[j], v.Mean())
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v (t=%.3f)\n\n", elapsed, sim.T())

	for i, o := range obs {
		if len(histories[i]) < 2 {
			continue
		}
		chart := asciigraph.Plot(histories[i],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(fmt.Sprintf("%s (mean)", o.Desc())),
		)
		fmt.Println(chart)
		fmt.Println()
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PLOT\tKIND\tN\tMIN\tMAX\tMEAN")
	for _, o := range obs {
		v := o.Values()
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4f\t%.4f\t%.4f\n",
			o.Desc(), o.Kind(), o.Len(), v.Min(), v.Max(), v.Mean())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if simErr != nil {
		return fmt.Errorf("simulation stopped: %w", simErr)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sim, err := scenario.Build(cfg.Scenario, cfg)
	if err != nil {
		return err
	}

	m := viz.NewLocal(sim, cfg.Dt, cfg.FPS)
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args[0])
	if err != nil {
		return err
	}
	sim, err := scenario.Build(cfg.Scenario, cfg)
	if err != nil {
		return err
	}

	pub, err := transport.Listen(cfg.Addr, cfg.Topic)
	if err != nil {
		return err
	}
	defer pub.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("publishing %s on %s (topic %s)\n", sim.Desc(), pub.Addr(), cfg.Topic)
	err = transport.Stream(ctx, pub, sim, transport.StreamConfig{
		Dt:       cfg.Dt,
		Interval: time.Second / time.Duration(cfg.FPS),
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runView(cmd *cobra.Command, args []string) error {
	sub, err := transport.Dial(addr, topic)
	if err != nil {
		return err
	}

	m, err := viz.NewRemote(sub, frameRate)
	if err != nil {
		sub.Close()
		return err
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
