package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/tiltball/internal/config"
	"github.com/san-kum/tiltball/internal/export"
	"github.com/san-kum/tiltball/internal/metrics"
	"github.com/san-kum/tiltball/internal/replay"
	"github.com/san-kum/tiltball/internal/session"
	"github.com/san-kum/tiltball/internal/tilt"
	"github.com/san-kum/tiltball/internal/tui"
	"github.com/san-kum/tiltball/internal/viz"
)

var (
	configFile  string
	preset      string
	friction    float64
	maxVelocity float64
	boundX      float64
	verbose     bool
	// live view
	frameRate int
	noPrompt  bool
	theme     string
	// replay output
	every int
	watch bool
	// plot output
	svgFile string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// newRootCmd registers the commands; the live view runs when no
// subcommand is given.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "tiltball",
		Short:        "tilt-driven ball simulator",
		SilenceUsage: true,
		RunE:         runLive,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		setupLogging(cmd)
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Float64Var(&friction, "friction", 0.5, "restitution factor on bounce [0,1]")
	pf.Float64Var(&maxVelocity, "max-velocity", 3.0, "speed clamp per axis")
	pf.Float64Var(&boundX, "bound-x", config.DefaultBoundX, "right edge of the bounce box")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the ball in the terminal, arrow keys tilt the device",
		RunE:  runLive,
	}
	for _, c := range []*cobra.Command{rootCmd, liveCmd} {
		c.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "samples per second")
		c.Flags().BoolVar(&noPrompt, "no-prompt", false, "grant motion access without asking")
		c.Flags().StringVar(&theme, "theme", "zinc", "color theme")
	}

	replayCmd := &cobra.Command{
		Use:   "replay [script]",
		Short: "run a scripted sample sequence and print the trace",
		Args:  cobra.ExactArgs(1),
		RunE:  runReplay,
	}
	replayCmd.Flags().IntVar(&every, "every", 1, "print every nth state")
	replayCmd.Flags().BoolVar(&watch, "watch", false, "animate the replay in the terminal")
	replayCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frames per second with --watch")

	plotCmd := &cobra.Command{
		Use:   "plot [script]",
		Short: "plot position and velocity over a scripted run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotReplay,
	}
	plotCmd.Flags().StringVar(&svgFile, "svg", "", "also write the trajectory as svg")

	compareCmd := &cobra.Command{
		Use:   "compare [script] [preset...]",
		Short: "replay one script under several presets side by side",
		Args:  cobra.MinimumNArgs(2),
		RunE:  runCompare,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFRICTION\tMAX_V\tBOUND_X")
			for _, name := range config.ListPresets() {
				cfg := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.0f\n", name, cfg.Ball.Friction, cfg.Ball.MaxVelocity, cfg.Bounds.Reflect.X.Max)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "configuration helpers",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", args[0])
			return nil
		},
	})

	rootCmd.AddCommand(liveCmd, replayCmd, plotCmd, compareCmd, presetsCmd, configCmd)
	return rootCmd
}

func setupLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(h))
}

// resolveConfig layers defaults, preset, config file and explicit flags,
// in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("friction") {
		cfg.Ball.Friction = friction
	}
	if flags.Changed("max-velocity") {
		cfg.Ball.MaxVelocity = maxVelocity
	}
	if flags.Changed("bound-x") {
		cfg.Bounds.Reflect.X.Max = boundX
	}
	if flags.Changed("fps") {
		cfg.View.FPS = frameRate
	}
	if flags.Changed("no-prompt") {
		cfg.View.Prompt = !noPrompt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	integ, err := cfg.Integrator()
	if err != nil {
		return err
	}

	feed := session.NewFeed()
	var (
		gate   session.Gate
		prompt *session.PromptGate
	)
	if cfg.View.Prompt {
		prompt = session.NewPromptGate()
		gate = prompt
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sess := session.New(integ, feed, gate, slog.Default())
	defer sess.Close()

	m := viz.NewModel(ctx, sess, feed, prompt, viz.Options{
		FPS:      cfg.View.FPS,
		Width:    cfg.View.Width,
		Height:   cfg.View.Height,
		TiltStep: cfg.View.TiltStep,
		Theme:    theme,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func loadAndReplay(cmd *cobra.Command, path string, observers ...session.Observer) (*replay.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	integ, err := cfg.Integrator()
	if err != nil {
		return nil, err
	}
	script, err := replay.LoadScript(path)
	if err != nil {
		return nil, err
	}
	slog.Debug("replaying script", "path", path, "name", script.Name, "entries", len(script.Samples))
	return replay.Run(cmd.Context(), integ, script.Expand(), slog.Default(), observers...)
}

func runReplay(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ms := metrics.Defaults(cfg.TiltBounds())

	observers := make([]session.Observer, 0, len(ms)+1)
	for _, m := range ms {
		observers = append(observers, m)
	}
	if watch {
		r := tui.NewLiveRenderer(cmd.OutOrStdout(), args[0], 0)
		r.Start()
		defer r.Stop()
		observers = append(observers, pacedRenderer{r, frameRate})
	}

	res, err := loadAndReplay(cmd, args[0], observers...)
	if err != nil {
		return err
	}
	if every < 1 {
		every = 1
	}

	out := cmd.OutOrStdout()
	if !watch {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "STEP\tX\tY\tVX\tVY")
		for i, st := range res.States {
			if i%every != 0 && i != len(res.States)-1 {
				continue
			}
			fmt.Fprintf(w, "%d\t%.2f\t%.2f\t%.2f\t%.2f\n",
				i, st.Position.X, st.Position.Y, st.Velocity.X, st.Velocity.Y)
		}
		if err := w.Flush(); err != nil {
			return err
		}
	}

	fmt.Fprintf(out, "\nsteps: %d\n", res.Steps)
	fmt.Fprintln(out, "\nmetrics:")
	for _, m := range ms {
		fmt.Fprintf(out, "  %s: %.4f\n", m.Name(), m.Value())
	}
	return nil
}

// pacedRenderer sleeps between frames so a replay plays back at the
// sample rate instead of instantly.
type pacedRenderer struct {
	r   *tui.LiveRenderer
	fps int
}

func (p pacedRenderer) OnStep(s tilt.State, step int) {
	p.r.OnStep(s, step)
	if p.fps > 0 {
		time.Sleep(time.Second / time.Duration(p.fps))
	}
}

func plotReplay(cmd *cobra.Command, args []string) error {
	res, err := loadAndReplay(cmd, args[0])
	if err != nil {
		return err
	}
	if len(res.States) < 2 {
		return fmt.Errorf("no data to plot")
	}

	if svgFile != "" {
		cfg, err := resolveConfig(cmd)
		if err != nil {
			return err
		}
		svg := export.TrajectoryToSVG(res.States, 400, 400, cfg.Properties())
		if err := os.WriteFile(svgFile, []byte(svg), 0644); err != nil {
			return fmt.Errorf("failed to write svg: %w", err)
		}
		slog.Debug("wrote trajectory", "path", svgFile)
	}

	captions := map[string]string{
		"x":  "x (% of width)",
		"y":  "y (% of height)",
		"vx": "velocity.x",
		"vy": "velocity.y",
	}
	out := cmd.OutOrStdout()
	for _, name := range []string{"x", "y", "vx", "vy"} {
		data, err := res.Series(name)
		if err != nil {
			return err
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[name]),
		)
		fmt.Fprintln(out, graph)
		fmt.Fprintln(out)
	}
	return nil
}

func runCompare(cmd *cobra.Command, args []string) error {
	script, err := replay.LoadScript(args[0])
	if err != nil {
		return err
	}

	names := args[1:]
	variants := make([]replay.Variant, 0, len(names))
	for _, name := range names {
		cfg := config.GetPreset(name)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
		integ, err := cfg.Integrator()
		if err != nil {
			return fmt.Errorf("preset %s: %w", name, err)
		}
		variants = append(variants, replay.Variant{Name: name, Integ: integ})
	}

	results, err := replay.NewEnsemble(slog.Default(), variants...).Run(cmd.Context(), script.Expand())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tX\tY\tVX\tVY\tPEAK_SPEED\tREVERSALS")
	for i, res := range results {
		cfg := config.GetPreset(names[i])
		ms := metrics.Defaults(cfg.TiltBounds())
		metrics.Replay(res.States, ms)
		values := metrics.Collect(ms)

		final := res.Final()
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\n", names[i],
			final.Position.X, final.Position.Y, final.Velocity.X, final.Velocity.Y,
			values["peak_speed"], values["reversals"])
	}
	return w.Flush()
}
