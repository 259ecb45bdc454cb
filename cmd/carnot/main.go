package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/san-kum/carnot/internal/audio"
	"github.com/san-kum/carnot/internal/config"
	"github.com/san-kum/carnot/internal/engine"
	"github.com/san-kum/carnot/internal/gui"
	"github.com/san-kum/carnot/internal/gui/ebitengui"
	"github.com/san-kum/carnot/internal/logging"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	hot        string
	cold       string
	fps        int
	seed       int64
	baseSpeed  float64
	speedGain  float64
	theme      string
	audioOn    bool
	autostart  bool
	logPath    string
	logLevel   string
	// gui
	backend string
	// tui
	gifPath string
	// record
	frames  int
	live    bool
	runName string
	// exports
	output string
	angle  float64
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "carnot",
		Short: "animated Carnot cycle engine",
		Long: "Animates a piston engine running the Carnot cycle. The crank turns\n" +
			"faster the more efficient the engine, 1 - T_C/T_H.",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".carnot", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "start from a named preset")
	pf.StringVar(&hot, "hot", "", "hot reservoir temperature T_H (K)")
	pf.StringVar(&cold, "cold", "", "cold reservoir temperature T_C (K)")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frames per second")
	pf.Int64Var(&seed, "seed", 0, "particle seed (0 = time based)")
	pf.Float64Var(&baseSpeed, "base-speed", engine.DefaultBaseSpeed, "crank speed at zero efficiency (rad/frame)")
	pf.Float64Var(&speedGain, "speed-gain", engine.DefaultSpeedGain, "extra crank speed per unit efficiency (rad/frame)")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "terminal theme ("+fmt.Sprint(viz.ThemeNames())+")")
	pf.BoolVar(&audioOn, "audio", false, "play the engine hum")
	pf.BoolVar(&autostart, "autostart", false, "start the engine immediately")
	pf.StringVar(&logPath, "log", "", "log file (the terminal UI logs nowhere without it)")
	pf.StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "terminal animation (default)",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&gifPath, "gif", "carnot.gif", "where G saves the recording")
	rootCmd.Flags().AddFlagSet(tuiCmd.Flags())

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "window with clickable fields and buttons",
		RunE:  runGUI,
	}
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend: raylib or ebiten")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "run the engine headless and save the trace",
		RunE:  runRecord,
	}
	recordCmd.Flags().IntVar(&frames, "frames", 600, "frames to record")
	recordCmd.Flags().BoolVar(&live, "live", false, "draw frames in the terminal while recording")
	recordCmd.Flags().StringVar(&runName, "name", "run", "run name")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot piston position and crank angle",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run frames to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and frames to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg",
		Short: "render one frame to SVG",
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().Float64Var(&angle, "angle", 90, "crank angle in degrees")
	exportSVGCmd.Flags().StringVarP(&output, "output", "o", "carnot.svg", "output file (- for stdout)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "measure the cycle period of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "phase portrait of crank angle against piston position",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&svgOut, "svg", "", "also write the portrait as SVG")

	scriptCmd := &cobra.Command{
		Use:   "script [scenario.yaml]",
		Short: "play a scripted scenario headless",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().BoolVar(&live, "live", false, "draw frames in the terminal while playing")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.Presets[name]
				fmt.Printf("  %-12s T_H=%-8s T_C=%-8s %s\n", name, orDash(p.Hot), orDash(p.Cold), p.Description)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
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
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	rootCmd.AddCommand(tuiCmd, guiCmd, recordCmd, listCmd, plotCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, analyzeCmd, phaseCmd, scriptCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// resolveConfig applies, in order, the defaults, the preset, the config file
// and any flag set explicitly on the command line.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return nil, err
	}
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.Overlay(cfg, configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("hot") {
		cfg.Hot = hot
	}
	if flags.Changed("cold") {
		cfg.Cold = cold
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("base-speed") {
		cfg.Tuning.BaseSpeed = baseSpeed
	}
	if flags.Changed("speed-gain") {
		cfg.Tuning.SpeedGain = speedGain
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("audio") {
		cfg.Audio = audioOn
	}
	if flags.Changed("autostart") {
		cfg.Autostart = autostart
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger logs to stderr unless --log names a file. Programs that own the
// terminal pass quiet so that nothing is written over the screen.
func newLogger(quiet bool) (*slog.Logger, io.Closer, error) {
	if logPath != "" {
		return logging.ToFile(logPath, logLevel)
	}
	if quiet {
		return logging.Discard(), io.NopCloser(nil), nil
	}
	return logging.New(os.Stderr, logLevel), io.NopCloser(nil), nil
}

func newController(cfg *config.Config, log *slog.Logger) (*panel.Controller, error) {
	anim, err := engine.New(cfg.Params(), cfg.Seed)
	if err != nil {
		return nil, err
	}
	ctrl := panel.NewController(anim, log)
	ctrl.SetInputs(cfg.Inputs())
	if cfg.Autostart {
		ctrl.Apply(panel.ActionStart)
	}
	return ctrl, nil
}

// startAudio returns nil when audio is off or the device cannot be opened;
// the animation runs either way.
func startAudio(cfg *config.Config, log *slog.Logger) *audio.Processor {
	if !cfg.Audio {
		return nil
	}
	p := audio.NewProcessor(log)
	if err := p.Start(); err != nil {
		log.Warn("audio disabled", "err", err)
		return nil
	}
	return p
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl, err := newController(cfg, log)
	if err != nil {
		return err
	}
	opts := viz.Options{FPS: cfg.FPS, Theme: cfg.Theme, GIFPath: gifPath, Log: log}
	if p := startAudio(cfg, log); p != nil {
		defer p.Stop()
		opts.Audio = p
	}
	return viz.RunInteractive(ctrl, opts)
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl, err := newController(cfg, log)
	if err != nil {
		return err
	}
	p := startAudio(cfg, log)
	if p != nil {
		defer p.Stop()
	}

	switch backend {
	case "raylib":
		opts := gui.Options{FPS: cfg.FPS, Log: log}
		if p != nil {
			opts.Audio = p
		}
		return gui.Run(ctrl, opts)
	case "ebiten":
		opts := ebitengui.Options{FPS: cfg.FPS, Log: log}
		if p != nil {
			opts.Audio = p
		}
		return ebitengui.Run(ctrl, opts)
	}
	return fmt.Errorf("unknown backend: %s (available: raylib, ebiten)", backend)
}
