package main

import (
	"fmt"
	"math"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/carnot/internal/analysis"
	"github.com/san-kum/carnot/internal/automation"
	"github.com/san-kum/carnot/internal/export"
	"github.com/san-kum/carnot/internal/loop"
	"github.com/san-kum/carnot/internal/metrics"
	"github.com/san-kum/carnot/internal/panel"
	"github.com/san-kum/carnot/internal/storage"
	"github.com/san-kum/carnot/internal/tui"
	"github.com/spf13/cobra"
)

func runRecord(cmd *cobra.Command, args []string) error {
	if frames <= 0 {
		return fmt.Errorf("frames must be positive, got %d", frames)
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(live)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctrl, err := newController(cfg, log)
	if err != nil {
		return err
	}
	ctrl.Apply(panel.ActionStart)

	runner, err := loop.New(ctrl, cfg.FPS)
	if err != nil {
		return err
	}
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}
	rec := storage.NewRecorder(frames)
	runner.AddObserver(rec)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "recording %d frames at T_H=%s T_C=%s...\n", frames, orDash(cfg.Hot), orDash(cfg.Cold))
	start := time.Now()

	var res *loop.Result
	if live {
		lr := tui.NewLiveRenderer(os.Stdout, cfg.FPS)
		runner.AddObserver(lr)
		runner.AddHook(func(n uint64) {
			if n+1 >= uint64(frames) {
				runner.Stop()
			}
		})
		lr.Start()
		res, err = runner.Run(ctx)
		lr.Stop()
	} else {
		res, err = runner.RunFrames(ctx, frames)
	}
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	samples := rec.Samples()
	runID, err := st.Save(storage.RunMetadata{
		Name:      runName,
		Seed:      cfg.Seed,
		Hot:       cfg.Hot,
		Cold:      cfg.Cold,
		FPS:       cfg.FPS,
		Frames:    len(samples),
		BaseSpeed: cfg.Tuning.BaseSpeed,
		SpeedGain: cfg.Tuning.SpeedGain,
		Metrics:   res.Metrics,
	}, samples)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("frames: %d\n", len(samples))
	printMetrics(res.Metrics)
	return nil
}

func printMetrics(m map[string]float64) {
	fmt.Println("\nmetrics:")
	for _, mt := range metrics.Default() {
		if v, ok := m[mt.Name()]; ok {
			fmt.Printf("  %s: %.6f\n", mt.Name(), v)
		}
	}
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
	fmt.Fprintln(w, "ID\tNAME\tTIME\tFRAMES\tFPS\tT_H\tT_C")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.FPS,
			orDash(run.Hot),
			orDash(run.Cold),
		)
	}

	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no frames", runID)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("T_H=%s T_C=%s\n", orDash(meta.Hot), orDash(meta.Cold))
	fmt.Printf("frames: %d\n\n", len(samples))

	// screen y grows downwards; negate so the plot shows the piston rising
	piston := storage.PistonTrace(samples)
	for i := range piston {
		piston[i] = -piston[i]
	}
	for _, p := range []struct {
		data    []float64
		caption string
	}{
		{piston, "piston height (-y)"},
		{storage.AngleTrace(samples), "crank angle (rad)"},
	} {
		graph := asciigraph.Plot(p.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(p.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportCSVFile(output, samples); err != nil {
		return err
	}
	if output != "-" {
		fmt.Printf("exported %d frames to %s\n", len(samples), output)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportJSONFile(output, *meta, samples); err != nil {
		return err
	}
	if output != "-" {
		fmt.Printf("exported %s to %s\n", meta.ID, output)
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg, nil)
	if err != nil {
		return err
	}
	f := ctrl.Animator().Pose(angle * math.Pi / 180)
	svg := export.FrameToSVG(f)
	if output == "-" {
		_, err := fmt.Print(svg)
		return err
	}
	if err := os.WriteFile(output, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%s)\n", output, panel.Read(f).Stage)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("cycle analysis: %s\n", meta.ID)
	fmt.Printf("T_H=%s T_C=%s\n\n", orDash(meta.Hot), orDash(meta.Cold))

	trace := storage.PistonTrace(samples)
	ps := analysis.PowerSpectrum(trace)
	if len(ps) > 8 {
		graph := asciigraph.Plot(ps[:len(ps)/4],
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (piston)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	period, err := analysis.DominantPeriod(trace)
	if err != nil {
		return fmt.Errorf("no cycle in run %s: %w", meta.ID, err)
	}
	fmt.Printf("dominant period: %.1f frames", period)
	if meta.FPS > 0 {
		fmt.Printf(" (%.2f s)", period/float64(meta.FPS))
	}
	fmt.Println()

	if crossing, err := analysis.CrossingPeriod(samples); err == nil {
		fmt.Printf("crank wrap period: %.1f frames\n", crossing)
	}

	// the speed of the last animated frame gives the expected period
	for i := len(samples) - 1; i >= 0; i-- {
		if samples[i].Running && samples[i].Validity == "valid" {
			expected := analysis.ExpectedPeriod(samples[i].Speed)
			fmt.Printf("expected period: %.1f frames (2π / %.4f)\n", expected, samples[i].Speed)
			fmt.Printf("error: %.2f%%\n", 100*math.Abs(period-expected)/expected)
			break
		}
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	portrait := analysis.NewPhasePortrait(samples)
	if len(portrait.Points) == 0 {
		return fmt.Errorf("run %s never animated", meta.ID)
	}

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Println("x: crank angle, y: piston pin")
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 70, 20))

	if svgOut != "" {
		svg := export.TrajectoryToSVG(portrait.Points, 600, 400, "#e74c3c")
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	s, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	log, closer, err := newLogger(live)
	if err != nil {
		return err
	}
	defer closer.Close()

	ctx, cancel := signalContext()
	defer cancel()

	var observers []loop.Observer
	if live {
		lr := tui.NewLiveRenderer(os.Stdout, cfg.FPS)
		lr.Start()
		defer lr.Stop()
		observers = append(observers, lr)
	}

	fmt.Fprintf(os.Stderr, "playing %s (%d frames, %d steps)...\n", s.Name, s.Frames, len(s.Steps))
	res, err := automation.RunScenario(ctx, s, cfg.Params(), log, observers...)
	if err != nil {
		return err
	}

	r := panel.Read(res.Last)
	fmt.Printf("frames: %d\n", res.Frames)
	fmt.Printf("final stage: %s  efficiency: %s  %s\n", r.Stage, r.Efficiency, res.Last.Validity)
	printMetrics(res.Metrics)

	if s.SaveAs != "" {
		st := storage.New(dataDir)
		runID, err := st.Save(storage.RunMetadata{
			Name:      s.SaveAs,
			Seed:      s.Seed,
			Hot:       s.Hot,
			Cold:      s.Cold,
			FPS:       cfg.FPS,
			Frames:    len(res.Samples),
			BaseSpeed: cfg.Tuning.BaseSpeed,
			SpeedGain: cfg.Tuning.SpeedGain,
			Metrics:   res.Metrics,
		}, res.Samples)
		if err != nil {
			return err
		}
		fmt.Printf("\nrun id: %s\n", runID)
	}
	return nil
}
