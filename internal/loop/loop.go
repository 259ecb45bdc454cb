package loop

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/san-kum/carnot/internal/engine"
)

var ErrFrameRate = errors.New("loop: frame rate must be positive")

// Stepper advances the engine by one frame. Both *engine.Animator and
// *panel.Controller satisfy it.
type Stepper interface {
	Step() engine.Frame
}

type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f engine.Frame)
}

type ObserverFunc func(f engine.Frame)

func (fn ObserverFunc) OnFrame(f engine.Frame) { fn(f) }

// Hook runs before frame n is stepped.
type Hook func(n uint64)

type Result struct {
	Frames  uint64
	Last    engine.Frame
	Metrics map[string]float64
	Stopped bool
}

// Runner reschedules a frame on every tick until it is stopped or its context
// is cancelled. Frames are stepped on the goroutine that called Run.
type Runner struct {
	stepper   Stepper
	fps       int
	metrics   []Metric
	observers []Observer
	hooks     []Hook

	stopOnce sync.Once
	stop     chan struct{}
	frames   uint64
}

func New(s Stepper, fps int) (*Runner, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w, got %d", ErrFrameRate, fps)
	}
	return &Runner{
		stepper: s,
		fps:     fps,
		stop:    make(chan struct{}),
	}, nil
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }
func (r *Runner) AddHook(h Hook)         { r.hooks = append(r.hooks, h) }

func (r *Runner) Interval() time.Duration {
	return time.Second / time.Duration(r.fps)
}

// Stop ends Run or RunFrames after the frame in progress. Safe to call from
// any goroutine and more than once.
func (r *Runner) Stop() {
	r.stopOnce.Do(func() { close(r.stop) })
}

func (r *Runner) stopped() bool {
	select {
	case <-r.stop:
		return true
	default:
		return false
	}
}

// Run steps one frame per tick until Stop is called or ctx is done.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	res := r.begin()
	ticker := time.NewTicker(r.Interval())
	defer ticker.Stop()

	for {
		// a ready tick must not win over a Stop from the last frame's hooks
		if r.stopped() {
			res.Stopped = true
			return r.finish(res), nil
		}
		select {
		case <-ctx.Done():
			return r.finish(res), ctx.Err()
		case <-r.stop:
			res.Stopped = true
			return r.finish(res), nil
		case <-ticker.C:
			r.frame(res)
		}
	}
}

// RunFrames steps exactly n frames without waiting for ticks.
func (r *Runner) RunFrames(ctx context.Context, n int) (*Result, error) {
	res := r.begin()
	for i := 0; i < n; i++ {
		select {
		case <-ctx.Done():
			return r.finish(res), ctx.Err()
		default:
		}
		if r.stopped() {
			res.Stopped = true
			break
		}
		r.frame(res)
	}
	return r.finish(res), nil
}

func (r *Runner) begin() *Result {
	for _, m := range r.metrics {
		m.Reset()
	}
	return &Result{Metrics: make(map[string]float64)}
}

func (r *Runner) frame(res *Result) {
	for _, h := range r.hooks {
		h(r.frames)
	}
	f := r.stepper.Step()
	r.frames++
	for _, m := range r.metrics {
		m.Observe(f)
	}
	for _, o := range r.observers {
		o.OnFrame(f)
	}
	res.Frames++
	res.Last = f
}

func (r *Runner) finish(res *Result) *Result {
	for _, m := range r.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res
}
