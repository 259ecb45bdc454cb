package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/san-kum/carnot/internal/engine"
)

func newAnimator(t *testing.T, hot, cold string) *engine.Animator {
	t.Helper()
	a, err := engine.New(engine.DefaultParams(), 11)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	a.SetInputs(engine.Inputs{Hot: hot, Cold: cold})
	a.Start()
	return a
}

type countMetric struct {
	n     int
	reset int
}

func (c *countMetric) Name() string           { return "count" }
func (c *countMetric) Observe(f engine.Frame) { c.n++ }
func (c *countMetric) Value() float64         { return float64(c.n) }
func (c *countMetric) Reset()                 { c.n = 0; c.reset++ }

func TestNewRejectsFrameRate(t *testing.T) {
	for _, fps := range []int{0, -1} {
		if _, err := New(newAnimator(t, "", ""), fps); !errors.Is(err, ErrFrameRate) {
			t.Errorf("fps %d: expected ErrFrameRate, got %v", fps, err)
		}
	}
}

func TestRunFrames(t *testing.T) {
	a := newAnimator(t, "400", "300")
	r, err := New(a, 60)
	if err != nil {
		t.Fatal(err)
	}
	m := &countMetric{}
	r.AddMetric(m)

	var seen []uint64
	r.AddObserver(ObserverFunc(func(f engine.Frame) { seen = append(seen, f.Frame) }))

	var hooked []uint64
	r.AddHook(func(n uint64) { hooked = append(hooked, n) })

	res, err := r.RunFrames(context.Background(), 100)
	if err != nil {
		t.Fatalf("RunFrames: %v", err)
	}
	if res.Frames != 100 || len(seen) != 100 {
		t.Fatalf("expected 100 frames, got %d (observed %d)", res.Frames, len(seen))
	}
	if res.Metrics["count"] != 100 || m.reset != 1 {
		t.Errorf("metric not driven: %v reset=%d", res.Metrics, m.reset)
	}
	if hooked[0] != 0 || hooked[99] != 99 {
		t.Errorf("hooks got wrong frame numbers: first=%d last=%d", hooked[0], hooked[99])
	}
	want := engine.Normalize(engine.NeutralAngle + 100*0.015)
	if d := res.Last.Angle - want; d > 1e-9 || d < -1e-9 {
		t.Errorf("angle after 100 frames = %f, want %f", res.Last.Angle, want)
	}
}

func TestRunFramesCancelled(t *testing.T) {
	r, _ := New(newAnimator(t, "400", "300"), 60)
	ctx, cancel := context.WithCancel(context.Background())
	r.AddHook(func(n uint64) {
		if n == 9 {
			cancel()
		}
	})
	res, err := r.RunFrames(ctx, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if res.Frames != 10 {
		t.Errorf("expected 10 frames before cancel, got %d", res.Frames)
	}
}

func TestStopEndsRun(t *testing.T) {
	r, _ := New(newAnimator(t, "400", "300"), 1000)
	r.AddHook(func(n uint64) {
		if n == 4 {
			r.Stop()
		}
	})

	done := make(chan *Result, 1)
	go func() {
		res, err := r.Run(context.Background())
		if err != nil {
			t.Errorf("Run: %v", err)
		}
		done <- res
	}()

	select {
	case res := <-done:
		if !res.Stopped {
			t.Error("expected Stopped")
		}
		if res.Frames != 5 {
			t.Errorf("expected exactly 5 frames, got %d", res.Frames)
		}
	case <-time.After(5 * time.Second):
		r.Stop()
		t.Fatal("Run did not stop")
	}
	r.Stop()
}

func TestStopBeforeRun(t *testing.T) {
	r, _ := New(newAnimator(t, "400", "300"), 1000)
	r.Stop()

	res, err := r.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !res.Stopped || res.Frames != 0 {
		t.Errorf("expected a stopped run with no frames, got %+v", res)
	}
}

func TestRunKeepsTickingWhilePaused(t *testing.T) {
	a := newAnimator(t, "", "")
	a.Pause()
	r, _ := New(a, 1000)
	r.AddHook(func(n uint64) {
		if n == 19 {
			r.Stop()
		}
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Frames < 20 {
		t.Errorf("loop stopped ticking early: %d frames", res.Frames)
	}
	if res.Last.Angle != engine.NeutralAngle {
		t.Errorf("paused engine moved to %f", res.Last.Angle)
	}
}
