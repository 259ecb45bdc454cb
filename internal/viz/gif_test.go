package viz

import (
	"errors"
	"image/gif"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/carnot/internal/scene"
)

func TestGIFRecorderEmpty(t *testing.T) {
	g := NewGIFRecorder(2)
	if err := g.Save(filepath.Join(t.TempDir(), "x.gif")); !errors.Is(err, ErrNoFrames) {
		t.Errorf("expected ErrNoFrames, got %v", err)
	}
}

func TestGIFRecorderSave(t *testing.T) {
	c := NewCanvas(4, 2)
	g := NewGIFRecorder(0)

	c.SetPen(scene.HotBox)
	c.FillRect(0, 0, 3, 3)
	g.Capture(c)
	c.Clear()
	c.SetPen(scene.ColdAccent)
	c.DrawLine(0, 7, 7, 7)
	g.Capture(c)

	path := filepath.Join(t.TempDir(), "run.gif")
	if err := g.Save(path); err != nil {
		t.Fatal(err)
	}

	fh, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer fh.Close()
	anim, err := gif.DecodeAll(fh)
	if err != nil {
		t.Fatal(err)
	}
	if len(anim.Image) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(anim.Image))
	}
	if anim.Delay[0] != 1 {
		t.Errorf("delay should be clamped to 1, got %d", anim.Delay[0])
	}
	b := anim.Image[0].Bounds()
	if b.Dx() != 4*charW || b.Dy() != 2*charH {
		t.Errorf("unexpected bounds %v", b)
	}
	if anim.Image[0].ColorIndexAt(0, 0) == 0 {
		t.Error("lit dot painted as background")
	}
}
