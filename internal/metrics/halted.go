package metrics

import "github.com/san-kum/carnot/internal/engine"

// HaltedFraction is the share of frames where the cold reservoir was not colder.
type HaltedFraction struct {
	name    string
	halted  int
	samples int
}

func NewHaltedFraction() *HaltedFraction {
	return &HaltedFraction{
		name: "halted_fraction",
	}
}

func (h *HaltedFraction) Name() string {
	return h.name
}

func (h *HaltedFraction) Observe(f engine.Frame) {
	h.samples++
	if f.Validity == engine.Halted {
		h.halted++
	}
}

func (h *HaltedFraction) Value() float64 {
	if h.samples == 0 {
		return 0
	}
	return float64(h.halted) / float64(h.samples)
}

func (h *HaltedFraction) Reset() {
	h.halted = 0
	h.samples = 0
}
