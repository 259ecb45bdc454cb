package metrics

import "github.com/san-kum/carnot/internal/engine"

// MeanEfficiency averages the Carnot efficiency over frames with a valid reading.
type MeanEfficiency struct {
	name    string
	sum     float64
	samples int
}

func NewMeanEfficiency() *MeanEfficiency {
	return &MeanEfficiency{
		name: "mean_efficiency",
	}
}

func (m *MeanEfficiency) Name() string {
	return m.name
}

func (m *MeanEfficiency) Observe(f engine.Frame) {
	if f.Validity != engine.Valid {
		return
	}
	m.sum += f.Efficiency
	m.samples++
}

func (m *MeanEfficiency) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *MeanEfficiency) Reset() {
	m.sum = 0
	m.samples = 0
}
