// Package metrics holds per-frame observers that summarise a run.
package metrics

import "github.com/san-kum/carnot/internal/engine"

type Metric interface {
	Name() string
	Observe(f engine.Frame)
	Value() float64
	Reset()
}

// Default returns the metrics attached to every recorded run.
func Default() []Metric {
	ms := []Metric{NewRevolutions()}
	for s := engine.IsothermalExpansion; s <= engine.AdiabaticCompression; s++ {
		ms = append(ms, NewStageShare(s))
	}
	return append(ms, NewMeanEfficiency(), NewHaltedFraction())
}
