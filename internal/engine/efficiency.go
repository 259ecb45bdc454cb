package engine

import (
	"math"
	"strconv"
	"strings"
)

const (
	DefaultBaseSpeed = 0.005
	DefaultSpeedGain = 0.04
)

// Validity is the outcome of checking the two reservoir inputs.
type Validity int

const (
	// Waiting means at least one input is empty or not a number.
	Waiting Validity = iota
	// Halted means the cold reservoir is not colder than the hot one.
	Halted
	Valid
)

func (v Validity) String() string {
	switch v {
	case Waiting:
		return "waiting"
	case Halted:
		return "halted"
	case Valid:
		return "valid"
	}
	return "unknown"
}

// Temperature is a parsed reservoir input. Set is false when the field holds
// no usable number.
type Temperature struct {
	Value float64
	Set   bool
}

// ParseTemperature reads a free-text field. Empty, unparseable and
// non-finite text all yield an unset temperature.
func ParseTemperature(raw string) Temperature {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Temperature{}
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Temperature{}
	}
	return Temperature{Value: v, Set: true}
}

// Tuning maps efficiency to angular increment per frame.
type Tuning struct {
	BaseSpeed float64
	SpeedGain float64
}

func DefaultTuning() Tuning {
	return Tuning{BaseSpeed: DefaultBaseSpeed, SpeedGain: DefaultSpeedGain}
}

func (t Tuning) Validate() error {
	if !(t.SpeedGain > 0) {
		return ErrSpeedGain
	}
	return nil
}

// Speed is baseSpeed + efficiency*speedGain.
func (t Tuning) Speed(efficiency float64) float64 {
	return t.BaseSpeed + efficiency*t.SpeedGain
}

// Efficiency is the Carnot efficiency 1 - cold/hot.
func Efficiency(hot, cold float64) float64 {
	return 1 - cold/hot
}

// Reading is the per-frame interpretation of the two inputs.
type Reading struct {
	Hot, Cold  Temperature
	Validity   Validity
	Efficiency float64
	Speed      float64
}

// Evaluate validates the raw inputs and derives efficiency and speed.
// Efficiency and speed are zero unless the reading is Valid.
func (t Tuning) Evaluate(hot, cold string) Reading {
	r := Reading{Hot: ParseTemperature(hot), Cold: ParseTemperature(cold)}
	if !r.Hot.Set || !r.Cold.Set {
		r.Validity = Waiting
		return r
	}
	if r.Cold.Value >= r.Hot.Value {
		r.Validity = Halted
		return r
	}
	eff := Efficiency(r.Hot.Value, r.Cold.Value)
	if math.IsNaN(eff) || math.IsInf(eff, 0) {
		// hot == 0 with a negative cold reservoir
		r.Validity = Halted
		return r
	}
	r.Validity = Valid
	r.Efficiency = eff
	r.Speed = t.Speed(eff)
	return r
}
