package storage

import (
	"fmt"
	"strconv"

	"github.com/san-kum/carnot/internal/engine"
)

// Sample is one recorded frame.
type Sample struct {
	Frame      uint64  `json:"frame"`
	Angle      float64 `json:"angle"`
	Stage      int     `json:"stage"`
	Validity   string  `json:"validity"`
	Running    bool    `json:"running"`
	Efficiency float64 `json:"efficiency"`
	Speed      float64 `json:"speed"`
	CrankX     float64 `json:"crank_x"`
	CrankY     float64 `json:"crank_y"`
	PistonY    float64 `json:"piston_y"`
}

func SampleFrom(f engine.Frame) Sample {
	return Sample{
		Frame:      f.Frame,
		Angle:      f.Angle,
		Stage:      f.Stage.Ordinal(),
		Validity:   f.Validity.String(),
		Running:    f.Running,
		Efficiency: f.Efficiency,
		Speed:      f.Speed,
		CrankX:     f.Linkage.CrankPin.X,
		CrankY:     f.Linkage.CrankPin.Y,
		PistonY:    f.Linkage.PistonPinY,
	}
}

func (s Sample) record() []string {
	return []string{
		strconv.FormatUint(s.Frame, 10),
		formatFloat(s.Angle),
		strconv.Itoa(s.Stage),
		s.Validity,
		strconv.FormatBool(s.Running),
		formatFloat(s.Efficiency),
		formatFloat(s.Speed),
		formatFloat(s.CrankX),
		formatFloat(s.CrankY),
		formatFloat(s.PistonY),
	}
}

func parseRecord(rec []string) (Sample, error) {
	if len(rec) != len(header) {
		return Sample{}, fmt.Errorf("expected %d fields, got %d", len(header), len(rec))
	}
	var (
		s   Sample
		err error
	)
	if s.Frame, err = strconv.ParseUint(rec[0], 10, 64); err != nil {
		return s, err
	}
	if s.Stage, err = strconv.Atoi(rec[2]); err != nil {
		return s, err
	}
	s.Validity = rec[3]
	if s.Running, err = strconv.ParseBool(rec[4]); err != nil {
		return s, err
	}
	// Lined up with header; nil marks columns parsed above.
	floats := []*float64{nil, &s.Angle, nil, nil, nil, &s.Efficiency, &s.Speed, &s.CrankX, &s.CrankY, &s.PistonY}
	for i, dst := range floats {
		if dst == nil {
			continue
		}
		if *dst, err = strconv.ParseFloat(rec[i], 64); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Recorder collects a sample for every frame it observes.
type Recorder struct {
	samples []Sample
	limit   int
}

// NewRecorder keeps at most limit samples; zero keeps everything.
func NewRecorder(limit int) *Recorder {
	return &Recorder{limit: limit}
}

func (r *Recorder) OnFrame(f engine.Frame) {
	if r.limit > 0 && len(r.samples) >= r.limit {
		return
	}
	r.samples = append(r.samples, SampleFrom(f))
}

func (r *Recorder) Samples() []Sample { return r.samples }

// PistonTrace returns the piston pin position of every sample.
func PistonTrace(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.PistonY
	}
	return out
}

func AngleTrace(samples []Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Angle
	}
	return out
}
