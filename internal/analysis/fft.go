package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/san-kum/carnot/internal/engine"
)

var (
	ErrTooShort = errors.New("analysis: trace too short")
	ErrFlat     = errors.New("analysis: trace has no periodic component")
)

// MinTrace is the shortest trace a period can be measured from.
const MinTrace = 16

// PowerSpectrum returns the magnitude of the first half of the spectrum of
// data after removing its mean.
func PowerSpectrum(data []float64) []float64 {
	return spectrum(data, false)
}

func spectrum(data []float64, hann bool) []float64 {
	n := len(data)
	if n == 0 {
		return nil
	}
	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, v := range data {
		centered[i] = v - mean
		if hann && n > 1 {
			centered[i] *= 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		}
	}

	out := fft.FFTReal(centered)
	ps := make([]float64, n/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(out[i])
	}
	return ps
}

// DominantPeriod returns the period, in frames, of the strongest non-DC
// frequency in data. The trace is Hann windowed and the peak bin refined by
// fitting a parabola through the log magnitudes around it.
func DominantPeriod(data []float64) (float64, error) {
	n := len(data)
	if n < MinTrace {
		return 0, ErrTooShort
	}
	ps := spectrum(data, true)

	peak := 0
	for k := 1; k < len(ps); k++ {
		if peak == 0 || ps[k] > ps[peak] {
			peak = k
		}
	}
	if peak == 0 || ps[peak] < 1e-9 {
		return 0, ErrFlat
	}

	bin := float64(peak)
	if peak > 1 && peak < len(ps)-1 && ps[peak-1] > 0 && ps[peak+1] > 0 {
		a, b, c := math.Log(ps[peak-1]), math.Log(ps[peak]), math.Log(ps[peak+1])
		if d := a - 2*b + c; d != 0 {
			bin += 0.5 * (a - c) / d
		}
	}
	return float64(n) / bin, nil
}

// ExpectedPeriod is the number of frames one crank revolution takes at speed.
func ExpectedPeriod(speed float64) float64 {
	if speed == 0 {
		return math.Inf(1)
	}
	return engine.TwoPi / math.Abs(speed)
}
