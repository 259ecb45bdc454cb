package audio

import (
	"log/slog"
	"math"
	"sync"

	"github.com/gordonklaus/portaudio"
	"github.com/san-kum/carnot/internal/engine"
)

const (
	SampleRate = 44100
	BufferSize = 1024
)

// Voice is what the hum should sound like for one frame.
type Voice struct {
	Freq   float64 // fundamental in Hz
	Cutoff float64 // low pass cutoff in Hz
	Gain   float64 // 0 silences the hum
}

const (
	idleFreq   = 55.0
	freqPerRev = 220.0 // Hz added per crank revolution per second
	hotCutoff  = 1400.0
	coldCutoff = 450.0
	humGain    = 0.25
)

// VoiceFor maps a frame to a voice: pitch follows crank speed in revolutions
// per second, and the filter opens on the hot stages. A stopped engine is
// silent.
func VoiceFor(f engine.Frame, fps int) Voice {
	v := Voice{Freq: idleFreq, Cutoff: coldCutoff}
	if !f.Running || f.Validity != engine.Valid {
		return v
	}
	revs := math.Abs(f.Speed) * float64(fps) / engine.TwoPi
	v.Freq = idleFreq + freqPerRev*revs
	if f.Stage.Theme() == engine.ThemeHot {
		v.Cutoff = hotCutoff
	}
	v.Gain = humGain
	return v
}

// Processor synthesises the hum on the portaudio callback thread. The frame
// loop publishes a target voice and the callback glides towards it.
type Processor struct {
	Stream *portaudio.Stream

	mu     sync.Mutex
	target Voice

	// callback state
	current     Voice
	phase       float64
	time        float64
	filterState [2]float64
	delayLine   [2][]float64
	delayHead   int

	log    *slog.Logger
	Active bool
}

func NewProcessor(log *slog.Logger) *Processor {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	// 0.3 second delay for a little room
	delayLen := int(float64(SampleRate) * 0.3)
	return &Processor{
		current:   Voice{Freq: idleFreq, Cutoff: coldCutoff},
		target:    Voice{Freq: idleFreq, Cutoff: coldCutoff},
		delayLine: [2][]float64{make([]float64, delayLen), make([]float64, delayLen)},
		log:       log,
	}
}

// Start opens an output-only stream; duplex streams often fail on Linux.
func (a *Processor) Start() error {
	if err := portaudio.Initialize(); err != nil {
		a.log.Error("audio init", "err", err)
		return err
	}
	stream, err := portaudio.OpenDefaultStream(0, 2, SampleRate, BufferSize, a.Process)
	if err != nil {
		a.log.Error("audio open", "err", err)
		portaudio.Terminate()
		return err
	}
	if err := stream.Start(); err != nil {
		a.log.Error("audio start", "err", err)
		stream.Close()
		portaudio.Terminate()
		return err
	}
	a.log.Info("audio started", "rate", SampleRate, "buffer", BufferSize)
	a.Stream = stream
	a.Active = true
	return nil
}

func (a *Processor) Stop() {
	if !a.Active {
		return
	}
	if a.Stream != nil {
		a.Stream.Stop()
		a.Stream.Close()
	}
	portaudio.Terminate()
	a.Active = false
	a.log.Info("audio stopped")
}

// UpdateEngine publishes the voice for the latest frame.
func (a *Processor) UpdateEngine(f engine.Frame, fps int) {
	v := VoiceFor(f, fps)
	a.mu.Lock()
	a.target = v
	a.mu.Unlock()
}

func (a *Processor) Target() Voice {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.target
}

// Triangle wave: smooth, no harsh buzz.
func triangle(phase float64) float64 {
	p := phase - math.Floor(phase)
	return 4.0*math.Abs(p-0.5) - 1.0
}

// One pole low pass.
func lpf(sample, cutoff, dt, state float64) float64 {
	rc := 1.0 / (2.0 * math.Pi * cutoff)
	alpha := dt / (rc + dt)
	return state + alpha*(sample-state)
}

// Process fills one stereo buffer. It is the portaudio callback and is also
// called directly in tests.
func (a *Processor) Process(out [][]float32) {
	a.mu.Lock()
	target := a.target
	a.mu.Unlock()

	dt := 1.0 / float64(SampleRate)
	for i := range out[0] {
		// glide over roughly 50ms so speed changes do not click
		a.current.Freq += (target.Freq - a.current.Freq) * 0.0005
		a.current.Cutoff += (target.Cutoff - a.current.Cutoff) * 0.0005
		a.current.Gain += (target.Gain - a.current.Gain) * 0.0005

		a.phase += a.current.Freq * dt
		a.phase -= math.Floor(a.phase)

		// fundamental, fifth and octave with a slow breathing LFO
		lfo := 0.8 + 0.2*math.Sin(a.time*0.5)
		s := (triangle(a.phase)*0.6 + triangle(a.phase*1.5)*0.25 + triangle(a.phase*2)*0.15) * lfo

		a.filterState[0] = lpf(s, a.current.Cutoff, dt, a.filterState[0])
		a.filterState[1] = lpf(s, a.current.Cutoff*1.02, dt, a.filterState[1])

		delayL := a.delayLine[0][a.delayHead]
		delayR := a.delayLine[1][a.delayHead]
		mixL := a.filterState[0] + delayL*0.3 + delayR*0.1
		mixR := a.filterState[1] + delayR*0.3 + delayL*0.1
		a.delayLine[0][a.delayHead] = mixL * 0.5
		a.delayLine[1][a.delayHead] = mixR * 0.5
		a.delayHead = (a.delayHead + 1) % len(a.delayLine[0])

		out[0][i] = float32(mixL * a.current.Gain)
		out[1][i] = float32(mixR * a.current.Gain)
		a.time += dt
	}
}
