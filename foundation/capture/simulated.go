package capture

import (
	"context"
	"math"
	"math/rand"
	"time"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// Segment is one stretch of a simulated recording script.
type Segment struct {
	Speech   bool
	Duration time.Duration
}

// Simulated synthesizes microphone frames from a script of speech and
// pause segments. Speech frames carry a voiced waveform with a low-bin
// spectrum; pause frames carry near-silence. Used by the demo capture
// source and by pipeline tests.
type Simulated struct {
	Script       []Segment
	Tick         time.Duration
	FrameLength  int
	SpectrumBins int

	// Realtime paces frames with a ticker instead of emitting them
	// back to back.
	Realtime bool

	rng *rand.Rand
}

func NewSimulated(script []Segment, tick time.Duration) *Simulated {
	return &Simulated{
		Script:       script,
		Tick:         tick,
		FrameLength:  128,
		SpectrumBins: 64,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Seed fixes the noise generator so a script produces the same frames
// every run.
func (s *Simulated) Seed(seed int64) {
	s.rng = rand.New(rand.NewSource(seed))
}

func (s *Simulated) Stream(ctx context.Context) <-chan dsp.Frame {
	out := make(chan dsp.Frame)

	go func() {
		defer close(out)

		var ticker *time.Ticker
		if s.Realtime {
			ticker = time.NewTicker(s.Tick)
			defer ticker.Stop()
		}

		elapsed := time.Duration(0)
		for _, seg := range s.Script {
			for remaining := seg.Duration; remaining > 0; remaining -= s.Tick {
				elapsed += s.Tick

				var frame dsp.Frame
				if seg.Speech {
					frame = s.speechFrame(elapsed)
				} else {
					frame = s.silenceFrame(elapsed)
				}

				if ticker != nil {
					select {
					case <-ticker.C:
					case <-ctx.Done():
						return
					}
				}

				select {
				case out <- frame:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}

// speechFrame mixes a voiced fundamental with a second harmonic and
// noise, and spreads spectral energy across the low third of the bins.
func (s *Simulated) speechFrame(elapsed time.Duration) dsp.Frame {
	samples := make([]byte, s.FrameLength)
	for i := range samples {
		phase := 2 * math.Pi * float64(i) / float64(s.FrameLength)
		v := 0.6*math.Sin(4*phase) + 0.25*math.Sin(8*phase) + 0.1*(s.rng.Float64()*2-1)
		samples[i] = clampSample(128 + v*90)
	}

	spectrum := make([]float64, s.SpectrumBins)
	for i := 0; i < s.SpectrumBins/3; i++ {
		falloff := 1 - float64(i)/float64(s.SpectrumBins/3)
		spectrum[i] = (40 + 20*s.rng.Float64()) * falloff
	}

	return dsp.Frame{Samples: samples, Spectrum: spectrum, Elapsed: elapsed}
}

// silenceFrame is the midpoint sample value with a small noise floor.
func (s *Simulated) silenceFrame(elapsed time.Duration) dsp.Frame {
	samples := make([]byte, s.FrameLength)
	for i := range samples {
		samples[i] = clampSample(128 + (s.rng.Float64()*2-1)*1.5)
	}

	spectrum := make([]float64, s.SpectrumBins)
	for i := range spectrum {
		spectrum[i] = 0.2 * s.rng.Float64()
	}

	return dsp.Frame{Samples: samples, Spectrum: spectrum, Elapsed: elapsed}
}

func clampSample(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return byte(math.Round(v))
}
