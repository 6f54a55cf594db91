package analysis

import (
	"time"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// Detector classifies frames as speech or silence with a weighted
// multi-factor score and a hangover window. The hangover matters: raw
// per-frame energy is noisy, and without it the short consonant gaps
// inside words would surface as pauses.
type Detector struct {
	cfg Config

	speaking      bool
	hangoverCount int
	segmentStart  time.Duration
	segments      []Segment
	silenceMarks  []time.Duration
}

func NewDetector(cfg Config) *Detector {
	return &Detector{cfg: cfg}
}

// Reset clears all per-session state.
func (d *Detector) Reset() {
	d.speaking = false
	d.hangoverCount = 0
	d.segmentStart = 0
	d.segments = nil
	d.silenceMarks = nil
}

// Score is the composite VAD score for one frame's features. A frame is a
// speech candidate iff the score exceeds 0.5, which requires the energy
// factor plus at least one of the others.
func (d *Detector) Score(feat dsp.Features, frameLength int) float64 {
	var score float64
	if feat.EnergyDb > d.cfg.EnergyThresholdDb {
		score += 0.5
	}
	if float64(feat.ZeroCrossings) > d.cfg.ZeroCrossingRatio*float64(frameLength) {
		score += 0.25
	}
	if feat.SpectralEntropy > d.cfg.EntropyThreshold {
		score += 0.25
	}
	return score
}

// Process runs the state machine for one frame and reports whether the
// detector currently considers the stream to be speech.
func (d *Detector) Process(feat dsp.Features, frameLength int) bool {
	now := feat.Elapsed

	if d.Score(feat, frameLength) > 0.5 {
		if !d.speaking {
			d.speaking = true
			d.segmentStart = now
		}
		d.hangoverCount = d.cfg.HangoverFrames
		return d.speaking
	}

	if d.hangoverCount > 0 {
		d.hangoverCount--
		return d.speaking
	}

	if d.speaking {
		d.speaking = false
		d.segments = append(d.segments, Segment{Start: d.segmentStart, End: now})
		d.silenceMarks = append(d.silenceMarks, now)
	}

	return d.speaking
}

// Speaking reports the current state.
func (d *Detector) Speaking() bool {
	return d.speaking
}

// Finalize closes a still-open speech segment at the given session-end
// time and returns the full ordered segment list. Without finalization a
// trailing open segment is ignored.
func (d *Detector) Finalize(end time.Duration) []Segment {
	if d.speaking {
		d.segments = append(d.segments, Segment{Start: d.segmentStart, End: end})
		d.speaking = false
		d.hangoverCount = 0
	}
	return d.segments
}

// Segments returns the closed segments observed so far.
func (d *Detector) Segments() []Segment {
	return d.segments
}
