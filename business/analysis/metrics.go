package analysis

import (
	"math"
	"time"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// Engine derives session-level metrics from the buffered per-frame
// features, the finalized VAD segments and the complexity estimate. It
// runs once, after the recording stops. Internal computation stays in
// floating point; rounding happens only at the output boundary.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg}
}

// Compute produces the canonical SessionMetrics for one recording.
func (e *Engine) Compute(features []dsp.Features, segments []Segment, complexity ComplexityResult, total time.Duration, now time.Time) SessionMetrics {
	pauseCount := e.countPauses(segments)
	pausesPerMinute := perMinute(pauseCount, total)

	speechRatio := speechRatio(segments, total)
	wpm := e.speechRate(speechRatio, complexity.Score, pausesPerMinute)

	levels := normalizedLevels(features)
	energy := clamp(mean(levels)*100, 0, 100)
	stability := stability(levels)

	load := e.cognitiveLoad(pausesPerMinute, complexity.Score, stability, speechRatio)
	fluency := e.fluency(pausesPerMinute, stability, wpm)
	wellness := e.wellness(energy, stability, fluency, float64(complexity.Score), float64(load.Score), wpm)

	return SessionMetrics{
		SpeechRate:     int(math.Round(wpm)),
		PauseFrequency: int(math.Round(pausesPerMinute)),
		PitchVariance:  math.Round(stability*10) / 10,
		VoiceEnergy:    int(math.Round(energy)),
		Fluency:        int(math.Round(fluency)),
		Complexity:     complexity.Score,
		CognitiveLoad:  load,
		WellnessScore:  int(math.Round(wellness)),
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
}

// countPauses walks the closed segments in order; a gap longer than the
// configured minimum counts as one pause.
func (e *Engine) countPauses(segments []Segment) int {
	count := 0
	for i := 1; i < len(segments); i++ {
		if segments[i].Start-segments[i-1].End > e.cfg.MinPauseGap {
			count++
		}
	}
	return count
}

// speechRate estimates words per minute. There is no word-boundary ground
// truth in an energy pipeline, so the estimate is a function of how much
// of the recording is active voice, nudged by complexity and pause rate,
// and held within a physiologically plausible range.
func (e *Engine) speechRate(speechRatio float64, complexityScore int, pausesPerMinute float64) float64 {
	base := 100 + speechRatio*50
	complexityAdj := (float64(complexityScore) - 50) * 0.3
	pauseAdj := clamp((e.cfg.IdealPauseRate-pausesPerMinute)*5, -20, 20)

	return clamp(base+complexityAdj+pauseAdj, 80, 200)
}

// cognitiveLoad blends pause pressure, complexity shortfall, instability
// and inactivity. The pause term is the pause rate normalized against
// twice the reference rate, so the reference rate itself contributes half
// load and the term saturates at double the reference.
func (e *Engine) cognitiveLoad(pausesPerMinute float64, complexityScore int, stability, speechRatio float64) CognitiveLoad {
	pauseLoad := clamp(pausesPerMinute/(2*e.cfg.IdealPauseRate), 0, 1)
	complexityShortfall := math.Max(0, 50-float64(complexityScore)) / 50
	instability := math.Max(0, 50-stability) / 50
	inactivity := 1 - speechRatio

	weighted := 0.3*pauseLoad + 0.3*complexityShortfall + 0.2*instability + 0.2*inactivity
	score := int(math.Round(math.Min(100, weighted*100)))

	level := LoadHigh
	switch {
	case score < 30:
		level = LoadLow
	case score < 60:
		level = LoadModerate
	}

	return CognitiveLoad{Score: score, Level: level}
}

func (e *Engine) fluency(pausesPerMinute, stability, wpm float64) float64 {
	score := 50.0
	score -= 2 * math.Max(0, pausesPerMinute-e.cfg.IdealPauseRate)
	score += 0.4 * (stability - 50)
	score += 0.25 * (wpm - e.cfg.IdealWPM)

	return clamp(score, 0, 100)
}

func (e *Engine) wellness(energy, stability, fluency, complexity, cognitiveLoad, wpm float64) float64 {
	paceScore := 100 - math.Abs(wpm-150)*0.5

	score := energy*0.20 +
		stability*0.20 +
		fluency*0.15 +
		complexity*0.20 +
		(100-cognitiveLoad)*0.15 +
		paceScore*0.10

	return clamp(score, 0, 100)
}

// stability is the pitch-variance proxy: 100 minus the scaled coefficient
// of variation of the per-frame energy levels. It measures voice-energy
// steadiness, not fundamental frequency; the product reports it under the
// pitchVariance name and its scoring constants were tuned against it.
func stability(levels []float64) float64 {
	m := mean(levels)
	if m == 0 {
		return 0
	}

	var sq float64
	for _, v := range levels {
		d := v - m
		sq += d * d
	}
	cv := math.Sqrt(sq/float64(len(levels))) / m

	return clamp(100-math.Min(100, cv*180), 0, 100)
}

// normalizedLevels maps per-frame dB energy onto [0,1] with the product's
// ((db+50)/40) normalization.
func normalizedLevels(features []dsp.Features) []float64 {
	levels := make([]float64, len(features))
	for i, f := range features {
		levels[i] = clamp((f.EnergyDb+50)/40, 0, 1)
	}
	return levels
}

func speechRatio(segments []Segment, total time.Duration) float64 {
	if total <= 0 {
		return 0
	}
	var speech time.Duration
	for _, s := range segments {
		speech += s.Duration()
	}
	ratio := float64(speech) / float64(total)
	return clamp(ratio, 0, 1)
}

// perMinute normalizes a count by the recording length, treating anything
// under a minute as one minute so short recordings are not inflated.
func perMinute(count int, total time.Duration) float64 {
	minutes := total.Minutes()
	if minutes < 1 {
		minutes = 1
	}
	return float64(count) / minutes
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
