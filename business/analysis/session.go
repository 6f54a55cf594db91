// Package analysis implements the voice wellness pipeline: voice activity
// detection, complexity estimation, session metric derivation, baseline
// adaptation and insight generation. Audio capture and rendering belong to
// the caller; the package consumes frames and produces numbers and text.
package analysis

import (
	"errors"
	"time"

	"github.com/hsbadam/Syn10platform/foundation/dsp"
)

// ErrSessionActive is returned when analysis is requested while frames are
// still being accepted.
var ErrSessionActive = errors.New("analysis: session is still recording")

// ErrNoSession is returned when analysis is requested before any recording
// was ever started.
var ErrNoSession = errors.New("analysis: no session has been recorded")

// Session owns all buffers for one recording: the per-frame feature
// sequence, the VAD state and the complexity accumulators. Start clears
// every buffer, so stale data from a prior session can never leak into a
// new one. A Session is driven by a single caller, one frame per analysis
// tick; it is not safe for concurrent use.
type Session struct {
	cfg Config

	extractor  *dsp.Extractor
	detector   *Detector
	complexity *ComplexityAnalyzer
	engine     *Engine

	started   bool
	recording bool
	features  []dsp.Features
	lastTick  time.Duration
	cached    *SessionMetrics
}

func NewSession(cfg Config) *Session {
	return &Session{
		cfg:        cfg,
		extractor:  dsp.NewExtractor(),
		detector:   NewDetector(cfg),
		complexity: NewComplexityAnalyzer(cfg),
		engine:     NewEngine(cfg),
	}
}

// Start resets all session-scoped state and begins accepting frames.
func (s *Session) Start() {
	s.extractor.Reset()
	s.detector.Reset()
	s.complexity.Reset()
	s.features = s.features[:0]
	s.lastTick = 0
	s.cached = nil
	s.started = true
	s.recording = true
}

// Recording reports whether the session currently accepts frames.
func (s *Session) Recording() bool {
	return s.recording
}

// FrameCount returns how many frames have been buffered so far.
func (s *Session) FrameCount() int {
	return len(s.features)
}

// ProcessFrame runs one analysis tick: feature extraction, VAD and
// complexity accumulation. It returns the extracted features and whether
// the detector currently classifies the stream as speech. Frames arriving
// outside a recording are dropped.
func (s *Session) ProcessFrame(f dsp.Frame) (dsp.Features, bool) {
	if !s.recording {
		return dsp.Features{}, false
	}

	feat := s.extractor.Extract(f)
	s.features = append(s.features, feat)
	s.lastTick = f.Elapsed

	speaking := s.detector.Process(feat, len(f.Samples))
	s.complexity.Observe(feat.SpectralCentroid, feat.SpectralFlux, feat.EnergyDb)

	return feat, speaking
}

// Stop ends the recording. It accepts a hard stop at any time; whatever
// was captured so far is what Analyze will see.
func (s *Session) Stop() {
	s.recording = false
}

// Analyze derives the session metrics once and caches the result, so a
// second call returns the same value instead of recomputing against
// mutated state. Calling it mid-recording or before any recording was
// started is an error. A session that
// captured zero frames recovers with the fixed default result.
func (s *Session) Analyze(now time.Time) (SessionMetrics, error) {
	if !s.started {
		return SessionMetrics{}, ErrNoSession
	}
	if s.recording {
		return SessionMetrics{}, ErrSessionActive
	}
	if s.cached != nil {
		return *s.cached, nil
	}

	if len(s.features) == 0 {
		m := DefaultResults(now)
		s.cached = &m
		return m, nil
	}

	segments := s.detector.Finalize(s.lastTick)
	m := s.engine.Compute(s.features, segments, s.complexity.Result(), s.lastTick, now)

	s.cached = &m
	return m, nil
}

// DefaultResults is the fixed fallback payload for a session with no
// captured audio.
func DefaultResults(now time.Time) SessionMetrics {
	return SessionMetrics{
		SpeechRate:     145,
		PauseFrequency: 3,
		PitchVariance:  12,
		VoiceEnergy:    82,
		Fluency:        85,
		Complexity:     55,
		CognitiveLoad:  CognitiveLoad{Score: 25, Level: LoadLow},
		WellnessScore:  83,
		Explanations:   []string{"Not enough audio was captured for a full analysis."},
		Timestamp:      now.UTC().Format(time.RFC3339),
	}
}
