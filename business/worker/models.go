package worker

import (
	"time"

	"go.uber.org/zap"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/business/profile"
	"github.com/hsbadam/Syn10platform/foundation/capture"
)

type Settings struct {
	Config
	Logger  *zap.SugaredLogger
	Source  capture.Source
	Profile *profile.Store
	Results chan<- SessionResult
}

type Config struct {
	UserID             string
	SessionID          string
	Tick               time.Duration
	MaxSessionDuration time.Duration
	RingSize           int
	Analysis           analysis.Config
}

// =====================================================================================================================

// VoiceActivity is published on the voice activity topic whenever the
// detector flips between speech and silence.
type VoiceActivity struct {
	Speaking bool
	Elapsed  time.Duration
}

// SessionResult is published on the metrics topic once the session has
// been analyzed and persisted.
type SessionResult struct {
	SessionID string
	Metrics   analysis.SessionMetrics
	Baseline  analysis.UserBaseline
	Trends    analysis.Trends
	Degraded  bool
}
