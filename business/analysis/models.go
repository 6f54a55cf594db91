package analysis

import "time"

// LoadLevel buckets the cognitive-load score.
type LoadLevel string

const (
	LoadLow      LoadLevel = "low"
	LoadModerate LoadLevel = "moderate"
	LoadHigh     LoadLevel = "high"
)

// CognitiveLoad is the effort estimate attached to a session.
type CognitiveLoad struct {
	Score int       `json:"score"`
	Level LoadLevel `json:"level"`
}

// SessionMetrics is the canonical result of one analyzed recording.
// PitchVariance is a voice-energy stability measure, not a fundamental
// frequency variance; the name is kept for continuity with the product's
// result shape and its scoring constants were tuned against this proxy.
type SessionMetrics struct {
	SpeechRate     int           `json:"speechRate"`
	PauseFrequency int           `json:"pauseFrequency"`
	PitchVariance  float64       `json:"pitchVariance"`
	VoiceEnergy    int           `json:"voiceEnergy"`
	Fluency        int           `json:"fluency"`
	Complexity     int           `json:"complexity"`
	CognitiveLoad  CognitiveLoad `json:"cognitiveLoad"`
	WellnessScore  int           `json:"wellnessScore"`
	Explanations   []string      `json:"explanations"`
	Timestamp      string        `json:"timestamp"`
}

// UserBaseline is the per-user rolling average persisted across sessions.
// Averages are nil until seeded by the first analyzed session.
type UserBaseline struct {
	AvgEnergy        *float64 `json:"avgEnergy"`
	AvgSpeechRate    *float64 `json:"avgSpeechRate"`
	AvgPitchVariance *float64 `json:"avgPitchVariance"`
	RecordingsCount  int      `json:"recordingsCount"`
	Established      bool     `json:"established"`
}

// HistoryEntry is one persisted session snapshot.
type HistoryEntry struct {
	ID      string         `json:"id"`
	SavedAt string         `json:"savedAt"`
	Metrics SessionMetrics `json:"metrics"`
}

// Segment is a closed voice-activity span within a recording.
type Segment struct {
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
}

// Duration is the span length.
func (s Segment) Duration() time.Duration {
	return s.End - s.Start
}
