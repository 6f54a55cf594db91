package analysis

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// exportSchemaVersion identifies the export document layout.
const exportSchemaVersion = "1.0.0"

// exportPlatform names the producing product in export documents.
const exportPlatform = "SYN10 Voice Analysis"

// trendWindow is how many recent sessions feed trend and average
// computations.
const trendWindow = 7

// TrendDirection summarizes how a metric moved across recent sessions.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
)

// HistoryAverages are per-metric means over the recent window, consumed by
// the insight generator for comparative explanations.
type HistoryAverages struct {
	SpeechRate  float64
	VoiceEnergy float64
	Wellness    float64
	Count       int
}

// Trends reports the recent direction of the headline metrics.
type Trends struct {
	SpeechRate  TrendDirection `json:"speechRate"`
	VoiceEnergy TrendDirection `json:"voiceEnergy"`
	Wellness    TrendDirection `json:"wellness"`
}

// History is the bounded FIFO log of analyzed sessions. It holds at most
// cap entries; pushing beyond the cap evicts the oldest first.
type History struct {
	cap     int
	entries []HistoryEntry
}

func NewHistory(cap int) *History {
	return &History{cap: cap}
}

// Restore replaces the log contents from persisted entries, trimming to
// the cap from the oldest end if the stored log was larger.
func (h *History) Restore(entries []HistoryEntry) {
	if len(entries) > h.cap {
		entries = entries[len(entries)-h.cap:]
	}
	h.entries = append([]HistoryEntry(nil), entries...)
}

// Push appends one analyzed session, evicting the oldest entry when the
// log is full, and returns the stored entry.
func (h *History) Push(m SessionMetrics, now time.Time) HistoryEntry {
	entry := HistoryEntry{
		ID:      uuid.NewString(),
		SavedAt: now.UTC().Format(time.RFC3339),
		Metrics: m,
	}

	h.entries = append(h.entries, entry)
	if len(h.entries) > h.cap {
		h.entries = h.entries[len(h.entries)-h.cap:]
	}

	return entry
}

// Entries returns a copy of the log, oldest first.
func (h *History) Entries() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

func (h *History) Len() int {
	return len(h.entries)
}

// RecentAverages computes mean speech rate, energy and wellness over the
// trend window.
func (h *History) RecentAverages() HistoryAverages {
	recent := h.recent()
	if len(recent) == 0 {
		return HistoryAverages{}
	}

	var avg HistoryAverages
	for _, e := range recent {
		avg.SpeechRate += float64(e.Metrics.SpeechRate)
		avg.VoiceEnergy += float64(e.Metrics.VoiceEnergy)
		avg.Wellness += float64(e.Metrics.WellnessScore)
	}

	n := float64(len(recent))
	avg.SpeechRate /= n
	avg.VoiceEnergy /= n
	avg.Wellness /= n
	avg.Count = len(recent)

	return avg
}

// RecentTrends compares the first and second halves of the trend window;
// a swing beyond five percent in either direction counts as movement.
func (h *History) RecentTrends() Trends {
	recent := h.recent()

	pick := func(get func(SessionMetrics) float64) TrendDirection {
		values := make([]float64, len(recent))
		for i, e := range recent {
			values[i] = get(e.Metrics)
		}
		return trendOf(values)
	}

	return Trends{
		SpeechRate:  pick(func(m SessionMetrics) float64 { return float64(m.SpeechRate) }),
		VoiceEnergy: pick(func(m SessionMetrics) float64 { return float64(m.VoiceEnergy) }),
		Wellness:    pick(func(m SessionMetrics) float64 { return float64(m.WellnessScore) }),
	}
}

func (h *History) recent() []HistoryEntry {
	if len(h.entries) <= trendWindow {
		return h.entries
	}
	return h.entries[len(h.entries)-trendWindow:]
}

func trendOf(values []float64) TrendDirection {
	if len(values) < 2 {
		return TrendStable
	}

	mid := len(values) / 2
	first := mean(values[:(len(values)+1)/2])
	second := mean(values[mid:])
	if first == 0 {
		return TrendStable
	}

	change := (second - first) / first * 100
	switch {
	case change > 5:
		return TrendImproving
	case change < -5:
		return TrendDeclining
	}
	return TrendStable
}

// ExportDocument is the flat JSON payload handed to the caller for data
// export: metadata plus the full capped log.
type ExportDocument struct {
	ExportedAt    string         `json:"exportedAt"`
	Platform      string         `json:"platform"`
	SchemaVersion string         `json:"schemaVersion"`
	TotalSessions int            `json:"totalSessions"`
	Sessions      []HistoryEntry `json:"sessions"`
}

// Export serializes the capped history log with export metadata. The
// output is plain UTF-8 JSON; parsing it back reproduces every entry.
func (h *History) Export(now time.Time) ([]byte, error) {
	doc := ExportDocument{
		ExportedAt:    now.UTC().Format(time.RFC3339),
		Platform:      exportPlatform,
		SchemaVersion: exportSchemaVersion,
		TotalSessions: len(h.entries),
		Sessions:      h.Entries(),
	}
	return json.Marshal(doc)
}
