package analysis_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/hsbadam/Syn10platform/business/analysis"
)

func TestHistoryCapEvictsOldestFirst(t *testing.T) {
	t.Parallel()

	h := analysis.NewHistory(5)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 8; i++ {
		h.Push(analysis.SessionMetrics{WellnessScore: i}, now.Add(time.Duration(i)*time.Hour))
	}

	entries := h.Entries()
	if len(entries) != 5 {
		t.Fatalf("got %d entries, want the cap of 5", len(entries))
	}
	// Pushes 0..7 with cap 5: the survivors are 3..7, oldest first.
	for i, e := range entries {
		if want := i + 3; e.Metrics.WellnessScore != want {
			t.Fatalf("entry %d: wellness %d, want %d", i, e.Metrics.WellnessScore, want)
		}
	}
}

func TestHistoryExportRoundTrip(t *testing.T) {
	t.Parallel()

	h := analysis.NewHistory(30)
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)

	for i := 0; i < 6; i++ {
		h.Push(analysis.SessionMetrics{
			SpeechRate:     140 + i,
			PauseFrequency: 3,
			PitchVariance:  72.5,
			VoiceEnergy:    60 + i,
			Fluency:        70,
			Complexity:     55,
			CognitiveLoad:  analysis.CognitiveLoad{Score: 40, Level: analysis.LoadModerate},
			WellnessScore:  75 + i,
			Explanations:   []string{"steady session"},
			Timestamp:      now.Format(time.RFC3339),
		}, now)
	}

	raw, err := h.Export(now)
	if err != nil {
		t.Fatal(err)
	}

	var doc analysis.ExportDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}

	if doc.TotalSessions != 6 || len(doc.Sessions) != 6 {
		t.Fatalf("count mismatch: total %d, sessions %d", doc.TotalSessions, len(doc.Sessions))
	}
	if doc.SchemaVersion == "" || doc.ExportedAt == "" {
		t.Fatalf("missing metadata: %+v", doc)
	}

	want := h.Entries()
	for i := range want {
		if doc.Sessions[i].ID != want[i].ID ||
			doc.Sessions[i].Metrics.SpeechRate != want[i].Metrics.SpeechRate ||
			doc.Sessions[i].Metrics.PitchVariance != want[i].Metrics.PitchVariance ||
			doc.Sessions[i].Metrics.CognitiveLoad != want[i].Metrics.CognitiveLoad {
			t.Fatalf("session %d round-trip mismatch:\n got %+v\nwant %+v", i, doc.Sessions[i], want[i])
		}
	}
}

func TestHistoryRestoreTrimsToCap(t *testing.T) {
	t.Parallel()

	entries := make([]analysis.HistoryEntry, 10)
	for i := range entries {
		entries[i] = analysis.HistoryEntry{Metrics: analysis.SessionMetrics{WellnessScore: i}}
	}

	h := analysis.NewHistory(4)
	h.Restore(entries)

	got := h.Entries()
	if len(got) != 4 {
		t.Fatalf("got %d entries, want 4", len(got))
	}
	if got[0].Metrics.WellnessScore != 6 {
		t.Fatalf("oldest surviving entry: %d, want 6", got[0].Metrics.WellnessScore)
	}
}

func TestHistoryRecentAverages(t *testing.T) {
	t.Parallel()

	h := analysis.NewHistory(30)
	now := time.Now()

	// Ten sessions; only the last seven feed the averages.
	for i := 0; i < 10; i++ {
		h.Push(analysis.SessionMetrics{WellnessScore: 10 * i, SpeechRate: 100, VoiceEnergy: 50}, now)
	}

	avg := h.RecentAverages()
	if avg.Count != 7 {
		t.Fatalf("window: got %d, want 7", avg.Count)
	}
	// Wellness 30..90 averages to 60.
	if avg.Wellness != 60 {
		t.Fatalf("wellness average: got %v, want 60", avg.Wellness)
	}
}

func TestHistoryRecentTrends(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		scores []int
		want   analysis.TrendDirection
	}{
		{"improving", []int{50, 50, 50, 70, 70, 70}, analysis.TrendImproving},
		{"declining", []int{70, 70, 70, 50, 50, 50}, analysis.TrendDeclining},
		{"stable", []int{60, 60, 61, 60, 60, 60}, analysis.TrendStable},
		{"too short", []int{80}, analysis.TrendStable},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := analysis.NewHistory(30)
			for _, s := range tt.scores {
				h.Push(analysis.SessionMetrics{WellnessScore: s}, time.Now())
			}

			if got := h.RecentTrends().Wellness; got != tt.want {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}
