package profile_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/business/profile"
	"github.com/hsbadam/Syn10platform/foundation/storage"
)

// brokenStore fails every call, standing in for a dead backend.
type brokenStore struct{}

func (brokenStore) Load(ctx context.Context, userID, record string) ([]byte, error) {
	return nil, errors.New("backend unavailable")
}

func (brokenStore) Save(ctx context.Context, userID, record string, blob []byte) error {
	return errors.New("backend unavailable")
}

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

func floatPtr(v float64) *float64 { return &v }

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store := profile.NewStore(testLogger(), storage.NewMemory())
	ctx := context.Background()

	baseline, err := store.LoadBaseline(ctx, "alice")
	if err != nil {
		t.Fatalf("load fresh baseline: %v", err)
	}
	if baseline.RecordingsCount != 0 || baseline.Established {
		t.Fatalf("fresh baseline should be zero, got %+v", baseline)
	}

	baseline = analysis.UserBaseline{
		AvgEnergy:       floatPtr(72),
		AvgSpeechRate:   floatPtr(140),
		RecordingsCount: 7,
		Established:     true,
	}
	if err := store.SaveBaseline(ctx, "alice", baseline); err != nil {
		t.Fatalf("save baseline: %v", err)
	}

	got, err := store.LoadBaseline(ctx, "alice")
	if err != nil {
		t.Fatalf("load baseline: %v", err)
	}
	if got.RecordingsCount != 7 || !got.Established {
		t.Fatalf("got %+v, want recordingsCount=7 established", got)
	}
	if got.AvgEnergy == nil || *got.AvgEnergy != 72 {
		t.Fatalf("avgEnergy = %v, want 72", got.AvgEnergy)
	}
	if got.AvgPitchVariance != nil {
		t.Fatalf("avgPitchVariance should stay unset, got %v", *got.AvgPitchVariance)
	}

	entries := []analysis.HistoryEntry{
		{ID: "a", SavedAt: "2026-03-01T09:00:00Z", Metrics: analysis.SessionMetrics{WellnessScore: 80}},
		{ID: "b", SavedAt: "2026-03-02T09:00:00Z", Metrics: analysis.SessionMetrics{WellnessScore: 85}},
	}
	if err := store.SaveHistory(ctx, "alice", entries); err != nil {
		t.Fatalf("save history: %v", err)
	}
	gotEntries, err := store.LoadHistory(ctx, "alice")
	if err != nil {
		t.Fatalf("load history: %v", err)
	}
	if len(gotEntries) != 2 || gotEntries[0].ID != "a" || gotEntries[1].Metrics.WellnessScore != 85 {
		t.Fatalf("history round trip mismatch: %+v", gotEntries)
	}

	if store.Degraded() {
		t.Fatal("healthy backend should not degrade")
	}
}

func TestStoreDegradesToMemory(t *testing.T) {
	t.Parallel()

	store := profile.NewStore(testLogger(), brokenStore{})
	ctx := context.Background()

	baseline := analysis.UserBaseline{AvgEnergy: floatPtr(65), RecordingsCount: 3}
	if err := store.SaveBaseline(ctx, "alice", baseline); err != nil {
		t.Fatalf("save should succeed via fallback, got %v", err)
	}
	if !store.Degraded() {
		t.Fatal("store should report degraded after backend failure")
	}

	got, err := store.LoadBaseline(ctx, "alice")
	if err != nil {
		t.Fatalf("load from fallback: %v", err)
	}
	if got.RecordingsCount != 3 {
		t.Fatalf("recordingsCount = %d, want 3", got.RecordingsCount)
	}
}

func TestStoreDegradesOnLoad(t *testing.T) {
	t.Parallel()

	store := profile.NewStore(testLogger(), brokenStore{})
	ctx := context.Background()

	baseline, err := store.LoadBaseline(ctx, "alice")
	if err != nil {
		t.Fatalf("load should degrade to empty fallback, got %v", err)
	}
	if baseline.RecordingsCount != 0 {
		t.Fatalf("expected zero baseline, got %+v", baseline)
	}
	if !store.Degraded() {
		t.Fatal("store should report degraded after backend failure")
	}
}
