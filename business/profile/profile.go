// Package profile persists a user's baseline and session history
// through a storage backend, degrading to in-memory operation when the
// backend fails so a session is never lost mid-recording.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/hsbadam/Syn10platform/business/analysis"
	"github.com/hsbadam/Syn10platform/foundation/storage"
)

type Store struct {
	logger   *zap.SugaredLogger
	backend  storage.Store
	fallback *storage.Memory

	mu       sync.Mutex
	degraded bool
}

func NewStore(logger *zap.SugaredLogger, backend storage.Store) *Store {
	return &Store{
		logger:   logger,
		backend:  backend,
		fallback: storage.NewMemory(),
	}
}

// Degraded reports whether a backend failure has switched the store to
// its in-memory fallback.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

// LoadBaseline returns the user's stored baseline, or a zero baseline
// when none has been saved yet.
func (s *Store) LoadBaseline(ctx context.Context, userID string) (analysis.UserBaseline, error) {
	var baseline analysis.UserBaseline
	if err := s.load(ctx, userID, storage.RecordBaseline, &baseline); err != nil {
		return analysis.UserBaseline{}, err
	}
	return baseline, nil
}

func (s *Store) SaveBaseline(ctx context.Context, userID string, baseline analysis.UserBaseline) error {
	return s.save(ctx, userID, storage.RecordBaseline, baseline)
}

// LoadHistory returns the user's stored session history, oldest first,
// or an empty history when none has been saved yet.
func (s *Store) LoadHistory(ctx context.Context, userID string) ([]analysis.HistoryEntry, error) {
	var entries []analysis.HistoryEntry
	if err := s.load(ctx, userID, storage.RecordHistory, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) SaveHistory(ctx context.Context, userID string, entries []analysis.HistoryEntry) error {
	return s.save(ctx, userID, storage.RecordHistory, entries)
}

func (s *Store) load(ctx context.Context, userID, record string, v any) error {
	blob, err := s.active().Load(ctx, userID, record)
	if errors.Is(err, storage.ErrNotFound) {
		return nil
	}
	if err != nil {
		s.degrade("load", record, err)
		blob, err = s.fallback.Load(ctx, userID, record)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
	}

	if err := json.Unmarshal(blob, v); err != nil {
		return fmt.Errorf("profile: decode %s: %w", record, err)
	}
	return nil
}

func (s *Store) save(ctx context.Context, userID, record string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("profile: encode %s: %w", record, err)
	}

	if err := s.active().Save(ctx, userID, record, blob); err != nil {
		s.degrade("save", record, err)
		return s.fallback.Save(ctx, userID, record, blob)
	}
	return nil
}

func (s *Store) active() storage.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return s.fallback
	}
	return s.backend
}

func (s *Store) degrade(op, record string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.degraded {
		return
	}
	s.degraded = true
	s.logger.Warnw("profile: storage backend failed, continuing in memory", "op", op, "record", record, "ERROR", err)
}
