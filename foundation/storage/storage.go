// Package storage persists the two per-user records the pipeline needs
// across sessions: the rolling baseline and the capped session history.
// The records travel as opaque JSON blobs; the exact medium is the
// backend's concern.
package storage

import (
	"context"
	"errors"
)

// Record names for the two persisted blobs.
const (
	RecordBaseline = "baseline"
	RecordHistory  = "history"
)

// ErrNotFound marks a record that has never been saved; callers treat it
// as a fresh profile, not a failure.
var ErrNotFound = errors.New("storage: record not found")

// Store reads and writes per-user JSON blobs.
type Store interface {
	Load(ctx context.Context, userID, record string) ([]byte, error)
	Save(ctx context.Context, userID, record string, blob []byte) error
}
