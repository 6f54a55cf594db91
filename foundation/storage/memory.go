package storage

import (
	"context"
	"sync"
)

// Memory keeps records in process memory. It backs tests and is the
// degradation target when a persistent backend fails: the run proceeds
// with an unestablished baseline rather than blocking the result.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Load(_ context.Context, userID, record string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	blob, ok := m.records[userID+"/"+record]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), blob...), nil
}

func (m *Memory) Save(_ context.Context, userID, record string, blob []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[userID+"/"+record] = append([]byte(nil), blob...)
	return nil
}
