package storage

import (
	"context"
	"sync"
)

// KV stores small JSON documents per customer session, mirroring the
// browser's local storage. Get returns nil, nil for a missing key.
type KV interface {
	Get(ctx context.Context, sessionID string, key string) ([]byte, error)
	Put(ctx context.Context, sessionID string, key string, value []byte) error
	Delete(ctx context.Context, sessionID string, key string) error
}

// Slot binds a KV to one session and key.
type Slot struct {
	kv        KV
	sessionID string
	key       string
}

func NewSlot(kv KV, sessionID string, key string) *Slot {
	return &Slot{kv: kv, sessionID: sessionID, key: key}
}

func (s *Slot) Load(ctx context.Context) ([]byte, error) {
	return s.kv.Get(ctx, s.sessionID, s.key)
}

func (s *Slot) Save(ctx context.Context, data []byte) error {
	return s.kv.Put(ctx, s.sessionID, s.key, data)
}

type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]map[string][]byte)}
}

func (m *MemoryKV) Get(ctx context.Context, sessionID string, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.data[sessionID][key]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (m *MemoryKV) Put(ctx context.Context, sessionID string, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data[sessionID] == nil {
		m.data[sessionID] = make(map[string][]byte)
	}
	m.data[sessionID][key] = append([]byte(nil), value...)
	return nil
}

func (m *MemoryKV) Delete(ctx context.Context, sessionID string, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data[sessionID], key)
	return nil
}
