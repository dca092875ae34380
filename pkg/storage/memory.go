package storage

import (
	"errors"
	"sync"
	"sync/atomic"

	"github.com/lborres/rolegate/core"
)

// DefaultQuota mirrors the per-origin budget browsers give local storage.
const DefaultQuota = 5 << 20

var ErrDisabled = errors.New("storage is disabled")

type MemoryConfig struct {
	// Quota is the byte budget for keys plus values. Zero selects DefaultQuota.
	Quota int
	// Disabled makes every operation fail, like storage blocked by the user.
	Disabled bool
}

// Memory is an in-process KeyValueStorage with a byte quota.
type Memory struct {
	items    map[string][]byte
	mu       sync.RWMutex
	quota    int
	used     int
	disabled atomic.Bool

	// counters
	reads    int64
	misses   int64
	writes   int64
	removes  int64
	rejected int64
}

var _ core.StorageWithStats = (*Memory)(nil)

func NewMemory(c MemoryConfig) *Memory {
	if c.Quota == 0 {
		c.Quota = DefaultQuota
	}
	m := &Memory{
		items: make(map[string][]byte),
		quota: c.Quota,
	}
	m.disabled.Store(c.Disabled)
	return m
}

// SetDisabled toggles the disabled state at runtime.
func (m *Memory) SetDisabled(disabled bool) {
	m.disabled.Store(disabled)
}

func (m *Memory) GetItem(key string) ([]byte, error) {
	if m.disabled.Load() {
		return nil, ErrDisabled
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	atomic.AddInt64(&m.reads, 1)
	v, ok := m.items[key]
	if !ok {
		atomic.AddInt64(&m.misses, 1)
		return nil, core.ErrItemNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) SetItem(key string, value []byte) error {
	if m.disabled.Load() {
		return ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used + len(value)
	if old, ok := m.items[key]; ok {
		used -= len(old)
	} else {
		used += len(key)
	}
	if used > m.quota {
		atomic.AddInt64(&m.rejected, 1)
		return core.ErrQuotaExceeded
	}

	m.items[key] = append([]byte(nil), value...)
	m.used = used
	atomic.AddInt64(&m.writes, 1)
	return nil
}

func (m *Memory) RemoveItem(key string) error {
	if m.disabled.Load() {
		return ErrDisabled
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.items[key]; ok {
		delete(m.items, key)
		m.used -= len(key) + len(old)
		atomic.AddInt64(&m.removes, 1)
	}
	return nil
}

// Clear removes every item.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = make(map[string][]byte)
	m.used = 0
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}

func (m *Memory) Stats() core.StorageStats {
	m.mu.RLock()
	items, used := len(m.items), m.used
	m.mu.RUnlock()

	return core.StorageStats{
		Reads:     atomic.LoadInt64(&m.reads),
		Misses:    atomic.LoadInt64(&m.misses),
		Writes:    atomic.LoadInt64(&m.writes),
		Removes:   atomic.LoadInt64(&m.removes),
		Rejected:  atomic.LoadInt64(&m.rejected),
		Items:     items,
		Bytes:     used,
		QuotaSize: m.quota,
	}
}
