package services

import (
	"strings"
	"sync"
	"time"

	"github.com/lborres/rolegate/core"
)

// FakeKeyValueStorage is a test-only fake implementing core.KeyValueStorage.
// It stores items in a map and exposes error fields for behavior injection.
type FakeKeyValueStorage struct {
	items     map[string][]byte
	mu        sync.RWMutex
	getErr    error
	setErr    error
	removeErr error
}

func NewFakeKeyValueStorage() *FakeKeyValueStorage {
	return &FakeKeyValueStorage{
		items: make(map[string][]byte),
	}
}

func (f *FakeKeyValueStorage) GetItem(key string) ([]byte, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	v, ok := f.items[key]
	if !ok {
		return nil, core.ErrItemNotFound
	}
	return append([]byte(nil), v...), nil
}

func (f *FakeKeyValueStorage) SetItem(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setErr != nil {
		return f.setErr
	}
	f.items[key] = append([]byte(nil), value...)
	return nil
}

func (f *FakeKeyValueStorage) RemoveItem(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	delete(f.items, key)
	return nil
}

// Put stores raw bytes, bypassing error injection.
func (f *FakeKeyValueStorage) Put(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[key] = []byte(value)
}

// Has reports whether key is present.
func (f *FakeKeyValueStorage) Has(key string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.items[key]
	return ok
}

func (f *FakeKeyValueStorage) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.items)
}

// FakeUserStorage is a test-only fake implementing core.UserStorage.
type FakeUserStorage struct {
	users  []core.User
	getErr error
}

func NewFakeUserStorage(users ...core.User) *FakeUserStorage {
	return &FakeUserStorage{users: users}
}

func (f *FakeUserStorage) GetUserByEmail(email string) (*core.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	for i := range f.users {
		if strings.EqualFold(f.users[i].Email, email) {
			u := f.users[i]
			return &u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

// FakeClock is a settable clock for expiry tests.
type FakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{t: t}
}

func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}
