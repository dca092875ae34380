package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/logging"
)

// SessionStore persists the single "current user" record of one client.
type SessionStore struct {
	storage core.KeyValueStorage
	baseKey string
	key     string
	now     func() time.Time
	log     logging.Logger
}

// NewSessionStore returns a store writing under key. Empty key, nil clock
// and nil logger select the defaults.
func NewSessionStore(storage core.KeyValueStorage, key string, now func() time.Time, log logging.Logger) *SessionStore {
	if key == "" {
		key = core.DefaultStorageKey
	}
	if now == nil {
		now = time.Now
	}
	if log == nil {
		log = logging.Discard()
	}
	return &SessionStore{storage: storage, baseKey: key, key: key, now: now, log: log}
}

// Scoped returns a store over the same backend whose key is namespaced by
// scope, so several clients can share one backend.
func (st *SessionStore) Scoped(scope string) *SessionStore {
	scoped := *st
	if scope != "" {
		scoped.key = scope + ":" + st.baseKey
	} else {
		scoped.key = st.baseKey
	}
	scoped.log = st.log.With("scope", scope)
	return &scoped
}

// Key is the storage key this store reads and writes.
func (st *SessionStore) Key() string {
	return st.key
}

// Save overwrites any existing record.
func (st *SessionStore) Save(s *core.Session) error {
	if s == nil {
		return core.ErrSessionNotFound
	}

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := st.storage.SetItem(st.key, data); err != nil {
		st.log.Error("session write failed", "key", st.key, "error", err)
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}

	st.log.Debug("session saved", "email", s.Email, "role", s.RoleName)
	return nil
}

// Load returns the current session, or nil when there is none. Malformed and
// expired records are removed and reported as absent. Only a backend read
// failure is returned as an error.
func (st *SessionStore) Load() (*core.Session, error) {
	s, err := st.Inspect()
	if errors.Is(err, core.ErrStorageUnavailable) {
		return nil, err
	}
	if err != nil {
		return nil, nil
	}
	return s, nil
}

// Inspect is Load with the reason for an absent session reported as
// ErrSessionNotFound, ErrSessionExpired or ErrStorageCorrupt.
func (st *SessionStore) Inspect() (*core.Session, error) {
	data, err := st.storage.GetItem(st.key)
	if errors.Is(err, core.ErrItemNotFound) {
		return nil, core.ErrSessionNotFound
	}
	if err != nil {
		st.log.Error("session read failed", "key", st.key, "error", err)
		return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}

	var s core.Session
	if err := json.Unmarshal(data, &s); err != nil {
		st.log.Warn("discarding unreadable session", "key", st.key, "error", err)
		st.evict()
		return nil, fmt.Errorf("%w: %w", core.ErrStorageCorrupt, err)
	}

	if !s.ActiveAt(st.now()) {
		st.log.Info("session expired", "email", s.Email, "expiresAt", s.ExpiresAt)
		st.evict()
		return nil, core.ErrSessionExpired
	}

	return &s, nil
}

// Clear removes the record. Clearing an empty store succeeds.
func (st *SessionStore) Clear() error {
	if err := st.storage.RemoveItem(st.key); err != nil {
		return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	return nil
}

// evict removes a record that must not be served again. A failure is only
// logged: the record is still treated as absent.
func (st *SessionStore) evict() {
	if err := st.storage.RemoveItem(st.key); err != nil {
		st.log.Warn("failed to evict session", "key", st.key, "error", err)
	}
}
