package services

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lborres/rolegate/core"
)

var testEpoch = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestSessionStore(storage core.KeyValueStorage, clock *FakeClock) *SessionStore {
	return NewSessionStore(storage, "", clock.Now, nil)
}

func testSession(role core.Role, start time.Time) *core.Session {
	u := &core.User{ID: "2", Email: "organizer@test.com", Name: "Event Organizer", Role: role}
	return core.NewSession(u, start, core.DefaultMaxAge)
}

// Requirement: save then load returns an equal record.
func TestSessionStore_RoundTrip(t *testing.T) {
	// Arrange
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	store := newTestSessionStore(storage, clock)
	s := testSession(core.RoleOrganizer, clock.Now())

	// Act
	require.NoError(t, store.Save(s))
	got, err := store.Load()

	// Assert
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, s.Equal(got), "got %+v, want %+v", got, s)
	assert.True(t, storage.Has(core.DefaultStorageKey))
}

// Requirement: the persisted layout uses epoch-millisecond timestamps.
func TestSessionStore_PersistedLayout(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	store := newTestSessionStore(storage, clock)

	require.NoError(t, store.Save(testSession(core.RoleOrganizer, clock.Now())))

	raw, err := storage.GetItem(core.DefaultStorageKey)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, "2", m["id"])
	assert.Equal(t, float64(2), m["role"])
	assert.Equal(t, "Organizer", m["roleName"])
	assert.Equal(t, float64(testEpoch.UnixMilli()), m["loginTime"])
	assert.Equal(t, float64(testEpoch.Add(24*time.Hour).UnixMilli()), m["expiresAt"])
}

func TestSessionStore_LoadNumericID(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	storage.Put(core.DefaultStorageKey, `{"id":3,"name":"Admin Super","email":"admin@test.com","role":3,"roleName":"Admin","loginTime":1717243200000,"expiresAt":1717329600000}`)

	got, err := newTestSessionStore(storage, clock).Load()

	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "3", got.ID)
	assert.Equal(t, core.RoleAdmin, got.Role)
}

// Requirement: expired records read as absent and are removed.
func TestSessionStore_ExpiredIsEvicted(t *testing.T) {
	// Arrange
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	store := newTestSessionStore(storage, clock)
	require.NoError(t, store.Save(testSession(core.RoleUser, clock.Now())))
	clock.Advance(24*time.Hour + time.Millisecond)

	// Act
	got, err := store.Load()

	// Assert
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, storage.Has(core.DefaultStorageKey))

	got, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestSessionStore_ExpiresExactlyAtBoundary(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	store := newTestSessionStore(storage, clock)
	require.NoError(t, store.Save(testSession(core.RoleUser, clock.Now())))

	clock.Advance(24*time.Hour - time.Millisecond)
	got, err := store.Load()
	require.NoError(t, err)
	assert.NotNil(t, got)

	clock.Advance(time.Millisecond)
	_, err = store.Inspect()
	assert.ErrorIs(t, err, core.ErrSessionExpired)
}

// Requirement: Inspect explains why no session is available.
func TestSessionStore_Inspect(t *testing.T) {
	tests := []struct {
		name    string
		stored  string
		wantErr error
		evicted bool
	}{
		{name: "absent", wantErr: core.ErrSessionNotFound},
		{name: "not json", stored: "{oops", wantErr: core.ErrStorageCorrupt, evicted: true},
		{name: "role out of range", stored: `{"id":"1","role":7,"expiresAt":1}`, wantErr: core.ErrStorageCorrupt, evicted: true},
		{name: "role missing", stored: `{"id":"1","expiresAt":1}`, wantErr: core.ErrStorageCorrupt, evicted: true},
		{name: "expiry missing", stored: `{"id":"1","role":1}`, wantErr: core.ErrStorageCorrupt, evicted: true},
		{name: "expired", stored: `{"id":"1","role":1,"loginTime":0,"expiresAt":1000}`, wantErr: core.ErrSessionExpired, evicted: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			storage := NewFakeKeyValueStorage()
			if tt.stored != "" {
				storage.Put(core.DefaultStorageKey, tt.stored)
			}
			store := newTestSessionStore(storage, NewFakeClock(testEpoch))

			// Act
			got, err := store.Inspect()

			// Assert
			assert.Nil(t, got)
			require.ErrorIs(t, err, tt.wantErr)
			if tt.evicted {
				assert.False(t, storage.Has(core.DefaultStorageKey))
			}

			loaded, err := store.Load()
			assert.NoError(t, err)
			assert.Nil(t, loaded)
		})
	}
}

// Requirement: a failed write surfaces as ErrStorageUnavailable.
func TestSessionStore_SaveUnavailable(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	storage.setErr = core.ErrQuotaExceeded
	store := newTestSessionStore(storage, NewFakeClock(testEpoch))

	err := store.Save(testSession(core.RoleUser, testEpoch))

	require.ErrorIs(t, err, core.ErrStorageUnavailable)
	assert.ErrorIs(t, err, core.ErrQuotaExceeded)
}

func TestSessionStore_LoadUnavailable(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	storage.getErr = errors.New("backend down")
	store := newTestSessionStore(storage, NewFakeClock(testEpoch))

	got, err := store.Load()

	assert.Nil(t, got)
	assert.ErrorIs(t, err, core.ErrStorageUnavailable)
}

func TestSessionStore_EvictionFailureStillAbsent(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	storage.Put(core.DefaultStorageKey, "garbage")
	storage.removeErr = errors.New("read-only")
	store := newTestSessionStore(storage, NewFakeClock(testEpoch))

	got, err := store.Load()

	assert.NoError(t, err)
	assert.Nil(t, got)
}

// Requirement: Clear is idempotent.
func TestSessionStore_Clear(t *testing.T) {
	storage := NewFakeKeyValueStorage()
	store := newTestSessionStore(storage, NewFakeClock(testEpoch))
	require.NoError(t, store.Save(testSession(core.RoleUser, testEpoch)))

	require.NoError(t, store.Clear())
	require.NoError(t, store.Clear())
	assert.Equal(t, 0, storage.Len())

	storage.removeErr = errors.New("disabled")
	assert.ErrorIs(t, store.Clear(), core.ErrStorageUnavailable)
}

func TestSessionStore_SaveNil(t *testing.T) {
	store := newTestSessionStore(NewFakeKeyValueStorage(), NewFakeClock(testEpoch))
	assert.ErrorIs(t, store.Save(nil), core.ErrSessionNotFound)
}

// Requirement: scoped stores over one backend do not see each other.
func TestSessionStore_Scoped(t *testing.T) {
	// Arrange
	storage := NewFakeKeyValueStorage()
	clock := NewFakeClock(testEpoch)
	base := newTestSessionStore(storage, clock)
	a, b := base.Scoped("client-a"), base.Scoped("client-b")

	// Act
	require.NoError(t, a.Save(testSession(core.RoleAdmin, clock.Now())))

	// Assert
	got, err := a.Load()
	require.NoError(t, err)
	require.NotNil(t, got)

	got, err = b.Load()
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.Equal(t, "client-a:currentUser", a.Key())
	assert.Equal(t, "client-a:currentUser", a.Scoped("client-a").Key())
	assert.Equal(t, "currentUser", a.Scoped("").Key())
}
