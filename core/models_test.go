package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_JSON(t *testing.T) {
	s := NewSession(&User{ID: "7", Email: "a@test.com", Name: "A", Role: RoleOrganizer}, testNow.Add(123456*time.Nanosecond), DefaultMaxAge)

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "7",
		"name": "A",
		"email": "a@test.com",
		"role": 2,
		"roleName": "Organizer",
		"loginTime": 1717243200000,
		"expiresAt": 1717329600000
	}`, string(data))

	var got Session
	require.NoError(t, json.Unmarshal(data, &got))
	assert.True(t, s.Equal(&got))
}

func TestSession_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantID  string
		wantErr bool
	}{
		{name: "string id", input: `{"id":"abc","role":1,"expiresAt":1}`, wantID: "abc"},
		{name: "numeric id", input: `{"id":42,"role":1,"expiresAt":1}`, wantID: "42"},
		{name: "fractional id", input: `{"id":4.2,"role":1,"expiresAt":1}`, wantErr: true},
		{name: "missing id", input: `{"role":1,"expiresAt":1}`, wantErr: true},
		{name: "null id", input: `{"id":null,"role":1,"expiresAt":1}`, wantErr: true},
		{name: "role too high", input: `{"id":"1","role":4,"expiresAt":1}`, wantErr: true},
		{name: "negative role", input: `{"id":"1","role":-1,"expiresAt":1}`, wantErr: true},
		{name: "role as string", input: `{"id":"1","role":"admin","expiresAt":1}`, wantErr: true},
		{name: "guest role", input: `{"id":"1","role":0,"expiresAt":1}`, wantID: "1"},
		{name: "not an object", input: `[]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s Session
			err := json.Unmarshal([]byte(tt.input), &s)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, s.ID)
			assert.Equal(t, time.UTC, s.ExpiresAt.Location())
		})
	}
}

func TestSession_ActiveAt(t *testing.T) {
	s := &Session{ExpiresAt: testNow}

	assert.True(t, s.ActiveAt(testNow.Add(-time.Millisecond)))
	assert.False(t, s.ActiveAt(testNow))
	assert.False(t, (*Session)(nil).ActiveAt(testNow))
}

func TestSession_Equal(t *testing.T) {
	a := &Session{ID: "1", LoginTime: testNow, ExpiresAt: testNow.Add(time.Hour)}
	b := &Session{ID: "1", LoginTime: testNow.In(time.FixedZone("x", 3600)), ExpiresAt: testNow.Add(time.Hour)}

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(nil))
	assert.True(t, (*Session)(nil).Equal(nil))
}

func TestUser_PasswordNotSerialized(t *testing.T) {
	data, err := json.Marshal(User{ID: "1", Email: "a@test.com", Password: "123456"})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "123456")
}
