package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// User is a reference account. Records are never mutated after load.
type User struct {
	ID       string  `json:"id"`
	Email    string  `json:"email"`
	Password string  `json:"-"` // Never expose in JSON
	Role     Role    `json:"role"`
	Name     string  `json:"name"`
	Avatar   *string `json:"avatar,omitempty"`
}

// Session is the "current user" record held by the client.
//
// A session is valid while now < ExpiresAt. An expired session must be
// treated the same as no session at all.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	RoleName  string    `json:"roleName"`
	LoginTime time.Time `json:"loginTime"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ActiveAt reports whether the session exists and has not expired at t.
func (s *Session) ActiveAt(t time.Time) bool {
	return s != nil && t.Before(s.ExpiresAt)
}

// Equal compares two sessions field by field, using time.Equal for timestamps.
func (s *Session) Equal(o *Session) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.ID == o.ID &&
		s.Name == o.Name &&
		s.Email == o.Email &&
		s.Role == o.Role &&
		s.RoleName == o.RoleName &&
		s.LoginTime.Equal(o.LoginTime) &&
		s.ExpiresAt.Equal(o.ExpiresAt)
}

// sessionRecord is the persisted layout: timestamps as epoch milliseconds.
type sessionRecord struct {
	ID        json.RawMessage `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Role      *int            `json:"role"`
	RoleName  string          `json:"roleName"`
	LoginTime int64           `json:"loginTime"`
	ExpiresAt int64           `json:"expiresAt"`
}

func (s Session) MarshalJSON() ([]byte, error) {
	id, err := json.Marshal(s.ID)
	if err != nil {
		return nil, err
	}
	role := int(s.Role)
	return json.Marshal(sessionRecord{
		ID:        id,
		Name:      s.Name,
		Email:     s.Email,
		Role:      &role,
		RoleName:  s.RoleName,
		LoginTime: s.LoginTime.UnixMilli(),
		ExpiresAt: s.ExpiresAt.UnixMilli(),
	})
}

// UnmarshalJSON accepts the id as either a JSON string or a number, since
// older records stored numeric ids.
func (s *Session) UnmarshalJSON(data []byte) error {
	var rec sessionRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}

	id, err := decodeID(rec.ID)
	if err != nil {
		return err
	}
	if rec.Role == nil {
		return fmt.Errorf("%w: missing role", ErrInvalidRole)
	}
	role := Role(*rec.Role)
	if !role.Valid() {
		return fmt.Errorf("%w: %d", ErrInvalidRole, *rec.Role)
	}
	if rec.ExpiresAt == 0 {
		return fmt.Errorf("missing expiresAt")
	}

	*s = Session{
		ID:        id,
		Name:      rec.Name,
		Email:     rec.Email,
		Role:      role,
		RoleName:  rec.RoleName,
		LoginTime: time.UnixMilli(rec.LoginTime).UTC(),
		ExpiresAt: time.UnixMilli(rec.ExpiresAt).UTC(),
	}
	return nil
}

func decodeID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", fmt.Errorf("missing id")
	}
	if raw[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return "", err
		}
		return id, nil
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("invalid id: %w", err)
	}
	if _, err := strconv.ParseInt(n.String(), 10, 64); err != nil {
		return "", fmt.Errorf("invalid id %q", n.String())
	}
	return n.String(), nil
}

// ResourceStatus marks where an event is in the review workflow.
type ResourceStatus string

const (
	StatusPublished ResourceStatus = "published"
	StatusPending   ResourceStatus = "pending"
)

// Resource is an event card as seen by the UI plan. OwnerID is the owner's
// email address; ownership has no stable numeric id.
type Resource struct {
	ID       string         `json:"id"`
	Title    string         `json:"title,omitempty"`
	OwnerID  string         `json:"ownerId"`
	Status   ResourceStatus `json:"status,omitempty"`
	Featured bool           `json:"featured,omitempty"` // promoted on the home page
}

func (r Resource) Pending() bool {
	return r.Status == StatusPending
}
