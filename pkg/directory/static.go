package directory

import (
	"strings"

	"github.com/lborres/rolegate/core"
)

// DemoPassword is the credential shared by the built-in accounts.
const DemoPassword = "123456"

// Static is a read-only, in-memory user directory.
type Static struct {
	users []core.User
}

var _ core.UserStorage = (*Static)(nil)

// NewStatic copies users. Emails must be unique ignoring case; later
// duplicates are ignored.
func NewStatic(users []core.User) *Static {
	s := &Static{users: make([]core.User, 0, len(users))}
	seen := make(map[string]bool, len(users))
	for _, u := range users {
		key := strings.ToLower(u.Email)
		if seen[key] {
			continue
		}
		seen[key] = true
		s.users = append(s.users, u)
	}
	return s
}

// Default returns the three reference accounts.
func Default() *Static {
	return NewStatic([]core.User{
		{ID: "1", Email: "user@test.com", Password: DemoPassword, Role: core.RoleUser, Name: "Regular User"},
		{ID: "2", Email: "organizer@test.com", Password: DemoPassword, Role: core.RoleOrganizer, Name: "Event Organizer"},
		{ID: "3", Email: "admin@test.com", Password: DemoPassword, Role: core.RoleAdmin, Name: "Admin Super"},
	})
}

func (s *Static) GetUserByEmail(email string) (*core.User, error) {
	for i := range s.users {
		if strings.EqualFold(s.users[i].Email, email) {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, core.ErrUserNotFound
}

// Users returns a copy of every record.
func (s *Static) Users() []core.User {
	return append([]core.User(nil), s.users...)
}

// Credentials returns the quick-login pair for a demo account name
// ("user", "organizer" or "admin").
func Credentials(name string) (email, password string, ok bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "user":
		return "user@test.com", DemoPassword, true
	case "organizer":
		return "organizer@test.com", DemoPassword, true
	case "admin":
		return "admin@test.com", DemoPassword, true
	}
	return "", "", false
}
