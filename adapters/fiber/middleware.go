package fiber

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/rolegate"
	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
)

const (
	localsClient  = "client"
	localsSession = "session"

	maxClientIDLen = 64
)

// withClient resolves the client id cookie, issuing a new one when absent,
// and stores the client's scoped services in the context.
func (a *Adapter) withClient(c fiber.Ctx) error {
	id := c.Cookies(a.config.CookieName)
	if id == "" || len(id) > maxClientIDLen {
		var err error
		if id, err = crypto.NewID(); err != nil {
			return handleError(c, err)
		}
		c.Cookie(&fiber.Cookie{
			Name:     a.config.CookieName,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			Secure:   a.config.SecureCookie,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}

	c.Locals(localsClient, a.gate.ForClient(id))
	return c.Next()
}

// requireRole loads the client's session and rejects requests below min.
// Missing and expired sessions are 401; insufficient roles are 403 with the
// access-denied outcome.
func (a *Adapter) requireRole(min core.Role) fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := clientFrom(c).Sessions.Inspect()
		if err != nil {
			return handleError(c, err)
		}

		guard := a.gate.Permissions.Protect(s, min)
		if !guard.Allowed {
			return c.Status(fiber.StatusForbidden).JSON(guard)
		}

		c.Locals(localsSession, s)
		return c.Next()
	}
}

func clientFrom(c fiber.Ctx) rolegate.Client {
	client, _ := c.Locals(localsClient).(rolegate.Client)
	return client
}

// sessionFrom returns the session stored by requireRole, or loads it.
func sessionFrom(c fiber.Ctx) (*core.Session, error) {
	if s, ok := c.Locals(localsSession).(*core.Session); ok && s != nil {
		return s, nil
	}
	s, err := clientFrom(c).Sessions.Load()
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, core.ErrSessionNotFound
	}
	return s, nil
}

var errInvalidBody = errors.New("invalid request body")
