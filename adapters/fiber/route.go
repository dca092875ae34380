package fiber

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/rolegate"
	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/services"
)

const (
	defaultBasePath   = "/api"
	defaultCookieName = "rolegate_client"
)

type Config struct {
	// BasePath prefixes every route. Defaults to /api.
	BasePath string
	// CookieName names the cookie carrying the client id.
	CookieName string
	// SecureCookie marks the client cookie Secure.
	SecureCookie bool
}

// Adapter serves a Gate over Fiber. Each browser is identified by a random
// client id cookie and gets its own session key in the shared storage.
type Adapter struct {
	app    *fiber.App
	gate   *rolegate.Gate
	config Config
}

func New(app *fiber.App, gate *rolegate.Gate, config Config) *Adapter {
	if config.BasePath == "" {
		config.BasePath = defaultBasePath
	}
	if config.CookieName == "" {
		config.CookieName = defaultCookieName
	}
	return &Adapter{app: app, gate: gate, config: config}
}

func (a *Adapter) handlers() map[string]fiber.Handler {
	return map[string]fiber.Handler{
		"signInWithEmailAndPassword": a.signin,
		"quickLogin":                 a.quickLogin,
		"signOut":                    a.signout,
		"getSession":                 a.session,
		"getPlan":                    a.plan,
		"protectPage":                a.guard,
		"listEvents":                 a.listEvents,
		"createEvent":                a.createEvent,
		"editEvent":                  a.editEvent,
		"deleteEvent":                a.deleteEvent,
		"approveEvent":               a.approveEvent,
		"rejectEvent":                a.rejectEvent,
		"featureEvent":               a.featureEvent,
	}
}

// RegisterRoutes binds every endpoint of the registry. An endpoint without a
// handler is a programming error and fails registration.
func (a *Adapter) RegisterRoutes(registry *services.EndpointRegistry) error {
	handlers := a.handlers()
	api := a.app.Group(a.config.BasePath)
	api.Use(a.withClient)

	for _, ep := range registry.Endpoints() {
		h, ok := handlers[ep.Metadata.OperationID]
		if !ok {
			return fmt.Errorf("no handler for %s %s (%s)", ep.Method, ep.Path, ep.Metadata.OperationID)
		}

		methods := []string{ep.Method}
		if ep.Metadata.MinRole > core.RoleGuest {
			api.Add(methods, ep.Path, a.requireRole(ep.Metadata.MinRole), h)
		} else {
			api.Add(methods, ep.Path, h)
		}
	}

	return nil
}
