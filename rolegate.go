package rolegate

import (
	"fmt"
	"time"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
	"github.com/lborres/rolegate/pkg/directory"
	"github.com/lborres/rolegate/pkg/logging"
	"github.com/lborres/rolegate/services"
)

// interfaces
type (
	KeyValueStorage = core.KeyValueStorage
	UserStorage     = core.UserStorage
	Presenter       = core.Presenter

	PasswordHandler = crypto.PasswordHandler
	Logger          = logging.Logger
)

// structs
type (
	Config        = core.Config
	SessionConfig = core.SessionConfig
	Evaluator     = core.Evaluator
)

type (
	Role     = core.Role
	User     = core.User
	Session  = core.Session
	Resource = core.Resource
	Plan     = core.Plan
	Notice   = core.Notice
	Outcome  = core.Outcome
	Guard    = core.Guard
)

const (
	RoleGuest     = core.RoleGuest
	RoleUser      = core.RoleUser
	RoleOrganizer = core.RoleOrganizer
	RoleAdmin     = core.RoleAdmin
)

// Constructors & helpers (convenience re-exports)
var (
	NewArgon2            = crypto.NewArgon2
	NewEvaluator         = core.NewEvaluator
	DefaultSessionConfig = core.DefaultSessionConfig
	RedirectTargetFor    = core.RedirectTargetFor
	BuildPlan            = core.BuildPlan
	Apply                = core.Apply
	NoticeFor            = core.NoticeFor
	ParseRole            = core.ParseRole
)

var (
	ErrMissingField       = core.ErrMissingField
	ErrInvalidCredentials = core.ErrInvalidCredentials
	ErrUserNotFound       = core.ErrUserNotFound
)

var (
	ErrSessionNotFound    = core.ErrSessionNotFound
	ErrSessionExpired     = core.ErrSessionExpired
	ErrStorageUnavailable = core.ErrStorageUnavailable
	ErrStorageCorrupt     = core.ErrStorageCorrupt
)

var (
	ErrPermissionDenied = core.ErrPermissionDenied
	ErrEventNotFound    = core.ErrEventNotFound
	ErrEventNotPending  = core.ErrEventNotPending
	ErrReasonRequired   = core.ErrReasonRequired
)

var (
	ErrStorageRequired = core.ErrStorageRequired
	ErrInvalidMaxAge   = core.ErrInvalidMaxAge
)

// Gate wires the session store, authenticator, evaluator and event board
// over one storage backend.
type Gate struct {
	Sessions    *services.SessionStore
	Auth        *services.AuthService
	Events      *services.EventBoard
	Permissions core.Evaluator
	Logger      logging.Logger
}

// Client is the per-client view of a Gate: its own session key, shared
// users, evaluator and event board.
type Client struct {
	Sessions *services.SessionStore
	Auth     *services.AuthService
}

func New(config Config) (*Gate, error) {
	if config.Storage == nil {
		return nil, ErrStorageRequired
	}

	// Set Defaults

	sessionConfig := config.SessionConfig
	if sessionConfig == nil {
		defaults := core.DefaultSessionConfig()
		sessionConfig = &defaults
	}
	if sessionConfig.MaxAge <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMaxAge, sessionConfig.MaxAge)
	}

	users := config.Users
	if users == nil {
		users = directory.Default()
	}

	passwordHasher := config.PasswordHasher
	if passwordHasher == nil {
		passwordHasher = crypto.Plaintext{}
	}

	logger := config.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	now := config.Now
	if now == nil {
		now = time.Now
	}

	perms := core.NewEvaluator(now)
	sessions := services.NewSessionStore(config.Storage, config.StorageKey, now, logger)

	return &Gate{
		Sessions:    sessions,
		Auth:        services.NewAuthService(users, passwordHasher, sessions, *sessionConfig),
		Events:      services.NewEventBoard(perms, logger, config.Events...),
		Permissions: perms,
		Logger:      logger,
	}, nil
}

// ForClient returns the session store and authenticator of one client.
func (g *Gate) ForClient(clientID string) Client {
	return Client{
		Sessions: g.Sessions.Scoped(clientID),
		Auth:     g.Auth.Scoped(clientID),
	}
}

// Plan computes the visibility plan for s over the current event board.
func (g *Gate) Plan(s *Session) Plan {
	return g.Permissions.Plan(s, g.Events.Resources())
}
