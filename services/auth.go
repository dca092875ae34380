package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
)

type AuthService struct {
	users          core.UserStorage
	passwordHasher crypto.PasswordHandler
	sessions       *SessionStore
	config         core.SessionConfig
}

// LoginResult is a successful login: the new session plus the notice and
// redirect shown to the user.
type LoginResult struct {
	Session *core.Session `json:"session"`
	Outcome core.Outcome  `json:"outcome"`
}

func NewAuthService(users core.UserStorage, passwordHasher crypto.PasswordHandler, sessions *SessionStore, config core.SessionConfig) *AuthService {
	if passwordHasher == nil {
		passwordHasher = crypto.Plaintext{}
	}
	if config.MaxAge <= 0 {
		config.MaxAge = core.DefaultMaxAge
	}
	return &AuthService{
		users:          users,
		passwordHasher: passwordHasher,
		sessions:       sessions,
		config:         config,
	}
}

// Scoped returns an AuthService whose sessions live in the given client scope.
func (s *AuthService) Scoped(scope string) *AuthService {
	scoped := *s
	scoped.sessions = s.sessions.Scoped(scope)
	return &scoped
}

// Sessions exposes the store logins are written to.
func (s *AuthService) Sessions() *SessionStore {
	return s.sessions
}

// Authenticate checks the credential and, on success, persists and returns a
// fresh session. Unknown emails and wrong passwords are indistinguishable.
func (s *AuthService) Authenticate(email, password string) (*core.Session, error) {
	// Step 1: Validate input
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, core.ErrMissingField
	}

	// Step 2: Find the user by email
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if errors.Is(err, core.ErrUserNotFound) {
			s.sessions.log.Debug("login rejected", "reason", "unknown email")
			return nil, core.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Step 3: Verify the password
	valid, err := s.passwordHasher.Verify(password, user.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		s.sessions.log.Debug("login rejected", "reason", "bad credential")
		return nil, core.ErrInvalidCredentials
	}

	// Step 4: Create and persist the session
	session := core.NewSession(user, s.sessions.now(), s.config.MaxAge)
	if err := s.sessions.Save(session); err != nil {
		return nil, err
	}

	s.sessions.log.Info("user logged in", "email", session.Email, "role", session.RoleName)
	return session, nil
}

// Login authenticates and bundles the welcome notice with the role's landing
// page.
func (s *AuthService) Login(email, password string) (*LoginResult, error) {
	session, err := s.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	return &LoginResult{
		Session: session,
		Outcome: core.Outcome{
			Notice: core.Notice{
				Level:   core.NoticeSuccess,
				Title:   "Login Successful!",
				Message: fmt.Sprintf("Welcome back, %s!", session.Name),
			},
			Redirect: core.RedirectTargetFor(session.Role),
			Delay:    core.LoginRedirectDelay,
		},
	}, nil
}

// Logout clears the current session. Logging out without a session is not an
// error; the notice says so.
func (s *AuthService) Logout() (core.Outcome, error) {
	current, loadErr := s.sessions.Load()
	if err := s.sessions.Clear(); err != nil {
		return core.Outcome{}, err
	}
	if loadErr != nil {
		s.sessions.log.Warn("logout without readable session", "error", loadErr)
	}

	outcome := core.Outcome{Redirect: core.PageHome, Delay: core.LogoutRedirectDelay}
	if current == nil {
		outcome.Notice = core.Notice{Level: core.NoticeInfo, Title: "Already Logged Out", Message: "You are not logged in"}
		return outcome, nil
	}

	s.sessions.log.Info("user logged out", "email", current.Email)
	outcome.Notice = core.Notice{
		Level:   core.NoticeSuccess,
		Title:   "Logged Out",
		Message: fmt.Sprintf("Goodbye, %s!", current.Name),
	}
	return outcome, nil
}
