package core

import (
	"fmt"
	"time"
)

// Evaluator answers permission questions about a session. It holds no state
// besides the clock used to decide expiry.
type Evaluator struct {
	now func() time.Time
}

// NewEvaluator returns an Evaluator using now as its clock. A nil now means
// the wall clock.
func NewEvaluator(now func() time.Time) Evaluator {
	if now == nil {
		now = time.Now
	}
	return Evaluator{now: now}
}

func (e Evaluator) clock() time.Time {
	if e.now == nil {
		return time.Now()
	}
	return e.now()
}

// Active reports whether s is present and unexpired.
func (e Evaluator) Active(s *Session) bool {
	return s.ActiveAt(e.clock())
}

// HasRole is false for a missing or expired session, otherwise
// s.Role >= required.
func (e Evaluator) HasRole(s *Session, required Role) bool {
	if !e.Active(s) {
		return false
	}
	return s.Role >= required
}

func (e Evaluator) CanCreateEvent(s *Session) bool   { return e.HasRole(s, RoleOrganizer) }
func (e Evaluator) CanViewAnalytics(s *Session) bool { return e.HasRole(s, RoleOrganizer) }
func (e Evaluator) CanApproveEvent(s *Session) bool  { return e.HasRole(s, RoleAdmin) }
func (e Evaluator) CanManageUsers(s *Session) bool   { return e.HasRole(s, RoleAdmin) }

// CanModify decides ownership-scoped actions. Admins may modify anything;
// organizers only resources whose owner id equals their email, compared
// exactly; everyone else nothing.
func (e Evaluator) CanModify(s *Session, ownerID string) bool {
	if !e.Active(s) {
		return false
	}
	switch s.Role {
	case RoleAdmin:
		return true
	case RoleOrganizer:
		return s.Email == ownerID
	default:
		return false
	}
}

func (e Evaluator) CanEditEvent(s *Session, ownerID string) bool   { return e.CanModify(s, ownerID) }
func (e Evaluator) CanDeleteEvent(s *Session, ownerID string) bool { return e.CanModify(s, ownerID) }

// Guard is the result of protecting a view with a minimum role.
type Guard struct {
	Allowed bool     `json:"allowed"`
	Outcome *Outcome `json:"outcome,omitempty"`
}

// Err returns ErrPermissionDenied for a denied guard.
func (g Guard) Err() error {
	if g.Allowed {
		return nil
	}
	return ErrPermissionDenied
}

// Protect checks s against required. A denied guard carries a visible notice
// and a delayed redirect to the home page; denial is never silent.
func (e Evaluator) Protect(s *Session, required Role) Guard {
	if e.HasRole(s, required) {
		return Guard{Allowed: true}
	}
	return Guard{
		Outcome: &Outcome{
			Notice: Notice{
				Level:   NoticeError,
				Title:   "Access Denied",
				Message: fmt.Sprintf("This page requires %s role", required),
			},
			Redirect: PageHome,
			Delay:    DeniedRedirectDelay,
		},
	}
}

var wallClock = NewEvaluator(nil)

// HasRole evaluates against the wall clock.
func HasRole(s *Session, required Role) bool { return wallClock.HasRole(s, required) }

// CanModify evaluates against the wall clock.
func CanModify(s *Session, ownerID string) bool { return wallClock.CanModify(s, ownerID) }
