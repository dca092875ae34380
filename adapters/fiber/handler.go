package fiber

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v3"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/directory"
)

type signInInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createEventInput struct {
	Title string `json:"title"`
}

type rejectEventInput struct {
	Reason string `json:"reason"`
}

type createEventResult struct {
	Event   core.Resource `json:"event"`
	Outcome core.Outcome  `json:"outcome"`
}

func (a *Adapter) signin(c fiber.Ctx) error {
	var input signInInput
	if err := c.Bind().Body(&input); err != nil {
		return handleError(c, errInvalidBody)
	}

	result, err := clientFrom(c).Auth.Login(input.Email, input.Password)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) quickLogin(c fiber.Ctx) error {
	email, password, ok := directory.Credentials(c.Params("account"))
	if !ok {
		return handleError(c, core.ErrUserNotFound)
	}

	result, err := clientFrom(c).Auth.Login(email, password)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(result)
}

func (a *Adapter) signout(c fiber.Ctx) error {
	outcome, err := clientFrom(c).Auth.Logout()
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(outcome)
}

// session reports why there is no session (expired, reset, never logged in)
// so the client can show the matching notice.
func (a *Adapter) session(c fiber.Ctx) error {
	s, err := clientFrom(c).Sessions.Inspect()
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(s)
}

func (a *Adapter) plan(c fiber.Ctx) error {
	s, err := clientFrom(c).Sessions.Load()
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(a.gate.Plan(s))
}

func (a *Adapter) guard(c fiber.Ctx) error {
	required, err := core.ParseRole(c.Params("role"))
	if err != nil {
		return handleError(c, err)
	}
	s, err := clientFrom(c).Sessions.Load()
	if err != nil {
		return handleError(c, err)
	}

	guard := a.gate.Permissions.Protect(s, required)
	if !guard.Allowed {
		return c.Status(http.StatusForbidden).JSON(guard)
	}
	return c.Status(http.StatusOK).JSON(guard)
}

func (a *Adapter) listEvents(c fiber.Ctx) error {
	return c.Status(http.StatusOK).JSON(a.gate.Events.Resources())
}

func (a *Adapter) createEvent(c fiber.Ctx) error {
	var input createEventInput
	if err := c.Bind().Body(&input); err != nil {
		return handleError(c, errInvalidBody)
	}
	s, err := sessionFrom(c)
	if err != nil {
		return handleError(c, err)
	}

	ev, outcome, err := a.gate.Events.Create(s, input.Title)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(createEventResult{Event: ev, Outcome: outcome})
}

func (a *Adapter) editEvent(c fiber.Ctx) error {
	return a.eventAction(c, a.gate.Events.Edit)
}

func (a *Adapter) deleteEvent(c fiber.Ctx) error {
	return a.eventAction(c, a.gate.Events.Delete)
}

func (a *Adapter) approveEvent(c fiber.Ctx) error {
	return a.eventAction(c, a.gate.Events.Approve)
}

func (a *Adapter) featureEvent(c fiber.Ctx) error {
	return a.eventAction(c, a.gate.Events.Feature)
}

func (a *Adapter) rejectEvent(c fiber.Ctx) error {
	var input rejectEventInput
	if err := c.Bind().Body(&input); err != nil {
		return handleError(c, errInvalidBody)
	}
	return a.eventAction(c, func(s *core.Session, id string) (core.Outcome, error) {
		return a.gate.Events.Reject(s, id, input.Reason)
	})
}

func (a *Adapter) eventAction(c fiber.Ctx, action func(*core.Session, string) (core.Outcome, error)) error {
	s, err := sessionFrom(c)
	if err != nil {
		return handleError(c, err)
	}

	outcome, err := action(s, c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(http.StatusOK).JSON(outcome)
}

// handleError writes err as an ErrorResponse carrying the notice the user
// should see.
func handleError(c fiber.Ctx, err error) error {
	status := mapErrorToStatus(err)
	notice := core.NoticeFor(err)
	resp := core.ErrorResponse{
		Error:  err.Error(),
		Code:   status,
		Notice: &notice,
	}
	if status == http.StatusInternalServerError {
		resp.Error = "internal error"
	}
	return c.Status(status).JSON(resp)
}

// mapErrorToStatus maps rolegate error types to HTTP status codes
func mapErrorToStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, core.ErrMissingField),
		errors.Is(err, core.ErrInvalidRole):
		return http.StatusBadRequest

	case errors.Is(err, core.ErrInvalidCredentials),
		errors.Is(err, core.ErrSessionNotFound),
		errors.Is(err, core.ErrSessionExpired),
		errors.Is(err, core.ErrStorageCorrupt):
		return http.StatusUnauthorized

	case errors.Is(err, core.ErrPermissionDenied):
		return http.StatusForbidden

	case errors.Is(err, core.ErrEventNotFound),
		errors.Is(err, core.ErrUserNotFound):
		return http.StatusNotFound

	case errors.Is(err, core.ErrEventNotPending):
		return http.StatusConflict

	case errors.Is(err, core.ErrStorageUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
