package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lborres/rolegate/core"
	"github.com/lborres/rolegate/pkg/crypto"
	"github.com/lborres/rolegate/pkg/logging"
)

const untitledEvent = "Untitled Event"

// EventBoard is an in-memory list of event cards with role-guarded actions.
// Nothing leaves the process; actions only change the board and describe
// what the user should see.
type EventBoard struct {
	mu     sync.RWMutex
	events []core.Resource
	perms  core.Evaluator
	newID  func() (string, error)
	log    logging.Logger
}

func NewEventBoard(perms core.Evaluator, log logging.Logger, seed ...core.Resource) *EventBoard {
	if log == nil {
		log = logging.Discard()
	}
	return &EventBoard{
		events: append([]core.Resource(nil), seed...),
		perms:  perms,
		newID:  crypto.NewID,
		log:    log,
	}
}

// Resources returns a snapshot in board order.
func (b *EventBoard) Resources() []core.Resource {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]core.Resource(nil), b.events...)
}

// Get returns one event.
func (b *EventBoard) Get(id string) (core.Resource, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := b.indexOf(id)
	if i < 0 {
		return core.Resource{}, core.ErrEventNotFound
	}
	return b.events[i], nil
}

// Create adds a pending event owned by the session's email.
func (b *EventBoard) Create(s *core.Session, title string) (core.Resource, core.Outcome, error) {
	if !b.perms.Active(s) {
		return core.Resource{}, core.Outcome{}, core.ErrSessionNotFound
	}
	if !b.perms.CanCreateEvent(s) {
		return core.Resource{}, core.Outcome{}, core.ErrPermissionDenied
	}

	id, err := b.newID()
	if err != nil {
		return core.Resource{}, core.Outcome{}, fmt.Errorf("failed to generate event id: %w", err)
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = untitledEvent
	}
	ev := core.Resource{ID: id, Title: title, OwnerID: s.Email, Status: core.StatusPending}

	b.mu.Lock()
	b.events = append(b.events, ev)
	b.mu.Unlock()

	b.log.Info("event created", "id", id, "owner", s.Email)
	return ev, success("Event Submitted", fmt.Sprintf("%s is waiting for approval", title)), nil
}

// Edit opens the editor for an event the session may modify.
func (b *EventBoard) Edit(s *core.Session, id string) (core.Outcome, error) {
	ev, err := b.authorize(s, id, b.perms.CanEditEvent)
	if err != nil {
		return core.Outcome{}, err
	}
	return core.Outcome{
		Notice:   core.Notice{Level: core.NoticeInfo, Title: "Editing Event", Message: fmt.Sprintf("Opening editor for event %s", ev.ID)},
		Redirect: core.EditTargetFor(ev.ID),
		Delay:    core.EditRedirectDelay,
	}, nil
}

func (b *EventBoard) Delete(s *core.Session, id string) (core.Outcome, error) {
	if _, err := b.authorize(s, id, b.perms.CanDeleteEvent); err != nil {
		return core.Outcome{}, err
	}
	if err := b.remove(id); err != nil {
		return core.Outcome{}, err
	}
	b.log.Info("event deleted", "id", id, "by", s.Email)
	return success("Event Deleted", fmt.Sprintf("Event %s has been deleted", id)), nil
}

// Approve publishes a pending event.
func (b *EventBoard) Approve(s *core.Session, id string) (core.Outcome, error) {
	if err := b.review(s, id); err != nil {
		return core.Outcome{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return core.Outcome{}, core.ErrEventNotFound
	}
	if !b.events[i].Pending() {
		return core.Outcome{}, core.ErrEventNotPending
	}
	b.events[i].Status = core.StatusPublished

	b.log.Info("event approved", "id", id, "by", s.Email)
	return success("Event Approved", fmt.Sprintf("Event %s is now published!", id)), nil
}

// Reject removes a pending event. A reason is mandatory.
func (b *EventBoard) Reject(s *core.Session, id, reason string) (core.Outcome, error) {
	if err := b.review(s, id); err != nil {
		return core.Outcome{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return core.Outcome{}, core.ErrReasonRequired
	}

	if err := b.remove(id); err != nil {
		return core.Outcome{}, err
	}

	b.log.Info("event rejected", "id", id, "by", s.Email, "reason", reason)
	return core.Outcome{
		Notice: core.Notice{Level: core.NoticeInfo, Title: "Event Rejected", Message: fmt.Sprintf("Event %s has been rejected", id)},
	}, nil
}

// Feature promotes an event on the home page. Admin only.
func (b *EventBoard) Feature(s *core.Session, id string) (core.Outcome, error) {
	if _, err := b.authorize(s, id, func(s *core.Session, _ string) bool { return b.perms.CanApproveEvent(s) }); err != nil {
		return core.Outcome{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return core.Outcome{}, core.ErrEventNotFound
	}
	b.events[i].Featured = true
	return success("Featured!", "Event is now featured on homepage"), nil
}

// review checks that s may moderate id and that id is awaiting review.
func (b *EventBoard) review(s *core.Session, id string) error {
	ev, err := b.authorize(s, id, func(s *core.Session, _ string) bool { return b.perms.CanApproveEvent(s) })
	if err != nil {
		return err
	}
	if !ev.Pending() {
		return core.ErrEventNotPending
	}
	return nil
}

func (b *EventBoard) authorize(s *core.Session, id string, allowed func(*core.Session, string) bool) (core.Resource, error) {
	if !b.perms.Active(s) {
		return core.Resource{}, core.ErrSessionNotFound
	}
	ev, err := b.Get(id)
	if err != nil {
		return core.Resource{}, err
	}
	if !allowed(s, ev.OwnerID) {
		b.log.Debug("event action denied", "id", id, "email", s.Email, "role", s.RoleName)
		return core.Resource{}, core.ErrPermissionDenied
	}
	return ev, nil
}

func (b *EventBoard) remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(id)
	if i < 0 {
		return core.ErrEventNotFound
	}
	b.events = append(b.events[:i], b.events[i+1:]...)
	return nil
}

// indexOf must be called with mu held.
func (b *EventBoard) indexOf(id string) int {
	for i := range b.events {
		if b.events[i].ID == id {
			return i
		}
	}
	return -1
}

func success(title, message string) core.Outcome {
	return core.Outcome{Notice: core.Notice{Level: core.NoticeSuccess, Title: title, Message: message}}
}
