package core

import (
	"net/url"
	"time"
)

// Site pages the role layer navigates between.
const (
	PageHome   = "index.html"
	PageLogin  = "login.html"
	PageCreate = "create.html"
)

// Delays before a redirect, long enough for the accompanying notice to be read.
const (
	LoginRedirectDelay  = 1 * time.Second
	LogoutRedirectDelay = 1 * time.Second
	DeniedRedirectDelay = 1500 * time.Millisecond
	EditRedirectDelay   = 500 * time.Millisecond
	PromptRedirectDelay = 1 * time.Second
)

// RedirectTargetFor returns the landing page after a successful login.
func RedirectTargetFor(role Role) string {
	switch role {
	case RoleAdmin:
		return PageHome + "?view=admin"
	case RoleOrganizer:
		return PageHome + "?view=organizer"
	default:
		return PageHome
	}
}

// EditTargetFor returns the editor page for an event.
func EditTargetFor(eventID string) string {
	q := url.Values{}
	q.Set("id", eventID)
	q.Set("mode", "edit")
	return PageCreate + "?" + q.Encode()
}
