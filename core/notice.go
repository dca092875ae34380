package core

import (
	"errors"
	"time"
)

// NoticeLevel selects the styling of a transient notification.
type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeWarning NoticeLevel = "warning"
	NoticeInfo    NoticeLevel = "info"
)

// Notice is a transient, user-visible message (a toast).
type Notice struct {
	Level   NoticeLevel `json:"type"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// Outcome pairs a notice with an optional navigation performed after Delay.
type Outcome struct {
	Notice   Notice        `json:"notice"`
	Redirect string        `json:"redirect,omitempty"`
	Delay    time.Duration `json:"delay,omitempty"`
}

// NoticeFor converts an error into the notice shown to the user. Every error
// is recoverable at the call boundary; unknown errors get a generic message.
func NoticeFor(err error) Notice {
	switch {
	case err == nil:
		return Notice{Level: NoticeInfo}
	case errors.Is(err, ErrReasonRequired):
		return Notice{Level: NoticeWarning, Title: "Reason Required", Message: "Please give a reason for rejecting this event"}
	case errors.Is(err, ErrMissingField):
		return Notice{Level: NoticeError, Title: "Login Failed", Message: "Email and password are required!"}
	case errors.Is(err, ErrInvalidCredentials):
		return Notice{Level: NoticeError, Title: "Login Failed", Message: "Invalid email or password!"}
	case errors.Is(err, ErrStorageUnavailable):
		return Notice{Level: NoticeError, Title: "Login Failed", Message: "Unable to save session. Please try again."}
	case errors.Is(err, ErrSessionExpired):
		return Notice{Level: NoticeWarning, Title: "Session Expired", Message: "Please login again."}
	case errors.Is(err, ErrSessionNotFound):
		return Notice{Level: NoticeWarning, Title: "Login Required", Message: "Please login to continue"}
	case errors.Is(err, ErrStorageCorrupt):
		return Notice{Level: NoticeWarning, Title: "Session Reset", Message: "Your saved session could not be read. Please login again."}
	case errors.Is(err, ErrPermissionDenied):
		return Notice{Level: NoticeError, Title: "Access Denied", Message: "You do not have permission to do that"}
	case errors.Is(err, ErrEventNotFound):
		return Notice{Level: NoticeError, Title: "Event Not Found", Message: "The event no longer exists"}
	case errors.Is(err, ErrEventNotPending):
		return Notice{Level: NoticeInfo, Title: "Already Reviewed", Message: "This event is not waiting for approval"}
	default:
		return Notice{Level: NoticeError, Title: "Something Went Wrong", Message: "Please try again."}
	}
}
