// Package logging defines the small structured-logging interface used by the
// services and adapters. The variadic args are key/value pairs:
//
//	log.Info("session saved", "email", s.Email, "role", s.RoleName)
package logging

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)

	// With returns a child logger that always includes the given pairs.
	With(args ...any) Logger
}
