package core

import (
	"time"

	"github.com/lborres/rolegate/pkg/crypto"
	"github.com/lborres/rolegate/pkg/logging"
)

type Config struct {
	// Storage backs the session store. Required.
	Storage KeyValueStorage

	// Optional config
	Users          UserStorage
	SessionConfig  *SessionConfig
	PasswordHasher crypto.PasswordHandler
	Logger         logging.Logger
	Now            func() time.Time
	StorageKey     string

	// Events seeds the event board.
	Events []Resource
}
