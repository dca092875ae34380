package core

// Ports define interfaces for external dependencies

// ============================================
// STORAGE PORTS
// ============================================

// KeyValueStorage is a string-keyed byte store with the semantics of browser
// local storage: one value per key, last write wins.
type KeyValueStorage interface {
	// GetItem returns ErrItemNotFound when the key is absent.
	GetItem(key string) ([]byte, error)
	SetItem(key string, value []byte) error
	// RemoveItem is a no-op for absent keys.
	RemoveItem(key string) error
}

// UserStorage resolves reference accounts for the authenticator.
type UserStorage interface {
	// GetUserByEmail matches email case-insensitively and returns
	// ErrUserNotFound when no record matches.
	GetUserByEmail(email string) (*User, error)
}

// StorageStats are simple counters for storage behavior.
// These are intended for diagnostics and monitoring.
type StorageStats struct {
	Reads     int64 `json:"reads"`
	Misses    int64 `json:"misses"`
	Writes    int64 `json:"writes"`
	Removes   int64 `json:"removes"`
	Rejected  int64 `json:"rejected"`
	Items     int   `json:"items"`
	Bytes     int   `json:"bytes"`
	QuotaSize int   `json:"quotaSize"`
}

// StorageWithStats extends KeyValueStorage with statistics tracking
type StorageWithStats interface {
	KeyValueStorage
	Stats() StorageStats
}

// ============================================
// PRESENTATION PORT
// ============================================

// Presenter is the thin layer a Plan is applied to. Implementations map
// regions to whatever UI technology is in use.
type Presenter interface {
	SetVisible(region Region, visible bool)
	SetContent(region Region, content any)
}
