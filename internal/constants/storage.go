package constants

import "time"

const (
	// Persisted client state keys
	StateKeyUser          = "user"
	StateKeyUserID        = "userId"
	StateKeyCurrentPactID = "currentPactId"

	// Response cache lifetimes
	DefaultCacheTTL     = 5 * time.Minute
	ActivePactsCacheTTL = 30 * time.Second
)
