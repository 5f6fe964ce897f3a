package constants

import "time"

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	AppName            = "pact"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/pact/pact.db"
	DefaultAPIURL      = "http://localhost:3000"
	DefaultTimeout     = 15 * time.Second
	Version            = "v0.1.0"

	// KeyringConfigValue selects the connection string stored in the OS keyring
	KeyringConfigValue = "keyring"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DisplayDateFormat mirrors the short en-US date used in listings
	DisplayDateFormat = "Jan 2, 2006"
	// DisplayDateTimeFormat is used where the time of day matters
	DisplayDateTimeFormat = "Jan 2, 2006 15:04"

	// UserIDHeader carries the opaque identity on authenticated requests
	UserIDHeader = "X-User-Id"
	// RequestIDHeader correlates client log lines with backend requests
	RequestIDHeader = "X-Request-Id"

	// Week view layout
	MinWindowDays      = 7
	WideLayoutMinWidth = 100
	DayCardWidth       = 28

	// Reconnect probing while the backend is unreachable
	ReconnectProbeInterval = 5 * time.Second

	// Session States
	StateLoading SessionState = iota
	StateWeek
	StatePacts
	StateLogDetail
	StateSignup
	StateAddLog
	StateError
)
