package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Kind classifies how a request failed.
type Kind string

const (
	// KindTransport means no HTTP response arrived (DNS, refused, timeout, cancelled).
	KindTransport Kind = "transport"
	// KindStatus means the backend answered with a non-2xx status.
	KindStatus Kind = "status"
	// KindDecode means a 2xx body did not match the expected shape.
	KindDecode Kind = "decode"
)

// Error is the failure variant of every client call.
type Error struct {
	Kind      Kind
	Method    string
	Path      string
	Status    int
	Message   string
	RequestID string
	Err       error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindStatus:
		if e.Message != "" {
			return fmt.Sprintf("%s %s: %d: %s", e.Method, e.Path, e.Status, e.Message)
		}
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	case KindDecode:
		return fmt.Sprintf("%s %s: decode response: %v", e.Method, e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Method, e.Path, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// IsTransport reports whether err is a connectivity failure.
func IsTransport(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == KindTransport
}

// ServerMessage returns the backend's explanation for a status error, or "".
func ServerMessage(err error) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Kind == KindStatus {
		return apiErr.Message
	}
	return ""
}

// errorBody matches the backend's error envelope; message may be a string or
// a list of validation messages.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func parseErrorMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return ""
	}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return trimmed
	}

	if len(eb.Message) > 0 {
		var single string
		if err := json.Unmarshal(eb.Message, &single); err == nil && single != "" {
			return single
		}
		var many []string
		if err := json.Unmarshal(eb.Message, &many); err == nil && len(many) > 0 {
			return strings.Join(many, "; ")
		}
	}
	if eb.Error != "" {
		return eb.Error
	}
	return trimmed
}
