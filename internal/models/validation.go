package models

import (
	"errors"
	"fmt"
	"net/mail"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/pact/internal/constants"
)

// FieldError is a validation failure attached to a single form field
type FieldError struct {
	Field   string
	Message string
}

// ValidationErrors collects per-field failures in the order they were found.
type ValidationErrors []FieldError

func (v *ValidationErrors) Check(field string, err error) {
	if err != nil {
		*v = append(*v, FieldError{Field: field, Message: err.Error()})
	}
}

// OrNil returns nil when no field failed so callers can return it directly
func (v ValidationErrors) OrNil() error {
	if len(v) == 0 {
		return nil
	}
	return v
}

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, fe := range v {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Field returns the message for a field, or "" when it passed
func (v ValidationErrors) Field(name string) string {
	for _, fe := range v {
		if fe.Field == name {
			return fe.Message
		}
	}
	return ""
}

func ValidateRequired(value, message string) error {
	if strings.TrimSpace(value) == "" {
		return errors.New(message)
	}
	return nil
}

func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) < 2 {
		return errors.New("Name must be at least 2 characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil || addr.Address != strings.TrimSpace(email) {
		return errors.New("Please enter a valid email address")
	}
	return nil
}

func ValidatePhone(phone string) error {
	if len(strings.TrimSpace(phone)) < 10 {
		return errors.New("Please enter a valid phone number")
	}
	return nil
}

func ValidateTitle(title string) error {
	n := len(strings.TrimSpace(title))
	switch {
	case n < 3:
		return errors.New("Title must be at least 3 characters")
	case n > 100:
		return errors.New("Title must be less than 100 characters")
	}
	return nil
}

func ValidateMinDaysPerWeek(days int) error {
	switch {
	case days < 1:
		return errors.New("Minimum days per week must be at least 1")
	case days > 7:
		return errors.New("Minimum days per week cannot exceed 7")
	}
	return nil
}

func ValidateMaxActivities(n int) error {
	if n < 1 {
		return errors.New("Max activities per user must be at least 1")
	}
	return nil
}

func ValidateFine(label string, amount float64) error {
	if amount < 0 {
		return fmt.Errorf("%s must be 0 or greater", label)
	}
	return nil
}

func ValidateActivityName(name string) error {
	return ValidateRequired(name, "Activity name is required")
}

func ValidateNumberOfDays(days int) error {
	switch {
	case days < 1:
		return errors.New("Number of days must be at least 1")
	case days > 7:
		return errors.New("Number of days cannot exceed 7")
	}
	return nil
}

func ValidateDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, strings.TrimSpace(date)); err != nil {
		return fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", date)
	}
	return nil
}

// ValidateAttachments enforces the accepted media types and per-kind size limits.
// The first offending file determines the message.
func ValidateAttachments(files []Attachment) error {
	for _, f := range files {
		if !slices.Contains(constants.AllowedMediaTypes, f.MimeType) {
			return errors.New("Unsupported file type. Allowed: jpeg, png, webp, mp4, mov.")
		}
		limit := constants.MaxVideoBytes
		if strings.HasPrefix(f.MimeType, "image/") {
			limit = constants.MaxImageBytes
		}
		if f.Size > limit {
			return fmt.Errorf("File %s is too large. Max %d MB.", f.Name, limit/(1024*1024))
		}
	}
	return nil
}
