package models

import (
	"strings"
	"time"
)

// LogSummary is one entry of a day's logs as returned by the user-logs endpoint.
type LogSummary struct {
	ID         string    `json:"id"`
	ActivityID string    `json:"activityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Notes      string    `json:"notes,omitempty"`
	Verified   bool      `json:"verified"`
}

// DayLogs groups the logs the backend attributes to one calendar date (YYYY-MM-DD).
type DayLogs struct {
	Date string       `json:"date"`
	Logs []LogSummary `json:"logs"`
}

type UserLogs struct {
	PactID string    `json:"pactId"`
	UserID string    `json:"userId"`
	Days   []DayLogs `json:"days"`
}

type MediaFile struct {
	Name           string `json:"name"`
	MimeType       string `json:"mimeType"`
	SizeBytes      int64  `json:"sizeBytes"`
	WebViewLink    string `json:"webViewLink"`
	WebContentLink string `json:"webContentLink"`
}

// IsImage reports whether the attachment can be previewed as a picture
func (m MediaFile) IsImage() bool { return strings.HasPrefix(m.MimeType, "image/") }

type ActivityLog struct {
	ID         string      `json:"_id"`
	PactID     string      `json:"pactId"`
	ActivityID string      `json:"activityId"`
	UserID     string      `json:"userId"`
	Date       string      `json:"date,omitempty"`
	OccurredAt time.Time   `json:"occurredAt"`
	Notes      string      `json:"notes,omitempty"`
	Verified   bool        `json:"verified"`
	Images     []MediaFile `json:"images,omitempty"`
}

// LogDetail is the single-log view, including attachment metadata.
type LogDetail = ActivityLog

type PactProgress struct {
	PactID       string `json:"pactId"`
	TargetDays   int    `json:"targetDays"`
	ActivityDays int    `json:"activityDays"`
}

type ProgressResponse struct {
	Results []PactProgress `json:"results"`
}

// ByPact indexes progress results by pact id
func (r ProgressResponse) ByPact() map[string]PactProgress {
	out := make(map[string]PactProgress, len(r.Results))
	for _, p := range r.Results {
		out[p.PactID] = p
	}
	return out
}

// Attachment is a local file queued for upload with a log.
type Attachment struct {
	Path     string
	Name     string
	MimeType string
	Size     int64
}

type CreateLogInput struct {
	PactID     string
	ActivityID string
	UserID     string
	Date       string
	Notes      string
	Files      []Attachment
}

func (in CreateLogInput) Validate() error {
	errs := ValidationErrors{}
	errs.Check("activityId", ValidateRequired(in.ActivityID, "Select an activity"))
	if strings.TrimSpace(in.Date) == "" {
		errs.Check("date", ValidateRequired(in.Date, "Date is required"))
	} else {
		errs.Check("date", ValidateDate(in.Date))
	}
	errs.Check("files", ValidateAttachments(in.Files))
	return errs.OrNil()
}
