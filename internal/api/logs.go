package api

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// CreateLog uploads a log with its attachments as multipart/form-data. Files
// are streamed from disk rather than buffered. The backend stamps the log
// date itself, so in.Date is never sent.
func (c *Client) CreateLog(ctx context.Context, m session.Member, in models.CreateLogInput) (models.ActivityLog, error) {
	if in.UserID == "" {
		in.UserID = m.UserID()
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		pw.CloseWithError(writeLogForm(mw, in))
	}()

	req, err := c.newRequest(ctx, m, http.MethodPost, "/activity-logs", nil, pr, mw.FormDataContentType())
	if err != nil {
		pr.Close()
		return models.ActivityLog{}, err
	}

	var log models.ActivityLog
	if err := c.do(req, &log); err != nil {
		pr.CloseWithError(err)
		return models.ActivityLog{}, err
	}
	return log, nil
}

func writeLogForm(mw *multipart.Writer, in models.CreateLogInput) error {
	for _, f := range in.Files {
		if err := writeFilePart(mw, f); err != nil {
			return err
		}
	}
	fields := []struct{ name, value string }{
		{"pactId", in.PactID},
		{"activityId", in.ActivityID},
		{"userId", in.UserID},
		{"notes", in.Notes},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := mw.WriteField(f.name, f.value); err != nil {
			return err
		}
	}
	return mw.Close()
}

func writeFilePart(mw *multipart.Writer, a models.Attachment) error {
	file, err := os.Open(a.Path)
	if err != nil {
		return fmt.Errorf("open attachment: %w", err)
	}
	defer file.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="files"; filename=%q`, a.Name))
	h.Set("Content-Type", a.MimeType)
	part, err := mw.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, file); err != nil {
		return fmt.Errorf("upload attachment %s: %w", a.Name, err)
	}
	return nil
}

// Progress returns the member's logged days against target for each joined pact.
func (c *Client) Progress(ctx context.Context, m session.Member) (models.ProgressResponse, error) {
	var out models.ProgressResponse
	q := url.Values{"userId": {m.UserID()}}
	if err := c.get(ctx, m, "/activity-logs/progress/by-user", q, &out); err != nil {
		return models.ProgressResponse{}, err
	}
	return out, nil
}

// UserLogs returns the member's logs for a pact grouped by calendar date.
func (c *Client) UserLogs(ctx context.Context, m session.Member, pactID string) (models.UserLogs, error) {
	var out models.UserLogs
	q := url.Values{"pactId": {pactID}, "userId": {m.UserID()}}
	if err := c.get(ctx, m, "/activity-logs/user-logs", q, &out); err != nil {
		return models.UserLogs{}, err
	}
	return out, nil
}

func (c *Client) Log(ctx context.Context, id session.Identity, logID string) (models.LogDetail, error) {
	endpoint, err := resourcePath("/activity-logs", logID)
	if err != nil {
		return models.LogDetail{}, err
	}
	var out models.LogDetail
	if err := c.get(ctx, id, endpoint, nil, &out); err != nil {
		return models.LogDetail{}, err
	}
	return out, nil
}
