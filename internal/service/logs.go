package service

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/julianstephens/pact/internal/cache"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
	"github.com/julianstephens/pact/internal/utils"
)

// CreateLog validates and uploads a log. The date defaults to today.
func (s *Service) CreateLog(ctx context.Context, m session.Member, in models.CreateLogInput) (models.ActivityLog, error) {
	in.UserID = m.UserID()
	if strings.TrimSpace(in.Date) == "" {
		in.Date = utils.TodayKey(s.loc, s.now())
	}
	if err := in.Validate(); err != nil {
		return models.ActivityLog{}, err
	}

	log, err := s.api.CreateLog(ctx, m, in)
	if err != nil {
		return models.ActivityLog{}, fmt.Errorf("upload log: %w", err)
	}
	s.publish(cache.LogCreated{PactID: in.PactID, UserID: m.UserID()})
	return log, nil
}

func (s *Service) Log(ctx context.Context, id session.Identity, logID string) (models.LogDetail, error) {
	return cache.Fetch(ctx, s.cache, "log:"+logID, []string{cache.LogTag(logID)}, constants.DefaultCacheTTL,
		func(ctx context.Context) (models.LogDetail, error) {
			return s.api.Log(ctx, id, logID)
		})
}

// AttachmentFromPath describes a local file for upload. The MIME type comes
// from the extension, falling back to sniffing the first bytes.
func AttachmentFromPath(path string) (models.Attachment, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.Attachment{}, fmt.Errorf("attachment %s: %w", path, err)
	}
	if info.IsDir() {
		return models.Attachment{}, fmt.Errorf("attachment %s is a directory", path)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	if mimeType == "" || mimeType == "application/octet-stream" {
		mimeType, err = sniff(path)
		if err != nil {
			return models.Attachment{}, err
		}
	}

	return models.Attachment{
		Path:     path,
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Size:     info.Size(),
	}, nil
}

func sniff(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, _ := f.Read(buf)
	ct := http.DetectContentType(buf[:n])
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	return ct, nil
}
