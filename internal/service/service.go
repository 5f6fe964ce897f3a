// Package service sequences API calls, caching and identity for the CLI and
// the TUI so both present the same data the same way.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/julianstephens/pact/internal/cache"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

var (
	// ErrNoPactSelected is returned when no pact id was given and none is remembered.
	ErrNoPactSelected = errors.New("no pact selected, pass a pact id or join one first")
	// ErrActivityLimit is returned when the member already has the pact's maximum activities.
	ErrActivityLimit = errors.New("you already have the maximum number of activities for this pact")
	// ErrNotReadyToJoin is returned when joining before picking the required activities.
	ErrNotReadyToJoin = errors.New("add the required number of activities before joining")
	// ErrAlreadyJoined is returned when the member is already a participant.
	ErrAlreadyJoined = errors.New("you are already a participant of this pact")
)

// Backend is the pacts REST API as the service uses it.
type Backend interface {
	CreateUser(ctx context.Context, in models.CreateUserInput) (models.User, error)
	JoinPact(ctx context.Context, m session.Member, in models.JoinPactInput) error
	ActivePacts(ctx context.Context, id session.Identity) ([]models.Pact, error)
	Pact(ctx context.Context, id session.Identity, pactID string) (models.Pact, error)
	CreatePact(ctx context.Context, id session.Identity, in models.CreatePactInput) (models.Pact, error)
	Activities(ctx context.Context, id session.Identity, pactID string) ([]models.Activity, error)
	UserActivities(ctx context.Context, m session.Member, pactID string) ([]models.Activity, error)
	CreateActivity(ctx context.Context, m session.Member, in models.CreateActivityInput) (models.Activity, error)
	CreateLog(ctx context.Context, m session.Member, in models.CreateLogInput) (models.ActivityLog, error)
	Progress(ctx context.Context, m session.Member) (models.ProgressResponse, error)
	UserLogs(ctx context.Context, m session.Member, pactID string) (models.UserLogs, error)
	Log(ctx context.Context, id session.Identity, logID string) (models.LogDetail, error)
	Ping(ctx context.Context) error
}

type Service struct {
	api   Backend
	cache *cache.Cache
	state session.StateStore
	loc   *time.Location
	now   func() time.Time
}

type Option func(*Service)

// WithLocation sets the zone used to decide what "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(api Backend, c *cache.Cache, state session.StateStore, opts ...Option) *Service {
	s := &Service{
		api:   api,
		cache: c,
		state: state,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location is the zone calendar days are computed in.
func (s *Service) Location() *time.Location { return s.loc }

// Today is the current instant in the service's zone.
func (s *Service) Today() time.Time { return s.now().In(s.loc) }

// Ping probes the backend without touching the cache.
func (s *Service) Ping(ctx context.Context) error { return s.api.Ping(ctx) }

// ClearCache drops every cached response.
func (s *Service) ClearCache() (int, error) { return s.cache.Clear() }

// publish invalidates cached responses after a successful mutation. A failed
// invalidation only risks a stale read, so it never fails the mutation.
func (s *Service) publish(ev cache.Event) {
	if err := s.cache.Publish(ev); err != nil {
		logger.Warn("Cache invalidation failed", "error", err)
	}
}
