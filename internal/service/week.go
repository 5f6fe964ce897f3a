package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
	"github.com/julianstephens/pact/internal/week"
)

// Week is the joined week-view: every day from the pact's first week through
// the end of the current week, each with its logs.
type Week struct {
	Pact       models.Pact
	Cells      []week.Cell
	TodayIndex int
	FetchedAt  time.Time
}

// WeekView fetches the pact and the member's logs in parallel and joins them
// onto the calendar window. Logs are always fetched fresh.
func (s *Service) WeekView(ctx context.Context, id session.Identity, pactID string) (Week, error) {
	m, err := session.RequireMember(id)
	if err != nil {
		return Week{}, err
	}

	var (
		pact models.Pact
		logs models.UserLogs
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pact, err = s.Pact(gctx, m, pactID)
		return err
	})
	g.Go(func() error {
		var err error
		logs, err = s.api.UserLogs(gctx, m, pactID)
		return err
	})
	if err := g.Wait(); err != nil {
		return Week{}, fmt.Errorf("load week for pact %s: %w", pactID, err)
	}

	return s.joinWeek(pact, logs.Days), nil
}

// RefreshLogs refetches only the logs and rejoins them onto an already loaded
// week.
func (s *Service) RefreshLogs(ctx context.Context, id session.Identity, w Week) (Week, error) {
	m, err := session.RequireMember(id)
	if err != nil {
		return Week{}, err
	}
	logs, err := s.api.UserLogs(ctx, m, w.Pact.ID)
	if err != nil {
		return Week{}, fmt.Errorf("refresh logs for pact %s: %w", w.Pact.ID, err)
	}
	return s.joinWeek(w.Pact, logs.Days), nil
}

func (s *Service) joinWeek(pact models.Pact, byDay []models.DayLogs) Week {
	now := s.now()
	today := now.In(s.loc)

	start, err := week.ParseStart(pact.StartDate, s.loc)
	if err != nil {
		logger.Warn("Ignoring unparseable pact start date", "pact", pact.ID, "error", err)
		start = nil
	}

	days := week.Build(today, start)
	return Week{
		Pact:       pact,
		Cells:      week.Reconcile(days, byDay),
		TodayIndex: week.TodayIndex(days),
		FetchedAt:  now,
	}
}
