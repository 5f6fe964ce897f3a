package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/pact/internal/cache"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// PactSummary is a pact as listed, with the member's progress when known.
type PactSummary struct {
	Pact     models.Pact
	Progress *models.PactProgress
}

// Overview splits the active pacts into the member's own and the rest.
type Overview struct {
	Joined  []PactSummary
	Explore []models.Pact
}

// PactDetail is everything the pact page shows.
type PactDetail struct {
	Pact       models.Pact
	Activities []models.Activity
	Mine       []models.Activity
	Enrollment models.EnrollmentState
	Joined     bool
}

func userTags(id session.Identity, tags ...string) []string {
	if id.UserID() != "" {
		tags = append(tags, cache.TagUser)
	}
	return tags
}

func (s *Service) ActivePacts(ctx context.Context, id session.Identity) ([]models.Pact, error) {
	key := "pacts:active:" + id.UserID()
	return cache.Fetch(ctx, s.cache, key, userTags(id, cache.TagActivePacts), constants.ActivePactsCacheTTL,
		func(ctx context.Context) ([]models.Pact, error) {
			return s.api.ActivePacts(ctx, id)
		})
}

func (s *Service) Pact(ctx context.Context, id session.Identity, pactID string) (models.Pact, error) {
	return cache.Fetch(ctx, s.cache, "pact:"+pactID, []string{cache.PactTag(pactID)}, constants.DefaultCacheTTL,
		func(ctx context.Context) (models.Pact, error) {
			return s.api.Pact(ctx, id, pactID)
		})
}

func (s *Service) CreatePact(ctx context.Context, id session.Identity, in models.CreatePactInput) (models.Pact, error) {
	if err := in.Validate(); err != nil {
		return models.Pact{}, err
	}
	p, err := s.api.CreatePact(ctx, id, in)
	if err != nil {
		return models.Pact{}, fmt.Errorf("create pact: %w", err)
	}
	s.publish(cache.PactCreated{})
	return p, nil
}

func (s *Service) progress(ctx context.Context, m session.Member) (models.ProgressResponse, error) {
	key := "progress:" + m.UserID()
	return cache.Fetch(ctx, s.cache, key, []string{cache.ProgressTag(m.UserID()), cache.TagUser}, constants.DefaultCacheTTL,
		func(ctx context.Context) (models.ProgressResponse, error) {
			return s.api.Progress(ctx, m)
		})
}

// Overview lists active pacts, attaching progress to the ones the member joined.
// Guests see everything under Explore.
func (s *Service) Overview(ctx context.Context, id session.Identity) (Overview, error) {
	var (
		pacts    []models.Pact
		progress models.ProgressResponse
	)
	m, isMember := id.(session.Member)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		pacts, err = s.ActivePacts(gctx, id)
		return err
	})
	if isMember {
		g.Go(func() error {
			var err error
			progress, err = s.progress(gctx, m)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return Overview{}, fmt.Errorf("load pacts: %w", err)
	}

	joined, explore := models.SplitByMembership(pacts, id.UserID())
	byPact := progress.ByPact()
	out := Overview{Explore: explore}
	for _, p := range joined {
		summary := PactSummary{Pact: p}
		if pr, ok := byPact[p.ID]; ok {
			summary.Progress = &pr
		}
		out.Joined = append(out.Joined, summary)
	}
	return out, nil
}

func (s *Service) Activities(ctx context.Context, id session.Identity, pactID string) ([]models.Activity, error) {
	return cache.Fetch(ctx, s.cache, "activities:"+pactID, []string{cache.ActivitiesTag(pactID)}, constants.DefaultCacheTTL,
		func(ctx context.Context) ([]models.Activity, error) {
			return s.api.Activities(ctx, id, pactID)
		})
}

func (s *Service) UserActivities(ctx context.Context, m session.Member, pactID string) ([]models.Activity, error) {
	key := "activities:" + pactID + ":" + m.UserID()
	tags := []string{cache.UserActivitiesTag(pactID, m.UserID()), cache.TagUser}
	return cache.Fetch(ctx, s.cache, key, tags, constants.DefaultCacheTTL,
		func(ctx context.Context) ([]models.Activity, error) {
			return s.api.UserActivities(ctx, m, pactID)
		})
}

// PactDetail loads the pact, its activities and the member's own activities
// in parallel.
func (s *Service) PactDetail(ctx context.Context, id session.Identity, pactID string) (PactDetail, error) {
	var out PactDetail
	m, isMember := id.(session.Member)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		out.Pact, err = s.Pact(gctx, id, pactID)
		return err
	})
	g.Go(func() error {
		var err error
		out.Activities, err = s.Activities(gctx, id, pactID)
		return err
	})
	if isMember {
		g.Go(func() error {
			var err error
			out.Mine, err = s.UserActivities(gctx, m, pactID)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return PactDetail{}, fmt.Errorf("load pact %s: %w", pactID, err)
	}

	out.Enrollment = models.Enrollment(out.Pact, out.Mine)
	out.Joined = out.Pact.HasParticipant(id.UserID())
	return out, nil
}

// AddActivity creates one of the member's activities, refusing once the
// pact's per-member cap is reached.
func (s *Service) AddActivity(ctx context.Context, m session.Member, in models.CreateActivityInput) (models.Activity, error) {
	in.UserID = m.UserID()
	if err := in.Validate(); err != nil {
		return models.Activity{}, err
	}

	detail, err := s.PactDetail(ctx, m, in.PactID)
	if err != nil {
		return models.Activity{}, err
	}
	if !detail.Enrollment.CanAddActivity() {
		return models.Activity{}, ErrActivityLimit
	}

	act, err := s.api.CreateActivity(ctx, m, in)
	if err != nil {
		return models.Activity{}, fmt.Errorf("create activity: %w", err)
	}
	s.publish(cache.ActivityCreated{PactID: in.PactID, UserID: m.UserID()})
	return act, nil
}

// Join enrolls the member with all of their activities once they hold exactly
// the pact's maximum, then remembers the pact as current.
func (s *Service) Join(ctx context.Context, m session.Member, pactID string) error {
	detail, err := s.PactDetail(ctx, m, pactID)
	if err != nil {
		return err
	}
	if detail.Joined {
		return ErrAlreadyJoined
	}
	if !detail.Enrollment.ReadyToJoin() {
		return fmt.Errorf("%w (%d/%d)", ErrNotReadyToJoin, detail.Enrollment.Count, detail.Enrollment.Max)
	}

	err = s.api.JoinPact(ctx, m, models.JoinPactInput{
		UserID:      m.UserID(),
		PactID:      pactID,
		ActivityIDs: models.ActivityIDs(detail.Mine),
	})
	if err != nil {
		return fmt.Errorf("join pact: %w", err)
	}
	s.publish(cache.PactJoined{PactID: pactID, UserID: m.UserID()})

	if err := s.SetCurrentPact(pactID); err != nil {
		return fmt.Errorf("remember current pact: %w", err)
	}
	return nil
}
