package service

import (
	"context"
	"fmt"

	"github.com/julianstephens/pact/internal/cache"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// Identity loads who is signed in on this machine.
func (s *Service) Identity() (session.Identity, error) {
	return session.Load(s.state)
}

// Signup creates the account and makes it the local identity.
func (s *Service) Signup(ctx context.Context, in models.CreateUserInput) (session.Member, error) {
	if err := in.Validate(); err != nil {
		return session.Member{}, err
	}
	user, err := s.api.CreateUser(ctx, in)
	if err != nil {
		return session.Member{}, fmt.Errorf("create account: %w", err)
	}
	m, err := session.Save(s.state, user)
	if err != nil {
		return session.Member{}, fmt.Errorf("save identity: %w", err)
	}
	s.publish(cache.UserChanged{})
	logger.Info("Signed up", "user", user.ID)
	return m, nil
}

// Logout forgets the local identity and every response cached for it.
func (s *Service) Logout() error {
	if err := session.Clear(s.state); err != nil {
		return err
	}
	s.publish(cache.UserChanged{})
	return nil
}

// CurrentPact returns the remembered pact id, or "".
func (s *Service) CurrentPact() (string, error) {
	return session.CurrentPact(s.state)
}

func (s *Service) SetCurrentPact(pactID string) error {
	return session.SetCurrentPact(s.state, pactID)
}

// ResolvePact returns arg when given, otherwise the remembered pact.
func (s *Service) ResolvePact(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	id, err := s.CurrentPact()
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", ErrNoPactSelected
	}
	return id, nil
}
