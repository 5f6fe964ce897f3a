// Package session persists who the user is between runs. Identity is either a
// Guest (nothing stored) or a Member carrying the user record the backend
// returned at signup.
package session

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/storage"
)

// ErrNoIdentity is returned when an operation needs a signed-up user.
var ErrNoIdentity = errors.New("no user identity, run 'pact signup' first")

// Identity is the closed set of session states: Guest or Member.
type Identity interface {
	isIdentity()
	// UserID returns the opaque id sent as X-User-Id, or "" for guests.
	UserID() string
}

type Guest struct{}

func (Guest) isIdentity()    {}
func (Guest) UserID() string { return "" }

type Member struct {
	User models.User
}

func (Member) isIdentity()      {}
func (m Member) UserID() string { return m.User.ID }

// StateStore is the subset of storage.Provider the session needs.
type StateStore interface {
	GetState(key string) (string, error)
	SetState(key, value string) error
	DeleteState(keys ...string) error
}

// Load rehydrates the identity. A missing or unreadable user record yields Guest.
func Load(store StateStore) (Identity, error) {
	raw, err := store.GetState(constants.StateKeyUser)
	if errors.Is(err, storage.ErrNotFound) {
		return Guest{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load identity: %w", err)
	}

	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Warn("Stored user record is corrupt, continuing as guest", "error", err)
		return Guest{}, nil
	}

	if user.ID == "" {
		id, err := store.GetState(constants.StateKeyUserID)
		if err != nil || id == "" {
			return Guest{}, nil
		}
		user.ID = id
	}
	return Member{User: user}, nil
}

// Save persists the user record and its id.
func Save(store StateStore, user models.User) (Member, error) {
	if user.ID == "" {
		return Member{}, errors.New("cannot save a user without an id")
	}
	data, err := json.Marshal(user)
	if err != nil {
		return Member{}, fmt.Errorf("failed to encode user: %w", err)
	}
	if err := store.SetState(constants.StateKeyUser, string(data)); err != nil {
		return Member{}, err
	}
	if err := store.SetState(constants.StateKeyUserID, user.ID); err != nil {
		return Member{}, err
	}
	return Member{User: user}, nil
}

// Clear forgets the identity and the selected pact.
func Clear(store StateStore) error {
	return store.DeleteState(constants.StateKeyUser, constants.StateKeyUserID, constants.StateKeyCurrentPactID)
}

// CurrentPact returns the persisted current pact id, or "" when none is set.
func CurrentPact(store StateStore) (string, error) {
	id, err := store.GetState(constants.StateKeyCurrentPactID)
	if errors.Is(err, storage.ErrNotFound) {
		return "", nil
	}
	return id, err
}

func SetCurrentPact(store StateStore, pactID string) error {
	if pactID == "" {
		return store.DeleteState(constants.StateKeyCurrentPactID)
	}
	return store.SetState(constants.StateKeyCurrentPactID, pactID)
}

// RequireMember narrows id to a Member or fails with ErrNoIdentity.
func RequireMember(id Identity) (Member, error) {
	if m, ok := id.(Member); ok && m.User.ID != "" {
		return m, nil
	}
	return Member{}, ErrNoIdentity
}
