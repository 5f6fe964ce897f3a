package session

import (
	"errors"
	"testing"

	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/storage"
)

type memStore struct {
	values map[string]string
	getErr error
}

func newMemStore() *memStore { return &memStore{values: map[string]string{}} }

func (m *memStore) GetState(key string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	v, ok := m.values[key]
	if !ok {
		return "", storage.ErrNotFound
	}
	return v, nil
}

func (m *memStore) SetState(key, value string) error {
	m.values[key] = value
	return nil
}

func (m *memStore) DeleteState(keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func TestLoadEmptyIsGuest(t *testing.T) {
	id, err := Load(newMemStore())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := id.(Guest); !ok {
		t.Errorf("Load() = %T, want Guest", id)
	}
	if id.UserID() != "" {
		t.Errorf("Guest.UserID() = %q", id.UserID())
	}
}

func TestSaveLoadClear(t *testing.T) {
	store := newMemStore()
	user := models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}

	if _, err := Save(store, user); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if store.values[constants.StateKeyUserID] != "u1" {
		t.Errorf("userId = %q, want u1", store.values[constants.StateKeyUserID])
	}

	id, err := Load(store)
	if err != nil {
		t.Fatal(err)
	}
	m, ok := id.(Member)
	if !ok {
		t.Fatalf("Load() = %T, want Member", id)
	}
	if m.User.Email != user.Email || m.UserID() != "u1" {
		t.Errorf("Member = %+v", m.User)
	}

	_ = SetCurrentPact(store, "p1")
	if err := Clear(store); err != nil {
		t.Fatal(err)
	}
	id, _ = Load(store)
	if _, ok := id.(Guest); !ok {
		t.Errorf("Load() after Clear = %T, want Guest", id)
	}
	if pact, _ := CurrentPact(store); pact != "" {
		t.Errorf("CurrentPact() after Clear = %q, want empty", pact)
	}
}

func TestLoadCorruptRecordIsGuest(t *testing.T) {
	store := newMemStore()
	store.values[constants.StateKeyUser] = "{not json"
	store.values[constants.StateKeyUserID] = "u1"

	id, err := Load(store)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if _, ok := id.(Guest); !ok {
		t.Errorf("Load() = %T, want Guest", id)
	}
}

func TestLoadFallsBackToUserIDKey(t *testing.T) {
	store := newMemStore()
	store.values[constants.StateKeyUser] = `{"name":"Asha"}`
	store.values[constants.StateKeyUserID] = "u9"

	id, _ := Load(store)
	if id.UserID() != "u9" {
		t.Errorf("UserID() = %q, want u9", id.UserID())
	}
}

func TestLoadPropagatesStoreErrors(t *testing.T) {
	store := newMemStore()
	store.getErr = errors.New("disk on fire")
	if _, err := Load(store); err == nil {
		t.Error("expected store error")
	}
}

func TestSaveRejectsMissingID(t *testing.T) {
	if _, err := Save(newMemStore(), models.User{Name: "Asha"}); err == nil {
		t.Error("expected error for user without id")
	}
}

func TestCurrentPact(t *testing.T) {
	store := newMemStore()
	if id, err := CurrentPact(store); err != nil || id != "" {
		t.Errorf("CurrentPact() = %q, %v", id, err)
	}
	_ = SetCurrentPact(store, "p7")
	if id, _ := CurrentPact(store); id != "p7" {
		t.Errorf("CurrentPact() = %q, want p7", id)
	}
	_ = SetCurrentPact(store, "")
	if id, _ := CurrentPact(store); id != "" {
		t.Errorf("CurrentPact() after reset = %q", id)
	}
}

func TestRequireMember(t *testing.T) {
	tests := []struct {
		name    string
		id      Identity
		wantErr bool
	}{
		{name: "guest", id: Guest{}, wantErr: true},
		{name: "nil", id: nil, wantErr: true},
		{name: "member without id", id: Member{}, wantErr: true},
		{name: "member", id: Member{User: models.User{ID: "u1"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := RequireMember(tt.id)
			if tt.wantErr != errors.Is(err, ErrNoIdentity) {
				t.Errorf("RequireMember() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
