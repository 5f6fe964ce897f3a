// Package clitest wires a cli.Context to an in-memory pacts backend for
// command tests.
package clitest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/julianstephens/pact/internal/api"
	"github.com/julianstephens/pact/internal/cache"
	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/storage/sqlite"
)

// Now is the fixed clock every test context runs at: Thursday 13 June 2024.
var Now = time.Date(2024, time.June, 13, 9, 0, 0, 0, time.UTC)

// Backend is a minimal in-memory rendition of the pacts REST API.
type Backend struct {
	mu sync.Mutex

	Users      map[string]models.User
	Pacts      map[string]models.Pact
	Order      []string
	Activities []models.Activity
	Logs       []models.ActivityLog
	Uploads    []Upload

	seq int
}

// Upload records one multipart log submission.
type Upload struct {
	Fields map[string]string
	Files  []string
}

func NewBackend() *Backend {
	return &Backend{
		Users: map[string]models.User{},
		Pacts: map[string]models.Pact{},
	}
}

func (b *Backend) nextID(prefix string) string {
	b.seq++
	return fmt.Sprintf("%s%d", prefix, b.seq)
}

// AddPact seeds a pact and returns it.
func (b *Backend) AddPact(p models.Pact) models.Pact {
	b.mu.Lock()
	defer b.mu.Unlock()
	if p.ID == "" {
		p.ID = b.nextID("p")
	}
	if p.Status == "" {
		p.Status = models.PactStatusActive
	}
	b.Pacts[p.ID] = p
	b.Order = append(b.Order, p.ID)
	return p
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func notFound(w http.ResponseWriter, what string) {
	writeJSON(w, http.StatusNotFound, map[string]any{"message": what + " not found"})
}

func (b *Backend) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.HandleFunc("POST /user", func(w http.ResponseWriter, r *http.Request) {
		var in models.CreateUserInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, u := range b.Users {
			if u.Email == in.Email {
				writeJSON(w, http.StatusConflict, map[string]any{"message": "Email already registered"})
				return
			}
		}
		u := models.User{ID: b.nextID("u"), Name: in.Name, Email: in.Email, Phone: in.Phone}
		b.Users[u.ID] = u
		writeJSON(w, http.StatusCreated, u)
	})

	mux.HandleFunc("POST /user/join-pact", func(w http.ResponseWriter, r *http.Request) {
		var in models.JoinPactInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.Pacts[in.PactID]
		if !ok {
			notFound(w, "Pact")
			return
		}
		u := b.Users[in.UserID]
		p.Participants = append(p.Participants, models.Participant{ID: in.UserID, Name: u.Name, Email: u.Email})
		b.Pacts[p.ID] = p
		writeJSON(w, http.StatusOK, map[string]string{"message": "joined"})
	})

	mux.HandleFunc("GET /pact/active", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []models.Pact{}
		for _, id := range b.Order {
			if p := b.Pacts[id]; p.Status == models.PactStatusActive {
				out = append(out, p)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /pact/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		p, ok := b.Pacts[r.PathValue("id")]
		if !ok {
			notFound(w, "Pact")
			return
		}
		writeJSON(w, http.StatusOK, p)
	})

	mux.HandleFunc("POST /pact", func(w http.ResponseWriter, r *http.Request) {
		var in models.CreatePactInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		b.mu.Lock()
		p := models.Pact{
			ID:                   b.nextID("p"),
			Title:                in.Title,
			Description:          in.Description,
			Status:               models.PactStatusActive,
			StartDate:            in.StartDate,
			EndDate:              in.EndDate,
			MinDaysPerWeek:       in.MinDaysPerWeek,
			MaxActivitiesPerUser: in.MaxActivitiesPerUser,
			SkipFine:             in.SkipFine,
			LeaveFine:            in.LeaveFine,
		}
		b.Pacts[p.ID] = p
		b.Order = append(b.Order, p.ID)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, p)
	})

	mux.HandleFunc("GET /activity", func(w http.ResponseWriter, r *http.Request) {
		pactID, userID := r.URL.Query().Get("pactId"), r.URL.Query().Get("userId")
		b.mu.Lock()
		defer b.mu.Unlock()
		out := []models.Activity{}
		for _, a := range b.Activities {
			if a.PactID == pactID && (userID == "" || a.UserID == userID) {
				out = append(out, a)
			}
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("POST /activity", func(w http.ResponseWriter, r *http.Request) {
		var in models.CreateActivityInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		b.mu.Lock()
		a := models.Activity{
			ID:           b.nextID("a"),
			PactID:       in.PactID,
			UserID:       in.UserID,
			Name:         in.Name,
			Description:  in.Description,
			NumberOfDays: in.NumberOfDays,
		}
		b.Activities = append(b.Activities, a)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, a)
	})

	mux.HandleFunc("POST /activity-logs", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"message": err.Error()})
			return
		}
		up := Upload{Fields: map[string]string{}}
		for k, v := range r.MultipartForm.Value {
			up.Fields[k] = v[0]
		}
		for _, fh := range r.MultipartForm.File["files"] {
			up.Files = append(up.Files, fh.Filename)
		}
		b.mu.Lock()
		l := models.ActivityLog{
			ID:         b.nextID("l"),
			PactID:     up.Fields["pactId"],
			ActivityID: up.Fields["activityId"],
			UserID:     up.Fields["userId"],
			Date:       Now.Format(constants.DateFormat),
			OccurredAt: Now,
			Notes:      up.Fields["notes"],
		}
		for _, name := range up.Files {
			l.Images = append(l.Images, models.MediaFile{Name: name, MimeType: "image/jpeg", SizeBytes: 2048})
		}
		b.Logs = append(b.Logs, l)
		b.Uploads = append(b.Uploads, up)
		b.mu.Unlock()
		writeJSON(w, http.StatusCreated, l)
	})

	mux.HandleFunc("GET /activity-logs/progress/by-user", func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("userId")
		b.mu.Lock()
		defer b.mu.Unlock()
		resp := models.ProgressResponse{Results: []models.PactProgress{}}
		for _, id := range b.Order {
			p := b.Pacts[id]
			if !p.HasParticipant(userID) {
				continue
			}
			days := map[string]bool{}
			for _, l := range b.Logs {
				if l.PactID == id && l.UserID == userID {
					days[l.Date] = true
				}
			}
			resp.Results = append(resp.Results, models.PactProgress{PactID: id, TargetDays: p.MinDaysPerWeek, ActivityDays: len(days)})
		}
		writeJSON(w, http.StatusOK, resp)
	})

	mux.HandleFunc("GET /activity-logs/user-logs", func(w http.ResponseWriter, r *http.Request) {
		pactID, userID := r.URL.Query().Get("pactId"), r.URL.Query().Get("userId")
		b.mu.Lock()
		defer b.mu.Unlock()
		out := models.UserLogs{PactID: pactID, UserID: userID, Days: []models.DayLogs{}}
		index := map[string]int{}
		for _, l := range b.Logs {
			if l.PactID != pactID || l.UserID != userID {
				continue
			}
			i, ok := index[l.Date]
			if !ok {
				i = len(out.Days)
				index[l.Date] = i
				out.Days = append(out.Days, models.DayLogs{Date: l.Date})
			}
			out.Days[i].Logs = append(out.Days[i].Logs, models.LogSummary{ID: l.ID, ActivityID: l.ActivityID, Notes: l.Notes, Verified: l.Verified})
		}
		writeJSON(w, http.StatusOK, out)
	})

	mux.HandleFunc("GET /activity-logs/{id}", func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		for _, l := range b.Logs {
			if l.ID == r.PathValue("id") {
				writeJSON(w, http.StatusOK, l)
				return
			}
		}
		notFound(w, "Log")
	})

	return mux
}

// Env is a ready-to-run command context with its backend and captured output.
type Env struct {
	Ctx     *cli.Context
	Backend *Backend
	Store   *sqlite.Store
	Server  *httptest.Server
	Out     *bytes.Buffer
}

// New starts the backend and builds a context over a fresh sqlite store.
func New(t *testing.T) *Env {
	t.Helper()
	backend := NewBackend()
	server := httptest.NewServer(backend.Handler())
	t.Cleanup(server.Close)

	store := sqlite.NewStore(filepath.Join(t.TempDir(), "pact.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	client, err := api.New(server.URL, api.WithTimeout(constants.DefaultTimeout))
	if err != nil {
		t.Fatal(err)
	}
	clock := func() time.Time { return Now }
	svc := service.New(client, cache.New(store, cache.WithClock(clock)), store,
		service.WithLocation(time.UTC), service.WithClock(clock))

	out := &bytes.Buffer{}
	return &Env{
		Ctx: &cli.Context{
			Store:   store,
			Service: svc,
			APIURL:  server.URL,
			Stdout:  out,
		},
		Backend: backend,
		Store:   store,
		Server:  server,
		Out:     out,
	}
}

// SignIn creates an account through the service and returns its id.
func (e *Env) SignIn(t *testing.T, name string) string {
	t.Helper()
	m, err := e.Ctx.Service.Signup(e.Ctx.Background(), models.CreateUserInput{
		Name:  name,
		Email: fmt.Sprintf("%s@example.com", name),
		Phone: "9876543210",
	})
	if err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	return m.UserID()
}
