package cache

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/pact/internal/storage/sqlite"
)

func newTestCache(t *testing.T, now *time.Time) *Cache {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "cache.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("store init: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return New(store, WithClock(func() time.Time { return *now }))
}

type payload struct {
	Title string `json:"title"`
}

func TestFetchServesFreshEntries(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 13, 9, 0, 0, 0, time.UTC)
	c := newTestCache(t, &now)

	calls := 0
	fetch := func(context.Context) (payload, error) {
		calls++
		return payload{Title: "Morning runs"}, nil
	}

	for i := 0; i < 3; i++ {
		got, err := Fetch(ctx, c, "pact:p1", []string{PactTag("p1")}, time.Minute, fetch)
		if err != nil {
			t.Fatal(err)
		}
		if got.Title != "Morning runs" {
			t.Errorf("Fetch() = %+v", got)
		}
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	now = now.Add(2 * time.Minute)
	if _, err := Fetch(ctx, c, "pact:p1", []string{PactTag("p1")}, time.Minute, fetch); err != nil {
		t.Fatal(err)
	}
	if calls != 2 {
		t.Errorf("expired entry served from cache; calls = %d", calls)
	}
}

func TestFetchDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := newTestCache(t, &now)

	boom := errors.New("backend down")
	calls := 0
	fetch := func(context.Context) (payload, error) {
		calls++
		return payload{}, boom
	}
	for i := 0; i < 2; i++ {
		if _, err := Fetch(ctx, c, "k", nil, time.Minute, fetch); !errors.Is(err, boom) {
			t.Errorf("Fetch() error = %v, want %v", err, boom)
		}
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestPublishLogCreatedDropsUserProgressOnly(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	c := newTestCache(t, &now)

	calls := map[string]int{}
	fetchFor := func(key string) func(context.Context) (payload, error) {
		return func(context.Context) (payload, error) {
			calls[key]++
			return payload{Title: key}, nil
		}
	}
	prime := func() {
		_, _ = Fetch(ctx, c, "progress:u1", []string{ProgressTag("u1"), TagUser}, time.Hour, fetchFor("progress:u1"))
		_, _ = Fetch(ctx, c, "progress:u2", []string{ProgressTag("u2"), TagUser}, time.Hour, fetchFor("progress:u2"))
		_, _ = Fetch(ctx, c, "active", []string{TagActivePacts}, time.Hour, fetchFor("active"))
	}

	prime()
	if err := c.Publish(LogCreated{PactID: "p1", UserID: "u1"}); err != nil {
		t.Fatal(err)
	}
	prime()

	if calls["progress:u1"] != 2 {
		t.Errorf("progress for u1 fetched %d times, want 2", calls["progress:u1"])
	}
	if calls["progress:u2"] != 1 || calls["active"] != 1 {
		t.Errorf("unrelated entries refetched: %v", calls)
	}

	if err := c.Publish(UserChanged{}); err != nil {
		t.Fatal(err)
	}
	prime()
	if calls["progress:u2"] != 2 || calls["active"] != 1 {
		t.Errorf("UserChanged should drop user-scoped entries only: %v", calls)
	}
}

func TestEventTags(t *testing.T) {
	tests := []struct {
		name  string
		event Event
		want  []string
	}{
		{name: "pact created", event: PactCreated{}, want: []string{"pacts"}},
		{name: "activity created", event: ActivityCreated{PactID: "p1", UserID: "u1"}, want: []string{"activities:p1", "activities:p1:u1"}},
		{name: "log created", event: LogCreated{PactID: "p1", UserID: "u1"}, want: []string{"progress:u1", "logs:p1:u1"}},
		{name: "pact joined", event: PactJoined{PactID: "p1", UserID: "u1"}, want: []string{"pacts", "pact:p1", "activities:p1:u1", "progress:u1"}},
		{name: "user changed", event: UserChanged{}, want: []string{"user"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.event.Tags()
			if len(got) != len(tt.want) {
				t.Fatalf("Tags() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tags()[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestNilCacheFallsThrough(t *testing.T) {
	var c *Cache
	got, err := Fetch(context.Background(), c, "k", nil, time.Minute, func(context.Context) (int, error) { return 7, nil })
	if err != nil || got != 7 {
		t.Errorf("Fetch() on nil cache = %d, %v", got, err)
	}
	if err := c.Publish(PactCreated{}); err != nil {
		t.Errorf("Publish() on nil cache error = %v", err)
	}
}
