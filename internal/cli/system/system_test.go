package system

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/pact/internal/cli/clitest"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/storage/sqlite"
)

func TestInitCmd_Idempotent(t *testing.T) {
	env := clitest.New(t)
	cmd := &InitCmd{}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceResets(t *testing.T) {
	env := clitest.New(t)
	env.SignIn(t, "asha")

	if err := (&InitCmd{Force: true}).Run(env.Ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Deleted existing database") {
		t.Errorf("output = %q", env.Out.String())
	}
	if _, err := env.Store.GetState(constants.StateKeyUserID); err == nil {
		t.Error("identity survived a forced reset")
	}
}

func TestInitCmd_CopiesIdentityFromSource(t *testing.T) {
	sourcePath := filepath.Join(t.TempDir(), "old.db")
	source := sqlite.NewStore(sourcePath)
	if err := source.Init(); err != nil {
		t.Fatal(err)
	}
	if err := source.SetState(constants.StateKeyUser, `{"_id":"u9","name":"Asha"}`); err != nil {
		t.Fatal(err)
	}
	if err := source.SetState(constants.StateKeyUserID, "u9"); err != nil {
		t.Fatal(err)
	}
	source.Close()

	env := clitest.New(t)
	if err := (&InitCmd{Source: sourcePath}).Run(env.Ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	m, err := env.Ctx.Member()
	if err != nil || m.UserID() != "u9" {
		t.Errorf("Member() = %v, %v; want u9", m, err)
	}
	if !strings.Contains(env.Out.String(), "Copied 2 state value(s)") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	env := clitest.New(t)
	err := (&InitCmd{Force: true, Source: env.Store.GetConfigPath()}).Run(env.Ctx)
	if err == nil {
		t.Error("expected error when source equals destination")
	}
	if _, statErr := os.Stat(env.Store.GetConfigPath()); statErr != nil {
		t.Errorf("database removed despite refusal: %v", statErr)
	}
}

func TestDoctorCmd(t *testing.T) {
	env := clitest.New(t)
	env.SignIn(t, "asha")

	if err := (&DoctorCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, env.Out.String())
	}
	out := env.Out.String()
	for _, want := range []string{"✓ Database reachable: OK", "✓ Migrations complete: OK", "✓ Identity: OK", "✓ Pacts server reachable: OK", "All diagnostics passed!"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctorCmd_Failures(t *testing.T) {
	env := clitest.New(t)
	env.Server.Close()

	err := (&DoctorCmd{}).Run(env.Ctx)
	if err == nil {
		t.Fatal("doctor should fail when the server is down")
	}
	out := env.Out.String()
	if !strings.Contains(out, "⚠ Identity: WARNING") {
		t.Errorf("guest should only warn:\n%s", out)
	}
	if !strings.Contains(out, "❌ Pacts server reachable: FAIL") {
		t.Errorf("server failure not reported:\n%s", out)
	}
}

func TestDoctorCmd_NoDatabase(t *testing.T) {
	env := clitest.New(t)
	env.Ctx.Store = sqlite.NewStore(filepath.Join(t.TempDir(), "missing.db"))

	if err := (&DoctorCmd{}).Run(env.Ctx); err == nil {
		t.Fatal("doctor should fail without a database")
	}
	if !strings.Contains(env.Out.String(), "⊘ Schema version: SKIPPED") {
		t.Errorf("dependent checks not skipped:\n%s", env.Out.String())
	}
}

func TestMigrateCmd(t *testing.T) {
	env := clitest.New(t)
	if err := (&MigrateCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "No migrations to apply") {
		t.Errorf("output = %q", env.Out.String())
	}
}

func TestCacheClearCmd(t *testing.T) {
	env := clitest.New(t)
	env.Backend.AddPact(models.Pact{Title: "Readers"})
	id, _ := env.Ctx.Identity()
	if _, err := env.Ctx.Service.ActivePacts(env.Ctx.Background(), id); err != nil {
		t.Fatal(err)
	}

	if err := (&CacheClearCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "Removed 1 cached response(s)") {
		t.Errorf("output = %q", env.Out.String())
	}
}
