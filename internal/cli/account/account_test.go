package account

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/pact/internal/cli/clitest"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

func TestSignupCmd(t *testing.T) {
	env := clitest.New(t)

	cmd := &SignupCmd{Name: "Asha", Email: "asha@example.com", Phone: "9876543210"}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("signup failed: %v", err)
	}
	if !strings.Contains(env.Out.String(), "Welcome, Asha") {
		t.Errorf("output = %q", env.Out.String())
	}

	id, err := env.Ctx.Identity()
	if err != nil {
		t.Fatal(err)
	}
	m, ok := id.(session.Member)
	if !ok || m.User.Email != "asha@example.com" {
		t.Errorf("identity after signup = %#v", id)
	}

	if err := cmd.Run(env.Ctx); err == nil {
		t.Error("second signup should fail while signed in")
	}
}

func TestSignupCmd_Validation(t *testing.T) {
	env := clitest.New(t)

	err := (&SignupCmd{Name: "A", Email: "nope", Phone: "123"}).Run(env.Ctx)
	var verrs models.ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("error = %v, want validation errors", err)
	}
	if verrs.Field("name") != "Name must be at least 2 characters" {
		t.Errorf("name message = %q", verrs.Field("name"))
	}
	if len(env.Backend.Users) != 0 {
		t.Error("invalid signup must not reach the backend")
	}
}

func TestSignupCmd_ServerError(t *testing.T) {
	env := clitest.New(t)
	env.SignIn(t, "asha")
	if err := (&LogoutCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}

	err := (&SignupCmd{Name: "Other", Email: "asha@example.com", Phone: "9876543210"}).Run(env.Ctx)
	if err == nil || !strings.Contains(err.Error(), "Email already registered") {
		t.Errorf("error = %v, want server message", err)
	}
}

func TestWhoamiAndLogout(t *testing.T) {
	env := clitest.New(t)

	if err := (&WhoamiCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "Not signed in") {
		t.Errorf("guest whoami output = %q", env.Out.String())
	}
	if err := (&LogoutCmd{}).Run(env.Ctx); err == nil {
		t.Error("logout as guest should fail")
	}

	id := env.SignIn(t, "asha")
	env.Out.Reset()
	if err := (&WhoamiCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), id) {
		t.Errorf("whoami output = %q, want id %s", env.Out.String(), id)
	}

	if err := (&LogoutCmd{}).Run(env.Ctx); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, err := env.Ctx.Member(); !errors.Is(err, session.ErrNoIdentity) {
		t.Errorf("Member() after logout error = %v", err)
	}
}
