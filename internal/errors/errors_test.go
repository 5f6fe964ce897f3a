package errors

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/julianstephens/pact/internal/api"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "nil error", err: nil, expected: ""},
		{name: "simple error", err: errors.New("something went wrong"), expected: "Error: something went wrong"},
		{
			name:     "server message wins",
			err:      fmt.Errorf("create pact: %w", &api.Error{Kind: api.KindStatus, Status: 400, Message: "Title taken"}),
			expected: "Error: Title taken",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if result := Format(tt.err); result != tt.expected {
				t.Errorf("Format(%v) = %q, want %q", tt.err, result, tt.expected)
			}
		})
	}
}

func TestFormatf(t *testing.T) {
	if got := Formatf("failed to load %s", "pact p1"); got != "Error: failed to load pact p1" {
		t.Errorf("Formatf() = %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		fallback string
		want     string
	}{
		{name: "nil", err: nil, fallback: "x", want: ""},
		{
			name:     "status with server text",
			err:      &api.Error{Kind: api.KindStatus, Status: 409, Message: "Email already exists"},
			fallback: "Failed to create account",
			want:     "Email already exists",
		},
		{
			name:     "status without server text",
			err:      &api.Error{Kind: api.KindStatus, Status: 500},
			fallback: "Failed to create account",
			want:     "Failed to create account",
		},
		{
			name:     "transport",
			err:      &api.Error{Kind: api.KindTransport, Err: errors.New("connection refused")},
			fallback: "Failed to load logs",
			want:     "Could not reach the pacts server. Check your connection and --api-url.",
		},
		{
			name:     "decode falls back",
			err:      &api.Error{Kind: api.KindDecode, Err: errors.New("bad json")},
			fallback: "Failed to load logs",
			want:     "Failed to load logs",
		},
		{
			name:     "validation",
			err:      models.CreateUserInput{Name: "A", Email: "a@example.com", Phone: "9876543210"}.Validate(),
			fallback: "invalid",
			want:     "Name must be at least 2 characters",
		},
		{
			name:     "no identity",
			err:      fmt.Errorf("week: %w", session.ErrNoIdentity),
			fallback: "x",
			want:     "You are not signed up yet. Run 'pact signup' first.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := UserMessage(tt.err, tt.fallback); got != tt.want {
				t.Errorf("UserMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

// TestFatal tests the Fatal function using exec helper process
func TestFatal(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL") == "1" {
		Fatal(errors.New("test error"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal$")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if e, ok := err.(*exec.ExitError); ok && !e.Success() {
		if e.ExitCode() != 1 {
			t.Errorf("Fatal() exit code = %d, want 1", e.ExitCode())
		}
		if !strings.Contains(stderr.String(), "Error: test error") {
			t.Errorf("Fatal() stderr = %q, want to contain %q", stderr.String(), "Error: test error")
		}
	} else {
		t.Errorf("Fatal() did not exit with error: %v", err)
	}
}

func TestFatal_NilError(t *testing.T) {
	if os.Getenv("GO_TEST_FATAL_NIL") == "1" {
		Fatal(nil)
		os.Exit(0)
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_NilError")
	cmd.Env = append(os.Environ(), "GO_TEST_FATAL_NIL=1")
	if err := cmd.Run(); err != nil {
		t.Errorf("Fatal(nil) should not exit, but got error: %v", err)
	}
}
