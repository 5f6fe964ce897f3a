package errors

import (
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/pact/internal/api"
	"github.com/julianstephens/pact/internal/logger"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", UserMessage(err, err.Error()))
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// UserMessage picks the text to show for err: the server's own explanation,
// the per-field validation messages, a connectivity hint, or fallback.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var verrs models.ValidationErrors
	if stderrors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fe.Message)
		}
		return strings.Join(msgs, "; ")
	}

	if stderrors.Is(err, session.ErrNoIdentity) {
		return "You are not signed up yet. Run 'pact signup' first."
	}

	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}

	if api.IsTransport(err) {
		return "Could not reach the pacts server. Check your connection and --api-url."
	}

	return fallback
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
