package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/session"
	"github.com/julianstephens/pact/internal/storage"
)

type Context struct {
	Store   storage.Provider
	Service *service.Service
	APIURL  string

	// Ctx is cancelled on interrupt. Nil means context.Background.
	Ctx context.Context
	// Stdout receives command output. Nil means os.Stdout.
	Stdout io.Writer
	// Interactive allows commands to prompt with forms for missing flags.
	Interactive bool
}

// IsTerminal reports whether stdin and stdout are both attached to a terminal.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) && isatty.IsTerminal(os.Stdout.Fd())
}

func (c *Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

func (c *Context) Out() io.Writer {
	if c.Stdout == nil {
		return os.Stdout
	}
	return c.Stdout
}

func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Out(), format, args...)
}

func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Out(), args...)
}

// Identity loads the signed-in identity, Guest when there is none.
func (c *Context) Identity() (session.Identity, error) {
	return c.Service.Identity()
}

// Member loads the identity and fails with session.ErrNoIdentity for guests.
func (c *Context) Member() (session.Member, error) {
	id, err := c.Identity()
	if err != nil {
		return session.Member{}, err
	}
	return session.RequireMember(id)
}
