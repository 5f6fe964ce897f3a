package account

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

type SignupCmd struct {
	Name  string `help:"Your display name."`
	Email string `help:"Email address."`
	Phone string `help:"Phone number."`
}

func (c *SignupCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	if m, ok := id.(session.Member); ok {
		return fmt.Errorf("already signed in as %s, run 'pact logout' first", m.User.Name)
	}

	in := models.CreateUserInput{
		Name:  strings.TrimSpace(c.Name),
		Email: strings.TrimSpace(c.Email),
		Phone: strings.TrimSpace(c.Phone),
	}
	if ctx.Interactive && (in.Name == "" || in.Email == "" || in.Phone == "") {
		if err := forms.Signup(&in).Run(); err != nil {
			return fmt.Errorf("signup cancelled: %w", err)
		}
	}

	m, err := ctx.Service.Signup(ctx.Background(), in)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Welcome, %s! Your account id is %s\n", m.User.Name, m.UserID())
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	switch id := id.(type) {
	case session.Member:
		ctx.Printf("%s <%s>\n", id.User.Name, id.User.Email)
		ctx.Printf("  id:    %s\n", id.UserID())
		ctx.Printf("  phone: %s\n", id.User.Phone)
		if cur, err := ctx.Service.CurrentPact(); err == nil && cur != "" {
			ctx.Printf("  current pact: %s\n", cur)
		}
	case session.Guest:
		ctx.Println("Not signed in. Run 'pact signup' to create an account.")
	}
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	if _, ok := id.(session.Guest); ok {
		return errors.New("not signed in")
	}
	if err := ctx.Service.Logout(); err != nil {
		return fmt.Errorf("failed to sign out: %w", err)
	}
	ctx.Println("✓ Signed out")
	return nil
}
