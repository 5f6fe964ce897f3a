package pacts

import (
	"fmt"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/session"
)

type PactsCmd struct {
	All bool `help:"Also list pacts you can join." short:"a"`
}

func (c *PactsCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	ov, err := ctx.Service.Overview(ctx.Background(), id)
	if err != nil {
		return err
	}
	_, guest := id.(session.Guest)
	ctx.Printf("%s", cli.FormatOverview(ov, c.All || guest))
	return nil
}

type PactShowCmd struct {
	ID string `arg:"" optional:"" help:"Pact id. Defaults to the current pact."`
}

func (c *PactShowCmd) Run(ctx *cli.Context) error {
	pactID, err := ctx.Service.ResolvePact(c.ID)
	if err != nil {
		return err
	}
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	detail, err := ctx.Service.PactDetail(ctx.Background(), id, pactID)
	if err != nil {
		return err
	}
	_, member := id.(session.Member)
	ctx.Printf("%s", cli.FormatPactDetail(detail, member))
	return nil
}

type PactCreateCmd struct {
	Title         string  `help:"Pact title."`
	Description   string  `help:"What the pact is about."`
	MinDays       int     `help:"Minimum active days per week (1-7)." default:"3"`
	MaxActivities int     `help:"Activities each member picks." default:"1"`
	SkipFine      float64 `help:"Fine for a missed week."`
	LeaveFine     float64 `help:"Fine for leaving the pact."`
	Start         string  `help:"Start date (YYYY-MM-DD)."`
	End           string  `help:"End date (YYYY-MM-DD)."`
}

func (c *PactCreateCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}

	fields := &forms.PactFields{
		Title:                c.Title,
		Description:          c.Description,
		MinDaysPerWeek:       fmt.Sprint(c.MinDays),
		MaxActivitiesPerUser: fmt.Sprint(c.MaxActivities),
		SkipFine:             fmt.Sprint(c.SkipFine),
		LeaveFine:            fmt.Sprint(c.LeaveFine),
		StartDate:            c.Start,
		EndDate:              c.End,
	}
	if ctx.Interactive && c.Title == "" {
		if err := forms.Pact(fields).Run(); err != nil {
			return fmt.Errorf("pact creation cancelled: %w", err)
		}
	}
	in, err := fields.Input()
	if err != nil {
		return err
	}

	p, err := ctx.Service.CreatePact(ctx.Background(), id, in)
	if err != nil {
		return err
	}
	ctx.Printf("✓ Created pact %q (%s)\n", p.Title, p.ID)
	ctx.Printf("  Add your activities with: pact activity add %s\n", p.ID)
	return nil
}

type PactJoinCmd struct {
	ID string `arg:"" help:"Pact id."`
}

func (c *PactJoinCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Member()
	if err != nil {
		return err
	}
	if err := ctx.Service.Join(ctx.Background(), m, c.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Joined pact %s. It is now your current pact.\n", c.ID)
	return nil
}

// PactUseCmd picks the pact that commands default to.
type PactUseCmd struct {
	ID    string `arg:"" optional:"" help:"Pact id."`
	Clear bool   `help:"Forget the current pact."`
}

func (c *PactUseCmd) Run(ctx *cli.Context) error {
	if c.Clear {
		if err := ctx.Service.SetCurrentPact(""); err != nil {
			return err
		}
		ctx.Println("✓ Current pact cleared")
		return nil
	}
	if c.ID == "" {
		cur, err := ctx.Service.CurrentPact()
		if err != nil {
			return err
		}
		if cur == "" {
			ctx.Println("No current pact")
		} else {
			ctx.Println(cur)
		}
		return nil
	}

	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	p, err := ctx.Service.Pact(ctx.Background(), id, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.Service.SetCurrentPact(p.ID); err != nil {
		return err
	}
	ctx.Printf("✓ Current pact is now %q (%s)\n", p.Title, p.ID)
	return nil
}
