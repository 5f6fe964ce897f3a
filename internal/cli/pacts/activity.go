package pacts

import (
	"errors"
	"fmt"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
)

type ActivityListCmd struct {
	Pact string `arg:"" optional:"" help:"Pact id. Defaults to the current pact."`
	Mine bool   `help:"Only your own activities."`
}

func (c *ActivityListCmd) Run(ctx *cli.Context) error {
	pactID, err := ctx.Service.ResolvePact(c.Pact)
	if err != nil {
		return err
	}

	var activities []models.Activity
	if c.Mine {
		m, err := ctx.Member()
		if err != nil {
			return err
		}
		activities, err = ctx.Service.UserActivities(ctx.Background(), m, pactID)
		if err != nil {
			return err
		}
	} else {
		id, err := ctx.Identity()
		if err != nil {
			return err
		}
		activities, err = ctx.Service.Activities(ctx.Background(), id, pactID)
		if err != nil {
			return err
		}
	}

	if len(activities) == 0 {
		ctx.Println("No activities yet.")
		return nil
	}
	for _, a := range activities {
		ctx.Printf("%s  %s  (%d days/week)\n", a.ID, a.Name, a.NumberOfDays)
		if a.Description != "" {
			ctx.Printf("    %s\n", a.Description)
		}
	}
	return nil
}

type ActivityAddCmd struct {
	Pact        string `arg:"" optional:"" help:"Pact id. Defaults to the current pact."`
	Name        string `help:"Activity name."`
	Description string `help:"Optional description."`
	Days        int    `help:"Days per week (1-7)." default:"1"`
}

func (c *ActivityAddCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Member()
	if err != nil {
		return err
	}
	pactID, err := ctx.Service.ResolvePact(c.Pact)
	if err != nil {
		return err
	}

	fields := &forms.ActivityFields{Name: c.Name, Description: c.Description, NumberOfDays: fmt.Sprint(c.Days)}
	if ctx.Interactive && c.Name == "" {
		if err := forms.Activity(fields).Run(); err != nil {
			return fmt.Errorf("activity creation cancelled: %w", err)
		}
	}
	in, err := fields.Input(pactID)
	if err != nil {
		return err
	}

	a, err := ctx.Service.AddActivity(ctx.Background(), m, in)
	if errors.Is(err, service.ErrActivityLimit) {
		return fmt.Errorf("%w; join with: pact pact join %s", err, pactID)
	}
	if err != nil {
		return err
	}
	ctx.Printf("✓ Added activity %q (%s)\n", a.Name, a.ID)

	detail, err := ctx.Service.PactDetail(ctx.Background(), m, pactID)
	if err == nil && !detail.Joined && detail.Enrollment.ReadyToJoin() {
		ctx.Printf("  You picked all %d activities. Join with: pact pact join %s\n", detail.Enrollment.Max, pactID)
	}
	return nil
}
