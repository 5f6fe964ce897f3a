package logs

import (
	"errors"
	"fmt"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/forms"
	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/service"
	"github.com/julianstephens/pact/internal/utils"
)

type LogCreateCmd struct {
	Pact     string   `arg:"" optional:"" help:"Pact id. Defaults to the current pact."`
	Activity string   `help:"Activity id. Optional when you have a single activity."`
	Date     string   `help:"Day the activity was done (YYYY-MM-DD), checked locally. The server records the upload time."`
	Notes    string   `help:"Notes for the log."`
	File     []string `help:"Photo or video to attach. Repeatable."`
}

func (c *LogCreateCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Member()
	if err != nil {
		return err
	}
	pactID, err := ctx.Service.ResolvePact(c.Pact)
	if err != nil {
		return err
	}
	mine, err := ctx.Service.UserActivities(ctx.Background(), m, pactID)
	if err != nil {
		return err
	}
	if len(mine) == 0 {
		return fmt.Errorf("you have no activities in pact %s, add one with: pact activity add %s", pactID, pactID)
	}

	fields := &forms.LogFields{ActivityID: c.Activity, Date: c.Date, Notes: c.Notes}
	if fields.ActivityID == "" && len(mine) == 1 {
		fields.ActivityID = mine[0].ID
	}
	if ctx.Interactive && fields.ActivityID == "" {
		if fields.Date == "" {
			fields.Date = utils.TodayKey(ctx.Service.Location(), ctx.Service.Today())
		}
		if err := forms.Log(fields, mine).Run(); err != nil {
			return fmt.Errorf("log cancelled: %w", err)
		}
	}

	paths := append(fields.Paths(), c.File...)
	in := models.CreateLogInput{
		PactID:     pactID,
		ActivityID: fields.ActivityID,
		Date:       fields.Date,
		Notes:      fields.Notes,
	}
	for _, p := range paths {
		a, err := service.AttachmentFromPath(p)
		if err != nil {
			return err
		}
		in.Files = append(in.Files, a)
	}

	log, err := ctx.Service.CreateLog(ctx.Background(), m, in)
	if err != nil {
		var verrs models.ValidationErrors
		if errors.As(err, &verrs) {
			return err
		}
		return fmt.Errorf("upload failed, nothing was saved: %w", err)
	}
	ctx.Printf("✓ Logged activity (%s)", log.ID)
	if !log.OccurredAt.IsZero() {
		ctx.Printf(" at %s", log.OccurredAt.In(ctx.Service.Location()).Format(constants.DisplayDateTimeFormat))
	}
	if n := len(in.Files); n > 0 {
		ctx.Printf(" with %d attachment(s)", n)
	}
	ctx.Println()
	return nil
}

type LogShowCmd struct {
	ID string `arg:"" help:"Log id."`
}

func (c *LogShowCmd) Run(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	log, err := ctx.Service.Log(ctx.Background(), id, c.ID)
	if err != nil {
		return err
	}
	ctx.Printf("%s", cli.FormatLog(log))
	return nil
}

type WeekCmd struct {
	Pact string `arg:"" optional:"" help:"Pact id. Defaults to the current pact."`
}

func (c *WeekCmd) Run(ctx *cli.Context) error {
	m, err := ctx.Member()
	if err != nil {
		return err
	}
	pactID, err := ctx.Service.ResolvePact(c.Pact)
	if err != nil {
		return err
	}
	w, err := ctx.Service.WeekView(ctx.Background(), m, pactID)
	if err != nil {
		return err
	}
	ctx.Printf("%s", cli.FormatWeek(w))
	return nil
}
