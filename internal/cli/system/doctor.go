package system

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/session"
)

type DoctorCmd struct{}

type check struct {
	name     string
	run      func(*cli.Context) error
	opensDB  bool
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, opensDB: true},
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Identity", run: checkIdentity, needsDB: true, warnOnly: true},
	{name: "Pacts server reachable", run: checkAPIReachable},
	{name: "Clock/timezone", run: checkClockTimezone},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := false
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
			if c.opensDB {
				dbReachable = true
			}
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	current, latest, err := ctx.Store.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'pact migrate')", current, latest)
	}
	return nil
}

func checkIdentity(ctx *cli.Context) error {
	id, err := ctx.Identity()
	if err != nil {
		return err
	}
	if _, ok := id.(session.Guest); ok {
		return fmt.Errorf("not signed in - run 'pact signup'")
	}
	return nil
}

func checkAPIReachable(ctx *cli.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx.Background(), 5*time.Second)
	defer cancel()
	if err := ctx.Service.Ping(pingCtx); err != nil {
		return fmt.Errorf("%s: %w", ctx.APIURL, err)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := ctx.Service.Today()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	ctx.Printf("   Today is %s in %s\n", now.Format("Mon Jan 2, 2006"), now.Location())
	return nil
}
