package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/pact/internal/cli"
	"github.com/julianstephens/pact/internal/constants"
	"github.com/julianstephens/pact/internal/storage"
	"github.com/julianstephens/pact/internal/storage/postgres"
	"github.com/julianstephens/pact/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting the existing local database before initialization."`
	Source string `help:"Database path or connection string to copy the signed-in identity from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized pact storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		ctx.Printf("Copying identity from: %s\n", c.Source)
		n, err := c.copyState(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("copy failed: %w", err)
		}
		ctx.Printf("Copied %d state value(s)\n", n)
	}
	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()
	if storage.IsPostgres(dbPath) || dbPath == "postgresql" {
		return errors.New("--force only resets local sqlite databases")
	}
	if c.Source != "" {
		absDB, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDB
		}
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		ctx.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

// copyState moves the persisted identity and current pact over from another
// store. Cached responses are not copied.
func (c *InitCmd) copyState(ctx *cli.Context, sourcePath string) (int, error) {
	var source storage.Provider
	if storage.IsPostgres(sourcePath) {
		if err := postgres.ValidateConnString(sourcePath); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return 0, errors.New("PostgreSQL source connection string contains embedded credentials. Use environment variables or .pgpass instead")
			}
			return 0, err
		}
		source = postgres.New(sourcePath)
	} else {
		source = sqlite.NewStore(sourcePath)
	}

	if err := source.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	copied := 0
	for _, key := range []string{constants.StateKeyUser, constants.StateKeyUserID, constants.StateKeyCurrentPactID} {
		value, err := source.GetState(key)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return copied, fmt.Errorf("failed to read %s from source: %w", key, err)
		}
		if err := ctx.Store.SetState(key, value); err != nil {
			return copied, fmt.Errorf("failed to write %s: %w", key, err)
		}
		copied++
	}
	return copied, nil
}
