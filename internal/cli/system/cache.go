package system

import (
	"fmt"

	"github.com/julianstephens/pact/internal/cli"
)

// CacheClearCmd drops every cached API response. Identity and the current
// pact are kept.
type CacheClearCmd struct{}

func (c *CacheClearCmd) Run(ctx *cli.Context) error {
	n, err := ctx.Service.ClearCache()
	if err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	ctx.Printf("✓ Removed %d cached response(s)\n", n)
	return nil
}
