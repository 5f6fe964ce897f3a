package api

import (
	"context"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

func (c *Client) ActivePacts(ctx context.Context, id session.Identity) ([]models.Pact, error) {
	var pacts []models.Pact
	if err := c.get(ctx, id, "/pact/active", nil, &pacts); err != nil {
		return nil, err
	}
	return pacts, nil
}

func (c *Client) Pact(ctx context.Context, id session.Identity, pactID string) (models.Pact, error) {
	endpoint, err := resourcePath("/pact", pactID)
	if err != nil {
		return models.Pact{}, err
	}
	var pact models.Pact
	if err := c.get(ctx, id, endpoint, nil, &pact); err != nil {
		return models.Pact{}, err
	}
	return pact, nil
}

func (c *Client) CreatePact(ctx context.Context, id session.Identity, in models.CreatePactInput) (models.Pact, error) {
	var pact models.Pact
	if err := c.post(ctx, id, "/pact", in, &pact); err != nil {
		return models.Pact{}, err
	}
	return pact, nil
}
