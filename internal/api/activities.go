package api

import (
	"context"
	"net/url"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// Activities lists every participant's activities for a pact.
func (c *Client) Activities(ctx context.Context, id session.Identity, pactID string) ([]models.Activity, error) {
	var acts []models.Activity
	q := url.Values{"pactId": {pactID}}
	if err := c.get(ctx, id, "/activity", q, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

// UserActivities lists the member's own activities for a pact.
func (c *Client) UserActivities(ctx context.Context, m session.Member, pactID string) ([]models.Activity, error) {
	var acts []models.Activity
	q := url.Values{"pactId": {pactID}, "userId": {m.UserID()}}
	if err := c.get(ctx, m, "/activity", q, &acts); err != nil {
		return nil, err
	}
	return acts, nil
}

func (c *Client) CreateActivity(ctx context.Context, m session.Member, in models.CreateActivityInput) (models.Activity, error) {
	if in.UserID == "" {
		in.UserID = m.UserID()
	}
	var act models.Activity
	if err := c.post(ctx, m, "/activity", in, &act); err != nil {
		return models.Activity{}, err
	}
	return act, nil
}
