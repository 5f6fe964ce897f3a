package api

import (
	"context"

	"github.com/julianstephens/pact/internal/models"
	"github.com/julianstephens/pact/internal/session"
)

// CreateUser registers a new account. No identity is sent.
func (c *Client) CreateUser(ctx context.Context, in models.CreateUserInput) (models.User, error) {
	var user models.User
	if err := c.post(ctx, session.Guest{}, "/user", in, &user); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// JoinPact enrolls the member in a pact with the activities they picked.
func (c *Client) JoinPact(ctx context.Context, m session.Member, in models.JoinPactInput) error {
	if in.UserID == "" {
		in.UserID = m.UserID()
	}
	return c.post(ctx, m, "/user/join-pact", in, nil)
}
