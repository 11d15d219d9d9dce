package client

import (
	"context"
	"net/http"

	"github.com/2beens/fitlog/internal/auth"
	"github.com/2beens/fitlog/internal/users"
)

// Signup creates the account and starts the session with the returned token.
func (c *Client) Signup(ctx context.Context, in auth.SignupInput) (*auth.Response, error) {
	var resp auth.Response
	if err := c.do(ctx, "auth.signup", http.MethodPost, "/auth/signup", in, &resp, false); err != nil {
		return nil, err
	}
	c.session.Start(resp.Token, resp.User)
	return &resp, nil
}

// Login starts the session with the returned token.
func (c *Client) Login(ctx context.Context, in auth.LoginInput) (*auth.Response, error) {
	var resp auth.Response
	if err := c.do(ctx, "auth.login", http.MethodPost, "/auth/login", in, &resp, false); err != nil {
		return nil, err
	}
	c.session.Start(resp.Token, resp.User)
	return &resp, nil
}

// Logout revokes the token server side. The session ends even when the call fails.
func (c *Client) Logout(ctx context.Context) error {
	defer c.session.End()
	return c.do(ctx, "auth.logout", http.MethodPost, "/auth/logout", nil, nil, true)
}

func (c *Client) Me(ctx context.Context) (*users.User, error) {
	var user users.User
	if err := c.do(ctx, "users.me", http.MethodGet, "/users/me", nil, &user, true); err != nil {
		return nil, err
	}
	c.session.setUser(&user)
	return &user, nil
}

// UpdateMe patches the profile and refreshes the session user, goal mode included.
func (c *Client) UpdateMe(ctx context.Context, patch users.Patch) (*users.User, error) {
	var user users.User
	if err := c.do(ctx, "users.update-me", http.MethodPatch, "/users/me", patch, &user, true); err != nil {
		return nil, err
	}
	c.session.setUser(&user)
	return &user, nil
}

func (c *Client) DeleteMe(ctx context.Context) error {
	if err := c.do(ctx, "users.delete-me", http.MethodDelete, "/users/me", nil, nil, true); err != nil {
		return err
	}
	c.session.End()
	return nil
}
