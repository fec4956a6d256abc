package api

import (
	"context"
	"fmt"
	"net/url"
)

// RegisterRequest is the payload for account creation.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates an account. On success the returned token is persisted
// so the session survives a restart.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.request(ctx, "POST", "/auth/register", req, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.SetAuthToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("failed to persist auth token: %w", err)
	}
	return &resp, nil
}

// Login authenticates with email and password and persists the token.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]string{"email": email, "password": password}
	var resp AuthResponse
	if err := c.request(ctx, "POST", "/auth/login", body, &resp); err != nil {
		return nil, err
	}
	if err := c.tokens.SetAuthToken(ctx, resp.Token); err != nil {
		return nil, fmt.Errorf("failed to persist auth token: %w", err)
	}
	return &resp, nil
}

// Logout clears the persisted token. The backend holds no session state.
func (c *Client) Logout(ctx context.Context) error {
	return c.tokens.ClearAuthToken(ctx)
}

// Me returns the current authenticated user.
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.request(ctx, "GET", "/auth/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// OnboardingUpdate marks onboarding progress on the backend.
type OnboardingUpdate struct {
	UserType  string   `json:"user_type,omitempty"`
	Interests []string `json:"interests,omitempty"`
	Completed bool     `json:"completed,omitempty"`
}

// UpdateOnboarding records onboarding progress.
func (c *Client) UpdateOnboarding(ctx context.Context, update OnboardingUpdate) (*User, error) {
	var user User
	if err := c.request(ctx, "PUT", "/auth/onboarding", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameAvailable checks whether a username is free to register.
func (c *Client) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	var resp struct {
		Available bool `json:"available"`
	}
	endpoint := "/auth/username-available?username=" + url.QueryEscape(username)
	if err := c.request(ctx, "GET", endpoint, nil, &resp); err != nil {
		return false, err
	}
	return resp.Available, nil
}
