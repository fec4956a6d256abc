package api

import (
	"context"
	"net/url"
)

// ProfileUpdate carries the editable profile fields. Empty fields are left
// unchanged by the backend.
type ProfileUpdate struct {
	DisplayName string `json:"display_name,omitempty"`
	Bio         string `json:"bio,omitempty"`
	Avatar      string `json:"avatar,omitempty"` // base64-encoded image, multipart upload is the alternative
	CoverImage  string `json:"cover_image,omitempty"`
}

// GetProfile fetches a user profile.
func (c *Client) GetProfile(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.request(ctx, "GET", "/users/"+url.PathEscape(userID), nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates the current user's profile.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var user User
	if err := c.request(ctx, "PUT", "/users/me", update, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Follow follows a user.
func (c *Client) Follow(ctx context.Context, userID string) error {
	return c.request(ctx, "POST", "/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// Unfollow stops following a user.
func (c *Client) Unfollow(ctx context.Context, userID string) error {
	return c.request(ctx, "DELETE", "/users/"+url.PathEscape(userID)+"/follow", nil, nil)
}

// Followers lists the users following userID.
func (c *Client) Followers(ctx context.Context, userID string) ([]User, error) {
	return c.userCollection(ctx, "/users/"+url.PathEscape(userID)+"/followers")
}

// Following lists the users userID follows.
func (c *Client) Following(ctx context.Context, userID string) ([]User, error) {
	return c.userCollection(ctx, "/users/"+url.PathEscape(userID)+"/following")
}

// SearchUsers searches profiles by name or username.
func (c *Client) SearchUsers(ctx context.Context, query string) ([]User, error) {
	return c.userCollection(ctx, "/users/search?q="+url.QueryEscape(query))
}

func (c *Client) userCollection(ctx context.Context, endpoint string) ([]User, error) {
	var resp struct {
		Users []User `json:"users"`
	}
	if err := c.request(ctx, "GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Users, nil
}
