package api

import (
	"context"
	"net/url"
)

// VerifyEmail confirms the email address with a token from the verification
// mail.
func (c *Client) VerifyEmail(ctx context.Context, token string) error {
	body := map[string]string{"token": token}
	return c.request(ctx, "POST", "/security/verify-email", body, nil)
}

// ResendVerificationEmail triggers a fresh verification mail.
func (c *Client) ResendVerificationEmail(ctx context.Context) error {
	return c.request(ctx, "POST", "/security/verify-email/resend", nil, nil)
}

// SetupTwoFactor starts 2FA enrollment and returns the shared secret.
func (c *Client) SetupTwoFactor(ctx context.Context) (*TwoFactorSetup, error) {
	var setup TwoFactorSetup
	if err := c.request(ctx, "POST", "/security/2fa/setup", nil, &setup); err != nil {
		return nil, err
	}
	return &setup, nil
}

// VerifyTwoFactor completes enrollment with a TOTP code.
func (c *Client) VerifyTwoFactor(ctx context.Context, code string) error {
	body := map[string]string{"code": code}
	return c.request(ctx, "POST", "/security/2fa/verify", body, nil)
}

// DisableTwoFactor turns 2FA off, confirmed with a TOTP code.
func (c *Client) DisableTwoFactor(ctx context.Context, code string) error {
	body := map[string]string{"code": code}
	return c.request(ctx, "POST", "/security/2fa/disable", body, nil)
}

// BlockUser blocks another user.
func (c *Client) BlockUser(ctx context.Context, userID string) error {
	return c.request(ctx, "POST", "/security/block/"+url.PathEscape(userID), nil, nil)
}

// UnblockUser lifts a block.
func (c *Client) UnblockUser(ctx context.Context, userID string) error {
	return c.request(ctx, "DELETE", "/security/block/"+url.PathEscape(userID), nil, nil)
}

// BlockedUsers lists the users the current user has blocked.
func (c *Client) BlockedUsers(ctx context.Context) ([]User, error) {
	return c.userCollection(ctx, "/security/blocked")
}

// CreateReport files an abuse report.
func (c *Client) CreateReport(ctx context.Context, report Report) (*Report, error) {
	var created Report
	if err := c.request(ctx, "POST", "/security/reports", report, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Reports lists the current user's submitted reports.
func (c *Client) Reports(ctx context.Context) ([]Report, error) {
	var resp struct {
		Reports []Report `json:"reports"`
	}
	if err := c.request(ctx, "GET", "/security/reports", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Reports, nil
}

// GetSecuritySettings returns the account security overview.
func (c *Client) GetSecuritySettings(ctx context.Context) (*SecuritySettings, error) {
	var settings SecuritySettings
	if err := c.request(ctx, "GET", "/security/settings", nil, &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}
