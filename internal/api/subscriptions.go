package api

import "context"

// SubscriptionPlans lists the purchasable tiers.
func (c *Client) SubscriptionPlans(ctx context.Context) ([]SubscriptionPlan, error) {
	var resp struct {
		Plans []SubscriptionPlan `json:"plans"`
	}
	if err := c.request(ctx, "GET", "/subscriptions/plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// CurrentSubscription returns the user's subscription, nil-equivalent
// status when on the free tier.
func (c *Client) CurrentSubscription(ctx context.Context) (*Subscription, error) {
	var sub Subscription
	if err := c.request(ctx, "GET", "/subscriptions/current", nil, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// Checkout starts a subscription purchase and returns the payment URL.
func (c *Client) Checkout(ctx context.Context, planID string) (string, error) {
	body := map[string]string{"plan_id": planID}
	var resp struct {
		CheckoutURL string `json:"checkout_url"`
	}
	if err := c.request(ctx, "POST", "/subscriptions/checkout", body, &resp); err != nil {
		return "", err
	}
	return resp.CheckoutURL, nil
}

// ChangeSubscription switches to another plan.
func (c *Client) ChangeSubscription(ctx context.Context, planID string) (*Subscription, error) {
	body := map[string]string{"plan_id": planID}
	var sub Subscription
	if err := c.request(ctx, "PUT", "/subscriptions/change", body, &sub); err != nil {
		return nil, err
	}
	return &sub, nil
}

// CancelSubscription cancels at the end of the billing period.
func (c *Client) CancelSubscription(ctx context.Context) error {
	return c.request(ctx, "POST", "/subscriptions/cancel", nil, nil)
}

// ReactivateSubscription undoes a pending cancellation.
func (c *Client) ReactivateSubscription(ctx context.Context) error {
	return c.request(ctx, "POST", "/subscriptions/reactivate", nil, nil)
}

// BillingHistory lists past charges.
func (c *Client) BillingHistory(ctx context.Context) ([]BillingEntry, error) {
	var resp struct {
		History []BillingEntry `json:"history"`
	}
	if err := c.request(ctx, "GET", "/subscriptions/billing", nil, &resp); err != nil {
		return nil, err
	}
	return resp.History, nil
}
