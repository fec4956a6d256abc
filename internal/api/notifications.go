package api

import "context"

// Notifications lists the inbox, newest first.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var resp struct {
		Notifications []Notification `json:"notifications"`
	}
	if err := c.request(ctx, "GET", "/notifications", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Notifications, nil
}

// MarkNotificationRead marks a single notification as read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.request(ctx, "PUT", "/notifications/"+id+"/read", nil, nil)
}

// MarkAllNotificationsRead marks the whole inbox as read.
func (c *Client) MarkAllNotificationsRead(ctx context.Context) error {
	return c.request(ctx, "PUT", "/notifications/read-all", nil, nil)
}

// DeleteNotification removes a single notification.
func (c *Client) DeleteNotification(ctx context.Context, id string) error {
	return c.request(ctx, "DELETE", "/notifications/"+id, nil, nil)
}

// DeleteReadNotifications removes every notification already read.
func (c *Client) DeleteReadNotifications(ctx context.Context) error {
	return c.request(ctx, "DELETE", "/notifications/read", nil, nil)
}
