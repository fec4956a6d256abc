package api

import "context"

// Conversations lists the current user's threads.
func (c *Client) Conversations(ctx context.Context) ([]Conversation, error) {
	var resp struct {
		Conversations []Conversation `json:"conversations"`
	}
	if err := c.request(ctx, "GET", "/conversations", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// DirectConversation returns the direct thread with a user, creating it
// when it does not exist yet.
func (c *Client) DirectConversation(ctx context.Context, userID string) (*Conversation, error) {
	body := map[string]string{"user_id": userID}
	var conv Conversation
	if err := c.request(ctx, "POST", "/conversations/direct", body, &conv); err != nil {
		return nil, err
	}
	return &conv, nil
}

// ConversationMessages lists messages in a thread, newest last.
func (c *Client) ConversationMessages(ctx context.Context, conversationID string) ([]Message, error) {
	var resp struct {
		Messages []Message `json:"messages"`
	}
	if err := c.request(ctx, "GET", "/conversations/"+conversationID+"/messages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Messages, nil
}

// SendMessage posts a message to a thread.
func (c *Client) SendMessage(ctx context.Context, conversationID, content string) (*Message, error) {
	body := map[string]string{"content": content}
	var msg Message
	if err := c.request(ctx, "POST", "/conversations/"+conversationID+"/messages", body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// EditMessage rewrites a message sent by the current user.
func (c *Client) EditMessage(ctx context.Context, messageID, content string) (*Message, error) {
	body := map[string]string{"content": content}
	var msg Message
	if err := c.request(ctx, "PUT", "/messages/"+messageID, body, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}

// DeleteMessage removes a message sent by the current user.
func (c *Client) DeleteMessage(ctx context.Context, messageID string) error {
	return c.request(ctx, "DELETE", "/messages/"+messageID, nil, nil)
}

// ArchiveConversation hides a thread from the main list.
func (c *Client) ArchiveConversation(ctx context.Context, conversationID string) error {
	return c.request(ctx, "POST", "/conversations/"+conversationID+"/archive", nil, nil)
}

// UnarchiveConversation restores a thread to the main list.
func (c *Client) UnarchiveConversation(ctx context.Context, conversationID string) error {
	return c.request(ctx, "POST", "/conversations/"+conversationID+"/unarchive", nil, nil)
}
