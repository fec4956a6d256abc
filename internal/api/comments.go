package api

import "context"

// RecipeComments lists the comments on a recipe.
func (c *Client) RecipeComments(ctx context.Context, recipeID string) ([]Comment, error) {
	var resp struct {
		Comments []Comment `json:"comments"`
	}
	if err := c.request(ctx, "GET", "/recipes/"+recipeID+"/comments", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Comments, nil
}

// CreateComment posts a comment on a recipe.
func (c *Client) CreateComment(ctx context.Context, recipeID, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	var comment Comment
	if err := c.request(ctx, "POST", "/recipes/"+recipeID+"/comments", body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateComment edits an existing comment by the current user.
func (c *Client) UpdateComment(ctx context.Context, commentID, content string) (*Comment, error) {
	body := map[string]string{"content": content}
	var comment Comment
	if err := c.request(ctx, "PUT", "/comments/"+commentID, body, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment removes a comment by the current user.
func (c *Client) DeleteComment(ctx context.Context, commentID string) error {
	return c.request(ctx, "DELETE", "/comments/"+commentID, nil, nil)
}

// ToggleCommentLike flips the like state on a comment.
func (c *Client) ToggleCommentLike(ctx context.Context, commentID string) (liked bool, err error) {
	var resp struct {
		Liked bool `json:"liked"`
	}
	if err := c.request(ctx, "POST", "/comments/"+commentID+"/like", nil, &resp); err != nil {
		return false, err
	}
	return resp.Liked, nil
}
