package api

import (
	"context"
	"fmt"
	"net/url"
)

// RecipeInput is the payload for creating or updating a recipe.
type RecipeInput struct {
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CookTime    int          `json:"cook_time"`
	Servings    int          `json:"servings"`
	Difficulty  string       `json:"difficulty"`
	Tags        []string     `json:"tags,omitempty"`
	Status      string       `json:"status,omitempty"`
}

// ListRecipes returns the main recipe feed, newest first.
func (c *Client) ListRecipes(ctx context.Context, page, limit int) ([]Recipe, error) {
	endpoint := fmt.Sprintf("/recipes?page=%d&limit=%d", page, limit)
	var resp struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := c.request(ctx, "GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// GetRecipe fetches a single recipe by ID.
func (c *Client) GetRecipe(ctx context.Context, id string) (*Recipe, error) {
	var recipe Recipe
	if err := c.request(ctx, "GET", "/recipes/"+id, nil, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe submits a new recipe.
func (c *Client) CreateRecipe(ctx context.Context, input RecipeInput) (*Recipe, error) {
	var recipe Recipe
	if err := c.request(ctx, "POST", "/recipes", input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe updates an existing recipe owned by the current user.
func (c *Client) UpdateRecipe(ctx context.Context, id string, input RecipeInput) (*Recipe, error) {
	var recipe Recipe
	if err := c.request(ctx, "PUT", "/recipes/"+id, input, &recipe); err != nil {
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes a recipe owned by the current user.
func (c *Client) DeleteRecipe(ctx context.Context, id string) error {
	return c.request(ctx, "DELETE", "/recipes/"+id, nil, nil)
}

// ToggleLike flips the like state and returns the new state and count.
func (c *Client) ToggleLike(ctx context.Context, recipeID string) (liked bool, likes int, err error) {
	var resp struct {
		Liked bool `json:"liked"`
		Likes int  `json:"likes"`
	}
	if err := c.request(ctx, "POST", "/recipes/"+recipeID+"/like", nil, &resp); err != nil {
		return false, 0, err
	}
	return resp.Liked, resp.Likes, nil
}

// ToggleSave flips the save state for the current user.
func (c *Client) ToggleSave(ctx context.Context, recipeID string) (saved bool, err error) {
	var resp struct {
		Saved bool `json:"saved"`
	}
	if err := c.request(ctx, "POST", "/recipes/"+recipeID+"/save", nil, &resp); err != nil {
		return false, err
	}
	return resp.Saved, nil
}

// RateRecipe submits a 1-5 star rating.
func (c *Client) RateRecipe(ctx context.Context, recipeID string, stars int) error {
	body := map[string]int{"stars": stars}
	return c.request(ctx, "POST", "/recipes/"+recipeID+"/rate", body, nil)
}

// TrendingRecipes returns the trending feed.
func (c *Client) TrendingRecipes(ctx context.Context) ([]Recipe, error) {
	return c.recipeCollection(ctx, "/recipes/trending")
}

// FeaturedRecipes returns editorially featured recipes.
func (c *Client) FeaturedRecipes(ctx context.Context) ([]Recipe, error) {
	return c.recipeCollection(ctx, "/recipes/featured")
}

// TopRatedRecipes returns the highest rated recipes.
func (c *Client) TopRatedRecipes(ctx context.Context) ([]Recipe, error) {
	return c.recipeCollection(ctx, "/recipes/top-rated")
}

// UserRecipes lists recipes created by a specific user.
func (c *Client) UserRecipes(ctx context.Context, userID string) ([]Recipe, error) {
	return c.recipeCollection(ctx, "/users/"+url.PathEscape(userID)+"/recipes")
}

// SavedRecipes lists the current user's saved recipes.
func (c *Client) SavedRecipes(ctx context.Context) ([]Recipe, error) {
	return c.recipeCollection(ctx, "/recipes/saved")
}

func (c *Client) recipeCollection(ctx context.Context, endpoint string) ([]Recipe, error) {
	var resp struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := c.request(ctx, "GET", endpoint, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}
