package api

import (
	"context"

	"plately-client/internal/shopping"
)

// MealPlanInput is the payload for creating or updating a meal plan.
type MealPlanInput struct {
	Name      string `json:"name"`
	WeekStart string `json:"week_start"`
	Public    bool   `json:"public"`
}

// MealInput adds a recipe to a plan slot.
type MealInput struct {
	Day      string `json:"day"`
	Slot     string `json:"slot"`
	RecipeID string `json:"recipe_id"`
}

// MealPlans lists the current user's meal plans.
func (c *Client) MealPlans(ctx context.Context) ([]MealPlan, error) {
	var resp struct {
		Plans []MealPlan `json:"plans"`
	}
	if err := c.request(ctx, "GET", "/meal-plans", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}

// GetMealPlan fetches a single meal plan with its meals.
func (c *Client) GetMealPlan(ctx context.Context, id string) (*MealPlan, error) {
	var plan MealPlan
	if err := c.request(ctx, "GET", "/meal-plans/"+id, nil, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// CreateMealPlan creates an empty weekly plan.
func (c *Client) CreateMealPlan(ctx context.Context, input MealPlanInput) (*MealPlan, error) {
	var plan MealPlan
	if err := c.request(ctx, "POST", "/meal-plans", input, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// UpdateMealPlan updates plan metadata.
func (c *Client) UpdateMealPlan(ctx context.Context, id string, input MealPlanInput) (*MealPlan, error) {
	var plan MealPlan
	if err := c.request(ctx, "PUT", "/meal-plans/"+id, input, &plan); err != nil {
		return nil, err
	}
	return &plan, nil
}

// DeleteMealPlan removes a plan.
func (c *Client) DeleteMealPlan(ctx context.Context, id string) error {
	return c.request(ctx, "DELETE", "/meal-plans/"+id, nil, nil)
}

// AddMeal puts a recipe into a plan slot.
func (c *Client) AddMeal(ctx context.Context, planID string, input MealInput) (*Meal, error) {
	var meal Meal
	if err := c.request(ctx, "POST", "/meal-plans/"+planID+"/meals", input, &meal); err != nil {
		return nil, err
	}
	return &meal, nil
}

// RemoveMeal clears a plan slot.
func (c *Client) RemoveMeal(ctx context.Context, planID, mealID string) error {
	return c.request(ctx, "DELETE", "/meal-plans/"+planID+"/meals/"+mealID, nil, nil)
}

// ShoppingList fetches the shopping list derived from a meal plan.
func (c *Client) ShoppingList(ctx context.Context, planID string) (*shopping.List, error) {
	var list shopping.List
	if err := c.request(ctx, "GET", "/meal-plans/"+planID+"/shopping-list", nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// ShoppingItemUpdate carries the mutable fields of a shopping list item.
type ShoppingItemUpdate struct {
	Checked *bool   `json:"checked,omitempty"`
	Amount  *string `json:"amount,omitempty"`
}

// UpdateShoppingItem updates an item on a plan's shopping list.
func (c *Client) UpdateShoppingItem(ctx context.Context, planID, itemID string, update ShoppingItemUpdate) error {
	return c.request(ctx, "PUT", "/meal-plans/"+planID+"/shopping-items/"+itemID, update, nil)
}

// PublicMealPlans lists community-shared plans.
func (c *Client) PublicMealPlans(ctx context.Context) ([]MealPlan, error) {
	var resp struct {
		Plans []MealPlan `json:"plans"`
	}
	if err := c.request(ctx, "GET", "/meal-plans/public", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Plans, nil
}
