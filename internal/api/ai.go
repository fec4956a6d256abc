package api

import "context"

// AI endpoints accept and return JSON; image inputs are base64-encoded
// strings. Model execution happens on the backend, the client only relays.

// GenerateRecipes asks the backend AI for recipes using the given
// ingredients and dietary constraints.
func (c *Client) GenerateRecipes(ctx context.Context, ingredients, dietary []string) ([]Recipe, error) {
	body := map[string]interface{}{
		"ingredients": ingredients,
		"dietary":     dietary,
	}
	var resp struct {
		Recipes []Recipe `json:"recipes"`
	}
	if err := c.request(ctx, "POST", "/ai/generate-recipes", body, &resp); err != nil {
		return nil, err
	}
	return resp.Recipes, nil
}

// FoodScan is the result of scanning a food photo.
type FoodScan struct {
	Name       string   `json:"name"`
	Calories   int      `json:"calories"`
	Confidence float64  `json:"confidence"`
	Recipes    []Recipe `json:"recipes,omitempty"`
}

// ScanFoodImage identifies a dish from a base64-encoded photo.
func (c *Client) ScanFoodImage(ctx context.Context, imageBase64 string) (*FoodScan, error) {
	body := map[string]string{"image": imageBase64}
	var scan FoodScan
	if err := c.request(ctx, "POST", "/ai/scan-food", body, &scan); err != nil {
		return nil, err
	}
	return &scan, nil
}

// ProductAnalysis is the result of analyzing a product label photo.
type ProductAnalysis struct {
	Name        string   `json:"name"`
	Ingredients []string `json:"ingredients"`
	Warnings    []string `json:"warnings,omitempty"`
	HealthScore int      `json:"health_score"`
}

// AnalyzeProductImage reads a product label from a base64-encoded photo.
func (c *Client) AnalyzeProductImage(ctx context.Context, imageBase64 string) (*ProductAnalysis, error) {
	body := map[string]string{"image": imageBase64}
	var analysis ProductAnalysis
	if err := c.request(ctx, "POST", "/ai/analyze-product", body, &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

// CookingAdvice asks the backend AI a free-form cooking question.
func (c *Client) CookingAdvice(ctx context.Context, question string) (string, error) {
	body := map[string]string{"question": question}
	var resp struct {
		Answer string `json:"answer"`
	}
	if err := c.request(ctx, "POST", "/ai/cooking-advice", body, &resp); err != nil {
		return "", err
	}
	return resp.Answer, nil
}
