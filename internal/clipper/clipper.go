package clipper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"plately-client/internal/api"
)

// Clipper imports a recipe from a public web page and saves it as a draft
// through the backend. Extraction is heuristic: it looks for the markup
// conventions most recipe sites share.
type Clipper struct {
	client     *api.Client
	httpClient *http.Client
}

// ExtractedRecipe is the raw result of scraping a page.
type ExtractedRecipe struct {
	Title       string
	Ingredients []string
	Steps       []string
	SourceURL   string
}

// NewClipper creates a new Clipper instance.
func NewClipper(client *api.Client) *Clipper {
	return &Clipper{
		client: client,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ClipURL fetches the URL, extracts the recipe, and saves it as a draft.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*api.Recipe, error) {
	extracted, err := c.Extract(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to extract recipe: %w", err)
	}

	ingredients := make([]api.Ingredient, 0, len(extracted.Ingredients))
	for _, line := range extracted.Ingredients {
		ingredients = append(ingredients, splitIngredient(line))
	}

	recipe, err := c.client.CreateRecipe(ctx, api.RecipeInput{
		Title:       extracted.Title,
		Description: "Imported from " + url,
		Ingredients: ingredients,
		Steps:       extracted.Steps,
		Status:      "draft",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to save imported recipe: %w", err)
	}
	return recipe, nil
}

// Extract fetches and scrapes a page without saving anything.
func (c *Clipper) Extract(ctx context.Context, url string) (*ExtractedRecipe, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	// Remove noise before scraping
	doc.Find("script, style, nav, footer, iframe").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	extracted := &ExtractedRecipe{
		Title:       extractTitle(doc),
		Ingredients: extractList(doc, "[class*=ingredient] li, ul.ingredients li, [itemprop=recipeIngredient]"),
		Steps:       extractList(doc, "[class*=instruction] li, [class*=direction] li, ol.steps li, [itemprop=recipeInstructions] li"),
		SourceURL:   url,
	}

	if extracted.Title == "" {
		return nil, fmt.Errorf("no recipe title found on page")
	}
	if len(extracted.Ingredients) == 0 {
		return nil, fmt.Errorf("no ingredients found on page")
	}
	return extracted, nil
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok && og != "" {
		return strings.TrimSpace(og)
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}

func extractList(doc *goquery.Document, selector string) []string {
	var items []string
	seen := make(map[string]struct{})
	doc.Find(selector).Each(func(i int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		if _, dup := seen[text]; dup {
			return
		}
		seen[text] = struct{}{}
		items = append(items, text)
	})
	return items
}

// splitIngredient separates a leading quantity from the ingredient name,
// e.g. "200 g spaghetti" -> amount "200 g", name "spaghetti".
func splitIngredient(line string) api.Ingredient {
	fields := strings.Fields(line)
	if len(fields) >= 3 && isQuantity(fields[0]) && isUnit(fields[1]) {
		return api.Ingredient{
			Amount: fields[0] + " " + fields[1],
			Name:   strings.Join(fields[2:], " "),
		}
	}
	if len(fields) >= 2 && isQuantity(fields[0]) {
		return api.Ingredient{
			Amount: fields[0],
			Name:   strings.Join(fields[1:], " "),
		}
	}
	return api.Ingredient{Name: line}
}

func isQuantity(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != ',' && r != '/' && r != '½' && r != '¼' && r != '¾' {
			return false
		}
	}
	return true
}

func isUnit(s string) bool {
	switch strings.ToLower(strings.TrimSuffix(s, ".")) {
	case "g", "kg", "mg", "ml", "cl", "dl", "l", "cup", "cups", "tbsp", "tsp", "oz", "lb", "pinch", "clove", "cloves", "slice", "slices":
		return true
	}
	return false
}
