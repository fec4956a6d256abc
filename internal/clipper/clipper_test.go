package clipper

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"plately-client/internal/api"
)

const fixtureHTML = `<!DOCTYPE html>
<html>
<head>
<title>Some Food Blog</title>
<meta property="og:title" content="Classic Carbonara">
<script>trackVisitor();</script>
</head>
<body>
<nav><ul><li>Home</li><li>Recipes</li></ul></nav>
<h1>Classic Carbonara</h1>
<ul class="ingredients">
<li>200 g spaghetti</li>
<li>100 g pancetta</li>
<li>2 eggs</li>
<li>50 g pecorino</li>
</ul>
<ol class="steps">
<li>Boil the spaghetti in salted water.</li>
<li>Fry the pancetta until crisp.</li>
<li>Toss everything with the egg and cheese mixture.</li>
</ol>
<footer>Copyright</footer>
</body>
</html>`

type memTokens struct{ token string }

func (m *memTokens) AuthToken(ctx context.Context) (string, error) { return m.token, nil }
func (m *memTokens) SetAuthToken(ctx context.Context, token string) error {
	m.token = token
	return nil
}
func (m *memTokens) ClearAuthToken(ctx context.Context) error { m.token = ""; return nil }

func TestExtract(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fixtureHTML))
	}))
	defer page.Close()

	clipper := NewClipper(nil)

	extracted, err := clipper.Extract(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if extracted.Title != "Classic Carbonara" {
		t.Errorf("expected title 'Classic Carbonara', got %q", extracted.Title)
	}
	if len(extracted.Ingredients) != 4 {
		t.Fatalf("expected 4 ingredients, got %d: %v", len(extracted.Ingredients), extracted.Ingredients)
	}
	if extracted.Ingredients[0] != "200 g spaghetti" {
		t.Errorf("unexpected first ingredient: %q", extracted.Ingredients[0])
	}
	if len(extracted.Steps) != 3 {
		t.Fatalf("expected 3 steps, got %d: %v", len(extracted.Steps), extracted.Steps)
	}
	for _, ing := range extracted.Ingredients {
		if ing == "Home" || ing == "Recipes" {
			t.Errorf("navigation text leaked into ingredients: %q", ing)
		}
	}
}

func TestExtractMissingRecipe(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body><p>Just an article, no recipe.</p></body></html>"))
	}))
	defer page.Close()

	clipper := NewClipper(nil)
	if _, err := clipper.Extract(context.Background(), page.URL); err == nil {
		t.Fatal("expected error for page without a recipe")
	}
}

func TestClipURL(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(fixtureHTML))
	}))
	defer page.Close()

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/recipes" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}

		var input api.RecipeInput
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			t.Fatalf("failed to decode recipe input: %v", err)
		}
		if input.Title != "Classic Carbonara" {
			t.Errorf("expected title 'Classic Carbonara', got %q", input.Title)
		}
		if input.Status != "draft" {
			t.Errorf("expected draft status, got %q", input.Status)
		}
		if len(input.Ingredients) != 4 {
			t.Fatalf("expected 4 ingredients, got %d", len(input.Ingredients))
		}
		if input.Ingredients[0].Amount != "200 g" || input.Ingredients[0].Name != "spaghetti" {
			t.Errorf("unexpected first ingredient: %+v", input.Ingredients[0])
		}

		json.NewEncoder(w).Encode(api.Recipe{ID: "r1", Title: input.Title, Status: input.Status})
	}))
	defer backend.Close()

	client := api.NewClient(backend.URL, &memTokens{token: "tok"}, zap.NewNop())
	clipper := NewClipper(client)

	recipe, err := clipper.ClipURL(context.Background(), page.URL)
	if err != nil {
		t.Fatalf("ClipURL failed: %v", err)
	}
	if recipe.ID != "r1" {
		t.Errorf("expected recipe ID r1, got %q", recipe.ID)
	}
}

func TestSplitIngredient(t *testing.T) {
	tests := []struct {
		line   string
		amount string
		name   string
	}{
		{"200 g spaghetti", "200 g", "spaghetti"},
		{"2 eggs", "2", "eggs"},
		{"salt to taste", "", "salt to taste"},
		{"1/2 cup flour", "1/2 cup", "flour"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got := splitIngredient(tt.line)
			if got.Amount != tt.amount || got.Name != tt.name {
				t.Errorf("splitIngredient(%q) = %+v, want amount %q name %q", tt.line, got, tt.amount, tt.name)
			}
		})
	}
}
