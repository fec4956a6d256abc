package app

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"plately-client/internal/cache"
	"plately-client/internal/config"
)

func newTestApp(t *testing.T, handler http.HandlerFunc) *App {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg := &config.Config{
		APIBaseURL:        server.URL,
		DataDir:           t.TempDir(),
		NotifyPollSeconds: 60,
	}

	a, err := New(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to build app: %v", err)
	}
	t.Cleanup(func() { a.Close() })
	return a
}

func TestLoginRecordsSession(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" || r.Method != "POST" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintln(w, `{"token": "tok-1", "user": {"id": "u1", "username": "ana", "has_selected_user_type": true, "has_completed_onboarding": true}}`)
	})

	ctx := context.Background()
	user, err := a.Login(ctx, "ana@example.com", "secret")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if user.Username != "ana" {
		t.Errorf("Expected username ana, got %q", user.Username)
	}
	if !a.Session.IsAuthenticated() {
		t.Error("Expected authenticated session after login")
	}

	token, err := a.Prefs.AuthToken(ctx)
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "tok-1" {
		t.Errorf("Expected persisted token tok-1, got %q", token)
	}
}

func TestRestoreWithoutToken(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
	})

	ok, err := a.Restore(context.Background())
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if ok {
		t.Error("Expected no session without a stored token")
	}
}

func TestRestoreClearsRejectedToken(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"message": "token expired"}`)
	})

	ctx := context.Background()
	if err := a.Prefs.SetAuthToken(ctx, "stale-opaque-token"); err != nil {
		t.Fatalf("Failed to seed token: %v", err)
	}

	ok, err := a.Restore(ctx)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if ok {
		t.Error("Expected restore to fail with a rejected token")
	}

	token, err := a.Prefs.AuthToken(ctx)
	if err != nil {
		t.Fatalf("Failed to read token: %v", err)
	}
	if token != "" {
		t.Errorf("Expected rejected token to be cleared, got %q", token)
	}
}

func TestSuggestWithCachedWeather(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
	})

	if err := a.RecordWeather(cache.WeatherReport{TempC: 5, Condition: "rain", City: "Porto"}); err != nil {
		t.Fatalf("RecordWeather failed: %v", err)
	}

	morning := time.Date(2026, time.January, 12, 8, 0, 0, 0, time.UTC)
	s := a.Suggest(morning)

	if s.Greeting != "Good morning" {
		t.Errorf("Expected morning greeting, got %q", s.Greeting)
	}
	if s.Meal != "breakfast" {
		t.Errorf("Expected breakfast, got %q", s.Meal)
	}
	if !s.HasWeather {
		t.Fatal("Expected weather-driven suggestion")
	}
	// Cold temperature wins over the rainy condition.
	if s.Weather != "cold" {
		t.Errorf("Expected cold category, got %q", s.Weather)
	}
}

func TestSuggestWithoutWeather(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
	})

	s := a.Suggest(time.Date(2026, time.July, 1, 13, 0, 0, 0, time.UTC))
	if s.HasWeather {
		t.Error("Expected no weather suggestion without a cached report")
	}
	if s.Season != "summer" {
		t.Errorf("Expected summer, got %q", s.Season)
	}
}

func TestShoppingReport(t *testing.T) {
	a := newTestApp(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/meal-plans/p1/shopping-list" {
			t.Errorf("Unexpected request %s %s", r.Method, r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		fmt.Fprintln(w, `{"id": 1, "categories": {
			"produce": [
				{"id": "i1", "name": "tomatoes", "price": 3.5, "checked": false,
				 "stores": [{"name": "Continente", "price": 3.2, "in_stock": true}, {"name": "Lidl", "price": 2.9, "in_stock": true}]},
				{"id": "i2", "name": "basil", "price": 1.5, "checked": true,
				 "stores": [{"name": "Continente", "price": 1.4, "in_stock": true}]}
			],
			"pantry": [
				{"id": "i3", "name": "pasta", "price": 2.0, "checked": false,
				 "stores": [{"name": "Continente", "price": 1.8, "in_stock": true}, {"name": "Lidl", "price": 2.1, "in_stock": true}]}
			]
		}}`)
	})

	report, err := a.Shopping(context.Background(), "p1")
	if err != nil {
		t.Fatalf("Shopping failed: %v", err)
	}

	// Checked basil is excluded from the remaining cost.
	if report.Remaining != 5.5 {
		t.Errorf("Expected remaining 5.5, got %.2f", report.Remaining)
	}
	if report.Budget != 100 {
		t.Errorf("Expected default budget 100, got %.2f", report.Budget)
	}
	if report.OverBudget {
		t.Error("Expected report under budget")
	}
	if report.ItemCount != 3 || report.UncheckedCt != 2 {
		t.Errorf("Expected 3 items / 2 unchecked, got %d / %d", report.ItemCount, report.UncheckedCt)
	}
	if len(report.BestStores) == 0 {
		t.Fatal("Expected store totals")
	}
	if report.BestStores[0].Store != "Continente" {
		t.Errorf("Expected Continente first, got %q at %.2f", report.BestStores[0].Store, report.BestStores[0].Total)
	}
}
