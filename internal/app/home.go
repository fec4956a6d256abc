package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"plately-client/internal/cache"
	"plately-client/internal/shopping"
	"plately-client/internal/suggest"
)

// HomeSuggestion is the derived content for the home screen header.
type HomeSuggestion struct {
	Greeting  string
	TimeOfDay suggest.TimeOfDay
	Season    suggest.Season
	Meal      string

	// Weather-driven fields, present only when a fresh report is cached.
	Weather     suggest.WeatherCategory
	WeatherDish string
	HasWeather  bool
}

// Suggest derives the home screen suggestion for the given local time.
// Weather input comes from the disk cache; a missing or stale report just
// drops the weather line.
func (a *App) Suggest(now time.Time) HomeSuggestion {
	tod := suggest.ClassifyTime(now)
	s := HomeSuggestion{
		Greeting:  suggest.Greeting(tod),
		TimeOfDay: tod,
		Season:    suggest.ClassifySeason(now.Month()),
		Meal:      suggest.MealForTimeOfDay(tod),
	}

	var report cache.WeatherReport
	found, err := a.Cache.Get(cache.WeatherKey, &report)
	if err != nil {
		a.logger.Warn("failed to read cached weather", zap.Error(err))
		return s
	}
	if !found {
		return s
	}

	s.Weather = suggest.ClassifyWeather(report.TempC, report.Condition)
	s.WeatherDish = suggest.DishForWeather(s.Weather)
	s.HasWeather = true
	return s
}

// RecordWeather caches a weather report supplied by the host platform.
func (a *App) RecordWeather(report cache.WeatherReport) error {
	return a.Cache.Put(cache.WeatherKey, report, cache.WeatherTTL)
}

// ShoppingReport summarizes a meal plan's shopping list against the weekly
// budget preference.
type ShoppingReport struct {
	Remaining   float64
	Budget      float64
	OverBudget  bool
	BestStores  []shopping.StoreTotal
	ItemCount   int
	UncheckedCt int
}

// Shopping fetches the shopping list for a plan and derives store totals
// and budget standing.
func (a *App) Shopping(ctx context.Context, planID string) (*ShoppingReport, error) {
	list, err := a.Client.ShoppingList(ctx, planID)
	if err != nil {
		return nil, err
	}

	budget, err := a.Prefs.WeeklyBudget(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load weekly budget: %w", err)
	}

	items := list.Items()
	unchecked := 0
	for _, item := range items {
		if !item.Checked {
			unchecked++
		}
	}

	remaining := shopping.RemainingCost(items)
	return &ShoppingReport{
		Remaining:   remaining,
		Budget:      budget,
		OverBudget:  remaining > budget,
		BestStores:  shopping.BestStores(items),
		ItemCount:   len(items),
		UncheckedCt: unchecked,
	}, nil
}
