package suggest

import (
	"strings"
	"time"
)

// TimeOfDay classifies an hour of the day for meal suggestions and greeting copy.
type TimeOfDay string

const (
	Morning   TimeOfDay = "morning"
	Afternoon TimeOfDay = "afternoon"
	Evening   TimeOfDay = "evening"
	Night     TimeOfDay = "night"
)

// ClassifyHour maps an hour (0-23) to a TimeOfDay.
func ClassifyHour(hour int) TimeOfDay {
	switch {
	case hour >= 5 && hour < 11:
		return Morning
	case hour >= 11 && hour < 16:
		return Afternoon
	case hour >= 16 && hour < 20:
		return Evening
	default:
		return Night
	}
}

// ClassifyTime maps a wall-clock time to a TimeOfDay.
func ClassifyTime(t time.Time) TimeOfDay {
	return ClassifyHour(t.Hour())
}

// MealForTimeOfDay returns the meal slot suggested for a time of day.
func MealForTimeOfDay(tod TimeOfDay) string {
	switch tod {
	case Morning:
		return "breakfast"
	case Afternoon:
		return "lunch"
	case Evening:
		return "dinner"
	default:
		return "snack"
	}
}

// Season classifies a month for seasonal recipe suggestions.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// ClassifySeason maps a month to a Season using fixed quarter boundaries.
func ClassifySeason(month time.Month) Season {
	switch {
	case month >= time.March && month <= time.May:
		return Spring
	case month >= time.June && month <= time.August:
		return Summer
	case month >= time.September && month <= time.November:
		return Fall
	default:
		return Winter
	}
}

// WeatherCategory is a recipe category derived from current weather.
type WeatherCategory string

const (
	WeatherCold  WeatherCategory = "cold"
	WeatherCool  WeatherCategory = "cool"
	WeatherHot   WeatherCategory = "hot"
	WeatherRainy WeatherCategory = "rainy"
	WeatherMild  WeatherCategory = "mild"
)

// ClassifyWeather maps a temperature (celsius) and condition string to a
// recipe category. The checks are ordered: cold and cool win over hot, hot
// wins over rainy, and rainy is only reached when no temperature branch
// matched. A cold rainy day therefore reports cold suggestions.
func ClassifyWeather(tempC float64, condition string) WeatherCategory {
	switch {
	case tempC < 10:
		return WeatherCold
	case tempC < 20:
		return WeatherCool
	case tempC >= 25:
		return WeatherHot
	case isRainy(condition):
		return WeatherRainy
	default:
		return WeatherMild
	}
}

func isRainy(condition string) bool {
	c := strings.ToLower(condition)
	for _, w := range []string{"rain", "drizzle", "storm", "thunder", "shower"} {
		if strings.Contains(c, w) {
			return true
		}
	}
	return false
}

// DishForWeather returns the dish style suggested for a weather category.
func DishForWeather(w WeatherCategory) string {
	switch w {
	case WeatherCold:
		return "hearty stews and warm comfort food"
	case WeatherCool:
		return "warm soups and baked dishes"
	case WeatherHot:
		return "fresh salads and cold dishes"
	case WeatherRainy:
		return "cozy one-pot meals"
	default:
		return "seasonal favorites"
	}
}

// Greeting returns greeting copy for a time of day.
func Greeting(tod TimeOfDay) string {
	switch tod {
	case Morning:
		return "Good morning"
	case Afternoon:
		return "Good afternoon"
	case Evening:
		return "Good evening"
	default:
		return "Good night"
	}
}
