package prefs

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Store is the single typed home for browser-local style preferences:
// auth token, dietary preferences, health profile, budgets and streaks.
// Values are JSON-encoded, last write wins, no versioning.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an existing database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Well-known preference keys.
const (
	KeyAuthToken     = "auth_token"
	KeyWeeklyBudget  = "weekly_budget"
	KeyCookingStreak = "cooking_streak"
	KeyDietaryPrefs  = "dietary_preferences"
	KeyHealthProfile = "health_profile"
)

// Set stores a value under a key, replacing any previous value.
func (s *Store) Set(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal preference %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO preferences (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(data), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to store preference %s: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into out. It returns false when the
// key has never been set, leaving out untouched so callers keep their
// default.
func (s *Store) Get(ctx context.Context, key string, out interface{}) (bool, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM preferences WHERE key = ?`, key).Scan(&raw)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read preference %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, fmt.Errorf("failed to unmarshal preference %s: %w", key, err)
	}
	return true, nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM preferences WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete preference %s: %w", key, err)
	}
	return nil
}

// AuthToken returns the persisted bearer token, or "" when not logged in.
func (s *Store) AuthToken(ctx context.Context) (string, error) {
	var token string
	if _, err := s.Get(ctx, KeyAuthToken, &token); err != nil {
		return "", err
	}
	return token, nil
}

// SetAuthToken persists the bearer token.
func (s *Store) SetAuthToken(ctx context.Context, token string) error {
	return s.Set(ctx, KeyAuthToken, token)
}

// ClearAuthToken removes the persisted bearer token.
func (s *Store) ClearAuthToken(ctx context.Context) error {
	return s.Delete(ctx, KeyAuthToken)
}

// WeeklyBudget returns the shopping budget, defaulting when unset.
func (s *Store) WeeklyBudget(ctx context.Context) (float64, error) {
	budget := 100.0
	if _, err := s.Get(ctx, KeyWeeklyBudget, &budget); err != nil {
		return 0, err
	}
	return budget, nil
}

// CookingStreak tracks consecutive days the user cooked.
type CookingStreak struct {
	Days       int    `json:"days"`
	LastCooked string `json:"last_cooked"` // YYYY-MM-DD
}

// Streak returns the cooking streak, zero-valued when never set.
func (s *Store) Streak(ctx context.Context) (CookingStreak, error) {
	var streak CookingStreak
	if _, err := s.Get(ctx, KeyCookingStreak, &streak); err != nil {
		return CookingStreak{}, err
	}
	return streak, nil
}

// DietaryPreferences returns the stored dietary tags, empty when unset.
func (s *Store) DietaryPreferences(ctx context.Context) ([]string, error) {
	var tags []string
	if _, err := s.Get(ctx, KeyDietaryPrefs, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

// HealthProfile holds the user's self-reported health settings.
type HealthProfile struct {
	Allergies     []string `json:"allergies"`
	CalorieTarget int      `json:"calorie_target"`
	Goal          string   `json:"goal"`
}
