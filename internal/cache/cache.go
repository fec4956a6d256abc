package cache

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/peterbourgon/diskv/v3"
)

// Cache is a small disk-backed TTL cache for payloads fetched from
// external collaborators, most notably the weather report feeding the
// suggestion helpers. Entries past their TTL read as missing.
type Cache struct {
	d   *diskv.Diskv
	now func() time.Time
}

type envelope struct {
	ExpiresAt time.Time       `json:"expires_at"`
	Data      json.RawMessage `json:"data"`
}

// New creates a cache rooted at basePath.
func New(basePath string) *Cache {
	return &Cache{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(s string) []string { return []string{} },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		now: time.Now,
	}
}

// Put stores a value under key with a time-to-live.
func (c *Cache) Put(key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	env, err := json.Marshal(envelope{
		ExpiresAt: c.now().Add(ttl),
		Data:      data,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal cache envelope: %w", err)
	}
	if err := c.d.Write(sanitizeKey(key), env); err != nil {
		return fmt.Errorf("failed to write cache entry %s: %w", key, err)
	}
	return nil
}

// Get loads the value stored under key into out. It returns false for a
// missing or expired entry; expired entries are erased on read.
func (c *Cache) Get(key string, out interface{}) (bool, error) {
	raw, err := c.d.Read(sanitizeKey(key))
	if err != nil {
		// diskv returns a plain error for missing keys; treat any read
		// failure as a miss, the cache is best-effort.
		return false, nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return false, nil
	}
	if c.now().After(env.ExpiresAt) {
		_ = c.d.Erase(sanitizeKey(key))
		return false, nil
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache entry %s: %w", key, err)
	}
	return true, nil
}

// Erase drops a key.
func (c *Cache) Erase(key string) error {
	if err := c.d.Erase(sanitizeKey(key)); err != nil && !strings.Contains(err.Error(), "no such file") {
		return fmt.Errorf("failed to erase cache entry %s: %w", key, err)
	}
	return nil
}

// Sweep erases every expired entry. Called from the app's interval timer.
func (c *Cache) Sweep() {
	for key := range c.d.Keys(nil) {
		var env envelope
		raw, err := c.d.Read(key)
		if err != nil {
			continue
		}
		if err := json.Unmarshal(raw, &env); err != nil || c.now().After(env.ExpiresAt) {
			_ = c.d.Erase(key)
		}
	}
}

func sanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '_'
		}
		return r
	}, key)
}

// WeatherReport is the cached weather payload supplied by the host app.
type WeatherReport struct {
	TempC     float64   `json:"temp_c"`
	Condition string    `json:"condition"`
	City      string    `json:"city"`
	FetchedAt time.Time `json:"fetched_at"`
}

// WeatherKey is the cache key for the current weather report.
const WeatherKey = "weather_current"

// WeatherTTL is how long a weather report stays fresh.
const WeatherTTL = 30 * time.Minute
