package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"plately-client/internal/api"
)

// Step is a destination the route gate can send the user to.
type Step string

const (
	StepWelcome   Step = "welcome"
	StepUserType  Step = "user-type"
	StepInterests Step = "interests"
	StepHome      Step = "home"
)

// TokenStore persists the bearer token across restarts.
type TokenStore interface {
	AuthToken(ctx context.Context) (string, error)
	SetAuthToken(ctx context.Context, token string) error
	ClearAuthToken(ctx context.Context) error
}

// UserPatch carries partial profile updates. Nil fields are left unchanged.
type UserPatch struct {
	DisplayName *string
	Bio         *string
	Avatar      *string
	CoverImage  *string
	Interests   []string
}

// Manager holds the app-lifetime authentication and onboarding state.
// It is the single writer; screens read through Current and Gate.
type Manager struct {
	mu     sync.RWMutex
	user   *api.User
	authed bool

	tokens TokenStore
	logger *zap.Logger
}

// NewManager creates a session manager over the given token store.
func NewManager(tokens TokenStore, logger *zap.Logger) *Manager {
	return &Manager{tokens: tokens, logger: logger}
}

// Login records an authenticated user. When skipOnboarding is set the
// onboarding flags are forced complete, used for returning users.
func (m *Manager) Login(user api.User, skipOnboarding bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if skipOnboarding {
		user.HasSelectedUserType = true
		user.HasCompletedOnboarding = true
	}
	m.user = &user
	m.authed = true
	m.logger.Info("session started", zap.String("user_id", user.ID))
}

// Logout clears the in-memory session and the persisted token.
func (m *Manager) Logout(ctx context.Context) error {
	m.mu.Lock()
	m.user = nil
	m.authed = false
	m.mu.Unlock()

	if err := m.tokens.ClearAuthToken(ctx); err != nil {
		return fmt.Errorf("failed to clear persisted token: %w", err)
	}
	m.logger.Info("session ended")
	return nil
}

// UpdateUser merges non-nil patch fields into the current user record.
// It is a no-op when nobody is logged in.
func (m *Manager) UpdateUser(patch UserPatch) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	if patch.DisplayName != nil {
		m.user.DisplayName = *patch.DisplayName
	}
	if patch.Bio != nil {
		m.user.Bio = *patch.Bio
	}
	if patch.Avatar != nil {
		m.user.Avatar = *patch.Avatar
	}
	if patch.CoverImage != nil {
		m.user.CoverImage = *patch.CoverImage
	}
	if patch.Interests != nil {
		m.user.Interests = patch.Interests
	}
}

// MarkUserTypeSelected records completion of the first onboarding step.
func (m *Manager) MarkUserTypeSelected(userType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	m.user.UserType = userType
	m.user.HasSelectedUserType = true
}

// MarkOnboardingComplete records completion of the interests step.
func (m *Manager) MarkOnboardingComplete(interests []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.user == nil {
		return
	}
	m.user.Interests = interests
	m.user.HasCompletedOnboarding = true
}

// Current returns a copy of the logged-in user, or nil.
func (m *Manager) Current() *api.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.user == nil {
		return nil
	}
	u := *m.user
	return &u
}

// IsAuthenticated reports whether a user is logged in.
func (m *Manager) IsAuthenticated() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.authed
}

// Gate decides where an incoming visitor belongs. Unauthenticated visitors
// go to welcome; authenticated users with incomplete onboarding go to the
// first incomplete step, in the fixed order user-type then interests.
func (m *Manager) Gate() Step {
	m.mu.RLock()
	defer m.mu.RUnlock()
	switch {
	case !m.authed || m.user == nil:
		return StepWelcome
	case !m.user.HasSelectedUserType:
		return StepUserType
	case !m.user.HasCompletedOnboarding:
		return StepInterests
	default:
		return StepHome
	}
}

// HasUsableToken reports whether a persisted token exists and, when the
// token is a JWT, has not expired. Expired tokens are treated as absent so
// the gate sends the user back to welcome instead of waiting for a 401.
func (m *Manager) HasUsableToken(ctx context.Context) (bool, error) {
	token, err := m.tokens.AuthToken(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to read persisted token: %w", err)
	}
	if token == "" {
		return false, nil
	}
	return !tokenExpired(token, time.Now()), nil
}

// tokenExpired checks the exp claim without verifying the signature; the
// backend remains the authority, this is only a fast local pre-check.
// Opaque (non-JWT) tokens are never considered expired locally.
func tokenExpired(token string, now time.Time) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(now)
}
