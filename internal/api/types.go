package api

import "time"

// User is the profile record exchanged with the backend.
type User struct {
	ID                     string   `json:"id"`
	Username               string   `json:"username"`
	Email                  string   `json:"email"`
	DisplayName            string   `json:"display_name"`
	Bio                    string   `json:"bio,omitempty"`
	Avatar                 string   `json:"avatar,omitempty"`
	CoverImage             string   `json:"cover_image,omitempty"`
	UserType               string   `json:"user_type,omitempty"` // home-cook or creator
	Interests              []string `json:"interests,omitempty"`
	Followers              int      `json:"followers"`
	Following              int      `json:"following"`
	HasCompletedOnboarding bool     `json:"has_completed_onboarding"`
	HasSelectedUserType    bool     `json:"has_selected_user_type"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Ingredient is a single recipe ingredient line.
type Ingredient struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// Recipe is a recipe as owned by the backend. The client holds read-only
// copies per screen and does not attempt cache coherence across them.
type Recipe struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Image       string       `json:"image,omitempty"`
	Ingredients []Ingredient `json:"ingredients"`
	Steps       []string     `json:"steps"`
	CookTime    int          `json:"cook_time"` // minutes
	Servings    int          `json:"servings"`
	Difficulty  string       `json:"difficulty"`
	Tags        []string     `json:"tags,omitempty"`
	Creator     User         `json:"creator"`
	Likes       int          `json:"likes"`
	Comments    int          `json:"comments"`
	Saves       int          `json:"saves"`
	Liked       bool         `json:"liked"`
	Saved       bool         `json:"saved"`
	Status      string       `json:"status,omitempty"` // draft or published
	CreatedAt   time.Time    `json:"created_at"`
}

// Comment is a comment on a recipe.
type Comment struct {
	ID        string    `json:"id"`
	RecipeID  string    `json:"recipe_id"`
	User      User      `json:"user"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	Liked     bool      `json:"liked"`
	CreatedAt time.Time `json:"created_at"`
}

// NotificationType enumerates the notification kinds the backend emits.
type NotificationType string

const (
	NotifyLike           NotificationType = "like"
	NotifyComment        NotificationType = "comment"
	NotifyFollow         NotificationType = "follow"
	NotifySave           NotificationType = "save"
	NotifyMention        NotificationType = "mention"
	NotifyCookingSession NotificationType = "cooking_session"
	NotifyShare          NotificationType = "share"
	NotifyRating         NotificationType = "rating"
	NotifyCollection     NotificationType = "collection"
)

// Notification is a single inbox entry.
type Notification struct {
	ID        string           `json:"id"`
	Type      NotificationType `json:"type"`
	User      User             `json:"user"`
	Recipe    *Recipe          `json:"recipe,omitempty"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`
}

// Meal is one slot inside a meal plan day.
type Meal struct {
	ID       string  `json:"id"`
	Day      string  `json:"day"`
	Slot     string  `json:"slot"` // breakfast, lunch, dinner, snack
	RecipeID string  `json:"recipe_id"`
	Recipe   *Recipe `json:"recipe,omitempty"`
}

// MealPlan is a weekly plan with its meals and shopping items.
type MealPlan struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	WeekStart string    `json:"week_start"` // YYYY-MM-DD
	Public    bool      `json:"public"`
	Meals     []Meal    `json:"meals"`
	CreatedAt time.Time `json:"created_at"`
}

// Conversation is a direct-message thread.
type Conversation struct {
	ID           string    `json:"id"`
	Participants []User    `json:"participants"`
	LastMessage  *Message  `json:"last_message,omitempty"`
	Unread       int       `json:"unread"`
	Archived     bool      `json:"archived"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Message is a single chat message.
type Message struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Sender         User      `json:"sender"`
	Content        string    `json:"content"`
	Edited         bool      `json:"edited"`
	CreatedAt      time.Time `json:"created_at"`
}

// SubscriptionPlan is a purchasable tier.
type SubscriptionPlan struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Price    float64  `json:"price"`
	Interval string   `json:"interval"` // month or year
	Features []string `json:"features"`
}

// Subscription is the user's current subscription state.
type Subscription struct {
	PlanID    string     `json:"plan_id"`
	Status    string     `json:"status"` // active, cancelled, past_due
	RenewsAt  time.Time  `json:"renews_at"`
	CancelsAt *time.Time `json:"cancels_at,omitempty"`
}

// BillingEntry is one line of billing history.
type BillingEntry struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
}

// SecuritySettings is the account security overview.
type SecuritySettings struct {
	EmailVerified    bool `json:"email_verified"`
	TwoFactorEnabled bool `json:"two_factor_enabled"`
	BlockedUsers     int  `json:"blocked_users"`
}

// TwoFactorSetup is returned when 2FA enrollment starts.
type TwoFactorSetup struct {
	Secret    string `json:"secret"`
	QRCodeURL string `json:"qr_code_url"`
}

// Report is a user-submitted abuse report.
type Report struct {
	ID         string    `json:"id,omitempty"`
	TargetType string    `json:"target_type"` // user, recipe, comment
	TargetID   string    `json:"target_id"`
	Reason     string    `json:"reason"`
	Details    string    `json:"details,omitempty"`
	Status     string    `json:"status,omitempty"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
}
