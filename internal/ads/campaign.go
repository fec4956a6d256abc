package ads

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// CampaignStatus is the backend-owned lifecycle state of a campaign. The
// client only displays it and never drives transitions.
type CampaignStatus string

const (
	StatusDraft     CampaignStatus = "draft"
	StatusPending   CampaignStatus = "pending"
	StatusActive    CampaignStatus = "active"
	StatusPaused    CampaignStatus = "paused"
	StatusCompleted CampaignStatus = "completed"
)

// MinimumDailyBudget is the lowest accepted budget, in account currency.
const MinimumDailyBudget = 5.0

// Targeting describes who a campaign is shown to.
type Targeting struct {
	Interests []string `json:"interests"`
	AgeMin    int      `json:"age_min" validate:"omitempty,gte=13"`
	AgeMax    int      `json:"age_max" validate:"omitempty,gtefield=AgeMin"`
	Location  string   `json:"location"`
}

// Worldwide reports whether the targeting has no location narrowing.
func (t Targeting) Worldwide() bool {
	return t.Location == "" || t.Location == "worldwide"
}

// AgeSpan returns the targeted age range in years, or 0 when unbounded.
func (t Targeting) AgeSpan() int {
	if t.AgeMin == 0 || t.AgeMax == 0 {
		return 0
	}
	return t.AgeMax - t.AgeMin
}

// Campaign is a self-service ad campaign as exchanged with the backend.
type Campaign struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name" validate:"required"`
	Objective   string         `json:"objective" validate:"required,oneof=awareness traffic engagement conversions"`
	AdType      string         `json:"ad_type" validate:"required,oneof=feed reel story"`
	Targeting   Targeting      `json:"targeting"`
	Budget      float64        `json:"budget" validate:"required,gte=5"`
	BudgetType  string         `json:"budget_type" validate:"required,oneof=daily total"`
	Duration    int            `json:"duration" validate:"required,gte=1"`
	Status      CampaignStatus `json:"status,omitempty"`
	Impressions int64          `json:"impressions,omitempty"`
	Clicks      int64          `json:"clicks,omitempty"`
	Engagements int64          `json:"engagements,omitempty"`
	Conversions int64          `json:"conversions,omitempty"`
	Spent       float64        `json:"spent,omitempty"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the campaign client-side before submission. Invalid
// campaigns are never sent to the backend.
func (c *Campaign) Validate() error {
	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			e := errs[0]
			if e.Field() == "Budget" {
				return fmt.Errorf("budget must be at least %.2f per day", MinimumDailyBudget)
			}
			return fmt.Errorf("invalid campaign field %s", e.Field())
		}
		return fmt.Errorf("campaign validation failed: %w", err)
	}
	return nil
}

// TotalBudget returns the budget over the whole campaign duration.
func (c *Campaign) TotalBudget() float64 {
	if c.BudgetType == "total" {
		return c.Budget
	}
	return c.Budget * float64(c.Duration)
}
