package ads

import "math"

// Base CPM and the narrowing penalties applied to it. Narrower targeting
// costs more per thousand impressions, which lowers the reach estimate.
const (
	baseCPM = 5.0

	interestPenalty = 1.2  // more than 3 interests
	ageRangePenalty = 1.15 // age span under 20 years
	locationPenalty = 1.3  // anything narrower than worldwide
)

// ReachEstimate is the projected impression range for a campaign, reported
// as a ±20% band around the point estimate.
type ReachEstimate struct {
	Impressions int64 // point estimate
	MinReach    int64
	MaxReach    int64
	AdjustedCPM float64
}

// EstimateReach projects impressions from the campaign budget, duration and
// targeting: estimatedImpressions = (totalBudget / adjustedCPM) * 1000.
func EstimateReach(c *Campaign) ReachEstimate {
	cpm := baseCPM
	if len(c.Targeting.Interests) > 3 {
		cpm *= interestPenalty
	}
	if span := c.Targeting.AgeSpan(); span > 0 && span < 20 {
		cpm *= ageRangePenalty
	}
	if !c.Targeting.Worldwide() {
		cpm *= locationPenalty
	}

	impressions := c.TotalBudget() / cpm * 1000

	return ReachEstimate{
		Impressions: int64(impressions),
		MinReach:    int64(math.Floor(impressions * 0.8)),
		MaxReach:    int64(math.Floor(impressions * 1.2)),
		AdjustedCPM: cpm,
	}
}
