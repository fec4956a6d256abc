package ads

// Metrics are the display-only advertising ratios computed client-side from
// raw campaign counters. Every ratio is guarded to return 0 when its
// denominator is 0, so callers never see NaN or Inf.
type Metrics struct {
	CTR               float64 // click-through rate, percent
	CPM               float64 // cost per 1000 impressions
	CPC               float64 // cost per click
	CostPerEngagement float64
	ConversionRate    float64 // percent of clicks converting
	CPA               float64 // cost per acquisition
}

// ComputeMetrics derives the standard ad metrics from a campaign's counters.
func ComputeMetrics(c *Campaign) Metrics {
	return Metrics{
		CTR:               ratio(float64(c.Clicks), float64(c.Impressions)) * 100,
		CPM:               ratio(c.Spent, float64(c.Impressions)) * 1000,
		CPC:               ratio(c.Spent, float64(c.Clicks)),
		CostPerEngagement: ratio(c.Spent, float64(c.Engagements)),
		ConversionRate:    ratio(float64(c.Conversions), float64(c.Clicks)) * 100,
		CPA:               ratio(c.Spent, float64(c.Conversions)),
	}
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
