package domain

import "math"

// Tier is a single-letter priority bucket, S highest through D lowest.
type Tier string

const (
	TierS Tier = "S"
	TierA Tier = "A"
	TierB Tier = "B"
	TierC Tier = "C"
	TierD Tier = "D"
)

// TierBand is one half-open score interval [Min, Max) with its display
// metadata. Description and Icon are cosmetic configuration, never computed.
type TierBand struct {
	Tier        Tier    `koanf:"tier" json:"tier"`
	Min         float64 `koanf:"min" json:"min"`
	Max         float64 `koanf:"max" json:"max"`
	Description string  `koanf:"description" json:"description"`
	Icon        string  `koanf:"icon" json:"icon"`
}

// DefaultTierBands returns the standard five-band table, ordered highest
// first. Bands are contiguous and cover [0,1).
func DefaultTierBands() []TierBand {
	return []TierBand{
		{Tier: TierS, Min: 0.70, Max: 1.00, Icon: "🏆",
			Description: "Elite - Unicorn counties with exceptional scores across all metrics"},
		{Tier: TierA, Min: 0.55, Max: 0.70, Icon: "⭐",
			Description: "Excellent - Top priority targets with strong swing potential"},
		{Tier: TierB, Min: 0.40, Max: 0.55, Icon: "✅",
			Description: "Good - Solid swing counties worth significant investment"},
		{Tier: TierC, Min: 0.25, Max: 0.40, Icon: "📊",
			Description: "Moderate - Secondary targets for remaining resources"},
		{Tier: TierD, Min: 0.00, Max: 0.25, Icon: "📉",
			Description: "Low Priority - Limited swing potential or low competitiveness"},
	}
}

// ClassifyTier maps a swing score to a tier. Bands are evaluated in order
// over half-open intervals [Min, Max); a score at or above the top band's Max
// (i.e. exactly 1.0 for the standard table) belongs to the top tier, since
// half-open intervals would otherwise exclude the upper bound. Any other
// unmatched score (negative, or out of range from mis-weighted input) falls
// back to the lowest band. The function is total: every float input
// classifies.
func ClassifyTier(score float64, bands []TierBand) Tier {
	if len(bands) == 0 {
		return ""
	}
	for _, b := range bands {
		if score >= b.Min && score < b.Max {
			return b.Tier
		}
	}
	if score >= bands[0].Max {
		return bands[0].Tier
	}
	return bands[len(bands)-1].Tier
}

// OutOfRange reports whether a score falls outside [0,1]. Classification
// still succeeds for such scores (D fallback), but callers surface them as a
// data inconsistency since they indicate mis-weighted input. NaN counts as
// out of range.
func OutOfRange(score float64) bool {
	return math.IsNaN(score) || score < 0 || score > 1
}

// AddTiers returns a copy of the scored rows with the Tier field filled from
// SwingScore. Classification is per-row and independent of table size.
func AddTiers(rows []CountySwing, bands []TierBand) []CountySwing {
	out := make([]CountySwing, len(rows))
	for i, r := range rows {
		r.Tier = ClassifyTier(r.SwingScore, bands)
		out[i] = r
	}
	return out
}

// TierSummary is one tier's share of a classified table.
type TierSummary struct {
	Tier        Tier    `json:"tier"`
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

// SummarizeTiers counts rows per tier and reports each tier's percentage of
// the whole table, rounded to one decimal. Tiers appear in band order (S
// first for the standard table); tiers with no rows are omitted rather than
// reported as zero.
func SummarizeTiers(rows []CountySwing, bands []TierBand) []TierSummary {
	if len(rows) == 0 {
		return nil
	}

	counts := make(map[Tier]int, len(bands))
	for _, r := range rows {
		counts[r.Tier]++
	}

	var summary []TierSummary
	for _, b := range bands {
		n := counts[b.Tier]
		if n == 0 {
			continue
		}
		summary = append(summary, TierSummary{
			Tier:        b.Tier,
			Count:       n,
			Percentage:  math.Round(float64(n)/float64(len(rows))*1000) / 10,
			Description: b.Description,
			Icon:        b.Icon,
		})
	}
	return summary
}
