// Package classify maps gestational age at birth to an urgency tier and a
// static cost/stay estimate. It is pure: no state, no errors, any integer
// input yields a tier (range validation is a caller concern).
package classify

import "github.com/preemiealert/go-preemie-alerts/internal/models"

// Tier boundaries on completed gestational weeks (half-open intervals).
const (
	extremeBelowWeeks = 28 // w < 28  -> EXTREME
	highBelowWeeks    = 32 // 28-31   -> HIGH
	mediumBelowWeeks  = 37 // 32-36   -> MEDIUM, >= 37 LOW
)

var costProfiles = map[models.UrgencyTier]models.CostProfile{
	models.UrgencyTierExtreme: {AverageCost: 17395, EstimatedStayDays: 120, Category: "extreme"},
	models.UrgencyTierHigh:    {AverageCost: 6688, EstimatedStayDays: 45, Category: "moderate"},
	models.UrgencyTierMedium:  {AverageCost: 1120, EstimatedStayDays: 7, Category: "late"},
	models.UrgencyTierLow:     {AverageCost: 1120, EstimatedStayDays: 7, Category: "late"},
}

// Classify returns the urgency tier and cost profile for a gestational age.
func Classify(weeks int) (models.UrgencyTier, models.CostProfile) {
	tier := Tier(weeks)
	return tier, costProfiles[tier]
}

// Tier returns only the urgency tier for a gestational age.
func Tier(weeks int) models.UrgencyTier {
	switch {
	case weeks < extremeBelowWeeks:
		return models.UrgencyTierExtreme
	case weeks < highBelowWeeks:
		return models.UrgencyTierHigh
	case weeks < mediumBelowWeeks:
		return models.UrgencyTierMedium
	default:
		return models.UrgencyTierLow
	}
}

// Profile returns the cost profile for an already-derived tier.
func Profile(tier models.UrgencyTier) models.CostProfile {
	return costProfiles[tier]
}
