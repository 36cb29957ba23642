package models

import "time"

type UrgencyTier string

const (
	UrgencyTierExtreme UrgencyTier = "EXTREME"
	UrgencyTierHigh    UrgencyTier = "HIGH"
	UrgencyTierMedium  UrgencyTier = "MEDIUM"
	UrgencyTierLow     UrgencyTier = "LOW"
)

// AlertRecord is the unit of persisted state. Records are immutable once
// inserted; CreatedAt is assigned by the store and is the canonical
// "most recent first" ordering key.
type AlertRecord struct {
	ID               int64
	Municipality     string // resolved name, never the raw code
	GestationalWeeks int
	UrgencyTier      UrgencyTier // derived from GestationalWeeks, never caller-set
	OccurredAt       time.Time   // when the notification was produced
	Hospital         string
	BirthDate        string // calendar date, "2006-01-02"
	CreatedAt        time.Time
}

// CostProfile is the static cost/stay estimate attached to an urgency tier.
type CostProfile struct {
	AverageCost       int
	EstimatedStayDays int
	Category          string
}
