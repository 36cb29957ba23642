package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/preemiealert/go-preemie-alerts/internal/models"
)

// DefaultLimit applies when a caller does not supply a positive limit.
const DefaultLimit = 50

var (
	// ErrInvalidFilter marks a filter the store does not recognize
	// (unknown time-window token, unknown urgency token at the boundary).
	ErrInvalidFilter = errors.New("invalid filter")

	// ErrStorageUnavailable marks a read or write the persistence layer
	// could not complete. Not retried here; retry policy belongs to callers.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Window is a sliding recency filter evaluated against occurred_at at query
// time. Month and year approximate to 30/365 days, not calendar buckets.
type Window string

const (
	WindowDay   Window = "24h"
	WindowWeek  Window = "7dias"
	WindowMonth Window = "mes"
	WindowYear  Window = "ano"
)

// ParseWindow validates an external window token.
func ParseWindow(s string) (Window, error) {
	switch w := Window(s); w {
	case WindowDay, WindowWeek, WindowMonth, WindowYear:
		return w, nil
	default:
		return "", fmt.Errorf("%w: unknown window %q", ErrInvalidFilter, s)
	}
}

// Cutoff returns the earliest occurred_at still inside the window,
// relative to now.
func (w Window) Cutoff(now time.Time) time.Time {
	switch w {
	case WindowDay:
		return now.Add(-24 * time.Hour)
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, 0, -30)
	default:
		return now.AddDate(0, 0, -365)
	}
}

// Filter restricts a listing. All supplied predicates must match (AND);
// nil fields impose no restriction. Tier and Municipality are exact,
// case-sensitive matches on the stored canonical strings.
type Filter struct {
	Window       *Window
	Tier         *models.UrgencyTier
	Municipality *string
	Limit        int
}

type AlertRepository interface {
	// Insert appends an immutable record, assigns CreatedAt and the row id,
	// and returns the id.
	Insert(ctx context.Context, a *models.AlertRecord) (int64, error)
	// ListRecent returns up to limit records, newest first by CreatedAt.
	ListRecent(ctx context.Context, limit int) ([]models.AlertRecord, error)
	// ListFiltered is ListRecent restricted by the filter's predicates.
	ListFiltered(ctx context.Context, f Filter) ([]models.AlertRecord, error)
	// CountByTier returns the number of stored records per urgency tier.
	CountByTier(ctx context.Context) (map[models.UrgencyTier]int, error)
}
