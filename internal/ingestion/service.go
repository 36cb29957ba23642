// Package ingestion turns inbound birth notifications into persisted alert
// records: municipality resolution, urgency classification, write-through.
package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/preemiealert/go-preemie-alerts/internal/classify"
	"github.com/preemiealert/go-preemie-alerts/internal/geo"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
	"github.com/preemiealert/go-preemie-alerts/internal/repository"
)

type Service struct {
	repo repository.AlertRepository
}

func NewService(repo repository.AlertRepository) *Service {
	return &Service{repo: repo}
}

// Ingest records one notification and returns the stored alert, including
// the store-assigned id and CreatedAt. Every notification is recorded:
// unknown municipality codes resolve to a placeholder, out-of-range
// gestational ages still classify, and consent flags gate nothing here.
func (s *Service) Ingest(ctx context.Context, n *models.Notification) (*models.AlertRecord, error) {
	occurredAt := n.Timestamp
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	tier, _ := classify.Classify(n.GestationalWeeks)

	alert := &models.AlertRecord{
		Municipality:     geo.MunicipalityName(n.MunicipalityCode),
		GestationalWeeks: n.GestationalWeeks,
		UrgencyTier:      tier,
		OccurredAt:       occurredAt,
		Hospital:         n.HospitalIdentifier,
		BirthDate:        n.BirthDate,
	}

	if _, err := s.repo.Insert(ctx, alert); err != nil {
		return nil, fmt.Errorf("ingest notification %s: %w", n.NotificationID, err)
	}

	return alert, nil
}
