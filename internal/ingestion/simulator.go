package ingestion

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"

	"github.com/preemiealert/go-preemie-alerts/internal/geo"
	"github.com/preemiealert/go-preemie-alerts/internal/models"
)

// Simulator stands in for the national health-record feed. It produces
// notifications in the external schema, with the same spread the real feed
// shows: all urgency tiers, every municipality in the resolution table.
type Simulator struct {
	codes     []string
	hospitals []string
}

func NewSimulator() *Simulator {
	return &Simulator{
		codes: geo.KnownCodes(),
		hospitals: []string{
			"HSP-001 Hospital Municipal",
			"HSP-014 Maternidade Central",
			"HSP-021 Santa Casa",
			"HSP-032 Hospital Universitário",
		},
	}
}

// Seed returns n historical notifications with timestamps spread over the
// past 30 days, for populating an empty database at startup.
func (s *Simulator) Seed(n int) []*models.Notification {
	notifications := make([]*models.Notification, 0, n)
	now := time.Now().UTC()
	for i := 0; i < n; i++ {
		age := time.Duration(rand.Int64N(int64(30 * 24 * time.Hour)))
		notifications = append(notifications, s.generate(now.Add(-age)))
	}
	return notifications
}

// Next returns one fresh notification stamped with the current time.
func (s *Simulator) Next() *models.Notification {
	return s.generate(time.Now().UTC())
}

func (s *Simulator) generate(at time.Time) *models.Notification {
	weeks := 24 + rand.IntN(18) // 24..41, spans all four tiers
	weight := 500 + rand.IntN(3000)

	return &models.Notification{
		NotificationID:     uuid.NewString(),
		BirthDate:          at.Format("2006-01-02"),
		GestationalWeeks:   weeks,
		BirthWeightGrams:   &weight,
		HospitalIdentifier: s.hospitals[rand.IntN(len(s.hospitals))],
		MunicipalityCode:   s.codes[rand.IntN(len(s.codes))],
		ConsentDataSharing: rand.IntN(4) > 0,
		Timestamp:          at,
	}
}
