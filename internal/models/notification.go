package models

import "time"

// Notification is the inbound birth-event record in the standardized
// external schema (simulated national health-record feed).
type Notification struct {
	NotificationID     string    `json:"notificationId,omitempty"`
	BirthDate          string    `json:"birthDate"` // "2006-01-02"
	GestationalWeeks   int       `json:"gestationalAgeWeeks"`
	BirthWeightGrams   *int      `json:"birthWeightGrams,omitempty"`
	HospitalIdentifier string    `json:"hospitalIdentifier"`
	MunicipalityCode   string    `json:"municipalityCode"`
	ConsentDataSharing bool      `json:"consentDataSharing"`
	Timestamp          time.Time `json:"timestamp"`
}
