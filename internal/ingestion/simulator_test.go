package ingestion

import (
	"testing"
	"time"
)

func TestSimulator_Seed(t *testing.T) {
	sim := NewSimulator()
	now := time.Now().UTC()

	notifications := sim.Seed(25)
	if len(notifications) != 25 {
		t.Fatalf("expected 25 notifications, got %d", len(notifications))
	}

	for _, n := range notifications {
		if n.NotificationID == "" {
			t.Error("expected a notification id")
		}
		if n.GestationalWeeks < 24 || n.GestationalWeeks > 41 {
			t.Errorf("weeks %d outside simulated range", n.GestationalWeeks)
		}
		if n.MunicipalityCode == "" {
			t.Error("expected a municipality code")
		}
		if n.Timestamp.After(now.Add(time.Second)) {
			t.Errorf("seed timestamp %v in the future", n.Timestamp)
		}
		if n.Timestamp.Before(now.Add(-31 * 24 * time.Hour)) {
			t.Errorf("seed timestamp %v older than 30 days", n.Timestamp)
		}
		if n.BirthDate != n.Timestamp.Format("2006-01-02") {
			t.Errorf("birth date %s does not match timestamp %v", n.BirthDate, n.Timestamp)
		}
	}
}

func TestSimulator_Next(t *testing.T) {
	sim := NewSimulator()

	first := sim.Next()
	second := sim.Next()
	if first.NotificationID == second.NotificationID {
		t.Error("expected distinct notification ids")
	}
	if time.Since(first.Timestamp) > time.Minute {
		t.Errorf("expected a fresh timestamp, got %v", first.Timestamp)
	}
}
