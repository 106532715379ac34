package middleware

import "testing"

func TestServiceAvailabilityStartsInMaintenanceModeWhenRequested(t *testing.T) {
	sa := NewServiceAvailability(0, true)
	if !sa.IsMaintenanceMode() {
		t.Fatalf("expected maintenance mode to be enabled")
	}
}

func TestServiceAvailabilityToggle(t *testing.T) {
	sa := NewServiceAvailability(0, false)
	if sa.IsMaintenanceMode() {
		t.Fatalf("expected maintenance mode to start disabled")
	}
	sa.SetMaintenanceMode(true)
	if !sa.IsMaintenanceMode() {
		t.Fatalf("expected maintenance mode to be enabled after toggling")
	}
}

func TestServiceAvailabilityTracksInFlightRequests(t *testing.T) {
	sa := NewServiceAvailability(10, false)
	if sa.GetInFlightRequests() != 0 {
		t.Fatalf("expected zero in-flight requests at start")
	}
}
