package notify

import "testing"

func TestUrgencyValues(t *testing.T) {
	// Urgency values are fixed by the notification protocol.
	if UrgencyLow != 0 {
		t.Errorf("UrgencyLow = %d, want 0", UrgencyLow)
	}
	if UrgencyNormal != 1 {
		t.Errorf("UrgencyNormal = %d, want 1", UrgencyNormal)
	}
	if UrgencyCritical != 2 {
		t.Errorf("UrgencyCritical = %d, want 2", UrgencyCritical)
	}
}

func TestDisabled(t *testing.T) {
	n := Disabled()
	id, err := n.Notify(Notification{Title: "x"})
	if err != nil || id != 0 {
		t.Errorf("Notify() = %d, %v; want 0, nil", id, err)
	}
	if n.Invocations() != nil {
		t.Error("Invocations() should be nil")
	}
	if err := n.Shutdown(); err != nil {
		t.Errorf("Shutdown() error: %v", err)
	}
}
