// Package notify renders the media control surface as a desktop notification
// with transport action buttons.
package notify

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

// Button is a notification action: Key is reported back on invocation.
type Button struct {
	Key   string
	Label string
}

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string   // Summary text (required)
	Body       string   // Body text (optional, supports basic markup)
	Icon       string   // Path to image file or icon name (optional)
	Timeout    int32    // ms, -1 = server default, 0 = never expire
	ReplacesID uint32   // 0 = new notification, >0 = replace existing
	Urgency    Urgency  // Low, Normal, Critical
	Buttons    []Button // Action buttons, in display order
	Resident   bool     // Keep the notification after an action is invoked
	Category   string   // e.g. "x-gnome.music"
}

// Invocation reports that the user pressed a button of notification ID.
type Invocation struct {
	ID  uint32
	Key string
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
	// Invocations delivers pressed buttons. It is closed by Shutdown.
	Invocations() <-chan Invocation
	// Shutdown stops signal handling and releases the connection.
	Shutdown() error
}

// stubNotifier is used when notifications are disabled or unavailable.
type stubNotifier struct{}

// Disabled returns a notifier that does nothing.
func Disabled() Notifier {
	return stubNotifier{}
}

func (stubNotifier) Notify(Notification) (uint32, error) { return 0, nil }
func (stubNotifier) Close(uint32) error                  { return nil }
func (stubNotifier) Invocations() <-chan Invocation      { return nil }
func (stubNotifier) Shutdown() error                     { return nil }
