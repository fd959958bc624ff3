//go:build linux

package notify

import (
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	signalBuffer = 16
)

// dbusNotifier sends notifications via D-Bus.
type dbusNotifier struct {
	conn    *dbus.Conn
	obj     dbus.BusObject
	appName string

	signals     chan *dbus.Signal
	invocations chan Invocation
	quit        chan struct{}
	once        sync.Once
}

// New creates a Notifier that sends desktop notifications via D-Bus under
// appName. Returns a no-op notifier if D-Bus is unavailable.
func New(appName string) (Notifier, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		// D-Bus not available, return no-op notifier (intentional graceful degradation)
		return stubNotifier{}, nil //nolint:nilerr // graceful fallback when D-Bus unavailable
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
		dbus.WithMatchMember("ActionInvoked"),
	); err != nil {
		_ = conn.Close()
		return nil, err
	}

	n := &dbusNotifier{
		conn:        conn,
		obj:         conn.Object(dbusNotifyDest, dbusNotifyPath),
		appName:     appName,
		signals:     make(chan *dbus.Signal, signalBuffer),
		invocations: make(chan Invocation, signalBuffer),
		quit:        make(chan struct{}),
	}
	conn.Signal(n.signals)
	go n.forward()
	return n, nil
}

// forward converts ActionInvoked signals until Shutdown.
func (n *dbusNotifier) forward() {
	defer close(n.invocations)
	for {
		var sig *dbus.Signal
		select {
		case sig = <-n.signals:
		case <-n.quit:
			return
		}
		if sig == nil || sig.Name != dbusNotifyInterface+".ActionInvoked" || len(sig.Body) != 2 {
			continue
		}
		id, ok1 := sig.Body[0].(uint32)
		key, ok2 := sig.Body[1].(string)
		if !ok1 || !ok2 {
			continue
		}
		select {
		case n.invocations <- Invocation{ID: id, Key: key}:
		default:
		}
	}
}

// Notify sends a notification via D-Bus.
func (n *dbusNotifier) Notify(notif Notification) (uint32, error) {
	// Build hints map
	hints := map[string]dbus.Variant{
		"urgency":       dbus.MakeVariant(byte(notif.Urgency)),
		"desktop-entry": dbus.MakeVariant(n.appName),
	}
	if notif.Resident {
		hints["resident"] = dbus.MakeVariant(true)
	}
	if notif.Category != "" {
		hints["category"] = dbus.MakeVariant(notif.Category)
	}
	if notif.Icon != "" {
		hints["image-path"] = dbus.MakeVariant(notif.Icon)
	}

	actions := make([]string, 0, 2*len(notif.Buttons))
	for _, b := range notif.Buttons {
		actions = append(actions, b.Key, b.Label)
	}

	// D-Bus Notify method signature:
	// Notify(app_name, replaces_id, icon, summary, body, actions, hints, timeout) -> id
	call := n.obj.Call(
		dbusNotifyInterface+".Notify",
		0,                // flags
		n.appName,        // app_name
		notif.ReplacesID, // replaces_id
		notif.Icon,       // app_icon (path or icon name)
		notif.Title,      // summary
		notif.Body,       // body
		actions,          // actions
		hints,            // hints
		notif.Timeout,    // expire_timeout
	)

	if call.Err != nil {
		return 0, call.Err
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, err
	}

	return id, nil
}

// Close closes a notification by ID.
func (n *dbusNotifier) Close(id uint32) error {
	call := n.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

func (n *dbusNotifier) Invocations() <-chan Invocation {
	return n.invocations
}

// Shutdown stops signal delivery and closes the private bus connection.
func (n *dbusNotifier) Shutdown() error {
	var err error
	n.once.Do(func() {
		n.conn.RemoveSignal(n.signals)
		close(n.quit)
		err = n.conn.Close()
	})
	return err
}
