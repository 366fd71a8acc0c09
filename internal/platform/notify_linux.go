//go:build linux

package platform

import (
	"github.com/godbus/dbus/v5"
)

const (
	notifyDest = "org.freedesktop.Notifications"
	notifyPath = "/org/freedesktop/Notifications"
)

// Notify sends n to the session bus notification daemon.
func Notify(n Notification) error {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return err
	}
	defer conn.Close()

	timeout := int32(-1)
	if n.Timeout > 0 {
		timeout = int32(n.Timeout.Milliseconds())
	}
	hints := map[string]dbus.Variant{}
	if n.Category != "" {
		hints["category"] = dbus.MakeVariant(n.Category)
	}
	obj := conn.Object(notifyDest, dbus.ObjectPath(notifyPath))
	call := obj.Call(notifyDest+".Notify", 0,
		n.AppName, uint32(0), n.IconPath, n.Title, n.Body, []string{}, hints, timeout)
	return call.Err
}
