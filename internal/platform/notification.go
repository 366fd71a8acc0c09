// Package platform delivers desktop notifications with whatever the host OS
// provides.
package platform

import "time"

// Notification is one desktop notification.
type Notification struct {
	// AppName identifies the sender to the notification daemon.
	AppName string
	Title   string
	Body    string
	// IconPath points at an image file shown next to the message where
	// supported.
	IconPath string
	// Category is a freedesktop category hint such as "transfer.complete".
	Category string
	// Zero lets the platform decide.
	Timeout time.Duration
}
