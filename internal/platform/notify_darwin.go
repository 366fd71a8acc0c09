//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
func Notify(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Body, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}
