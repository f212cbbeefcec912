//go:build !windows

package notification

// showPlatformToast is only reachable on Windows; other platforms log.
func showPlatformToast(title, body string) error { return nil }
