package notification

import (
	"log"
	"runtime"
	"unicode/utf8"
)

// Show displays a fire-and-forget notification with a title and body.
// Handler failures surface here as notifications, never as aborts, so Show
// itself must not fail loudly either.
func Show(title, body string) {
	displayBody := truncate(body, 200)

	if runtime.GOOS == "windows" {
		go func() {
			if err := showPlatformToast(title, displayBody); err != nil {
				log.Printf("Notification: failed to show toast: %v", err)
			}
		}()
		return
	}
	log.Printf("Notification: %s - %s", title, displayBody)
}

// truncate limits body to max runes. Cutting on byte offsets would split
// multibyte characters; extracted text is frequently CJK.
func truncate(body string, max int) string {
	if utf8.RuneCountInString(body) <= max {
		return body
	}
	return string([]rune(body)[:max]) + "..."
}
