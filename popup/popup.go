// Package popup manages the transient "processing" indicator shown while a
// region runs through the pipeline. The indicator is best-effort UI; every
// call is safe when no indicator is visible.
package popup

import (
	"log"
	"sync"
)

var (
	mu      sync.Mutex
	visible bool
)

// ShowProcessing makes the processing indicator visible.
func ShowProcessing() {
	mu.Lock()
	defer mu.Unlock()
	if !visible {
		visible = true
		log.Printf("Popup: processing indicator shown")
	}
}

// HideProcessing hides the indicator. Called unconditionally in pipeline
// cleanup, so it tolerates being called when nothing is shown.
func HideProcessing() {
	mu.Lock()
	defer mu.Unlock()
	if visible {
		visible = false
		log.Printf("Popup: processing indicator hidden")
	}
}

// Visible reports whether the indicator is currently shown.
func Visible() bool {
	mu.Lock()
	defer mu.Unlock()
	return visible
}
