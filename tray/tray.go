// Package tray owns the system tray icon and its menu. The menu posts into
// the event loop through the injected handlers; it never touches the capture
// machinery directly.
package tray

import (
	"log"
	"sync"

	"github.com/getlantern/systray"
)

// Handlers are the event-loop entry points the menu drives.
type Handlers struct {
	// CaptureNow requests a new capture session, same as the hotkey.
	CaptureNow func()
	// ShowLastResult reopens the most recent result window.
	ShowLastResult func()
	// Quit asks the application to shut down.
	Quit func()
}

var (
	mu       sync.Mutex
	tooltip  = "ScreenSnip"
	extra    string
	ready    bool
	handlers Handlers
)

// Run starts the tray and blocks until Quit. Must be called from the main
// goroutine on platforms where the tray needs the main thread.
func Run(h Handlers) {
	mu.Lock()
	handlers = h
	mu.Unlock()
	systray.Run(onReady, onExit)
}

// Quit tears the tray down and unblocks Run.
func Quit() { systray.Quit() }

// UpdateTooltip sets the hover text, e.g. to flag an in-flight capture.
func UpdateTooltip(text string) {
	mu.Lock()
	tooltip = text
	full := composedTooltip()
	isReady := ready
	mu.Unlock()
	if isReady {
		systray.SetTooltip(full)
	}
}

// SetAboutExtra appends diagnostic info (like the resident TCP port) to the
// tooltip.
func SetAboutExtra(text string) {
	mu.Lock()
	extra = text
	full := composedTooltip()
	isReady := ready
	mu.Unlock()
	if isReady {
		systray.SetTooltip(full)
	}
}

// composedTooltip joins the base text and the extra line. Caller holds mu.
func composedTooltip() string {
	if extra == "" {
		return tooltip
	}
	return tooltip + "\n" + extra
}

func onReady() {
	mu.Lock()
	ready = true
	tt := composedTooltip()
	h := handlers
	mu.Unlock()

	systray.SetIcon(iconPNG)
	systray.SetTitle("ScreenSnip")
	systray.SetTooltip(tt)

	mCapture := systray.AddMenuItem("Capture Now", "Select a region and process it")
	mResult := systray.AddMenuItem("Show Last Result", "Reopen the most recent result window")
	systray.AddSeparator()
	mQuit := systray.AddMenuItem("Quit", "Exit ScreenSnip")

	go func() {
		for {
			select {
			case <-mCapture.ClickedCh:
				if h.CaptureNow != nil {
					h.CaptureNow()
				}
			case <-mResult.ClickedCh:
				if h.ShowLastResult != nil {
					h.ShowLastResult()
				}
			case <-mQuit.ClickedCh:
				log.Printf("Tray: quit requested")
				if h.Quit != nil {
					h.Quit()
				}
				systray.Quit()
				return
			}
		}
	}()
}

func onExit() {
	mu.Lock()
	ready = false
	mu.Unlock()
}
