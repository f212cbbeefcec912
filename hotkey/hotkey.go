// Package hotkey registers global key combinations on the system-wide
// keyboard hook. Callbacks fire on the hook goroutine; callers post into
// their own loop.
package hotkey

import (
	"log"
	"strconv"
	"strings"
	"sync"

	gohook "github.com/robotn/gohook"
)

type keyState struct {
	name     string
	rawcodes []uint16
	pressed  bool
}

type binding struct {
	combo string
	keys  []keyState
	fire  func()
}

// Listen installs the keyboard hook and watches every given combination.
// Combos use the "Ctrl+Alt+Q" form. Invalid combos are logged and skipped.
// A single hook goroutine serves all bindings.
func Listen(bindings map[string]func()) {
	var active []*binding
	for combo, fire := range bindings {
		b := compile(combo, fire)
		if b == nil {
			continue
		}
		active = append(active, b)
	}
	if len(active) == 0 {
		log.Printf("Hotkey: no valid bindings, hook not installed")
		return
	}

	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("PANIC in hotkey goroutine: %v", r)
			}
		}()

		evChan := gohook.Start()
		if evChan == nil {
			log.Printf("Hotkey: gohook.Start() returned nil channel")
			return
		}
		log.Printf("Hotkey: keyboard hook installed for %d bindings", len(active))

		var mu sync.Mutex
		for ev := range evChan {
			if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
				continue
			}
			mu.Lock()
			var fired []*binding
			for _, b := range active {
				if b.track(ev.Kind == gohook.KeyDown, ev.Rawcode) {
					fired = append(fired, b)
				}
			}
			mu.Unlock()
			for _, b := range fired {
				log.Printf("Hotkey: %s detected", b.combo)
				b.fire()
			}
		}
		log.Printf("Hotkey: event channel closed")
	}()
}

// track updates the binding's key state for one event and reports whether
// the full combination just completed. Completing a combo resets its state
// so holding the keys does not retrigger.
func (b *binding) track(down bool, rawcode uint16) bool {
	matched := false
	for i := range b.keys {
		for _, rc := range b.keys[i].rawcodes {
			if rawcode == rc {
				b.keys[i].pressed = down
				matched = true
				break
			}
		}
	}
	if !matched || !down {
		return false
	}
	for i := range b.keys {
		if !b.keys[i].pressed {
			return false
		}
	}
	for i := range b.keys {
		b.keys[i].pressed = false
	}
	return true
}

func compile(combo string, fire func()) *binding {
	if combo == "" || fire == nil {
		return nil
	}
	b := &binding{combo: combo, fire: fire}
	for _, part := range strings.Split(combo, "+") {
		name := normalizeKey(part)
		rawcodes := keyRawcodes(name)
		if len(rawcodes) == 0 {
			log.Printf("Hotkey: cannot map key %q in combo %q, binding skipped", part, combo)
			return nil
		}
		b.keys = append(b.keys, keyState{name: name, rawcodes: rawcodes})
	}
	if len(b.keys) == 0 {
		return nil
	}
	return b
}

func normalizeKey(part string) string {
	name := strings.ToLower(strings.TrimSpace(part))
	switch name {
	case "win", "super", "meta":
		return "cmd"
	case "return":
		return "enter"
	case "escape":
		return "esc"
	}
	return name
}

// keyRawcodes maps a normalized key name to its virtual-key rawcodes.
// Modifiers yield both left and right variants.
func keyRawcodes(name string) []uint16 {
	if len(name) == 1 {
		c := name[0]
		switch {
		case c >= 'a' && c <= 'z':
			return []uint16{uint16(c-'a') + 0x41}
		case c >= '0' && c <= '9':
			return []uint16{uint16(c-'0') + 0x30}
		}
	}
	if len(name) > 1 && name[0] == 'f' {
		if n, err := strconv.Atoi(name[1:]); err == nil && n >= 1 && n <= 24 {
			return []uint16{uint16(0x70 + n - 1)} // VK_F1..VK_F24
		}
	}
	switch name {
	case "ctrl":
		return []uint16{0xA2, 0xA3} // VK_LCONTROL, VK_RCONTROL
	case "alt":
		return []uint16{0xA4, 0xA5} // VK_LMENU, VK_RMENU
	case "shift":
		return []uint16{0xA0, 0xA1} // VK_LSHIFT, VK_RSHIFT
	case "cmd":
		return []uint16{0x5B, 0x5C} // VK_LWIN, VK_RWIN
	case "space":
		return []uint16{0x20}
	case "enter":
		return []uint16{0x0D}
	case "esc":
		return []uint16{0x1B}
	case "tab":
		return []uint16{0x09}
	case "backspace":
		return []uint16{0x08}
	case "delete", "del":
		return []uint16{0x2E}
	case "insert", "ins":
		return []uint16{0x2D}
	case "home":
		return []uint16{0x24}
	case "end":
		return []uint16{0x23}
	case "pageup", "pgup":
		return []uint16{0x21}
	case "pagedown", "pgdn":
		return []uint16{0x22}
	case "left":
		return []uint16{0x25}
	case "up":
		return []uint16{0x26}
	case "right":
		return []uint16{0x27}
	case "down":
		return []uint16{0x28}
	}
	return nil
}
