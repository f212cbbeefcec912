package capture

import (
	"errors"
	"image"
	"sync"
)

// ErrEmptyHandoff is returned by Take when no frame is waiting in the slot.
var ErrEmptyHandoff = errors.New("no captured frame in handoff slot")

// FrameSlot passes the full-screen frame from the grab phase to the crop
// phase. It holds zero or one frame; Take empties the slot so the frame is
// consumed at most once. Session discipline (the capture Lock) guarantees no
// two sessions write concurrently, but access is still mutex-guarded so a
// racing Take cannot observe a torn pointer.
type FrameSlot struct {
	mu    sync.Mutex
	frame *image.RGBA
}

// Put stores a frame, overwriting any previous content. Only called while a
// session holds the capture lock.
func (s *FrameSlot) Put(frame *image.RGBA) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = frame
}

// Take removes and returns the stored frame, or ErrEmptyHandoff.
func (s *FrameSlot) Take() (*image.RGBA, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.frame == nil {
		return nil, ErrEmptyHandoff
	}
	f := s.frame
	s.frame = nil
	return f, nil
}

// Drop discards any stored frame. Used when a session is cancelled before
// the crop phase runs.
func (s *FrameSlot) Drop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frame = nil
}
