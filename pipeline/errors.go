package pipeline

import (
	"errors"

	"screensnip/screenshot"
)

var (
	// ErrCropOutOfBounds reports a selection rectangle that does not lie
	// fully inside the captured frame.
	ErrCropOutOfBounds = screenshot.ErrOutOfBounds

	// ErrPersist reports a failure to write the cropped image to disk.
	ErrPersist = errors.New("failed to persist screenshot")

	// ErrClipboard reports a failed clipboard delivery.
	ErrClipboard = errors.New("clipboard write failed")

	// ErrSave reports a failed copy to the user's desktop.
	ErrSave = errors.New("failed to save capture")
)
