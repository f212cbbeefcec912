package screenshot

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"

	"github.com/kbinani/screenshot"
)

// ErrOutOfBounds is returned by Crop when the requested region does not lie
// fully inside the frame.
var ErrOutOfBounds = errors.New("region outside frame bounds")

// Region is a user-selected rectangle within a captured frame, in frame
// coordinates (origin top-left).
type Region struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Capture grabs the entire virtual screen across all active displays and
// returns the full-frame RGBA buffer.
func Capture() (*image.RGBA, error) {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return nil, fmt.Errorf("no active displays found")
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	img, err := screenshot.CaptureRect(union)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screen: %w", err)
	}
	return img, nil
}

// Crop copies the region out of frame into an independent buffer of exactly
// Width x Height pixels. The region must satisfy 0 <= x,y and
// x+w <= frame width, y+h <= frame height.
func Crop(frame *image.RGBA, r Region) (*image.RGBA, error) {
	if r.Width <= 0 || r.Height <= 0 {
		return nil, fmt.Errorf("%w: invalid dimensions %dx%d", ErrOutOfBounds, r.Width, r.Height)
	}
	b := frame.Bounds()
	if r.X < 0 || r.Y < 0 || r.X+r.Width > b.Dx() || r.Y+r.Height > b.Dy() {
		return nil, fmt.Errorf("%w: region (%d,%d,%d,%d) in frame %dx%d",
			ErrOutOfBounds, r.X, r.Y, r.Width, r.Height, b.Dx(), b.Dy())
	}

	out := image.NewRGBA(image.Rect(0, 0, r.Width, r.Height))
	src := image.Pt(b.Min.X+r.X, b.Min.Y+r.Y)
	draw.Draw(out, out.Bounds(), frame, src, draw.Src)
	return out, nil
}

// EncodePNG encodes img using the fastest compression level. The overlay has
// to appear immediately after the hotkey fires, so encode speed wins over
// output size here.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image as PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodeDataURL encodes img as a PNG data URL for the on-screen overlay.
func EncodeDataURL(img image.Image) (string, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(data), nil
}

// VirtualBounds returns the union rectangle of all active displays, or the
// zero rectangle when none are attached.
func VirtualBounds() image.Rectangle {
	n := screenshot.NumActiveDisplays()
	if n == 0 {
		return image.Rectangle{}
	}
	union := screenshot.GetDisplayBounds(0)
	for i := 1; i < n; i++ {
		union = union.Union(screenshot.GetDisplayBounds(i))
	}
	return union
}

// GetDisplayBounds returns the bounds of the primary display.
func GetDisplayBounds() (image.Rectangle, error) {
	if screenshot.NumActiveDisplays() == 0 {
		return image.Rectangle{}, fmt.Errorf("no active displays found")
	}
	return screenshot.GetDisplayBounds(0), nil
}
