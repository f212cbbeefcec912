package screenshot

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func testFrame(w, h int) *image.RGBA {
	frame := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			frame.SetRGBA(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 0, A: 255})
		}
	}
	return frame
}

func TestCropExactSize(t *testing.T) {
	frame := testFrame(1920, 1080)

	out, err := Crop(frame, Region{X: 100, Y: 100, Width: 200, Height: 150})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got := out.Bounds(); got.Dx() != 200 || got.Dy() != 150 {
		t.Errorf("Expected 200x150 crop, got %dx%d", got.Dx(), got.Dy())
	}

	// Pixel at crop origin must come from frame (100,100).
	want := frame.RGBAAt(100, 100)
	if got := out.RGBAAt(0, 0); got != want {
		t.Errorf("Crop origin pixel mismatch: got %v, want %v", got, want)
	}
}

func TestCropIsIndependentBuffer(t *testing.T) {
	frame := testFrame(32, 32)
	out, err := Crop(frame, Region{X: 8, Y: 8, Width: 8, Height: 8})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	before := out.RGBAAt(0, 0)
	frame.SetRGBA(8, 8, color.RGBA{R: 250, G: 250, B: 250, A: 255})
	if got := out.RGBAAt(0, 0); got != before {
		t.Error("Crop buffer shares pixels with the source frame")
	}
}

func TestCropOutOfBounds(t *testing.T) {
	frame := testFrame(100, 80)

	cases := []Region{
		{X: -1, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: -5, Width: 10, Height: 10},
		{X: 95, Y: 0, Width: 10, Height: 10},
		{X: 0, Y: 75, Width: 10, Height: 10},
		{X: 0, Y: 0, Width: 101, Height: 80},
		{X: 0, Y: 0, Width: 0, Height: 10},
		{X: 0, Y: 0, Width: 10, Height: -3},
	}
	for _, r := range cases {
		if _, err := Crop(frame, r); !errors.Is(err, ErrOutOfBounds) {
			t.Errorf("Region %+v: expected ErrOutOfBounds, got %v", r, err)
		}
	}
}

func TestCropNonZeroOriginFrame(t *testing.T) {
	// Virtual-screen unions can yield frames whose bounds do not start at
	// (0,0); region coordinates are frame-relative.
	frame := image.NewRGBA(image.Rect(-10, -10, 90, 70))
	frame.SetRGBA(-10, -10, color.RGBA{R: 1, G: 2, B: 3, A: 255})

	out, err := Crop(frame, Region{X: 0, Y: 0, Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if got := out.RGBAAt(0, 0); got != frame.RGBAAt(-10, -10) {
		t.Errorf("Expected frame-relative crop origin, got %v", got)
	}
}

func TestEncodePNGRoundTrip(t *testing.T) {
	frame := testFrame(16, 12)
	data, err := EncodePNG(frame)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Output is not valid PNG: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 16 || b.Dy() != 12 {
		t.Errorf("Decoded size %dx%d, want 16x12", b.Dx(), b.Dy())
	}
}

func TestEncodeDataURLPrefix(t *testing.T) {
	url, err := EncodeDataURL(testFrame(4, 4))
	if err != nil {
		t.Fatalf("EncodeDataURL failed: %v", err)
	}
	if !strings.HasPrefix(url, "data:image/png;base64,") {
		t.Errorf("Unexpected data URL prefix: %q", url[:min(len(url), 30)])
	}
}

func TestCapture(t *testing.T) {
	// Requires a display; just check it does not panic in headless runs.
	if _, err := Capture(); err != nil {
		t.Logf("Failed to capture screenshot (expected headless): %v", err)
	}
}
