// Package storage owns the screenshot temp directory and the capability
// calls around it: persist a cropped image, hand a copy to the desktop.
package storage

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"screensnip/screenshot"
)

const appDirName = "screensnip"

// ScreenshotDir returns (and creates) the temp directory that holds the
// retained screenshot files.
func ScreenshotDir() (string, error) {
	dir := filepath.Join(xdg.CacheHome, appDirName, "tmp")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot dir: %w", err)
	}
	return dir, nil
}

// TimestampedName builds a unique screenshot file name. Millisecond
// resolution is what keeps rapid consecutive captures from colliding.
func TimestampedName() string {
	return fmt.Sprintf("screenshot-%d.png", time.Now().UnixMilli())
}

// SavePNG persists img to path as PNG.
func SavePNG(img image.Image, path string) error {
	data, err := screenshot.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("failed to persist screenshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to persist screenshot: %w", err)
	}
	return nil
}

// CopyToDesktop copies the file at srcPath into the user's desktop directory
// under a fresh unique name and returns the destination path.
func CopyToDesktop(srcPath string) (string, error) {
	desktop := xdg.UserDirs.Desktop
	if desktop == "" {
		return "", fmt.Errorf("could not resolve desktop directory")
	}

	dst := filepath.Join(desktop, TimestampedName())
	if err := copyFile(srcPath, dst); err != nil {
		return "", fmt.Errorf("failed to save to desktop: %w", err)
	}
	return dst, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
