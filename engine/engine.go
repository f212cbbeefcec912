// Package engine invokes external text engines (extraction, translation)
// and interprets their structured stdout. Each engine is a TextService; the
// pipeline is agnostic to whether the implementation shells out to a
// co-installed executable or runs in-process.
package engine

import (
	"context"
	"path/filepath"
	"runtime"
)

// Request carries the structured input for one engine invocation. Extraction
// engines read ImagePath and PreserveLineBreaks; translation engines read
// Text and TargetLang.
type Request struct {
	ImagePath          string
	Text               string
	TargetLang         string
	PreserveLineBreaks bool
}

// Response is the structured output of a successful invocation.
type Response struct {
	Text string
}

// TextService runs one structured request against an engine and returns its
// result or a typed error from this package.
type TextService interface {
	Name() string
	Invoke(ctx context.Context, req Request) (Response, error)
}

// Engine install layout under the engines directory. The extraction engine
// ships as an archive that unpacks into its own subdirectory and expects to
// be launched with that directory as working directory so it can find its
// co-located model files.
const (
	rapidOCRDirName = "RapidOCR-json_v0.2.0"
	rapidOCRExe     = "RapidOCR-json"
	translatorExe   = "translate_engine"
)

// RapidOCRPath returns the expected extraction engine executable path.
func RapidOCRPath(enginesDir string) string {
	return filepath.Join(enginesDir, rapidOCRDirName, exeName(rapidOCRExe))
}

// TranslatorPath returns the expected translation engine executable path.
func TranslatorPath(enginesDir string) string {
	return filepath.Join(enginesDir, exeName(translatorExe))
}

func exeName(base string) string {
	if runtime.GOOS == "windows" {
		return base + ".exe"
	}
	return base
}
