package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// Extraction engine stdout wire contract (v1): the process may print banner
// and log noise; the payload is the first stdout line that begins with "{",
// holding {"code": int, "data": [{"text": string}, ...] | string}. Code 100
// is success, 101 is "no detections". A future engine is free to emit pure
// JSON with no surrounding noise.
const (
	rapidCodeSuccess = 100
	rapidCodeNoText  = 101
)

// RapidOCR invokes the RapidOCR-json extraction engine as a subprocess. The
// working directory is set to the executable's own directory so it finds its
// co-located model files.
type RapidOCR struct {
	ExePath string
	run     runFunc
}

func NewRapidOCR(exePath string) *RapidOCR {
	return &RapidOCR{ExePath: exePath, run: runEngine}
}

func (e *RapidOCR) Name() string { return "rapidocr" }

func (e *RapidOCR) Invoke(ctx context.Context, req Request) (Response, error) {
	if _, err := os.Stat(e.ExePath); err != nil {
		return Response{}, fmt.Errorf("%w: expected at %s", ErrNotInstalled, e.ExePath)
	}

	stdout, stderr, err := e.runner()(ctx, e.ExePath, filepath.Dir(e.ExePath),
		"--image_path="+req.ImagePath)
	if err != nil {
		return Response{}, &ProcessError{Stderr: strings.TrimSpace(decodeNative(stderr)), Err: err}
	}

	text, err := parseExtraction(decodeNative(stdout), req.PreserveLineBreaks)
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text}, nil
}

func (e *RapidOCR) runner() runFunc {
	if e.run != nil {
		return e.run
	}
	return runEngine
}

type rapidPayload struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
}

func parseExtraction(stdout string, preserveLineBreaks bool) (string, error) {
	line, ok := firstJSONLine(stdout)
	if !ok {
		return "", &MalformedOutputError{Output: stdout, Err: fmt.Errorf("no JSON payload line in stdout")}
	}

	var payload rapidPayload
	if err := json.Unmarshal([]byte(line), &payload); err != nil {
		return "", &MalformedOutputError{Output: stdout, Err: err}
	}

	switch payload.Code {
	case rapidCodeSuccess:
		var items []struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(payload.Data, &items); err != nil {
			return "", &MalformedOutputError{Output: stdout, Err: fmt.Errorf("data is not a detection list: %w", err)}
		}
		sep := " "
		if preserveLineBreaks {
			sep = "\n"
		}
		parts := make([]string, 0, len(items))
		for _, it := range items {
			parts = append(parts, it.Text)
		}
		text := strings.Join(parts, sep)
		if strings.TrimSpace(text) == "" {
			return "", ErrNoText
		}
		return text, nil

	case rapidCodeNoText:
		return "", ErrNoText

	default:
		var msg string
		if err := json.Unmarshal(payload.Data, &msg); err != nil || msg == "" {
			msg = fmt.Sprintf("extraction engine error (code %d)", payload.Code)
		}
		log.Printf("Engine: extraction reported code=%d msg=%q", payload.Code, msg)
		return "", &ReportedError{Message: msg}
	}
}

// firstJSONLine returns the first stdout line beginning with "{".
func firstJSONLine(stdout string) (string, bool) {
	for _, line := range strings.Split(stdout, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.HasPrefix(line, "{") {
			return line, true
		}
	}
	return "", false
}
