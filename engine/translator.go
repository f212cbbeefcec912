package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const translateCodeSuccess = 200

// LocalTranslator invokes the local translation engine as a subprocess. The
// engine handles exactly two languages; the source for a run is whichever of
// the pair is not the requested target. Unlike extraction, the entire stdout
// is expected to be one JSON object:
// {"code": int, "translated_text": string|null, "error_message": string|null}.
type LocalTranslator struct {
	ExePath   string
	Languages [2]string
	run       runFunc
}

func NewLocalTranslator(exePath string, languages [2]string) *LocalTranslator {
	return &LocalTranslator{ExePath: exePath, Languages: languages, run: runEngine}
}

func (e *LocalTranslator) Name() string { return "local-translator" }

// SourceFor returns the pair language that is not target. An unknown target
// maps to the pair's first language as source.
func (e *LocalTranslator) SourceFor(target string) string {
	if target == e.Languages[0] {
		return e.Languages[1]
	}
	return e.Languages[0]
}

func (e *LocalTranslator) Invoke(ctx context.Context, req Request) (Response, error) {
	if _, err := os.Stat(e.ExePath); err != nil {
		return Response{}, fmt.Errorf("%w: expected at %s", ErrNotInstalled, e.ExePath)
	}

	source := e.SourceFor(req.TargetLang)
	stdout, stderr, err := e.runner()(ctx, e.ExePath, filepath.Dir(e.ExePath),
		"--text", req.Text, "--source", source, "--target", req.TargetLang)
	if err != nil {
		return Response{}, &ProcessError{Stderr: strings.TrimSpace(decodeNative(stderr)), Err: err}
	}

	text, err := parseTranslation(decodeNative(stdout))
	if err != nil {
		return Response{}, err
	}
	return Response{Text: text}, nil
}

func (e *LocalTranslator) runner() runFunc {
	if e.run != nil {
		return e.run
	}
	return runEngine
}

type translatePayload struct {
	Code           int     `json:"code"`
	TranslatedText *string `json:"translated_text"`
	ErrorMessage   *string `json:"error_message"`
}

func parseTranslation(stdout string) (string, error) {
	var payload translatePayload
	if err := json.Unmarshal([]byte(strings.TrimSpace(stdout)), &payload); err != nil {
		return "", &MalformedOutputError{Output: stdout, Err: err}
	}

	if payload.Code != translateCodeSuccess {
		msg := "unknown translation engine error"
		if payload.ErrorMessage != nil && *payload.ErrorMessage != "" {
			msg = *payload.ErrorMessage
		}
		return "", &ReportedError{Message: msg}
	}

	if payload.TranslatedText == nil || strings.TrimSpace(*payload.TranslatedText) == "" {
		return "", ErrEmptyTranslation
	}
	return *payload.TranslatedText, nil
}
