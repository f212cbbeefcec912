package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"
)

// Tesseract is the in-process extraction variant. It satisfies the same
// TextService contract as the subprocess engine, so the pipeline does not
// care which one the settings select.
type Tesseract struct {
	Languages []string
}

func NewTesseract(languages ...string) *Tesseract {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	return &Tesseract{Languages: languages}
}

func (e *Tesseract) Name() string { return "tesseract" }

func (e *Tesseract) Invoke(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.Languages...); err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if err := client.SetImage(req.ImagePath); err != nil {
		return Response{}, &ProcessError{Err: err}
	}

	text, err := client.Text()
	if err != nil {
		return Response{}, &ProcessError{Err: err}
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return Response{}, ErrNoText
	}
	if !req.PreserveLineBreaks {
		text = strings.Join(strings.Fields(text), " ")
	}
	return Response{Text: text}, nil
}
