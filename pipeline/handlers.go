package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"

	"screensnip/config"
	"screensnip/engine"
	"screensnip/resultcache"
)

// handleExtract runs text extraction, and optionally translation, against
// the persisted capture. Extraction results are cached and copied to the
// clipboard even when the follow-up translation fails; a translation failure
// is recorded in the cache so the result window can still show it.
func (p *Pipeline) handleExtract(ctx context.Context, settings config.Settings, imagePath string, translate bool) error {
	res, err := p.Extractor.Invoke(ctx, engine.Request{
		ImagePath:          imagePath,
		PreserveLineBreaks: settings.PreserveLineBreaks,
	})
	if err != nil {
		p.Results.Store(resultcache.Result{ImagePath: imagePath})
		p.Notifier.Notify("Text extraction failed", extractionFailureMessage(err))
		return fmt.Errorf("extraction via %s: %w", p.Extractor.Name(), err)
	}

	text := res.Text
	if werr := p.Clipboard.WriteText(text); werr != nil {
		log.Printf("Pipeline: clipboard write failed: %v", werr)
		p.Notifier.Notify("Clipboard error", "Could not copy the extracted text.")
	}

	if !translate {
		p.Results.Store(resultcache.Result{Original: text, ImagePath: imagePath})
		p.Notifier.Notify("Text extracted", "Content copied to clipboard.")
		return nil
	}

	tres, terr := p.Translator.Invoke(ctx, engine.Request{
		Text:       text,
		TargetLang: settings.TargetLang,
	})
	if terr != nil {
		// Extraction already succeeded; keep it and surface the translation
		// failure inside the result window instead of discarding the text.
		msg := translationFailureMessage(terr)
		log.Printf("Pipeline: translation via %s failed: %v", p.Translator.Name(), terr)
		p.Results.Store(resultcache.Result{Original: text, Translated: msg, ImagePath: imagePath})
		p.Notifier.Notify("Translation failed", msg)
		return nil
	}

	if werr := p.Clipboard.WriteText(tres.Text); werr != nil {
		log.Printf("Pipeline: clipboard write failed: %v", werr)
		p.Notifier.Notify("Clipboard error", "Could not copy the translation.")
	}
	p.Results.Store(resultcache.Result{Original: text, Translated: tres.Text, ImagePath: imagePath})
	p.Notifier.Notify("Translation complete", "Translation copied to clipboard.")
	return nil
}

// handleCopy puts the persisted PNG on the clipboard as an image.
func (p *Pipeline) handleCopy(imagePath string) error {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		p.Notifier.Notify("Copy failed", "Could not read the screenshot back.")
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	if err := p.Clipboard.WriteImage(data); err != nil {
		p.Notifier.Notify("Copy failed", "Could not place the image on the clipboard.")
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	p.Notifier.Notify("Screenshot copied", "Image copied to clipboard.")
	return nil
}

// handleSave copies the persisted capture to the user's desktop.
func (p *Pipeline) handleSave(imagePath string) error {
	copyFn := p.CopyToDesktop
	if copyFn == nil {
		p.Notifier.Notify("Save failed", "No save destination is configured.")
		return ErrSave
	}
	dest, err := copyFn(imagePath)
	if err != nil {
		p.Notifier.Notify("Save failed", "Could not save the screenshot to the desktop.")
		return fmt.Errorf("%w: %v", ErrSave, err)
	}
	p.Notifier.Notify("Screenshot saved", dest)
	return nil
}

// handlePreview opens the capture in the preview window. Also the fallback
// for any action value the settings layer did not recognize.
func (p *Pipeline) handlePreview(imagePath string) error {
	if _, err := os.Stat(imagePath); err != nil {
		p.Notifier.Notify("Preview failed", "Could not read the screenshot back.")
		return err
	}
	p.Presenter.ShowPreview(imagePath)
	return nil
}

func extractionFailureMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrNotInstalled):
		return "The extraction engine is not installed."
	case errors.Is(err, engine.ErrNoText):
		return "No text was found in the selection."
	case errors.Is(err, context.DeadlineExceeded):
		return "The extraction engine took too long to respond."
	}
	var reported *engine.ReportedError
	if errors.As(err, &reported) {
		return reported.Message
	}
	return "The extraction engine failed. See the log for details."
}

func translationFailureMessage(err error) string {
	switch {
	case errors.Is(err, engine.ErrNotInstalled):
		return "The translation engine is not installed."
	case errors.Is(err, engine.ErrEmptyTranslation):
		return "The translation engine returned an empty result."
	case errors.Is(err, context.DeadlineExceeded):
		return "The translation engine took too long to respond."
	}
	var reported *engine.ReportedError
	if errors.As(err, &reported) {
		return reported.Message
	}
	return "Translation failed. See the log for details."
}
