// Package pipeline turns a selected region into its configured outcome:
// crop, persist, record, then dispatch to exactly one action handler. The
// pipeline owns the mandatory cleanup: whatever branch runs, the processing
// indicator is hidden and the capture lock released.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"screensnip/capture"
	"screensnip/config"
	"screensnip/engine"
	"screensnip/history"
	"screensnip/resultcache"
	"screensnip/screenshot"
	"screensnip/storage"
)

// Clipboard is the OS clipboard capability consumed by the pipeline.
type Clipboard interface {
	WriteText(text string) error
	WriteImage(png []byte) error
}

// Notifier raises a user-visible notification with title and body.
type Notifier interface {
	Notify(title, body string)
}

// Presenter is the presentation-layer collaborator: the processing
// indicator and the preview/result windows.
type Presenter interface {
	ProcessingStarted()
	ProcessingFinished()
	ShowPreview(imagePath string)
	ShowResults(res resultcache.Result)
}

// Pipeline coordinates one capture session from region to outcome.
type Pipeline struct {
	Lock     *capture.Lock
	Slot     *capture.FrameSlot
	History  *history.Ring
	Results  *resultcache.Cache
	Settings *config.Store

	Extractor  engine.TextService
	Translator engine.TextService

	Clipboard Clipboard
	Notifier  Notifier
	Presenter Presenter

	// ScreenshotDir is where cropped captures are persisted.
	ScreenshotDir string

	// CopyToDesktop is injectable for tests; defaults to storage.CopyToDesktop.
	CopyToDesktop func(srcPath string) (string, error)
}

// ProcessRegion runs the full region pipeline with the configured primary
// action. Preconditions: the session holds the capture lock and the handoff
// slot holds a frame. On every exit path, including panics in handlers, the
// processing indicator is hidden and the lock released. The returned error
// is for logging; user-facing failures have already been notified.
func (p *Pipeline) ProcessRegion(ctx context.Context, region screenshot.Region) error {
	return p.ProcessRegionAction(ctx, region, "")
}

// ProcessRegionAction is ProcessRegion with the primary action overridden
// for this session. Delegated run-once requests always extract, regardless
// of what the resident's settings dispatch to; empty means configured.
func (p *Pipeline) ProcessRegionAction(ctx context.Context, region screenshot.Region, action string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Pipeline: panic while processing region: %v", r)
			err = fmt.Errorf("panic while processing region: %v", r)
		}
		p.Presenter.ProcessingFinished()
		p.Lock.End()
	}()

	p.Presenter.ProcessingStarted()
	settings := p.Settings.Snapshot()
	if action != "" {
		settings.PrimaryAction = action
	}

	frame, err := p.Slot.Take()
	if err != nil {
		p.Notifier.Notify("Capture failed", "No captured frame was available.")
		return err
	}

	cropped, err := screenshot.Crop(frame, region)
	if err != nil {
		p.Notifier.Notify("Capture failed", "The selection was outside the captured frame.")
		return err
	}

	imagePath := filepath.Join(p.ScreenshotDir, storage.TimestampedName())
	if err := storage.SavePNG(cropped, imagePath); err != nil {
		p.Notifier.Notify("Capture failed", "Could not save the screenshot.")
		return fmt.Errorf("%w: %v", ErrPersist, err)
	}

	p.History.InsertFront(imagePath)
	log.Printf("Pipeline: screenshot recorded, history size=%d", p.History.Len())

	actionCtx, cancel := context.WithTimeout(ctx, p.engineDeadline(settings))
	defer cancel()

	return p.dispatch(actionCtx, settings, imagePath)
}

// ProcessImage re-runs extraction (optionally with translation) on an
// already-persisted capture. No capture session is involved; the lock is not
// touched. Unknown actions are logged and ignored. The result window opens
// with the refreshed cache afterwards.
func (p *Pipeline) ProcessImage(ctx context.Context, imagePath, action string) error {
	var translate bool
	switch action {
	case config.ActionExtract:
		translate = false
	case config.ActionExtractTranslate:
		translate = true
	default:
		log.Printf("Pipeline: unknown reprocess action %q, ignoring", action)
		return nil
	}

	settings := p.Settings.Snapshot()
	actionCtx, cancel := context.WithTimeout(ctx, p.engineDeadline(settings))
	defer cancel()

	err := p.handleExtract(actionCtx, settings, imagePath, translate)
	if res, ok := p.Results.Load(); ok {
		p.Presenter.ShowResults(res)
	}
	return err
}

func (p *Pipeline) engineDeadline(settings config.Settings) time.Duration {
	sec := settings.EngineDeadlineSec
	if sec <= 0 {
		sec = 60
	}
	return time.Duration(sec) * time.Second
}

// dispatch routes to exactly one action handler. Unrecognized actions were
// already normalized to preview by the settings layer, but the default arm
// keeps that guarantee local too.
func (p *Pipeline) dispatch(ctx context.Context, settings config.Settings, imagePath string) error {
	switch settings.PrimaryAction {
	case config.ActionExtract:
		return p.handleExtract(ctx, settings, imagePath, false)
	case config.ActionExtractTranslate:
		return p.handleExtract(ctx, settings, imagePath, true)
	case config.ActionCopy:
		return p.handleCopy(imagePath)
	case config.ActionSave:
		return p.handleSave(imagePath)
	default:
		return p.handlePreview(imagePath)
	}
}
