// Package viewer renders the preview and result windows. It implements the
// pipeline's presenter; every method is safe to call from any goroutine and
// posts the actual widget work onto the GUI thread.
package viewer

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"screensnip/config"
	"screensnip/popup"
	"screensnip/resultcache"
)

// ReprocessFunc re-runs extraction on a persisted capture. Invoked from a
// button handler, so implementations must not block the GUI thread.
type ReprocessFunc func(imagePath, action string)

type Viewer struct {
	app       fyne.App
	reprocess ReprocessFunc
}

func New() *Viewer {
	return &Viewer{app: app.NewWithID("dev.screensnip.app")}
}

// SetReprocess wires the "Extract Again" / "Translate Again" buttons.
func (v *Viewer) SetReprocess(fn ReprocessFunc) { v.reprocess = fn }

// Run enters the GUI main loop and blocks until Quit.
func (v *Viewer) Run() { v.app.Run() }

func (v *Viewer) Quit() { fyne.Do(v.app.Quit) }

func (v *Viewer) ProcessingStarted() { popup.ShowProcessing() }

func (v *Viewer) ProcessingFinished() { popup.HideProcessing() }

// ShowPreview opens the raw capture in its own window.
func (v *Viewer) ShowPreview(imagePath string) {
	log.Printf("Viewer: preview %s", imagePath)
	fyne.Do(func() {
		w := v.app.NewWindow("Capture Preview")
		img := canvas.NewImageFromFile(imagePath)
		img.FillMode = canvas.ImageFillContain
		w.SetContent(img)
		w.Resize(fyne.NewSize(640, 420))
		w.Show()
	})
}

// ShowResults opens the result window: the capture on top, extracted and
// translated text below, with buttons to re-run the engines on the same
// image.
func (v *Viewer) ShowResults(res resultcache.Result) {
	log.Printf("Viewer: results for %s", res.ImagePath)
	fyne.Do(func() {
		w := v.app.NewWindow("Extraction Result")

		img := canvas.NewImageFromFile(res.ImagePath)
		img.FillMode = canvas.ImageFillContain
		img.SetMinSize(fyne.NewSize(320, 180))

		original := widget.NewMultiLineEntry()
		original.SetText(res.Original)
		original.Wrapping = fyne.TextWrapWord

		texts := container.NewAppTabs(
			container.NewTabItem("Extracted", original),
		)
		if res.Translated != "" {
			translated := widget.NewMultiLineEntry()
			translated.SetText(res.Translated)
			translated.Wrapping = fyne.TextWrapWord
			texts.Append(container.NewTabItem("Translated", translated))
			texts.SelectIndex(1)
		}

		buttons := container.NewHBox(
			widget.NewButton("Extract Again", func() {
				v.runReprocess(res.ImagePath, config.ActionExtract)
			}),
			widget.NewButton("Translate Again", func() {
				v.runReprocess(res.ImagePath, config.ActionExtractTranslate)
			}),
		)

		w.SetContent(container.NewBorder(img, buttons, nil, nil, texts))
		w.Resize(fyne.NewSize(640, 560))
		w.Show()
	})
}

func (v *Viewer) runReprocess(imagePath, action string) {
	if v.reprocess == nil {
		return
	}
	go v.reprocess(imagePath, action)
}
