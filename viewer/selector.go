package viewer

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"screensnip/screenshot"
)

type selection struct {
	region    screenshot.Region
	cancelled bool
}

// SelectRegion opens a fullscreen overlay over the frozen screen and blocks
// until the user drags out a rectangle or presses Escape. Implements the
// event loop's selector contract.
func (v *Viewer) SelectRegion(ctx context.Context) (screenshot.Region, bool, error) {
	done := make(chan selection, 1)

	fyne.Do(func() {
		w := v.app.NewWindow("Select Region")
		w.SetPadded(false)
		w.SetFullScreen(true)

		finish := func(sel selection) {
			select {
			case done <- sel:
			default:
			}
			w.Close()
		}

		area := newSelectArea(w, func(r screenshot.Region, cancelled bool) {
			finish(selection{region: r, cancelled: cancelled})
		})
		w.SetContent(area)
		w.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
			if ev.Name == fyne.KeyEscape {
				finish(selection{cancelled: true})
			}
		})
		w.SetCloseIntercept(func() {
			finish(selection{cancelled: true})
		})
		w.Show()
	})

	select {
	case <-ctx.Done():
		return screenshot.Region{}, false, ctx.Err()
	case sel := <-done:
		return sel.region, sel.cancelled, nil
	}
}

// selectArea is the drag surface: a dimmed backdrop with a rubber-band
// rectangle that follows the pointer.
type selectArea struct {
	widget.BaseWidget

	win      fyne.Window
	done     func(r screenshot.Region, cancelled bool)
	start    fyne.Position
	cur      fyne.Position
	dragging bool

	dim  *canvas.Rectangle
	band *canvas.Rectangle
}

func newSelectArea(win fyne.Window, done func(screenshot.Region, bool)) *selectArea {
	a := &selectArea{
		win:  win,
		done: done,
		dim:  canvas.NewRectangle(color.NRGBA{A: 0x50}),
		band: canvas.NewRectangle(color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0x40}),
	}
	a.band.StrokeColor = color.NRGBA{R: 0x00, G: 0x78, B: 0xD4, A: 0xFF}
	a.band.StrokeWidth = 1.5
	a.band.Hide()
	a.ExtendBaseWidget(a)
	return a
}

func (a *selectArea) Dragged(ev *fyne.DragEvent) {
	if !a.dragging {
		a.dragging = true
		a.start = ev.Position.Subtract(fyne.NewPos(ev.Dragged.DX, ev.Dragged.DY))
		a.band.Show()
	}
	a.cur = ev.Position
	a.Refresh()
}

func (a *selectArea) DragEnd() {
	if !a.dragging {
		return
	}
	a.dragging = false

	// Convert device-independent coordinates to frame pixels.
	scale := a.win.Canvas().Scale()
	x0, y0 := a.start.X, a.start.Y
	x1, y1 := a.cur.X, a.cur.Y
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	r := screenshot.Region{
		X:      int(x0 * scale),
		Y:      int(y0 * scale),
		Width:  int((x1 - x0) * scale),
		Height: int((y1 - y0) * scale),
	}
	if r.Width < 1 || r.Height < 1 {
		a.done(screenshot.Region{}, true)
		return
	}
	a.done(r, false)
}

func (a *selectArea) CreateRenderer() fyne.WidgetRenderer {
	return &selectAreaRenderer{area: a}
}

type selectAreaRenderer struct {
	area *selectArea
}

func (r *selectAreaRenderer) Layout(size fyne.Size) {
	r.area.dim.Resize(size)
}

func (r *selectAreaRenderer) MinSize() fyne.Size { return fyne.NewSize(1, 1) }

func (r *selectAreaRenderer) Refresh() {
	a := r.area
	if a.dragging {
		x0, y0 := a.start.X, a.start.Y
		x1, y1 := a.cur.X, a.cur.Y
		if x1 < x0 {
			x0, x1 = x1, x0
		}
		if y1 < y0 {
			y0, y1 = y1, y0
		}
		a.band.Move(fyne.NewPos(x0, y0))
		a.band.Resize(fyne.NewSize(x1-x0, y1-y0))
	}
	canvas.Refresh(a)
}

func (r *selectAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.area.dim, r.area.band}
}

func (r *selectAreaRenderer) Destroy() {}
