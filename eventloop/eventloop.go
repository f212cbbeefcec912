// Package eventloop is the single-goroutine coordinator. Hotkeys, tray
// clicks, run-once clients and session completions all arrive as messages;
// the loop serializes them so capture state is only ever touched from one
// goroutine.
package eventloop

import (
	"context"
	"fmt"
	"image"
	"log"

	"screensnip/config"
	"screensnip/hotkey"
	"screensnip/overlay"
	"screensnip/pipeline"
	"screensnip/screenshot"
	"screensnip/singleinstance"
	"screensnip/tray"
	"screensnip/worker"
)

// Loop coordinates capture sessions for the resident process.
type Loop struct {
	pipe     *pipeline.Pipeline
	selector overlay.Selector
	pool     *worker.Pool
	srv      singleinstance.Server

	// grab freezes the full virtual screen; injectable for tests.
	grab func() (*image.RGBA, error)

	results        chan result
	captureCh      chan struct{}
	viewCh         chan int
	defaultTooltip string
}

type result struct {
	err    error
	conn   singleinstance.Conn
	stdout bool
}

func New(pipe *pipeline.Pipeline, sel overlay.Selector) *Loop {
	l := &Loop{
		pipe:           pipe,
		selector:       sel,
		grab:           screenshot.Capture,
		results:        make(chan result, 1),
		captureCh:      make(chan struct{}, 4),
		viewCh:         make(chan int, 4),
		defaultTooltip: "ScreenSnip",
	}
	l.pool = worker.New(0, pipe.ProcessRegionAction)
	return l
}

// SetDefaultTooltip sets the tray tooltip base text.
func (l *Loop) SetDefaultTooltip(tt string) { l.defaultTooltip = tt }

// PostCapture requests a capture session. Safe from any goroutine; excess
// triggers are dropped.
func (l *Loop) PostCapture() {
	select {
	case l.captureCh <- struct{}{}:
	default:
	}
}

// PostView requests the result/history view. Zero reopens the latest
// result; positive steps to older captures, negative to newer.
func (l *Loop) PostView(delta int) {
	select {
	case l.viewCh <- delta:
	default:
	}
}

// RegisterHotkeys binds the capture and view combos to the loop.
func (l *Loop) RegisterHotkeys(captureCombo, viewCombo string) {
	bindings := map[string]func(){}
	if captureCombo != "" {
		bindings[captureCombo] = l.PostCapture
	}
	if viewCombo != "" {
		bindings[viewCombo] = func() { l.PostView(0) }
	}
	hotkey.Listen(bindings)
}

// Run claims single-instance ownership and processes messages until ctx is
// cancelled.
func (l *Loop) Run(ctx context.Context) error {
	l.srv = singleinstance.NewServer()
	if err := l.srv.Start(ctx); err != nil {
		return fmt.Errorf("another instance appears to be running: %w", err)
	}
	if p := l.srv.Port(); p > 0 {
		log.Printf("Eventloop: resident listening on 127.0.0.1:%d", p)
		tray.SetAboutExtra(fmt.Sprintf("Resident TCP port: %d", p))
	}
	defer l.srv.Close()
	defer l.pool.Close()

	reqCh := make(chan singleinstance.Conn, 4)
	go func() {
		for {
			conn, err := l.srv.Next(ctx)
			if err != nil {
				close(reqCh)
				return
			}
			reqCh <- conn
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.captureCh:
			l.handleCapture(ctx)
		case delta := <-l.viewCh:
			l.handleView(delta)
		case conn, ok := <-reqCh:
			if !ok {
				return nil
			}
			l.handleConn(ctx, conn)
		case res := <-l.results:
			l.handleResult(res)
		}
	}
}

func (l *Loop) setBusy(b bool) {
	if b {
		tray.UpdateTooltip(l.defaultTooltip + ": processing...")
	} else {
		tray.UpdateTooltip(l.defaultTooltip)
	}
}

// handleCapture starts a session for a local trigger. A trigger while a
// session is in flight loses the lock race and is dropped silently; no
// queueing, no busy popup.
func (l *Loop) handleCapture(ctx context.Context) {
	if !l.pipe.Lock.TryBegin() {
		log.Printf("Eventloop: capture already in progress, trigger ignored")
		return
	}
	l.setBusy(true)

	if !l.beginSelection(ctx, nil) {
		l.setBusy(false)
	}
}

// handleConn serves a run-once client. Unlike local triggers the client
// gets an explicit busy error, since it is waiting on the wire.
func (l *Loop) handleConn(ctx context.Context, conn singleinstance.Conn) {
	if !l.pipe.Lock.TryBegin() {
		_ = conn.RespondError("Busy, please retry")
		_ = conn.Close()
		return
	}
	l.setBusy(true)

	if !l.beginSelection(ctx, conn) {
		l.setBusy(false)
	}
}

// beginSelection freezes the screen, hands the frame to the pipeline slot,
// runs region selection and submits the session. Returns false when the
// session did not start; in that case the lock has already been released.
func (l *Loop) beginSelection(ctx context.Context, conn singleinstance.Conn) bool {
	abort := func(msg string) {
		if conn != nil {
			_ = conn.RespondError(msg)
			_ = conn.Close()
		}
		l.pipe.Slot.Drop()
		l.pipe.Lock.End()
	}

	frame, err := l.grab()
	if err != nil {
		log.Printf("Eventloop: screen grab failed: %v", err)
		abort("Failed to capture screen: " + err.Error())
		return false
	}
	l.pipe.Slot.Put(frame)

	region, cancelled, err := l.selector.Select(ctx)
	if err != nil {
		log.Printf("Eventloop: region selection failed: %v", err)
		abort("Failed to select region: " + err.Error())
		return false
	}
	if cancelled {
		log.Printf("Eventloop: selection cancelled")
		abort("Selection cancelled")
		return false
	}

	// Delegated clients are promised the extracted text, so their session
	// always runs extraction, whatever the resident's primary action is.
	var stdout bool
	action := ""
	if conn != nil {
		stdout = conn.Request().OutputToStdout
		action = config.ActionExtract
	}
	submitted := l.pool.Submit(ctx, region, action, func(err error) {
		l.results <- result{err: err, conn: conn, stdout: stdout}
	})
	if !submitted {
		abort("Busy, please retry")
		return false
	}
	return true
}

func (l *Loop) handleResult(res result) {
	defer l.setBusy(false)
	if res.conn == nil {
		// Resident path: the pipeline already notified the user.
		return
	}
	defer res.conn.Close()
	if res.err != nil {
		_ = res.conn.RespondError(res.err.Error())
		return
	}
	if res.stdout {
		cached, _ := l.pipe.Results.Load()
		_ = res.conn.RespondSuccess(cached.Original)
		return
	}
	_ = res.conn.RespondSuccess("")
}

// handleView reopens the result window (delta 0) or steps the history view
// cursor and previews the capture under it.
func (l *Loop) handleView(delta int) {
	if delta == 0 {
		if res, ok := l.pipe.Results.Load(); ok {
			l.pipe.Presenter.ShowResults(res)
			return
		}
		if rec, ok := l.pipe.History.Latest(); ok {
			l.pipe.Presenter.ShowPreview(rec.Path)
		}
		return
	}
	if rec, ok := l.pipe.History.Navigate(delta); ok {
		l.pipe.Presenter.ShowPreview(rec.Path)
	}
}
