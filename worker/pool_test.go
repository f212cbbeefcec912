package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"screensnip/screenshot"
)

func TestPoolRunsSessionAndReportsResult(t *testing.T) {
	want := errors.New("session outcome")
	p := New(1, func(_ context.Context, r screenshot.Region, action string) error {
		if r.Width != 40 || r.Height != 30 {
			t.Errorf("session got region %+v", r)
		}
		if action != "" {
			t.Errorf("session got action %q, want configured default", action)
		}
		return want
	})
	defer p.Close()

	got := make(chan error, 1)
	ok := p.Submit(context.Background(), screenshot.Region{Width: 40, Height: 30}, "", func(err error) {
		got <- err
	})
	if !ok {
		t.Fatal("submit should succeed on an idle pool")
	}
	select {
	case err := <-got:
		if !errors.Is(err, want) {
			t.Errorf("callback err = %v, want %v", err, want)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("callback never invoked")
	}
}

func TestPoolPassesActionOverride(t *testing.T) {
	actions := make(chan string, 1)
	p := New(1, func(_ context.Context, _ screenshot.Region, action string) error {
		actions <- action
		return nil
	})
	defer p.Close()

	if !p.Submit(context.Background(), screenshot.Region{Width: 1, Height: 1}, "extract", nil) {
		t.Fatal("submit should succeed")
	}
	select {
	case got := <-actions:
		if got != "extract" {
			t.Errorf("session action = %q, want extract", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("session never ran")
	}
}

func TestPoolSubmitDropWhenBusy(t *testing.T) {
	release := make(chan struct{})
	p := New(1, func(context.Context, screenshot.Region, string) error {
		<-release
		return nil
	})
	defer p.Close()
	defer close(release)

	r := screenshot.Region{Width: 1, Height: 1}
	if !p.Submit(context.Background(), r, "", nil) {
		t.Fatal("first submit should succeed")
	}
	// One session in flight plus at most one queued; a further submit must drop.
	ok2 := p.Submit(context.Background(), r, "", nil)
	ok3 := p.Submit(context.Background(), r, "", nil)
	if ok2 && ok3 {
		t.Fatal("expected at least one submit to drop due to full queue")
	}
}
