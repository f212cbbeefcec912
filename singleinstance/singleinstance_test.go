package singleinstance

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"testing"
	"time"
)

func TestServerClientRoundTrip(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv := NewServer()
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback port unavailable in this environment: %v", err)
	}
	defer srv.Close()

	client := NewClient()
	delegatedCh := make(chan struct{})
	var text string
	go func() {
		defer close(delegatedCh)
		delegated, got, err := client.TryRunOnce(ctx, true)
		if err != nil {
			t.Errorf("client: %v", err)
		}
		if !delegated {
			t.Error("expected delegation to the resident")
		}
		text = got
	}()

	conn, err := srv.Next(ctx)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if !conn.Request().OutputToStdout {
		t.Error("expected a stdout-mode request")
	}
	if err := conn.RespondSuccess("extracted text"); err != nil {
		t.Fatalf("respond: %v", err)
	}
	conn.Close()
	<-delegatedCh
	if text != "extracted text" {
		t.Errorf("delegated text = %q", text)
	}
}

func TestServerRejectsUnknownRequest(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv := NewServer()
	if err := srv.Start(ctx); err != nil {
		t.Skipf("loopback port unavailable in this environment: %v", err)
	}
	defer srv.Close()

	conn, err := net.Dial("tcp", fmt.Sprintf("127.0.0.1:%d", srv.Port()))
	if err != nil {
		t.Fatal(err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("GARBAGE\n")); err != nil {
		t.Fatal(err)
	}
	status, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("reading response: %v", err)
	}
	if status != "ERROR\n" {
		t.Errorf("status = %q, want ERROR", status)
	}

	// The stray connection must not surface as a capture request.
	nextCtx, nextCancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer nextCancel()
	if c, err := srv.Next(nextCtx); err == nil {
		c.Close()
		t.Error("garbage request was queued as a capture request")
	}
}

func TestDetectNoResident(t *testing.T) {
	t.Setenv("SCREENSNIP_PORT_START", "49733")
	t.Setenv("SCREENSNIP_PORT_END", "49734")
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if port, found := DetectResidentPort(ctx); found {
		t.Errorf("found unexpected resident on port %d", port)
	}
}

func TestPortRangeClampAndSwap(t *testing.T) {
	t.Setenv("SCREENSNIP_PORT_START", "70000")
	t.Setenv("SCREENSNIP_PORT_END", "80")
	start, end := portRange()
	if start < 1024 || end > 65535 || end < start {
		t.Errorf("portRange() = %d..%d", start, end)
	}
}
