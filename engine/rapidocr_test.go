package engine

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// fakeRun returns canned process output without launching anything.
func fakeRun(stdout, stderr string, err error) runFunc {
	return func(ctx context.Context, exePath, workDir string, args ...string) ([]byte, []byte, error) {
		return []byte(stdout), []byte(stderr), err
	}
}

// writeFakeExe creates a file standing in for an installed engine binary.
func writeFakeExe(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("Failed to write fake engine: %v", err)
	}
	return p
}

func TestRapidOCRJoinsDetections(t *testing.T) {
	stdout := "[boot]\n{\"code\":100,\"data\":[{\"text\":\"hello\"},{\"text\":\"world\"}]}"

	e := &RapidOCR{ExePath: writeFakeExe(t, "ocr"), run: fakeRun(stdout, "", nil)}

	res, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if res.Text != "hello world" {
		t.Errorf("Expected %q, got %q", "hello world", res.Text)
	}

	res, err = e.Invoke(context.Background(), Request{ImagePath: "x.png", PreserveLineBreaks: true})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if res.Text != "hello\nworld" {
		t.Errorf("Expected %q, got %q", "hello\nworld", res.Text)
	}
}

func TestRapidOCRNoText(t *testing.T) {
	cases := []string{
		`{"code":100,"data":[]}`,
		`{"code":100,"data":[{"text":""},{"text":"  "}]}`,
		`{"code":101,"data":"no detections"}`,
	}
	for _, stdout := range cases {
		e := &RapidOCR{ExePath: writeFakeExe(t, "ocr"), run: fakeRun(stdout, "", nil)}
		if _, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"}); !errors.Is(err, ErrNoText) {
			t.Errorf("stdout %q: expected ErrNoText, got %v", stdout, err)
		}
	}
}

func TestRapidOCRReportedError(t *testing.T) {
	e := &RapidOCR{
		ExePath: writeFakeExe(t, "ocr"),
		run:     fakeRun(`{"code":902,"data":"image read failed"}`, "", nil),
	}
	_, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"})

	var reported *ReportedError
	if !errors.As(err, &reported) {
		t.Fatalf("Expected ReportedError, got %v", err)
	}
	if reported.Message != "image read failed" {
		t.Errorf("Expected engine message, got %q", reported.Message)
	}
}

func TestRapidOCRMalformedOutput(t *testing.T) {
	cases := []string{
		"",
		"banner only, no payload",
		"{not json at all",
		`{"code":100,"data":42}`,
	}
	for _, stdout := range cases {
		e := &RapidOCR{ExePath: writeFakeExe(t, "ocr"), run: fakeRun(stdout, "", nil)}
		_, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"})
		var malformed *MalformedOutputError
		if !errors.As(err, &malformed) {
			t.Errorf("stdout %q: expected MalformedOutputError, got %v", stdout, err)
		}
	}
}

func TestRapidOCRSkipsBannerNoise(t *testing.T) {
	stdout := "RapidOCR v0.2.0\r\nloading models...\r\n{\"code\":100,\"data\":[{\"text\":\"ok\"}]}\r\n"
	e := &RapidOCR{ExePath: writeFakeExe(t, "ocr"), run: fakeRun(stdout, "", nil)}
	res, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"})
	if err != nil {
		t.Fatalf("Invoke failed: %v", err)
	}
	if res.Text != "ok" {
		t.Errorf("Expected %q, got %q", "ok", res.Text)
	}
}

func TestRapidOCRProcessFailure(t *testing.T) {
	e := &RapidOCR{
		ExePath: writeFakeExe(t, "ocr"),
		run:     fakeRun("", "model file missing\n", fmt.Errorf("exit status 3")),
	}
	_, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"})

	var proc *ProcessError
	if !errors.As(err, &proc) {
		t.Fatalf("Expected ProcessError, got %v", err)
	}
	if proc.Stderr != "model file missing" {
		t.Errorf("Expected decoded stderr, got %q", proc.Stderr)
	}
}

func TestRapidOCRNotInstalled(t *testing.T) {
	e := &RapidOCR{
		ExePath: filepath.Join(t.TempDir(), "missing", "RapidOCR-json.exe"),
		run: func(ctx context.Context, exePath, workDir string, args ...string) ([]byte, []byte, error) {
			t.Fatal("Runner must not be called when the executable is absent")
			return nil, nil, nil
		},
	}
	if _, err := e.Invoke(context.Background(), Request{ImagePath: "x.png"}); !errors.Is(err, ErrNotInstalled) {
		t.Errorf("Expected ErrNotInstalled, got %v", err)
	}
}

func TestFirstJSONLine(t *testing.T) {
	if _, ok := firstJSONLine("a\nb\nc"); ok {
		t.Error("Expected no JSON line")
	}
	line, ok := firstJSONLine("noise\n{\"a\":1}\n{\"b\":2}")
	if !ok || line != `{"a":1}` {
		t.Errorf("firstJSONLine = %q, %v", line, ok)
	}
}
