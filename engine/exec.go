package engine

import (
	"bytes"
	"context"
	"log"
	"os/exec"
)

// runFunc executes an engine binary with the given working directory and
// returns raw stdout/stderr. Injected in tests so parsing is exercised
// without real binaries.
type runFunc func(ctx context.Context, exePath, workDir string, args ...string) (stdout, stderr []byte, err error)

// runEngine is the production runFunc. The context deadline bounds the
// subprocess; on expiry exec kills it and returns the context error.
func runEngine(ctx context.Context, exePath, workDir string, args ...string) ([]byte, []byte, error) {
	cmd := exec.CommandContext(ctx, exePath, args...)
	cmd.Dir = workDir
	hideWindow(cmd)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Printf("Engine: running %s (args=%d, dir=%s)", exePath, len(args), workDir)
	err := cmd.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		err = ctxErr
	}
	return stdout.Bytes(), stderr.Bytes(), err
}
