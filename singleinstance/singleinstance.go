// Package singleinstance owns the loopback TCP endpoint that makes the app a
// single resident process and lets later invocations delegate a capture
// request to it instead of starting a second instance.
package singleinstance

import (
	"context"
)

// Server owns the TCP endpoint and answers run-once requests.
type Server interface {
	// Start binds the first port of the configured range and begins
	// accepting client requests. Failure means another resident owns it.
	Start(ctx context.Context) error
	// Port returns the bound TCP port, or 0 if not started.
	Port() int
	// Next returns the next accepted connection, or ctx error.
	Next(ctx context.Context) (Conn, error)
	// Close releases ownership and stops accepting clients.
	Close() error
}

// Conn is one client connection: the parsed request plus the response API.
type Conn interface {
	Request() Request
	// RespondSuccess sends success. In stdout mode the extracted text
	// follows; in clipboard mode text is empty.
	RespondSuccess(text string) error
	RespondError(msg string) error
	Close() error
}

// Request is a single run-once capture request.
type Request struct {
	// OutputToStdout asks for the extracted text on the wire instead of
	// the resident's clipboard.
	OutputToStdout bool
}

// Client delegates a run-once invocation to a resident, if one exists.
type Client interface {
	// TryRunOnce scans the configured port range, performs the handshake,
	// and delegates. If no resident is found it returns delegated=false
	// with a nil error.
	TryRunOnce(ctx context.Context, outputToStdout bool) (delegated bool, text string, err error)
}

func NewServer() Server { return newTCPServer() }

func NewClient() Client { return newTCPClient() }
