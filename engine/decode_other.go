//go:build !windows

package engine

import (
	"golang.org/x/text/encoding/charmap"
)

// decodeANSI is a best-effort fallback for non-UTF-8 output on platforms
// where the engines would run under a legacy locale.
func decodeANSI(b []byte) string {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
