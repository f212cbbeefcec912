package engine

import "unicode/utf8"

// decodeNative converts engine process output to a string. Output that is
// already valid UTF-8 passes through; otherwise the platform's native ANSI
// encoding is assumed (see decode_windows.go).
func decodeNative(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	return decodeANSI(b)
}
