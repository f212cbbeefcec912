package tray

import _ "embed"

// 16x16 tray icon.
//
//go:embed icon.png
var iconPNG []byte
