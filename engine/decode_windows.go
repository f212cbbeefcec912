//go:build windows

package engine

import (
	"golang.org/x/text/encoding/simplifiedchinese"
)

// decodeANSI decodes console output produced under a GBK/GB18030 code page,
// which is what the bundled engines emit on zh-CN systems.
func decodeANSI(b []byte) string {
	decoded, err := simplifiedchinese.GB18030.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(decoded)
}
