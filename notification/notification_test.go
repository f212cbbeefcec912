package notification

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestTruncateShortBodyUntouched(t *testing.T) {
	for _, body := range []string{"", "hello", "你好，世界"} {
		if got := truncate(body, 200); got != body {
			t.Errorf("truncate(%q) = %q, want unchanged", body, got)
		}
	}
}

func TestTruncateLongASCII(t *testing.T) {
	body := strings.Repeat("a", 300)
	got := truncate(body, 200)
	if got != strings.Repeat("a", 200)+"..." {
		t.Errorf("truncate cut at %d runes, got %q...", 200, got[:10])
	}
}

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	body := strings.Repeat("漢", 250)
	got := truncate(body, 200)
	if !utf8.ValidString(got) {
		t.Fatal("truncated body is not valid UTF-8")
	}
	if got != strings.Repeat("漢", 200)+"..." {
		t.Errorf("truncate(%d CJK runes) kept %d runes", 250, utf8.RuneCountInString(got)-3)
	}
}
