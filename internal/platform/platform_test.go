package platform

import (
	"strings"
	"testing"
	"time"
)

func TestExpireMillis(t *testing.T) {
	tests := []struct {
		timeout time.Duration
		want    int32
	}{
		{0, 5000},
		{-time.Second, -1},
		{1500 * time.Millisecond, 1500},
	}
	for _, tc := range tests {
		if got := (Options{Timeout: tc.timeout}).expireMillis(); got != tc.want {
			t.Errorf("timeout %s: got %d, want %d", tc.timeout, got, tc.want)
		}
	}
}

func TestToastScript(t *testing.T) {
	plain := toastScript("Snap", "it's saved", "")
	if !strings.Contains(plain, "ToastText02") || strings.Contains(plain, `"image"`) {
		t.Fatalf("unexpected plain script: %s", plain)
	}
	if !strings.Contains(plain, "'it''s saved'") {
		t.Fatalf("body not quoted: %s", plain)
	}
	withIcon := toastScript("Snap", "body", `C:\shot.png`)
	if !strings.Contains(withIcon, "ToastImageAndText02") || !strings.Contains(withIcon, `'C:\shot.png'`) {
		t.Fatalf("unexpected icon script: %s", withIcon)
	}
}
