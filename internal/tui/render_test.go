package tui

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		currency string
		price    float64
		want     string
	}{
		{"R$", 12, "R$ 12.00"},
		{"$", 7.5, "$ 7.50"},
		{"", 3.456, "3.46"},
	}

	for _, tt := range tests {
		if got := formatPrice(tt.currency, tt.price); got != tt.want {
			t.Errorf("formatPrice(%q, %v) = %q, want %q", tt.currency, tt.price, got, tt.want)
		}
	}
}

func TestTruncateText(t *testing.T) {
	if got := truncateText("short", 10); got != "short" {
		t.Errorf("truncateText() = %q", got)
	}
	if got := truncateText("a much longer text", 8); len([]rune(got)) > 8 {
		t.Errorf("truncateText() = %q, longer than 8", got)
	}
}

func TestTruncateMessage(t *testing.T) {
	msg := strings.Repeat("a", maxStatusLength+20)
	got := truncateMessage(msg)

	if len(got) != maxStatusLength {
		t.Errorf("len = %d, want %d", len(got), maxStatusLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message should end with ...")
	}
}

func TestTruncateMessage_KeepsRunesWhole(t *testing.T) {
	msg := "Created " + strings.Repeat("Crème brûlée ", 20)
	got := truncateMessage(msg)

	if !utf8.ValidString(got) {
		t.Fatalf("truncated message is not valid UTF-8: %q", got)
	}
	if n := utf8.RuneCountInString(got); n != maxStatusLength {
		t.Errorf("rune count = %d, want %d", n, maxStatusLength)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncated message should end with ...")
	}
}

func TestHighlightJSON_KeepsContent(t *testing.T) {
	src := `{"name": "Cake"}`
	got := highlightJSON(src)

	if !strings.Contains(got, "Cake") {
		t.Errorf("highlightJSON() lost content: %q", got)
	}
}

func TestView_BeforeWindowSize(t *testing.T) {
	m, _ := CreateLoadedModel(t, cake())
	m.width = 0

	if m.View() != "Loading..." {
		t.Errorf("View() = %q", m.View())
	}
}
