package widgets

import (
	"strings"
	"testing"
)

func TestRenderPopupKeepsBaseEdges(t *testing.T) {
	rows := make([]string, 9)
	for i := range rows {
		rows[i] = strings.Repeat(".", 24)
	}
	rows[0] = "top-row................."
	rows[8] = "bottom-row.............."
	base := strings.Join(rows, "\n")

	out := RenderPopup(base, "Reset all data?", 24, 9)
	lines := strings.Split(out, "\n")
	if len(lines) != 9 {
		t.Fatalf("rows = %d, want 9", len(lines))
	}
	if !strings.Contains(out, "Reset all data?") {
		t.Fatalf("card content missing")
	}
	if !strings.Contains(lines[0], "top-row") {
		t.Fatalf("top base row lost: %q", lines[0])
	}
	if !strings.Contains(lines[8], "bottom-row") {
		t.Fatalf("bottom base row lost: %q", lines[8])
	}
}

func TestRenderPopupZeroBox(t *testing.T) {
	if out := RenderPopup("base", "card", 0, 0); out != "" {
		t.Fatalf("expected empty render, got %q", out)
	}
}
