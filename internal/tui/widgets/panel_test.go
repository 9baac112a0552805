package widgets

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
)

func TestPanelEmbedsTitle(t *testing.T) {
	out := Panel{Title: "Stats", Content: "three sessions"}.Render(30, 5)
	lines := strings.Split(out, "\n")
	if len(lines) != 5 {
		t.Fatalf("rows = %d, want 5", len(lines))
	}
	if !strings.Contains(ansi.Strip(lines[0]), "Stats") {
		t.Fatalf("title missing from top border: %q", lines[0])
	}
	if !strings.Contains(out, "three sessions") {
		t.Fatalf("content missing from panel")
	}
	for i, line := range lines {
		if w := ansi.StringWidth(line); w != 30 {
			t.Fatalf("row %d width = %d, want 30", i, w)
		}
	}
}

func TestPanelTruncatesContent(t *testing.T) {
	long := strings.Repeat("w", 100)
	out := Panel{Title: "T", Content: long}.Render(20, 4)
	for i, line := range strings.Split(out, "\n") {
		if w := ansi.StringWidth(line); w != 20 {
			t.Fatalf("row %d width = %d, want 20", i, w)
		}
	}
}

func TestPanelUntitled(t *testing.T) {
	out := Panel{Content: "body"}.Render(12, 3)
	lines := strings.Split(out, "\n")
	if len(lines) != 3 {
		t.Fatalf("rows = %d, want 3", len(lines))
	}
	top := ansi.Strip(lines[0])
	if !strings.HasPrefix(top, "╭") || !strings.HasSuffix(top, "╮") {
		t.Fatalf("unexpected top border %q", top)
	}
}
