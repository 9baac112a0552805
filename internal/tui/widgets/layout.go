package widgets

import (
	"math"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Widget is anything that can draw itself into a box.
type Widget interface {
	Render(width, height int) string
}

// VStack stacks items top to bottom, splitting height by Ratios when given.
type VStack struct {
	Items  []Widget
	Gap    int
	Ratios []float64
}

func (v VStack) Render(width, height int) string {
	if len(v.Items) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	usable := max(1, height-max(0, v.Gap*(len(v.Items)-1)))
	spans := splitSpans(usable, len(v.Items), v.Ratios)
	parts := make([]string, 0, len(v.Items)*2)
	for i, item := range v.Items {
		parts = append(parts, item.Render(width, max(1, spans[i])))
		if i < len(v.Items)-1 {
			for g := 0; g < v.Gap; g++ {
				parts = append(parts, "")
			}
		}
	}
	return strings.Join(parts, "\n")
}

// HStack lays items side by side, splitting width by Ratios when given.
type HStack struct {
	Items  []Widget
	Gap    int
	Ratios []float64
}

func (h HStack) Render(width, height int) string {
	if len(h.Items) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	usable := max(1, width-max(0, h.Gap*(len(h.Items)-1)))
	spans := splitSpans(usable, len(h.Items), h.Ratios)

	columns := make([][]string, len(h.Items))
	rows := 0
	for i, item := range h.Items {
		columns[i] = strings.Split(item.Render(max(1, spans[i]), height), "\n")
		if len(columns[i]) > rows {
			rows = len(columns[i])
		}
	}

	gap := strings.Repeat(" ", h.Gap)
	out := make([]string, 0, rows)
	for r := 0; r < rows; r++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			if r < len(col) {
				cells[i] = padRight(col[r], spans[i])
			} else {
				cells[i] = strings.Repeat(" ", spans[i])
			}
		}
		out = append(out, strings.Join(cells, gap))
	}
	return strings.Join(out, "\n")
}

// splitSpans divides total cells among n items. Without ratios the split is
// even, with the remainder handed out left to right.
func splitSpans(total, n int, ratios []float64) []int {
	if n <= 0 {
		return nil
	}
	spans := make([]int, n)
	if len(ratios) != n {
		for i := range spans {
			spans[i] = total / n
		}
		for i := 0; i < total%n; i++ {
			spans[i]++
		}
		return spans
	}
	sum := 0.0
	for _, r := range ratios {
		if r <= 0 {
			r = 1
		}
		sum += r
	}
	used := 0
	for i, r := range ratios {
		if r <= 0 {
			r = 1
		}
		spans[i] = int(math.Floor(float64(total) * r / sum))
		used += spans[i]
	}
	for i := 0; used < total; i = (i + 1) % n {
		spans[i]++
		used++
	}
	return spans
}

func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	s = ansi.Truncate(s, width, "")
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
