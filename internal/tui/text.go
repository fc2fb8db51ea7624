package tui

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// splitLines splits s on newlines. The result always has at least one element.
func splitLines(s string) []string {
	return strings.Split(s, "\n")
}

// maxLineWidth returns the widest visual line width in s.
func maxLineWidth(s string) int {
	w := 0
	for _, line := range splitLines(s) {
		if lw := ansi.StringWidth(line); lw > w {
			w = lw
		}
	}
	return w
}

// padRight pads s with spaces to the given visual width.
func padRight(s string, width int) string {
	gap := width - ansi.StringWidth(s)
	if gap <= 0 {
		return s
	}
	return s + strings.Repeat(" ", gap)
}

// truncate cuts s to the given visual width, adding an ellipsis when it
// had to cut. Styled input keeps its escapes intact.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "…")
}

// paintAt splices a block of styled text into the canvas with its top left
// corner at column x, row y. Rows outside the canvas are dropped. Each
// affected canvas line is cut at the visual x positions so wide glyphs and
// escape sequences survive on either side of the painted region.
func paintAt(canvas []string, x, y, width int, block string) {
	for i, line := range splitLines(block) {
		row := y + i
		if row < 0 || row >= len(canvas) {
			continue
		}
		target := padRight(canvas[row], width)
		left := ansi.Truncate(target, x, "")
		if lw := ansi.StringWidth(left); lw < x {
			left += strings.Repeat(" ", x-lw)
		}
		pos := x + ansi.StringWidth(line)
		right := ansi.TruncateLeft(target, pos, "")
		if rw := ansi.StringWidth(right); pos+rw < width {
			right += strings.Repeat(" ", width-pos-rw)
		}
		canvas[row] = left + line + right
	}
}
