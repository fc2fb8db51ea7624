package layout

import "math"

// Arrange recomputes every container rect from the output geometry and
// the percent weights. Percentages are treated as relative weights, not
// exact fractions, so rows whose percents drift away from summing to 1
// still fill their axis.
func (t *Tree) Arrange() {
	for _, out := range t.Outputs() {
		for _, ws := range out.children {
			if ws.Kind != KindWorkspace {
				continue
			}
			ws.Rect = out.Rect
			arrangeCon(ws)
		}
	}
}

func arrangeCon(c *Container) {
	tiling := c.TilingChildren()
	switch c.Style {
	case StyleStacked, StyleTabbed:
		for _, ch := range tiling {
			ch.Rect = c.Rect
			arrangeCon(ch)
		}
	default:
		weights := make([]float64, len(tiling))
		for i, ch := range tiling {
			weights[i] = ch.Percent
		}
		if c.Orient == Horizontal {
			widths := weightedSplit(c.Rect.Width, weights)
			x := c.Rect.X
			for i, ch := range tiling {
				ch.Rect = Rect{X: x, Y: c.Rect.Y, Width: widths[i], Height: c.Rect.Height}
				x += widths[i]
				arrangeCon(ch)
			}
		} else {
			heights := weightedSplit(c.Rect.Height, weights)
			y := c.Rect.Y
			for i, ch := range tiling {
				ch.Rect = Rect{X: c.Rect.X, Y: y, Width: c.Rect.Width, Height: heights[i]}
				y += heights[i]
				arrangeCon(ch)
			}
		}
	}
	for _, wrap := range c.FloatingChildren() {
		arrangeCon(wrap)
	}
}

// weightedSplit divides total cells among n children by weight. Zero
// weights fall back to an equal share. Floor rounding leftovers are
// handed out one cell at a time from the front.
func weightedSplit(total int, weights []float64) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}
	if total <= 0 {
		return make([]int, n)
	}
	sum := 0.0
	for i, w := range weights {
		if w <= 0 {
			w = 1.0 / float64(n)
			weights[i] = w
		}
		sum += w
	}
	out := make([]int, n)
	used := 0
	for i, w := range weights {
		cells := int(math.Floor(w / sum * float64(total)))
		out[i] = cells
		used += cells
	}
	for i := 0; used < total; i = (i + 1) % n {
		out[i]++
		used++
	}
	return out
}
