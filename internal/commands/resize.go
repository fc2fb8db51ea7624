package commands

import (
	"math"

	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// percentFloor is the smallest share a resize may leave either
// participant with.
const percentFloor = 0.05

// machineEpsilon is the float64 machine epsilon.
const machineEpsilon = 2.220446049250313e-16

// definitelyGreaterThan compares under a relative epsilon so rounding
// noise cannot veto a legitimate resize.
func definitelyGreaterThan(a, b float64) bool {
	return (a - b) > math.Max(math.Abs(a), math.Abs(b))*machineEpsilon
}

// Resize grows or shrinks the focused container. Criteria ride along in
// the trace but the resize always targets the focused container: a
// floating ancestor is resized by pixels in place, a tiling container
// trades percent points with the adjacent sibling along the direction's
// axis.
func (r *Runner) Resize(m *match.Match, way, direction string, px, ppt *string) Reply {
	if r.record("resize", m, &way, &direction, px, ppt) {
		return done()
	}

	pixels, ok := parseAmount(px)
	if !ok {
		return failf("cannot parse resize amount %s", fmtArg(px))
	}
	points, ok := parseAmount(ppt)
	if !ok {
		return failf("cannot parse resize amount %s", fmtArg(ppt))
	}
	if way == "shrink" {
		pixels = -pixels
		points = -points
	} else if way != "grow" {
		return failf("unknown resize mode: %s", way)
	}

	focused := r.tree.Focused()
	if wrap := focused.FloatingWrap(); wrap != nil {
		// No minimum-size clamp here; the arrange pass renders
		// whatever the rect says.
		switch direction {
		case "up":
			wrap.Rect.Y -= pixels
			wrap.Rect.Height += pixels
		case "down":
			wrap.Rect.Height += pixels
		case "left":
			wrap.Rect.X -= pixels
			wrap.Rect.Width += pixels
		default:
			wrap.Rect.Width += pixels
		}
		r.touch()
		return done()
	}

	dir, ok := parseDirection(direction)
	if !ok {
		return failf("invalid direction: %s", direction)
	}

	// Skip the levels where a resize has no meaning.
	cur := focused
	for cur.Parent() != nil &&
		(cur.Parent().Style == layout.StyleStacked || cur.Parent().Style == layout.StyleTabbed) {
		cur = cur.Parent()
	}

	// Ascend to the level split along the direction's axis.
	searchOrient := dir.Axis()
	for cur.Kind != layout.KindWorkspace && cur.Kind != layout.KindFloating &&
		cur.Parent().Orient != searchOrient {
		cur = cur.Parent()
	}
	parent := cur.Parent()
	if parent == nil {
		return failf("nothing to resize")
	}
	if parent.Orient != searchOrient {
		return failf("cannot resize in that direction: the focus is in a %s split", parent.Orient)
	}

	siblings := parent.TilingChildren()
	at := -1
	for i, s := range siblings {
		if s == cur {
			at = i
			break
		}
	}
	if at == -1 {
		r.log.Printf("error: resize target detached from its split")
		return failf("nothing to resize")
	}

	var neighbor *layout.Container
	if dir == layout.Up || dir == layout.Left {
		if at > 0 {
			neighbor = siblings[at-1]
		}
	} else {
		if at+1 < len(siblings) {
			neighbor = siblings[at+1]
		}
	}
	if neighbor == nil {
		return failf("no adjacent container in that direction")
	}

	defaultPercent := 1.0 / float64(len(siblings))
	if cur.Percent == 0 {
		cur.Percent = defaultPercent
	}
	if neighbor.Percent == 0 {
		neighbor.Percent = defaultPercent
	}

	delta := float64(points) / 100.0
	newCurrent := cur.Percent + delta
	newNeighbor := neighbor.Percent - delta
	if definitelyGreaterThan(newCurrent, percentFloor) &&
		definitelyGreaterThan(newNeighbor, percentFloor) {
		cur.Percent = newCurrent
		neighbor.Percent = newNeighbor
		r.touch()
	} else {
		r.log.Printf("not resizing, already at minimum size")
	}
	return done()
}
