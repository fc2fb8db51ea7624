// Package commands turns structured command invocations into container
// tree mutations. A Runner hosts one handler per verb; two dispatcher
// front-ends (the legacy switch and the routing table) map invocations
// onto the same handlers, which is what lets the self-test harness
// compare them call for call.
package commands

import (
	"log"
	"strconv"

	"github.com/slatewm/slate/internal/layout"
	"github.com/slatewm/slate/internal/match"
)

// Spawner hands an exec command line to the host environment. detach
// asks for the child to outlive the pane that started it.
type Spawner interface {
	Start(command string, detach bool) error
}

// Host is the small surface of the interactive shell the command layer
// drives: binding-mode switches and the lifecycle verbs.
type Host interface {
	SwitchMode(name string) error
	Reload() error
	Restart() error
	Quit()
}

// Tap observes every handler entry while a self-test session captures.
// Record returns true when the handler must return without mutating
// anything (the shadow side of the comparison).
type Tap interface {
	Record(handler string, m *match.Match, args ...*string) bool
}

// Runner owns the per-verb handlers. All handlers follow one shape:
// record the call for a capturing tap, resolve the working set, apply
// the mutation per target, mark the tree for re-arrangement, reply.
type Runner struct {
	tree  *layout.Tree
	spawn Spawner
	host  Host
	log   *log.Logger

	// AutoBackAndForth makes switching to the already-visible
	// workspace bounce back to the previous one.
	AutoBackAndForth bool

	tap          Tap
	needsArrange bool
}

func NewRunner(tree *layout.Tree, spawn Spawner, host Host, logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{tree: tree, spawn: spawn, host: host, log: logger}
}

// Tree exposes the container tree the runner mutates.
func (r *Runner) Tree() *layout.Tree { return r.tree }

// SetTap installs or removes (nil) the capture shim.
func (r *Runner) SetTap(t Tap) { r.tap = t }

// record reports the call to an installed tap. A true result means the
// handler must stop before any mutation.
func (r *Runner) record(handler string, m *match.Match, args ...*string) bool {
	if r.tap == nil {
		return false
	}
	return r.tap.Record(handler, m, args...)
}

// targets resolves the working set for one invocation.
func (r *Runner) targets(m *match.Match) []*layout.Container {
	return match.Resolve(m, r.tree.Containers(), r.tree.Focused())
}

// touch marks the tree as needing a re-arrange once the current command
// line finishes.
func (r *Runner) touch() { r.needsArrange = true }

// Settle recomputes the layout if any handler of the finished command
// line mutated the tree. Dispatchers call it once per line.
func (r *Runner) Settle() {
	if r.needsArrange {
		r.tree.Arrange()
		r.needsArrange = false
	}
}

func parseDirection(s string) (layout.Direction, bool) {
	switch s {
	case "left":
		return layout.Left, true
	case "right":
		return layout.Right, true
	case "up":
		return layout.Up, true
	case "down":
		return layout.Down, true
	default:
		return layout.Left, false
	}
}

// parseAmount parses a pixel or percent-point argument. The sign is
// applied by the way token, not here, so bare numbers only.
func parseAmount(s *string) (int, bool) {
	if s == nil {
		return 0, false
	}
	n, err := strconv.Atoi(*s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func strptr(s string) *string { return &s }
