// Package alerter owns the diagnostic viewer process the self-test
// harness spawns on a failure: at most one at a time, completion
// observed asynchronously, force-terminated on shutdown.
package alerter

import (
	"log"
	"os/exec"
	"sync"
	"syscall"
)

// Handle supervises the single external viewer. The mutex exists only
// because the process-exit notification arrives on its own goroutine;
// every caller-facing entry point runs on the update loop.
type Handle struct {
	command string
	log     *log.Logger

	mu     sync.Mutex
	cmd    *exec.Cmd
	onExit func(err error)
}

// NewHandle runs command with the report path as its one argument.
// An empty command selects the bundled viewer.
func NewHandle(command string, logger *log.Logger) *Handle {
	if command == "" {
		command = "slate-alert"
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Handle{command: command, log: logger}
}

// OnExit registers the completion callback. It is delivered off the
// update loop, with the viewer's Wait error.
func (h *Handle) OnExit(fn func(err error)) {
	h.mu.Lock()
	h.onExit = fn
	h.mu.Unlock()
}

// Launch starts the viewer on a report file. While one viewer is still
// running the launch is a suppressed duplicate, not an error.
func (h *Handle) Launch(path string) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd != nil {
		h.log.Printf("warn: viewer already open, not launching another for %s", path)
		return nil
	}
	cmd := exec.Command(h.command, path)
	// Its own process group, so terminal signals aimed at the manager
	// leave the viewer alone.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if err := cmd.Start(); err != nil {
		return err
	}
	h.cmd = cmd
	go h.watch(cmd)
	return nil
}

func (h *Handle) watch(cmd *exec.Cmd) {
	err := cmd.Wait()
	h.mu.Lock()
	if h.cmd == cmd {
		h.cmd = nil
	}
	fn := h.onExit
	h.mu.Unlock()
	if err != nil {
		h.log.Printf("warn: viewer exited: %v", err)
	}
	if fn != nil {
		fn(err)
	}
}

// Active reports whether a viewer is still running.
func (h *Handle) Active() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.cmd != nil
}

// Kill force-terminates a still-running viewer. Called on shutdown so
// the viewer is not orphaned.
func (h *Handle) Kill() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cmd != nil && h.cmd.Process != nil {
		if err := h.cmd.Process.Kill(); err != nil {
			h.log.Printf("warn: kill viewer: %v", err)
		}
	}
}
