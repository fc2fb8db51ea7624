package tui

import (
	"fmt"
	"log"
	"os/exec"
	"syscall"
)

// host is the program-side counterpart of the command runner. Mode switches
// apply immediately, the lifecycle verbs only raise flags here: the update
// loop consumes them after the dispatch that set them has fully finished,
// so a reload never rebuilds state under a running batch.
type host struct {
	keymap *Keymap
	mode   string

	reload  bool
	restart bool
	quit    bool
}

func (h *host) SwitchMode(name string) error {
	if name != "default" && !h.keymap.HasMode(name) {
		return fmt.Errorf("unknown binding mode: %s", name)
	}
	h.mode = name
	return nil
}

func (h *host) Reload() error {
	h.reload = true
	return nil
}

func (h *host) Restart() error {
	h.restart = true
	return nil
}

func (h *host) Quit() {
	h.quit = true
}

// shellSpawner runs exec command lines through the shell. Detached children
// get their own process group so they survive the manager exiting.
type shellSpawner struct {
	log *log.Logger
}

func (s shellSpawner) Start(command string, detach bool) error {
	cmd := exec.Command("/bin/sh", "-c", command)
	if detach {
		cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			s.log.Printf("warn: exec %q: %v", command, err)
		}
	}()
	return nil
}
