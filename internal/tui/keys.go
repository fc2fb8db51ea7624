package tui

import "github.com/slatewm/slate/internal/config"

// Keymap indexes key bindings by binding mode. Chords in the "default" mode
// drive the manager directly; other modes are entered with the mode command
// and keep their own chord table until the next mode switch.
type Keymap struct {
	byMode map[string]map[string]string
	order  map[string][]config.Binding
}

// NewKeymap builds a keymap from configured bindings. A binding without a
// mode lands in "default". The first binding for a mode and key wins,
// later duplicates are dropped.
func NewKeymap(bindings []config.Binding) *Keymap {
	k := &Keymap{
		byMode: make(map[string]map[string]string),
		order:  make(map[string][]config.Binding),
	}
	for _, b := range bindings {
		mode := b.Mode
		if mode == "" {
			mode = "default"
		}
		if k.byMode[mode] == nil {
			k.byMode[mode] = make(map[string]string)
		}
		if _, exists := k.byMode[mode][b.Key]; exists {
			continue
		}
		k.byMode[mode][b.Key] = b.Command
		b.Mode = mode
		k.order[mode] = append(k.order[mode], b)
	}
	return k
}

// Lookup returns the command line bound to key in the given mode.
func (k *Keymap) Lookup(mode, key string) (string, bool) {
	cmd, ok := k.byMode[mode][key]
	return cmd, ok
}

// Chords returns the mode's bindings in registration order.
func (k *Keymap) Chords(mode string) []config.Binding {
	return k.order[mode]
}

// HasMode reports whether any binding targets the given mode.
func (k *Keymap) HasMode(mode string) bool {
	return len(k.byMode[mode]) > 0
}
