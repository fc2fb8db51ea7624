package alerter

import (
	"fmt"
	"strings"

	"github.com/containrrr/shoutrrr"
)

// Notifier pushes self-test failures through a shoutrrr URL
// (slack://token@channel, discord://token@id, and so on). An empty URL
// disables it.
type Notifier struct {
	url string
}

func NewNotifier(url string) *Notifier {
	return &Notifier{url: strings.TrimSpace(url)}
}

// Enabled reports whether a push channel is configured.
func (n *Notifier) Enabled() bool { return n != nil && n.url != "" }

// Send delivers one message. Disabled notifiers swallow it silently.
func (n *Notifier) Send(message string) error {
	if !n.Enabled() {
		return nil
	}
	if err := shoutrrr.Send(n.url, message); err != nil {
		return fmt.Errorf("notify: %w", err)
	}
	return nil
}
