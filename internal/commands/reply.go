package commands

import "fmt"

// Reply is the structured result of one command handler. Failures are
// data: a false Success plus a reason, never a panic or process exit.
// ContainerID is the payload of handlers that create a container.
type Reply struct {
	Success     bool   `json:"success"`
	Error       string `json:"error,omitempty"`
	ContainerID uint64 `json:"container_id,omitempty"`
}

func done() Reply { return Reply{Success: true} }

func failf(format string, a ...any) Reply {
	return Reply{Error: fmt.Sprintf(format, a...)}
}

func fmtArg(s *string) string {
	if s == nil {
		return "<absent>"
	}
	return fmt.Sprintf("%q", *s)
}
