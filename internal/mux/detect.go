package mux

import (
	"fmt"
	"os"
	"os/exec"
)

// Detect picks the multiplexer to drive. Inside tmux ($TMUX set) that is
// the enclosing server. A receiver started elsewhere, e.g. from a login
// script, still drives a running default tmux server.
func Detect() (Multiplexer, error) {
	if os.Getenv("TMUX") != "" {
		return NewTmux(), nil
	}
	if _, err := exec.LookPath("tmux"); err == nil {
		if err := exec.Command("tmux", "has-session").Run(); err == nil {
			return NewTmux(), nil
		}
	}
	return nil, fmt.Errorf("no running tmux server found (start tmux or set $TMUX)")
}

// FromName creates a Multiplexer by name.
func FromName(name string) (Multiplexer, error) {
	switch name {
	case "tmux":
		return NewTmux(), nil
	default:
		return nil, fmt.Errorf("unknown multiplexer: %q (supported: tmux)", name)
	}
}

// CurrentPaneID returns the id of the pane this process runs in, read
// from $TMUX_PANE. ok is false outside tmux.
func CurrentPaneID() (int, bool) {
	v := os.Getenv("TMUX_PANE")
	if v == "" {
		return 0, false
	}
	id, err := parsePaneID(v)
	if err != nil {
		return 0, false
	}
	return id, true
}
