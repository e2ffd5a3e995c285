package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Pane represents a terminal multiplexer pane. Remote commands call a
// pane a "window".
type Pane struct {
	// ID is the numeric pane id (tmux "%12" -> 12).
	ID int `json:"id"`
	// Target is the fully qualified pane identifier (e.g., "session:0.0").
	Target string `json:"target"`
	// Session is the session name.
	Session string `json:"session"`
	// Window is the window index.
	Window int `json:"window"`
	// WindowID is the numeric id of the containing window (tmux "@3" -> 3).
	WindowID int `json:"window_id"`
	// Pane is the pane index.
	Pane int `json:"pane"`
	// PID is the pane's shell process ID.
	PID int `json:"pid"`
	// Command is the current command running in the pane (e.g., "node", "bash").
	Command string `json:"command"`
	// Title is the pane title.
	Title string `json:"title"`
	// Cwd is the pane's current working directory.
	Cwd string `json:"cwd"`
	// Active is true for the active pane of its window.
	Active bool `json:"active"`
	// Marker is the marker specification currently set on the pane, if any.
	Marker []string `json:"marker,omitempty"`
	// ProcessTree is the list of child processes (command lines) running in the pane.
	ProcessTree []string `json:"process_tree,omitempty"`
}

// Tab represents a multiplexer window: an ordered group of panes.
type Tab struct {
	// ID is the numeric window id (tmux "@3" -> 3).
	ID int `json:"id"`
	// Target is "session:index".
	Target string `json:"target"`
	Session string `json:"session"`
	Index   int    `json:"index"`
	// Name is the window name, shown as the tab title.
	Name string `json:"name"`
	// Active is true for the active window of its session.
	Active bool `json:"active"`
}

// ParseID parses a prefixed multiplexer id such as "%12" or "@3".
func ParseID(prefix byte, s string) (int, error) {
	s = strings.TrimSpace(s)
	if len(s) < 2 || s[0] != prefix {
		return 0, fmt.Errorf("invalid id %q: want %c<n>", s, prefix)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return n, nil
}

// PaneID formats a numeric pane id for the multiplexer.
func PaneID(id int) string {
	return "%" + strconv.Itoa(id)
}

// WindowID formats a numeric window id for the multiplexer.
func WindowID(id int) string {
	return "@" + strconv.Itoa(id)
}
