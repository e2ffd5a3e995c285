// Package mux provides an abstraction over terminal multiplexers (tmux).
//
// It is the live state behind remote commands: it lists panes and
// windows as they are right now and applies the single mutation each
// command asks for. Nothing here caches state between calls.
package mux

import (
	"context"

	"github.com/timvw/pane-remote/internal/model"
)

// MarkerOption is the pane user option that holds a pane's marker
// specification.
const MarkerOption = "@pane_remote_marker"

// Multiplexer abstracts terminal multiplexer operations.
type Multiplexer interface {
	// Name returns the multiplexer name (e.g., "tmux").
	Name() string

	// ListPanes returns all panes, optionally filtered by a session name regex pattern.
	// An empty filter returns all panes.
	ListPanes(ctx context.Context, filter string) ([]model.Pane, error)

	// ListTabs returns all multiplexer windows in session order.
	ListTabs(ctx context.Context) ([]model.Tab, error)

	// ActivePane returns the numeric id of the pane the most recently
	// active client is looking at. ok is false when no client is attached.
	ActivePane(ctx context.Context) (id int, ok bool, err error)

	// CapturePane captures the visible content of a pane.
	// The target format depends on the multiplexer (e.g., "session:window.pane" for tmux).
	CapturePane(ctx context.Context, target string) (string, error)

	// RenameWindow sets a window's name and disables automatic renaming.
	RenameWindow(ctx context.Context, target, name string) error

	// ResetWindowName hands the window name back to the multiplexer.
	ResetWindowName(ctx context.Context, target string) error

	// SetPaneTitle sets a pane's title.
	SetPaneTitle(ctx context.Context, target, title string) error

	// SetPaneOption sets a user option on a pane.
	SetPaneOption(ctx context.Context, target, key, value string) error

	// UnsetPaneOption removes a user option from a pane.
	UnsetPaneOption(ctx context.Context, target, key string) error
}
