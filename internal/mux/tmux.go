package mux

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"

	"github.com/timvw/pane-remote/internal/model"
)

// Tmux implements the Multiplexer interface for tmux.
type Tmux struct{}

// NewTmux creates a new tmux multiplexer.
func NewTmux() *Tmux {
	return &Tmux{}
}

// Name returns "tmux".
func (t *Tmux) Name() string {
	return "tmux"
}

// paneFormat lists one pane per line. The title goes last because it is
// the only free-form field and may itself contain tabs.
var paneFormat = strings.Join([]string{
	"#{pane_id}",
	"#{session_name}:#{window_index}.#{pane_index}",
	"#{window_id}",
	"#{pane_pid}",
	"#{pane_current_command}",
	"#{pane_current_path}",
	"#{pane_active}",
	"#{" + MarkerOption + "}",
	"#{pane_title}",
}, "\t")

const tabFormat = "#{window_id}\t#{session_name}:#{window_index}\t#{window_active}\t#{window_name}"

// ListPanes returns all tmux panes, optionally filtered by session name pattern.
func (t *Tmux) ListPanes(ctx context.Context, filter string) ([]model.Pane, error) {
	out, err := t.run(ctx, "list-panes", "-a", "-F", paneFormat)
	if err != nil {
		return nil, fmt.Errorf("tmux list-panes: %w", err)
	}

	var re *regexp.Regexp
	if filter != "" {
		re, err = regexp.Compile(filter)
		if err != nil {
			return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
		}
	}

	procs := snapshotProcesses()
	var panes []model.Pane
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		pane, err := parsePaneLine(line)
		if err != nil {
			continue
		}
		if re != nil && !re.MatchString(pane.Session) {
			continue
		}
		pane.ProcessTree = procs.tree(pane.PID)
		panes = append(panes, pane)
	}

	return panes, nil
}

// ListTabs returns all tmux windows across sessions.
func (t *Tmux) ListTabs(ctx context.Context) ([]model.Tab, error) {
	out, err := t.run(ctx, "list-windows", "-a", "-F", tabFormat)
	if err != nil {
		return nil, fmt.Errorf("tmux list-windows: %w", err)
	}

	var tabs []model.Tab
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		tab, err := parseTabLine(line)
		if err != nil {
			continue
		}
		tabs = append(tabs, tab)
	}
	return tabs, nil
}

// ActivePane returns the pane shown by the most recently active client.
func (t *Tmux) ActivePane(ctx context.Context) (int, bool, error) {
	out, err := t.run(ctx, "display-message", "-p", "#{pane_id}")
	if err != nil {
		// No attached client is an expected state for a detached server.
		return 0, false, nil
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return 0, false, nil
	}
	id, err := parsePaneID(out)
	if err != nil {
		return 0, false, err
	}
	return id, true, nil
}

// CapturePane captures the visible content of a tmux pane.
// Uses -p (stdout) and -J (joined, unwraps lines).
func (t *Tmux) CapturePane(ctx context.Context, target string) (string, error) {
	out, err := t.run(ctx, "capture-pane", "-t", target, "-p", "-J")
	if err != nil {
		return "", fmt.Errorf("tmux capture-pane -t %s: %w", target, err)
	}
	return out, nil
}

// RenameWindow renames a tmux window.
func (t *Tmux) RenameWindow(ctx context.Context, target, name string) error {
	if _, err := t.run(ctx, "rename-window", "-t", target, name); err != nil {
		return fmt.Errorf("tmux rename-window -t %s: %w", target, err)
	}
	return nil
}

// ResetWindowName turns automatic-rename back on for a window.
func (t *Tmux) ResetWindowName(ctx context.Context, target string) error {
	if _, err := t.run(ctx, "set-window-option", "-t", target, "automatic-rename", "on"); err != nil {
		return fmt.Errorf("tmux set-window-option -t %s: %w", target, err)
	}
	return nil
}

// SetPaneTitle sets the title of a tmux pane.
func (t *Tmux) SetPaneTitle(ctx context.Context, target, title string) error {
	if _, err := t.run(ctx, "select-pane", "-t", target, "-T", title); err != nil {
		return fmt.Errorf("tmux select-pane -t %s -T: %w", target, err)
	}
	return nil
}

// SetPaneOption sets a pane-scoped user option.
func (t *Tmux) SetPaneOption(ctx context.Context, target, key, value string) error {
	if _, err := t.run(ctx, "set-option", "-p", "-t", target, key, value); err != nil {
		return fmt.Errorf("tmux set-option -p -t %s %s: %w", target, key, err)
	}
	return nil
}

// UnsetPaneOption removes a pane-scoped user option.
func (t *Tmux) UnsetPaneOption(ctx context.Context, target, key string) error {
	if _, err := t.run(ctx, "set-option", "-p", "-u", "-t", target, key); err != nil {
		return fmt.Errorf("tmux set-option -p -u -t %s %s: %w", target, key, err)
	}
	return nil
}

// run executes a tmux command and returns its stdout.
func (t *Tmux) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "tmux", args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("%w: %s", err, string(exitErr.Stderr))
		}
		return "", err
	}
	return string(out), nil
}

// parsePaneLine parses one line of paneFormat output.
func parsePaneLine(line string) (model.Pane, error) {
	parts := strings.SplitN(line, "\t", 9)
	if len(parts) != 9 {
		return model.Pane{}, fmt.Errorf("invalid pane line %q: want 9 fields, got %d", line, len(parts))
	}

	pane, err := parseTarget(parts[1])
	if err != nil {
		return model.Pane{}, err
	}
	if pane.ID, err = parsePaneID(parts[0]); err != nil {
		return model.Pane{}, err
	}
	if pane.WindowID, err = model.ParseID('@', parts[2]); err != nil {
		return model.Pane{}, err
	}
	pane.PID, _ = strconv.Atoi(parts[3])
	pane.Command = parts[4]
	pane.Cwd = parts[5]
	pane.Active = parts[6] == "1"
	if parts[7] != "" {
		var tokens []string
		if err := json.Unmarshal([]byte(parts[7]), &tokens); err == nil {
			pane.Marker = tokens
		}
	}
	pane.Title = parts[8]
	return pane, nil
}

// parseTabLine parses one line of tabFormat output.
func parseTabLine(line string) (model.Tab, error) {
	parts := strings.SplitN(line, "\t", 4)
	if len(parts) != 4 {
		return model.Tab{}, fmt.Errorf("invalid window line %q: want 4 fields, got %d", line, len(parts))
	}
	id, err := model.ParseID('@', parts[0])
	if err != nil {
		return model.Tab{}, err
	}
	colonIdx := strings.LastIndex(parts[1], ":")
	if colonIdx < 0 {
		return model.Tab{}, fmt.Errorf("invalid window target %q: missing ':'", parts[1])
	}
	index, err := strconv.Atoi(parts[1][colonIdx+1:])
	if err != nil {
		return model.Tab{}, fmt.Errorf("invalid window index in %q: %w", parts[1], err)
	}
	return model.Tab{
		ID:      id,
		Target:  parts[1],
		Session: parts[1][:colonIdx],
		Index:   index,
		Active:  parts[2] == "1",
		Name:    parts[3],
	}, nil
}

func parsePaneID(s string) (int, error) {
	return model.ParseID('%', s)
}

// parseTarget parses a tmux target string "session:window.pane" into a Pane.
func parseTarget(target string) (model.Pane, error) {
	colonIdx := strings.LastIndex(target, ":")
	if colonIdx < 0 {
		return model.Pane{}, fmt.Errorf("invalid target %q: missing ':'", target)
	}

	session := target[:colonIdx]
	rest := target[colonIdx+1:]

	dotIdx := strings.LastIndex(rest, ".")
	if dotIdx < 0 {
		return model.Pane{}, fmt.Errorf("invalid target %q: missing '.'", target)
	}

	window, err := strconv.Atoi(rest[:dotIdx])
	if err != nil {
		return model.Pane{}, fmt.Errorf("invalid window index in %q: %w", target, err)
	}

	pane, err := strconv.Atoi(rest[dotIdx+1:])
	if err != nil {
		return model.Pane{}, fmt.Errorf("invalid pane index in %q: %w", target, err)
	}

	return model.Pane{
		Target:  target,
		Session: session,
		Window:  window,
		Pane:    pane,
	}, nil
}
