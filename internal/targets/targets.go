// Package targets resolves remote-command targets against live
// multiplexer state.
//
// A Snapshot is taken per request and discarded afterwards, so every
// command sees the panes and windows as they are when it arrives.
package targets

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/timvw/pane-remote/internal/marker"
	"github.com/timvw/pane-remote/internal/match"
	"github.com/timvw/pane-remote/internal/model"
	"github.com/timvw/pane-remote/internal/mux"
	"github.com/timvw/pane-remote/internal/rc"
)

// Snapshot is the multiplexer state for one request. It implements
// rc.Resolver; mutations go straight to the multiplexer.
type Snapshot struct {
	// ctx is the request context, used for the mutating calls handles make.
	ctx   context.Context
	mux   mux.Multiplexer
	panes []model.Pane
	tabs  []model.Tab

	activePane int
	hasActive  bool
}

var _ rc.Resolver = (*Snapshot)(nil)

// Load lists panes, windows and the active pane.
func Load(ctx context.Context, m mux.Multiplexer) (*Snapshot, error) {
	panes, err := m.ListPanes(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list panes: %w", err)
	}
	tabs, err := m.ListTabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list windows: %w", err)
	}
	active, ok, err := m.ActivePane(ctx)
	if err != nil {
		return nil, fmt.Errorf("active pane: %w", err)
	}
	return &Snapshot{
		ctx:        ctx,
		mux:        m,
		panes:      panes,
		tabs:       tabs,
		activePane: active,
		hasActive:  ok,
	}, nil
}

// Panes returns the panes in the snapshot.
func (s *Snapshot) Panes() []model.Pane { return s.panes }

// Tabs returns the windows in the snapshot.
func (s *Snapshot) Tabs() []model.Tab { return s.tabs }

// IsActive reports whether pane id is the active pane.
func (s *Snapshot) IsActive(id int) bool { return s.hasActive && s.activePane == id }

// MatchWindows returns the panes expr selects, in list order.
func (s *Snapshot) MatchWindows(expr string) ([]rc.Window, error) {
	q, err := match.Compile(expr, match.WindowFields)
	if err != nil {
		return nil, err
	}
	subjects := make([]paneSubject, len(s.panes))
	for i, p := range s.panes {
		subjects[i] = paneSubject{pane: p, active: s.IsActive(p.ID)}
	}
	var out []rc.Window
	for _, sub := range match.Filter(q, subjects) {
		out = append(out, &window{s: s, pane: sub.pane})
	}
	return out, nil
}

// MatchTabs returns the windows expr selects, in list order.
func (s *Snapshot) MatchTabs(expr string) ([]rc.Tab, error) {
	q, err := match.Compile(expr, match.TabFields)
	if err != nil {
		return nil, err
	}
	subjects := make([]tabSubject, len(s.tabs))
	for i, t := range s.tabs {
		subjects[i] = tabSubject{tab: t, panes: s.panesIn(t.ID), active: s.IsActive}
	}
	var out []rc.Tab
	for _, sub := range match.Filter(q, subjects) {
		out = append(out, &tab{s: s, tab: sub.tab})
	}
	return out, nil
}

// ActiveWindow returns the active pane, or nil without an attached client.
func (s *Snapshot) ActiveWindow() rc.Window {
	if !s.hasActive {
		return nil
	}
	return s.WindowByID(s.activePane)
}

// ActiveTab returns the window holding the active pane, or nil.
func (s *Snapshot) ActiveTab() rc.Tab {
	w := s.ActiveWindow()
	if w == nil {
		return nil
	}
	return s.TabForWindow(w)
}

// TabForWindow returns the window containing pane w, or nil.
func (s *Snapshot) TabForWindow(w rc.Window) rc.Tab {
	if w == nil {
		return nil
	}
	p, ok := s.pane(w.ID())
	if !ok {
		return nil
	}
	for _, t := range s.tabs {
		if t.ID == p.WindowID {
			return &tab{s: s, tab: t}
		}
	}
	return nil
}

// WindowByID returns the pane with the given id, or nil.
func (s *Snapshot) WindowByID(id int) rc.Window {
	p, ok := s.pane(id)
	if !ok {
		return nil
	}
	return &window{s: s, pane: p}
}

func (s *Snapshot) pane(id int) (model.Pane, bool) {
	for _, p := range s.panes {
		if p.ID == id {
			return p, true
		}
	}
	return model.Pane{}, false
}

func (s *Snapshot) panesIn(windowID int) []model.Pane {
	var out []model.Pane
	for _, p := range s.panes {
		if p.WindowID == windowID {
			out = append(out, p)
		}
	}
	return out
}

// window is a pane handle.
type window struct {
	s    *Snapshot
	pane model.Pane
}

func (w *window) ID() int { return w.pane.ID }

// SetMarker stores the marker tokens on the pane. Tokens are validated
// again here since the receiver cannot trust the client did.
func (w *window) SetMarker(tokens []string) error {
	if _, err := marker.ParseTokens(tokens); err != nil {
		return err
	}
	data, err := json.Marshal(tokens)
	if err != nil {
		return err
	}
	return w.s.mux.SetPaneOption(w.s.ctx, model.PaneID(w.pane.ID), mux.MarkerOption, string(data))
}

func (w *window) RemoveMarker() error {
	return w.s.mux.UnsetPaneOption(w.s.ctx, model.PaneID(w.pane.ID), mux.MarkerOption)
}

func (w *window) SetTitle(title string) error {
	return w.s.mux.SetPaneTitle(w.s.ctx, model.PaneID(w.pane.ID), title)
}

// tab is a multiplexer window handle.
type tab struct {
	s   *Snapshot
	tab model.Tab
}

func (t *tab) ID() int { return t.tab.ID }

// SetTitle renames the window. An empty title means "use the active
// pane's title"; without one the multiplexer names the window itself.
func (t *tab) SetTitle(title string) error {
	target := model.WindowID(t.tab.ID)
	if title == "" {
		for _, p := range t.s.panesIn(t.tab.ID) {
			if p.Active && p.Title != "" {
				return t.s.mux.RenameWindow(t.s.ctx, target, p.Title)
			}
		}
		return t.s.mux.ResetWindowName(t.s.ctx, target)
	}
	return t.s.mux.RenameWindow(t.s.ctx, target, title)
}

type paneSubject struct {
	pane   model.Pane
	active bool
}

func (p paneSubject) FieldValues(field string) []string {
	switch field {
	case "id":
		return []string{strconv.Itoa(p.pane.ID)}
	case "title":
		return []string{p.pane.Title}
	case "pid":
		return []string{strconv.Itoa(p.pane.PID)}
	case "cwd":
		return []string{p.pane.Cwd}
	case "cmdline":
		vals := []string{p.pane.Command}
		for _, proc := range p.pane.ProcessTree {
			vals = append(vals, strings.TrimSpace(proc))
		}
		return vals
	case "num":
		return []string{strconv.Itoa(p.pane.Pane)}
	case "session":
		return []string{p.pane.Session}
	case "state":
		if p.active {
			return []string{"active"}
		}
	}
	return nil
}

type tabSubject struct {
	tab    model.Tab
	panes  []model.Pane
	active func(paneID int) bool
}

func (t tabSubject) FieldValues(field string) []string {
	switch field {
	case "id":
		return []string{strconv.Itoa(t.tab.ID)}
	case "index":
		return []string{strconv.Itoa(t.tab.Index)}
	case "title":
		return []string{t.tab.Name}
	case "session":
		return []string{t.tab.Session}
	case "window_id", "window_title", "state":
		var vals []string
		for _, p := range t.panes {
			switch field {
			case "window_id":
				vals = append(vals, strconv.Itoa(p.ID))
			case "window_title":
				vals = append(vals, p.Title)
			case "state":
				if t.active(p.ID) {
					vals = append(vals, "active")
				}
			}
		}
		return vals
	}
	return nil
}
