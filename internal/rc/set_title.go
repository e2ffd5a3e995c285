package rc

import (
	"errors"
	"strings"
)

// SetTabTitle renames tabs.
type SetTabTitle struct{}

// Descriptor describes set_tab_title and its options.
func (SetTabTitle) Descriptor() Descriptor {
	return Descriptor{
		Name:  "set_tab_title",
		Short: "Set the tab title",
		Long: `Set the title for the specified tab(s). If you use the --match option
the title will be set for all matched tabs. By default, only the tab
in which the command is run is affected. If you do not specify a title, the
title of the currently active window in the tab is used.`,
		ArgSpec: "TITLE ...",
		Options: []Option{matchTabOption},
	}
}

// Encode joins args into the title and packs it with the match expression.
func (SetTabTitle) Encode(_ GlobalOptions, opts OptionValues, args []string) (*Payload, error) {
	match, err := opts.GetString("match")
	if err != nil {
		return nil, err
	}
	// An empty title means "use the active window's title".
	return NewPayload().
		SetString(fieldTitle, strings.Join(args, " ")).
		SetString(fieldMatch, match), nil
}

// Decode renames every resolved tab.
func (SetTabTitle) Decode(r Resolver, w Window, p Lookup) error {
	var tabs []Tab
	if match := p.String(fieldMatch); match != "" {
		var err error
		tabs, err = r.MatchTabs(match)
		if err != nil {
			return err
		}
		if len(tabs) == 0 {
			return &MatchError{Expression: match, Kind: "tabs"}
		}
	} else if w != nil {
		tabs = []Tab{r.TabForWindow(w)}
	} else {
		tabs = []Tab{r.ActiveTab()}
	}

	title := p.String(fieldTitle)
	var errs []error
	for _, tab := range tabs {
		// Not every invocation has a deducible tab.
		if tab == nil {
			continue
		}
		if err := tab.SetTitle(title); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetWindowTitle sets pane titles.
type SetWindowTitle struct{}

// Descriptor describes set_window_title and its options.
func (SetWindowTitle) Descriptor() Descriptor {
	return Descriptor{
		Name:  "set_window_title",
		Short: "Set the window title",
		Long: `Set the title for the specified window(s). If you use the --match option
the title will be set for all matched windows. By default, only the window
in which the command is run is affected. If you do not specify a title, the
title is reset.`,
		ArgSpec: "TITLE ...",
		Options: []Option{matchWindowOption},
	}
}

// Encode joins args into the title and packs it with the match expression.
func (SetWindowTitle) Encode(_ GlobalOptions, opts OptionValues, args []string) (*Payload, error) {
	match, err := opts.GetString("match")
	if err != nil {
		return nil, err
	}
	return NewPayload().
		SetString(fieldTitle, strings.Join(args, " ")).
		SetString(fieldMatch, match), nil
}

// Decode sets the title of every resolved window.
func (SetWindowTitle) Decode(r Resolver, w Window, p Lookup) error {
	windows, err := resolveWindows(r, w, p.String(fieldMatch), true)
	if err != nil {
		return err
	}
	title := p.String(fieldTitle)
	return applyWindows(windows, func(w Window) error {
		return w.SetTitle(title)
	})
}
