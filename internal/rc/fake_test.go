package rc

import (
	"errors"
	"strings"

	"github.com/spf13/pflag"
)

type fakeWindow struct {
	id      int
	tab     *fakeTab
	marker  []string
	title   string
	setErr  error
	applied int
	log     *[]int
}

func (w *fakeWindow) ID() int { return w.id }

func (w *fakeWindow) SetMarker(tokens []string) error {
	if w.setErr != nil {
		return w.setErr
	}
	w.marker = tokens
	w.applied++
	record(w.log, w.id)
	return nil
}

func (w *fakeWindow) RemoveMarker() error {
	w.marker = nil
	w.applied++
	record(w.log, w.id)
	return nil
}

func (w *fakeWindow) SetTitle(title string) error {
	w.title = title
	w.applied++
	record(w.log, w.id)
	return nil
}

type fakeTab struct {
	id     int
	title  string
	titled []string
	log    *[]int
}

func (t *fakeTab) ID() int { return t.id }

func (t *fakeTab) SetTitle(title string) error {
	t.title = title
	t.titled = append(t.titled, title)
	record(t.log, t.id)
	return nil
}

func record(log *[]int, id int) {
	if log != nil {
		*log = append(*log, id)
	}
}

// fakeResolver resolves "title:<name>" against window/tab titles and
// "fail:" to an error. Handles attached with track append their id to
// mutated as they change.
type fakeResolver struct {
	windows      []*fakeWindow
	tabs         []*fakeTab
	activeWindow *fakeWindow
	activeTab    *fakeTab
	windowsFor   map[string][]int
	tabsFor      map[string][]int
	matchCalls   int
	mutated      []int
}

// track attaches every window and tab to the resolver's mutation log.
func (r *fakeResolver) track() *fakeResolver {
	for _, w := range r.windows {
		w.log = &r.mutated
	}
	for _, t := range r.tabs {
		t.log = &r.mutated
	}
	return r
}

func (r *fakeResolver) MatchWindows(expr string) ([]Window, error) {
	r.matchCalls++
	if strings.HasPrefix(expr, "fail:") {
		return nil, errors.New("bad expression")
	}
	var out []Window
	for _, id := range r.windowsFor[expr] {
		for _, w := range r.windows {
			if w.id == id {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func (r *fakeResolver) MatchTabs(expr string) ([]Tab, error) {
	r.matchCalls++
	if strings.HasPrefix(expr, "fail:") {
		return nil, errors.New("bad expression")
	}
	var out []Tab
	for _, id := range r.tabsFor[expr] {
		for _, t := range r.tabs {
			if t.id == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (r *fakeResolver) ActiveWindow() Window {
	if r.activeWindow == nil {
		return nil
	}
	return r.activeWindow
}

func (r *fakeResolver) ActiveTab() Tab {
	if r.activeTab == nil {
		return nil
	}
	return r.activeTab
}

func (r *fakeResolver) TabForWindow(w Window) Tab {
	fw, ok := w.(*fakeWindow)
	if !ok || fw.tab == nil {
		return nil
	}
	return fw.tab
}

func (r *fakeResolver) WindowByID(id int) Window {
	for _, w := range r.windows {
		if w.id == id {
			return w
		}
	}
	return nil
}

// flags builds the option set a command declares and parses args into it.
func flags(cmd Command, args ...string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(cmd.Descriptor().Name, pflag.ContinueOnError)
	for _, o := range cmd.Descriptor().Options {
		switch o.Type {
		case OptionBool:
			fs.Bool(o.Name, o.Default == "true", o.Help)
		default:
			fs.String(o.Name, o.Default, o.Help)
		}
	}
	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	return fs
}
