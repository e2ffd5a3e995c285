package rc

import "errors"

// resolveWindows selects the windows a window-scoped command acts on. A
// non-empty match expression must select at least one window; otherwise
// the target is the arriving window when self is set and known, else the
// active window.
func resolveWindows(r Resolver, w Window, match string, self bool) ([]Window, error) {
	if match != "" {
		windows, err := r.MatchWindows(match)
		if err != nil {
			return nil, err
		}
		if len(windows) == 0 {
			return nil, &MatchError{Expression: match, Kind: "windows"}
		}
		return windows, nil
	}
	if self && w != nil {
		return []Window{w}, nil
	}
	return []Window{r.ActiveWindow()}, nil
}

// applyWindows runs fn on every window in order. A failure on one window
// does not stop the others; all failures are returned together.
func applyWindows(windows []Window, fn func(Window) error) error {
	var errs []error
	for _, w := range windows {
		if w == nil {
			continue
		}
		if err := fn(w); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
