// Package render formats panes, windows and marker matches for the
// terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/timvw/pane-remote/internal/marker"
	"github.com/timvw/pane-remote/internal/model"
)

// Tree writes every window followed by its panes. isActive reports
// whether a pane is the one the attached client is looking at.
func Tree(w io.Writer, st Styles, tabs []model.Tab, panes []model.Pane, isActive func(paneID int) bool) error {
	byWindow := make(map[int][]model.Pane)
	for _, p := range panes {
		byWindow[p.WindowID] = append(byWindow[p.WindowID], p)
	}

	for _, t := range tabs {
		header := fmt.Sprintf("%s %s %s", model.WindowID(t.ID), t.Target, t.Name)
		if _, err := fmt.Fprintln(w, st.header.Render(header)); err != nil {
			return err
		}
		for _, p := range byWindow[t.ID] {
			if _, err := fmt.Fprintln(w, "  "+paneLine(st, p, isActive(p.ID))); err != nil {
				return err
			}
		}
	}
	return nil
}

func paneLine(st Styles, p model.Pane, active bool) string {
	id := st.dim.Render(model.PaneID(p.ID))
	if active {
		id = st.active.Render(model.PaneID(p.ID) + "*")
	}
	parts := []string{
		id,
		st.text.Render(p.Title),
		st.dim.Render(fmt.Sprintf("(%s) %s", p.Command, p.Cwd)),
	}
	if len(p.Marker) > 0 {
		parts = append(parts, st.Mark(1).Render("marker: "+strings.Join(p.Marker, " ")))
	}
	return strings.Join(parts, " ")
}

// Highlight renders line with each span in its marker group's style.
func Highlight(st Styles, line string, spans []marker.Span) string {
	var b strings.Builder
	pos := 0
	for _, s := range spans {
		if s.Start < pos || s.End > len(line) {
			continue
		}
		b.WriteString(line[pos:s.Start])
		b.WriteString(st.Mark(s.Group).Render(line[s.Start:s.End]))
		pos = s.End
	}
	b.WriteString(line[pos:])
	return b.String()
}

// Marks writes the lines of content that m highlights, prefixed with
// their 1-based line number, and returns how many there were.
func Marks(w io.Writer, st Styles, content string, m *marker.Matcher) (int, error) {
	count := 0
	for i, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		spans := m.Find(line)
		if len(spans) == 0 {
			continue
		}
		count++
		prefix := st.dim.Render(fmt.Sprintf("%4d:", i+1))
		if _, err := fmt.Fprintf(w, "%s %s\n", prefix, Highlight(st, line, spans)); err != nil {
			return count, err
		}
	}
	return count, nil
}
