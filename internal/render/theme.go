package render

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors used by pane-remote's terminal output.
type Theme struct {
	Primary   lipgloss.Color // window headers
	Success   lipgloss.Color // the active pane
	Error     lipgloss.Color // errors
	Text      lipgloss.Color // primary text
	TextMuted lipgloss.Color // ids, commands, directories
	// Marks colors marker groups 1..3.
	Marks [3]lipgloss.Color
}

// DarkTheme returns the default dark theme.
func DarkTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#fab283"),
		Success:   lipgloss.Color("#7fd88f"),
		Error:     lipgloss.Color("#e06c75"),
		Text:      lipgloss.Color("#eeeeee"),
		TextMuted: lipgloss.Color("#808080"),
		Marks: [3]lipgloss.Color{
			lipgloss.Color("#f5a742"),
			lipgloss.Color("#5c9cf5"),
			lipgloss.Color("#9d7cd8"),
		},
	}
}

// LightTheme returns a light theme for bright terminal backgrounds.
func LightTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("#b35c00"),
		Success:   lipgloss.Color("#116329"),
		Error:     lipgloss.Color("#cf222e"),
		Text:      lipgloss.Color("#1f2328"),
		TextMuted: lipgloss.Color("#656d76"),
		Marks: [3]lipgloss.Color{
			lipgloss.Color("#bf8700"),
			lipgloss.Color("#0550ae"),
			lipgloss.Color("#6639ba"),
		},
	}
}

// ThemeByName returns a theme by name. Defaults to dark.
func ThemeByName(name string) Theme {
	switch name {
	case "light":
		return LightTheme()
	default:
		return DarkTheme()
	}
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	header lipgloss.Style
	active lipgloss.Style
	err    lipgloss.Style
	dim    lipgloss.Style
	text   lipgloss.Style
	marks  [3]lipgloss.Style
}

// NewStyles builds all styles from a theme for output written through r.
func NewStyles(r *lipgloss.Renderer, t Theme) Styles {
	s := Styles{
		header: r.NewStyle().Bold(true).Foreground(t.Primary),
		active: r.NewStyle().Bold(true).Foreground(t.Success),
		err:    r.NewStyle().Foreground(t.Error),
		dim:    r.NewStyle().Foreground(t.TextMuted),
		text:   r.NewStyle().Foreground(t.Text),
	}
	for i, c := range t.Marks {
		s.marks[i] = r.NewStyle().Bold(true).Foreground(c)
	}
	return s
}

// Mark returns the style for a marker group, 1-based.
func (s Styles) Mark(group int) lipgloss.Style {
	if group < 1 || group > len(s.marks) {
		return s.text
	}
	return s.marks[group-1]
}

// Error renders an error message.
func (s Styles) Error(msg string) string {
	return s.err.Render(msg)
}
