package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/timvw/pane-remote/internal/marker"
	"github.com/timvw/pane-remote/internal/model"
	"github.com/timvw/pane-remote/internal/mux"
	"github.com/timvw/pane-remote/internal/render"
	"github.com/timvw/pane-remote/internal/targets"
)

var flagMarker string

var marksCmd = &cobra.Command{
	Use:   "marks [pane]",
	Short: "Show the lines a pane's marker highlights",
	Long: `Capture the visible content of a pane and print the lines its
marker highlights, colored by marker group.

The pane is given as "%N" or "N" and defaults to the pane this command
runs in, then to the active pane. Use --marker to try a specification
without storing it, e.g. --marker "itext 1 error 2 warn". Quote a
pattern that contains spaces: --marker 'itext 1 "disk full"'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}
		snap, err := targets.Load(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}

		pane, err := markedPane(snap, args)
		if err != nil {
			return err
		}

		tokens := pane.Marker
		if flagMarker != "" {
			tokens, err = markerTokens(flagMarker)
			if err != nil {
				return err
			}
		}
		if len(tokens) == 0 {
			return fmt.Errorf("pane %s has no marker", model.PaneID(pane.ID))
		}
		spec, err := marker.ParseTokens(tokens)
		if err != nil {
			return err
		}
		matcher, err := spec.Compile()
		if err != nil {
			return err
		}

		content, err := m.CapturePane(cmd.Context(), model.PaneID(pane.ID))
		if err != nil {
			return fmt.Errorf("failed to capture pane %s: %w", model.PaneID(pane.ID), err)
		}

		st := render.NewStyles(lipgloss.NewRenderer(os.Stdout), render.ThemeByName(flagTheme))
		n, err := render.Marks(os.Stdout, st, content, matcher)
		if err != nil {
			return err
		}
		if n == 0 {
			fmt.Fprintln(os.Stderr, "no marked lines")
		}
		return nil
	},
}

func init() {
	marksCmd.Flags().StringVar(&flagMarker, "marker", "", "marker specification to use instead of the pane's own")
	marksCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	rootCmd.AddCommand(marksCmd)
}

// markedPane picks the pane named by args, the current pane, or the
// active pane, in that order.
func markedPane(snap *targets.Snapshot, args []string) (model.Pane, error) {
	var id int
	switch {
	case len(args) == 1:
		n, err := parsePaneArg(args[0])
		if err != nil {
			return model.Pane{}, err
		}
		id = n
	default:
		n, ok := mux.CurrentPaneID()
		if !ok {
			w := snap.ActiveWindow()
			if w == nil {
				return model.Pane{}, fmt.Errorf("no pane given and no active pane")
			}
			n = w.ID()
		}
		id = n
	}

	for _, p := range snap.Panes() {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Pane{}, fmt.Errorf("pane %s not found", model.PaneID(id))
}

// markerTokens splits a --marker value into tokens with shell quoting
// rules.
func markerTokens(s string) ([]string, error) {
	tokens, err := shlex.Split(s)
	if err != nil {
		return nil, fmt.Errorf("invalid --marker %q: %w", s, err)
	}
	return tokens, nil
}

func parsePaneArg(s string) (int, error) {
	if strings.HasPrefix(s, "%") {
		return model.ParseID('%', s)
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid pane %q: want %%N or N", s)
	}
	return n, nil
}
