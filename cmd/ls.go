package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/timvw/pane-remote/internal/model"
	"github.com/timvw/pane-remote/internal/render"
	"github.com/timvw/pane-remote/internal/targets"
)

var (
	flagJSON  bool
	flagTheme string
)

var listCmd = &cobra.Command{
	Use:     "ls",
	Aliases: []string{"list"},
	Short:   "List windows and their panes",
	Long: `List every tmux window followed by its panes, with the ids that
match expressions use (id:N for a pane, id:N for a window).

The pane the attached client is looking at is marked with "*".
Panes with a marker show its specification.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := getMultiplexer()
		if err != nil {
			return err
		}

		snap, err := targets.Load(cmd.Context(), m)
		if err != nil {
			return fmt.Errorf("failed to list panes: %w", err)
		}

		if flagJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Windows []model.Tab  `json:"windows"`
				Panes   []model.Pane `json:"panes"`
			}{snap.Tabs(), snap.Panes()})
		}

		st := render.NewStyles(lipgloss.NewRenderer(os.Stdout), render.ThemeByName(flagTheme))
		return render.Tree(os.Stdout, st, snap.Tabs(), snap.Panes(), snap.IsActive)
	},
}

func init() {
	listCmd.Flags().BoolVar(&flagJSON, "json", false, "print JSON instead of a tree")
	listCmd.Flags().StringVar(&flagTheme, "theme", "dark", "Color theme: dark, light")
	rootCmd.AddCommand(listCmd)
}
