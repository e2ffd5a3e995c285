package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timvw/pane-remote/internal/rc"
)

// Version is set at build time with -ldflags "-X github.com/timvw/pane-remote/cmd.Version=...".
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the pane-remote version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "pane-remote %s (protocol %s)\n", Version, protocolString())
		return err
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func protocolString() string {
	v := rc.ProtocolVersion
	return fmt.Sprintf("%d.%d.%d", v[0], v[1], v[2])
}
