package cmd

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/timvw/pane-remote/internal/ipc"
	"github.com/timvw/pane-remote/internal/mux"
	"github.com/timvw/pane-remote/internal/rc"
)

const remoteGroup = "remote"

func init() {
	for _, c := range registry.Commands() {
		rootCmd.AddCommand(newRemoteCommand(c))
	}
}

// newRemoteCommand builds the cobra command for one registry entry from
// its descriptor.
func newRemoteCommand(c rc.Command) *cobra.Command {
	d := c.Descriptor()
	use := rc.CLIName(d.Name)
	if d.ArgSpec != "" {
		use += " " + d.ArgSpec
	}
	cc := &cobra.Command{
		Use:     use,
		Short:   d.Short,
		Long:    strings.TrimSpace(d.Long),
		GroupID: remoteGroup,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRemote(cmd, c, args)
		},
	}
	addOptions(cc.Flags(), d.Options)
	return cc
}

func addOptions(fs *pflag.FlagSet, opts []rc.Option) {
	for _, o := range opts {
		switch o.Type {
		case rc.OptionBool:
			fs.BoolP(o.Name, o.Short, o.Default == "true", o.Help)
		default:
			fs.StringP(o.Name, o.Short, o.Default, o.Help)
		}
	}
}

// runRemote encodes the invocation, sends it to the receiver and turns a
// failed response into an error.
func runRemote(cmd *cobra.Command, c rc.Command, args []string) error {
	global := rc.GlobalOptions{Socket: socketPath(), NoResponse: flagNoResponse}

	req, err := rc.Encode(c, global, cmd.Flags(), args)
	if err != nil {
		return err
	}
	if id, ok := mux.CurrentPaneID(); ok {
		req = req.WithWindow(id)
	}

	ctx := cmd.Context()
	if appConfig.TimeoutDuration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, appConfig.TimeoutDuration)
		defer cancel()
	}

	resp, err := ipc.Send(ctx, global.Socket, req)
	if err != nil {
		return err
	}
	if !resp.OK {
		return errors.New(resp.Error)
	}
	return nil
}
