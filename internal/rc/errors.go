package rc

import (
	"fmt"
	"strings"
)

// ArgumentError reports positional arguments of the wrong shape. It is
// raised on the client before anything is sent.
type ArgumentError struct {
	Command string
	Args    []string
	Reason  string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Command, e.Reason, strings.Join(e.Args, " "))
}

// MarkerError reports a marker specification rejected by the marker
// grammar. Args is the full argument list as given.
type MarkerError struct {
	Args []string
	Err  error
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("invalid marker specification: %s: %v", strings.Join(e.Args, " "), e.Err)
}

func (e *MarkerError) Unwrap() error { return e.Err }

// MatchError reports a match expression that selected nothing. Kind is
// "windows" or "tabs".
type MatchError struct {
	Expression string
	Kind       string
}

func (e *MatchError) Error() string {
	return fmt.Sprintf("no matching %s for expression: %s", e.Kind, e.Expression)
}

// UnknownCommandError reports a command name missing from the registry.
type UnknownCommandError struct {
	Name string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown remote command: %q", e.Name)
}
