package rc

import (
	"github.com/timvw/pane-remote/internal/marker"
)

const fieldMarkerSpec = "marker_spec"

// CreateMarker highlights text matching a marker specification.
type CreateMarker struct{}

// Descriptor describes create_marker and its options.
func (CreateMarker) Descriptor() Descriptor {
	return Descriptor{
		Name:  "create_marker",
		Short: "Create a marker that highlights specified text",
		Long: `Create a marker which can highlight text in the specified window. For example:
create_marker text 1 ERROR. The specification is a type (text, itext, regex,
iregex) followed by pairs of highlight group (1-3) and pattern.`,
		ArgSpec: "MARKER SPECIFICATION",
		Options: []Option{matchWindowOption, selfOption("apply marker to")},
	}
}

// Encode validates the marker specification and packs it with the target options.
func (CreateMarker) Encode(_ GlobalOptions, opts OptionValues, args []string) (*Payload, error) {
	if len(args) < 2 {
		return nil, &ArgumentError{Command: "create_marker", Args: args, Reason: "invalid marker specification"}
	}
	if _, err := marker.Parse(args[0], args[1:]); err != nil {
		return nil, &MarkerError{Args: args, Err: err}
	}
	match, self, err := matchAndSelf(opts)
	if err != nil {
		return nil, err
	}
	return NewPayload().
		SetString(fieldMatch, match).
		SetBool(fieldSelf, self).
		SetStrings(fieldMarkerSpec, args), nil
}

// Decode sets the marker on every resolved window.
func (CreateMarker) Decode(r Resolver, w Window, p Lookup) error {
	windows, err := resolveWindows(r, w, p.String(fieldMatch), p.Bool(fieldSelf))
	if err != nil {
		return err
	}
	tokens := p.Strings(fieldMarkerSpec)
	return applyWindows(windows, func(w Window) error {
		return w.SetMarker(tokens)
	})
}

// RemoveMarker removes the marker from the selected windows.
type RemoveMarker struct{}

// Descriptor describes remove_marker and its options.
func (RemoveMarker) Descriptor() Descriptor {
	return Descriptor{
		Name:    "remove_marker",
		Short:   "Remove the currently set marker, if any",
		Long:    "Remove the marker, if any, set on the specified window.",
		ArgSpec: "",
		Options: []Option{matchWindowOption, selfOption("remove marker from")},
	}
}

// Encode packs the target options.
func (RemoveMarker) Encode(_ GlobalOptions, opts OptionValues, _ []string) (*Payload, error) {
	match, self, err := matchAndSelf(opts)
	if err != nil {
		return nil, err
	}
	return NewPayload().SetString(fieldMatch, match).SetBool(fieldSelf, self), nil
}

// Decode clears the marker on every resolved window.
func (RemoveMarker) Decode(r Resolver, w Window, p Lookup) error {
	windows, err := resolveWindows(r, w, p.String(fieldMatch), p.Bool(fieldSelf))
	if err != nil {
		return err
	}
	return applyWindows(windows, Window.RemoveMarker)
}

func matchAndSelf(opts OptionValues) (string, bool, error) {
	match, err := opts.GetString("match")
	if err != nil {
		return "", false, err
	}
	self, err := opts.GetBool("self")
	if err != nil {
		return "", false, err
	}
	return match, self, nil
}
