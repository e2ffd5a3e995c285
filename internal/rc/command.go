// Package rc implements remote commands: how each command declares its
// arguments, encodes a client invocation into a payload, and applies a
// received payload to the live panes and windows it selects.
//
// A command runs in two halves. Encode executes in the client process and
// rejects malformed arguments before anything is sent. Decode executes in
// the receiver against a Resolver, which exposes the live targets.
package rc

// OptionType is the value type of a command option.
type OptionType int

const (
	OptionString OptionType = iota
	OptionBool
)

// Option declares a named command-line option.
type Option struct {
	Name    string
	Short   string
	Type    OptionType
	Default string
	Help    string
}

// Descriptor is the static description of a command.
type Descriptor struct {
	// Name is the registry key, e.g. "create_marker".
	Name  string
	Short string
	Long  string
	// ArgSpec labels the positional arguments, e.g. "MARKER SPECIFICATION".
	ArgSpec string
	Options []Option
}

// OptionValues gives access to parsed option values. *pflag.FlagSet
// satisfies it.
type OptionValues interface {
	GetString(name string) (string, error)
	GetBool(name string) (bool, error)
}

// GlobalOptions are client options shared by every command.
type GlobalOptions struct {
	// Socket is the receiver's socket path.
	Socket string
	// NoResponse asks the receiver not to reply.
	NoResponse bool
}

// Window is a live pane handle.
type Window interface {
	ID() int
	SetMarker(tokens []string) error
	RemoveMarker() error
	SetTitle(title string) error
}

// Tab is a live window handle (an ordered group of panes).
type Tab interface {
	ID() int
	SetTitle(title string) error
}

// Resolver exposes live target resolution on the receiving side. Methods
// returning a single handle return nil when there is none.
type Resolver interface {
	MatchWindows(expr string) ([]Window, error)
	MatchTabs(expr string) ([]Tab, error)
	ActiveWindow() Window
	ActiveTab() Tab
	TabForWindow(w Window) Tab
	WindowByID(id int) Window
}

// Command is one remote command.
type Command interface {
	Descriptor() Descriptor
	// Encode validates client arguments and builds the payload.
	Encode(global GlobalOptions, opts OptionValues, args []string) (*Payload, error)
	// Decode applies a payload. w is the pane the request came from, or nil.
	Decode(r Resolver, w Window, p Lookup) error
}

// Payload field names shared by several commands.
const (
	fieldMatch = "match"
	fieldSelf  = "self"
	fieldTitle = "title"
)

var (
	matchWindowOption = Option{
		Name:  "match",
		Short: "m",
		Type:  OptionString,
		Help:  "The window to match. Match specifications are of the form field:query, combined with and, or, not. Fields: id, title, pid, cwd, cmdline, num, session, state.",
	}
	matchTabOption = Option{
		Name:  "match",
		Short: "m",
		Type:  OptionString,
		Help:  "The tab to match. Match specifications are of the form field:query, combined with and, or, not. Fields: id, index, title, window_id, window_title, session, state.",
	}
)

func selfOption(what string) Option {
	return Option{
		Name: "self",
		Type: OptionBool,
		Help: "If specified " + what + " the window this command is run in, rather than the active window.",
	}
}
