package rc

import (
	"fmt"

	"github.com/google/uuid"
)

// ProtocolVersion is sent with every request. Receivers reject requests
// with a different major version.
var ProtocolVersion = [3]int{0, 1, 0}

// Request is one command invocation on the wire.
type Request struct {
	Cmd        string `json:"cmd"`
	Version    [3]int `json:"version"`
	RequestID  string `json:"request_id"`
	NoResponse bool   `json:"no_response,omitempty"`
	// WindowID is the pane the client runs in; nil when unknown.
	WindowID *int     `json:"window_id,omitempty"`
	Payload  *Payload `json:"payload"`
}

// Response is the receiver's answer to a Request.
type Response struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Encode runs cmd's client half and wraps the payload in a request.
func Encode(cmd Command, global GlobalOptions, opts OptionValues, args []string) (Request, error) {
	payload, err := cmd.Encode(global, opts, args)
	if err != nil {
		return Request{}, err
	}
	return Request{
		Cmd:        cmd.Descriptor().Name,
		Version:    ProtocolVersion,
		RequestID:  uuid.NewString(),
		NoResponse: global.NoResponse,
		Payload:    payload,
	}, nil
}

// WithWindow returns a copy of req sent from the given pane.
func (req Request) WithWindow(id int) Request {
	req.WindowID = &id
	return req
}

func (req Request) validate() error {
	if req.Cmd == "" {
		return fmt.Errorf("request has no command")
	}
	if req.Version[0] != ProtocolVersion[0] {
		return fmt.Errorf("incompatible protocol version %d.%d.%d (receiver speaks %d.x)",
			req.Version[0], req.Version[1], req.Version[2], ProtocolVersion[0])
	}
	return nil
}
