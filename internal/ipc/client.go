package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/timvw/pane-remote/internal/rc"
)

// ErrNoReceiver is returned when nothing is listening on the socket.
var ErrNoReceiver = errors.New("no pane-remote receiver is listening")

// Send delivers req to the receiver at socketPath. Unless req.NoResponse
// is set it waits for the matching response until ctx is done.
func Send(ctx context.Context, socketPath string, req rc.Request) (rc.Response, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return rc.Response{}, fmt.Errorf("encode request: %w", err)
	}
	if _, err := os.Stat(socketPath); err != nil {
		return rc.Response{}, dialError(socketPath, err)
	}
	raddr, err := net.ResolveUnixAddr("unixgram", socketPath)
	if err != nil {
		return rc.Response{}, fmt.Errorf("resolve unix addr: %w", err)
	}

	if req.NoResponse {
		conn, err := net.DialUnix("unixgram", nil, raddr)
		if err != nil {
			return rc.Response{}, dialError(socketPath, err)
		}
		defer conn.Close()
		if _, err := conn.Write(data); err != nil {
			return rc.Response{}, fmt.Errorf("send request: %w", err)
		}
		return rc.Response{OK: true, RequestID: req.RequestID}, nil
	}

	// The reply socket lives next to the receiver's so it shares the
	// receiver's private directory.
	local := filepath.Join(filepath.Dir(socketPath), "c-"+uuid.NewString()[:8]+".sock")
	laddr := &net.UnixAddr{Name: local, Net: "unixgram"}
	conn, err := net.ListenUnixgram("unixgram", laddr)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return rc.Response{}, dialError(socketPath, err)
		}
		return rc.Response{}, fmt.Errorf("bind reply socket: %w", err)
	}
	defer os.Remove(local)
	defer conn.Close()

	if _, err := conn.WriteToUnix(data, raddr); err != nil {
		return rc.Response{}, dialError(socketPath, err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetReadDeadline(deadline)
	}
	stop := context.AfterFunc(ctx, func() {
		_ = conn.SetReadDeadline(time.Now())
	})
	defer stop()

	buf := make([]byte, DefaultMaxPayloadBytes)
	for {
		n, _, err := conn.ReadFromUnix(buf)
		if err != nil {
			if ctx.Err() != nil {
				return rc.Response{}, fmt.Errorf("waiting for response: %w", ctx.Err())
			}
			var ne net.Error
			if errors.As(err, &ne) && ne.Timeout() {
				return rc.Response{}, fmt.Errorf("waiting for response: %w", context.DeadlineExceeded)
			}
			return rc.Response{}, fmt.Errorf("read response: %w", err)
		}
		var resp rc.Response
		if err := json.Unmarshal(buf[:n], &resp); err != nil {
			return rc.Response{}, fmt.Errorf("decode response: %w", err)
		}
		// Errors about undecodable requests carry no id.
		if resp.RequestID == req.RequestID || resp.RequestID == "" {
			return resp, nil
		}
	}
}

func dialError(socketPath string, err error) error {
	if errors.Is(err, os.ErrNotExist) || errors.Is(err, net.ErrClosed) || errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("%w at %s", ErrNoReceiver, socketPath)
	}
	return fmt.Errorf("send request: %w", err)
}
