// Package ipc carries remote-control requests between the pane-remote
// client and the receiver over a unix datagram socket.
//
// Each request is one JSON datagram. Clients that want an answer bind
// their own socket first; the receiver replies to that address.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/timvw/pane-remote/internal/rc"
)

// DefaultMaxPayloadBytes is used when Server.MaxPayloadBytes is unset.
const DefaultMaxPayloadBytes = 64 * 1024

// Handler answers one request.
type Handler func(ctx context.Context, req rc.Request) rc.Response

// Server reads requests from a unixgram socket and handles them one at
// a time, in arrival order.
type Server struct {
	handler Handler
	path    string

	MaxPayloadBytes int
	Log             zerolog.Logger

	mu     sync.Mutex
	conn   *net.UnixConn
	closed bool
	done   chan struct{}
}

// NewServer returns a Server for socketPath. Start binds it.
func NewServer(socketPath string, handler Handler) *Server {
	return &Server{
		handler:         handler,
		path:            socketPath,
		MaxPayloadBytes: DefaultMaxPayloadBytes,
		Log:             zerolog.Nop(),
	}
}

// SocketPath returns the path the server binds.
func (s *Server) SocketPath() string {
	return s.path
}

// Start binds the socket and serves until ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	if s.handler == nil {
		return fmt.Errorf("handler is required")
	}
	if s.path == "" {
		return fmt.Errorf("socket path is required")
	}
	if s.MaxPayloadBytes <= 0 {
		s.MaxPayloadBytes = DefaultMaxPayloadBytes
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create socket dir: %w", err)
	}
	if err := os.Chmod(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("chmod socket dir: %w", err)
	}
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove stale socket: %w", err)
	}

	addr, err := net.ResolveUnixAddr("unixgram", s.path)
	if err != nil {
		return fmt.Errorf("resolve unix addr: %w", err)
	}
	conn, err := net.ListenUnixgram("unixgram", addr)
	if err != nil {
		return fmt.Errorf("listen unixgram: %w", err)
	}
	if err := os.Chmod(s.path, 0o600); err != nil {
		_ = conn.Close()
		return fmt.Errorf("chmod socket: %w", err)
	}
	bound, err := os.Stat(s.path)
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("stat socket: %w", err)
	}

	s.mu.Lock()
	s.conn = conn
	s.closed = false
	done := make(chan struct{})
	s.done = done
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.close()
	}()

	go s.readLoop(ctx, conn, bound, done)

	return nil
}

// Done is closed once the read loop has exited.
func (s *Server) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Server) readLoop(ctx context.Context, conn *net.UnixConn, bound os.FileInfo, done chan struct{}) {
	defer close(done)
	defer s.removeSocket(bound)

	buf := make([]byte, s.MaxPayloadBytes)
	for {
		n, from, err := conn.ReadFromUnix(buf)
		if err != nil {
			if s.isClosed() {
				return
			}
			s.Log.Debug().Err(err).Msg("read datagram")
			continue
		}

		if n <= 0 || n >= s.MaxPayloadBytes {
			s.Log.Warn().Int("bytes", n).Msg("dropping oversized or empty datagram")
			s.reply(conn, from, rc.Response{Error: "request too large"})
			continue
		}

		var req rc.Request
		if err := json.Unmarshal(buf[:n], &req); err != nil {
			s.Log.Warn().Err(err).Msg("dropping malformed datagram")
			s.reply(conn, from, rc.Response{Error: fmt.Sprintf("bad request: %v", err)})
			continue
		}

		resp := s.handler(ctx, req)
		if req.NoResponse {
			continue
		}
		s.reply(conn, from, resp)
	}
}

// removeSocket deletes the socket file unless another receiver has
// since bound the same path.
func (s *Server) removeSocket(bound os.FileInfo) {
	cur, err := os.Stat(s.path)
	if err != nil || !os.SameFile(bound, cur) {
		return
	}
	_ = os.Remove(s.path)
}

// reply sends resp to from. Senders without a bound address cannot be
// answered.
func (s *Server) reply(conn *net.UnixConn, from *net.UnixAddr, resp rc.Response) {
	if from == nil || from.Name == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		s.Log.Error().Err(err).Msg("encode response")
		return
	}
	if _, err := conn.WriteToUnix(data, from); err != nil {
		s.Log.Debug().Err(err).Str("peer", from.Name).Msg("write response")
	}
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Server) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}
