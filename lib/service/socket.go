// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strings"
	"time"

	"github.com/bureau-foundation/fluidspaces/lib/codec"
)

// ActionFunc processes a socket request for a specific action. The raw
// parameter is the full CBOR request (including the "action" field).
// The handler decodes action-specific fields from this raw message.
// Plain-text requests arrive as the CBOR encoding of {action: token}.
//
// Return a value to include in the success response, or an error for
// a failure response. If the returned value is nil, the response
// contains only {ok: true}. If non-nil, the value is marshaled as
// CBOR and placed in the response's "data" field.
type ActionFunc func(ctx context.Context, action string, raw []byte) (any, error)

// Response is the wire-format envelope for all CBOR responses.
type Response struct {
	OK    bool             `cbor:"ok"`
	Error string           `cbor:"error,omitempty"`
	Data  codec.RawMessage `cbor:"data,omitempty"`
}

// SocketServer serves the control protocol on a Unix socket, one
// connection at a time.
//
// Actions are registered with Handle, and optionally a fallback with
// HandleDefault, before calling Serve. Without a fallback, unknown
// actions receive an error response.
type SocketServer struct {
	socketPath string
	handlers   map[string]ActionFunc
	fallback   ActionFunc
	logger     *slog.Logger
	uid        int

	// ready is closed once the socket is accepting connections.
	ready chan struct{}
}

// NewSocketServer creates a server that will listen on socketPath.
// Register actions with Handle before calling Serve.
func NewSocketServer(socketPath string, logger *slog.Logger) *SocketServer {
	return &SocketServer{
		socketPath: socketPath,
		handlers:   make(map[string]ActionFunc),
		logger:     logger,
		uid:        os.Getuid(),
		ready:      make(chan struct{}),
	}
}

// Handle registers a handler for the given action name. Panics if
// the action is already registered.
func (s *SocketServer) Handle(action string, handler ActionFunc) {
	if _, exists := s.handlers[action]; exists {
		panic(fmt.Sprintf("service.SocketServer: duplicate handler for action %q", action))
	}
	s.handlers[action] = handler
}

// HandleDefault registers the handler for actions with no handler of
// their own. The handler is responsible for rejecting unknown ones.
func (s *SocketServer) HandleDefault(handler ActionFunc) {
	s.fallback = handler
}

// Ready is closed once Serve is accepting connections.
func (s *SocketServer) Ready() <-chan struct{} {
	return s.ready
}

// Serve starts accepting connections on the Unix socket and dispatches
// requests to registered action handlers. Blocks until ctx is
// cancelled. A request in progress when ctx is cancelled runs to
// completion before Serve returns.
//
// Any existing socket file at the configured path is removed before
// listening. The socket file is removed on return.
func (s *SocketServer) Serve(ctx context.Context) error {
	if err := os.Remove(s.socketPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing stale socket %s: %w", s.socketPath, err)
	}

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.socketPath, err)
	}
	defer func() {
		listener.Close()
		os.Remove(s.socketPath)
	}()
	if err := os.Chmod(s.socketPath, 0o600); err != nil {
		return fmt.Errorf("restricting %s: %w", s.socketPath, err)
	}

	// Unblock Accept when the context is cancelled.
	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	s.logger.Info("socket server listening", "path", s.socketPath)
	close(s.ready)

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			s.logger.Error("accept failed", "error", err)
			continue
		}
		// Handled inline. The next Accept waits for this request.
		s.handleConnection(context.WithoutCancel(ctx), conn)
	}
}

// readTimeout is how long we wait for the client to send its request.
// A well-behaved client sends the request immediately after connecting.
const readTimeout = 10 * time.Second

// writeTimeout is how long we wait for the response to be written.
const writeTimeout = 10 * time.Second

// maxRequestSize is the maximum size of a single request. Requests
// carry an action and at most one title.
const maxRequestSize = 64 * 1024

// handleConnection processes one request-response cycle.
func (s *SocketServer) handleConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	conn.SetReadDeadline(time.Now().Add(readTimeout))
	reader := bufio.NewReader(io.LimitReader(conn, maxRequestSize))
	first, err := reader.Peek(1)
	if err != nil {
		// Client connected but sent nothing.
		return
	}

	if err := s.authorize(conn); err != nil {
		s.logger.Warn("rejected connection", "error", err)
		s.writeError(conn, err.Error())
		return
	}
	if isCBORMap(first[0]) {
		s.handleCBOR(ctx, conn, reader)
		return
	}
	s.handleText(ctx, conn, reader)
}

// authorize refuses peers running as another user.
func (s *SocketServer) authorize(conn net.Conn) error {
	uid, err := peerUID(conn)
	if err != nil {
		return fmt.Errorf("reading peer credentials: %w", err)
	}
	if uid >= 0 && uid != s.uid {
		return fmt.Errorf("forbidden: peer uid %d is not %d", uid, s.uid)
	}
	return nil
}

// isCBORMap reports whether b starts a CBOR map (major type 5). No
// action token starts with one of these bytes.
func isCBORMap(b byte) bool {
	return b&0xe0 == 0xa0
}

func (s *SocketServer) handleCBOR(ctx context.Context, conn net.Conn, reader io.Reader) {
	// CBOR is self-delimiting so no framing protocol is needed.
	var raw codec.RawMessage
	if err := codec.NewDecoder(reader).Decode(&raw); err != nil {
		s.writeError(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}

	// Extract the action field for routing.
	var header struct {
		Action string `cbor:"action"`
	}
	if err := codec.Unmarshal(raw, &header); err != nil {
		s.writeError(conn, fmt.Sprintf("invalid request: %v", err))
		return
	}
	if header.Action == "" {
		s.writeError(conn, "missing required field: action")
		return
	}

	if s.logger.Enabled(ctx, slog.LevelDebug) {
		if notation, err := codec.Diagnose(raw); err == nil {
			s.logger.Debug("control request", "request", notation)
		}
	}

	result, err := s.dispatch(ctx, header.Action, raw)
	if err != nil {
		s.writeError(conn, err.Error())
		return
	}
	s.writeSuccess(conn, result)
}

func (s *SocketServer) handleText(ctx context.Context, conn net.Conn, reader *bufio.Reader) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.writeText(conn, "error: invalid request: "+err.Error())
		return
	}
	token := strings.TrimSpace(line)
	if token == "" {
		s.writeText(conn, "error: missing action")
		return
	}

	raw, err := codec.Marshal(map[string]string{"action": token})
	if err != nil {
		s.writeText(conn, "error: internal: "+err.Error())
		return
	}
	if _, err := s.dispatch(ctx, token, raw); err != nil {
		s.writeText(conn, "error: "+err.Error())
		return
	}
	s.writeText(conn, "ok")
}

// dispatch routes one request to its handler and logs failures.
func (s *SocketServer) dispatch(ctx context.Context, action string, raw []byte) (any, error) {
	handler, exists := s.handlers[action]
	if !exists {
		handler = s.fallback
	}
	if handler == nil {
		return nil, fmt.Errorf("unknown action %q", action)
	}

	result, err := handler(ctx, action, raw)
	if err != nil {
		s.logger.Warn("action failed",
			"action", action,
			"error", err,
		)
		return nil, err
	}
	return result, nil
}

// writeError sends a failure response: {ok: false, error: "..."}.
// Write failures are logged at debug level: the connection is closing
// regardless.
func (s *SocketServer) writeError(conn net.Conn, message string) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := codec.NewEncoder(conn).Encode(Response{
		OK:    false,
		Error: message,
	}); err != nil {
		s.logger.Debug("failed to write error response", "error", err)
	}
}

// writeSuccess sends a success response. If result is nil, the
// response is {ok: true}. If non-nil, the value is marshaled as CBOR
// and placed in the "data" field: {ok: true, data: <cbor>}.
func (s *SocketServer) writeSuccess(conn net.Conn, result any) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))

	response := Response{OK: true}

	if result != nil {
		data, err := codec.Marshal(result)
		if err != nil {
			s.writeError(conn, fmt.Sprintf("internal: marshaling response: %v", err))
			return
		}
		response.Data = data
	}

	if err := codec.NewEncoder(conn).Encode(response); err != nil {
		s.logger.Debug("failed to write success response", "error", err)
	}
}

func (s *SocketServer) writeText(conn net.Conn, line string) {
	conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if _, err := io.WriteString(conn, line+"\n"); err != nil {
		s.logger.Debug("failed to write text response", "error", err)
	}
}
