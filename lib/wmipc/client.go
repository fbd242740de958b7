// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/bureau-foundation/fluidspaces/lib/reconcile"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

// DefaultTimeout bounds one request/response exchange when the caller's
// context has no earlier deadline.
const DefaultTimeout = 5 * time.Second

// CommandFailure describes one sub-command the window manager rejected.
type CommandFailure struct {
	Command string
	Message string
}

// CommandError is returned by RunCommands when at least one sub-command
// in the batch failed. Earlier and later sub-commands may still have
// been applied; the window manager does not roll back.
type CommandError struct {
	Failures []CommandFailure
}

func (e *CommandError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, failure := range e.Failures {
		if failure.Command == "" {
			parts[i] = failure.Message
			continue
		}
		parts[i] = fmt.Sprintf("%s: %s", failure.Command, failure.Message)
	}
	return "command failed: " + strings.Join(parts, "; ")
}

// Client sends requests to a window manager's IPC socket. Each request
// opens a new connection.
type Client struct {
	socketPath string
	timeout    time.Duration
	logger     *slog.Logger
}

// NewClient returns a client for the IPC socket at socketPath. A zero
// timeout selects DefaultTimeout; a nil logger discards.
func NewClient(socketPath string, timeout time.Duration, logger *slog.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Client{
		socketPath: socketPath,
		timeout:    timeout,
		logger:     logger,
	}
}

// SocketPath returns the IPC socket this client targets.
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Version queries the window manager version. The daemon calls this at
// startup to fail fast when the socket is wrong.
func (c *Client) Version(ctx context.Context) (VersionReply, error) {
	var reply VersionReply
	if err := c.request(ctx, MessageGetVersion, nil, &reply); err != nil {
		return VersionReply{}, err
	}
	return reply, nil
}

// Workspaces returns the live workspace list in the order the window
// manager reports it.
func (c *Client) Workspaces(ctx context.Context) (workspace.Set, error) {
	var replies []workspaceReply
	if err := c.request(ctx, MessageGetWorkspaces, nil, &replies); err != nil {
		return nil, err
	}
	set := make(workspace.Set, len(replies))
	for i, reply := range replies {
		set[i] = workspace.Workspace{
			Identifier: reply.Name,
			Index:      reply.Num,
			Output:     reply.Output,
			Focused:    reply.Focused,
			Visible:    reply.Visible,
			Urgent:     reply.Urgent,
		}
	}
	return set, nil
}

// RunCommands submits commands as one batch. An empty batch is not
// sent. If any sub-command fails the result is a *CommandError.
func (c *Client) RunCommands(ctx context.Context, commands []string) error {
	if len(commands) == 0 {
		return nil
	}
	payload := reconcile.JoinBatch(commands)
	c.logger.Debug("running command batch", "commands", len(commands), "payload", payload)

	var results []CommandResult
	if err := c.request(ctx, MessageRunCommand, []byte(payload), &results); err != nil {
		return err
	}
	return resultsError(commands, results)
}

// resultsError maps per-command results back onto the commands that
// produced them. The reply normally has one entry per command; if the
// counts differ the failures are reported without attribution.
func resultsError(commands []string, results []CommandResult) error {
	var failures []CommandFailure
	for i, result := range results {
		if result.Success {
			continue
		}
		failure := CommandFailure{Message: result.Error}
		if failure.Message == "" {
			failure.Message = "rejected"
		}
		if len(results) == len(commands) {
			failure.Command = commands[i]
		}
		failures = append(failures, failure)
	}
	if len(failures) == 0 {
		return nil
	}
	return &CommandError{Failures: failures}
}

// request performs one request/response exchange and decodes the JSON
// reply into result.
func (c *Client) request(ctx context.Context, messageType MessageType, payload []byte, result any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("connecting to window manager at %s: %w", c.socketPath, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		conn.SetDeadline(deadline)
	}

	if err := WriteMessage(conn, Message{Type: messageType, Payload: payload}); err != nil {
		return err
	}
	reply, err := ReadMessage(conn)
	if err != nil {
		return fmt.Errorf("reading %s reply: %w", messageType, err)
	}
	if reply.Type != messageType {
		return fmt.Errorf("expected %s reply, got %s", messageType, reply.Type)
	}
	if err := json.Unmarshal(reply.Payload, result); err != nil {
		return fmt.Errorf("decoding %s reply: %w", messageType, err)
	}
	return nil
}
