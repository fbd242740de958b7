// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"path/filepath"
	"sync"
	"testing"

	"github.com/bureau-foundation/fluidspaces/lib/reconcile"
	"github.com/bureau-foundation/fluidspaces/lib/testutil"
	"github.com/bureau-foundation/fluidspaces/lib/workspace"
)

// TestServer serves a FakeWM over the i3 IPC protocol.
type TestServer struct {
	WM         *FakeWM
	SocketPath string

	listener net.Listener
	done     sync.WaitGroup
}

// NewTestServer starts a fake window manager holding set on a short
// /tmp socket path and registers cleanup with t. Each accepted
// connection may carry any number of requests, as with a real i3.
func NewTestServer(t *testing.T, set workspace.Set) *TestServer {
	t.Helper()

	socketPath := filepath.Join(testutil.SocketDir(t), "wm.sock")
	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		t.Fatalf("listening on %s: %v", socketPath, err)
	}

	server := &TestServer{
		WM:         NewFakeWM(set),
		SocketPath: socketPath,
		listener:   listener,
	}

	server.done.Add(1)
	go server.acceptLoop()

	t.Cleanup(func() {
		listener.Close()
		server.done.Wait()
	})
	return server
}

func (s *TestServer) acceptLoop() {
	defer s.done.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			continue
		}
		s.done.Add(1)
		go func() {
			defer s.done.Done()
			defer conn.Close()
			s.serve(conn)
		}()
	}
}

func (s *TestServer) serve(conn net.Conn) {
	for {
		request, err := ReadMessage(conn)
		if err != nil {
			return
		}

		var reply any
		switch request.Type {
		case MessageRunCommand:
			commands, err := reconcile.ParseBatch(string(request.Payload))
			if err != nil {
				reply = []CommandResult{{ParseError: true, Error: err.Error()}}
				break
			}
			raw := make([]string, len(commands))
			for i, command := range commands {
				raw[i] = command.String()
			}
			reply = s.WM.Execute(raw)
		case MessageGetWorkspaces:
			set, err := s.WM.Workspaces(context.Background())
			if err != nil {
				// A real window manager cannot fail this request; the
				// closest observable behavior is a dropped connection.
				return
			}
			replies := make([]workspaceReply, len(set))
			for i, w := range set {
				replies[i] = workspaceReply{
					Num:     w.Index,
					Name:    w.Identifier,
					Visible: w.Visible,
					Focused: w.Focused,
					Urgent:  w.Urgent,
					Output:  w.Output,
				}
			}
			reply = replies
		case MessageGetVersion:
			reply = VersionReply{Major: 4, Minor: 23, HumanReadable: "4.23 (fake)"}
		default:
			return
		}

		payload, err := json.Marshal(reply)
		if err != nil {
			return
		}
		if err := WriteMessage(conn, Message{Type: request.Type, Payload: payload}); err != nil {
			return
		}
	}
}
