// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bureau-foundation/fluidspaces/lib/codec"
	"github.com/bureau-foundation/fluidspaces/lib/testutil"
)

func TestServiceClientCall(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	server.Handle("go_to", func(ctx context.Context, action string, raw []byte) (any, error) {
		var request struct {
			Title  string `cbor:"title"`
			DryRun bool   `cbor:"dry_run"`
		}
		if err := codec.Unmarshal(raw, &request); err != nil {
			return nil, err
		}
		return map[string]any{"target": "3:" + request.Title, "dry_run": request.DryRun}, nil
	})
	startServer(t, server)

	client := NewServiceClient(socketPath)
	var result struct {
		Target string `cbor:"target"`
		DryRun bool   `cbor:"dry_run"`
	}
	err := client.Call(context.Background(), "go_to", map[string]any{"title": "gamma", "dry_run": true}, &result)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if result.Target != "3:gamma" || !result.DryRun {
		t.Errorf("result = %+v, want target 3:gamma with dry_run", result)
	}
}

func TestServiceClientServiceError(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	server.Handle("toggle", func(ctx context.Context, action string, raw []byte) (any, error) {
		return nil, errors.New("no second workspace on the focused output")
	})
	startServer(t, server)

	err := NewServiceClient(socketPath).Call(context.Background(), "toggle", nil, nil)
	var serviceError *ServiceError
	if !errors.As(err, &serviceError) {
		t.Fatalf("error = %v, want *ServiceError", err)
	}
	if serviceError.Action != "toggle" || serviceError.Message != "no second workspace on the focused output" {
		t.Errorf("ServiceError = %+v", serviceError)
	}
}

func TestServiceClientNoServer(t *testing.T) {
	socketPath := filepath.Join(testutil.SocketDir(t), "absent.sock")
	err := NewServiceClient(socketPath).Call(context.Background(), "go_to", nil, nil)
	if err == nil {
		t.Fatal("expected connection error")
	}
	var serviceError *ServiceError
	if errors.As(err, &serviceError) {
		t.Errorf("connection failure reported as ServiceError: %v", err)
	}
}

func TestServiceClientContextCancel(t *testing.T) {
	socketPath := testSocketPath(t)
	server := NewSocketServer(socketPath, testLogger())
	release := make(chan struct{})
	server.Handle("go_to", func(ctx context.Context, action string, raw []byte) (any, error) {
		<-release
		return nil, nil
	})
	startServer(t, server)
	// Unblock the handler before the server's cleanup waits on Serve.
	t.Cleanup(func() { close(release) })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- NewServiceClient(socketPath).Call(ctx, "go_to", nil, nil) }()
	cancel()

	err := testutil.RequireReceive(t, done, 5*time.Second, "waiting for cancelled Call")
	if err == nil {
		t.Fatal("expected error from cancelled Call")
	}
}
