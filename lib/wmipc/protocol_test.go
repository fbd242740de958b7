// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"bytes"
	"encoding/binary"
	"strings"
	"testing"
)

func TestMessageFraming(t *testing.T) {
	var buffer bytes.Buffer
	payload := []byte(`workspace "3:mail"`)
	if err := WriteMessage(&buffer, Message{Type: MessageRunCommand, Payload: payload}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}

	frame := buffer.Bytes()
	if got := string(frame[:len(Magic)]); got != Magic {
		t.Errorf("magic = %q, want %q", got, Magic)
	}
	if got := binary.NativeEndian.Uint32(frame[len(Magic):]); got != uint32(len(payload)) {
		t.Errorf("length field = %d, want %d", got, len(payload))
	}
	if got := binary.NativeEndian.Uint32(frame[len(Magic)+4:]); got != uint32(MessageRunCommand) {
		t.Errorf("type field = %d, want %d", got, MessageRunCommand)
	}

	message, err := ReadMessage(&buffer)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if message.Type != MessageRunCommand {
		t.Errorf("Type = %v, want %v", message.Type, MessageRunCommand)
	}
	if string(message.Payload) != string(payload) {
		t.Errorf("Payload = %q, want %q", message.Payload, payload)
	}
}

func TestMessageFramingEmptyPayload(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteMessage(&buffer, Message{Type: MessageGetWorkspaces}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	if buffer.Len() != headerLength {
		t.Fatalf("frame length = %d, want %d", buffer.Len(), headerLength)
	}
	message, err := ReadMessage(&buffer)
	if err != nil {
		t.Fatalf("ReadMessage: %v", err)
	}
	if message.Type != MessageGetWorkspaces || len(message.Payload) != 0 {
		t.Errorf("got %+v, want empty GET_WORKSPACES", message)
	}
}

func TestReadMessageRejectsBadMagic(t *testing.T) {
	frame := make([]byte, headerLength)
	copy(frame, "i4-ipc")
	_, err := ReadMessage(bytes.NewReader(frame))
	if err == nil || !strings.Contains(err.Error(), "bad magic") {
		t.Fatalf("expected bad magic error, got %v", err)
	}
}

func TestReadMessageRejectsOversizedPayload(t *testing.T) {
	frame := make([]byte, headerLength)
	copy(frame, Magic)
	binary.NativeEndian.PutUint32(frame[len(Magic):], maxPayloadLength+1)
	_, err := ReadMessage(bytes.NewReader(frame))
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Fatalf("expected size error, got %v", err)
	}
}

func TestReadMessageTruncated(t *testing.T) {
	var buffer bytes.Buffer
	if err := WriteMessage(&buffer, Message{Type: MessageRunCommand, Payload: []byte("workspace 1")}); err != nil {
		t.Fatalf("WriteMessage: %v", err)
	}
	truncated := buffer.Bytes()[:buffer.Len()-3]
	if _, err := ReadMessage(bytes.NewReader(truncated)); err == nil {
		t.Fatal("expected error for truncated payload")
	}
}

func TestMessageTypeString(t *testing.T) {
	tests := map[MessageType]string{
		MessageRunCommand:    "RUN_COMMAND",
		MessageGetWorkspaces: "GET_WORKSPACES",
		MessageGetVersion:    "GET_VERSION",
		MessageType(42):      "MessageType(42)",
	}
	for messageType, want := range tests {
		if got := messageType.String(); got != want {
			t.Errorf("MessageType(%d).String() = %q, want %q", uint32(messageType), got, want)
		}
	}
}
