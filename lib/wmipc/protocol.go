// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wmipc

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic prefixes every message in both directions.
const Magic = "i3-ipc"

// MessageType identifies a request (and the matching reply).
type MessageType uint32

const (
	// MessageRunCommand runs a command payload. The reply is a JSON
	// array with one result per sub-command.
	MessageRunCommand MessageType = 0

	// MessageGetWorkspaces requests the workspace list.
	MessageGetWorkspaces MessageType = 1

	// MessageGetVersion requests the window manager's version. Used as a
	// cheap connectivity check.
	MessageGetVersion MessageType = 7
)

func (t MessageType) String() string {
	switch t {
	case MessageRunCommand:
		return "RUN_COMMAND"
	case MessageGetWorkspaces:
		return "GET_WORKSPACES"
	case MessageGetVersion:
		return "GET_VERSION"
	default:
		return fmt.Sprintf("MessageType(%d)", uint32(t))
	}
}

// headerLength is the magic plus two uint32 fields.
const headerLength = len(Magic) + 8

// maxPayloadLength bounds a single reply. A workspace list is a few KB;
// 16 MB leaves room for GET_TREE-sized replies should they ever be used.
const maxPayloadLength = 16 * 1024 * 1024

// Message is one framed protocol message.
type Message struct {
	Type    MessageType
	Payload []byte
}

// WriteMessage writes a framed message to w.
func WriteMessage(w io.Writer, message Message) error {
	frame := make([]byte, headerLength+len(message.Payload))
	copy(frame, Magic)
	binary.NativeEndian.PutUint32(frame[len(Magic):], uint32(len(message.Payload)))
	binary.NativeEndian.PutUint32(frame[len(Magic)+4:], uint32(message.Type))
	copy(frame[headerLength:], message.Payload)
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write %s message: %w", message.Type, err)
	}
	return nil
}

// ReadMessage reads one framed message from r.
func ReadMessage(r io.Reader) (Message, error) {
	var header [headerLength]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		return Message{}, fmt.Errorf("read message header: %w", err)
	}
	if string(header[:len(Magic)]) != Magic {
		return Message{}, fmt.Errorf("bad magic %q", header[:len(Magic)])
	}
	payloadLength := binary.NativeEndian.Uint32(header[len(Magic):])
	messageType := MessageType(binary.NativeEndian.Uint32(header[len(Magic)+4:]))
	if payloadLength > maxPayloadLength {
		return Message{}, fmt.Errorf("payload length %d exceeds maximum %d", payloadLength, maxPayloadLength)
	}
	payload := make([]byte, payloadLength)
	if _, err := io.ReadFull(r, payload); err != nil {
		return Message{}, fmt.Errorf("read %s payload: %w", messageType, err)
	}
	return Message{Type: messageType, Payload: payload}, nil
}

// workspaceReply is one entry of a GET_WORKSPACES reply. Fields not
// used by this module (id, rect, representation) are ignored.
type workspaceReply struct {
	Num     int    `json:"num"`
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
	Focused bool   `json:"focused"`
	Urgent  bool   `json:"urgent"`
	Output  string `json:"output"`
}

// CommandResult is one entry of a RUN_COMMAND reply.
type CommandResult struct {
	Success    bool   `json:"success"`
	ParseError bool   `json:"parse_error,omitempty"`
	Error      string `json:"error,omitempty"`
}

// VersionReply is the GET_VERSION reply.
type VersionReply struct {
	Major         int    `json:"major"`
	Minor         int    `json:"minor"`
	Patch         int    `json:"patch"`
	HumanReadable string `json:"human_readable"`
}
