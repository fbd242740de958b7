// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec provides the CBOR configuration for the fluidspaces
// control protocol.
//
// Two serialization formats are in play:
//
//   - JSON where another program defines the format: the i3/sway IPC
//     payloads and `fluidspaces list --json` output.
//   - CBOR on the control socket between fluidspaces-msg (or
//     `fluidspaces send`) and the daemon.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2): sorted
// map keys, smallest integer encoding, no indefinite-length items.
//
// For buffer-oriented operations:
//
//	data, err := codec.Marshal(value)
//	err = codec.Unmarshal(data, &value)
//
// For stream-oriented operations (sockets):
//
//	encoder := codec.NewEncoder(conn)
//	decoder := codec.NewDecoder(conn)
//
// # Struct Tag Rules
//
// A `cbor` tag marks a type that only ever travels as CBOR, such as the
// socket response envelope. A `json` tag marks a type that travels as
// both: fxamacker/cbor reads `json` tags when `cbor` tags are absent,
// so navigation requests and results carry `json` tags only and print
// unchanged under --json. Never put both tags on one field.
package codec
