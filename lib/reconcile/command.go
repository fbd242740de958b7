// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"fmt"
	"strings"
)

// BatchSeparator joins commands into one RUN_COMMAND payload. The
// window manager applies them in order with no atomicity across them.
const BatchSeparator = "; "

// GoTo returns the command that focuses workspace target, creating it
// if it does not exist.
func GoTo(target string) string {
	return "workspace " + Quote(target)
}

// MoveContainerTo returns the command that moves the focused container
// to workspace target, creating it if needed. Focus stays where it was.
func MoveContainerTo(target string) string {
	return "move container to workspace " + Quote(target)
}

// Rename returns the command that renames workspace from to to.
func Rename(from, to string) string {
	return "rename workspace " + Quote(from) + " to " + Quote(to)
}

// JoinBatch joins commands for submission as a single request.
func JoinBatch(commands []string) string {
	return strings.Join(commands, BatchSeparator)
}

// Quote wraps s in double quotes, escaping backslashes and quotes.
func Quote(s string) string {
	var builder strings.Builder
	builder.Grow(len(s) + 2)
	builder.WriteByte('"')
	for i := 0; i < len(s); i++ {
		if s[i] == '"' || s[i] == '\\' {
			builder.WriteByte('\\')
		}
		builder.WriteByte(s[i])
	}
	builder.WriteByte('"')
	return builder.String()
}

// Kind identifies which vocabulary command a [Command] is.
type Kind int

const (
	// KindGoTo is "workspace T".
	KindGoTo Kind = iota + 1
	// KindMoveContainer is "move container to workspace T".
	KindMoveContainer
	// KindRename is "rename workspace OLD to NEW".
	KindRename
)

func (k Kind) String() string {
	switch k {
	case KindGoTo:
		return "go_to"
	case KindMoveContainer:
		return "move_container"
	case KindRename:
		return "rename"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Command is a parsed vocabulary command.
type Command struct {
	Kind Kind

	// Target is the destination workspace for go-to and move, and the
	// new name for rename.
	Target string

	// From is the workspace being renamed. Empty for other kinds.
	From string
}

// String renders the command back into vocabulary form.
func (c Command) String() string {
	switch c.Kind {
	case KindGoTo:
		return GoTo(c.Target)
	case KindMoveContainer:
		return MoveContainerTo(c.Target)
	case KindRename:
		return Rename(c.From, c.Target)
	default:
		return c.Kind.String()
	}
}

// ParseBatch splits a RUN_COMMAND payload on unquoted ';' and parses
// each non-empty command.
func ParseBatch(payload string) ([]Command, error) {
	var commands []Command
	for _, raw := range splitUnquoted(payload, ';') {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		command, err := Parse(raw)
		if err != nil {
			return nil, err
		}
		commands = append(commands, command)
	}
	return commands, nil
}

// Parse parses one command in the vocabulary this package emits.
// Unquoted arguments are accepted too, as a user typing into i3-msg
// would write them.
func Parse(raw string) (Command, error) {
	words, err := tokenize(raw)
	if err != nil {
		return Command{}, fmt.Errorf("parsing command %q: %w", raw, err)
	}

	switch {
	case len(words) == 2 && words[0] == "workspace":
		return Command{Kind: KindGoTo, Target: words[1]}, nil
	case len(words) == 5 && words[0] == "move" && words[1] == "container" &&
		words[2] == "to" && words[3] == "workspace":
		return Command{Kind: KindMoveContainer, Target: words[4]}, nil
	case len(words) == 5 && words[0] == "rename" && words[1] == "workspace" && words[3] == "to":
		return Command{Kind: KindRename, From: words[2], Target: words[4]}, nil
	}
	return Command{}, fmt.Errorf("unsupported command %q", strings.TrimSpace(raw))
}

// tokenize splits a command into words, honoring double quotes and
// backslash escapes inside them.
func tokenize(raw string) ([]string, error) {
	var words []string
	var current strings.Builder
	inWord := false
	inQuotes := false

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuotes && c == '\\' && i+1 < len(raw):
			i++
			current.WriteByte(raw[i])
		case c == '"':
			inQuotes = !inQuotes
			inWord = true
		case !inQuotes && (c == ' ' || c == '\t'):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteByte(c)
			inWord = true
		}
	}
	if inQuotes {
		return nil, fmt.Errorf("unterminated quote")
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}

// splitUnquoted splits s on separator bytes outside double quotes.
func splitUnquoted(s string, separator byte) []string {
	var parts []string
	start := 0
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch {
		case inQuotes && s[i] == '\\':
			i++
		case s[i] == '"':
			inQuotes = !inQuotes
		case !inQuotes && s[i] == separator:
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	return append(parts, s[start:])
}
