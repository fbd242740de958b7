// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package wsname

import (
	"strconv"
	"strings"
)

// Index is an optional workspace index. Valid is false when the
// identifier carried no index at all, which is different from an
// explicit "0:" prefix (the promoted slot).
type Index struct {
	Value int
	Valid bool
}

// Some returns a valid Index holding value.
func Some(value int) Index {
	return Index{Value: value, Valid: true}
}

// String returns the decimal index, or "none".
func (index Index) String() string {
	if !index.Valid {
		return "none"
	}
	return strconv.Itoa(index.Value)
}

// Separator divides the index from the title in canonical identifiers.
const Separator = ":"

// Decode splits identifier into its index and title. Decoding never
// fails: anything that does not parse as an index is title text.
func Decode(identifier string) (Index, string) {
	position := skipSpace(identifier, 0)
	digitsEnd := skipDigits(identifier, position)
	afterDigits := skipSpace(identifier, digitsEnd)

	if digitsEnd == position {
		// No index. A bare leading separator is still consumed.
		if position < len(identifier) && identifier[position] == ':' {
			return Index{}, identifier[skipSpace(identifier, position+1):]
		}
		return Index{}, identifier
	}

	digits := identifier[position:digitsEnd]
	value, err := strconv.Atoi(digits)
	if err != nil {
		// Overflow. Treat the whole thing as a title rather than
		// inventing an index the window manager would not agree with.
		return Index{}, identifier
	}

	switch {
	case afterDigits == len(identifier):
		return Some(value), digits
	case identifier[afterDigits] == ':':
		title := identifier[skipSpace(identifier, afterDigits+1):]
		if title == "" {
			title = digits
		}
		return Some(value), title
	default:
		return Index{}, identifier
	}
}

// Title returns only the title half of identifier.
func Title(identifier string) string {
	_, title := Decode(identifier)
	return title
}

// Encode returns the canonical identifier "<index>:<title>". No
// escaping is applied; titles containing ":" round-trip through
// [Decode] but not through naive splitting.
func Encode(index int, title string) string {
	return strconv.Itoa(index) + Separator + title
}

// Number mirrors how i3 derives a workspace number from its name: a
// leading decimal run after leading whitespace, or -1 when there is
// none or it is negative. Window managers report this value themselves;
// it is only computed locally when simulating one.
func Number(identifier string) int {
	trimmed := strings.TrimLeft(identifier, " \t\n\v\f\r")
	end := 0
	if end < len(trimmed) && (trimmed[end] == '+' || trimmed[end] == '-') {
		end++
	}
	digitsStart := end
	end = skipDigits(trimmed, end)
	if end == digitsStart {
		return -1
	}
	value, err := strconv.Atoi(trimmed[:end])
	if err != nil || value < 0 {
		return -1
	}
	return value
}

func skipSpace(s string, position int) int {
	for position < len(s) && isSpace(s[position]) {
		position++
	}
	return position
}

func skipDigits(s string, position int) int {
	for position < len(s) && s[position] >= '0' && s[position] <= '9' {
		position++
	}
	return position
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t'
}
