// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "strings"

// RenderScrollbar produces a single-column scrollbar of the given height
// for a list of totalItems of which visibleItems are shown starting at
// scrollOffset. The thumb uses the prompt color and the track the faint
// color. When everything fits the thumb spans the full height.
func RenderScrollbar(styles Styles, height, totalItems, visibleItems, scrollOffset int) string {
	if height <= 0 {
		return ""
	}

	lines := make([]string, height)

	if totalItems <= visibleItems || totalItems <= 0 {
		for index := range lines {
			lines[index] = styles.Prompt.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	// Proportional to visible/total, minimum 1 row.
	thumbSize := max(height*visibleItems/totalItems, 1)

	scrollableRange := totalItems - visibleItems
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	thumbOffset = min(thumbOffset, height-thumbSize)

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = styles.Prompt.Render("┃")
		} else {
			lines[index] = styles.Faint.Render("│")
		}
	}

	return strings.Join(lines, "\n")
}
