// Package format renders parse results, failure diagnostics and memoizer
// listings for human consumption.
package format

import (
	"fmt"
	"sort"
)

// LineMap translates positions (rune offsets) into 1-based line and column
// numbers.
type LineMap struct {
	// lineStarts[i] is the offset of the first character of line i+1.
	lineStarts []int
}

// NewLineMap indexes the line boundaries of text.
func NewLineMap(text string) *LineMap {
	starts := []int{0}
	pos := 0
	for _, r := range text {
		pos++
		if r == '\n' {
			starts = append(starts, pos)
		}
	}
	return &LineMap{lineStarts: starts}
}

// Position returns the line and column of offset, both 1-based.
func (m *LineMap) Position(offset int) (line, col int) {
	i := sort.Search(len(m.lineStarts), func(i int) bool {
		return m.lineStarts[i] > offset
	}) - 1
	return i + 1, offset - m.lineStarts[i] + 1
}

// String renders offset as "line:col".
func (m *LineMap) String(offset int) string {
	line, col := m.Position(offset)
	return fmt.Sprintf("%d:%d", line, col)
}

// Describe renders offset through m, or as a plain offset when m is nil.
func Describe(m *LineMap, offset int) string {
	if m == nil {
		return fmt.Sprintf("%d", offset)
	}
	return m.String(offset)
}
