package view

// State is the render input of a text screen.
//
// A published State is never modified; edits produce a new value.
type State struct {
	Lines []string

	// LineOffset is the index of the first visible line.
	LineOffset int
	// XOffset is the horizontal pan in pixels (always <= 0).
	XOffset int
}

// Lines returns a State showing lines from the top.
func Lines(lines ...string) State {
	cp := make([]string, len(lines))
	copy(cp, lines)
	return State{Lines: cp}
}

// Loading returns the placeholder shown while a task is running.
func Loading(line string) State {
	return State{Lines: []string{line}}
}

// Error returns a single-line error state.
func Error(line string) State {
	return State{Lines: []string{line}}
}

// Len returns the number of lines.
func (s State) Len() int { return len(s.Lines) }

// Line returns line i, or "" when i is out of range.
func (s State) Line(i int) string {
	if i < 0 || i >= len(s.Lines) {
		return ""
	}
	return s.Lines[i]
}

// MaxLineOffset returns the largest valid LineOffset for a page of pageSize lines.
func (s State) MaxLineOffset(pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	n := len(s.Lines) - pageSize
	if n < 0 {
		return 0
	}
	return n
}

// WithOffsets returns a copy of s with new offsets; the line slice is shared.
func (s State) WithOffsets(lineOffset, xOffset int) State {
	s.LineOffset = lineOffset
	s.XOffset = xOffset
	return s
}
