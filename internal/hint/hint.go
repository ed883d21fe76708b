// Package hint provides inline hints shown after the cursor when it sits
// at the end of the line.
package hint

import (
	"strings"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Hinter proposes the text that would follow the buffer contents. The
// returned string is only the missing suffix.
type Hinter interface {
	Hint(buf *buffer.StyledBuffer) (string, bool)
}

// Source looks up the newest line that extends prefix.
type Source interface {
	Latest(prefix string) (string, bool)
}

// History hints the remainder of the newest history entry that extends
// the current line.
type History struct {
	source Source
	// MinLen is the shortest input that produces a hint.
	MinLen int
}

func NewHistory(source Source) *History {
	return &History{source: source, MinLen: 1}
}

func (h *History) Hint(buf *buffer.StyledBuffer) (string, bool) {
	if h.source == nil || buf.Len() < h.MinLen {
		return "", false
	}
	text := buf.Contents()
	line, ok := h.source.Latest(text)
	if !ok {
		return "", false
	}
	return suffix(line, text)
}

// Static hints from a fixed candidate list; the first candidate extending
// the line wins.
type Static struct {
	candidates []string
}

func NewStatic(candidates ...string) *Static {
	return &Static{candidates: candidates}
}

func (h *Static) Hint(buf *buffer.StyledBuffer) (string, bool) {
	if buf.Len() == 0 {
		return "", false
	}
	text := buf.Contents()
	for _, c := range h.candidates {
		if s, ok := suffix(c, text); ok {
			return s, true
		}
	}
	return "", false
}

// Latest makes a Static usable as a Source.
func (h *Static) Latest(prefix string) (string, bool) {
	for _, c := range h.candidates {
		if len(c) > len(prefix) && strings.HasPrefix(c, prefix) {
			return c, true
		}
	}
	return "", false
}

func suffix(line, prefix string) (string, bool) {
	if !strings.HasPrefix(line, prefix) || len(line) == len(prefix) {
		return "", false
	}
	return line[len(prefix):], true
}
