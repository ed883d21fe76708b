// Package buffer holds the styled rune buffer edited by the line editor.
package buffer

import (
	"github.com/gdamore/tcell/v2"
)

// StyledBuffer is a single line of runes with one style per rune and a
// cursor position in [0, Len()].
type StyledBuffer struct {
	runes    []rune
	styles   []tcell.Style
	position int
	base     tcell.Style
}

func New() *StyledBuffer {
	return &StyledBuffer{base: tcell.StyleDefault}
}

// FromString returns a buffer holding s with the cursor at the end.
func FromString(s string) *StyledBuffer {
	b := New()
	b.InsertString(s)
	return b
}

// SetBaseStyle sets the style ResetStyles restores every rune to.
func (b *StyledBuffer) SetBaseStyle(style tcell.Style) {
	b.base = style
}

func (b *StyledBuffer) BaseStyle() tcell.Style {
	return b.base
}

func (b *StyledBuffer) Len() int {
	return len(b.runes)
}

func (b *StyledBuffer) Position() int {
	return b.position
}

// SetPosition moves the cursor, clamping to [0, Len()].
func (b *StyledBuffer) SetPosition(pos int) {
	b.position = clamp(pos, 0, len(b.runes))
}

func (b *StyledBuffer) InsertChar(r rune) {
	b.runes = append(b.runes, 0)
	copy(b.runes[b.position+1:], b.runes[b.position:])
	b.runes[b.position] = r
	b.styles = append(b.styles, tcell.StyleDefault)
	copy(b.styles[b.position+1:], b.styles[b.position:])
	b.styles[b.position] = b.base
	b.position++
}

func (b *StyledBuffer) InsertString(s string) {
	if s == "" {
		return
	}
	rs := []rune(s)
	n := len(rs)
	b.runes = append(b.runes, rs...)
	copy(b.runes[b.position+n:], b.runes[b.position:])
	copy(b.runes[b.position:], rs)
	styles := make([]tcell.Style, n)
	for i := range styles {
		styles[i] = b.base
	}
	b.styles = append(b.styles, styles...)
	copy(b.styles[b.position+n:], b.styles[b.position:])
	copy(b.styles[b.position:], styles)
	b.position += n
}

// DeleteRange removes runes in [from, to). Out of range bounds are clamped.
// The cursor stays on the same rune when it is after the range and moves to
// from when it was inside it.
func (b *StyledBuffer) DeleteRange(from, to int) {
	from = clamp(from, 0, len(b.runes))
	to = clamp(to, 0, len(b.runes))
	if from >= to {
		return
	}
	b.runes = append(b.runes[:from], b.runes[to:]...)
	b.styles = append(b.styles[:from], b.styles[to:]...)
	switch {
	case b.position >= to:
		b.position -= to - from
	case b.position > from:
		b.position = from
	}
}

// DeleteLeftChar removes the rune before the cursor. It reports whether a
// rune was removed.
func (b *StyledBuffer) DeleteLeftChar() bool {
	if b.position == 0 {
		return false
	}
	b.DeleteRange(b.position-1, b.position)
	return true
}

// DeleteRightChar removes the rune under the cursor.
func (b *StyledBuffer) DeleteRightChar() bool {
	if b.position >= len(b.runes) {
		return false
	}
	b.DeleteRange(b.position, b.position+1)
	return true
}

// SubString returns the text in [from, to). ok is false when the range is
// empty or outside the buffer.
func (b *StyledBuffer) SubString(from, to int) (string, bool) {
	if from < 0 || to > len(b.runes) || from >= to {
		return "", false
	}
	return string(b.runes[from:to]), true
}

// CharAt returns the rune at index i.
func (b *StyledBuffer) CharAt(i int) (rune, bool) {
	if i < 0 || i >= len(b.runes) {
		return 0, false
	}
	return b.runes[i], true
}

// StyleAt returns the style of the rune at index i.
func (b *StyledBuffer) StyleAt(i int) (tcell.Style, bool) {
	if i < 0 || i >= len(b.styles) {
		return b.base, false
	}
	return b.styles[i], true
}

// StyleRange sets style on runes in [from, to), clamped to the buffer.
func (b *StyledBuffer) StyleRange(from, to int, style tcell.Style) {
	from = clamp(from, 0, len(b.runes))
	to = clamp(to, 0, len(b.runes))
	for i := from; i < to; i++ {
		b.styles[i] = style
	}
}

func (b *StyledBuffer) ResetStyles() {
	for i := range b.styles {
		b.styles[i] = b.base
	}
}

func (b *StyledBuffer) Clear() {
	b.runes = b.runes[:0]
	b.styles = b.styles[:0]
	b.position = 0
}

func (b *StyledBuffer) Contents() string {
	return string(b.runes)
}

// Runes returns a copy of the buffer runes.
func (b *StyledBuffer) Runes() []rune {
	out := make([]rune, len(b.runes))
	copy(out, b.runes)
	return out
}

// WordBefore returns the start offset and text of the word ending at the
// cursor. Word characters are everything except whitespace.
func (b *StyledBuffer) WordBefore() (int, string) {
	start := b.position
	for start > 0 && !isSpace(b.runes[start-1]) {
		start--
	}
	return start, string(b.runes[start:b.position])
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
