// Package editor runs edit and movement commands against a styled buffer.
package editor

import (
	"unicode"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/event"
)

type Editor struct {
	buf *buffer.StyledBuffer
}

func New() *Editor {
	return &Editor{buf: buffer.New()}
}

// Buffer returns the buffer the editor owns.
func (e *Editor) Buffer() *buffer.StyledBuffer {
	return e.buf
}

func (e *Editor) Content() string {
	return e.buf.Contents()
}

func (e *Editor) RunEdit(cmd event.EditCommand) {
	switch cmd.Op {
	case event.InsertChar:
		e.buf.InsertChar(cmd.Char)
	case event.InsertString:
		e.buf.InsertString(cmd.Text)
	case event.DeleteLeftChar:
		e.buf.DeleteLeftChar()
	case event.DeleteRightChar:
		e.buf.DeleteRightChar()
	case event.DeleteSpan:
		e.buf.DeleteRange(cmd.From, cmd.To)
	case event.DeleteWordLeft:
		e.deleteWordLeft()
	case event.DeleteToStart:
		e.buf.DeleteRange(0, e.buf.Position())
	case event.DeleteToEnd:
		e.buf.DeleteRange(e.buf.Position(), e.buf.Len())
	case event.Clear:
		e.buf.Clear()
	}
}

func (e *Editor) RunMovement(cmd event.MovementCommand) {
	switch cmd {
	case event.MoveLeftChar:
		e.buf.SetPosition(e.buf.Position() - 1)
	case event.MoveRightChar:
		e.buf.SetPosition(e.buf.Position() + 1)
	case event.MoveLeftWord:
		e.moveWordLeft()
	case event.MoveRightWord:
		e.moveWordRight()
	case event.MoveToStart:
		e.buf.SetPosition(0)
	case event.MoveToEnd:
		e.buf.SetPosition(e.buf.Len())
	}
}

func (e *Editor) deleteWordLeft() {
	end := e.buf.Position()
	e.moveWordLeft()
	e.buf.DeleteRange(e.buf.Position(), end)
}

func (e *Editor) moveWordLeft() {
	line := e.buf.Runes()
	if e.buf.Position() <= 0 {
		return
	}
	idx := e.buf.Position() - 1
	for idx > 0 && isSpaceRune(line[idx]) {
		idx--
	}
	if isWordRune(line[idx]) {
		for idx > 0 && isWordRune(line[idx-1]) {
			idx--
		}
		e.buf.SetPosition(idx)
		return
	}
	for idx > 0 && !isSpaceRune(line[idx-1]) && !isWordRune(line[idx-1]) {
		idx--
	}
	e.buf.SetPosition(idx)
}

func (e *Editor) moveWordRight() {
	line := e.buf.Runes()
	idx := e.buf.Position()
	if idx >= len(line) {
		return
	}
	if isSpaceRune(line[idx]) {
		for idx < len(line) && isSpaceRune(line[idx]) {
			idx++
		}
		e.buf.SetPosition(idx)
		return
	}
	if isWordRune(line[idx]) {
		for idx < len(line) && isWordRune(line[idx]) {
			idx++
		}
	} else {
		for idx < len(line) && !isSpaceRune(line[idx]) && !isWordRune(line[idx]) {
			idx++
		}
	}
	for idx < len(line) && isSpaceRune(line[idx]) {
		idx++
	}
	e.buf.SetPosition(idx)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isSpaceRune(r rune) bool {
	return unicode.IsSpace(r)
}
