package editor

import (
	"testing"

	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/event"
)

func newTestEditor(text string, pos int) *Editor {
	e := New()
	e.buf = buffer.FromString(text)
	e.buf.SetPosition(pos)
	return e
}

func TestMoveWordLeftRight(t *testing.T) {
	e := newTestEditor("foo  bar_baz;qux", 16)
	e.RunMovement(event.MoveLeftWord)
	if e.buf.Position() != 13 {
		t.Fatalf("word left pos = %d, want 13", e.buf.Position())
	}
	e.RunMovement(event.MoveLeftWord)
	if e.buf.Position() != 12 {
		t.Fatalf("word left pos = %d, want 12", e.buf.Position())
	}

	e.buf.SetPosition(0)
	e.RunMovement(event.MoveRightWord)
	if e.buf.Position() != 5 {
		t.Fatalf("word right pos = %d, want 5", e.buf.Position())
	}
	e.RunMovement(event.MoveRightWord)
	if e.buf.Position() != 12 {
		t.Fatalf("word right pos = %d, want 12", e.buf.Position())
	}
}

func TestMoveCharClamps(t *testing.T) {
	e := newTestEditor("ab", 0)
	e.RunMovement(event.MoveLeftChar)
	if e.buf.Position() != 0 {
		t.Fatalf("pos = %d, want 0", e.buf.Position())
	}
	e.RunMovement(event.MoveToEnd)
	e.RunMovement(event.MoveRightChar)
	if e.buf.Position() != 2 {
		t.Fatalf("pos = %d, want 2", e.buf.Position())
	}
}

func TestEditCommands(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		pos     int
		cmd     event.EditCommand
		want    string
		wantPos int
	}{
		{"insert char", "ac", 1, event.InsertCharCommand('b'), "abc", 2},
		{"insert string", "ad", 1, event.InsertStringCommand("bc"), "abcd", 3},
		{"delete left", "abc", 2, event.EditCommand{Op: event.DeleteLeftChar}, "ac", 1},
		{"delete right", "abc", 1, event.EditCommand{Op: event.DeleteRightChar}, "ac", 1},
		{"delete span", "abcdef", 6, event.DeleteSpanCommand(1, 4), "aef", 3},
		{"delete word left", "git commit", 10, event.EditCommand{Op: event.DeleteWordLeft}, "git ", 4},
		{"delete to start", "hello world", 6, event.EditCommand{Op: event.DeleteToStart}, "world", 0},
		{"delete to end", "hello world", 5, event.EditCommand{Op: event.DeleteToEnd}, "hello", 5},
		{"clear", "hello", 2, event.EditCommand{Op: event.Clear}, "", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEditor(tt.text, tt.pos)
			e.RunEdit(tt.cmd)
			if got := e.Content(); got != tt.want {
				t.Fatalf("content = %q, want %q", got, tt.want)
			}
			if e.buf.Position() != tt.wantPos {
				t.Fatalf("pos = %d, want %d", e.buf.Position(), tt.wantPos)
			}
		})
	}
}
