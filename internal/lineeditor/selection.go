package lineeditor

import (
	"github.com/kobzarvs/qline/internal/autopair"
	"github.com/kobzarvs/qline/internal/event"
	"github.com/kobzarvs/qline/internal/input"
	"github.com/kobzarvs/qline/internal/logger"
)

// The selection is the unordered pair (selectedStart, selectedEnd); start
// is the anchor and the cursor follows end. Equal values mean no selection.

func (l *LineEditor) hasSelection() bool {
	return l.selectedStart != l.selectedEnd
}

// Selection returns the selected range as [from, to).
func (l *LineEditor) Selection() (int, int) {
	return min(l.selectedStart, l.selectedEnd), max(l.selectedStart, l.selectedEnd)
}

// resetSelection collapses the selection onto the cursor.
func (l *LineEditor) resetSelection() {
	pos := l.editor.Buffer().Position()
	l.selectedStart = pos
	l.selectedEnd = pos
}

// Selection extends within [0, Len()]; moving past either end is
// inapplicable.
func (l *LineEditor) selectLeft() status {
	if l.selectedEnd < 1 {
		return statusInapplicable
	}
	l.selectedEnd--
	l.editor.Buffer().SetPosition(l.selectedEnd)
	return statusSelection
}

func (l *LineEditor) selectRight() status {
	if l.selectedEnd >= l.editor.Buffer().Len() {
		return statusInapplicable
	}
	l.selectedEnd++
	l.editor.Buffer().SetPosition(l.selectedEnd)
	return statusSelection
}

func (l *LineEditor) selectAll() status {
	buf := l.editor.Buffer()
	l.selectedStart = 0
	l.selectedEnd = buf.Len()
	buf.SetPosition(l.selectedEnd)
	return statusSelection
}

func (l *LineEditor) applyVisualSelection() {
	if !l.hasSelection() || !l.hasSelectionStyle {
		return
	}
	from, to := l.Selection()
	l.editor.Buffer().StyleRange(from, to, l.selectionStyle)
}

func (l *LineEditor) deleteSelected() {
	if !l.hasSelection() {
		return
	}
	from, to := l.Selection()
	l.editor.RunEdit(event.DeleteSpanCommand(from, to))
	l.editor.Buffer().SetPosition(from)
	l.resetSelection()
}

func (l *LineEditor) copySelected() status {
	if !l.hasSelection() {
		return statusInapplicable
	}
	from, to := l.Selection()
	text, ok := l.editor.Buffer().SubString(from, to)
	if !ok {
		return statusInapplicable
	}
	if err := l.clipboard.SetContents(text); err != nil {
		logger.Debug("copy to clipboard failed", "error", err)
	}
	return statusGeneral
}

func (l *LineEditor) cutSelected() status {
	if l.copySelected() == statusInapplicable {
		return statusInapplicable
	}
	l.deleteSelected()
	return statusGeneral
}

// paste replaces the selection, if any, with the clipboard text.
func (l *LineEditor) paste() status {
	content, err := l.clipboard.Contents()
	if err != nil {
		logger.Debug("read clipboard failed", "error", err)
		return statusInapplicable
	}
	content = input.SanitizePaste(content)
	if content == "" {
		return statusInapplicable
	}
	l.deleteSelected()
	l.editor.RunEdit(event.InsertStringCommand(content))
	l.resetSelection()
	return statusGeneral
}

// surroundSelection wraps [from, to) in p and leaves the cursor at from.
func (l *LineEditor) surroundSelection(p autopair.Pair) {
	from, to := l.Selection()
	buf := l.editor.Buffer()
	buf.SetPosition(from)
	buf.InsertChar(p.Open)
	buf.SetPosition(to + 1)
	buf.InsertChar(p.Close)
	buf.SetPosition(from)
	l.resetSelection()
	l.skipAutoPair = true
}
