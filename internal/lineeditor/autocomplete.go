package lineeditor

import (
	"github.com/kobzarvs/qline/internal/event"
)

// toggleAutoComplete shows the completer's suggestions under the cursor, or
// hides the list when it is already shown. Hiding reports inapplicable so
// the line is not repainted.
func (l *LineEditor) toggleAutoComplete() status {
	if l.listView.IsVisible() {
		l.hideAutoComplete()
		return statusInapplicable
	}
	if l.completer == nil {
		return statusInapplicable
	}
	buf := l.editor.Buffer()
	suggestions := l.completer.Complete(buf)
	if len(suggestions) == 0 {
		return statusInapplicable
	}

	l.listView.SetFocusStyle(l.focusStyle)
	l.listView.Reset()
	l.listView.SetElements(suggestions)

	col, row := l.view.StartPosition()
	_, rows := l.screen.Size()
	if height := l.listView.Len(); row+height >= rows {
		newRow := max(rows-2-height, 0)
		if newRow != row {
			l.view.ClearLine()
			l.view.SetStartPosition(col, newRow)
			l.view.RenderLineBuffer(buf)
			row = newRow
		}
	}

	l.listView.SetAnchor(l.view.CursorColumn(buf), row)
	l.listView.Clear()
	l.listView.Render()
	l.listView.SetVisibility(true)
	return statusAutoComplete
}

// focusSuggestion moves the list focus. With the list hidden it is
// inapplicable.
func (l *LineEditor) focusSuggestion(next bool) status {
	if !l.listView.IsVisible() {
		return statusInapplicable
	}
	if next {
		l.listView.FocusNext()
	} else {
		l.listView.FocusPrevious()
	}
	l.listView.Clear()
	l.listView.Render()
	return statusAutoComplete
}

// acceptSuggestion replaces the focused suggestion's span with its content.
// ok is false when there is nothing to accept and Enter should submit.
func (l *LineEditor) acceptSuggestion() (status, bool) {
	if !l.listView.IsVisible() {
		return statusGeneral, false
	}
	s, ok := l.listView.SelectedElement()
	if !ok {
		return statusGeneral, false
	}
	l.editor.RunEdit(event.DeleteSpanCommand(s.Span.Start, s.Span.End))
	l.editor.Buffer().SetPosition(s.Span.Start)
	l.editor.RunEdit(event.InsertStringCommand(s.Content))
	l.skipAutoPair = true
	l.hideAutoComplete()
	l.resetSelection()
	return statusSelection, true
}

func (l *LineEditor) hideAutoComplete() {
	if l.listView.IsVisible() {
		l.listView.Clear()
	}
	l.listView.SetVisibility(false)
}
