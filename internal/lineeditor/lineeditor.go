// Package lineeditor reads one line of input from a tcell screen with
// selection, clipboard, highlighting, hints and completion.
package lineeditor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/autopair"
	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/clipboard"
	"github.com/kobzarvs/qline/internal/completion"
	"github.com/kobzarvs/qline/internal/editor"
	"github.com/kobzarvs/qline/internal/event"
	"github.com/kobzarvs/qline/internal/highlight"
	"github.com/kobzarvs/qline/internal/hint"
	"github.com/kobzarvs/qline/internal/input"
	"github.com/kobzarvs/qline/internal/keybindings"
	"github.com/kobzarvs/qline/internal/logger"
	"github.com/kobzarvs/qline/internal/view"
)

// EventSource delivers raw terminal events. A tcell.Screen is one. A nil
// event means the source is closed.
type EventSource interface {
	PollEvent() tcell.Event
}

// LineEditor owns the buffer, selection and completion list of a session.
// It is not safe for concurrent use.
type LineEditor struct {
	screen      tcell.Screen
	source      EventSource
	editor      *editor.Editor
	view        *view.TerminalView
	keybindings *keybindings.Keybindings
	classifier  *input.Classifier

	highlighters []highlight.Highlighter
	hinters      []hint.Hinter
	completer    completion.Completer
	listView     completion.ListView
	autoPair     autopair.AutoPair
	clipboard    clipboard.Clipboard

	surround      bool
	surroundPairs []autopair.Pair
	skipAutoPair  bool

	selectionStyle    tcell.Style
	hasSelectionStyle bool
	focusStyle        tcell.Style
	cursorStyle       tcell.CursorStyle

	selectedStart int
	selectedEnd   int
}

func New(screen tcell.Screen) *LineEditor {
	kb := keybindings.Default()
	return &LineEditor{
		screen:            screen,
		source:            screen,
		editor:            editor.New(),
		view:              view.New(screen),
		keybindings:       kb,
		classifier:        input.NewClassifier(kb, input.Text),
		listView:          completion.NewDropDown(screen),
		clipboard:         clipboard.Default(),
		surroundPairs:     autopair.DefaultPairs,
		selectionStyle:    tcell.StyleDefault.Reverse(true),
		hasSelectionStyle: true,
		focusStyle:        tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
		cursorStyle:       tcell.CursorStyleDefault,
	}
}

// SetEventSource replaces the screen as the source of raw events.
func (l *LineEditor) SetEventSource(source EventSource) {
	l.source = source
}

func (l *LineEditor) Keybindings() *keybindings.Keybindings {
	return l.keybindings
}

// SetKeybindings replaces the chord table used by the classifier.
func (l *LineEditor) SetKeybindings(kb *keybindings.Keybindings) {
	l.keybindings = kb
	l.classifier.SetBindings(kb)
}

func (l *LineEditor) Buffer() *buffer.StyledBuffer {
	return l.editor.Buffer()
}

func (l *LineEditor) View() *view.TerminalView {
	return l.view
}

func (l *LineEditor) SetPrompt(prompt string, style tcell.Style) {
	l.view.SetPrompt(prompt, style)
}

// SetStartPosition sets where the prompt is painted.
func (l *LineEditor) SetStartPosition(col, row int) {
	l.view.SetStartPosition(col, row)
}

func (l *LineEditor) StartPosition() (int, int) {
	return l.view.StartPosition()
}

func (l *LineEditor) SetInputFilter(filter input.Filter) {
	l.classifier.SetFilter(filter)
}

// SetAutoPair sets the pair policy; nil disables auto-pairing.
func (l *LineEditor) SetAutoPair(a autopair.AutoPair) {
	l.autoPair = a
}

func (l *LineEditor) AddHighlighter(h highlight.Highlighter) {
	l.highlighters = append(l.highlighters, h)
}

func (l *LineEditor) ClearHighlighters() {
	l.highlighters = nil
}

func (l *LineEditor) AddHinter(h hint.Hinter) {
	l.hinters = append(l.hinters, h)
}

func (l *LineEditor) ClearHinters() {
	l.hinters = nil
}

func (l *LineEditor) SetCompleter(c completion.Completer) {
	l.completer = c
}

func (l *LineEditor) ClearCompleter() {
	l.completer = nil
}

func (l *LineEditor) SetAutoCompleteView(v completion.ListView) {
	l.listView = v
}

func (l *LineEditor) SetClipboard(c clipboard.Clipboard) {
	l.clipboard = c
}

func (l *LineEditor) EnableSurroundSelection(enable bool) {
	l.surround = enable
}

// SetSurroundPairs sets the pairs used by surround-insert.
func (l *LineEditor) SetSurroundPairs(pairs []autopair.Pair) {
	l.surroundPairs = pairs
}

func (l *LineEditor) SetSelectionStyle(style tcell.Style) {
	l.selectionStyle = style
	l.hasSelectionStyle = true
}

// ClearSelectionStyle stops painting the selection.
func (l *LineEditor) ClearSelectionStyle() {
	l.hasSelectionStyle = false
}

// SetFocusStyle sets the style of the focused completion row.
func (l *LineEditor) SetFocusStyle(style tcell.Style) {
	l.focusStyle = style
}

func (l *LineEditor) SetCursorStyle(style tcell.CursorStyle) {
	l.cursorStyle = style
}

// ReadLine runs one session: it paints the prompt, applies events until
// the line is submitted, interrupted or the session ends, and returns how
// it ended.
func (l *LineEditor) ReadLine() (Result, error) {
	l.view.SetCursorStyle(l.cursorStyle)
	l.screen.EnablePaste()
	l.screen.EnableFocus()
	defer func() {
		l.screen.DisablePaste()
		l.screen.DisableFocus()
		l.view.SetCursorStyle(tcell.CursorStyleDefault)
	}()

	l.editor.Buffer().Clear()
	l.resetSelection()
	l.classifier.Reset()
	l.hideAutoComplete()
	l.view.RenderPromptBuffer()

	for {
		ev, err := l.nextEvent()
		if err != nil {
			return Result{}, err
		}

		lenBefore := l.editor.Buffer().Len()
		l.skipAutoPair = false

		st, result := l.handleEvent(ev)
		switch st {
		case statusAutoComplete:
			continue
		case statusInapplicable:
			logger.Debug("inapplicable event", "event", ev.String())
			continue
		case statusExit:
			logger.Debug("read line finished", "status", result.Status.String())
			return result, nil
		}

		l.render(lenBefore)
	}
}

// nextEvent polls until the classifier yields a semantic event.
func (l *LineEditor) nextEvent() (event.Event, error) {
	for {
		raw := l.source.PollEvent()
		if raw == nil {
			return event.Event{}, fmt.Errorf("read line: %w", ErrScreenClosed)
		}
		if _, ok := raw.(*tcell.EventResize); ok {
			l.screen.Sync()
			l.render(l.editor.Buffer().Len())
			continue
		}
		if ev, ok := l.classifier.Classify(raw); ok {
			return ev, nil
		}
	}
}

func (l *LineEditor) handleEvent(ev event.Event) (status, Result) {
	buf := l.editor.Buffer()
	switch ev.Kind {
	case event.KindEdit:
		return l.applyEdits(ev.Edits), Result{}
	case event.KindMovement:
		for _, m := range ev.Movements {
			l.editor.RunMovement(m)
		}
		l.resetSelection()
		return statusMovement, Result{}
	case event.KindEnter:
		if st, ok := l.acceptSuggestion(); ok {
			return st, Result{}
		}
		content := buf.Contents()
		l.hideAutoComplete()
		buf.Clear()
		l.resetSelection()
		return statusExit, Result{Status: Success, Content: content}
	case event.KindUp:
		return l.focusSuggestion(false), Result{}
	case event.KindDown:
		return l.focusSuggestion(true), Result{}
	case event.KindLeft:
		l.editor.RunMovement(event.MoveLeftChar)
		l.resetSelection()
		return statusMovement, Result{}
	case event.KindRight:
		l.editor.RunMovement(event.MoveRightChar)
		l.resetSelection()
		return statusMovement, Result{}
	case event.KindDelete:
		return l.deleteOrSelection(event.DeleteRightChar), Result{}
	case event.KindBackspace:
		return l.deleteOrSelection(event.DeleteLeftChar), Result{}
	case event.KindSelectLeft:
		return l.selectLeft(), Result{}
	case event.KindSelectRight:
		return l.selectRight(), Result{}
	case event.KindSelectAll:
		return l.selectAll(), Result{}
	case event.KindCutSelected:
		return l.cutSelected(), Result{}
	case event.KindCopySelected:
		return l.copySelected(), Result{}
	case event.KindPaste:
		return l.paste(), Result{}
	case event.KindToggleAutoComplete:
		return l.toggleAutoComplete(), Result{}
	case event.KindInterrupt:
		l.hideAutoComplete()
		buf.Clear()
		l.resetSelection()
		return statusExit, Result{Status: Interrupted}
	case event.KindEndSession:
		if buf.Len() == 0 {
			l.hideAutoComplete()
			return statusExit, Result{Status: EndTerminalSession}
		}
		return l.deleteOrSelection(event.DeleteRightChar), Result{}
	default:
		return statusInapplicable, Result{}
	}
}

// applyEdits runs edit commands in order. A typed opener with an active
// selection wraps the selection instead of being inserted.
func (l *LineEditor) applyEdits(cmds []event.EditCommand) status {
	for _, cmd := range cmds {
		if cmd.Op == event.InsertChar && l.surround && l.hasSelection() {
			if p, ok := autopair.Lookup(l.surroundPairs, cmd.Char); ok {
				l.surroundSelection(p)
				return statusEdit
			}
		}
		l.editor.RunEdit(cmd)
	}
	l.resetSelection()
	return statusEdit
}

func (l *LineEditor) deleteOrSelection(op event.EditOp) status {
	if l.hasSelection() {
		l.deleteSelected()
	} else {
		l.editor.RunEdit(event.EditCommand{Op: op})
	}
	l.resetSelection()
	return statusEdit
}

// render recomputes styles and hints and repaints the line. Auto-pair only
// runs when the iteration grew the buffer by exactly one rune and did not
// surround a selection or accept a suggestion, so pasted or completed text
// is never paired.
func (l *LineEditor) render(lenBefore int) {
	buf := l.editor.Buffer()
	if l.autoPair != nil && !l.skipAutoPair && buf.Len() == lenBefore+1 {
		l.autoPair.CompletePair(buf)
	}

	buf.ResetStyles()
	for _, h := range l.highlighters {
		h.Highlight(buf)
	}
	l.applyVisualSelection()
	l.view.RenderLineBuffer(buf)

	if buf.Position() == buf.Len() {
		for _, h := range l.hinters {
			if text, ok := h.Hint(buf); ok && text != "" {
				l.view.RenderHint(text)
				break
			}
		}
	}

	if l.listView.IsVisible() {
		l.listView.Render()
	}
}
