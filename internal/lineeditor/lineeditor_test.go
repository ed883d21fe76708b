package lineeditor

import (
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/autopair"
	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/clipboard"
	"github.com/kobzarvs/qline/internal/completion"
	"github.com/kobzarvs/qline/internal/event"
	"github.com/kobzarvs/qline/internal/highlight"
	"github.com/kobzarvs/qline/internal/hint"
)

// script replays events and then reports the source as closed.
type script struct {
	events []tcell.Event
}

func (s *script) PollEvent() tcell.Event {
	if len(s.events) == 0 {
		return nil
	}
	ev := s.events[0]
	s.events = s.events[1:]
	return ev
}

func keys(text string) []tcell.Event {
	var out []tcell.Event
	for _, r := range text {
		out = append(out, tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
	return out
}

func key(k tcell.Key, mod tcell.ModMask) tcell.Event {
	return tcell.NewEventKey(k, 0, mod)
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

// newTestEditor returns an editor holding text with the cursor at the end
// and an in-memory clipboard.
func newTestEditor(t *testing.T, text string) *LineEditor {
	t.Helper()
	l := New(newScreen(t, 40, 10))
	l.SetClipboard(&clipboard.Memory{})
	l.Buffer().InsertString(text)
	l.resetSelection()
	return l
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var sb strings.Builder
	for x := 0; x < w; x++ {
		c := cells[y*w+x]
		if len(c.Runes) == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Runes[0])
	}
	return strings.TrimRight(sb.String(), " ")
}

func readLine(t *testing.T, l *LineEditor, events ...tcell.Event) Result {
	t.Helper()
	l.SetEventSource(&script{events: events})
	res, err := l.ReadLine()
	if err != nil {
		t.Fatalf("ReadLine error: %v", err)
	}
	return res
}

func TestReadLineSubmit(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	events := append(keys("abc"), key(tcell.KeyEnter, tcell.ModNone))
	res := readLine(t, l, events...)
	if res.Status != Success || res.Content != "abc" {
		t.Fatalf("result = %+v, want Success(abc)", res)
	}
	if l.Buffer().Len() != 0 {
		t.Fatalf("buffer not cleared: %q", l.Buffer().Contents())
	}
	if from, to := l.Selection(); from != 0 || to != 0 {
		t.Fatalf("selection not cleared: %d..%d", from, to)
	}
}

func TestReadLineScreenClosed(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	l.SetEventSource(&script{events: keys("ab")})
	_, err := l.ReadLine()
	if !errors.Is(err, ErrScreenClosed) {
		t.Fatalf("err = %v, want ErrScreenClosed", err)
	}
}

func TestReadLineInterrupt(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	events := append(keys("xyz"), key(tcell.KeyCtrlC, tcell.ModCtrl))
	res := readLine(t, l, events...)
	if res.Status != Interrupted || res.Content != "" {
		t.Fatalf("result = %+v, want Interrupted", res)
	}
	if l.Buffer().Len() != 0 {
		t.Fatalf("buffer not cleared after interrupt")
	}
}

func TestReadLineEndSession(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	res := readLine(t, l, key(tcell.KeyCtrlD, tcell.ModCtrl))
	if res.Status != EndTerminalSession {
		t.Fatalf("result = %+v, want EndTerminalSession", res)
	}

	events := append(keys("ab"),
		key(tcell.KeyLeft, tcell.ModNone),
		key(tcell.KeyCtrlD, tcell.ModCtrl),
		key(tcell.KeyEnter, tcell.ModNone))
	res = readLine(t, l, events...)
	if res.Status != Success || res.Content != "a" {
		t.Fatalf("result = %+v, want ctrl+d to delete forward", res)
	}
}

func TestReadLineBracketedPaste(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	events := []tcell.Event{tcell.NewEventPaste(true)}
	events = append(events, keys("hi")...)
	events = append(events, key(tcell.KeyEnter, tcell.ModNone))
	events = append(events, keys("there")...)
	events = append(events, tcell.NewEventPaste(false), key(tcell.KeyEnter, tcell.ModNone))
	res := readLine(t, l, events...)
	if res.Content != "hi there" {
		t.Fatalf("content = %q, want pasted text on one line", res.Content)
	}
}

func TestReadLinePaintsPromptAndLine(t *testing.T) {
	s := newScreen(t, 40, 5)
	l := New(s)
	l.SetPrompt("> ", tcell.StyleDefault)
	l.SetStartPosition(0, 2)
	l.SetEventSource(&script{events: keys("ls")})
	if _, err := l.ReadLine(); !errors.Is(err, ErrScreenClosed) {
		t.Fatalf("err = %v", err)
	}
	if got := rowText(s, 2); got != "> ls" {
		t.Fatalf("row 2 = %q", got)
	}
}

func TestInapplicableSkipsRender(t *testing.T) {
	l := New(newScreen(t, 40, 5))
	calls := 0
	l.AddHighlighter(highlight.Func(func(*buffer.StyledBuffer) { calls++ }))
	readLine(t, l,
		key(tcell.KeyLeft, tcell.ModShift),
		key(tcell.KeyCtrlX, tcell.ModCtrl),
		key(tcell.KeyUp, tcell.ModNone),
		key(tcell.KeyCtrlC, tcell.ModCtrl))
	if calls != 0 {
		t.Fatalf("highlighter ran %d times for inapplicable events", calls)
	}
}

func TestHandleEnterHidden(t *testing.T) {
	l := newTestEditor(t, "abc")
	st, res := l.handleEvent(event.Simple(event.KindEnter))
	if st != statusExit || res.Status != Success || res.Content != "abc" {
		t.Fatalf("Enter = %v %+v", st, res)
	}
	if l.Buffer().Len() != 0 || l.Buffer().Position() != 0 {
		t.Fatalf("buffer not cleared")
	}
}

func TestEditResetsSelection(t *testing.T) {
	l := newTestEditor(t, "hello")
	l.selectAll()
	l.handleEvent(event.Edit(event.InsertCharCommand('!')))
	pos := l.Buffer().Position()
	if l.selectedStart != pos || l.selectedEnd != pos {
		t.Fatalf("selection %d..%d, cursor %d", l.selectedStart, l.selectedEnd, pos)
	}

	l.selectLeft()
	l.handleEvent(event.Simple(event.KindBackspace))
	pos = l.Buffer().Position()
	if l.selectedStart != pos || l.selectedEnd != pos {
		t.Fatalf("selection %d..%d after backspace, cursor %d", l.selectedStart, l.selectedEnd, pos)
	}
}

func TestMovementResetsSelection(t *testing.T) {
	l := newTestEditor(t, "hello world")
	l.selectLeft()
	l.selectLeft()
	l.handleEvent(event.Movement(event.MoveLeftWord))
	if l.hasSelection() {
		t.Fatalf("selection survived movement")
	}
	if l.selectedEnd != l.Buffer().Position() {
		t.Fatalf("selection not collapsed on cursor")
	}
}

func TestRenderOrder(t *testing.T) {
	l := newTestEditor(t, "abcd")
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	blue := tcell.StyleDefault.Foreground(tcell.ColorBlue)
	sel := tcell.StyleDefault.Background(tcell.ColorYellow)
	l.AddHighlighter(highlight.Func(func(b *buffer.StyledBuffer) { b.StyleRange(0, b.Len(), red) }))
	l.AddHighlighter(highlight.Func(func(b *buffer.StyledBuffer) { b.StyleRange(0, 1, blue) }))
	l.SetSelectionStyle(sel)
	l.selectLeft()

	l.render(l.Buffer().Len())
	buf := l.Buffer()
	want := []tcell.Style{blue, red, red, sel}
	for i, w := range want {
		if got, _ := buf.StyleAt(i); got != w {
			t.Fatalf("style at %d wrong", i)
		}
	}
}

func TestRenderResetsStylesBeforeHighlighting(t *testing.T) {
	l := newTestEditor(t, "ab")
	red := tcell.StyleDefault.Foreground(tcell.ColorRed)
	l.Buffer().StyleRange(0, 2, red)
	l.render(l.Buffer().Len())
	if got, _ := l.Buffer().StyleAt(0); got == red {
		t.Fatalf("stale style survived render")
	}
}

type countingHinter struct {
	calls int
	text  string
}

func (h *countingHinter) Hint(*buffer.StyledBuffer) (string, bool) {
	h.calls++
	return h.text, h.text != ""
}

func TestHintOnlyAtEnd(t *testing.T) {
	l := newTestEditor(t, "gi")
	screen := l.screen.(tcell.SimulationScreen)
	empty := &countingHinter{}
	first := &countingHinter{text: "t status"}
	second := &countingHinter{text: "never"}
	l.AddHinter(empty)
	l.AddHinter(first)
	l.AddHinter(second)

	l.Buffer().SetPosition(1)
	l.render(l.Buffer().Len())
	if empty.calls+first.calls+second.calls != 0 {
		t.Fatalf("hinters queried with cursor inside the line")
	}

	l.Buffer().SetPosition(2)
	l.render(l.Buffer().Len())
	if first.calls != 1 || second.calls != 0 {
		t.Fatalf("hinter calls first=%d second=%d", first.calls, second.calls)
	}
	if got := rowText(screen, 0); got != "git status" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestHistoryHinterWiring(t *testing.T) {
	l := newTestEditor(t, "mak")
	l.AddHinter(hint.NewStatic("make build"))
	l.render(l.Buffer().Len())
	if got := rowText(l.screen.(tcell.SimulationScreen), 0); got != "make build" {
		t.Fatalf("row 0 = %q", got)
	}
}

func TestAutoPairRunsOnSingleInsert(t *testing.T) {
	l := newTestEditor(t, "f")
	l.SetAutoPair(autopair.New())

	before := l.Buffer().Len()
	l.handleEvent(event.Edit(event.InsertCharCommand('(')))
	l.render(before)
	if l.Buffer().Contents() != "f()" || l.Buffer().Position() != 2 {
		t.Fatalf("got %q @%d", l.Buffer().Contents(), l.Buffer().Position())
	}

	before = l.Buffer().Len()
	l.handleEvent(event.Edit(event.InsertStringCommand("x(")))
	l.render(before)
	if l.Buffer().Contents() != "f(x()" {
		t.Fatalf("auto-pair ran after multi-rune insert: %q", l.Buffer().Contents())
	}
}

func TestResizeRepaints(t *testing.T) {
	s := newScreen(t, 40, 5)
	l := New(s)
	l.SetEventSource(&script{events: append(keys("ok"), tcell.NewEventResize(40, 5))})
	l.ReadLine()
	if got := rowText(s, 0); got != "ok" {
		t.Fatalf("row 0 after resize = %q", got)
	}
}

func TestCompletionAcceptFlow(t *testing.T) {
	l := New(newScreen(t, 40, 10))
	l.SetCompleter(completion.NewWords("status", "stash"))
	events := append(keys("git st"),
		key(tcell.KeyTab, tcell.ModNone),
		key(tcell.KeyDown, tcell.ModNone),
		key(tcell.KeyEnter, tcell.ModNone),
		key(tcell.KeyEnter, tcell.ModNone))
	res := readLine(t, l, events...)
	if res.Status != Success || res.Content != "git status" {
		t.Fatalf("result = %+v, want git status", res)
	}
}
