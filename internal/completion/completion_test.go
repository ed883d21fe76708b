package completion

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/buffer"
)

func contents(s []Suggestion) []string {
	out := make([]string, len(s))
	for i, sg := range s {
		out[i] = sg.Content
	}
	return out
}

func TestWordsComplete(t *testing.T) {
	c := NewWords("status", "stash", "commit", "stash", " ")
	buf := buffer.FromString("git st")
	got := c.Complete(buf)
	if want := []string{"stash", "status"}; !reflect.DeepEqual(contents(got), want) {
		t.Fatalf("Complete = %v, want %v", contents(got), want)
	}
	if got[0].Span != (Span{Start: 4, End: 6}) {
		t.Fatalf("span = %+v, want 4..6", got[0].Span)
	}

	c.Max = 1
	if got := c.Complete(buf); len(got) != 1 {
		t.Fatalf("Max=1 returned %d suggestions", len(got))
	}
	if got := c.Complete(buffer.FromString("git status")); len(got) != 0 {
		t.Fatalf("exact word completed: %v", contents(got))
	}
}

type fakeSearcher struct {
	lines []string
	err   error
}

func (f fakeSearcher) Search(prefix string, n int) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []string
	for _, l := range f.lines {
		if strings.HasPrefix(l, prefix) && len(out) < n {
			out = append(out, l)
		}
	}
	return out, nil
}

func TestHistoryComplete(t *testing.T) {
	c := NewHistory(fakeSearcher{lines: []string{"go test", "go vet", "go"}}, 0)
	buf := buffer.FromString("go")
	got := c.Complete(buf)
	if want := []string{"go test", "go vet"}; !reflect.DeepEqual(contents(got), want) {
		t.Fatalf("Complete = %v, want %v", contents(got), want)
	}
	if got[1].Span != (Span{Start: 0, End: 2}) {
		t.Fatalf("span = %+v", got[1].Span)
	}

	failing := NewHistory(fakeSearcher{err: errors.New("boom")}, 3)
	if got := failing.Complete(buf); got != nil {
		t.Fatalf("Complete on error = %v", got)
	}
}

func TestChainFirstNonEmpty(t *testing.T) {
	empty := Func(func(*buffer.StyledBuffer) []Suggestion { return nil })
	words := NewWords("alpha")
	got := Chain{empty, words}.Complete(buffer.FromString("al"))
	if len(got) != 1 || got[0].Content != "alpha" {
		t.Fatalf("Chain = %v", contents(got))
	}
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

func suggestions(words ...string) []Suggestion {
	out := make([]Suggestion, len(words))
	for i, w := range words {
		out[i] = Suggestion{Content: w}
	}
	return out
}

func TestDropDownFocusWraps(t *testing.T) {
	d := NewDropDown(newScreen(t, 20, 10))
	if _, ok := d.SelectedElement(); ok {
		t.Fatalf("empty list has a selection")
	}
	d.SetElements(suggestions("a", "b", "c"))
	if sel, _ := d.SelectedElement(); sel.Content != "a" {
		t.Fatalf("initial focus = %q", sel.Content)
	}
	d.FocusPrevious()
	if sel, _ := d.SelectedElement(); sel.Content != "c" {
		t.Fatalf("focus after previous = %q, want c", sel.Content)
	}
	d.FocusNext()
	d.FocusNext()
	if sel, _ := d.SelectedElement(); sel.Content != "b" {
		t.Fatalf("focus after next x2 = %q, want b", sel.Content)
	}
	d.Reset()
	if d.Len() != 0 {
		t.Fatalf("Len after Reset = %d", d.Len())
	}
}

func TestDropDownRenderAndClear(t *testing.T) {
	s := newScreen(t, 20, 10)
	d := NewDropDown(s)
	focus := tcell.StyleDefault.Background(tcell.ColorRed)
	d.SetFocusStyle(focus)
	d.SetElements(suggestions("one", "two"))
	d.SetAnchor(3, 2)
	d.Render()

	if got := rowText(s, 3); got != "    one" {
		t.Fatalf("row 3 = %q", got)
	}
	if got := rowText(s, 4); got != "    two" {
		t.Fatalf("row 4 = %q", got)
	}
	cells, w, _ := s.GetContents()
	if cells[3*w+4].Style != focus {
		t.Fatalf("focused row not painted with focus style")
	}
	if cells[4*w+4].Style == focus {
		t.Fatalf("unfocused row painted with focus style")
	}

	d.Clear()
	if got := rowText(s, 3); got != "" {
		t.Fatalf("row 3 after Clear = %q", got)
	}
}

func TestDropDownScrollsToFocus(t *testing.T) {
	s := newScreen(t, 20, 10)
	d := NewDropDown(s)
	d.SetMaxHeight(2)
	d.SetElements(suggestions("a", "b", "c"))
	if d.Len() != 2 {
		t.Fatalf("Len = %d, want 2", d.Len())
	}
	d.FocusNext()
	d.FocusNext()
	d.Render()
	if got := rowText(s, 1); got != " b" {
		t.Fatalf("row 1 = %q, want b", got)
	}
	if got := rowText(s, 2); got != " c" {
		t.Fatalf("row 2 = %q, want c", got)
	}
}

func TestDropDownShiftsLeftAtEdge(t *testing.T) {
	s := newScreen(t, 10, 5)
	d := NewDropDown(s)
	d.SetElements(suggestions("abcdef"))
	d.SetAnchor(8, 0)
	d.Render()
	if got := rowText(s, 1); got != "   abcdef" {
		t.Fatalf("row 1 = %q", got)
	}
}
