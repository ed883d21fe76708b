package input

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/event"
	"github.com/kobzarvs/qline/internal/keybindings"
)

// Bindings is the lookup the classifier resolves chords against.
type Bindings interface {
	Find(c keybindings.KeyCombination) (event.Event, bool)
}

// Classifier turns one raw tcell event into zero or one semantic event.
// Bracketed paste arrives as a start marker, key events and an end marker;
// the keys in between are collected and emitted as one insert-string event.
type Classifier struct {
	bindings Bindings
	filter   Filter
	pasting  bool
	paste    strings.Builder
}

func NewClassifier(bindings Bindings, filter Filter) *Classifier {
	if filter == nil {
		filter = Text
	}
	return &Classifier{bindings: bindings, filter: filter}
}

func (c *Classifier) SetFilter(filter Filter) {
	if filter == nil {
		filter = Text
	}
	c.filter = filter
}

func (c *Classifier) SetBindings(bindings Bindings) {
	c.bindings = bindings
}

// Reset drops a partially collected paste.
func (c *Classifier) Reset() {
	c.pasting = false
	c.paste.Reset()
}

// Classify returns the semantic event for ev, or false when ev produces none.
func (c *Classifier) Classify(ev tcell.Event) (event.Event, bool) {
	switch ev := ev.(type) {
	case *tcell.EventPaste:
		if ev.Start() {
			c.pasting = true
			c.paste.Reset()
			return event.Event{}, false
		}
		c.pasting = false
		text := c.paste.String()
		c.paste.Reset()
		if text == "" {
			return event.Event{}, false
		}
		return event.Edit(event.InsertStringCommand(text)), true
	case *tcell.EventKey:
		if c.pasting {
			c.collectPaste(ev)
			return event.Event{}, false
		}
		return c.classifyKey(ev)
	}
	return event.Event{}, false
}

func (c *Classifier) classifyKey(ev *tcell.EventKey) (event.Event, bool) {
	if ev.Key() == tcell.KeyRune {
		mods := ev.Modifiers()
		if mods == tcell.ModNone || mods == tcell.ModShift {
			if !c.filter(ev.Rune()) {
				return event.Event{}, false
			}
			return event.Edit(event.InsertCharCommand(ev.Rune())), true
		}
	}
	if c.bindings == nil {
		return event.Event{}, false
	}
	return c.bindings.Find(keybindings.FromEvent(ev))
}

func (c *Classifier) collectPaste(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r == '\n' || r == '\r' {
			r = ' '
		}
		c.paste.WriteRune(r)
	case tcell.KeyEnter, tcell.KeyCtrlJ:
		c.paste.WriteRune(' ')
	case tcell.KeyTab:
		c.paste.WriteRune('\t')
	}
}

// SanitizePaste flattens multi-line clipboard text into one line.
func SanitizePaste(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.NewReplacer("\n", " ", "\r", " ").Replace(s)
}
