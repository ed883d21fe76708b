// Package keybindings maps key chords to semantic line editor events.
package keybindings

import (
	"errors"
	"fmt"
	"sort"

	"github.com/kobzarvs/qline/internal/event"
)

// Keybindings is the chord lookup table. It is read-only while a line is
// being read; configure it between sessions.
type Keybindings struct {
	bindings map[KeyCombination]event.Event
}

func New() *Keybindings {
	return &Keybindings{bindings: make(map[KeyCombination]event.Event)}
}

// Default returns a table loaded from DefaultKeymap.
func Default() *Keybindings {
	k := New()
	// DefaultKeymap only holds valid chords and actions
	_ = k.Load(DefaultKeymap())
	return k
}

// DefaultKeymap returns the default chord to action mapping.
func DefaultKeymap() map[string]string {
	return map[string]string{
		"left":        event.ActionMoveLeft,
		"right":       event.ActionMoveRight,
		"ctrl+b":      event.ActionMoveLeft,
		"ctrl+f":      event.ActionMoveRight,
		"alt+left":    event.ActionWordLeft,
		"alt+right":   event.ActionWordRight,
		"ctrl+left":   event.ActionWordLeft,
		"ctrl+right":  event.ActionWordRight,
		"alt+b":       event.ActionWordLeft,
		"alt+f":       event.ActionWordRight,
		"home":        event.ActionLineStart,
		"end":         event.ActionLineEnd,
		"ctrl+e":      event.ActionLineEnd,
		"backspace":   event.ActionBackspace,
		"del":         event.ActionDeleteChar,
		"ctrl+w":      event.ActionDeleteWordLeft,
		"ctrl+u":      event.ActionKillLineStart,
		"ctrl+k":      event.ActionKillLineEnd,
		"ctrl+l":      event.ActionClearLine,
		"enter":       event.ActionEnter,
		"up":          event.ActionUp,
		"down":        event.ActionDown,
		"shift+left":  event.ActionSelectLeft,
		"shift+right": event.ActionSelectRight,
		"ctrl+a":      event.ActionSelectAll,
		"ctrl+x":      event.ActionCut,
		"alt+c":       event.ActionCopy,
		"ctrl+v":      event.ActionPaste,
		"tab":         event.ActionToggleAutoComplete,
		"ctrl+space":  event.ActionToggleAutoComplete,
		"ctrl+c":      event.ActionInterrupt,
		"ctrl+d":      event.ActionEndSession,
	}
}

func (k *Keybindings) Register(c KeyCombination, ev event.Event) {
	k.bindings[c.normalize()] = ev
}

func (k *Keybindings) Unregister(c KeyCombination) {
	delete(k.bindings, c.normalize())
}

// Find returns the event bound to the chord.
func (k *Keybindings) Find(c KeyCombination) (event.Event, bool) {
	ev, ok := k.bindings[c.normalize()]
	return ev, ok
}

func (k *Keybindings) Len() int {
	return len(k.bindings)
}

func (k *Keybindings) Clear() {
	k.bindings = make(map[KeyCombination]event.Event)
}

// Load registers every chord/action pair of keymap. An empty action
// removes the chord. Invalid entries are skipped and reported together.
func (k *Keybindings) Load(keymap map[string]string) error {
	chords := make([]string, 0, len(keymap))
	for chord := range keymap {
		chords = append(chords, chord)
	}
	sort.Strings(chords)

	var errs []error
	for _, chord := range chords {
		action := keymap[chord]
		c, err := ParseChord(chord)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if action == "" || action == "none" {
			k.Unregister(c)
			continue
		}
		ev, ok := event.FromAction(action)
		if !ok {
			errs = append(errs, fmt.Errorf("chord %q: unknown action %q", chord, action))
			continue
		}
		k.Register(c, ev)
	}
	return errors.Join(errs...)
}

// Chords returns the bound chords rendered as strings, sorted.
func (k *Keybindings) Chords() []string {
	out := make([]string, 0, len(k.bindings))
	for c := range k.bindings {
		out = append(out, c.String())
	}
	sort.Strings(out)
	return out
}
