package keybindings

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// KeyKind is the kind of key event a chord matches.
type KeyKind int

const (
	KeyPress KeyKind = iota
	KeyRepeat
	KeyRelease
)

// KeyCombination is the lookup key of a binding: key code, rune (only for
// tcell.KeyRune), modifier set and key event kind.
type KeyCombination struct {
	Key       tcell.Key
	Rune      rune
	Modifiers tcell.ModMask
	Kind      KeyKind
}

// FromEvent builds a normalized chord from a tcell key event. tcell only
// reports presses.
func FromEvent(ev *tcell.EventKey) KeyCombination {
	c := KeyCombination{Key: ev.Key(), Modifiers: ev.Modifiers(), Kind: KeyPress}
	if c.Key == tcell.KeyRune {
		c.Rune = ev.Rune()
	}
	return c.normalize()
}

// normalize folds the different ways terminals report the same chord into
// one value: ctrl+letter always becomes the tcell control key without
// ModCtrl, shift is dropped from runes and Backspace2 becomes Backspace.
func (c KeyCombination) normalize() KeyCombination {
	if c.Key == tcell.KeyRune {
		if c.Modifiers&tcell.ModCtrl != 0 {
			if r := unicode.ToLower(c.Rune); r >= 'a' && r <= 'z' {
				c.Key = tcell.KeyCtrlA + tcell.Key(r-'a')
				c.Rune = 0
				c.Modifiers &^= tcell.ModCtrl | tcell.ModShift
				return c
			}
			if c.Rune == ' ' {
				c.Key = tcell.KeyCtrlSpace
				c.Rune = 0
				c.Modifiers &^= tcell.ModCtrl
				return c
			}
		}
		c.Modifiers &^= tcell.ModShift
		return c
	}
	c.Rune = 0
	if c.Key == tcell.KeyBackspace2 {
		c.Key = tcell.KeyBackspace
	}
	if c.Key < tcell.Key(0x20) {
		c.Modifiers &^= tcell.ModCtrl
	}
	return c
}

var namedKeys = map[string]tcell.Key{
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"pgup":      tcell.KeyPgUp,
	"pgdn":      tcell.KeyPgDn,
	"backspace": tcell.KeyBackspace,
	"enter":     tcell.KeyEnter,
	"del":       tcell.KeyDelete,
	"delete":    tcell.KeyDelete,
	"ins":       tcell.KeyInsert,
	"esc":       tcell.KeyEscape,
	"tab":       tcell.KeyTab,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ParseChord parses strings such as "ctrl+x", "shift+left", "alt+c", "tab"
// or "x" into a chord.
func ParseChord(s string) (KeyCombination, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return KeyCombination{}, fmt.Errorf("empty chord")
	}
	var mods tcell.ModMask
	parts := strings.Split(s, "+")
	name := parts[len(parts)-1]
	// "ctrl++" style chords end with an empty part
	if name == "" && len(parts) > 1 {
		name = "+"
		parts = parts[:len(parts)-1]
	}
	for _, m := range parts[:len(parts)-1] {
		switch m {
		case "ctrl":
			mods |= tcell.ModCtrl
		case "shift":
			mods |= tcell.ModShift
		case "alt":
			mods |= tcell.ModAlt
		case "cmd", "meta":
			mods |= tcell.ModMeta
		case "":
		default:
			return KeyCombination{}, fmt.Errorf("chord %q: unknown modifier %q", s, m)
		}
	}

	c := KeyCombination{Modifiers: mods, Kind: KeyPress}
	switch {
	case name == "space":
		c.Key = tcell.KeyRune
		c.Rune = ' '
	case name == "tab" && mods&tcell.ModShift != 0:
		c.Key = tcell.KeyBacktab
		c.Modifiers &^= tcell.ModShift
	case namedKeys[name] != 0:
		c.Key = namedKeys[name]
	case len([]rune(name)) == 1:
		c.Key = tcell.KeyRune
		c.Rune = []rune(name)[0]
	default:
		return KeyCombination{}, fmt.Errorf("chord %q: unknown key %q", s, name)
	}
	return c.normalize(), nil
}

// String renders the chord in the same form ParseChord accepts.
func (c KeyCombination) String() string {
	var parts []string
	key := c.Key
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ && !isTypeableControl(key) {
		parts = append(parts, "ctrl")
		key = tcell.KeyRune
		c.Rune = 'a' + rune(c.Key-tcell.KeyCtrlA)
	} else if key == tcell.KeyCtrlSpace {
		parts = append(parts, "ctrl")
		key = tcell.KeyRune
		c.Rune = ' '
	}
	if c.Modifiers&tcell.ModMeta != 0 {
		parts = append(parts, "cmd")
	}
	if c.Modifiers&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if c.Modifiers&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if c.Modifiers&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	switch {
	case key == tcell.KeyRune && c.Rune == ' ':
		parts = append(parts, "space")
	case key == tcell.KeyRune:
		parts = append(parts, string(c.Rune))
	case key == tcell.KeyBacktab:
		parts = append(parts, "shift", "tab")
	default:
		parts = append(parts, keyName(key))
	}
	return strings.Join(parts, "+")
}

func keyName(k tcell.Key) string {
	for name, key := range namedKeys {
		if key == k && name != "delete" {
			return name
		}
	}
	return fmt.Sprintf("key%d", int(k))
}

// isTypeableControl reports control codes that have their own key names.
func isTypeableControl(k tcell.Key) bool {
	switch k {
	case tcell.KeyBackspace, tcell.KeyTab, tcell.KeyEnter:
		return true
	}
	return false
}
