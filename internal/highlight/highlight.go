// Package highlight provides the syntax highlighters run over the line
// before it is painted.
package highlight

import (
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Highlighter restyles runes of the buffer in place. It must not change the
// buffer contents or cursor.
type Highlighter interface {
	Highlight(buf *buffer.StyledBuffer)
}

// Func adapts a function to Highlighter.
type Func func(buf *buffer.StyledBuffer)

func (f Func) Highlight(buf *buffer.StyledBuffer) {
	f(buf)
}

// Styles maps a capture kind ("keyword", "string", ...) to its style.
type Styles map[string]tcell.Style

// DefaultStyles is the palette used when the theme names no colors.
func DefaultStyles() Styles {
	return Styles{
		"keyword":     tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true),
		"string":      tcell.StyleDefault.Foreground(tcell.ColorGreen),
		"number":      tcell.StyleDefault.Foreground(tcell.ColorOrange),
		"comment":     tcell.StyleDefault.Foreground(tcell.ColorGray).Italic(true),
		"operator":    tcell.StyleDefault.Foreground(tcell.ColorTeal),
		"function":    tcell.StyleDefault.Foreground(tcell.ColorBlue),
		"variable":    tcell.StyleDefault.Foreground(tcell.ColorAqua),
		"constant":    tcell.StyleDefault.Foreground(tcell.ColorOrange),
		"field":       tcell.StyleDefault.Foreground(tcell.ColorAqua),
		"parameter":   tcell.StyleDefault.Foreground(tcell.ColorYellow),
		"punctuation": tcell.StyleDefault.Foreground(tcell.ColorSilver),
	}
}

// For returns the style for kind, falling back to the generic kind for
// dotted names such as "function.builtin".
func (s Styles) For(kind string) (tcell.Style, bool) {
	for kind != "" {
		if st, ok := s[kind]; ok {
			return st, true
		}
		i := strings.LastIndexByte(kind, '.')
		if i < 0 {
			break
		}
		kind = kind[:i]
	}
	return tcell.StyleDefault, false
}

// Keyword styles every whole word found in its word list.
type Keyword struct {
	words map[string]struct{}
	style tcell.Style
	fold  bool
}

func NewKeyword(words []string, style tcell.Style) *Keyword {
	k := &Keyword{words: make(map[string]struct{}, len(words)), style: style}
	for _, w := range words {
		if w = strings.TrimSpace(w); w != "" {
			k.words[w] = struct{}{}
		}
	}
	return k
}

// IgnoreCase makes matching case-insensitive.
func (k *Keyword) IgnoreCase() *Keyword {
	folded := make(map[string]struct{}, len(k.words))
	for w := range k.words {
		folded[strings.ToLower(w)] = struct{}{}
	}
	k.words = folded
	k.fold = true
	return k
}

func (k *Keyword) Highlight(buf *buffer.StyledBuffer) {
	if len(k.words) == 0 {
		return
	}
	runes := buf.Runes()
	start := -1
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && isWordRune(runes[i]) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			word := string(runes[start:i])
			if k.fold {
				word = strings.ToLower(word)
			}
			if _, ok := k.words[word]; ok {
				buf.StyleRange(start, i, k.style)
			}
			start = -1
		}
	}
}

func isWordRune(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
