package highlight

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/gdamore/tcell/v2"

	"github.com/kobzarvs/qline/internal/buffer"
)

const defaultChromaStyle = "monokai"

// Chroma colors the line with a chroma lexer and style. Tokens whose colour
// equals the style's plain text colour keep the buffer's base style.
type Chroma struct {
	lexer chroma.Lexer
	style *chroma.Style
}

// NewChroma resolves lexerName and styleName. An unknown lexer falls back to
// content analysis at highlight time; an unknown style falls back to
// chroma's default.
func NewChroma(lexerName, styleName string) *Chroma {
	if styleName == "" {
		styleName = defaultChromaStyle
	}
	h := &Chroma{style: styles.Get(styleName)}
	if lexerName != "" {
		if l := lexers.Get(lexerName); l != nil {
			h.lexer = chroma.Coalesce(l)
		}
	}
	return h
}

func (h *Chroma) lexerFor(text string) chroma.Lexer {
	if h.lexer != nil {
		return h.lexer
	}
	if l := lexers.Analyse(text); l != nil {
		return chroma.Coalesce(l)
	}
	return lexers.Fallback
}

func (h *Chroma) Highlight(buf *buffer.StyledBuffer) {
	text := buf.Contents()
	if text == "" {
		return
	}
	tokens, err := chroma.Tokenise(h.lexerFor(text), nil, text)
	if err != nil {
		return
	}
	baseColour := h.style.Get(chroma.Text).Colour
	base := buf.BaseStyle()
	pos := 0
	for _, tok := range tokens {
		if tok.Type == chroma.EOFType {
			break
		}
		n := len([]rune(tok.Value))
		if st, ok := tokenStyle(base, h.style.Get(tok.Type), baseColour); ok {
			buf.StyleRange(pos, pos+n, st)
		}
		pos += n
	}
}

func tokenStyle(base tcell.Style, entry chroma.StyleEntry, baseColour chroma.Colour) (tcell.Style, bool) {
	st := base
	changed := false
	if entry.Colour.IsSet() && entry.Colour != baseColour {
		st = st.Foreground(chromaColor(entry.Colour))
		changed = true
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold(true)
		changed = true
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic(true)
		changed = true
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline(true)
		changed = true
	}
	return st, changed
}

func chromaColor(c chroma.Colour) tcell.Color {
	return tcell.NewRGBColor(int32(c.Red()), int32(c.Green()), int32(c.Blue()))
}
