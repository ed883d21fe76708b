package highlight

import (
	"github.com/kobzarvs/qline/internal/buffer"
	"github.com/kobzarvs/qline/internal/treesitter"
)

// TreeSitter applies tree-sitter captures from engine. Captures arrive
// lowest priority first, so stronger kinds are painted last.
type TreeSitter struct {
	engine *treesitter.Engine
	styles Styles
}

// NewTreeSitter builds a highlighter for the named grammar.
func NewTreeSitter(language string, styles Styles) (*TreeSitter, error) {
	engine, err := treesitter.New(language)
	if err != nil {
		return nil, err
	}
	return &TreeSitter{engine: engine, styles: styles}, nil
}

func (h *TreeSitter) Highlight(buf *buffer.StyledBuffer) {
	for _, span := range h.engine.Highlights(buf.Contents()) {
		if st, ok := h.styles.For(span.Kind); ok {
			buf.StyleRange(span.Start, span.End, st)
		}
	}
}

func (h *TreeSitter) Close() {
	h.engine.Close()
}
