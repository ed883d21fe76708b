// Package completion holds the completion sources and the drop-down list
// that presents their suggestions under the line.
package completion

import (
	"sort"
	"strings"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Span is a rune range [Start, End) of the buffer a suggestion replaces.
type Span struct {
	Start int
	End   int
}

// Suggestion replaces Span with Content when accepted.
type Suggestion struct {
	Content string
	Span    Span
}

type Completer interface {
	Complete(buf *buffer.StyledBuffer) []Suggestion
}

// Func adapts a function to Completer.
type Func func(buf *buffer.StyledBuffer) []Suggestion

func (f Func) Complete(buf *buffer.StyledBuffer) []Suggestion {
	return f(buf)
}

// Words completes the word before the cursor from a fixed vocabulary.
type Words struct {
	words []string
	// Max caps the number of suggestions; 0 means no cap.
	Max int
}

func NewWords(words ...string) *Words {
	seen := make(map[string]struct{}, len(words))
	uniq := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		uniq = append(uniq, w)
	}
	sort.Strings(uniq)
	return &Words{words: uniq}
}

func (c *Words) Complete(buf *buffer.StyledBuffer) []Suggestion {
	start, prefix := buf.WordBefore()
	span := Span{Start: start, End: buf.Position()}
	var out []Suggestion
	for _, w := range c.words {
		if w == prefix || !strings.HasPrefix(w, prefix) {
			continue
		}
		out = append(out, Suggestion{Content: w, Span: span})
		if c.Max > 0 && len(out) == c.Max {
			break
		}
	}
	return out
}

// Searcher returns lines beginning with prefix, best first.
type Searcher interface {
	Search(prefix string, n int) ([]string, error)
}

// History offers whole previous lines that extend the text before the
// cursor. Accepting one replaces everything up to the cursor.
type History struct {
	source Searcher
	Max    int
}

func NewHistory(source Searcher, max int) *History {
	if max <= 0 {
		max = 10
	}
	return &History{source: source, Max: max}
}

func (c *History) Complete(buf *buffer.StyledBuffer) []Suggestion {
	pos := buf.Position()
	prefix, _ := buf.SubString(0, pos)
	lines, err := c.source.Search(prefix, c.Max+1)
	if err != nil {
		return nil
	}
	var out []Suggestion
	for _, line := range lines {
		if line == prefix {
			continue
		}
		out = append(out, Suggestion{Content: line, Span: Span{Start: 0, End: pos}})
		if len(out) == c.Max {
			break
		}
	}
	return out
}

// Chain returns the suggestions of the first completer that has any.
type Chain []Completer

func (c Chain) Complete(buf *buffer.StyledBuffer) []Suggestion {
	for _, completer := range c {
		if out := completer.Complete(buf); len(out) > 0 {
			return out
		}
	}
	return nil
}
