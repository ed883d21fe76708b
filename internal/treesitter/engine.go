// Package treesitter parses the edited line with tree-sitter grammars and
// reports highlight captures as rune spans.
package treesitter

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
)

// Span is a highlight capture over runes [Start, End).
type Span struct {
	Start int
	End   int
	Kind  string
}

type grammar struct {
	lang  *sitter.Language
	query string
}

var grammars = map[string]grammar{
	"bash": {lang: bash.GetLanguage(), query: bashHighlightQuery},
}

// Languages returns the grammar names Engine can highlight.
func Languages() []string {
	names := make([]string, 0, len(grammars))
	for name := range grammars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Engine owns one parser and compiled query for a grammar. The previous
// tree is reused when the new text only grows or shrinks at the end.
type Engine struct {
	mu       sync.Mutex
	language string
	parser   *sitter.Parser
	query    *sitter.Query
	tree     *sitter.Tree
	source   []byte
}

func New(language string) (*Engine, error) {
	g, ok := grammars[language]
	if !ok {
		return nil, fmt.Errorf("treesitter: unsupported language %q", language)
	}
	query, err := sitter.NewQuery([]byte(g.query), g.lang)
	if err != nil {
		return nil, fmt.Errorf("treesitter: compile %s query: %w", language, err)
	}
	p := sitter.NewParser()
	p.SetLanguage(g.lang)
	return &Engine{language: language, parser: p, query: query}, nil
}

func (e *Engine) Language() string {
	return e.language
}

// Highlights parses text and returns its captures ordered by priority, so
// applying them in order lets stronger kinds win on overlaps.
func (e *Engine) Highlights(text string) []Span {
	e.mu.Lock()
	defer e.mu.Unlock()

	source := []byte(text)
	var prev *sitter.Tree
	if e.tree != nil {
		if edit, ok := tailEdit(e.source, source); ok {
			e.tree.Edit(edit)
			prev = e.tree
		}
	}
	tree, err := e.parser.ParseCtx(context.Background(), prev, source)
	if err != nil || tree == nil {
		e.tree = nil
		e.source = nil
		return nil
	}
	e.tree = tree
	e.source = source
	return queryHighlights(e.query, tree, source)
}

// Close releases the parser and query.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.query != nil {
		e.query.Close()
		e.query = nil
	}
	if e.parser != nil {
		e.parser.Close()
		e.parser = nil
	}
	e.tree = nil
}

// tailEdit describes the change from old to new when they share a prefix
// and differ only after it.
func tailEdit(old, new []byte) (sitter.EditInput, bool) {
	n := 0
	for n < len(old) && n < len(new) && old[n] == new[n] {
		n++
	}
	if n != len(old) && n != len(new) {
		return sitter.EditInput{}, false
	}
	return sitter.EditInput{
		StartIndex:  uint32(n),
		OldEndIndex: uint32(len(old)),
		NewEndIndex: uint32(len(new)),
		StartPoint:  sitter.Point{Row: 0, Column: uint32(n)},
		OldEndPoint: sitter.Point{Row: 0, Column: uint32(len(old))},
		NewEndPoint: sitter.Point{Row: 0, Column: uint32(len(new))},
	}, true
}

func queryHighlights(query *sitter.Query, tree *sitter.Tree, source []byte) []Span {
	if query == nil || tree == nil {
		return nil
	}
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, tree.RootNode())

	runeIndex := byteToRune(source)
	var out []Span
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		match = cursor.FilterPredicates(match, source)
		if match == nil {
			continue
		}
		for _, capture := range match.Captures {
			start := int(capture.Node.StartByte())
			end := int(capture.Node.EndByte())
			if start >= end || end > len(source) {
				continue
			}
			out = append(out, Span{
				Start: runeIndex[start],
				End:   runeIndex[end],
				Kind:  query.CaptureNameForId(capture.Index),
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return Priority(out[i].Kind) < Priority(out[j].Kind)
	})
	return out
}

// byteToRune maps every byte offset (including len) to a rune offset.
func byteToRune(source []byte) []int {
	idx := make([]int, len(source)+1)
	r := 0
	for i := 0; i < len(source); {
		_, size := utf8.DecodeRune(source[i:])
		for j := 0; j < size; j++ {
			idx[i+j] = r
		}
		i += size
		r++
	}
	idx[len(source)] = r
	return idx
}

// Priority orders capture kinds; higher wins on overlapping ranges.
func Priority(kind string) int {
	switch kind {
	case "comment":
		return 7
	case "string":
		return 6
	case "keyword":
		return 5
	case "constant", "builtin":
		return 4
	case "type", "function", "number", "parameter":
		return 3
	case "field", "variable":
		return 2
	case "operator", "punctuation":
		return 1
	default:
		return 0
	}
}

const bashHighlightQuery = `
((comment) @comment)
((string) @string)
((raw_string) @string)
((heredoc_body) @string)
((number) @number)
((variable_name) @variable)
((special_variable_name) @variable)
((command_name) @function)
((function_definition name: (word) @function))
[
  "if" "then" "else" "elif" "fi" "case" "esac" "for" "while" "until"
  "do" "done" "in" "function" "select"
  "local" "export" "readonly" "declare" "typeset" "unset"
] @keyword
["$" "${" "}" "(" ")" "[[" "]]" ";" ";;" "&&" "||" "|" "&" "<" ">" ">>" "<<"] @operator
`
