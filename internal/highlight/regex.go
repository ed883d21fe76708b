package highlight

import (
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/kobzarvs/qline/internal/buffer"
)

// Rule styles every match of Pattern with the style of Kind. When the
// pattern has a capture group only the first group is styled.
type Rule struct {
	Kind    string
	Pattern *regexp.Regexp
}

// Regex applies its rules in order; later rules overwrite earlier ones.
type Regex struct {
	rules  []Rule
	styles Styles
}

func NewRegex(styles Styles, rules ...Rule) *Regex {
	return &Regex{rules: rules, styles: styles}
}

// AddPattern compiles pattern and appends it as a rule for kind.
func (h *Regex) AddPattern(kind, pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("highlight: bad pattern for %s: %w", kind, err)
	}
	h.rules = append(h.rules, Rule{Kind: kind, Pattern: re})
	return nil
}

func (h *Regex) Highlight(buf *buffer.StyledBuffer) {
	text := buf.Contents()
	if text == "" {
		return
	}
	for _, rule := range h.rules {
		style, ok := h.styles.For(rule.Kind)
		if !ok {
			continue
		}
		for _, loc := range rule.Pattern.FindAllStringSubmatchIndex(text, -1) {
			if len(loc) >= 4 {
				if loc[2] < 0 {
					continue
				}
				loc = loc[2:4]
			}
			start := utf8.RuneCountInString(text[:loc[0]])
			end := start + utf8.RuneCountInString(text[loc[0]:loc[1]])
			buf.StyleRange(start, end, style)
		}
	}
}

var (
	jsonNumber = regexp.MustCompile(`-?\b\d+(?:\.\d+)?(?:[eE][+-]?\d+)?\b`)
	jsonBool   = regexp.MustCompile(`\b(?:true|false)\b`)
	jsonNull   = regexp.MustCompile(`\bnull\b`)
	jsonPunct  = regexp.MustCompile(`[{}\[\],:]`)
	jsonKey    = regexp.MustCompile(`("(?:[^"\\]|\\.)*")\s*:`)
	jsonString = regexp.MustCompile(`"(?:[^"\\]|\\.)*"`)
)

// JSON highlights JSON values typed on one line. Strings come last so
// digits and words inside them keep the string style.
func JSON(styles Styles) *Regex {
	return NewRegex(styles,
		Rule{Kind: "punctuation", Pattern: jsonPunct},
		Rule{Kind: "number", Pattern: jsonNumber},
		Rule{Kind: "constant", Pattern: jsonBool},
		Rule{Kind: "constant", Pattern: jsonNull},
		Rule{Kind: "string", Pattern: jsonString},
		Rule{Kind: "field", Pattern: jsonKey},
	)
}
