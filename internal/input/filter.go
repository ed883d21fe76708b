// Package input classifies raw terminal events into semantic editor events.
package input

import (
	"fmt"
	"strings"
	"unicode"
)

// Filter decides which typed runes are inserted. Pasted text is never
// filtered.
type Filter func(r rune) bool

var (
	Text         Filter = func(r rune) bool { return unicode.IsPrint(r) }
	Digit        Filter = func(r rune) bool { return r >= '0' && r <= '9' }
	Numeric      Filter = func(r rune) bool { return Digit(r) || r == '.' || r == '-' || r == '+' }
	Alphabetic   Filter = unicode.IsLetter
	AlphaNumeric Filter = func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) }
	Hex          Filter = func(r rune) bool { return strings.ContainsRune("0123456789abcdefABCDEF", r) }
	Identifier   Filter = func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }
)

// Custom wraps an arbitrary predicate as a Filter.
func Custom(accept func(r rune) bool) Filter {
	return Filter(accept)
}

// ParseFilter returns the named filter used by the editor.input-filter
// config option.
func ParseFilter(name string) (Filter, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text":
		return Text, nil
	case "digit":
		return Digit, nil
	case "numeric":
		return Numeric, nil
	case "alphabetic":
		return Alphabetic, nil
	case "alphanumeric":
		return AlphaNumeric, nil
	case "hex":
		return Hex, nil
	case "identifier":
		return Identifier, nil
	}
	return nil, fmt.Errorf("unknown input filter %q", name)
}
