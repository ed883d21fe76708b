// Package autopair inserts the closing half of a bracket or quote right
// after its opening half is typed.
package autopair

import (
	"fmt"
	"unicode"

	"github.com/kobzarvs/qline/internal/buffer"
)

// AutoPair runs after a single rune was inserted before the cursor.
type AutoPair interface {
	CompletePair(buf *buffer.StyledBuffer)
}

// Pair is an opener and its closer. Quotes use the same rune for both.
type Pair struct {
	Open  rune
	Close rune
}

func (p Pair) symmetric() bool {
	return p.Open == p.Close
}

// DefaultPairs are the pairs completed and used for surround-insert.
var DefaultPairs = []Pair{
	{'(', ')'},
	{'[', ']'},
	{'{', '}'},
	{'<', '>'},
	{'"', '"'},
	{'\'', '\''},
	{'`', '`'},
}

// ParsePairs reads pairs written as two-rune strings such as "()".
func ParsePairs(specs []string) ([]Pair, error) {
	pairs := make([]Pair, 0, len(specs))
	for _, s := range specs {
		r := []rune(s)
		if len(r) != 2 {
			return nil, fmt.Errorf("autopair: pair %q must be exactly two characters", s)
		}
		pairs = append(pairs, Pair{Open: r[0], Close: r[1]})
	}
	return pairs, nil
}

// Lookup returns the pair opened by r.
func Lookup(pairs []Pair, open rune) (Pair, bool) {
	for _, p := range pairs {
		if p.Open == open {
			return p, true
		}
	}
	return Pair{}, false
}

// Default completes openers and types over a closer that is already
// present right after the cursor.
type Default struct {
	pairs []Pair
}

func New(pairs ...Pair) *Default {
	if len(pairs) == 0 {
		pairs = DefaultPairs
	}
	return &Default{pairs: pairs}
}

func (a *Default) Pairs() []Pair {
	return a.pairs
}

func (a *Default) CompletePair(buf *buffer.StyledBuffer) {
	pos := buf.Position()
	typed, ok := buf.CharAt(pos - 1)
	if !ok {
		return
	}
	if next, ok := buf.CharAt(pos); ok && next == typed && a.isCloser(typed) {
		buf.DeleteRightChar()
		return
	}
	p, ok := Lookup(a.pairs, typed)
	if !ok {
		return
	}
	if p.symmetric() {
		if prev, ok := buf.CharAt(pos - 2); ok && (unicode.IsLetter(prev) || unicode.IsDigit(prev) || prev == p.Open) {
			return
		}
	}
	buf.InsertChar(p.Close)
	buf.SetPosition(pos)
}

func (a *Default) isCloser(r rune) bool {
	for _, p := range a.pairs {
		if p.Close == r {
			return true
		}
	}
	return false
}
