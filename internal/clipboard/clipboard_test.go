package clipboard

import (
	"errors"
	"testing"
)

type brokenClipboard struct{}

func (brokenClipboard) Contents() (string, error) { return "", ErrUnavailable }
func (brokenClipboard) SetContents(string) error  { return ErrUnavailable }

func TestMemoryClipboard(t *testing.T) {
	var m Memory
	if _, err := m.Contents(); err == nil {
		t.Fatalf("empty clipboard Contents error = nil")
	}
	if err := m.SetContents("abc"); err != nil {
		t.Fatalf("SetContents error: %v", err)
	}
	if got, err := m.Contents(); err != nil || got != "abc" {
		t.Fatalf("Contents = %q %v, want %q", got, err, "abc")
	}
}

func TestFallbackUsesSecondary(t *testing.T) {
	f := &Fallback{Primary: brokenClipboard{}, Secondary: &Memory{}}
	if err := f.SetContents("hello"); err != nil {
		t.Fatalf("SetContents error: %v", err)
	}
	got, err := f.Contents()
	if err != nil || got != "hello" {
		t.Fatalf("Contents = %q %v, want %q", got, err, "hello")
	}
}

func TestFallbackPrefersPrimary(t *testing.T) {
	primary := &Memory{}
	f := &Fallback{Primary: primary, Secondary: &Memory{}}
	_ = f.SetContents("one")
	_ = primary.SetContents("from system")
	got, _ := f.Contents()
	if got != "from system" {
		t.Fatalf("Contents = %q, want primary contents", got)
	}
	if !errors.Is(brokenClipboard{}.SetContents("x"), ErrUnavailable) {
		t.Fatalf("broken clipboard error mismatch")
	}
}
