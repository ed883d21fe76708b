// Package clipboard provides the clipboard used by cut, copy and paste.
package clipboard

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no system clipboard tool is installed.
var ErrUnavailable = errors.New("clipboard unavailable")

type Clipboard interface {
	Contents() (string, error)
	SetContents(text string) error
}

// System uses the platform clipboard (pbcopy, xclip, xsel, wl-clipboard,
// or the Windows API).
type System struct{}

func (System) Contents() (string, error) {
	if clipboard.Unsupported {
		return "", ErrUnavailable
	}
	return clipboard.ReadAll()
}

func (System) SetContents(text string) error {
	if clipboard.Unsupported {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
	set  bool
}

func (m *Memory) Contents() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return "", errors.New("clipboard empty")
	}
	return m.text, nil
}

func (m *Memory) SetContents(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	m.set = true
	return nil
}

// Fallback writes to both clipboards and reads the system one first, so
// cut/copy/paste keep working inside the process when no system tool exists.
type Fallback struct {
	Primary   Clipboard
	Secondary Clipboard
}

// Default returns the system clipboard backed by an in-memory one.
func Default() *Fallback {
	return &Fallback{Primary: System{}, Secondary: &Memory{}}
}

func (f *Fallback) Contents() (string, error) {
	text, err := f.Primary.Contents()
	if err == nil && text != "" {
		return text, nil
	}
	return f.Secondary.Contents()
}

func (f *Fallback) SetContents(text string) error {
	errPrimary := f.Primary.SetContents(text)
	if err := f.Secondary.SetContents(text); err != nil {
		return errors.Join(errPrimary, err)
	}
	return nil
}
