// Package view paints the prompt, the styled line and its hint on a tcell
// screen.
package view

import (
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/kobzarvs/qline/internal/buffer"
)

// TerminalView owns one screen row starting at a fixed column. The line is
// scrolled horizontally so the cursor stays inside the screen.
type TerminalView struct {
	screen      tcell.Screen
	col, row    int
	prompt      string
	promptStyle tcell.Style
	hintStyle   tcell.Style
	// end is the column after the last painted line rune.
	end    int
	offset int
}

func New(screen tcell.Screen) *TerminalView {
	return &TerminalView{
		screen:      screen,
		promptStyle: tcell.StyleDefault.Bold(true),
		hintStyle:   tcell.StyleDefault.Foreground(tcell.ColorGray),
	}
}

func (v *TerminalView) SetPrompt(prompt string, style tcell.Style) {
	v.prompt = prompt
	v.promptStyle = style
}

func (v *TerminalView) Prompt() string {
	return v.prompt
}

func (v *TerminalView) SetHintStyle(style tcell.Style) {
	v.hintStyle = style
}

func (v *TerminalView) SetStartPosition(col, row int) {
	v.col = max(col, 0)
	v.row = max(row, 0)
}

func (v *TerminalView) StartPosition() (int, int) {
	return v.col, v.row
}

// SetCursorStyle sets the terminal cursor shape.
func (v *TerminalView) SetCursorStyle(style tcell.CursorStyle) {
	v.screen.SetCursorStyle(style)
}

func (v *TerminalView) promptWidth() int {
	return runewidth.StringWidth(v.prompt)
}

// RenderPromptBuffer paints the prompt and clears the rest of the row.
func (v *TerminalView) RenderPromptBuffer() {
	x := v.drawString(v.col, v.prompt, v.promptStyle)
	v.clearFrom(x)
	v.end = x
	v.offset = 0
	v.screen.ShowCursor(x, v.row)
	v.screen.Show()
}

// RenderLineBuffer repaints the prompt and the buffer with its styles and
// places the cursor.
func (v *TerminalView) RenderLineBuffer(buf *buffer.StyledBuffer) {
	runes := buf.Runes()
	pos := buf.Position()
	textX := v.drawString(v.col, v.prompt, v.promptStyle)
	width, _ := v.screen.Size()
	avail := width - textX
	v.scrollTo(runes, pos, avail)

	x := textX
	cursorX := textX
	for i := v.offset; i < len(runes); i++ {
		if i == pos {
			cursorX = x
		}
		w := cellWidth(runes[i])
		if x+w > width {
			break
		}
		if w > 0 {
			st, _ := buf.StyleAt(i)
			v.screen.SetContent(x, v.row, displayRune(runes[i]), nil, st)
		}
		x += w
	}
	if pos >= len(runes) {
		cursorX = x
	}
	v.clearFrom(x)
	v.end = x
	v.screen.ShowCursor(min(cursorX, width-1), v.row)
	v.screen.Show()
}

// ClearLine blanks the row the view currently paints on.
func (v *TerminalView) ClearLine() {
	v.clearFrom(v.col)
	v.end = v.col
	v.screen.Show()
}

// RenderHint paints hint after the line in the hint style. The cursor is
// left where RenderLineBuffer put it.
func (v *TerminalView) RenderHint(hint string) {
	if hint == "" {
		return
	}
	v.drawString(v.end, hint, v.hintStyle)
	v.screen.Show()
}

// CursorColumn returns the screen column of the buffer cursor for the
// current scroll offset.
func (v *TerminalView) CursorColumn(buf *buffer.StyledBuffer) int {
	x := v.col + v.promptWidth()
	runes := buf.Runes()
	for i := v.offset; i < buf.Position() && i < len(runes); i++ {
		x += cellWidth(runes[i])
	}
	return x
}

// scrollTo moves offset so the cursor column fits in avail columns.
func (v *TerminalView) scrollTo(runes []rune, pos, avail int) {
	if avail <= 1 {
		v.offset = pos
		return
	}
	if pos < v.offset || v.offset > len(runes) {
		v.offset = pos
	}
	for {
		w := 0
		for i := v.offset; i < pos; i++ {
			w += cellWidth(runes[i])
		}
		if w < avail || v.offset >= pos {
			return
		}
		v.offset++
	}
}

func (v *TerminalView) drawString(x int, s string, style tcell.Style) int {
	width, _ := v.screen.Size()
	for _, r := range s {
		w := cellWidth(r)
		if x+w > width {
			break
		}
		if w > 0 {
			v.screen.SetContent(x, v.row, displayRune(r), nil, style)
		}
		x += w
	}
	return x
}

func (v *TerminalView) clearFrom(x int) {
	width, _ := v.screen.Size()
	for ; x < width; x++ {
		v.screen.SetContent(x, v.row, ' ', nil, tcell.StyleDefault)
	}
}

func cellWidth(r rune) int {
	if r == '\t' {
		return 1
	}
	return runewidth.RuneWidth(r)
}

func displayRune(r rune) rune {
	if r == '\t' {
		return ' '
	}
	return r
}

// ParseCursorStyle maps names like "bar" or "blinking-block" to a tcell
// cursor style. Unknown names give the terminal default.
func ParseCursorStyle(name string) tcell.CursorStyle {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "block", "steady-block":
		return tcell.CursorStyleSteadyBlock
	case "blinking-block":
		return tcell.CursorStyleBlinkingBlock
	case "underline", "steady-underline":
		return tcell.CursorStyleSteadyUnderline
	case "blinking-underline":
		return tcell.CursorStyleBlinkingUnderline
	case "bar", "steady-bar":
		return tcell.CursorStyleSteadyBar
	case "blinking-bar":
		return tcell.CursorStyleBlinkingBar
	default:
		return tcell.CursorStyleDefault
	}
}
