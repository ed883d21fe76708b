package completion

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ListView presents suggestions and tracks which one has focus.
type ListView interface {
	IsVisible() bool
	SetVisibility(visible bool)
	FocusNext()
	FocusPrevious()
	SelectedElement() (Suggestion, bool)
	SetElements(elements []Suggestion)
	SetFocusStyle(style tcell.Style)
	Reset()
	Clear()
	Render()
	// Len is the number of screen rows the list occupies when rendered.
	Len() int
	// SetAnchor places the list's first row below (col, row).
	SetAnchor(col, row int)
}

const DefaultMaxHeight = 8

type rect struct {
	x, y, w, h int
}

// DropDown draws suggestions in a column directly under its anchor.
type DropDown struct {
	screen     tcell.Screen
	elements   []Suggestion
	focus      int
	offset     int
	visible    bool
	col, row   int
	style      tcell.Style
	focusStyle tcell.Style
	maxHeight  int
	painted    rect
}

func NewDropDown(screen tcell.Screen) *DropDown {
	return &DropDown{
		screen:     screen,
		style:      tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite),
		focusStyle: tcell.StyleDefault.Background(tcell.ColorBlue).Foreground(tcell.ColorWhite),
		maxHeight:  DefaultMaxHeight,
	}
}

// SetStyle sets the style of unfocused rows.
func (d *DropDown) SetStyle(style tcell.Style) {
	d.style = style
}

func (d *DropDown) SetFocusStyle(style tcell.Style) {
	d.focusStyle = style
}

// SetMaxHeight bounds the rows shown at once; the list scrolls to keep the
// focused row visible.
func (d *DropDown) SetMaxHeight(n int) {
	if n < 1 {
		n = 1
	}
	d.maxHeight = n
}

func (d *DropDown) IsVisible() bool {
	return d.visible
}

func (d *DropDown) SetVisibility(visible bool) {
	d.visible = visible
}

func (d *DropDown) SetElements(elements []Suggestion) {
	d.elements = append(d.elements[:0:0], elements...)
	d.focus = 0
	d.offset = 0
}

func (d *DropDown) Elements() []Suggestion {
	return d.elements
}

func (d *DropDown) FocusNext() {
	if len(d.elements) == 0 {
		return
	}
	d.focus = (d.focus + 1) % len(d.elements)
	d.scroll()
}

func (d *DropDown) FocusPrevious() {
	if len(d.elements) == 0 {
		return
	}
	d.focus = (d.focus - 1 + len(d.elements)) % len(d.elements)
	d.scroll()
}

func (d *DropDown) Focus() int {
	return d.focus
}

func (d *DropDown) scroll() {
	h := d.Len()
	if d.focus < d.offset {
		d.offset = d.focus
	} else if d.focus >= d.offset+h {
		d.offset = d.focus - h + 1
	}
}

func (d *DropDown) SelectedElement() (Suggestion, bool) {
	if d.focus < 0 || d.focus >= len(d.elements) {
		return Suggestion{}, false
	}
	return d.elements[d.focus], true
}

// Reset drops elements and focus. It does not touch the screen.
func (d *DropDown) Reset() {
	d.elements = nil
	d.focus = 0
	d.offset = 0
}

func (d *DropDown) Len() int {
	if len(d.elements) < d.maxHeight {
		return len(d.elements)
	}
	return d.maxHeight
}

func (d *DropDown) SetAnchor(col, row int) {
	d.col = col
	d.row = row
}

func (d *DropDown) Anchor() (int, int) {
	return d.col, d.row
}

// Clear blanks the cells painted by the last Render.
func (d *DropDown) Clear() {
	p := d.painted
	for y := p.y; y < p.y+p.h; y++ {
		for x := p.x; x < p.x+p.w; x++ {
			d.screen.SetContent(x, y, ' ', nil, tcell.StyleDefault)
		}
	}
	d.painted = rect{}
	d.screen.Show()
}

func (d *DropDown) Render() {
	if len(d.elements) == 0 {
		return
	}
	screenW, screenH := d.screen.Size()
	width := 0
	for _, e := range d.elements {
		if w := runewidth.StringWidth(e.Content); w > width {
			width = w
		}
	}
	width += 2
	x0 := d.col
	if x0+width > screenW {
		x0 = screenW - width
	}
	if x0 < 0 {
		x0 = 0
		width = screenW
	}
	y0 := d.row + 1
	h := d.Len()
	if y0+h > screenH {
		h = screenH - y0
	}
	if h <= 0 {
		return
	}

	for i := 0; i < h; i++ {
		idx := d.offset + i
		if idx >= len(d.elements) {
			break
		}
		style := d.style
		if idx == d.focus {
			style = d.focusStyle
		}
		drawCell(d.screen, x0, y0+i, width, " "+d.elements[idx].Content, style)
	}
	d.painted = rect{x: x0, y: y0, w: width, h: h}
	d.screen.Show()
}

// drawCell paints text into a row of width columns, padding with spaces.
func drawCell(s tcell.Screen, x, y, width int, text string, style tcell.Style) {
	col := 0
	for _, r := range text {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if col+w > width {
			break
		}
		s.SetContent(x+col, y, r, nil, style)
		col += w
	}
	for ; col < width; col++ {
		s.SetContent(x+col, y, ' ', nil, style)
	}
}
