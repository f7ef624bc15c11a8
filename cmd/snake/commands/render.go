package commands

import (
	"fmt"

	"github.com/gridsnake/engine/rules"
	"github.com/mattn/go-runewidth"
	termbox "github.com/nsf/termbox-go"
)

const (
	defaultColor = termbox.ColorDefault
	bgColor      = termbox.ColorDefault
	snakeColor   = termbox.ColorGreen
	headColor    = termbox.ColorLightGreen
	appleColor   = termbox.ColorRed

	// cellWidth keeps cells roughly square in a terminal.
	cellWidth = 2
)

// termRenderer draws frames into the terminal. It owns the termbox session:
// create it with newTermRenderer and release it with Close.
type termRenderer struct {
	left, top int
	title     string
	status    string
}

func newTermRenderer(title string) (*termRenderer, error) {
	if err := termbox.Init(); err != nil {
		return nil, err
	}
	termbox.SetInputMode(termbox.InputEsc)
	return &termRenderer{left: 2, top: 1, title: title}, nil
}

// Close restores the terminal.
func (r *termRenderer) Close() {
	termbox.Close()
}

// SetStatus sets the text shown under the board.
func (r *termRenderer) SetStatus(status string) {
	r.status = status
}

func (r *termRenderer) Render(f *rules.Frame) error {
	if f == nil {
		return fmt.Errorf("received nil frame")
	}
	if err := termbox.Clear(defaultColor, defaultColor); err != nil {
		return err
	}

	width := f.Size * cellWidth
	bottom := r.top + f.Size + 1

	tbprint(r.left, r.top-1, defaultColor, defaultColor,
		fmt.Sprintf("%s - Round %d - Turn %d - Length %d", r.title, f.Round, f.Turn, len(f.Snake)))
	r.renderBoard(width, bottom)
	r.renderCell(f.Apple, appleColor)
	for _, c := range f.Snake {
		r.renderCell(c, snakeColor)
	}
	if head := f.Head(); head != nil {
		r.renderCell(*head, headColor)
	}
	if r.status != "" {
		tbprint(r.left, bottom+1, defaultColor, defaultColor, r.status)
	}

	return termbox.Flush()
}

func (r *termRenderer) renderCell(c rules.Cell, color termbox.Attribute) {
	x := r.left + 1 + c.Col*cellWidth
	y := r.top + 1 + c.Row
	fill(x, y, cellWidth, 1, termbox.Cell{Ch: ' ', Fg: color, Bg: color})
}

func (r *termRenderer) renderBoard(width, bottom int) {
	left, right := r.left, r.left+width+1
	for i := r.top + 1; i < bottom; i++ {
		termbox.SetCell(left, i, '│', defaultColor, bgColor)
		termbox.SetCell(right, i, '│', defaultColor, bgColor)
	}

	termbox.SetCell(left, r.top, '┌', defaultColor, bgColor)
	termbox.SetCell(left, bottom, '└', defaultColor, bgColor)
	termbox.SetCell(right, r.top, '┐', defaultColor, bgColor)
	termbox.SetCell(right, bottom, '┘', defaultColor, bgColor)

	fill(left+1, r.top, width, 1, termbox.Cell{Ch: '─'})
	fill(left+1, bottom, width, 1, termbox.Cell{Ch: '─'})
}

func fill(x, y, w, h int, cell termbox.Cell) {
	for ly := 0; ly < h; ly++ {
		for lx := 0; lx < w; lx++ {
			termbox.SetCell(x+lx, y+ly, cell.Ch, cell.Fg, cell.Bg)
		}
	}
}

func tbprint(x, y int, fg, bg termbox.Attribute, msg string) {
	for _, c := range msg {
		termbox.SetCell(x, y, c, fg, bg)
		x += runewidth.RuneWidth(c)
	}
}
