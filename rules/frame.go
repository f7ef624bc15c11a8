package rules

// Frame is an immutable snapshot of a GameState, shaped for renderers and the
// spectator API.
type Frame struct {
	Seq       int64     `json:"seq"`
	Round     int64     `json:"round"`
	Turn      int64     `json:"turn"`
	Size      int       `json:"size"`
	Snake     []Cell    `json:"snake"`
	Apple     Cell      `json:"apple"`
	Direction Direction `json:"direction"`
	Event     Event     `json:"event"`
}

// Frame captures the current state. Seq is left for the publisher to assign.
func (g *GameState) Frame() *Frame {
	return &Frame{
		Round:     g.round,
		Turn:      g.turn,
		Size:      g.size,
		Snake:     g.Snake(),
		Apple:     g.apple,
		Direction: g.dir,
		Event:     g.event,
	}
}

// Head returns the last segment of the snake, or nil for an empty frame.
func (f *Frame) Head() *Cell {
	if len(f.Snake) == 0 {
		return nil
	}
	return &f.Snake[len(f.Snake)-1]
}

// Cells expands the frame back into a dense size x size grid indexed [row][col].
func (f *Frame) Cells() [][]CellState {
	cells := make([][]CellState, f.Size)
	for r := range cells {
		cells[r] = make([]CellState, f.Size)
	}
	inBounds := func(c Cell) bool {
		return c.Row >= 0 && c.Row < f.Size && c.Col >= 0 && c.Col < f.Size
	}
	if inBounds(f.Apple) {
		cells[f.Apple.Row][f.Apple.Col] = Apple
	}
	for _, c := range f.Snake {
		if inBounds(c) {
			cells[c.Row][c.Col] = Snake
		}
	}
	return cells
}
