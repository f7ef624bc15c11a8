package rules

import "fmt"

// Cell is a (row, col) position on the grid.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Step returns the neighbouring cell in direction d.
func (c Cell) Step(d Direction) Cell {
	delta := d.Delta()
	return Cell{Row: c.Row + delta.Row, Col: c.Col + delta.Col}
}

func (c Cell) String() string {
	return fmt.Sprintf("(%d, %d)", c.Row, c.Col)
}

// CellState is the content of a single grid cell.
type CellState int

const (
	// Empty cells are free for the snake to move into and for apples to spawn on.
	Empty CellState = iota
	// Apple marks the single food cell.
	Apple
	// Snake marks a cell occupied by the snake body.
	Snake
)

func (s CellState) String() string {
	switch s {
	case Empty:
		return "empty"
	case Apple:
		return "apple"
	case Snake:
		return "snake"
	default:
		return fmt.Sprintf("CellState(%d)", int(s))
	}
}
