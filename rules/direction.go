package rules

import (
	"fmt"
	"strings"
)

// Direction is the heading of the snake. Values are ordered so that opposite
// directions share parity.
type Direction int

const (
	// Up moves the head one row towards row 0.
	Up Direction = iota
	// Left moves the head one column towards column 0.
	Left
	// Down moves the head one row away from row 0.
	Down
	// Right moves the head one column away from column 0.
	Right
)

var directionNames = [...]string{
	Up:    "up",
	Left:  "left",
	Down:  "down",
	Right: "right",
}

// deltas is indexed by Direction and holds the (row, col) step.
var deltas = [...]Cell{
	Up:    {Row: -1, Col: 0},
	Left:  {Row: 0, Col: -1},
	Down:  {Row: 1, Col: 0},
	Right: {Row: 0, Col: 1},
}

// Valid reports whether d is one of the four directions.
func (d Direction) Valid() bool {
	return d >= Up && d <= Right
}

// Delta returns the row/col offset of a single step in d.
func (d Direction) Delta() Cell {
	if !d.Valid() {
		return Cell{}
	}
	return deltas[d]
}

// Opposite returns the 180 degree reversal of d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Reverses reports whether d and other lie on the same axis.
func (d Direction) Reverses(other Direction) bool {
	return d%2 == other%2
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// MarshalText encodes the direction by name.
func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("rules: invalid direction %d", int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText decodes a direction name.
func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDirection maps "up", "down", "left" and "right" (any case) to a
// Direction.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return Up, fmt.Errorf("rules: unknown direction %q", s)
}
