package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFrameMatchesGrid(t *testing.T) {
	g := newTestGame(t, 6)
	setSnake(g, Right, Cell{Row: 3, Col: 1}, Cell{Row: 3, Col: 2}, Cell{Row: 3, Col: 3})
	g.placeApple(Cell{Row: 0, Col: 5})
	require.Equal(t, EventMove, g.Tick())

	f := g.Frame()
	require.Equal(t, int64(1), f.Turn)
	require.Equal(t, int64(1), f.Round)
	require.Equal(t, 6, f.Size)
	require.Equal(t, EventMove, f.Event)
	require.Equal(t, Right, f.Direction)
	require.Equal(t, &Cell{Row: 3, Col: 4}, f.Head())

	cells := f.Cells()
	for r := 0; r < g.Size(); r++ {
		for c := 0; c < g.Size(); c++ {
			require.Equal(t, g.CellAt(Cell{Row: r, Col: c}), cells[r][c], "cell (%d, %d)", r, c)
		}
	}
}

func TestFrameIsDetached(t *testing.T) {
	g := newTestGame(t, 5)
	f := g.Frame()
	g.placeApple(Cell{Row: 0, Col: 0})
	g.Tick()

	require.Equal(t, []Cell{{Row: 2, Col: 2}}, f.Snake)
	require.Nil(t, (&Frame{}).Head())
}

func TestFrameJSON(t *testing.T) {
	f := &Frame{
		Seq:       3,
		Round:     1,
		Turn:      2,
		Size:      5,
		Snake:     []Cell{{Row: 2, Col: 2}, {Row: 1, Col: 2}},
		Apple:     Cell{Row: 4, Col: 0},
		Direction: Up,
		Event:     EventAte,
	}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"seq": 3, "round": 1, "turn": 2, "size": 5,
		"snake": [{"row": 2, "col": 2}, {"row": 1, "col": 2}],
		"apple": {"row": 4, "col": 0},
		"direction": "up",
		"event": "ate"
	}`, string(data))

	decoded := &Frame{}
	require.NoError(t, json.Unmarshal(data, decoded))
	require.Equal(t, f, decoded)
}
