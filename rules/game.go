// Package rules implements the single player grid snake game. A GameState is
// driven by two entry points, SetDirection and Tick, and exposes read only
// queries for rendering. It has no knowledge of timing, input devices or
// drawing.
package rules

import (
	"errors"
	"math/rand"
	"time"
)

// MinGridSize is the smallest grid that always has room for the initial apple.
const MinGridSize = 2

// ErrGridTooSmall is returned by New when the grid cannot hold a snake and an apple.
var ErrGridTooSmall = errors.New("rules: grid size too small")

// Option configures a GameState at construction.
type Option func(*GameState)

// WithRand sets the random source used for apple placement.
func WithRand(r *rand.Rand) Option {
	return func(g *GameState) {
		g.rand = r
	}
}

// GameState owns the grid, the snake body and the apple. It is not safe for
// concurrent use; hosts serialize calls to SetDirection and Tick.
type GameState struct {
	size  int
	grid  []CellState
	snake []Cell // tail at index 0, head last
	apple Cell

	dir     Direction
	lastDir Direction

	turn  int64
	round int64
	event Event

	rand *rand.Rand
}

// New creates a size x size game and starts the first round.
func New(size int, opts ...Option) (*GameState, error) {
	if size < MinGridSize {
		return nil, ErrGridTooSmall
	}
	g := &GameState{
		size: size,
		grid: make([]CellState, size*size),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rand == nil {
		g.rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	g.Reset()
	return g, nil
}

// Reset starts a fresh round: a single segment snake in the centre heading
// up, and a new apple.
func (g *GameState) Reset() {
	g.reset(EventReset)
}

func (g *GameState) reset(cause Event) {
	g.snake = g.snake[:0]
	for i := range g.grid {
		g.grid[i] = Empty
	}
	g.dir = Up
	g.lastDir = Up
	g.turn = 0
	g.round++
	g.event = cause

	start := g.center()
	g.snake = append(g.snake, start)
	g.set(start, Snake)

	g.spawnApple()
}

// SetDirection requests the heading for the next tick. A request on the same
// axis as the last applied direction is ignored so the snake cannot turn back
// into its neck.
func (g *GameState) SetDirection(d Direction) {
	if !d.Valid() || d.Reverses(g.lastDir) {
		return
	}
	g.dir = d
}

// Tick advances the snake one cell and reports what happened. Running into a
// wall or into the body restarts the round.
func (g *GameState) Tick() Event {
	next := g.Head().Step(g.dir)
	g.lastDir = g.dir

	// The body is checked before the tail moves, so the current tail cell
	// counts as occupied.
	if !g.InBounds(next) {
		g.reset(EventWallCollision)
		return EventWallCollision
	}
	if g.at(next) == Snake {
		g.reset(EventSelfCollision)
		return EventSelfCollision
	}

	g.turn++
	if g.at(next) == Apple {
		g.snake = append(g.snake, next)
		g.set(next, Snake)
		if len(g.snake) == len(g.grid) {
			g.reset(EventGridFilled)
			return EventGridFilled
		}
		g.spawnApple()
		g.event = EventAte
		return EventAte
	}

	tail := g.snake[0]
	g.snake = append(g.snake[1:], next)
	g.set(tail, Empty)
	g.set(next, Snake)
	g.event = EventMove
	return EventMove
}

// spawnApple places the apple on a uniformly random empty cell. Callers
// guarantee at least one empty cell.
func (g *GameState) spawnApple() {
	empty := make([]Cell, 0, len(g.grid)-len(g.snake))
	for i, s := range g.grid {
		if s == Empty {
			empty = append(empty, g.cellOf(i))
		}
	}
	if len(empty) == 0 {
		panic("rules: no empty cell left for apple")
	}
	g.placeApple(empty[g.rand.Intn(len(empty))])
}

func (g *GameState) placeApple(c Cell) {
	if g.InBounds(g.apple) && g.at(g.apple) == Apple {
		g.set(g.apple, Empty)
	}
	g.apple = c
	g.set(c, Apple)
}

// Size returns the grid side length.
func (g *GameState) Size() int { return g.size }

// InBounds reports whether c lies on the grid.
func (g *GameState) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.size && c.Col >= 0 && c.Col < g.size
}

// CellAt returns the state of c. Cells off the grid are Empty.
func (g *GameState) CellAt(c Cell) CellState {
	if !g.InBounds(c) {
		return Empty
	}
	return g.at(c)
}

// Snake returns a copy of the body ordered from tail to head.
func (g *GameState) Snake() []Cell {
	body := make([]Cell, len(g.snake))
	copy(body, g.snake)
	return body
}

// Len returns the number of snake segments.
func (g *GameState) Len() int { return len(g.snake) }

// Head returns the most recently added segment.
func (g *GameState) Head() Cell { return g.snake[len(g.snake)-1] }

// Tail returns the oldest segment.
func (g *GameState) Tail() Cell { return g.snake[0] }

// Apple returns the apple cell.
func (g *GameState) Apple() Cell { return g.apple }

// Direction returns the direction the next tick will use.
func (g *GameState) Direction() Direction { return g.dir }

// LastDirection returns the direction used by the most recent tick.
func (g *GameState) LastDirection() Direction { return g.lastDir }

// Turn returns the number of ticks survived in the current round.
func (g *GameState) Turn() int64 { return g.turn }

// Round returns how many rounds have been started, including the current one.
func (g *GameState) Round() int64 { return g.round }

func (g *GameState) center() Cell {
	return Cell{Row: g.size / 2, Col: g.size / 2}
}

func (g *GameState) index(c Cell) int { return c.Row*g.size + c.Col }

func (g *GameState) cellOf(i int) Cell {
	return Cell{Row: i / g.size, Col: i % g.size}
}

func (g *GameState) at(c Cell) CellState { return g.grid[g.index(c)] }

func (g *GameState) set(c Cell, s CellState) { g.grid[g.index(c)] = s }
