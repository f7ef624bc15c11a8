package rules

// Event describes the outcome of a single Tick.
type Event string

const (
	// EventMove is a plain step: the head advanced and the tail vacated.
	EventMove Event = "move"
	// EventAte is a growth step: the head landed on the apple.
	EventAte Event = "ate"
	// EventWallCollision is when the head would leave the grid. The game resets.
	EventWallCollision Event = "wall-collision"
	// EventSelfCollision is when the head runs into the body. The game resets.
	EventSelfCollision Event = "self-collision"
	// EventGridFilled is when the snake covers every cell. The game resets.
	EventGridFilled Event = "grid-filled"
	// EventReset marks a frame produced by an explicit Reset.
	EventReset Event = "reset"
)

// Restarted reports whether the event ended the round.
func (e Event) Restarted() bool {
	switch e {
	case EventWallCollision, EventSelfCollision, EventGridFilled, EventReset:
		return true
	}
	return false
}
