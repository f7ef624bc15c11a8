package commands

import (
	"context"
	"unicode"

	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/worker"
	termbox "github.com/nsf/termbox-go"
)

// inputForKey maps arrow keys, WASD and r to player input.
func inputForKey(ev termbox.Event) (worker.Input, bool) {
	if ev.Type != termbox.EventKey {
		return worker.Input{}, false
	}
	switch ev.Key {
	case termbox.KeyArrowUp:
		return worker.Input{Direction: rules.Up}, true
	case termbox.KeyArrowDown:
		return worker.Input{Direction: rules.Down}, true
	case termbox.KeyArrowLeft:
		return worker.Input{Direction: rules.Left}, true
	case termbox.KeyArrowRight:
		return worker.Input{Direction: rules.Right}, true
	}
	switch unicode.ToLower(ev.Ch) {
	case 'w':
		return worker.Input{Direction: rules.Up}, true
	case 's':
		return worker.Input{Direction: rules.Down}, true
	case 'a':
		return worker.Input{Direction: rules.Left}, true
	case 'd':
		return worker.Input{Direction: rules.Right}, true
	case 'r':
		return worker.Input{Restart: true}, true
	}
	return worker.Input{}, false
}

func isQuit(ev termbox.Event) bool {
	if ev.Type == termbox.EventInterrupt {
		return true
	}
	if ev.Type != termbox.EventKey {
		return false
	}
	return ev.Key == termbox.KeyEsc || ev.Key == termbox.KeyCtrlC || unicode.ToLower(ev.Ch) == 'q'
}

// pollKeys forwards key presses to input until a quit key is pressed, then
// cancels the game.
func pollKeys(ctx context.Context, cancel context.CancelFunc, events <-chan termbox.Event, input chan<- worker.Input) {
	defer cancel()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-events:
			if isQuit(ev) {
				return
			}
			in, ok := inputForKey(ev)
			if !ok {
				continue
			}
			select {
			case input <- in:
			case <-ctx.Done():
				return
			}
		}
	}
}

func setupEventQueue() <-chan termbox.Event {
	eventQueue := make(chan termbox.Event)
	go func(ev chan<- termbox.Event) {
		for {
			ev <- termbox.PollEvent()
		}
	}(eventQueue)
	return eventQueue
}
