// Package worker drives a game in real time. It owns the engine, applies
// player input between ticks, advances the game on a fixed interval and hands
// every resulting frame to the renderer and the frame store.
package worker

import (
	"context"
	"time"

	"github.com/gridsnake/engine/controller"
	"github.com/gridsnake/engine/rules"
	log "github.com/sirupsen/logrus"
)

// Engine is the game the worker drives. *rules.GameState satisfies it.
type Engine interface {
	SetDirection(d rules.Direction)
	Reset()
	Tick() rules.Event
	Frame() *rules.Frame
}

// Renderer draws frames. Implementations are called from the worker's
// goroutine only.
type Renderer interface {
	Render(f *rules.Frame) error
}

// Input is a single player request. Restart takes precedence over Direction.
type Input struct {
	Direction rules.Direction
	Restart   bool
}

// Worker runs one game session.
type Worker struct {
	Game         Engine
	TickInterval time.Duration
	SessionID    string

	// Renderer and Store are optional.
	Renderer Renderer
	Store    controller.Store

	seq int64
}

// Run drives the game until ctx is done or input is closed. All calls into the
// engine happen on the calling goroutine.
func (w *Worker) Run(ctx context.Context, input <-chan Input) error {
	if err := w.publish(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-input:
			if !ok {
				return nil
			}
			if in.Restart {
				log.WithField("SessionID", w.SessionID).Info("restart requested")
				w.Game.Reset()
				recordEvent(rules.EventReset, w.Game.Frame())
				if err := w.publish(ctx); err != nil {
					return err
				}
				continue
			}
			w.Game.SetDirection(in.Direction)
		case <-ticker.C:
			if err := w.tick(ctx); err != nil {
				return err
			}
		}
	}
}

func (w *Worker) tick(ctx context.Context) error {
	event := w.Game.Tick()
	frame := w.Game.Frame()
	recordEvent(event, frame)

	switch {
	case event == rules.EventGridFilled:
		log.WithFields(log.Fields{
			"SessionID": w.SessionID,
			"Round":     frame.Round - 1,
		}).Info("snake filled the grid")
	case event.Restarted():
		log.WithFields(log.Fields{
			"SessionID": w.SessionID,
			"Round":     frame.Round - 1,
			"Cause":     event,
		}).Info("snake died, starting new round")
	case event == rules.EventAte:
		log.WithFields(log.Fields{
			"SessionID": w.SessionID,
			"Round":     frame.Round,
			"Turn":      frame.Turn,
			"Length":    len(frame.Snake),
		}).Debug("snake ate")
	}

	return w.publishFrame(ctx, frame)
}

func (w *Worker) publish(ctx context.Context) error {
	return w.publishFrame(ctx, w.Game.Frame())
}

func (w *Worker) publishFrame(ctx context.Context, frame *rules.Frame) error {
	w.seq++
	frame.Seq = w.seq

	if w.Store != nil {
		if err := w.Store.PushFrame(ctx, frame); err != nil {
			log.WithError(err).
				WithField("SessionID", w.SessionID).
				WithField("Seq", frame.Seq).
				Error("unable to store frame")
		}
	}
	if w.Renderer != nil {
		if err := w.Renderer.Render(frame); err != nil {
			return err
		}
	}
	return nil
}
