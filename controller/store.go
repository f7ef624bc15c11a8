// Package controller keeps the frames published by a running game so that
// spectators can read them. Frames live in memory for the lifetime of the
// process only.
package controller

import (
	"context"
	"errors"
	"sync"

	"github.com/gridsnake/engine/rules"
)

var (
	// ErrNotFound is returned when no frame has been published yet.
	ErrNotFound = errors.New("controller: frame not found")
	// ErrOutOfOrder is returned when a frame does not advance the sequence.
	ErrOutOfOrder = errors.New("controller: frame out of order")
)

// Store is the interface to the frame store.
type Store interface {
	PushFrame(ctx context.Context, f *rules.Frame) error
	ListFrames(ctx context.Context, after int64, limit int) ([]*rules.Frame, error)
	LastFrame(ctx context.Context) (*rules.Frame, error)
}

// InMemStore returns an in memory Store holding at most capacity of the most
// recent frames.
func InMemStore(capacity int) Store {
	if capacity < 1 {
		capacity = 1
	}
	return &inmem{
		frames: make([]*rules.Frame, 0, capacity),
		cap:    capacity,
	}
}

type inmem struct {
	// frames is a ring; start indexes the oldest frame once it is full.
	frames []*rules.Frame
	start  int
	cap    int
	lock   sync.RWMutex
}

func (in *inmem) PushFrame(ctx context.Context, f *rules.Frame) error {
	in.lock.Lock()
	defer in.lock.Unlock()

	if last := in.last(); last != nil && f.Seq <= last.Seq {
		return ErrOutOfOrder
	}
	if len(in.frames) < in.cap {
		in.frames = append(in.frames, f)
		return nil
	}
	in.frames[in.start] = f
	in.start = (in.start + 1) % in.cap
	return nil
}

// ListFrames returns up to limit frames with a sequence greater than after,
// oldest first. A limit of zero or less returns every matching frame.
func (in *inmem) ListFrames(ctx context.Context, after int64, limit int) ([]*rules.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	frames := []*rules.Frame{}
	for i := 0; i < len(in.frames); i++ {
		f := in.at(i)
		if f.Seq <= after {
			continue
		}
		frames = append(frames, f)
		if limit > 0 && len(frames) == limit {
			break
		}
	}
	return frames, nil
}

func (in *inmem) LastFrame(ctx context.Context) (*rules.Frame, error) {
	in.lock.RLock()
	defer in.lock.RUnlock()

	if f := in.last(); f != nil {
		return f, nil
	}
	return nil, ErrNotFound
}

// at returns the i-th oldest frame.
func (in *inmem) at(i int) *rules.Frame {
	return in.frames[(in.start+i)%len(in.frames)]
}

func (in *inmem) last() *rules.Frame {
	if len(in.frames) == 0 {
		return nil
	}
	return in.at(len(in.frames) - 1)
}
