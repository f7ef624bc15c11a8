package commands

import (
	"sync"

	"github.com/gridsnake/engine/rules"
)

type frameHolder struct {
	sync.RWMutex
	frames []*rules.Frame
	ffc    chan *rules.Frame
	once   sync.Once
}

func (fh *frameHolder) append(frame *rules.Frame) {
	fh.Lock()
	defer fh.Unlock()

	if len(fh.frames) == 0 {
		ffc := fh.initialFrame()
		ffc <- frame
		close(ffc)
	}

	fh.frames = append(fh.frames, frame)
}

func (fh *frameHolder) get(index int) *rules.Frame {
	fh.RLock()
	defer fh.RUnlock()

	if index < 0 || index >= len(fh.frames) {
		return nil
	}

	return fh.frames[index]
}

// initialFrame yields the first appended frame once, then closes.
func (fh *frameHolder) initialFrame() chan *rules.Frame {
	fh.once.Do(func() {
		fh.ffc = make(chan *rules.Frame, 1)
	})
	return fh.ffc
}

func (fh *frameHolder) count() int {
	fh.RLock()
	defer fh.RUnlock()

	return len(fh.frames)
}
