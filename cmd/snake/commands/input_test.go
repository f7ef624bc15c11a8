package commands

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gridsnake/engine/rules"
	"github.com/gridsnake/engine/worker"
	termbox "github.com/nsf/termbox-go"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestInputForKey(t *testing.T) {
	tests := []struct {
		Event    termbox.Event
		Expected worker.Input
		Ok       bool
	}{
		{Event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowUp}, Expected: worker.Input{Direction: rules.Up}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowDown}, Expected: worker.Input{Direction: rules.Down}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowLeft}, Expected: worker.Input{Direction: rules.Left}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowRight}, Expected: worker.Input{Direction: rules.Right}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'w'}, Expected: worker.Input{Direction: rules.Up}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'S'}, Expected: worker.Input{Direction: rules.Down}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'a'}, Expected: worker.Input{Direction: rules.Left}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'd'}, Expected: worker.Input{Direction: rules.Right}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'r'}, Expected: worker.Input{Restart: true}, Ok: true},
		{Event: termbox.Event{Type: termbox.EventKey, Ch: 'x'}},
		{Event: termbox.Event{Type: termbox.EventResize}},
	}

	for _, test := range tests {
		in, ok := inputForKey(test.Event)
		require.Equal(t, test.Ok, ok, "%+v", test.Event)
		require.Equal(t, test.Expected, in, "%+v", test.Event)
	}
}

func TestIsQuit(t *testing.T) {
	require.True(t, isQuit(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}))
	require.True(t, isQuit(termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}))
	require.True(t, isQuit(termbox.Event{Type: termbox.EventKey, Ch: 'Q'}))
	require.True(t, isQuit(termbox.Event{Type: termbox.EventInterrupt}))
	require.False(t, isQuit(termbox.Event{Type: termbox.EventKey, Ch: 'w'}))
	require.False(t, isQuit(termbox.Event{Type: termbox.EventResize}))
}

func TestPollKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events := make(chan termbox.Event)
	input := make(chan worker.Input, 4)
	done := make(chan struct{})
	go func() {
		pollKeys(ctx, cancel, events, input)
		close(done)
	}()

	events <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyArrowLeft}
	events <- termbox.Event{Type: termbox.EventKey, Ch: 'x'}
	events <- termbox.Event{Type: termbox.EventKey, Ch: 'r'}
	events <- termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "pollKeys did not stop on quit")
	}
	require.Equal(t, context.Canceled, ctx.Err())
	require.Equal(t, worker.Input{Direction: rules.Left}, <-input)
	require.Equal(t, worker.Input{Restart: true}, <-input)
	require.Len(t, input, 0)
}

func TestRedirectLog(t *testing.T) {
	dir, err := ioutil.TempDir("", "snake")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "snake.log")
	restore, err := redirectLog(path)
	require.NoError(t, err)
	log.Info("hello from the game")
	restore()

	data, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "hello from the game")

	_, err = redirectLog(filepath.Join(dir, "missing", "snake.log"))
	require.Error(t, err)
}
