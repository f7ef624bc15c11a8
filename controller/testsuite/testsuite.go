// Package testsuite exercises any controller.Store implementation against the
// behaviour the spectator API relies on.
package testsuite

import (
	"context"
	"sync"
	"testing"

	"github.com/gridsnake/engine/controller"
	"github.com/gridsnake/engine/rules"
	"github.com/stretchr/testify/require"
)

func frame(seq int64) *rules.Frame {
	return &rules.Frame{
		Seq:   seq,
		Round: 1,
		Turn:  seq,
		Size:  5,
		Snake: []rules.Cell{{Row: 2, Col: 2}},
		Apple: rules.Cell{Row: 0, Col: 0},
		Event: rules.EventMove,
	}
}

func seqs(frames []*rules.Frame) []int64 {
	out := []int64{}
	for _, f := range frames {
		out = append(out, f.Seq)
	}
	return out
}

func testStoreEmpty(t *testing.T, s controller.Store) {
	ctx := context.Background()

	_, err := s.LastFrame(ctx)
	require.Equal(t, controller.ErrNotFound, err)

	frames, err := s.ListFrames(ctx, 0, 10)
	require.NoError(t, err)
	require.Empty(t, frames)
}

func testStorePushList(t *testing.T, s controller.Store) {
	ctx := context.Background()

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, s.PushFrame(ctx, frame(i)))
	}

	last, err := s.LastFrame(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(5), last.Seq)

	frames, err := s.ListFrames(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3, 4, 5}, seqs(frames))

	frames, err = s.ListFrames(ctx, 2, 2)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 4}, seqs(frames))

	frames, err = s.ListFrames(ctx, 5, 10)
	require.NoError(t, err)
	require.Empty(t, frames)
}

func testStoreOutOfOrder(t *testing.T, s controller.Store) {
	ctx := context.Background()

	require.NoError(t, s.PushFrame(ctx, frame(3)))
	require.Equal(t, controller.ErrOutOfOrder, s.PushFrame(ctx, frame(3)))
	require.Equal(t, controller.ErrOutOfOrder, s.PushFrame(ctx, frame(1)))
	require.NoError(t, s.PushFrame(ctx, frame(7)))
}

func testStoreEviction(t *testing.T, s controller.Store, capacity int) {
	ctx := context.Background()

	total := int64(capacity*2 + 1)
	for i := int64(1); i <= total; i++ {
		require.NoError(t, s.PushFrame(ctx, frame(i)))
	}

	frames, err := s.ListFrames(ctx, 0, 0)
	require.NoError(t, err)
	require.Len(t, frames, capacity)
	require.Equal(t, total-int64(capacity)+1, frames[0].Seq)
	require.Equal(t, total, frames[len(frames)-1].Seq)
}

func testStoreConcurrentReads(t *testing.T, s controller.Store) {
	ctx := context.Background()

	wg := sync.WaitGroup{}
	wg.Add(4)
	for r := 0; r < 4; r++ {
		go func() {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				if _, err := s.ListFrames(ctx, 0, 5); err != nil {
					t.Error(err)
					return
				}
			}
		}()
	}
	for i := int64(1); i <= 100; i++ {
		require.NoError(t, s.PushFrame(ctx, frame(i)))
	}
	wg.Wait()
}

// Suite runs every store check. newStore must return an empty store holding
// at most capacity frames.
func Suite(t *testing.T, capacity int, newStore func() controller.Store) {
	t.Run("Empty", func(t *testing.T) { testStoreEmpty(t, newStore()) })
	t.Run("PushList", func(t *testing.T) { testStorePushList(t, newStore()) })
	t.Run("OutOfOrder", func(t *testing.T) { testStoreOutOfOrder(t, newStore()) })
	t.Run("Eviction", func(t *testing.T) { testStoreEviction(t, newStore(), capacity) })
	t.Run("ConcurrentReads", func(t *testing.T) { testStoreConcurrentReads(t, newStore()) })
}
