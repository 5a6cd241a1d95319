// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
)

func TestEdgeFIFO(t *testing.T) {
	prod, cons := flowd.NewEdge(8)

	pushed := [][]byte{[]byte("a"), []byte("b"), []byte("c")}
	for _, ip := range pushed {
		returned, err := prod.Push(ip)
		require.NoError(t, err)
		require.Nil(t, returned)
	}

	for _, want := range pushed {
		got, err := cons.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestEdgeBoundedness(t *testing.T) {
	prod, _ := flowd.NewEdge(4) // rounds up to 4

	for i := 0; i < 4; i++ {
		_, err := prod.Push([]byte{byte(i)})
		require.NoError(t, err)
	}

	returned, err := prod.Push([]byte("overflow"))
	require.Error(t, err)
	assert.True(t, flowd.IsWouldBlock(err))
	assert.Equal(t, []byte("overflow"), returned, "a failed push must return the IP unchanged")
}

func TestEdgeEmptyPop(t *testing.T) {
	_, cons := flowd.NewEdge(4)

	_, err := cons.Pop()
	require.Error(t, err)
	assert.True(t, errors.Is(err, flowd.ErrEdgeEmpty))
}

func TestEdgeAbandonmentIsStickyAndTerminal(t *testing.T) {
	prod, cons := flowd.NewEdge(4)

	_, err := prod.Push([]byte("last"))
	require.NoError(t, err)
	prod.Close()

	assert.True(t, cons.IsAbandoned())
	assert.False(t, cons.Drained(), "items pushed before drop must still be poppable")

	got, err := cons.Pop()
	require.NoError(t, err)
	assert.Equal(t, []byte("last"), got)

	assert.True(t, cons.IsAbandoned(), "abandonment stays true")
	assert.True(t, cons.Drained())

	_, err = cons.Pop()
	assert.True(t, errors.Is(err, flowd.ErrEdgeAbandoned), "pops on a drained edge report abandonment, not plain emptiness")
}

func TestEdgeReadChunk(t *testing.T) {
	prod, cons := flowd.NewEdge(8)
	for i := 0; i < 5; i++ {
		_, err := prod.Push([]byte{byte(i)})
		require.NoError(t, err)
	}

	chunk := cons.ReadChunk(3)
	require.Len(t, chunk.Items, 3)
	for i, item := range chunk.Items {
		assert.Equal(t, byte(i), item[0])
	}

	assert.Equal(t, 2, cons.Slots())
}

func TestEdgeReadChunkZeroIsNoop(t *testing.T) {
	prod, cons := flowd.NewEdge(4)
	_, err := prod.Push([]byte("x"))
	require.NoError(t, err)

	chunk := cons.ReadChunk(0)
	assert.Empty(t, chunk.Items)
	assert.Equal(t, 1, cons.Slots())
}

func TestEdgeWakeupUnparksConsumer(t *testing.T) {
	prod, cons := flowd.NewEdge(4)
	waker := flowd.NewParker()
	prod.SetWakeup(waker)

	done := make(chan struct{})
	go func() {
		waker.Park()
		close(done)
	}()

	// the goroutine may not have reached Park yet; the Unpark done by Push
	// is still correct if it races ahead, since the token persists.
	_, err := prod.Push([]byte("wake"))
	require.NoError(t, err)

	<-done
	got, err := cons.Pop()
	require.NoError(t, err)
	assert.Equal(t, []byte("wake"), got)
}

func TestBackpressureScenario(t *testing.T) {
	// §8 end-to-end scenario 8: fill a 2401-capacity edge, next push
	// returns EdgeFull with the IP returned, then after a pop it succeeds.
	prod, cons := flowd.NewEdge(flowd.DataEdgeCapacity)
	require.Equal(t, flowd.DataEdgeCapacity, prod.Slots())

	for i := 0; i < flowd.DataEdgeCapacity; i++ {
		_, err := prod.Push([]byte("x"))
		require.NoError(t, err)
	}

	returned, err := prod.Push([]byte("overflow"))
	require.Error(t, err)
	assert.Equal(t, []byte("overflow"), returned)

	_, err = cons.Pop()
	require.NoError(t, err)

	_, err = prod.Push([]byte("fits now"))
	require.NoError(t, err)
}
