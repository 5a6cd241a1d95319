// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
)

func TestSignalChannelCapacity(t *testing.T) {
	src, sink := flowd.NewSignalChannel()

	require.NoError(t, sink.Send([]byte(flowd.SignalStop)))
	require.NoError(t, sink.Send([]byte(flowd.SignalPing)))

	err := sink.Send([]byte(flowd.SignalPong))
	require.Error(t, err, "signal channel capacity is 2")

	got, err := src.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, flowd.SignalStop, string(got))
}

func TestSignalChannelEmptyIsNonBlocking(t *testing.T) {
	src, _ := flowd.NewSignalChannel()

	_, err := src.TryRecv()
	require.Error(t, err)
	assert.True(t, flowd.IsWouldBlock(err))
}

func TestSignalChannelPendingAndFull(t *testing.T) {
	src, sink := flowd.NewSignalChannel()

	assert.Equal(t, 0, src.Pending())
	assert.False(t, sink.IsFull())

	require.NoError(t, sink.Send([]byte(flowd.SignalPing)))
	assert.Equal(t, 1, src.Pending())
	assert.False(t, sink.IsFull())

	require.NoError(t, sink.Send([]byte(flowd.SignalStop)))
	assert.Equal(t, 2, src.Pending())
	assert.True(t, sink.IsFull())

	_, err := src.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, 1, src.Pending())
	assert.False(t, sink.IsFull())
}

func TestSignalSinkCloneSharesChannel(t *testing.T) {
	src, sink := flowd.NewSignalChannel()
	clone := sink.Clone()

	require.NoError(t, clone.Send([]byte(flowd.SignalPing)))

	got, err := src.TryRecv()
	require.NoError(t, err)
	assert.Equal(t, flowd.SignalPing, string(got))
}
