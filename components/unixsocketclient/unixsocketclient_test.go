// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package unixsocketclient_test

import (
	"encoding/binary"
	"io"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
	"code.hybscloud.com/flowd/components/unixsocketclient"
)

// startEchoServer listens on a Unix socket, reads back each length-prefixed
// frame UnixSocketClient writes, and replies with its uppercased form as a
// newline-terminated line.
func startEchoServer(t *testing.T) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "test.sock")
	ln, err := net.Listen("unix", socketPath)
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		for {
			var header [4]byte
			if _, err := io.ReadFull(conn, header[:]); err != nil {
				return
			}
			payload := make([]byte, binary.BigEndian.Uint32(header[:]))
			if _, err := io.ReadFull(conn, payload); err != nil {
				return
			}

			upper := make([]byte, 0, len(payload)+1)
			for _, ch := range payload {
				if ch >= 'a' && ch <= 'z' {
					ch -= 'a' - 'A'
				}
				upper = append(upper, ch)
			}
			upper = append(upper, '\n')
			if _, err := conn.Write(upper); err != nil {
				return
			}
		}
	}()

	return socketPath
}

func TestUnixSocketClient(t *testing.T) {
	socketPath := startEchoServer(t)

	confOut, confIn := flowd.NewEdge(flowd.IIPEdgeCapacity)
	inOut, in := flowd.NewEdge(flowd.DataEdgeCapacity)
	out, outIn := flowd.NewEdge(flowd.DataEdgeCapacity)
	src, sink := flowd.NewSignalChannel()
	_, outSink := flowd.NewSignalChannel()
	_ = sink

	park := flowd.NewParker()
	confOut.SetWakeup(park)
	inOut.SetWakeup(park)

	comp, err := unixsocketclient.New(flowd.Deps{
		Inports:    flowd.Inports{"CONF": {confIn}, "IN": {in}},
		Outports:   flowd.Outports{"OUT": {out}},
		SignalsIn:  src,
		SignalsOut: outSink,
		Name:       "test/UnixSocketClient",
		Log:        flowd.DefaultSLogger(),
		Park:       park,
	})
	require.NoError(t, err)

	_, err = confOut.Push([]byte(socketPath))
	require.NoError(t, err)

	_, err = inOut.Push([]byte("hello"))
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		comp.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return outIn.Slots() > 0
	}, 2*time.Second, 10*time.Millisecond)

	got, err := outIn.Pop()
	require.NoError(t, err)
	assert.Equal(t, "HELLO", string(got))

	inOut.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("UnixSocketClient did not exit after EOF")
	}
}
