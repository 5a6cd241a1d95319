// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package telegrambot

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
)

// fakeTelegramServer answers just enough of the Bot API for one incoming
// message and one outgoing reply to round-trip through the component.
func fakeTelegramServer(t *testing.T) (*httptest.Server, chan string) {
	t.Helper()

	var updatesServed int32
	sent := make(chan string, 4)

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			_, _ = w.Write([]byte(`{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"test","username":"test_bot"}}`))
		case strings.HasSuffix(r.URL.Path, "/getUpdates"):
			if atomic.CompareAndSwapInt32(&updatesServed, 0, 1) {
				_, _ = w.Write([]byte(`{"ok":true,"result":[{"update_id":1,"message":{"message_id":1,"date":0,"chat":{"id":42,"type":"private"},"text":"ping"}}]}`))
				return
			}
			_, _ = w.Write([]byte(`{"ok":true,"result":[]}`))
		case strings.HasSuffix(r.URL.Path, "/sendMessage"):
			_ = r.ParseForm()
			sent <- r.FormValue("text")
			resp := map[string]any{
				"ok": true,
				"result": map[string]any{
					"message_id": 2,
					"date":       0,
					"chat":       map[string]any{"id": 42, "type": "private"},
					"text":       r.FormValue("text"),
				},
			}
			_ = json.NewEncoder(w).Encode(resp)
		default:
			http.NotFound(w, r)
		}
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, sent
}

func TestTelegramBot(t *testing.T) {
	srv, sent := fakeTelegramServer(t)

	prevEndpoint := apiEndpoint
	apiEndpoint = srv.URL + "/bot%s/%s"
	t.Cleanup(func() { apiEndpoint = prevEndpoint })

	confOut, confIn := flowd.NewEdge(flowd.IIPEdgeCapacity)
	inOut, in := flowd.NewEdge(flowd.DataEdgeCapacity)
	out, outIn := flowd.NewEdge(flowd.DataEdgeCapacity)
	src, sink := flowd.NewSignalChannel()
	_, outSink := flowd.NewSignalChannel()

	park := flowd.NewParker()
	confOut.SetWakeup(park)
	inOut.SetWakeup(park)

	comp, err := New(flowd.Deps{
		Inports:    flowd.Inports{"CONF": {confIn}, "IN": {in}},
		Outports:   flowd.Outports{"OUT": {out}},
		SignalsIn:  src,
		SignalsOut: outSink,
		Name:       "test/TelegramBot",
		Log:        flowd.DefaultSLogger(),
		Park:       park,
	})
	require.NoError(t, err)

	_, err = confOut.Push([]byte("dummy-token"))
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
	assert.Equal(t, "ping", string(got))

	_, err = inOut.Push([]byte("pong"))
	require.NoError(t, err)
	park.Unpark()

	select {
	case text := <-sent:
		assert.Equal(t, "pong", text)
	case <-time.After(2 * time.Second):
		t.Fatal("reply was never sent to the Telegram API")
	}

	require.NoError(t, sink.Send([]byte(flowd.SignalStop)))
	park.Unpark()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("TelegramBot did not exit after stop signal")
	}
}
