// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package jsonquery_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"code.hybscloud.com/flowd"
	"code.hybscloud.com/flowd/components/jsonquery"
)

func TestJSONQuery(t *testing.T) {
	queryOut, queryIn := flowd.NewEdge(flowd.IIPEdgeCapacity)
	inOut, in := flowd.NewEdge(flowd.DataEdgeCapacity)
	out, outIn := flowd.NewEdge(flowd.DataEdgeCapacity)
	src, sink := flowd.NewSignalChannel()
	_, outSink := flowd.NewSignalChannel()
	_ = sink

	park := flowd.NewParker()
	queryOut.SetWakeup(park)
	inOut.SetWakeup(park)

	comp, err := jsonquery.New(flowd.Deps{
		Inports:    flowd.Inports{"QUERY": {queryIn}, "IN": {in}},
		Outports:   flowd.Outports{"OUT": {out}},
		SignalsIn:  src,
		SignalsOut: outSink,
		Name:       "test/JSONQuery",
		Log:        flowd.DefaultSLogger(),
		Park:       park,
	})
	require.NoError(t, err)

	_, err = queryOut.Push([]byte(".temp"))
	require.NoError(t, err)

	_, err = inOut.Push([]byte(`{"temp": 21.5, "unit": "C"}`))
	require.NoError(t, err)
	inOut.Close()

	done := make(chan struct{})
	go func() {
		comp.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("JSONQuery did not exit after EOF")
	}

	got, err := outIn.Pop()
	require.NoError(t, err)
	assert.Equal(t, "21.5", string(got))
}

func TestJSONQueryArrayExplodesIntoMultiplePackets(t *testing.T) {
	queryOut, queryIn := flowd.NewEdge(flowd.IIPEdgeCapacity)
	inOut, in := flowd.NewEdge(flowd.DataEdgeCapacity)
	out, outIn := flowd.NewEdge(flowd.DataEdgeCapacity)
	src, sink := flowd.NewSignalChannel()
	_, outSink := flowd.NewSignalChannel()
	_ = sink

	park := flowd.NewParker()
	queryOut.SetWakeup(park)
	inOut.SetWakeup(park)

	comp, err := jsonquery.New(flowd.Deps{
		Inports:    flowd.Inports{"QUERY": {queryIn}, "IN": {in}},
		Outports:   flowd.Outports{"OUT": {out}},
		SignalsIn:  src,
		SignalsOut: outSink,
		Name:       "test/JSONQuery",
		Log:        flowd.DefaultSLogger(),
		Park:       park,
	})
	require.NoError(t, err)

	_, err = queryOut.Push([]byte(".[]"))
	require.NoError(t, err)

	_, err = inOut.Push([]byte(`[1, 2, 3]`))
	require.NoError(t, err)
	inOut.Close()

	done := make(chan struct{})
	go func() {
		comp.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("JSONQuery did not exit after EOF")
	}

	for _, want := range []string{"1", "2", "3"} {
		got, err := outIn.Pop()
		require.NoError(t, err)
		assert.Equal(t, want, string(got))
	}
}
