// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"code.hybscloud.com/flowd"
)

func TestParkerUnparkBeforeParkIsImmediate(t *testing.T) {
	p := flowd.NewParker()
	p.Unpark()

	done := make(chan struct{})
	go func() {
		p.Park()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Park did not return immediately after a prior Unpark")
	}
}

func TestParkerMultipleUnparksCoalesce(t *testing.T) {
	p := flowd.NewParker()
	p.Unpark()
	p.Unpark()
	p.Unpark()

	done := make(chan struct{})
	go func() {
		p.Park() // consumes the single coalesced token
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("first Park after coalesced unparks did not return")
	}

	// a second Park must block, since only one token was ever pending.
	secondReturned := make(chan struct{})
	go func() {
		p.Park()
		close(secondReturned)
	}()

	select {
	case <-secondReturned:
		t.Fatal("second Park returned without a matching Unpark")
	case <-time.After(50 * time.Millisecond):
	}

	p.Unpark()
	select {
	case <-secondReturned:
	case <-time.After(time.Second):
		t.Fatal("second Park did not wake after its own Unpark")
	}
}

func TestParkerWakeupLiveness(t *testing.T) {
	p := flowd.NewParker()

	done := make(chan struct{})
	go func() {
		p.Park()
		close(done)
	}()

	// give the goroutine time to actually reach Park before unparking.
	for !p.Parked() {
		time.Sleep(time.Millisecond)
	}
	p.Unpark()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("parked goroutine never resumed after Unpark")
	}
	assert.False(t, p.Parked())
}
