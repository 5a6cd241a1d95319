// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import "code.hybscloud.com/atomix"

// Parker is the wakeup handle attached to a component's run loop. It
// implements the park-with-saved-token discipline §5 of the runtime
// requires: an Unpark issued before the matching Park causes that Park to
// return immediately, and concurrent Unparks coalesce into a single token.
//
// The zero value is not usable; construct with [NewParker].
type Parker struct {
	parked atomix.Bool
	token  chan struct{}
}

// NewParker returns a ready-to-use [Parker].
func NewParker() *Parker {
	return &Parker{token: make(chan struct{}, 1)}
}

// Park blocks the calling goroutine until a matching Unpark has arrived,
// returning immediately if one is already pending.
func (p *Parker) Park() {
	p.parked.StoreRelease(true)
	<-p.token
	p.parked.StoreRelease(false)
}

// Unpark wakes a parked goroutine, or leaves a token for the next Park if
// none is currently parked. Unparking a non-parked goroutine is a no-op
// beyond leaving that token; redundant Unparks while one is already pending
// coalesce into the single pending token.
func (p *Parker) Unpark() {
	select {
	case p.token <- struct{}{}:
	default:
		// a token is already pending; this unpark coalesces with it.
	}
}

// Parked reports whether the goroutine is currently blocked in Park. It is
// advisory only — by the time the caller observes the result the state may
// already have changed.
func (p *Parker) Parked() bool {
	return p.parked.LoadAcquire()
}
