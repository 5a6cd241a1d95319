// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import "code.hybscloud.com/flowd/internal/lfq"

// Signal is the payload type carried on the per-component signal channel.
// Signals are IPs by representation (UTF-8 byte strings) but flow on a
// channel distinct from data edges.
type Signal = []byte

// SignalSource is the single consumer side of a component's signal channel.
type SignalSource struct {
	q *lfq.MPSC[Signal]
}

// SignalSink is a cloneable producer handle onto a component's signal
// channel; only the runtime (or reflective components) hold one.
type SignalSink struct {
	q *lfq.MPSC[Signal]
}

// NewSignalChannel creates a bounded MPSC signal channel pair of capacity
// [SignalEdgeCapacity].
func NewSignalChannel() (SignalSource, SignalSink) {
	q := lfq.NewMPSC[Signal](SignalEdgeCapacity)
	return SignalSource{q: q}, SignalSink{q: q}
}

// TryRecv performs the non-blocking poll the standard run loop makes at the
// top of every work cycle. It returns [ErrEdgeEmpty] if nothing is pending.
func (s SignalSource) TryRecv() (Signal, error) {
	sig, err := s.q.Dequeue()
	if err != nil {
		return nil, ErrEdgeEmpty
	}
	return sig, nil
}

// Pending reports the number of signals currently queued and unread,
// mirroring [Consumer.Slots] on data edges. Race-safe but approximate: a
// concurrent Send may land between the read and the caller observing it.
func (s SignalSource) Pending() int { return s.q.Slots() }

// Send posts a signal. Multiple senders may call Send concurrently; the
// channel is MPSC. Returns [ErrEdgeFull] if the bounded channel is
// saturated — the caller decides whether to retry.
func (s SignalSink) Send(sig Signal) error {
	return s.q.Enqueue(&sig)
}

// IsFull reports whether the signal channel currently has no free slots,
// mirroring [Producer.IsFull] on data edges.
func (s SignalSink) IsFull() bool { return s.q.FreeSlots() == 0 }

// Clone returns another handle onto the same underlying channel, matching
// the original runtime's cloneable-sender semantics (the sink can have
// multiple producers; the source has exactly one consumer).
func (s SignalSink) Clone() SignalSink {
	return s
}
