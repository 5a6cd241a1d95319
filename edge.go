// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/flowd/internal/lfq"
)

// Standard edge capacities (§3 DATA MODEL).
const (
	// DataEdgeCapacity is 7^4, the default capacity for IN/OUT data edges.
	DataEdgeCapacity = 7 * 7 * 7 * 7
	// SignalEdgeCapacity is the bounded capacity of every signal channel.
	SignalEdgeCapacity = 2
	// IIPEdgeCapacity is the capacity of an initial-information-packet edge:
	// exactly one configuration IP, posted before the graph starts.
	IIPEdgeCapacity = 1
)

// edgeState is the shared, abandonment-tracking core behind a matched
// Producer/Consumer pair. Exactly one of each endpoint exists per edge;
// edges are never cloned and never shared beyond their two owners.
type edgeState struct {
	ring            *lfq.SPSC[IP]
	capacity        int
	producerDropped atomix.Bool
	consumerDropped atomix.Bool
}

// NewEdge creates a matched (Producer, Consumer) pair of exactly the
// requested logical capacity. [lfq.NewSPSC] rounds its physical buffer up
// to the next power of two for its mask-based indexing, so the edge tracks
// the requested capacity separately and refuses pushes once that many items
// are resident, even though the underlying ring could hold more — this
// keeps the standard capacities (2401, 2, 1) exact rather than silently
// growing to 4096/2/2. A capacity of 1 is backed by a ring of 2, the
// smallest [lfq.NewSPSC] accepts.
func NewEdge(capacity int) (*Producer, *Consumer) {
	ringCap := capacity
	if ringCap < 2 {
		ringCap = 2
	}
	st := &edgeState{ring: lfq.NewSPSC[IP](ringCap), capacity: capacity}
	return &Producer{state: st}, &Consumer{state: st}
}

// Producer is the sole producer endpoint of an edge.
type Producer struct {
	state *edgeState
	// wakeup, if set, is unparked after every successful Push so the
	// consumer — if parked — resumes immediately.
	wakeup *Parker
	// destName is used only in logs.
	destName string
}

// SetWakeup attaches the consumer's [Parker] to this producer, to be
// unparked after each successful push. Set at wiring time by the graph
// compiler (external to this core).
func (p *Producer) SetWakeup(w *Parker) { p.wakeup = w }

// SetDestName records the destination component's name for diagnostics only.
func (p *Producer) SetDestName(name string) { p.destName = name }

// DestName returns the destination component name set via [Producer.SetDestName],
// or "" if none was set.
func (p *Producer) DestName() string { return p.destName }

// Push attempts to enqueue ip. On success, the consumer's wakeup (if any) is
// unparked. On failure (edge full), ip is returned unchanged so the caller
// can retry or drop it — it must not be silently discarded.
func (p *Producer) Push(ip IP) (IP, error) {
	if p.state.ring.Slots() >= p.state.capacity {
		return ip, ErrEdgeFull
	}
	if err := p.state.ring.Enqueue(&ip); err != nil {
		return ip, err
	}
	if p.wakeup != nil {
		p.wakeup.Unpark()
	}
	return nil, nil
}

// Slots reports the current count of free slots. Race-safe but approximate:
// the consumer side may advance concurrently.
func (p *Producer) Slots() int {
	free := p.state.capacity - p.state.ring.Slots()
	if free < 0 {
		return 0
	}
	return free
}

// IsFull reports whether the edge currently has no free slots.
func (p *Producer) IsFull() bool { return p.Slots() == 0 }

// Close drops the producer side. This is the only EOF signal in the data
// plane: once both dropped and drained, the consumer observes abandoned.
// Matching the standard run loop's "drop OUT, unpark OUT's reader" step,
// Close also unparks the consumer's wakeup (if one was set), so a parked
// downstream component wakes to observe the cascade rather than waiting for
// an unrelated event.
func (p *Producer) Close() {
	p.state.producerDropped.StoreRelease(true)
	if p.wakeup != nil {
		p.wakeup.Unpark()
	}
}

// IsAbandoned reports whether the consumer side has been dropped. Sticky.
func (p *Producer) IsAbandoned() bool {
	return p.state.consumerDropped.LoadAcquire()
}

// Consumer is the sole consumer endpoint of an edge.
type Consumer struct {
	state *edgeState
}

// Pop removes and returns the oldest IP. If none is currently available it
// returns [ErrEdgeAbandoned] once the producer has dropped and the buffer
// has drained (the terminal condition also reported by [Consumer.Drained]),
// or plain [ErrEdgeEmpty] otherwise.
func (c *Consumer) Pop() (IP, error) {
	ip, err := c.state.ring.Dequeue()
	if err != nil {
		if c.IsAbandoned() {
			return nil, ErrEdgeAbandoned
		}
		return nil, ErrEdgeEmpty
	}
	return ip, nil
}

// Chunk is a reader view over up to N contiguous buffered items, obtained
// from [Consumer.ReadChunk]. Items is safe to range over. There is no
// separate commit step: the read cursor has already advanced past every
// item in Items by the time ReadChunk returns.
type Chunk struct {
	Items []IP
}

// ReadChunk obtains up to n buffered items and advances the read cursor by
// exactly that many — the dequeue already happened, so commit is implicit
// for this bounded-queue implementation (there is no partial-consumption
// story on an SPSC ring: once dequeued an item cannot be returned to the
// buffer). read_chunk(slots()) of zero is a legal no-op returning an empty
// Chunk; unlike [Consumer.Pop] there is no error to distinguish abandoned
// from merely-empty, so callers that need that distinction check
// [Consumer.Drained] themselves.
func (c *Consumer) ReadChunk(n int) Chunk {
	return Chunk{Items: c.state.ring.DequeueChunk(n)}
}

// Slots reports the current count of readable items. Race-safe but
// approximate: the producer side may advance concurrently.
func (c *Consumer) Slots() int { return c.state.ring.Slots() }

// IsEmpty reports whether the edge currently has no readable items.
func (c *Consumer) IsEmpty() bool { return c.Slots() == 0 }

// Close drops the consumer side.
func (c *Consumer) Close() {
	c.state.consumerDropped.StoreRelease(true)
}

// IsAbandoned reports whether the producer side has been dropped. Sticky:
// once true it remains true. A consumer may still pop items enqueued prior
// to the drop; only once both abandoned and empty should the consumer treat
// the edge as terminated (see [Consumer.Drained]).
func (c *Consumer) IsAbandoned() bool {
	return c.state.producerDropped.LoadAcquire()
}

// Drained reports whether the edge is both abandoned and empty — the
// terminal EOF condition a component's run loop checks for.
func (c *Consumer) Drained() bool {
	return c.IsAbandoned() && c.IsEmpty()
}
