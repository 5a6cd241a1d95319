// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import "sync"

// Wire creates a [Producer]/[Consumer] pair of the given capacity and binds
// the producer into from's outport list and the consumer into to's inport
// list under the given port names, matching §6's "before starting threads,
// the compiler creates for each wire a (Producer, Consumer) pair" sequence.
// destName is attached to the producer for diagnostics (§3 Sink handle).
func Wire(from Outports, fromPort string, to Inports, toPort string, destName string, capacity int) {
	producer, consumer := NewEdge(capacity)
	producer.SetDestName(destName)
	from[fromPort] = append(from[fromPort], producer)
	to[toPort] = append(to[toPort], consumer)
}

// WireWakeup attaches wakeup (the consuming component's [Parker]) to the
// producer endpoint at position idx under from/fromPort, so a push unparks
// the consumer's run loop. An idx outside that port's endpoint list is
// ignored. Call once the consumer's Parker exists and before Spawn.
func WireWakeup(from Outports, fromPort string, idx int, wakeup *Parker) {
	list := from[fromPort]
	if idx < 0 || idx >= len(list) {
		return
	}
	list[idx].SetWakeup(wakeup)
}

// Spawn starts comp running on its own goroutine (§4.E: "one OS thread per
// component" realized as thread-per-actor; see SPEC_FULL.md §5.[FULL] for
// why a goroutine is the idiomatic equivalent here). It returns immediately;
// use the returned sync.WaitGroup's Wait, or a component-specific signal,
// to observe termination.
func Spawn(comp Component) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		comp.Run()
	}()
	return &wg
}

// SpawnAll spawns every component in comps and returns a single WaitGroup
// that completes once all of them have returned from Run.
func SpawnAll(comps ...Component) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(len(comps))
	for _, c := range comps {
		go func(c Component) {
			defer wg.Done()
			c.Run()
		}(c)
	}
	return &wg
}
