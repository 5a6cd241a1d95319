// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

// IP (Information Packet) is an owned, variable-length byte array flowing on
// an edge. Value semantics: once pushed, the sender relinquishes ownership;
// once popped, the receiver owns it. No schema is enforced by the core;
// payload interpretation is per-component. An empty IP is legal.
type IP = []byte

const (
	// SignalStop instructs the component to terminate in a bounded time,
	// flushing no further downstream output beyond what is already in flight.
	SignalStop = "stop"
	// SignalPing requests a SignalPong reply on the component's signal-out.
	SignalPing = "ping"
	// SignalPong is the reply to a SignalPing.
	SignalPong = "pong"
)
