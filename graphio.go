// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import "sync"

// GraphInportOutport is implemented by the (external) runtime object that
// posts runtime packets to a named graph-level inport or receives them from
// a named graph-level outport — the boundary between the WebSocket
// front-end and the components that sit at the edge of the graph. The core
// only requires that implementations be safe for concurrent use; it does
// not implement the WebSocket side itself.
type GraphInportOutport interface {
	PostInport(name string, ip IP) error
	ReceiveOutport(name string) (IP, error)
}

// GraphInportOutportHandle is the only cross-thread aggregate shared beyond
// the edge model: a mutually-exclusive region guarded by a coarse lock, used
// only by boundary components that publish into or consume from the outside
// world. Contention is expected to be low. It is cloneable (shared
// ownership) by copying the handle value, matching the original's
// Arc<Mutex<dyn GraphInportOutport>>.
type GraphInportOutportHandle struct {
	mu   *sync.Mutex
	impl GraphInportOutport
}

// NewGraphInportOutportHandle wraps impl behind a shared mutex.
func NewGraphInportOutportHandle(impl GraphInportOutport) GraphInportOutportHandle {
	return GraphInportOutportHandle{mu: &sync.Mutex{}, impl: impl}
}

// PostInport posts ip to the named graph-level inport under the handle's
// lock.
func (h GraphInportOutportHandle) PostInport(name string, ip IP) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.impl.PostInport(name, ip)
}

// ReceiveOutport receives the next IP posted to the named graph-level
// outport under the handle's lock.
func (h GraphInportOutportHandle) ReceiveOutport(name string) (IP, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.impl.ReceiveOutport(name)
}

// Valid reports whether the handle wraps a concrete implementation. A
// component constructed outside a graph boundary receives a zero handle.
func (h GraphInportOutportHandle) Valid() bool {
	return h.impl != nil
}
