// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

// Deps bundles everything the graph compiler (external to this core) hands
// a component at construction time: its port bindings, signal channel
// halves, the graph-boundary handle, its instance name for logs, a logger,
// and its wakeup handle. Construction drains the port mappings and stores
// the endpoints and wakeups the component needs; an unexpected missing
// required port is a fatal configuration error surfaced here, not at run.
//
// Park is constructed by the compiler before any wiring happens and must be
// attached, via [Producer.SetWakeup], to every producer feeding one of this
// component's inports — otherwise nothing can ever wake this component once
// it parks. The component itself only calls Park.Park; it never needs to
// reach the producers on the other side of its own inports.
type Deps struct {
	Inports    Inports
	Outports   Outports
	SignalsIn  SignalSource
	SignalsOut SignalSink
	GraphInOut GraphInportOutportHandle
	Name       string
	Log        SLogger
	Park       *Parker
}

// Component is implemented by every plug-in the scheduler can run. A
// component is constructed once per graph activation, run exactly once to
// completion, and its descriptor can be queried without constructing an
// instance.
type Component interface {
	// Run consumes the component, executing the standard run loop (§4.D)
	// until termination. Run never returns except on shutdown.
	Run()
}

// Factory constructs a [Component] from [Deps], returning
// [ErrConfigMissing] if a required port has no connected endpoint.
type Factory func(deps Deps) (Component, error)

// Descriptor is implemented by component packages alongside their
// [Factory] to expose metadata without constructing an instance, matching
// §4.D's "metadata" operation.
type Descriptor func() ComponentDescriptor
