// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package flowd is the core runtime of a Flow-Based Programming execution
// engine: bounded lock-free edges carrying byte-array Information Packets
// between components, the component construct/run/metadata contract, a
// per-component signal channel for stop/ping/pong, and the park/unpark
// wakeup discipline that lets a thread-per-component scheduler avoid
// busy-spinning.
//
// Edges and signal channels are built on [code.hybscloud.com/flowd/internal/lfq],
// a trimmed two-shape (SPSC, MPSC) derivative of the lock-free queue family
// this module's author also publishes standalone.
//
// The WebSocket FBP-protocol front end, the graph compiler that reads a
// textual graph and instantiates components, and individual components'
// business logic are outside this package's scope — see the components
// subpackages for reference implementations exercising the contract.
package flowd
