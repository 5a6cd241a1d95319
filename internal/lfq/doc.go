// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package lfq provides the two bounded lock-free FIFO shapes the flowd
// runtime needs:
//
//   - SPSC: single-producer single-consumer, backing every data/IIP edge.
//   - MPSC: multi-producer single-consumer, backing every signal channel.
//
// Both are non-blocking: Enqueue returns [ErrWouldBlock] on a full queue,
// Dequeue returns it on an empty one. Callers that need to park instead of
// spin build that discipline on top (see the flowd package's Parker).
//
// This is a trimmed, two-shape derivative of the general-purpose
// code.hybscloud.com/lfq package: flowd never needs SPMC/MPMC, CAS-compact
// variants, or pointer/indirect element storage, since edges are always
// exactly one producer to one consumer and signals are always exactly one
// consumer, so the wider algorithm family has nothing in this module to
// exercise.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/iox] for semantic errors,
// [code.hybscloud.com/atomix] for atomic primitives with explicit memory
// ordering, and [code.hybscloud.com/spin] for CPU pause instructions during
// the MPSC producer's bounded retry loop.
package lfq
