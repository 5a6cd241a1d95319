// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import (
	"errors"

	"code.hybscloud.com/flowd/internal/lfq"
)

// ErrEdgeFull is returned by [Producer.Push] when the edge's ring buffer is
// saturated. The pushed IP is returned to the caller unchanged so it can
// retry after parking or drop it; the caller must not lose it silently.
var ErrEdgeFull = lfq.ErrWouldBlock

// ErrEdgeEmpty is returned by [Consumer.Pop] when no item is currently
// available. It is ordinary control flow, never logged.
var ErrEdgeEmpty = lfq.ErrWouldBlock

// ErrEdgeAbandoned is returned once the opposite endpoint of an edge has
// been dropped and the buffer has drained. It is sticky: once observable it
// remains true for the lifetime of the endpoint.
var ErrEdgeAbandoned = errors.New("flowd: edge abandoned")

// ErrConfigMissing indicates a required inport (typically CONF) had no
// producer connected, or its producer was dropped before any IP arrived.
// Fatal to the component at construction or at the top of run.
var ErrConfigMissing = errors.New("flowd: required configuration port missing")

// ErrPayloadMalformed indicates a packet failed a component-specific parse
// (e.g. non-UTF-8 where UTF-8 is required, an unparsable CONF value).
var ErrPayloadMalformed = errors.New("flowd: payload malformed")

// ErrInternalInvariant indicates a ring index or port-mapping invariant was
// violated. This is a programming-error signal, fatal process-wide.
var ErrInternalInvariant = errors.New("flowd: internal invariant violated")

// ErrSignalUnknown indicates a signal payload the core does not recognize.
// Unknown signals are logged and otherwise ignored, never fatal.
var ErrSignalUnknown = errors.New("flowd: unknown signal")

// IsWouldBlock reports whether err is the non-blocking "try again" signal
// shared by [ErrEdgeFull] and [ErrEdgeEmpty].
func IsWouldBlock(err error) bool {
	return lfq.IsWouldBlock(err)
}
