// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package flowd

import (
	"context"
	"log/slog"
)

// LevelTrace is below [slog.LevelDebug]; it mirrors the original runtime's
// trace! macro, used for per-packet chatter too noisy for Debug.
const LevelTrace = slog.Level(-8)

// SLogger abstracts the logging calls components and the scheduler make.
//
// By using an abstraction we allow for unit testing and alternative
// implementations. The [*slog.Logger] type, wrapped by [NewSLogger], satisfies
// this interface.
type SLogger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// DefaultSLogger returns the default [SLogger] to use.
//
// The default is a no-op logger that discards all output, so importing this
// module never writes to stdout/stderr unless the embedder configures one.
func DefaultSLogger() SLogger {
	return discardSLogger{}
}

// NewSLogger adapts a [*slog.Logger] to [SLogger]. Trace records are emitted
// at [LevelTrace].
func NewSLogger(l *slog.Logger) SLogger {
	if l == nil {
		return DefaultSLogger()
	}
	return slogAdapter{l: l}
}

type slogAdapter struct {
	l *slog.Logger
}

func (a slogAdapter) Trace(msg string, args ...any) {
	a.l.Log(context.Background(), LevelTrace, msg, args...)
}

func (a slogAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a slogAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a slogAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a slogAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }

type discardSLogger struct{}

var _ SLogger = discardSLogger{}

func (discardSLogger) Trace(msg string, args ...any) {}
func (discardSLogger) Debug(msg string, args ...any) {}
func (discardSLogger) Info(msg string, args ...any)  {}
func (discardSLogger) Warn(msg string, args ...any)  {}
func (discardSLogger) Error(msg string, args ...any) {}
