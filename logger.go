// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Host notifications may log while a
// tick is running, so access is atomic.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger used by uibridge and its sub-packages.
// By default nothing is logged. Pass nil to restore the silent default.
//
// Log levels used by uibridge:
//   - [slog.LevelDebug]: viewport spawn/despawn, texture add/free, resizes
//   - [slog.LevelWarn]: missing textures, host object creation failures
//   - [slog.LevelError]: contract violations such as patching a texture
//     that was never created
//
// Example:
//
//	uibridge.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger. Sub-packages (host/soft, host/x11)
// call this to share the same configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
