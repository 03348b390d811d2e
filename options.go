// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"log/slog"

	"github.com/gogpu/uibridge/host"
)

// DefaultMaxTextureSide is the texture size limit reported to the UI library
// when none is configured.
const DefaultMaxTextureSide = 8192

// DefaultFontGamma is applied to font coverage before upload.
const DefaultFontGamma = 0.55

// Option configures a Controller during creation.
//
// Example:
//
//	c, err := uibridge.New(h, ctx,
//	    uibridge.WithMaxTextureSide(4096),
//	    uibridge.WithDebugVertexLines(true),
//	)
type Option func(*options)

// options holds optional configuration for Controller creation.
type options struct {
	maxTextureSide   int
	clock            host.Clock
	debugVertexLines bool
	fontGamma        float32
	logger           *slog.Logger
}

func defaultOptions() options {
	return options{
		maxTextureSide: DefaultMaxTextureSide,
		clock:          host.SystemClock{},
		fontGamma:      DefaultFontGamma,
	}
}

// WithMaxTextureSide sets the largest texture dimension reported to the UI
// library. Non-positive values keep the default.
func WithMaxTextureSide(side int) Option {
	return func(o *options) {
		if side > 0 {
			o.maxTextureSide = side
		}
	}
}

// WithClock replaces the time source used for repaint deadlines and frame
// timestamps. Tests use this to step time deterministically.
func WithClock(clock host.Clock) Option {
	return func(o *options) {
		if clock != nil {
			o.clock = clock
		}
	}
}

// WithDebugVertexLines outlines every tessellated triangle in magenta.
func WithDebugVertexLines(enabled bool) Option {
	return func(o *options) {
		o.debugVertexLines = enabled
	}
}

// WithFontGamma sets the gamma applied to font atlas coverage.
// Non-positive values keep the default.
func WithFontGamma(gamma float32) Option {
	return func(o *options) {
		if gamma > 0 {
			o.fontGamma = gamma
		}
	}
}

// WithLogger sets a logger for this controller only. Without it the
// controller logs through the package logger (see SetLogger).
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// logSource returns a function resolving the logger at call time, so a
// later SetLogger still reaches controllers that did not set their own.
func (o *options) logSource() func() *slog.Logger {
	if l := o.logger; l != nil {
		return func() *slog.Logger { return l }
	}
	return Logger
}
