// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "time"

// RepaintRequest is delivered to the repaint callback when the library wants
// a viewport redrawn after Delay.
type RepaintRequest struct {
	ViewportID ViewportID
	Delay      time.Duration
}

// Context is the persistent handle of the UI library.
//
// Implementations may invoke the repaint callback from inside any of these
// methods, so callers must not hold locks that the callback needs while
// calling into a Context.
type Context interface {
	// BeginFrame starts a frame with the given input.
	BeginFrame(input RawInput)

	// EndFrame finishes the frame started by BeginFrame.
	EndFrame() FullOutput

	// Tessellate converts shapes into renderable primitives.
	Tessellate(shapes []ClippedShape, pixelsPerPoint float32) []ClippedPrimitive

	// SetRequestRepaintCallback installs the function that receives repaint
	// requests. It replaces any previous callback.
	SetRequestRepaintCallback(fn func(RepaintRequest))

	// RequestRepaintOf asks for an immediate repaint of a viewport.
	RequestRepaintOf(id ViewportID)

	// ShowViewportDeferred declares a viewport for the current frame whose
	// content is drawn later by fn.
	ShowViewportDeferred(id ViewportID, builder ViewportBuilder, fn func(Context))
}
