// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package uitest provides a scripted ui.Context for tests and demos.
//
// A Context does no layout of its own: callers queue the FullOutput values
// that successive EndFrame calls should return, and shapes that already are
// ui.Primitive values tessellate to themselves.
package uitest

import (
	"sync"

	"github.com/gogpu/uibridge/ui"
)

// Context is a scripted ui.Context. It is safe for concurrent use.
type Context struct {
	mu sync.Mutex

	repaint  func(ui.RepaintRequest)
	outputs  []ui.FullOutput
	deferred map[ui.ViewportID]ui.ViewportOutput
	inFrame  bool

	// EndFrameRepaints are delivered to the repaint callback from inside
	// every EndFrame call, before it returns.
	EndFrameRepaints []ui.RepaintRequest

	// OnFrame, if set, runs inside BeginFrame after the input is recorded.
	OnFrame func(ctx *Context, input ui.RawInput)

	inputs       []ui.RawInput
	begins, ends int
	tessellated  int
}

// New returns an empty scripted context.
func New() *Context {
	return &Context{deferred: make(map[ui.ViewportID]ui.ViewportOutput)}
}

// Push queues an output for a future EndFrame. Outputs are returned in the
// order they were pushed; once the queue is empty EndFrame returns an output
// holding only the viewports declared with ShowViewportDeferred.
func (c *Context) Push(out ui.FullOutput) {
	c.mu.Lock()
	c.outputs = append(c.outputs, out)
	c.mu.Unlock()
}

// BeginFrame implements ui.Context.
func (c *Context) BeginFrame(input ui.RawInput) {
	c.mu.Lock()
	if c.inFrame {
		c.mu.Unlock()
		panic("uitest: BeginFrame called while a frame is in flight")
	}
	c.inFrame = true
	c.begins++
	c.inputs = append(c.inputs, input)
	onFrame := c.OnFrame
	c.mu.Unlock()

	if onFrame != nil {
		onFrame(c, input)
	}
}

// EndFrame implements ui.Context.
func (c *Context) EndFrame() ui.FullOutput {
	c.mu.Lock()
	if !c.inFrame {
		c.mu.Unlock()
		panic("uitest: EndFrame called without BeginFrame")
	}
	c.inFrame = false
	c.ends++

	var out ui.FullOutput
	if len(c.outputs) > 0 {
		out = c.outputs[0]
		c.outputs = c.outputs[1:]
	}
	if len(c.deferred) > 0 {
		merged := make(map[ui.ViewportID]ui.ViewportOutput, len(out.Viewports)+len(c.deferred))
		for id, vp := range out.Viewports {
			merged[id] = vp
		}
		for id, vp := range c.deferred {
			merged[id] = vp
		}
		out.Viewports = merged
		c.deferred = make(map[ui.ViewportID]ui.ViewportOutput)
	}
	if out.PixelsPerPoint == 0 {
		out.PixelsPerPoint = 1
	}
	repaint := c.repaint
	requests := append([]ui.RepaintRequest(nil), c.EndFrameRepaints...)
	c.mu.Unlock()

	if repaint != nil {
		for _, req := range requests {
			repaint(req)
		}
	}
	return out
}

// Tessellate implements ui.Context. Shapes that are ui.Primitive values are
// passed through; anything else is dropped.
func (c *Context) Tessellate(shapes []ui.ClippedShape, _ float32) []ui.ClippedPrimitive {
	c.mu.Lock()
	c.tessellated++
	c.mu.Unlock()

	prims := make([]ui.ClippedPrimitive, 0, len(shapes))
	for _, s := range shapes {
		if p, ok := s.Shape.(ui.Primitive); ok {
			prims = append(prims, ui.ClippedPrimitive{ClipRect: s.ClipRect, Primitive: p})
		}
	}
	return prims
}

// SetRequestRepaintCallback implements ui.Context.
func (c *Context) SetRequestRepaintCallback(fn func(ui.RepaintRequest)) {
	c.mu.Lock()
	c.repaint = fn
	c.mu.Unlock()
}

// RequestRepaintOf implements ui.Context.
func (c *Context) RequestRepaintOf(id ui.ViewportID) {
	c.mu.Lock()
	repaint := c.repaint
	c.mu.Unlock()

	if repaint != nil {
		repaint(ui.RepaintRequest{ViewportID: id})
	}
}

// ShowViewportDeferred implements ui.Context. The viewport is included in the
// output of the current frame.
func (c *Context) ShowViewportDeferred(id ui.ViewportID, builder ui.ViewportBuilder, fn func(ui.Context)) {
	c.mu.Lock()
	c.deferred[id] = ui.ViewportOutput{
		Parent:     ui.RootViewportID,
		Builder:    builder,
		UICallback: fn,
	}
	c.mu.Unlock()
}

// Inputs returns a copy of every RawInput passed to BeginFrame.
func (c *Context) Inputs() []ui.RawInput {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]ui.RawInput(nil), c.inputs...)
}

// LastInput returns the most recent RawInput, if any.
func (c *Context) LastInput() (ui.RawInput, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.inputs) == 0 {
		return ui.RawInput{}, false
	}
	return c.inputs[len(c.inputs)-1], true
}

// Counts returns how many times BeginFrame, EndFrame and Tessellate ran.
func (c *Context) Counts() (begins, ends, tessellated int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.begins, c.ends, c.tessellated
}

// InFrame reports whether a frame is in flight.
func (c *Context) InFrame() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inFrame
}

var _ ui.Context = (*Context)(nil)
