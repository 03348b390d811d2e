// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"fmt"
	"image"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
)

// Controller drives a UI library frame by frame inside a host application.
//
// Each Tick ends the frame begun by the previous Tick, reconciles the
// declared viewports against host windows and controls, uploads textures,
// records the tessellated meshes, and begins the next frame with the input
// collected since. A Tick with no repaint due does nothing.
//
// Tick, Close, SpawnViewport and CloseViewport must be called from the
// host's main loop. Host notifications are delivered to the per-viewport
// IOBridge and may arrive at any time.
type Controller struct {
	host   host.Host
	shared *SharedContext
	opts   options
	log    func() *slog.Logger

	target   host.RenderTarget
	textures *TextureRegistry
	mesh     *MeshRenderer

	mu        sync.Mutex
	viewports map[ui.ViewportID]*ViewportContext
	user      map[ui.ViewportID]userViewport

	started       bool
	frameInFlight bool
	closed        bool
	start         time.Time
	display       image.Rectangle
}

// userViewport is a viewport requested through SpawnViewport.
type userViewport struct {
	builder ui.ViewportBuilder
	fn      func(ui.Context) bool
}

// New creates a controller driving ctx inside h. It creates the shared
// render target and registers the repaint callback on ctx.
func New(h host.Host, ctx ui.Context, opts ...Option) (*Controller, error) {
	if h == nil {
		return nil, ErrNilHost
	}
	if ctx == nil {
		return nil, ErrNilContext
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	target, err := h.NewRenderTarget(nil)
	if err != nil {
		return nil, fmt.Errorf("uibridge: create render target: %w", err)
	}

	c := &Controller{
		host:      h,
		shared:    newSharedContext(ctx),
		opts:      o,
		log:       o.logSource(),
		target:    target,
		textures:  NewTextureRegistry(h.TextureCreator(), opts...),
		mesh:      NewMeshRenderer(h.RenderingServer(), target.CanvasItem(), opts...),
		viewports: make(map[ui.ViewportID]*ViewportContext),
		user:      make(map[ui.ViewportID]userViewport),
	}
	ctx.SetRequestRepaintCallback(c.requestRepaint)
	return c, nil
}

// requestRepaint is the UI library's repaint callback. It may run
// reentrantly from inside any call into the UI context.
func (c *Controller) requestRepaint(req ui.RepaintRequest) {
	c.shared.schedule.Set(req.ViewportID, c.opts.clock.Now().Add(req.Delay))
}

// Shared returns the state shared with the viewport bridges.
func (c *Controller) Shared() *SharedContext { return c.shared }

// Textures returns the texture registry.
func (c *Controller) Textures() *TextureRegistry { return c.textures }

// Mesh returns the mesh renderer.
func (c *Controller) Mesh() *MeshRenderer { return c.mesh }

// Viewport returns the live viewport id.
func (c *Controller) Viewport(id ui.ViewportID) (*ViewportContext, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.viewports[id]
	return v, ok
}

// Viewports returns the ids of every live viewport in ascending order.
func (c *Controller) Viewports() []ui.ViewportID {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Sorted(maps.Keys(c.viewports))
}

// CurrentFrame returns the UI context while a frame is in flight, or nil
// before the first frame begins and after Close.
func (c *Controller) CurrentFrame() ui.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.frameInFlight {
		return nil
	}
	return c.shared.ctx
}

// SpawnViewport keeps a windowed viewport alive until fn returns false or
// CloseViewport is called. fn runs whenever the viewport repaints.
func (c *Controller) SpawnViewport(id ui.ViewportID, builder ui.ViewportBuilder, fn func(ui.Context) bool) error {
	if id.IsRoot() {
		return ErrRootViewport
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.user[id] = userViewport{builder: builder, fn: fn}
	c.mu.Unlock()

	c.shared.schedule.Set(ui.RootViewportID, c.opts.clock.Now())
	return nil
}

// CloseViewport stops declaring a viewport added with SpawnViewport. It is
// despawned by the next reconciliation.
func (c *Controller) CloseViewport(id ui.ViewportID) error {
	if id.IsRoot() {
		return ErrRootViewport
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	delete(c.user, id)
	c.mu.Unlock()

	c.shared.schedule.Set(ui.RootViewportID, c.opts.clock.Now())
	return nil
}

// Tick advances the bridge by one host frame. delta is the time since the
// previous tick and is passed to the UI library as the predicted frame time.
func (c *Controller) Tick(delta time.Duration) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if !c.started {
		c.started = true
		c.start = c.opts.clock.Now()
		c.mu.Unlock()

		if _, err := c.spawn(ui.RootViewportID, nil, ui.ViewportBuilder{}); err != nil {
			c.log().Warn("uibridge: root viewport spawn failed", "err", err)
		}
		c.shared.schedule.Set(ui.RootViewportID, c.start)
		return
	}
	inFlight := c.frameInFlight
	c.mu.Unlock()

	if !c.shared.schedule.AnyDue(c.opts.clock.Now()) {
		return
	}

	c.updateDisplay()

	ctx := c.shared.ctx
	if inFlight {
		out := ctx.EndFrame()
		c.mu.Lock()
		c.frameInFlight = false
		c.mu.Unlock()
		c.reconcile(out)
	}

	ctx.BeginFrame(c.rawInput(delta))
	c.mu.Lock()
	c.frameInFlight = true
	user := maps.Clone(c.user)
	c.mu.Unlock()

	for _, id := range slices.Sorted(maps.Keys(user)) {
		u := user[id]
		ctx.ShowViewportDeferred(id, u.builder, func(ctx ui.Context) {
			if u.fn != nil && !u.fn(ctx) {
				_ = c.CloseViewport(id)
			}
		})
	}
}

// updateDisplay resizes the render target to the bounding box of all
// physical displays when that box changed.
func (c *Controller) updateDisplay() {
	ds := c.host.DisplayServer()
	if ds == nil {
		return
	}
	var bounds image.Rectangle
	for i := range ds.ScreenCount() {
		pos, size := ds.ScreenPosition(i), ds.ScreenSize(i)
		bounds = bounds.Union(image.Rectangle{Min: pos, Max: pos.Add(size)})
	}
	if bounds.Empty() || bounds == c.display {
		return
	}
	c.display = bounds
	c.target.Resize(bounds.Dx(), bounds.Dy())
	c.shared.screen.set(bounds.Min, c.target.Texture())
	c.log().Debug("uibridge: render target resized", "bounds", bounds)
}

// rawInput assembles the input of the next frame and drains the inbox.
func (c *Controller) rawInput(delta time.Duration) ui.RawInput {
	c.mu.Lock()
	live := maps.Clone(c.viewports)
	c.mu.Unlock()

	focusID, focused := c.shared.focus.resolve(func(id ui.ViewportID) bool {
		_, ok := live[id]
		return ok
	})

	raw := ui.RawInput{
		ViewportID:     focusID,
		Viewports:      make(map[ui.ViewportID]ui.ViewportInfo, len(live)),
		MaxTextureSide: c.opts.maxTextureSide,
		Time:           c.opts.clock.Now().Sub(c.start).Seconds(),
		PredictedDt:    delta,
		Events:         c.shared.inbox.Drain(),
		Focused:        focused,
	}
	for id, v := range live {
		info := v.input.snapshot()
		ppp := float32(1)
		info.NativePixelsPerPoint = &ppp
		raw.Viewports[id] = info
	}
	if root, ok := raw.Viewports[ui.RootViewportID]; ok && root.InnerRect != nil {
		r := *root.InnerRect
		raw.ScreenRect = &r
	}
	if in := c.host.Input(); in != nil {
		raw.Modifiers = modifiers(in.Modifiers())
	}
	return raw
}

// spawn realizes viewport id on the host. Non-root viewports get their own
// window with the control as its child; the root control is embedded in the
// bridge's node. The new viewport is scheduled for an immediate repaint.
func (c *Controller) spawn(id ui.ViewportID, parent *ui.ViewportID, setup ui.ViewportBuilder) (*ViewportContext, error) {
	input := &inputSnapshot{}
	input.info.Parent = parent
	if setup.Title != nil {
		input.info.Title = *setup.Title
	}

	bridge := newIOBridge(id, c.shared, input, &c.opts)
	v := &ViewportContext{
		id:     id,
		parent: parent,
		bridge: bridge,
		setup:  setup,
		input:  input,
		log:    c.log,
	}

	var parentNode host.Node
	name := "Viewport Root"
	if !id.IsRoot() {
		w, err := c.host.NewWindow(nil, "Viewport "+id.String())
		if err != nil {
			return nil, fmt.Errorf("uibridge: create window for viewport %v: %w", id, err)
		}
		v.window = w
		parentNode = w
		name = "Viewport Control " + id.String()
	}

	ctrl, err := c.host.NewControl(parentNode, name, bridge)
	if err != nil {
		if v.window != nil {
			v.window.Release()
		}
		return nil, fmt.Errorf("uibridge: create control for viewport %v: %w", id, err)
	}
	v.control = ctrl
	bridge.attach(ctrl)

	c.mu.Lock()
	c.viewports[id] = v
	c.mu.Unlock()

	v.applyInitial()
	bridge.refreshRect()
	c.log().Debug("uibridge: viewport spawned", "viewport", id, "windowed", v.window != nil)
	return v, nil
}

// despawn releases viewport id, control before window, and forgets its
// repaint deadline.
func (c *Controller) despawn(id ui.ViewportID) {
	c.mu.Lock()
	v, ok := c.viewports[id]
	delete(c.viewports, id)
	c.mu.Unlock()
	if !ok {
		return
	}

	v.release()
	c.shared.schedule.Remove(id)
	c.log().Debug("uibridge: viewport despawned", "viewport", id)
}

// Close ends the frame in flight and releases every host object the
// controller created. It is safe to call more than once.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	inFlight := c.frameInFlight
	c.frameInFlight = false
	c.user = make(map[ui.ViewportID]userViewport)
	ids := slices.Sorted(maps.Keys(c.viewports))
	c.mu.Unlock()

	ctx := c.shared.ctx
	if inFlight {
		ctx.EndFrame()
	}
	ctx.SetRequestRepaintCallback(nil)

	c.mesh.Close()
	c.textures.Close()

	// ids is ascending, so the root viewport is released last.
	slices.Reverse(ids)
	for _, id := range ids {
		c.despawn(id)
	}
	c.target.Release()
}
