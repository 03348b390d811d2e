// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"
	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
)

func toVector(p image.Point) host.Vector2 {
	return host.Vector2{X: float32(p.X), Y: float32(p.Y)}
}

func newSurface(size host.Vector2) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, max(int(size.X), 0), max(int(size.Y), 0)))
}

// Control is an in-memory control with its own RGBA surface.
type Control struct {
	host    *Host
	name    string
	handler host.ControlHandler
	window  *Window

	mu       sync.Mutex
	pos      host.Vector2
	size     host.Vector2
	surface  *image.RGBA
	redraw   bool
	redraws  int
	released bool
}

var _ host.Control = (*Control)(nil)

// Name implements host.Node.
func (c *Control) Name() string { return c.name }

// ScreenPosition implements host.Control.
func (c *Control) ScreenPosition() host.Vector2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.pos
}

// Size implements host.Control.
func (c *Control) Size() host.Vector2 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size
}

// Window implements host.Control.
func (c *Control) Window() host.Window {
	if c.window == nil {
		return nil
	}
	return c.window
}

// QueueRedraw implements host.Control. The handler draws on the next
// Present.
func (c *Control) QueueRedraw() {
	c.mu.Lock()
	c.redraw = true
	c.mu.Unlock()
}

// Redraws returns how many times the handler has drawn.
func (c *Control) Redraws() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.redraws
}

// Surface returns a copy of the control's last presented pixels.
func (c *Control) Surface() *image.RGBA {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := image.NewRGBA(c.surface.Rect)
	copy(out.Pix, c.surface.Pix)
	return out
}

// Release implements host.Node.
func (c *Control) Release() {
	c.mu.Lock()
	if c.released {
		c.mu.Unlock()
		return
	}
	c.released = true
	c.mu.Unlock()

	if c.window != nil {
		c.window.detach(c)
	}
	c.host.dropControl(c)
	uibridge.Logger().Debug("soft: control released", "name", c.name)
}

// SetRect moves and resizes the control inside its window and notifies the
// handler.
func (c *Control) SetRect(pos, size host.Vector2) {
	c.mu.Lock()
	c.pos = pos
	if size != c.size {
		c.size = size
		c.surface = newSurface(size)
	}
	c.mu.Unlock()
	c.handler.Notify(host.NotificationResized)
}

// Focus moves keyboard focus to c. The previously focused control gets
// FocusExit first.
func (c *Control) Focus() {
	h := c.host
	h.mu.Lock()
	prev := h.focused
	h.focused = c
	h.mu.Unlock()
	if prev == c {
		return
	}
	if prev != nil {
		prev.handler.Notify(host.NotificationFocusExit)
	}
	c.handler.Notify(host.NotificationFocusEnter)
}

// Blur removes keyboard focus from c if it has it.
func (c *Control) Blur() {
	h := c.host
	h.mu.Lock()
	had := h.focused == c
	if had {
		h.focused = nil
	}
	h.mu.Unlock()
	if had {
		c.handler.Notify(host.NotificationFocusExit)
	}
}

// Send delivers ev to the handler and reports whether it was consumed.
func (c *Control) Send(ev host.InputEvent) bool {
	return c.handler.Input(ev)
}

func (c *Control) present() {
	c.mu.Lock()
	if !c.redraw || c.released {
		c.mu.Unlock()
		return
	}
	c.redraw = false
	c.redraws++
	surface := c.surface
	c.mu.Unlock()

	clear(surface.Pix)
	c.handler.Draw(&surfaceCanvas{dst: surface})
}

// surfaceCanvas blits soft textures into a control surface.
type surfaceCanvas struct {
	dst *image.RGBA
}

func rect(r host.Rect2) image.Rectangle {
	end := r.End()
	return image.Rect(int(r.Position.X), int(r.Position.Y), int(end.X), int(end.Y))
}

// DrawTextureRegion implements host.Canvas. Regions of different sizes are
// scaled bilinearly.
func (s *surfaceCanvas) DrawTextureRegion(tex gpucontext.Texture, dst, src host.Rect2) {
	t, ok := tex.(*Texture)
	if !ok {
		uibridge.Logger().Warn("soft: cannot draw foreign texture", "type", fmt.Sprintf("%T", tex))
		return
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	dr, sr := rect(dst), rect(src)
	if dr.Size() == sr.Size() {
		xdraw.Draw(s.dst, dr, t.img, sr.Min, xdraw.Over)
		return
	}
	xdraw.ApproxBiLinear.Scale(s.dst, dr, t.img, sr, xdraw.Over, nil)
}

// Window is an in-memory top-level window. It implements host.Window,
// including gpucontext.WindowChrome.
type Window struct {
	host *Host
	name string

	mu          sync.Mutex
	title       string
	pos         image.Point
	size        image.Point
	minSize     image.Point
	maxSize     image.Point
	visible     bool
	resizable   bool
	transparent bool
	onTop       bool
	passthrough bool
	frameless   bool
	minimized   bool
	maximized   bool
	fullscreen  bool
	closed      bool
	hitTest     gpucontext.HitTestCallback
	controls    []*Control
	released    bool
}

var _ host.Window = (*Window)(nil)

// Name implements host.Node.
func (w *Window) Name() string { return w.name }

// Release implements host.Node.
func (w *Window) Release() {
	w.mu.Lock()
	if w.released {
		w.mu.Unlock()
		return
	}
	w.released = true
	w.mu.Unlock()
	w.host.dropWindow(w)
	uibridge.Logger().Debug("soft: window released", "name", w.name)
}

func (w *Window) attach(c *Control) {
	w.mu.Lock()
	w.controls = append(w.controls, c)
	w.mu.Unlock()
}

func (w *Window) detach(c *Control) {
	w.mu.Lock()
	w.controls = slices.DeleteFunc(w.controls, func(x *Control) bool { return x == c })
	w.mu.Unlock()
}

// Position implements host.Window.
func (w *Window) Position() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pos
}

// Size returns the window's inner size.
func (w *Window) Size() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// SetPosition moves the window and notifies its controls.
func (w *Window) SetPosition(x, y int) {
	w.mu.Lock()
	w.pos = image.Pt(x, y)
	controls := slices.Clone(w.controls)
	w.mu.Unlock()
	for _, c := range controls {
		c.handler.Notify(host.NotificationResized)
	}
}

// SetSize resizes the window. Controls filling the window follow it.
func (w *Window) SetSize(width, height int) {
	w.mu.Lock()
	size := w.clamp(image.Pt(width, height))
	w.size = size
	controls := slices.Clone(w.controls)
	w.mu.Unlock()
	for _, c := range controls {
		c.SetRect(c.ScreenPosition(), toVector(size))
	}
}

func (w *Window) clamp(p image.Point) image.Point {
	if w.minSize.X > 0 {
		p.X = max(p.X, w.minSize.X)
	}
	if w.minSize.Y > 0 {
		p.Y = max(p.Y, w.minSize.Y)
	}
	if w.maxSize.X > 0 {
		p.X = min(p.X, w.maxSize.X)
	}
	if w.maxSize.Y > 0 {
		p.Y = min(p.Y, w.maxSize.Y)
	}
	return p
}

func (w *Window) set(fn func()) {
	w.mu.Lock()
	fn()
	w.mu.Unlock()
}

func (w *Window) get(fn func() bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fn()
}

// SetMinSize implements host.Window.
func (w *Window) SetMinSize(width, height int) { w.set(func() { w.minSize = image.Pt(width, height) }) }

// SetMaxSize implements host.Window.
func (w *Window) SetMaxSize(width, height int) { w.set(func() { w.maxSize = image.Pt(width, height) }) }

// SetTitle implements host.Window.
func (w *Window) SetTitle(title string) { w.set(func() { w.title = title }) }

// Title returns the window title.
func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

// SetVisible implements host.Window.
func (w *Window) SetVisible(visible bool) { w.set(func() { w.visible = visible }) }

// IsVisible reports whether the window is shown.
func (w *Window) IsVisible() bool { return w.get(func() bool { return w.visible }) }

// SetResizable implements host.Window.
func (w *Window) SetResizable(resizable bool) { w.set(func() { w.resizable = resizable }) }

// SetTransparent implements host.Window.
func (w *Window) SetTransparent(transparent bool) { w.set(func() { w.transparent = transparent }) }

// SetAlwaysOnTop implements host.Window.
func (w *Window) SetAlwaysOnTop(onTop bool) { w.set(func() { w.onTop = onTop }) }

// IsAlwaysOnTop reports the window level.
func (w *Window) IsAlwaysOnTop() bool { return w.get(func() bool { return w.onTop }) }

// IsTransparent reports whether the window has a transparent background.
func (w *Window) IsTransparent() bool { return w.get(func() bool { return w.transparent }) }

// IsResizable reports whether the user may resize the window.
func (w *Window) IsResizable() bool { return w.get(func() bool { return w.resizable }) }

// MinSize returns the minimum inner size, zero when unset.
func (w *Window) MinSize() image.Point {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.minSize
}

// SetMousePassthrough implements host.Window.
func (w *Window) SetMousePassthrough(passthrough bool) {
	w.set(func() { w.passthrough = passthrough })
}

// IsMousePassthrough reports whether pointer events pass through.
func (w *Window) IsMousePassthrough() bool { return w.get(func() bool { return w.passthrough }) }

// GrabFocus focuses the window and its first control.
func (w *Window) GrabFocus() {
	w.mu.Lock()
	var first *Control
	if len(w.controls) > 0 {
		first = w.controls[0]
	}
	w.mu.Unlock()
	if first != nil {
		first.Focus()
	}
}

// SetFrameless implements gpucontext.WindowChrome.
func (w *Window) SetFrameless(frameless bool) { w.set(func() { w.frameless = frameless }) }

// IsFrameless implements gpucontext.WindowChrome.
func (w *Window) IsFrameless() bool { return w.get(func() bool { return w.frameless }) }

// SetHitTestCallback implements gpucontext.WindowChrome.
func (w *Window) SetHitTestCallback(cb gpucontext.HitTestCallback) { w.set(func() { w.hitTest = cb }) }

// HitTest runs the installed hit-test callback. Without one every point
// is client area.
func (w *Window) HitTest(x, y float64) gpucontext.HitTestResult {
	w.mu.Lock()
	cb := w.hitTest
	w.mu.Unlock()
	if cb == nil {
		return gpucontext.HitTestClient
	}
	return cb(x, y)
}

// Minimize implements gpucontext.WindowChrome.
func (w *Window) Minimize() { w.set(func() { w.minimized = true }) }

// IsMinimized reports whether Minimize was called.
func (w *Window) IsMinimized() bool { return w.get(func() bool { return w.minimized }) }

// Maximize toggles between maximized and restored.
func (w *Window) Maximize() { w.set(func() { w.maximized = !w.maximized }) }

// IsMaximized implements gpucontext.WindowChrome.
func (w *Window) IsMaximized() bool { return w.get(func() bool { return w.maximized }) }

// SetFullscreen implements gpucontext.WindowChrome.
func (w *Window) SetFullscreen(fullscreen bool) { w.set(func() { w.fullscreen = fullscreen }) }

// IsFullscreen implements gpucontext.WindowChrome.
func (w *Window) IsFullscreen() bool { return w.get(func() bool { return w.fullscreen }) }

// Close requests the window to close. The window is hidden; the bridge
// still owns and releases it.
func (w *Window) Close() {
	w.set(func() {
		w.closed = true
		w.visible = false
	})
}

// IsClosed reports whether Close was called.
func (w *Window) IsClosed() bool { return w.get(func() bool { return w.closed }) }
