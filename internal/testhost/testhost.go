// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package testhost provides an in-memory host.Host that records every call
// made into it, in order.
package testhost

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"strings"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge/host"
)

// ErrInjected is returned by operations a test asked to fail.
var ErrInjected = errors.New("testhost: injected failure")

// Host is a recording host.Host.
type Host struct {
	mu    sync.Mutex
	calls []string

	// Screens are the physical displays reported by the display server.
	Screens []image.Rectangle

	// Mods is reported by the input singleton.
	Mods gpucontext.Modifiers

	// FailWindows, FailControls and FailTextures make the matching
	// creation calls return ErrInjected.
	FailWindows  bool
	FailControls bool
	FailTextures bool

	nextItem host.CanvasItem
	items    map[host.CanvasItem]*Item
	controls []*Control
	windows  []*Window
	textures []*Texture
	target   *RenderTarget
}

// New returns a host with a single 1920x1080 display at the origin.
func New() *Host {
	return &Host{
		Screens: []image.Rectangle{image.Rect(0, 0, 1920, 1080)},
		items:   make(map[host.CanvasItem]*Item),
	}
}

func (h *Host) record(format string, args ...any) {
	h.calls = append(h.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded call log.
func (h *Host) Calls() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.calls)
}

// CallsWithPrefix returns the recorded calls starting with prefix.
func (h *Host) CallsWithPrefix(prefix string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, c := range h.calls {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log.
func (h *Host) ResetCalls() {
	h.mu.Lock()
	h.calls = nil
	h.mu.Unlock()
}

// NewControl implements host.Host.
func (h *Host) NewControl(parent host.Node, name string, handler host.ControlHandler) (host.Control, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailControls {
		h.record("NewControl %s FAILED", name)
		return nil, ErrInjected
	}
	c := &Control{host: h, name: name, handler: handler, parent: nodeName(parent)}
	if w, ok := parent.(*Window); ok {
		c.window = w
	}
	h.controls = append(h.controls, c)
	h.record("NewControl %s parent=%s", name, c.parent)
	return c, nil
}

// NewWindow implements host.Host.
func (h *Host) NewWindow(parent host.Node, name string) (host.Window, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailWindows {
		h.record("NewWindow %s FAILED", name)
		return nil, ErrInjected
	}
	w := &Window{host: h, name: name, visible: true}
	h.windows = append(h.windows, w)
	h.record("NewWindow %s parent=%s", name, nodeName(parent))
	return w, nil
}

// NewRenderTarget implements host.Host.
func (h *Host) NewRenderTarget(parent host.Node) (host.RenderTarget, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextItem++
	t := &RenderTarget{host: h, root: h.nextItem}
	h.items[t.root] = &Item{}
	t.tex = &Texture{host: h, w: 1, h: 1}
	h.target = t
	h.record("NewRenderTarget parent=%s", nodeName(parent))
	return t, nil
}

// RenderingServer implements host.Host.
func (h *Host) RenderingServer() host.RenderingServer { return (*renderingServer)(h) }

// DisplayServer implements host.Host.
func (h *Host) DisplayServer() host.DisplayServer { return (*displayServer)(h) }

// Input implements host.Host.
func (h *Host) Input() host.InputState { return (*inputState)(h) }

// TextureCreator implements host.Host.
func (h *Host) TextureCreator() gpucontext.TextureCreator { return (*textureCreator)(h) }

// Target returns the render target, if created.
func (h *Host) Target() *RenderTarget {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target
}

// Controls returns every control that has not been released.
func (h *Host) Controls() []*Control {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*Control
	for _, c := range h.controls {
		if !c.released {
			out = append(out, c)
		}
	}
	return out
}

// Control returns the live control with the given name.
func (h *Host) Control(name string) (*Control, bool) {
	for _, c := range h.Controls() {
		if c.name == name {
			return c, true
		}
	}
	return nil, false
}

// Windows returns every window that has not been released.
func (h *Host) Windows() []*Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*Window
	for _, w := range h.windows {
		if !w.released {
			out = append(out, w)
		}
	}
	return out
}

// Window returns the live window with the given name.
func (h *Host) Window(name string) (*Window, bool) {
	for _, w := range h.Windows() {
		if w.name == name {
			return w, true
		}
	}
	return nil, false
}

// Textures returns every texture that has not been destroyed.
func (h *Host) Textures() []*Texture {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []*Texture
	for _, t := range h.textures {
		if !t.destroyed {
			out = append(out, t)
		}
	}
	return out
}

// LiveItems returns the canvas items that were created and not freed,
// excluding the render target's root item.
func (h *Host) LiveItems() []host.CanvasItem {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []host.CanvasItem
	for id := range h.items {
		if h.target != nil && id == h.target.root {
			continue
		}
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Item returns the recorded state of a live canvas item.
func (h *Host) Item(id host.CanvasItem) (Item, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	it, ok := h.items[id]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

func nodeName(n host.Node) string {
	if n == nil {
		return "bridge"
	}
	return n.Name()
}

// Control is a recording host.Control.
type Control struct {
	host    *Host
	name    string
	parent  string
	handler host.ControlHandler
	window  *Window

	pos, size host.Vector2
	released  bool
	redraws   int
}

// Name implements host.Node.
func (c *Control) Name() string { return c.name }

// Parent returns the name of the node the control was created under.
func (c *Control) Parent() string { return c.parent }

// Handler returns the handler the control dispatches to.
func (c *Control) Handler() host.ControlHandler { return c.handler }

// Release implements host.Node.
func (c *Control) Release() {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	c.released = true
	c.host.record("Release %s", c.name)
}

// ScreenPosition implements host.Control.
func (c *Control) ScreenPosition() host.Vector2 {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	return c.pos
}

// Size implements host.Control.
func (c *Control) Size() host.Vector2 {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	return c.size
}

// Window implements host.Control.
func (c *Control) Window() host.Window {
	if c.window == nil {
		return nil
	}
	return c.window
}

// QueueRedraw implements host.Control.
func (c *Control) QueueRedraw() {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	c.redraws++
	c.host.record("QueueRedraw %s", c.name)
}

// Redraws returns how many redraws were queued.
func (c *Control) Redraws() int {
	c.host.mu.Lock()
	defer c.host.mu.Unlock()
	return c.redraws
}

// Resize moves and resizes the control, then notifies its handler.
func (c *Control) Resize(pos, size host.Vector2) {
	c.host.mu.Lock()
	c.pos, c.size = pos, size
	c.host.mu.Unlock()
	c.handler.Notify(host.NotificationResized)
}

// Window is a recording host.Window.
type Window struct {
	gpucontext.NullWindowChrome

	host *Host
	name string

	pos       image.Point
	size      image.Point
	title     string
	visible   bool
	frameless bool
	maximized bool
	fullscr   bool
	released  bool
}

func (w *Window) set(format string, args ...any) {
	w.host.record("Window %s "+format, append([]any{w.name}, args...)...)
}

// Name implements host.Node.
func (w *Window) Name() string { return w.name }

// Release implements host.Node.
func (w *Window) Release() {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.released = true
	w.host.record("Release %s", w.name)
}

// Position implements host.Window.
func (w *Window) Position() image.Point {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.pos
}

// Title returns the current title.
func (w *Window) Title() string {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.title
}

// Size returns the current size.
func (w *Window) Size() image.Point {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.size
}

// SetPosition implements host.Window.
func (w *Window) SetPosition(x, y int) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.pos = image.Pt(x, y)
	w.set("SetPosition %d,%d", x, y)
}

// SetSize implements host.Window.
func (w *Window) SetSize(width, height int) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.size = image.Pt(width, height)
	w.set("SetSize %dx%d", width, height)
}

// SetMinSize implements host.Window.
func (w *Window) SetMinSize(width, height int) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetMinSize %dx%d", width, height)
}

// SetMaxSize implements host.Window.
func (w *Window) SetMaxSize(width, height int) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetMaxSize %dx%d", width, height)
}

// SetTitle implements host.Window.
func (w *Window) SetTitle(title string) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.title = title
	w.set("SetTitle %q", title)
}

// SetVisible implements host.Window.
func (w *Window) SetVisible(visible bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.visible = visible
	w.set("SetVisible %t", visible)
}

// SetResizable implements host.Window.
func (w *Window) SetResizable(resizable bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetResizable %t", resizable)
}

// SetTransparent implements host.Window.
func (w *Window) SetTransparent(transparent bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetTransparent %t", transparent)
}

// SetAlwaysOnTop implements host.Window.
func (w *Window) SetAlwaysOnTop(onTop bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetAlwaysOnTop %t", onTop)
}

// SetMousePassthrough implements host.Window.
func (w *Window) SetMousePassthrough(passthrough bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("SetMousePassthrough %t", passthrough)
}

// GrabFocus implements host.Window.
func (w *Window) GrabFocus() {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("GrabFocus")
}

// SetFrameless implements gpucontext.WindowChrome.
func (w *Window) SetFrameless(frameless bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.frameless = frameless
	w.set("SetFrameless %t", frameless)
}

// IsFrameless implements gpucontext.WindowChrome.
func (w *Window) IsFrameless() bool {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.frameless
}

// Minimize implements gpucontext.WindowChrome.
func (w *Window) Minimize() {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("Minimize")
}

// Maximize implements gpucontext.WindowChrome.
func (w *Window) Maximize() {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.maximized = !w.maximized
	w.set("Maximize")
}

// IsMaximized implements gpucontext.WindowChrome.
func (w *Window) IsMaximized() bool {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.maximized
}

// SetFullscreen implements gpucontext.WindowChrome.
func (w *Window) SetFullscreen(fullscreen bool) {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.fullscr = fullscreen
	w.set("SetFullscreen %t", fullscreen)
}

// IsFullscreen implements gpucontext.WindowChrome.
func (w *Window) IsFullscreen() bool {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	return w.fullscr
}

// Close implements gpucontext.WindowChrome.
func (w *Window) Close() {
	w.host.mu.Lock()
	defer w.host.mu.Unlock()
	w.set("Close")
}

// RenderTarget is a recording host.RenderTarget.
type RenderTarget struct {
	host *Host
	root host.CanvasItem
	tex  *Texture
}

// Name implements host.Node.
func (t *RenderTarget) Name() string { return "RenderTarget" }

// Release implements host.Node.
func (t *RenderTarget) Release() {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	delete(t.host.items, t.root)
	t.host.record("Release RenderTarget")
}

// Resize implements host.RenderTarget.
func (t *RenderTarget) Resize(width, height int) {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.tex = &Texture{host: t.host, w: width, h: height}
	t.host.record("RenderTarget Resize %dx%d", width, height)
}

// Texture implements host.RenderTarget.
func (t *RenderTarget) Texture() gpucontext.Texture {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	return t.tex
}

// CanvasItem implements host.RenderTarget.
func (t *RenderTarget) CanvasItem() host.CanvasItem { return t.root }

// Item is the recorded state of a canvas item.
type Item struct {
	Parent    host.CanvasItem
	Clip      bool
	ClipRect  host.Rect2
	DrawIndex int
	Triangles []host.TriangleArray
	Lines     int
}

type renderingServer Host

func (rs *renderingServer) h() *Host { return (*Host)(rs) }

func (rs *renderingServer) update(item host.CanvasItem, op string, fn func(it *Item)) {
	h := rs.h()
	h.mu.Lock()
	defer h.mu.Unlock()
	it, ok := h.items[item]
	if !ok {
		panic(fmt.Sprintf("testhost: %s on unknown canvas item %d", op, item))
	}
	fn(it)
	h.record("%s %d", op, item)
}

func (rs *renderingServer) CanvasItemCreate() host.CanvasItem {
	h := rs.h()
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextItem++
	h.items[h.nextItem] = &Item{}
	h.record("CanvasItemCreate %d", h.nextItem)
	return h.nextItem
}

func (rs *renderingServer) CanvasItemSetParent(item, parent host.CanvasItem) {
	rs.update(item, "CanvasItemSetParent", func(it *Item) { it.Parent = parent })
}

func (rs *renderingServer) CanvasItemSetClip(item host.CanvasItem, clip bool) {
	rs.update(item, "CanvasItemSetClip", func(it *Item) { it.Clip = clip })
}

func (rs *renderingServer) CanvasItemSetClipRect(item host.CanvasItem, rect host.Rect2) {
	rs.update(item, "CanvasItemSetClipRect", func(it *Item) { it.ClipRect = rect })
}

func (rs *renderingServer) CanvasItemSetDrawIndex(item host.CanvasItem, index int) {
	rs.update(item, "CanvasItemSetDrawIndex", func(it *Item) { it.DrawIndex = index })
}

func (rs *renderingServer) CanvasItemClear(item host.CanvasItem) {
	rs.update(item, "CanvasItemClear", func(it *Item) {
		it.Triangles = nil
		it.Lines = 0
	})
}

func (rs *renderingServer) CanvasItemAddTriangleArray(item host.CanvasItem, tris host.TriangleArray) {
	rs.update(item, "CanvasItemAddTriangleArray", func(it *Item) { it.Triangles = append(it.Triangles, tris) })
}

func (rs *renderingServer) CanvasItemAddLine(item host.CanvasItem, _, _ host.Vector2, _ host.Color) {
	rs.update(item, "CanvasItemAddLine", func(it *Item) { it.Lines++ })
}

func (rs *renderingServer) FreeCanvasItem(item host.CanvasItem) {
	h := rs.h()
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.items[item]; !ok {
		panic(fmt.Sprintf("testhost: double free of canvas item %d", item))
	}
	delete(h.items, item)
	h.record("FreeCanvasItem %d", item)
}

type displayServer Host

func (ds *displayServer) ScreenCount() int {
	h := (*Host)(ds)
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.Screens)
}

func (ds *displayServer) ScreenPosition(screen int) image.Point {
	h := (*Host)(ds)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Screens[screen].Min
}

func (ds *displayServer) ScreenSize(screen int) image.Point {
	h := (*Host)(ds)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Screens[screen].Size()
}

type inputState Host

func (in *inputState) Modifiers() gpucontext.Modifiers {
	h := (*Host)(in)
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.Mods
}

type textureCreator Host

func (tc *textureCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	h := (*Host)(tc)
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.FailTextures {
		h.record("NewTexture %dx%d FAILED", width, height)
		return nil, ErrInjected
	}
	t := &Texture{host: h, w: width, h: height, data: slices.Clone(data)}
	h.textures = append(h.textures, t)
	h.record("NewTexture %dx%d", width, height)
	return t, nil
}

// Texture is a recording texture. It implements gpucontext.Texture,
// gpucontext.TextureRegionUpdater and a Destroy method.
type Texture struct {
	host      *Host
	w, h      int
	data      []byte
	destroyed bool
	regions   int
}

// Width implements gpucontext.Texture.
func (t *Texture) Width() int { return t.w }

// Height implements gpucontext.Texture.
func (t *Texture) Height() int { return t.h }

// UpdateRegion implements gpucontext.TextureRegionUpdater.
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	if len(data) != w*h*4 {
		return fmt.Errorf("testhost: region data is %d bytes, want %d", len(data), w*h*4)
	}
	for row := range h {
		copy(t.data[((y+row)*t.w+x)*4:], data[row*w*4:(row+1)*w*4])
	}
	t.regions++
	t.host.record("UpdateRegion %d,%d %dx%d", x, y, w, h)
	return nil
}

// Destroy releases the texture.
func (t *Texture) Destroy() {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	t.destroyed = true
	t.host.record("DestroyTexture %dx%d", t.w, t.h)
}

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	return t.destroyed
}

// Pixels returns a copy of the texture data.
func (t *Texture) Pixels() []byte {
	t.host.mu.Lock()
	defer t.host.mu.Unlock()
	return slices.Clone(t.data)
}

// Canvas records DrawTextureRegion calls.
type Canvas struct {
	Draws []Draw
}

// Draw is one recorded DrawTextureRegion call.
type Draw struct {
	Texture  gpucontext.Texture
	Dst, Src host.Rect2
}

// DrawTextureRegion implements host.Canvas.
func (c *Canvas) DrawTextureRegion(tex gpucontext.Texture, dst, src host.Rect2) {
	c.Draws = append(c.Draws, Draw{Texture: tex, Dst: dst, Src: src})
}

var (
	_ host.Host         = (*Host)(nil)
	_ host.Control      = (*Control)(nil)
	_ host.Window       = (*Window)(nil)
	_ host.RenderTarget = (*RenderTarget)(nil)
	_ host.Canvas       = (*Canvas)(nil)

	_ gpucontext.TextureRegionUpdater = (*Texture)(nil)
)
