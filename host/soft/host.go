// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"errors"
	"fmt"
	"image"
	"slices"
	"sync"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
)

// DefaultWindowSize is the size of a newly created window.
var DefaultWindowSize = image.Pt(640, 480)

// Screens is a fixed host.DisplayServer.
type Screens []image.Rectangle

// ScreenCount implements host.DisplayServer.
func (s Screens) ScreenCount() int { return len(s) }

// ScreenPosition implements host.DisplayServer.
func (s Screens) ScreenPosition(i int) image.Point { return s[i].Min }

// ScreenSize implements host.DisplayServer.
func (s Screens) ScreenSize(i int) image.Point { return s[i].Size() }

// Option configures a Host.
type Option func(*Host)

// WithScreens sets fixed display rectangles.
func WithScreens(rects ...image.Rectangle) Option {
	return func(h *Host) {
		if len(rects) > 0 {
			h.displays = Screens(slices.Clone(rects))
		}
	}
}

// WithDisplayServer uses ds to enumerate displays, for example the XRandR
// server from host/x11.
func WithDisplayServer(ds host.DisplayServer) Option {
	return func(h *Host) {
		if ds != nil {
			h.displays = ds
		}
	}
}

// WithInputState reads held modifiers from in instead of SetModifiers.
func WithInputState(in host.InputState) Option {
	return func(h *Host) {
		if in != nil {
			h.input = in
		}
	}
}

// Host is an in-memory host.Host.
type Host struct {
	mu       sync.Mutex
	displays host.DisplayServer
	input    host.InputState
	mods     gpucontext.Modifiers
	rs       *RenderingServer
	target   *RenderTarget
	controls []*Control
	windows  []*Window
	focused  *Control
}

var _ host.Host = (*Host)(nil)

// New returns a host with a single 1920x1080 display unless configured
// otherwise.
func New(opts ...Option) *Host {
	h := &Host{
		displays: Screens{image.Rect(0, 0, 1920, 1080)},
		rs:       newRenderingServer(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RenderingServer implements host.Host.
func (h *Host) RenderingServer() host.RenderingServer { return h.rs }

// DisplayServer implements host.Host.
func (h *Host) DisplayServer() host.DisplayServer { return h.displays }

// Input implements host.Host.
func (h *Host) Input() host.InputState {
	if h.input != nil {
		return h.input
	}
	return (*inputState)(h)
}

// TextureCreator implements host.Host.
func (h *Host) TextureCreator() gpucontext.TextureCreator { return (*textureCreator)(h) }

// SetModifiers sets the modifier keys reported as physically held when no
// input state was injected.
func (h *Host) SetModifiers(m gpucontext.Modifiers) {
	h.mu.Lock()
	h.mods = m
	h.mu.Unlock()
}

type inputState Host

func (s *inputState) Modifiers() gpucontext.Modifiers {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mods
}

type textureCreator Host

func (*textureCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	tex, err := newTexture(width, height, data)
	if err != nil {
		return nil, err
	}
	uibridge.Logger().Debug("soft: texture created", "width", width, "height", height)
	return tex, nil
}

// desktop returns the bounding box of all displays.
func (h *Host) desktop() image.Rectangle {
	var r image.Rectangle
	for i := range h.displays.ScreenCount() {
		p := h.displays.ScreenPosition(i)
		r = r.Union(image.Rectangle{Min: p, Max: p.Add(h.displays.ScreenSize(i))})
	}
	return r
}

// NewRenderTarget implements host.Host. The initial size is the desktop
// bounding box.
func (h *Host) NewRenderTarget(parent host.Node) (host.RenderTarget, error) {
	if parent != nil {
		return nil, fmt.Errorf("%w: render targets attach to the bridge", ErrInvalidParent)
	}
	size := h.desktop().Size()
	if size.X <= 0 || size.Y <= 0 {
		size = image.Pt(1, 1)
	}
	t, err := newRenderTarget(h, size.X, size.Y)
	if err != nil {
		return nil, err
	}
	h.mu.Lock()
	h.target = t
	h.mu.Unlock()
	return t, nil
}

// Target returns the render target, or nil before one is created.
func (h *Host) Target() *RenderTarget {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.target
}

func (h *Host) dropTarget(t *RenderTarget) {
	h.mu.Lock()
	if h.target == t {
		h.target = nil
	}
	h.mu.Unlock()
}

// NewWindow implements host.Host.
func (h *Host) NewWindow(parent host.Node, name string) (host.Window, error) {
	if parent != nil {
		return nil, fmt.Errorf("%w: windows attach to the bridge", ErrInvalidParent)
	}
	w := &Window{host: h, name: name, size: DefaultWindowSize, visible: true, resizable: true}
	h.mu.Lock()
	h.windows = append(h.windows, w)
	h.mu.Unlock()
	uibridge.Logger().Debug("soft: window created", "name", name)
	return w, nil
}

// NewControl implements host.Host. A control inside a window covers the
// window; a control attached to the bridge covers the first display.
func (h *Host) NewControl(parent host.Node, name string, handler host.ControlHandler) (host.Control, error) {
	if handler == nil {
		return nil, errors.New("soft: nil control handler")
	}
	c := &Control{host: h, name: name, handler: handler}
	switch p := parent.(type) {
	case nil:
		if h.displays.ScreenCount() > 0 {
			c.pos = toVector(h.displays.ScreenPosition(0))
			c.size = toVector(h.displays.ScreenSize(0))
		}
	case *Window:
		c.window = p
		c.size = toVector(p.Size())
		p.attach(c)
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidParent, parent)
	}
	c.surface = newSurface(c.size)

	h.mu.Lock()
	h.controls = append(h.controls, c)
	h.mu.Unlock()
	uibridge.Logger().Debug("soft: control created", "name", name)
	return c, nil
}

// Controls returns the live controls in creation order.
func (h *Host) Controls() []*Control {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.controls)
}

// Control returns the live control called name.
func (h *Host) Control(name string) (*Control, bool) {
	for _, c := range h.Controls() {
		if c.Name() == name {
			return c, true
		}
	}
	return nil, false
}

// Windows returns the live windows in creation order.
func (h *Host) Windows() []*Window {
	h.mu.Lock()
	defer h.mu.Unlock()
	return slices.Clone(h.windows)
}

// Window returns the live window called name.
func (h *Host) Window(name string) (*Window, bool) {
	for _, w := range h.Windows() {
		if w.Name() == name {
			return w, true
		}
	}
	return nil, false
}

func (h *Host) dropControl(c *Control) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.controls = slices.DeleteFunc(h.controls, func(x *Control) bool { return x == c })
	if h.focused == c {
		h.focused = nil
	}
}

func (h *Host) dropWindow(w *Window) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.windows = slices.DeleteFunc(h.windows, func(x *Window) bool { return x == w })
}

// Present renders the target and redraws every control with a queued
// redraw. It plays the role of the host's per-frame draw pass.
func (h *Host) Present() error {
	if t := h.Target(); t != nil {
		if err := t.Render(); err != nil {
			return err
		}
	}
	for _, c := range h.Controls() {
		c.present()
	}
	return nil
}
