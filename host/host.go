// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import (
	"image"
	"time"

	"github.com/gogpu/gpucontext"
)

// Node is a host scene-tree object whose lifetime is managed by the host.
type Node interface {
	// Name returns the node's name in the scene tree.
	Name() string

	// Release asks the host to destroy the node. The node must not be used
	// afterwards. Children must be released before their parent.
	Release()
}

// Control is a host UI control that covers one viewport's surface.
type Control interface {
	Node

	// ScreenPosition returns the control's offset inside its window.
	ScreenPosition() Vector2

	// Size returns the control's size.
	Size() Vector2

	// Window returns the host window containing the control, or nil when
	// the host cannot tell.
	Window() Window

	// QueueRedraw schedules a Draw call on the control's handler.
	QueueRedraw()
}

// Window is a host-native top-level window.
type Window interface {
	Node
	gpucontext.WindowChrome

	// Position returns the window's position on the desktop.
	Position() image.Point

	SetPosition(x, y int)
	SetSize(width, height int)
	SetMinSize(width, height int)
	SetMaxSize(width, height int)
	SetTitle(title string)
	SetVisible(visible bool)
	SetResizable(resizable bool)
	SetTransparent(transparent bool)
	SetAlwaysOnTop(onTop bool)
	SetMousePassthrough(passthrough bool)

	// GrabFocus gives the window keyboard focus.
	GrabFocus()
}

// RenderTarget is an offscreen surface canvas items are rendered into.
type RenderTarget interface {
	Node

	// Resize changes the surface size. The previous contents are lost and
	// the texture returned by Texture may change.
	Resize(width, height int)

	// Texture returns a sampleable view of the surface.
	Texture() gpucontext.Texture

	// CanvasItem returns the root canvas item drawn into the surface.
	CanvasItem() CanvasItem
}

// Canvas is handed to ControlHandler.Draw for the duration of the call.
type Canvas interface {
	// DrawTextureRegion draws the src region of tex into dst, both in
	// pixels; dst is relative to the control.
	DrawTextureRegion(tex gpucontext.Texture, dst, src Rect2)
}

// Notification is a control notification delivered by the host.
type Notification int

// Control notifications.
const (
	NotificationFocusEnter Notification = iota
	NotificationFocusExit
	NotificationResized
)

// String implements fmt.Stringer.
func (n Notification) String() string {
	switch n {
	case NotificationFocusEnter:
		return "FocusEnter"
	case NotificationFocusExit:
		return "FocusExit"
	case NotificationResized:
		return "Resized"
	default:
		return "Unknown"
	}
}

// ControlHandler receives the callbacks of a Control created by the bridge.
// The host calls these from its own event dispatch, interleaved with but
// not nested inside the per-tick callback.
type ControlHandler interface {
	Notify(what Notification)
	Draw(canvas Canvas)

	// Input handles a raw input event and reports whether it was consumed.
	Input(ev InputEvent) bool
}

// DisplayServer describes the physical displays.
type DisplayServer interface {
	ScreenCount() int
	ScreenPosition(screen int) image.Point
	ScreenSize(screen int) image.Point
}

// InputState is the host's global input singleton.
type InputState interface {
	// Modifiers returns the physical modifier keys currently held.
	Modifiers() gpucontext.Modifiers
}

// Clock is the host time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock with its monotonic reading.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Host is the set of host services the bridge depends on.
//
// A nil parent passed to the New* methods stands for the bridge's own node.
type Host interface {
	NewControl(parent Node, name string, handler ControlHandler) (Control, error)
	NewWindow(parent Node, name string) (Window, error)
	NewRenderTarget(parent Node) (RenderTarget, error)

	RenderingServer() RenderingServer
	DisplayServer() DisplayServer
	Input() InputState
	TextureCreator() gpucontext.TextureCreator
}
