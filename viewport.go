// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
)

// inputSnapshot is the latest host-observed state of one viewport, written
// by its IOBridge and read by the controller when assembling RawInput.
// Writers replace pointer fields instead of mutating what they point to, so
// a copied snapshot never changes underneath its reader.
type inputSnapshot struct {
	mu   sync.Mutex
	info ui.ViewportInfo
}

func (s *inputSnapshot) update(fn func(info *ui.ViewportInfo)) {
	s.mu.Lock()
	fn(&s.info)
	s.mu.Unlock()
}

func (s *inputSnapshot) snapshot() ui.ViewportInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.info
}

// ViewportContext is the host-side realization of one viewport: the control
// covering it and, for windowed viewports, the window containing that
// control. The control is a child of the window and is always released
// first.
type ViewportContext struct {
	id     ui.ViewportID
	parent *ui.ViewportID

	control host.Control
	bridge  *IOBridge
	window  host.Window

	// setup is the last window configuration applied to window.
	setup ui.ViewportBuilder
	input *inputSnapshot
	log   func() *slog.Logger
}

// ID returns the viewport id.
func (v *ViewportContext) ID() ui.ViewportID { return v.id }

// Parent returns the viewport this one was spawned from.
func (v *ViewportContext) Parent() (ui.ViewportID, bool) {
	if v.parent == nil {
		return 0, false
	}
	return *v.parent, true
}

// Control returns the host control covering the viewport.
func (v *ViewportContext) Control() host.Control { return v.control }

// Window returns the host window, or nil for embedded viewports.
func (v *ViewportContext) Window() host.Window { return v.window }

// Bridge returns the viewport's input/focus bridge.
func (v *ViewportContext) Bridge() *IOBridge { return v.bridge }

// Setup returns the last applied window configuration.
func (v *ViewportContext) Setup() ui.ViewportBuilder { return v.setup }

// Info returns the latest input snapshot.
func (v *ViewportContext) Info() ui.ViewportInfo { return v.input.snapshot() }

// release destroys the host objects, control before window.
func (v *ViewportContext) release() {
	v.control.Release()
	if v.window != nil {
		v.window.Release()
	}
}

// applyCommands forwards window commands to the host window. Embedded
// viewports have no window of their own and ignore them.
func (v *ViewportContext) applyCommands(commands []ui.ViewportCommand) {
	if len(commands) == 0 {
		return
	}
	w := v.window
	if w == nil {
		v.log().Debug("uibridge: window commands ignored for embedded viewport",
			"viewport", v.id, "count", len(commands))
		return
	}

	for _, cmd := range commands {
		switch c := cmd.(type) {
		case ui.CommandClose:
			w.Close()
		case ui.CommandTitle:
			w.SetTitle(c.Title)
			v.input.update(func(info *ui.ViewportInfo) { info.Title = c.Title })
		case ui.CommandVisible:
			w.SetVisible(c.Visible)
		case ui.CommandOuterPosition:
			w.SetPosition(int(c.Pos.X), int(c.Pos.Y))
		case ui.CommandInnerSize:
			w.SetSize(int(c.Size.X), int(c.Size.Y))
		case ui.CommandMinInnerSize:
			w.SetMinSize(int(c.Size.X), int(c.Size.Y))
		case ui.CommandMaxInnerSize:
			w.SetMaxSize(int(c.Size.X), int(c.Size.Y))
		case ui.CommandResizable:
			w.SetResizable(c.Resizable)
		case ui.CommandTransparent:
			w.SetTransparent(c.Transparent)
		case ui.CommandDecorations:
			w.SetFrameless(!c.Decorations)
		case ui.CommandMinimized:
			if c.Minimized {
				w.Minimize()
			}
			minimized := c.Minimized
			v.input.update(func(info *ui.ViewportInfo) { info.Minimized = &minimized })
		case ui.CommandMaximized:
			if c.Maximized != w.IsMaximized() {
				w.Maximize()
			}
			maximized := c.Maximized
			v.input.update(func(info *ui.ViewportInfo) { info.Maximized = &maximized })
		case ui.CommandFullscreen:
			w.SetFullscreen(c.Fullscreen)
			fullscreen := c.Fullscreen
			v.input.update(func(info *ui.ViewportInfo) { info.Fullscreen = &fullscreen })
		case ui.CommandWindowLevel:
			w.SetAlwaysOnTop(c.AlwaysOnTop)
		case ui.CommandMousePassthrough:
			w.SetMousePassthrough(c.Passthrough)
		case ui.CommandFocus:
			w.GrabFocus()
		default:
			v.log().Debug("uibridge: unsupported window command",
				"viewport", v.id, "command", fmt.Sprintf("%T", cmd))
		}
	}
}

// applyInitial brings a new window to the configuration in setup, including
// the properties that can only be chosen at creation.
func (v *ViewportContext) applyInitial() {
	if v.window == nil {
		return
	}
	if d := v.setup.Decorations; d != nil {
		v.window.SetFrameless(!*d)
	}
	if t := v.setup.Transparent; t != nil {
		v.window.SetTransparent(*t)
	}
	v.applyCommands(v.setup.InitialCommands())
}
