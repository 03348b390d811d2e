// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

// ViewportCommand is an instruction to change a viewport's host window.
type ViewportCommand interface {
	isViewportCommand()
}

// Window commands. Each maps onto a single host window operation.
type (
	// CommandClose asks the host to close the window.
	CommandClose struct{}

	// CommandCancelClose cancels a pending close request.
	CommandCancelClose struct{}

	// CommandTitle sets the window title.
	CommandTitle struct{ Title string }

	// CommandTransparent toggles a transparent window background.
	CommandTransparent struct{ Transparent bool }

	// CommandVisible shows or hides the window.
	CommandVisible struct{ Visible bool }

	// CommandStartDrag starts an interactive window move.
	CommandStartDrag struct{}

	// CommandOuterPosition moves the window.
	CommandOuterPosition struct{ Pos Pos2 }

	// CommandInnerSize resizes the drawable area.
	CommandInnerSize struct{ Size Vec2 }

	// CommandMinInnerSize limits how small the window may get.
	CommandMinInnerSize struct{ Size Vec2 }

	// CommandMaxInnerSize limits how large the window may get.
	CommandMaxInnerSize struct{ Size Vec2 }

	// CommandResizable toggles user resizing.
	CommandResizable struct{ Resizable bool }

	// CommandMinimized minimizes or restores the window.
	CommandMinimized struct{ Minimized bool }

	// CommandMaximized maximizes or restores the window.
	CommandMaximized struct{ Maximized bool }

	// CommandFullscreen enters or leaves fullscreen.
	CommandFullscreen struct{ Fullscreen bool }

	// CommandDecorations toggles the window frame.
	CommandDecorations struct{ Decorations bool }

	// CommandWindowLevel keeps the window above others when AlwaysOnTop.
	CommandWindowLevel struct{ AlwaysOnTop bool }

	// CommandFocus gives the window keyboard focus.
	CommandFocus struct{}

	// CommandRequestUserAttention flashes the window in the task bar.
	CommandRequestUserAttention struct{}

	// CommandCursorVisible shows or hides the mouse cursor.
	CommandCursorVisible struct{ Visible bool }

	// CommandMousePassthrough lets pointer events fall through the window.
	CommandMousePassthrough struct{ Passthrough bool }
)

func (CommandClose) isViewportCommand()                {}
func (CommandCancelClose) isViewportCommand()          {}
func (CommandTitle) isViewportCommand()                {}
func (CommandTransparent) isViewportCommand()          {}
func (CommandVisible) isViewportCommand()              {}
func (CommandStartDrag) isViewportCommand()            {}
func (CommandOuterPosition) isViewportCommand()        {}
func (CommandInnerSize) isViewportCommand()            {}
func (CommandMinInnerSize) isViewportCommand()         {}
func (CommandMaxInnerSize) isViewportCommand()         {}
func (CommandResizable) isViewportCommand()            {}
func (CommandMinimized) isViewportCommand()            {}
func (CommandMaximized) isViewportCommand()            {}
func (CommandFullscreen) isViewportCommand()           {}
func (CommandDecorations) isViewportCommand()          {}
func (CommandWindowLevel) isViewportCommand()          {}
func (CommandFocus) isViewportCommand()                {}
func (CommandRequestUserAttention) isViewportCommand() {}
func (CommandCursorVisible) isViewportCommand()        {}
func (CommandMousePassthrough) isViewportCommand()     {}
