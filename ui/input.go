// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "time"

// RawInput is everything the UI library needs to run one frame.
type RawInput struct {
	// ViewportID is the viewport that currently receives input.
	ViewportID ViewportID

	// Viewports holds the latest known state of every live viewport.
	Viewports map[ViewportID]ViewportInfo

	// ScreenRect is the area available to the root viewport, if known.
	ScreenRect *Rect

	// MaxTextureSide is the largest texture dimension the host accepts.
	MaxTextureSide int

	// Time is a monotonic timestamp in seconds.
	Time float64

	// PredictedDt is the expected interval until the next frame.
	PredictedDt time.Duration

	// Modifiers is the modifier-key state at the start of the frame.
	Modifiers Modifiers

	// Events are the input events collected since the previous frame,
	// oldest first.
	Events []Event

	// Focused reports whether any viewport owns the keyboard focus.
	Focused bool
}

// ViewportInfo is the host-observed state of a single viewport.
type ViewportInfo struct {
	// Parent is the viewport this one was spawned from, if any.
	Parent *ViewportID

	// Title is the host window title, if any.
	Title string

	// NativePixelsPerPoint is the pixel density of the surface.
	NativePixelsPerPoint *float32

	// InnerRect is the drawable area in global coordinates.
	InnerRect *Rect

	// OuterRect is the area including window decorations.
	OuterRect *Rect

	// Focused is nil until the host reports a focus change.
	Focused *bool

	// Minimized, Maximized and Fullscreen mirror the window state.
	Minimized  *bool
	Maximized  *bool
	Fullscreen *bool
}

// Modifiers is the state of the modifier keys.
type Modifiers struct {
	Alt   bool
	Ctrl  bool
	Shift bool
	// MacCmd is the macOS command key.
	MacCmd bool
	// Command is the platform's primary shortcut modifier.
	Command bool
}

// IsNone reports whether no modifier is held.
func (m Modifiers) IsNone() bool {
	return m == Modifiers{}
}

// PointerButton identifies a mouse button.
type PointerButton uint8

// Pointer buttons.
const (
	PointerPrimary PointerButton = iota
	PointerSecondary
	PointerMiddle
	PointerExtra1
	PointerExtra2
)

// Event is a single input event. The concrete types are PointerMoved,
// PointerButtonEvent, MouseWheel, KeyEvent, TextEvent, PointerGone and
// WindowFocused.
type Event interface {
	isEvent()
}

// PointerMoved reports a new pointer position.
type PointerMoved struct {
	Pos Pos2
}

// PointerButtonEvent reports a button press or release.
type PointerButtonEvent struct {
	Pos       Pos2
	Button    PointerButton
	Pressed   bool
	Modifiers Modifiers
}

// MouseWheel reports a scroll delta in points.
type MouseWheel struct {
	Delta     Vec2
	Modifiers Modifiers
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key       Key
	Pressed   bool
	Repeat    bool
	Modifiers Modifiers
}

// TextEvent carries text typed by the user.
type TextEvent struct {
	Text string
}

// PointerGone reports that the pointer left the viewport.
type PointerGone struct{}

// WindowFocused reports a focus change of the active viewport.
type WindowFocused struct {
	Focused bool
}

func (PointerMoved) isEvent()       {}
func (PointerButtonEvent) isEvent() {}
func (MouseWheel) isEvent()         {}
func (KeyEvent) isEvent()           {}
func (TextEvent) isEvent()          {}
func (PointerGone) isEvent()        {}
func (WindowFocused) isEvent()      {}
