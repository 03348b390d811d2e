// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import "github.com/gogpu/gpucontext"

// InputEvent is a raw input event delivered to a control. The concrete types
// are MouseButtonEvent, MouseMotionEvent, MouseWheelEvent and KeyEvent.
// Positions are relative to the control.
type InputEvent interface {
	isInputEvent()
}

// MouseButtonEvent reports a mouse button press or release.
type MouseButtonEvent struct {
	Button    gpucontext.MouseButton
	Pressed   bool
	Position  Vector2
	Modifiers gpucontext.Modifiers
}

// MouseMotionEvent reports pointer movement.
type MouseMotionEvent struct {
	Position  Vector2
	Relative  Vector2
	Modifiers gpucontext.Modifiers
}

// MouseWheelEvent reports a scroll wheel or trackpad delta.
type MouseWheelEvent struct {
	Position  Vector2
	Delta     Vector2
	Modifiers gpucontext.Modifiers
}

// KeyEvent reports a key press or release.
type KeyEvent struct {
	Key     gpucontext.Key
	Pressed bool
	// Echo is true for auto-repeat presses.
	Echo bool
	// Text is the text produced by the press, if any.
	Text      string
	Modifiers gpucontext.Modifiers
}

func (MouseButtonEvent) isInputEvent() {}
func (MouseMotionEvent) isInputEvent() {}
func (MouseWheelEvent) isInputEvent()  {}
func (KeyEvent) isInputEvent()         {}
