// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
)

// translateInput converts a host input event into UI events. Positions in
// ev are relative to the control; origin is the control's global position.
// ok is false for event types the bridge does not handle.
func translateInput(ev host.InputEvent, origin host.Vector2) (events []ui.Event, ok bool) {
	toGlobal := func(p host.Vector2) ui.Pos2 {
		return ui.Pos2{X: p.X + origin.X, Y: p.Y + origin.Y}
	}

	switch e := ev.(type) {
	case host.MouseMotionEvent:
		return []ui.Event{ui.PointerMoved{Pos: toGlobal(e.Position)}}, true

	case host.MouseButtonEvent:
		button, known := pointerButton(e.Button)
		pos := toGlobal(e.Position)
		events = append(events, ui.PointerMoved{Pos: pos})
		if known {
			events = append(events, ui.PointerButtonEvent{
				Pos:       pos,
				Button:    button,
				Pressed:   e.Pressed,
				Modifiers: modifiers(e.Modifiers),
			})
		}
		return events, true

	case host.MouseWheelEvent:
		return []ui.Event{ui.MouseWheel{
			Delta:     ui.Vec2{X: e.Delta.X, Y: e.Delta.Y},
			Modifiers: modifiers(e.Modifiers),
		}}, true

	case host.KeyEvent:
		if key := keyFor(e.Key); key != ui.KeyUnknown {
			events = append(events, ui.KeyEvent{
				Key:       key,
				Pressed:   e.Pressed,
				Repeat:    e.Echo,
				Modifiers: modifiers(e.Modifiers),
			})
		}
		if e.Pressed && e.Text != "" && !e.Modifiers.HasControl() && !e.Modifiers.HasSuper() {
			events = append(events, ui.TextEvent{Text: e.Text})
		}
		return events, true
	}
	return nil, false
}

// modifiers maps host modifier flags. Command follows the platform shortcut
// key: Control, or Super where that is what the host reports.
func modifiers(m gpucontext.Modifiers) ui.Modifiers {
	return ui.Modifiers{
		Alt:     m.HasAlt(),
		Ctrl:    m.HasControl(),
		Shift:   m.HasShift(),
		MacCmd:  m.HasSuper(),
		Command: m.HasControl() || m.HasSuper(),
	}
}

func pointerButton(b gpucontext.MouseButton) (ui.PointerButton, bool) {
	switch b {
	case gpucontext.MouseButtonLeft:
		return ui.PointerPrimary, true
	case gpucontext.MouseButtonRight:
		return ui.PointerSecondary, true
	case gpucontext.MouseButtonMiddle:
		return ui.PointerMiddle, true
	case gpucontext.MouseButton4:
		return ui.PointerExtra1, true
	case gpucontext.MouseButton5:
		return ui.PointerExtra2, true
	}
	return 0, false
}

var keyTable = map[gpucontext.Key]ui.Key{
	gpucontext.KeyDown:  ui.KeyArrowDown,
	gpucontext.KeyLeft:  ui.KeyArrowLeft,
	gpucontext.KeyRight: ui.KeyArrowRight,
	gpucontext.KeyUp:    ui.KeyArrowUp,

	gpucontext.KeyEscape:      ui.KeyEscape,
	gpucontext.KeyTab:         ui.KeyTab,
	gpucontext.KeyBackspace:   ui.KeyBackspace,
	gpucontext.KeyEnter:       ui.KeyEnter,
	gpucontext.KeyNumpadEnter: ui.KeyEnter,
	gpucontext.KeySpace:       ui.KeySpace,

	gpucontext.KeyInsert:   ui.KeyInsert,
	gpucontext.KeyDelete:   ui.KeyDelete,
	gpucontext.KeyHome:     ui.KeyHome,
	gpucontext.KeyEnd:      ui.KeyEnd,
	gpucontext.KeyPageUp:   ui.KeyPageUp,
	gpucontext.KeyPageDown: ui.KeyPageDown,

	gpucontext.KeyMinus:          ui.KeyMinus,
	gpucontext.KeyNumpadSubtract: ui.KeyMinus,
	gpucontext.KeyEqual:          ui.KeyPlusEquals,
	gpucontext.KeyNumpadAdd:      ui.KeyPlusEquals,
	gpucontext.KeyComma:          ui.KeyComma,
	gpucontext.KeyPeriod:         ui.KeyPeriod,
	gpucontext.KeySlash:          ui.KeySlash,
	gpucontext.KeySemicolon:      ui.KeySemicolon,
	gpucontext.KeyBackslash:      ui.KeyBackslash,
	gpucontext.KeyLeftBracket:    ui.KeyOpenBracket,
	gpucontext.KeyRightBracket:   ui.KeyCloseBracket,
	gpucontext.KeyGrave:          ui.KeyBacktick,
	gpucontext.KeyApostrophe:     ui.KeyQuote,
}

func init() {
	for i := range 10 {
		keyTable[gpucontext.Key0+gpucontext.Key(i)] = ui.KeyNum0 + ui.Key(i)
		keyTable[gpucontext.KeyNumpad0+gpucontext.Key(i)] = ui.KeyNum0 + ui.Key(i)
	}
	for i := range 26 {
		keyTable[gpucontext.KeyA+gpucontext.Key(i)] = ui.KeyA + ui.Key(i)
	}
	for i := range 12 {
		keyTable[gpucontext.KeyF1+gpucontext.Key(i)] = ui.KeyF1 + ui.Key(i)
	}
}

func keyFor(k gpucontext.Key) ui.Key {
	return keyTable[k]
}
