// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"image"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/internal/testhost"
	"github.com/gogpu/uibridge/ui"
	"github.com/gogpu/uibridge/ui/uitest"
)

func newTestBridge(id ui.ViewportID, shared *SharedContext, clock *fakeClock) *IOBridge {
	o := defaultOptions()
	o.clock = clock
	return newIOBridge(id, shared, &inputSnapshot{}, &o)
}

func TestFocusHandoff(t *testing.T) {
	shared := newSharedContext(uitest.New())
	clock := newFakeClock()
	a := newTestBridge(ui.ViewportIDFrom("a"), shared, clock)
	b := newTestBridge(ui.ViewportIDFrom("b"), shared, clock)

	a.Notify(host.NotificationFocusEnter)
	b.Notify(host.NotificationFocusEnter)
	a.Notify(host.NotificationFocusExit)

	id, focused := shared.Focus()
	if id != b.ViewportID() || !focused {
		t.Errorf("focus = (%v, %t), want (%v, true)", id, focused, b.ViewportID())
	}

	if f := a.input.snapshot().Focused; f == nil || *f {
		t.Error("a's snapshot should be unfocused")
	}
	if f := b.input.snapshot().Focused; f == nil || !*f {
		t.Error("b's snapshot should be focused")
	}

	b.Notify(host.NotificationFocusExit)
	if id, focused := shared.Focus(); id != b.ViewportID() || focused {
		t.Errorf("focus after b exit = (%v, %t), want (%v, false)", id, focused, b.ViewportID())
	}
}

// windowedControl creates a control inside a window placed at pos.
func windowedControl(t *testing.T, h *testhost.Host, bridge *IOBridge, pos image.Point) *testhost.Control {
	t.Helper()
	w, err := h.NewWindow(nil, "w")
	if err != nil {
		t.Fatal(err)
	}
	w.SetPosition(pos.X, pos.Y)
	c, err := h.NewControl(w, "c", bridge)
	if err != nil {
		t.Fatal(err)
	}
	bridge.attach(c)
	return c.(*testhost.Control)
}

func TestResizeUpdatesRectAndSchedules(t *testing.T) {
	h := testhost.New()
	shared := newSharedContext(uitest.New())
	clock := newFakeClock()
	id := ui.ViewportIDFrom("v")
	bridge := newTestBridge(id, shared, clock)
	ctrl := windowedControl(t, h, bridge, image.Pt(100, 50))

	ctrl.Resize(host.Vector2{X: 4, Y: 8}, host.Vector2{X: 200, Y: 100})

	info := bridge.input.snapshot()
	want := ui.Rect{Min: ui.Pos2{X: 104, Y: 58}, Max: ui.Pos2{X: 304, Y: 158}}
	if info.InnerRect == nil || *info.InnerRect != want {
		t.Errorf("InnerRect = %v, want %v", info.InnerRect, want)
	}
	if info.OuterRect == nil || *info.OuterRect != want {
		t.Errorf("OuterRect = %v, want %v", info.OuterRect, want)
	}
	at, ok := shared.schedule.Deadline(id)
	if !ok || !at.Equal(clock.Now()) {
		t.Errorf("deadline = (%v, %t), want immediate", at, ok)
	}
}

func TestResizeWithoutWindowUsesZeroOffset(t *testing.T) {
	h := testhost.New()
	shared := newSharedContext(uitest.New())
	bridge := newTestBridge(ui.RootViewportID, shared, newFakeClock())
	c, _ := h.NewControl(nil, "root", bridge)
	bridge.attach(c)

	c.(*testhost.Control).Resize(host.Vector2{X: 3, Y: 4}, host.Vector2{X: 10, Y: 10})
	want := ui.Rect{Min: ui.Pos2{X: 3, Y: 4}, Max: ui.Pos2{X: 13, Y: 14}}
	if got := bridge.input.snapshot().InnerRect; got == nil || *got != want {
		t.Errorf("InnerRect = %v, want %v", got, want)
	}
}

func TestInputTranslatesToGlobal(t *testing.T) {
	h := testhost.New()
	shared := newSharedContext(uitest.New())
	clock := newFakeClock()
	id := ui.ViewportIDFrom("v")
	bridge := newTestBridge(id, shared, clock)
	ctrl := windowedControl(t, h, bridge, image.Pt(100, 50))
	ctrl.Resize(host.Vector2{}, host.Vector2{X: 200, Y: 100})
	shared.schedule.Remove(id)

	if !bridge.Input(host.MouseButtonEvent{
		Button:    gpucontext.MouseButtonLeft,
		Pressed:   true,
		Position:  host.Vector2{X: 5, Y: 5},
		Modifiers: gpucontext.ModControl,
	}) {
		t.Fatal("mouse button event not consumed")
	}

	pos := ui.Pos2{X: 105, Y: 55}
	want := []ui.Event{
		ui.PointerMoved{Pos: pos},
		ui.PointerButtonEvent{
			Pos:       pos,
			Button:    ui.PointerPrimary,
			Pressed:   true,
			Modifiers: ui.Modifiers{Ctrl: true, Command: true},
		},
	}
	got := shared.inbox.Drain()
	if len(got) != len(want) {
		t.Fatalf("inbox = %#v, want %#v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %#v, want %#v", i, got[i], want[i])
		}
	}
	if _, ok := shared.schedule.Deadline(id); !ok {
		t.Error("input did not request a repaint")
	}
}

type unknownEvent struct{ host.KeyEvent }

func TestInputRejectsUnknownEvents(t *testing.T) {
	shared := newSharedContext(uitest.New())
	bridge := newTestBridge(ui.RootViewportID, shared, newFakeClock())
	if bridge.Input(unknownEvent{}) {
		t.Error("unknown event reported as consumed")
	}
	if shared.inbox.Len() != 0 || shared.schedule.Len() != 0 {
		t.Error("unknown event changed shared state")
	}
}

func TestDrawBlitsOwnRegion(t *testing.T) {
	h := testhost.New()
	shared := newSharedContext(uitest.New())
	bridge := newTestBridge(ui.ViewportIDFrom("v"), shared, newFakeClock())
	ctrl := windowedControl(t, h, bridge, image.Pt(-500, 20))
	ctrl.Resize(host.Vector2{X: 10}, host.Vector2{X: 64, Y: 32})

	var canvas testhost.Canvas
	bridge.Draw(&canvas)
	if len(canvas.Draws) != 0 {
		t.Fatal("drew without a render target")
	}

	target, _ := h.NewRenderTarget(nil)
	target.Resize(4480, 1440)
	shared.screen.set(image.Pt(-1920, 0), target.Texture())

	bridge.Draw(&canvas)
	if len(canvas.Draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(canvas.Draws))
	}
	d := canvas.Draws[0]
	wantSrc := host.Rect2{Position: host.Vector2{X: 1430, Y: 20}, Size: host.Vector2{X: 64, Y: 32}}
	wantDst := host.Rect2{Size: host.Vector2{X: 64, Y: 32}}
	if d.Src != wantSrc || d.Dst != wantDst {
		t.Errorf("draw src=%v dst=%v, want src=%v dst=%v", d.Src, d.Dst, wantSrc, wantDst)
	}
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name string
		ev   host.KeyEvent
		want []ui.Event
	}{
		{
			name: "letter with text",
			ev:   host.KeyEvent{Key: gpucontext.KeyZ, Pressed: true, Text: "z"},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyZ, Pressed: true}, ui.TextEvent{Text: "z"}},
		},
		{
			name: "release has no text",
			ev:   host.KeyEvent{Key: gpucontext.KeyZ, Text: "z"},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyZ}},
		},
		{
			name: "shortcut suppresses text",
			ev:   host.KeyEvent{Key: gpucontext.KeyC, Pressed: true, Text: "c", Modifiers: gpucontext.ModControl},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyC, Pressed: true, Modifiers: ui.Modifiers{Ctrl: true, Command: true}}},
		},
		{
			name: "auto repeat",
			ev:   host.KeyEvent{Key: gpucontext.KeyBackspace, Pressed: true, Echo: true},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyBackspace, Pressed: true, Repeat: true}},
		},
		{
			name: "digit and function key ranges",
			ev:   host.KeyEvent{Key: gpucontext.KeyF12, Pressed: true},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyF12, Pressed: true}},
		},
		{
			name: "numpad digit",
			ev:   host.KeyEvent{Key: gpucontext.KeyNumpad7, Pressed: true},
			want: []ui.Event{ui.KeyEvent{Key: ui.KeyNum7, Pressed: true}},
		},
		{
			name: "unmapped key with text",
			ev:   host.KeyEvent{Key: gpucontext.KeyLeftShift, Pressed: true, Text: "é"},
			want: []ui.Event{ui.TextEvent{Text: "é"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := translateInput(tt.ev, host.Vector2{})
			if !ok {
				t.Fatal("key event not handled")
			}
			if len(got) != len(tt.want) {
				t.Fatalf("events = %#v, want %#v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("event %d = %#v, want %#v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestTranslateWheelAndButtons(t *testing.T) {
	got, ok := translateInput(host.MouseWheelEvent{
		Position:  host.Vector2{X: 1, Y: 1},
		Delta:     host.Vector2{X: 0, Y: -3},
		Modifiers: gpucontext.ModShift,
	}, host.Vector2{X: 10, Y: 10})
	if !ok || len(got) != 1 {
		t.Fatalf("wheel events = %#v", got)
	}
	want := ui.MouseWheel{Delta: ui.Vec2{Y: -3}, Modifiers: ui.Modifiers{Shift: true}}
	if got[0] != want {
		t.Errorf("wheel = %#v, want %#v", got[0], want)
	}

	buttons := map[gpucontext.MouseButton]ui.PointerButton{
		gpucontext.MouseButtonLeft:   ui.PointerPrimary,
		gpucontext.MouseButtonRight:  ui.PointerSecondary,
		gpucontext.MouseButtonMiddle: ui.PointerMiddle,
		gpucontext.MouseButton4:      ui.PointerExtra1,
		gpucontext.MouseButton5:      ui.PointerExtra2,
	}
	for in, want := range buttons {
		got, ok := pointerButton(in)
		if !ok || got != want {
			t.Errorf("pointerButton(%v) = (%v, %t), want %v", in, got, ok, want)
		}
	}
}

func TestModifiersSuperIsCommand(t *testing.T) {
	got := modifiers(gpucontext.ModSuper | gpucontext.ModAlt)
	want := ui.Modifiers{Alt: true, MacCmd: true, Command: true}
	if got != want {
		t.Errorf("modifiers = %+v, want %+v", got, want)
	}
}
