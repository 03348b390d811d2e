// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"image"
	"log/slog"
	"sync"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
)

// IOBridge is the host.ControlHandler of one viewport's control. It feeds
// focus, resize and input notifications into the shared context and draws
// the viewport's region of the shared render target.
//
// The host calls IOBridge from its own event dispatch, so every piece of
// state it touches is lock-protected. It never calls into the UI context.
type IOBridge struct {
	id     ui.ViewportID
	shared *SharedContext
	input  *inputSnapshot
	clock  host.Clock
	log    func() *slog.Logger

	mu      sync.Mutex
	control host.Control
}

func newIOBridge(id ui.ViewportID, shared *SharedContext, input *inputSnapshot, o *options) *IOBridge {
	return &IOBridge{
		id:     id,
		shared: shared,
		input:  input,
		clock:  o.clock,
		log:    o.logSource(),
	}
}

// attach binds the control the bridge handles. Notifications received
// before attach see a zero-sized viewport at the origin.
func (b *IOBridge) attach(c host.Control) {
	b.mu.Lock()
	b.control = c
	b.mu.Unlock()
}

// ViewportID returns the viewport the bridge serves.
func (b *IOBridge) ViewportID() ui.ViewportID { return b.id }

// Notify implements host.ControlHandler.
func (b *IOBridge) Notify(what host.Notification) {
	switch what {
	case host.NotificationFocusEnter:
		b.shared.focus.set(b.id, true)
		b.setFocused(true)
	case host.NotificationFocusExit:
		b.shared.focus.release(b.id)
		b.setFocused(false)
	case host.NotificationResized:
		b.refreshRect()
	}
}

func (b *IOBridge) setFocused(focused bool) {
	b.input.update(func(info *ui.ViewportInfo) { info.Focused = &focused })
}

// Draw implements host.ControlHandler. It blits the viewport's rectangle of
// the shared render target into the control.
func (b *IOBridge) Draw(canvas host.Canvas) {
	offset, tex := b.shared.screen.Get()
	if tex == nil {
		return
	}
	rect := b.globalRect()
	if rect.Size.X <= 0 || rect.Size.Y <= 0 {
		return
	}
	src := host.Rect2{
		Position: host.Vector2{
			X: rect.Position.X - float32(offset.X),
			Y: rect.Position.Y - float32(offset.Y),
		},
		Size: rect.Size,
	}
	canvas.DrawTextureRegion(tex, host.Rect2{Size: rect.Size}, src)
}

// Input implements host.ControlHandler. Handled events are queued for the
// next frame, trigger a repaint, and are reported as consumed.
func (b *IOBridge) Input(ev host.InputEvent) bool {
	events, ok := translateInput(ev, b.globalRect().Position)
	if !ok {
		return false
	}
	b.shared.inbox.Push(events...)
	b.shared.schedule.Set(b.id, b.clock.Now())
	return true
}

// refreshRect writes the current global rectangle into the input snapshot
// and schedules an immediate repaint.
func (b *IOBridge) refreshRect() {
	r := b.globalRect()
	rect := ui.RectFromMinSize(
		ui.Pos2{X: r.Position.X, Y: r.Position.Y},
		ui.Vec2{X: r.Size.X, Y: r.Size.Y},
	)
	b.input.update(func(info *ui.ViewportInfo) {
		inner, outer := rect, rect
		info.InnerRect = &inner
		info.OuterRect = &outer
	})
	b.log().Debug("uibridge: viewport resized", "viewport", b.id, "rect", rect)
	b.shared.schedule.Set(b.id, b.clock.Now())
}

// globalRect is the control's rectangle in desktop coordinates. A control
// without a window is placed relative to the desktop origin.
func (b *IOBridge) globalRect() host.Rect2 {
	b.mu.Lock()
	c := b.control
	b.mu.Unlock()
	if c == nil {
		return host.Rect2{}
	}

	var origin image.Point
	if w := c.Window(); w != nil {
		origin = w.Position()
	}
	pos := c.ScreenPosition().Add(host.Vector2{X: float32(origin.X), Y: float32(origin.Y)})
	return host.Rect2{Position: pos, Size: c.Size()}
}
