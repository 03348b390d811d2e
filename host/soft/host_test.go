// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"image"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
	"github.com/gogpu/uibridge/ui/uitest"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// recorder is a host.ControlHandler that records notifications.
type recorder struct {
	notes  []host.Notification
	events []host.InputEvent
	draws  int
}

func (r *recorder) Notify(what host.Notification) { r.notes = append(r.notes, what) }
func (r *recorder) Draw(host.Canvas)               { r.draws++ }
func (r *recorder) Input(ev host.InputEvent) bool {
	r.events = append(r.events, ev)
	return true
}

func TestScreens(t *testing.T) {
	h := New(WithScreens(image.Rect(-1920, 0, 0, 1080), image.Rect(0, 0, 2560, 1440)))
	ds := h.DisplayServer()
	if ds.ScreenCount() != 2 {
		t.Fatalf("ScreenCount() = %d, want 2", ds.ScreenCount())
	}
	if p := ds.ScreenPosition(0); p != image.Pt(-1920, 0) {
		t.Errorf("ScreenPosition(0) = %v", p)
	}
	if s := ds.ScreenSize(1); s != image.Pt(2560, 1440) {
		t.Errorf("ScreenSize(1) = %v", s)
	}

	rt, err := h.NewRenderTarget(nil)
	if err != nil {
		t.Fatal(err)
	}
	if w, hh := rt.(*RenderTarget).Size(); w != 4480 || hh != 1440 {
		t.Errorf("target = %dx%d, want desktop 4480x1440", w, hh)
	}
}

func TestNewControlPlacement(t *testing.T) {
	h := New(WithScreens(image.Rect(100, 0, 900, 600)))

	root, err := h.NewControl(nil, "root", &recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if root.Window() != nil {
		t.Error("bridge control has a window")
	}
	if root.ScreenPosition() != (host.Vector2{X: 100}) || root.Size() != (host.Vector2{X: 800, Y: 600}) {
		t.Errorf("root rect = %v %v", root.ScreenPosition(), root.Size())
	}

	w, _ := h.NewWindow(nil, "win")
	c, err := h.NewControl(w, "child", &recorder{})
	if err != nil {
		t.Fatal(err)
	}
	if c.Window() != w {
		t.Error("child control not inside its window")
	}
	if c.Size() != toVector(DefaultWindowSize) {
		t.Errorf("child size = %v, want window size", c.Size())
	}

	if _, err := h.NewControl(root, "bad", &recorder{}); err == nil {
		t.Error("control parented to a control was accepted")
	}
	if _, err := h.NewWindow(w, "nested"); err == nil {
		t.Error("nested window was accepted")
	}
}

func TestWindowResizeNotifiesControls(t *testing.T) {
	h := New()
	w, _ := h.NewWindow(nil, "win")
	rec := &recorder{}
	c, _ := h.NewControl(w, "c", rec)

	sw := w.(*Window)
	sw.SetMinSize(100, 100)
	w.SetSize(50, 300)
	if got := sw.Size(); got != image.Pt(100, 300) {
		t.Errorf("window size = %v, want clamped 100x300", got)
	}
	if c.Size() != (host.Vector2{X: 100, Y: 300}) {
		t.Errorf("control size = %v", c.Size())
	}
	w.SetPosition(10, 20)

	want := []host.Notification{host.NotificationResized, host.NotificationResized}
	if len(rec.notes) != len(want) {
		t.Fatalf("notes = %v, want %v", rec.notes, want)
	}
	if c.(*Control).Surface().Rect.Size() != image.Pt(100, 300) {
		t.Error("surface not reallocated")
	}

	c.Release()
	w.SetSize(10, 10)
	if len(rec.notes) != len(want) {
		t.Error("released control still notified")
	}
	if len(h.Controls()) != 0 {
		t.Error("released control still listed")
	}
}

func TestFocusMovesBetweenControls(t *testing.T) {
	h := New()
	ra, rb := &recorder{}, &recorder{}
	a, _ := h.NewControl(nil, "a", ra)
	w, _ := h.NewWindow(nil, "w")
	_, _ = h.NewControl(w, "b", rb)

	a.(*Control).Focus()
	a.(*Control).Focus()
	w.GrabFocus()
	if len(ra.notes) != 2 || ra.notes[0] != host.NotificationFocusEnter || ra.notes[1] != host.NotificationFocusExit {
		t.Errorf("a notes = %v, want [FocusEnter FocusExit]", ra.notes)
	}
	if len(rb.notes) != 1 || rb.notes[0] != host.NotificationFocusEnter {
		t.Errorf("b notes = %v, want [FocusEnter]", rb.notes)
	}

	b, _ := h.Control("b")
	b.Blur()
	b.Blur()
	if len(rb.notes) != 2 || rb.notes[1] != host.NotificationFocusExit {
		t.Errorf("b notes after blur = %v", rb.notes)
	}
}

func TestWindowChrome(t *testing.T) {
	h := New()
	hw, _ := h.NewWindow(nil, "w")
	w := hw.(*Window)
	var chrome gpucontext.WindowChrome = w

	chrome.Maximize()
	if !chrome.IsMaximized() {
		t.Error("Maximize did not maximize")
	}
	chrome.Maximize()
	if chrome.IsMaximized() {
		t.Error("second Maximize did not restore")
	}
	chrome.SetFrameless(true)
	chrome.SetFullscreen(true)
	if !chrome.IsFrameless() || !chrome.IsFullscreen() {
		t.Error("frameless/fullscreen not recorded")
	}

	if got := w.HitTest(1, 1); got != gpucontext.HitTestClient {
		t.Errorf("default hit test = %v", got)
	}
	chrome.SetHitTestCallback(func(x, y float64) gpucontext.HitTestResult { return gpucontext.HitTestCaption })
	if got := w.HitTest(1, 1); got != gpucontext.HitTestCaption {
		t.Errorf("hit test = %v, want caption", got)
	}

	chrome.Close()
	if !w.IsClosed() || w.IsVisible() {
		t.Error("Close did not hide the window")
	}
	w.Release()
	if _, ok := h.Window("w"); ok {
		t.Error("released window still listed")
	}
}

func TestDrawIgnoresForeignTextures(t *testing.T) {
	dst := image.NewRGBA(image.Rect(0, 0, 4, 4))
	canvas := &surfaceCanvas{dst: dst}
	canvas.DrawTextureRegion(foreignTexture{}, host.Rect2{Size: host.Vector2{X: 4, Y: 4}}, host.Rect2{Size: host.Vector2{X: 4, Y: 4}})
	for _, b := range dst.Pix {
		if b != 0 {
			t.Fatal("foreign texture was drawn")
		}
	}
}

type foreignTexture struct{}

func (foreignTexture) Width() int  { return 4 }
func (foreignTexture) Height() int { return 4 }

func TestDrawScalesRegions(t *testing.T) {
	tex, _ := newTexture(2, 2, solid(2, 2, green))
	dst := image.NewRGBA(image.Rect(0, 0, 8, 8))
	canvas := &surfaceCanvas{dst: dst}
	canvas.DrawTextureRegion(tex, host.Rect2{Size: host.Vector2{X: 8, Y: 8}}, host.Rect2{Size: host.Vector2{X: 2, Y: 2}})
	if got := dst.RGBAAt(6, 6); got != green {
		t.Errorf("scaled pixel = %v, want green", got)
	}
}

// bridgeRun drives a controller over a soft host through start-up and one
// frame carrying out.
func bridgeRun(t *testing.T, h *Host, out ui.FullOutput) *uibridge.Controller {
	t.Helper()
	ctx := uitest.New()
	c, err := uibridge.New(h, ctx, uibridge.WithClock(&stepClock{now: time.Unix(0, 0)}))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(c.Close)

	c.Tick(0)
	c.Tick(time.Millisecond)
	ctx.Push(out)
	ctx.RequestRepaintOf(ui.RootViewportID)
	c.Tick(16 * time.Millisecond)
	if err := h.Present(); err != nil {
		t.Fatalf("Present() error = %v", err)
	}
	return c
}

func whiteTexture() ui.TextureSet {
	return ui.TextureSet{
		ID:    ui.TextureID{Managed: true},
		Delta: ui.ImageDelta{Image: uitest.SolidImage(1, 1, ui.Color32{R: 255, G: 255, B: 255, A: 255})},
	}
}

func quad(x0, y0, x1, y1 float32) ui.ClippedShape {
	r := ui.Rect{Min: ui.Pos2{X: x0, Y: y0}, Max: ui.Pos2{X: x1, Y: y1}}
	clip := ui.Rect{Max: ui.Pos2{X: 10000, Y: 10000}}
	return uitest.Shape(clip, uitest.Quad(r, ui.Color32{R: 255, A: 255}, ui.TextureID{Managed: true}))
}

func TestBridgeRendersRootViewport(t *testing.T) {
	h := New(WithScreens(image.Rect(0, 0, 200, 100)))
	bridgeRun(t, h, ui.FullOutput{
		TexturesDelta: ui.TexturesDelta{Set: []ui.TextureSet{whiteTexture()}},
		Shapes:        []ui.ClippedShape{quad(10, 10, 30, 30)},
	})

	root, ok := h.Control("Viewport Root")
	if !ok {
		t.Fatal("root control not created")
	}
	if root.Redraws() == 0 {
		t.Fatal("root control never drawn")
	}
	img := root.Surface()
	if got := img.RGBAAt(20, 20); got != red {
		t.Errorf("quad pixel = %v, want red", got)
	}
	if got := img.RGBAAt(50, 50); got != (color.RGBA{}) {
		t.Errorf("background = %v, want transparent", got)
	}
}

func TestBridgeRendersWindowedViewport(t *testing.T) {
	h := New(WithScreens(image.Rect(0, 0, 300, 200)))
	id := ui.ViewportIDFrom("tool")
	bridgeRun(t, h, ui.FullOutput{
		TexturesDelta: ui.TexturesDelta{Set: []ui.TextureSet{whiteTexture()}},
		Shapes:        []ui.ClippedShape{quad(110, 60, 120, 70)},
		Viewports: map[ui.ViewportID]ui.ViewportOutput{
			id: {
				Parent: ui.RootViewportID,
				Builder: ui.ViewportBuilder{}.
					WithPosition(ui.Pos2{X: 100, Y: 50}).
					WithInnerSize(ui.Vec2{X: 64, Y: 32}),
			},
		},
	})

	w, ok := h.Window("Viewport " + id.String())
	if !ok {
		t.Fatal("viewport window not created")
	}
	if w.Position() != image.Pt(100, 50) || w.Size() != image.Pt(64, 32) {
		t.Errorf("window = %v %v", w.Position(), w.Size())
	}
	ctrl, _ := h.Control("Viewport Control " + id.String())
	img := ctrl.Surface()
	if got := img.RGBAAt(15, 15); got != red {
		t.Errorf("viewport pixel = %v, want red", got)
	}
	if got := img.RGBAAt(40, 5); got != (color.RGBA{}) {
		t.Errorf("viewport background = %v, want transparent", got)
	}
}

func TestBridgeReceivesInput(t *testing.T) {
	h := New(WithScreens(image.Rect(0, 0, 200, 100)))
	ctx := uitest.New()
	c, err := uibridge.New(h, ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	c.Tick(0)

	h.SetModifiers(gpucontext.ModShift)
	root, _ := h.Control("Viewport Root")
	root.Focus()
	if !root.Send(host.MouseMotionEvent{Position: host.Vector2{X: 3, Y: 4}}) {
		t.Fatal("motion not consumed")
	}
	c.Tick(time.Millisecond)

	raw, ok := ctx.LastInput()
	if !ok {
		t.Fatal("no frame begun")
	}
	if len(raw.Events) != 1 || raw.Events[0] != (ui.PointerMoved{Pos: ui.Pos2{X: 3, Y: 4}}) {
		t.Errorf("events = %#v", raw.Events)
	}
	if !raw.Modifiers.Shift {
		t.Error("host modifiers not forwarded")
	}
	if !raw.Focused {
		t.Error("focus not forwarded")
	}
}
