// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"image"
	"slices"
	"sync"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/uibridge/ui"
)

// SharedContext is the state shared by the controller and every viewport's
// IOBridge. It lives exactly as long as its Controller.
//
// Each field guards itself; no lock is ever held while calling into the UI
// context, because the context may call back into the repaint schedule.
type SharedContext struct {
	ctx ui.Context

	screen   ScreenBuffer
	focus    focusState
	inbox    EventInbox
	schedule RepaintSchedule
}

func newSharedContext(ctx ui.Context) *SharedContext {
	return &SharedContext{
		ctx:      ctx,
		schedule: RepaintSchedule{deadlines: make(map[ui.ViewportID]time.Time)},
	}
}

// UI returns the UI library context.
func (s *SharedContext) UI() ui.Context { return s.ctx }

// Screen returns the shared render-target description.
func (s *SharedContext) Screen() *ScreenBuffer { return &s.screen }

// Inbox returns the queue of input events waiting for the next frame.
func (s *SharedContext) Inbox() *EventInbox { return &s.inbox }

// Schedule returns the repaint schedule.
func (s *SharedContext) Schedule() *RepaintSchedule { return &s.schedule }

// Focus returns the viewport that most recently gained focus and whether it
// still holds it.
func (s *SharedContext) Focus() (ui.ViewportID, bool) {
	return s.focus.get()
}

type focusState struct {
	mu      sync.Mutex
	id      ui.ViewportID
	focused bool
}

func (f *focusState) get() (ui.ViewportID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.id, f.focused
}

func (f *focusState) set(id ui.ViewportID, focused bool) {
	f.mu.Lock()
	f.id, f.focused = id, focused
	f.mu.Unlock()
}

// release clears the focus flag only if id still owns the focus.
func (f *focusState) release(id ui.ViewportID) {
	f.mu.Lock()
	if f.id == id {
		f.focused = false
	}
	f.mu.Unlock()
}

// resolve returns the focus tuple, resetting it to (ROOT, false) when valid
// rejects the stored id.
func (f *focusState) resolve(valid func(ui.ViewportID) bool) (ui.ViewportID, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !valid(f.id) {
		f.id, f.focused = ui.RootViewportID, false
	}
	return f.id, f.focused
}

// EventInbox is an unbounded multi-producer, single-consumer FIFO of UI
// events. Push never blocks on the consumer.
type EventInbox struct {
	mu     sync.Mutex
	events []ui.Event
}

// Push appends events to the queue.
func (q *EventInbox) Push(events ...ui.Event) {
	if len(events) == 0 {
		return
	}
	q.mu.Lock()
	q.events = append(q.events, events...)
	q.mu.Unlock()
}

// Drain removes and returns every queued event, oldest first.
func (q *EventInbox) Drain() []ui.Event {
	q.mu.Lock()
	events := q.events
	q.events = nil
	q.mu.Unlock()
	return events
}

// Len returns the number of queued events.
func (q *EventInbox) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// RepaintSchedule maps viewports to the time they must next be repainted.
type RepaintSchedule struct {
	mu        sync.Mutex
	deadlines map[ui.ViewportID]time.Time
}

// Set records a deadline for id, replacing any previous one.
func (s *RepaintSchedule) Set(id ui.ViewportID, at time.Time) {
	s.mu.Lock()
	s.deadlines[id] = at
	s.mu.Unlock()
}

// Take removes and returns the deadline of id.
func (s *RepaintSchedule) Take(id ui.ViewportID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.deadlines[id]
	if ok {
		delete(s.deadlines, id)
	}
	return at, ok
}

// TakeDue removes and returns, in ascending order, every id whose deadline
// is at or before now. Later deadlines are left in place.
func (s *RepaintSchedule) TakeDue(now time.Time) []ui.ViewportID {
	s.mu.Lock()
	defer s.mu.Unlock()
	var due []ui.ViewportID
	for id, at := range s.deadlines {
		if !at.After(now) {
			due = append(due, id)
			delete(s.deadlines, id)
		}
	}
	slices.Sort(due)
	return due
}

// Remove drops any deadline of id.
func (s *RepaintSchedule) Remove(id ui.ViewportID) {
	s.mu.Lock()
	delete(s.deadlines, id)
	s.mu.Unlock()
}

// Deadline returns the deadline of id, if any.
func (s *RepaintSchedule) Deadline(id ui.ViewportID) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.deadlines[id]
	return at, ok
}

// AnyDue reports whether some deadline is at or before now.
func (s *RepaintSchedule) AnyDue(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, at := range s.deadlines {
		if !at.After(now) {
			return true
		}
	}
	return false
}

// Len returns the number of pending deadlines.
func (s *RepaintSchedule) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.deadlines)
}

// ScreenBuffer describes the shared render target every viewport samples
// from. It covers the bounding box of all physical displays; its offset is
// the desktop position of its top-left pixel.
type ScreenBuffer struct {
	mu      sync.Mutex
	offset  image.Point
	texture gpucontext.Texture
}

// Get returns the global offset and the current render-target texture.
func (b *ScreenBuffer) Get() (image.Point, gpucontext.Texture) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.offset, b.texture
}

func (b *ScreenBuffer) set(offset image.Point, tex gpucontext.Texture) {
	b.mu.Lock()
	b.offset, b.texture = offset, tex
	b.mu.Unlock()
}
