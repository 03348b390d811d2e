// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"bytes"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/uibridge/internal/testhost"
	"github.com/gogpu/uibridge/ui"
	"github.com/gogpu/uibridge/ui/uitest"
)

// fakeClock is a manually advanced host.Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

// syncBuffer is a bytes.Buffer safe for use as a log sink.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type harness struct {
	c     *Controller
	host  *testhost.Host
	ui    *uitest.Context
	clock *fakeClock
	logs  *syncBuffer
}

func newHarness(t *testing.T, opts ...Option) *harness {
	t.Helper()
	h := &harness{
		host:  testhost.New(),
		ui:    uitest.New(),
		clock: newFakeClock(),
		logs:  &syncBuffer{},
	}
	logger := slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	all := append([]Option{WithClock(h.clock), WithLogger(logger)}, opts...)

	c, err := New(h.host, h.ui, all...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.c = c
	t.Cleanup(c.Close)
	return h
}

// start runs the first two ticks: spawn the root viewport, then begin the
// first frame.
func (h *harness) start(t *testing.T) {
	t.Helper()
	h.c.Tick(0)
	h.c.Tick(time.Millisecond)
	if !h.ui.InFrame() {
		t.Fatal("no frame in flight after start")
	}
}

// frame queues out as the result of the frame in flight, requests a root
// repaint so the tick is not idle, and ticks.
func (h *harness) frame(out ui.FullOutput) {
	h.ui.Push(out)
	h.ui.RequestRepaintOf(ui.RootViewportID)
	h.c.Tick(16 * time.Millisecond)
}

func (h *harness) hasLevel(level string) bool {
	return strings.Contains(h.logs.String(), "level="+level)
}

func count(calls []string, prefix string) int {
	n := 0
	for _, c := range calls {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func indexOf(calls []string, call string) int {
	return slices.Index(calls, call)
}

func viewports(ids ...ui.ViewportID) map[ui.ViewportID]ui.ViewportOutput {
	out := make(map[ui.ViewportID]ui.ViewportOutput, len(ids))
	for _, id := range ids {
		out[id] = ui.ViewportOutput{Parent: ui.RootViewportID}
	}
	return out
}
