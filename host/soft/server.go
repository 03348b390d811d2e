// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"cmp"
	"slices"
	"sync"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
)

type line struct {
	from, to host.Vector2
	color    host.Color
}

type item struct {
	id        host.CanvasItem
	parent    host.CanvasItem
	clip      bool
	clipRect  host.Rect2
	drawIndex int
	triangles []host.TriangleArray
	lines     []line
}

// RenderingServer stores canvas items and their recorded commands.
// Items are drawn by RenderTarget.Render.
type RenderingServer struct {
	mu    sync.Mutex
	next  host.CanvasItem
	items map[host.CanvasItem]*item
}

func newRenderingServer() *RenderingServer {
	return &RenderingServer{items: make(map[host.CanvasItem]*item)}
}

// CanvasItemCreate allocates an empty item.
func (s *RenderingServer) CanvasItemCreate() host.CanvasItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	s.items[s.next] = &item{}
	return s.next
}

func (s *RenderingServer) with(id host.CanvasItem, fn func(*item)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		uibridge.Logger().Warn("soft: unknown canvas item", "item", id)
		return
	}
	fn(it)
}

// CanvasItemSetParent implements host.RenderingServer.
func (s *RenderingServer) CanvasItemSetParent(id, parent host.CanvasItem) {
	s.with(id, func(it *item) { it.parent = parent })
}

// CanvasItemSetClip implements host.RenderingServer.
func (s *RenderingServer) CanvasItemSetClip(id host.CanvasItem, clip bool) {
	s.with(id, func(it *item) { it.clip = clip })
}

// CanvasItemSetClipRect implements host.RenderingServer.
func (s *RenderingServer) CanvasItemSetClipRect(id host.CanvasItem, rect host.Rect2) {
	s.with(id, func(it *item) { it.clipRect = rect })
}

// CanvasItemSetDrawIndex implements host.RenderingServer.
func (s *RenderingServer) CanvasItemSetDrawIndex(id host.CanvasItem, index int) {
	s.with(id, func(it *item) { it.drawIndex = index })
}

// CanvasItemClear implements host.RenderingServer.
func (s *RenderingServer) CanvasItemClear(id host.CanvasItem) {
	s.with(id, func(it *item) {
		it.triangles = it.triangles[:0]
		it.lines = it.lines[:0]
	})
}

// CanvasItemAddTriangleArray implements host.RenderingServer.
func (s *RenderingServer) CanvasItemAddTriangleArray(id host.CanvasItem, tris host.TriangleArray) {
	s.with(id, func(it *item) { it.triangles = append(it.triangles, tris) })
}

// CanvasItemAddLine implements host.RenderingServer.
func (s *RenderingServer) CanvasItemAddLine(id host.CanvasItem, from, to host.Vector2, color host.Color) {
	s.with(id, func(it *item) { it.lines = append(it.lines, line{from: from, to: to, color: color}) })
}

// FreeCanvasItem implements host.RenderingServer.
func (s *RenderingServer) FreeCanvasItem(id host.CanvasItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		uibridge.Logger().Warn("soft: free of unknown canvas item", "item", id)
		return
	}
	delete(s.items, id)
}

// Len returns the number of allocated items.
func (s *RenderingServer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// children returns copies of parent's child items ordered by draw index.
func (s *RenderingServer) children(parent host.CanvasItem) []item {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []item
	for id, it := range s.items {
		if it.parent == parent {
			c := *it
			c.id = id
			c.triangles = slices.Clone(it.triangles)
			c.lines = slices.Clone(it.lines)
			out = append(out, c)
		}
	}
	slices.SortFunc(out, func(a, b item) int {
		return cmp.Or(cmp.Compare(a.drawIndex, b.drawIndex), cmp.Compare(a.id, b.id))
	})
	return out
}
