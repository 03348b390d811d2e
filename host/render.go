// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package host

import "github.com/gogpu/gpucontext"

// Vector2 is a 2D vector in pixels.
type Vector2 struct {
	X, Y float32
}

// Add returns v+o.
func (v Vector2) Add(o Vector2) Vector2 {
	return Vector2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Rect2 is a rectangle given by position and size.
type Rect2 struct {
	Position Vector2
	Size     Vector2
}

// End returns the corner opposite to Position.
func (r Rect2) End() Vector2 {
	return r.Position.Add(r.Size)
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Magenta is used for debug overlays.
var Magenta = Color{R: 1, G: 0, B: 1, A: 1}

// CanvasItem is a handle to a host draw-command list.
type CanvasItem uint64

// TriangleArray is an indexed, textured, vertex-colored triangle list.
type TriangleArray struct {
	Indices []int32
	Points  []Vector2
	Colors  []Color
	UVs     []Vector2
	Texture gpucontext.Texture
}

// RenderingServer is the host's 2D rendering server.
//
// Canvas items are not garbage collected: every item returned by
// CanvasItemCreate must eventually be passed to FreeCanvasItem.
type RenderingServer interface {
	CanvasItemCreate() CanvasItem
	CanvasItemSetParent(item, parent CanvasItem)
	CanvasItemSetClip(item CanvasItem, clip bool)
	CanvasItemSetClipRect(item CanvasItem, rect Rect2)
	CanvasItemSetDrawIndex(item CanvasItem, index int)

	// CanvasItemClear removes every command recorded on item.
	CanvasItemClear(item CanvasItem)
	CanvasItemAddTriangleArray(item CanvasItem, tris TriangleArray)
	CanvasItemAddLine(item CanvasItem, from, to Vector2, color Color)

	FreeCanvasItem(item CanvasItem)
}
