// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge/host"
	"github.com/gogpu/uibridge/ui"
)

// TextureLookup resolves UI texture ids to host textures.
type TextureLookup interface {
	Lookup(id ui.TextureID) (gpucontext.Texture, bool)
}

// MeshRenderer turns tessellated primitives into host canvas items.
//
// Canvas items are pooled: the pool is resized to the primitive count of
// each frame and item i always draws primitive i, so a stable UI reuses the
// same host handles frame after frame.
//
// MeshRenderer is not safe for concurrent use; the controller only calls it
// from the tick.
type MeshRenderer struct {
	rs     host.RenderingServer
	parent host.CanvasItem
	items  []host.CanvasItem

	debugLines bool
	log        func() *slog.Logger
}

// NewMeshRenderer creates a renderer whose canvas items are children of
// parent.
func NewMeshRenderer(rs host.RenderingServer, parent host.CanvasItem, opts ...Option) *MeshRenderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &MeshRenderer{
		rs:         rs,
		parent:     parent,
		debugLines: o.debugVertexLines,
		log:        o.logSource(),
	}
}

// Paint records prims into the pooled canvas items. Vertex positions are
// global; origin is subtracted so the global offset lands at the render
// target's top-left corner.
//
// A mesh referencing a missing texture is skipped with a warning. A
// *ui.PaintCallback primitive panics with ErrCallbackPrimitive.
func (m *MeshRenderer) Paint(prims []ui.ClippedPrimitive, textures TextureLookup, origin image.Point) {
	m.resize(len(prims))

	shift := host.Vector2{X: -float32(origin.X), Y: -float32(origin.Y)}
	for i, prim := range prims {
		item := m.items[i]
		m.rs.CanvasItemClear(item)

		switch p := prim.Primitive.(type) {
		case *ui.Mesh:
			if p.IsEmpty() {
				continue
			}
			tex, ok := textures.Lookup(p.TextureID)
			if !ok {
				m.log().Warn("uibridge: missing texture", "texture", p.TextureID, "primitive", i)
				continue
			}
			m.rs.CanvasItemSetClipRect(item, toRect2(prim.ClipRect, shift))
			m.paintMesh(item, p, tex, shift)
		case *ui.PaintCallback:
			panic(fmt.Errorf("%w: primitive %d at %v", ErrCallbackPrimitive, i, p.Rect))
		default:
			panic(fmt.Errorf("%w: primitive %d has type %T", ErrCallbackPrimitive, i, p))
		}
	}
}

// resize grows or shrinks the pool to n items.
func (m *MeshRenderer) resize(n int) {
	for i := len(m.items); i < n; i++ {
		item := m.rs.CanvasItemCreate()
		m.rs.CanvasItemSetParent(item, m.parent)
		m.rs.CanvasItemSetClip(item, true)
		m.rs.CanvasItemSetDrawIndex(item, i)
		m.items = append(m.items, item)
	}
	if n < len(m.items) {
		for _, item := range m.items[n:] {
			m.rs.FreeCanvasItem(item)
		}
		clear(m.items[n:])
		m.items = m.items[:n]
	}
}

func (m *MeshRenderer) paintMesh(item host.CanvasItem, mesh *ui.Mesh, tex gpucontext.Texture, shift host.Vector2) {
	n := len(mesh.Vertices)
	tris := host.TriangleArray{
		Indices: make([]int32, len(mesh.Indices)),
		Points:  make([]host.Vector2, n),
		Colors:  make([]host.Color, n),
		UVs:     make([]host.Vector2, n),
		Texture: tex,
	}
	for i, v := range mesh.Vertices {
		tris.Points[i] = host.Vector2{X: v.Pos.X, Y: v.Pos.Y}.Add(shift)
		tris.UVs[i] = host.Vector2{X: v.UV.X, Y: v.UV.Y}
		tris.Colors[i] = host.Color{
			R: float32(v.Color.R) / 255,
			G: float32(v.Color.G) / 255,
			B: float32(v.Color.B) / 255,
			A: float32(v.Color.A) / 255,
		}
	}
	for i, idx := range mesh.Indices {
		tris.Indices[i] = int32(idx) //nolint:gosec // index counts are bounded by vertex count
	}

	if m.debugLines {
		for f := 0; f+2 < len(tris.Indices); f += 3 {
			p0 := tris.Points[tris.Indices[f]]
			p1 := tris.Points[tris.Indices[f+1]]
			p2 := tris.Points[tris.Indices[f+2]]
			m.rs.CanvasItemAddLine(item, p0, p1, host.Magenta)
			m.rs.CanvasItemAddLine(item, p1, p2, host.Magenta)
			m.rs.CanvasItemAddLine(item, p2, p0, host.Magenta)
		}
	}

	m.rs.CanvasItemAddTriangleArray(item, tris)
}

// Len returns the number of pooled canvas items.
func (m *MeshRenderer) Len() int {
	return len(m.items)
}

// Close frees every pooled canvas item.
func (m *MeshRenderer) Close() {
	m.resize(0)
}

func toRect2(r ui.Rect, shift host.Vector2) host.Rect2 {
	return host.Rect2{
		Position: host.Vector2{X: r.Min.X, Y: r.Min.Y}.Add(shift),
		Size:     host.Vector2{X: r.Width(), Y: r.Height()},
	}
}
