// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uitest

import "github.com/gogpu/uibridge/ui"

// WhiteUV is the atlas coordinate of an opaque white texel.
var WhiteUV = ui.Pos2{}

// Quad returns a two-triangle mesh covering r with a flat color.
func Quad(r ui.Rect, color ui.Color32, tex ui.TextureID) *ui.Mesh {
	v := func(x, y float32) ui.Vertex {
		return ui.Vertex{Pos: ui.Pos2{X: x, Y: y}, UV: WhiteUV, Color: color}
	}
	return &ui.Mesh{
		Indices: []uint32{0, 1, 2, 0, 2, 3},
		Vertices: []ui.Vertex{
			v(r.Min.X, r.Min.Y),
			v(r.Max.X, r.Min.Y),
			v(r.Max.X, r.Max.Y),
			v(r.Min.X, r.Max.Y),
		},
		TextureID: tex,
	}
}

// Shape wraps a primitive so it passes through Context.Tessellate.
func Shape(clip ui.Rect, p ui.Primitive) ui.ClippedShape {
	return ui.ClippedShape{ClipRect: clip, Shape: p}
}

// SolidImage returns a w×h color image filled with c.
func SolidImage(w, h int, c ui.Color32) *ui.ColorImage {
	px := make([]ui.Color32, w*h)
	for i := range px {
		px[i] = c
	}
	return &ui.ColorImage{Width: w, Height: h, Pixels: px}
}
