// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"image"

	"github.com/gogpu/gg"
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge"
	"github.com/gogpu/uibridge/host"
)

// RenderTarget is an offscreen gg surface. Canvas items parented to its
// root item are rasterized into it by Render.
//
// RenderTarget is NOT safe for concurrent use.
type RenderTarget struct {
	host    *Host
	ctx     *gg.Context
	root    host.CanvasItem
	texture *Texture
	width   int
	height  int
	closed  bool
}

func newRenderTarget(h *Host, width, height int) (*RenderTarget, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	tex, err := newTexture(width, height, nil)
	if err != nil {
		return nil, err
	}
	return &RenderTarget{
		host:    h,
		ctx:     gg.NewContext(width, height),
		root:    h.rs.CanvasItemCreate(),
		texture: tex,
		width:   width,
		height:  height,
	}, nil
}

// Name implements host.Node.
func (t *RenderTarget) Name() string { return "RenderTarget" }

// Size returns the surface size in pixels.
func (t *RenderTarget) Size() (width, height int) { return t.width, t.height }

// Resize changes the surface size. The previous texture is destroyed and
// a new one is returned by Texture.
func (t *RenderTarget) Resize(width, height int) {
	if t.closed {
		return
	}
	if width <= 0 || height <= 0 {
		uibridge.Logger().Warn("soft: invalid render target size", "width", width, "height", height)
		return
	}
	if t.width == width && t.height == height {
		return
	}
	if err := t.ctx.Resize(width, height); err != nil {
		uibridge.Logger().Warn("soft: render target resize failed", "err", err)
		return
	}
	tex, err := newTexture(width, height, nil)
	if err != nil {
		uibridge.Logger().Warn("soft: render target texture failed", "err", err)
		return
	}
	t.texture.Destroy()
	t.texture = tex
	t.width = width
	t.height = height
	uibridge.Logger().Debug("soft: render target resized", "width", width, "height", height)
}

// Texture implements host.RenderTarget.
func (t *RenderTarget) Texture() gpucontext.Texture { return t.texture }

// CanvasItem implements host.RenderTarget.
func (t *RenderTarget) CanvasItem() host.CanvasItem { return t.root }

// Render clears the surface, draws every child item of the root in draw
// index order and publishes the result to Texture.
func (t *RenderTarget) Render() error {
	if t.closed {
		return ErrReleased
	}
	t.ctx.Clear()
	for _, it := range t.host.rs.children(t.root) {
		if err := t.drawItem(it); err != nil {
			return err
		}
	}
	img, ok := t.ctx.Image().(*image.RGBA)
	if !ok {
		return fmt.Errorf("soft: unexpected surface image %T", t.ctx.Image())
	}
	t.texture.replace(img)
	return nil
}

func (t *RenderTarget) drawItem(it item) error {
	t.ctx.Push()
	defer t.ctx.Pop()
	if it.clip {
		r := it.clipRect
		t.ctx.ClipRect(float64(r.Position.X), float64(r.Position.Y), float64(r.Size.X), float64(r.Size.Y))
	}
	for _, tris := range it.triangles {
		if err := t.fillTriangles(tris); err != nil {
			return err
		}
	}
	if len(it.lines) > 0 {
		t.ctx.SetLineWidth(1)
		for _, l := range it.lines {
			t.ctx.SetRGBA(float64(l.color.R), float64(l.color.G), float64(l.color.B), float64(l.color.A))
			t.ctx.MoveTo(float64(l.from.X), float64(l.from.Y))
			t.ctx.LineTo(float64(l.to.X), float64(l.to.Y))
			if err := t.ctx.Stroke(); err != nil {
				return fmt.Errorf("soft: stroke: %w", err)
			}
		}
	}
	return nil
}

// fillTriangles fills each triangle flat with its average vertex color
// modulated by the texel at the centroid UV.
func (t *RenderTarget) fillTriangles(tris host.TriangleArray) error {
	tex, _ := tris.Texture.(*Texture)
	n := len(tris.Points)
	for i := 0; i+2 < len(tris.Indices); i += 3 {
		a, b, c := int(tris.Indices[i]), int(tris.Indices[i+1]), int(tris.Indices[i+2])
		if a < 0 || b < 0 || c < 0 || a >= n || b >= n || c >= n {
			return fmt.Errorf("%w: triangle %d", ErrIndexRange, i/3)
		}

		var col host.Color
		if len(tris.Colors) == n {
			col = averageColor(tris.Colors[a], tris.Colors[b], tris.Colors[c])
		} else {
			col = host.Color{R: 1, G: 1, B: 1, A: 1}
		}
		if tex != nil && len(tris.UVs) == n {
			u := (tris.UVs[a].X + tris.UVs[b].X + tris.UVs[c].X) / 3
			v := (tris.UVs[a].Y + tris.UVs[b].Y + tris.UVs[c].Y) / 3
			s := tex.sample(u, v)
			col.R *= float32(s.R) / 255
			col.G *= float32(s.G) / 255
			col.B *= float32(s.B) / 255
			col.A *= float32(s.A) / 255
		}
		if col.A <= 0 {
			continue
		}

		pa, pb, pc := tris.Points[a], tris.Points[b], tris.Points[c]
		t.ctx.SetRGBA(float64(col.R), float64(col.G), float64(col.B), float64(col.A))
		t.ctx.MoveTo(float64(pa.X), float64(pa.Y))
		t.ctx.LineTo(float64(pb.X), float64(pb.Y))
		t.ctx.LineTo(float64(pc.X), float64(pc.Y))
		t.ctx.ClosePath()
		if err := t.ctx.Fill(); err != nil {
			return fmt.Errorf("soft: fill: %w", err)
		}
	}
	return nil
}

func averageColor(a, b, c host.Color) host.Color {
	return host.Color{
		R: (a.R + b.R + c.R) / 3,
		G: (a.G + b.G + c.G) / 3,
		B: (a.B + b.B + c.B) / 3,
		A: (a.A + b.A + c.A) / 3,
	}
}

// Release frees the root item and the surface. Release is idempotent.
func (t *RenderTarget) Release() {
	if t.closed {
		return
	}
	t.closed = true
	t.host.rs.FreeCanvasItem(t.root)
	t.texture.Destroy()
	if t.ctx != nil {
		_ = t.ctx.Close()
		t.ctx = nil
	}
	t.host.dropTarget(t)
}
