// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "image"

// FullOutput is what the UI library produces at the end of a frame.
type FullOutput struct {
	// TexturesDelta describes how the texture atlas changed this frame.
	TexturesDelta TexturesDelta

	// Shapes are the untessellated draw instructions of the frame.
	Shapes []ClippedShape

	// PixelsPerPoint is the scale the shapes were laid out for.
	PixelsPerPoint float32

	// Viewports lists every viewport the library wants to exist.
	Viewports map[ViewportID]ViewportOutput
}

// ViewportOutput is the per-viewport part of a FullOutput.
type ViewportOutput struct {
	// Parent is the viewport this one was spawned from.
	Parent ViewportID

	// Builder is the desired window configuration.
	Builder ViewportBuilder

	// UICallback, when set, draws the viewport's content on the shared
	// context. It is invoked by the bridge when the viewport is due for a
	// repaint.
	UICallback func(Context)

	// Commands are explicit window commands issued this frame.
	Commands []ViewportCommand
}

// TexturesDelta is the set of texture changes produced by one frame.
// Set entries must be applied before painting; Free entries after.
type TexturesDelta struct {
	Set  []TextureSet
	Free []TextureID
}

// IsEmpty reports whether the delta carries no change.
func (d TexturesDelta) IsEmpty() bool {
	return len(d.Set) == 0 && len(d.Free) == 0
}

// TextureSet creates, replaces or patches a texture.
type TextureSet struct {
	ID    TextureID
	Delta ImageDelta
}

// ImageDelta is either a whole image or a patch of an existing one.
type ImageDelta struct {
	// Image holds the new pixels.
	Image ImageData

	// Pos is the patch offset. Nil means the whole texture is replaced.
	Pos *image.Point
}

// IsWhole reports whether the delta replaces the entire texture.
func (d ImageDelta) IsWhole() bool {
	return d.Pos == nil
}

// ImageData is the pixel payload of an ImageDelta. The concrete types are
// *ColorImage and *FontImage.
type ImageData interface {
	// Size returns width and height in pixels.
	Size() (width, height int)

	isImageData()
}

// Color32 is an 8-bit-per-channel color with premultiplied alpha.
type Color32 struct {
	R, G, B, A uint8
}

// Unmultiplied returns the color with alpha divided back out.
func (c Color32) Unmultiplied() [4]uint8 {
	switch c.A {
	case 0:
		return [4]uint8{}
	case 255:
		return [4]uint8{c.R, c.G, c.B, c.A}
	}
	a := uint32(c.A)
	un := func(v uint8) uint8 {
		return uint8(min(255, (uint32(v)*255+a/2)/a))
	}
	return [4]uint8{un(c.R), un(c.G), un(c.B), c.A}
}

// ColorImage is a full-color image.
type ColorImage struct {
	Width, Height int
	// Pixels is row-major, Width*Height long.
	Pixels []Color32
}

// Size implements ImageData.
func (im *ColorImage) Size() (int, int) { return im.Width, im.Height }

func (*ColorImage) isImageData() {}

// FontImage is a single-channel coverage image used by the font atlas.
type FontImage struct {
	Width, Height int
	// Pixels holds coverage values in [0, 1], row-major.
	Pixels []float32
}

// Size implements ImageData.
func (im *FontImage) Size() (int, int) { return im.Width, im.Height }

func (*FontImage) isImageData() {}

// Shape is an untessellated draw instruction. Its contents are private to
// the UI library; the bridge only hands shapes back to Context.Tessellate.
type Shape any

// ClippedShape is a shape together with its clip rectangle.
type ClippedShape struct {
	ClipRect Rect
	Shape    Shape
}

// ClippedPrimitive is a tessellated primitive with its clip rectangle.
type ClippedPrimitive struct {
	ClipRect  Rect
	Primitive Primitive
}

// Primitive is the tagged union of renderable primitives: *Mesh or
// *PaintCallback.
type Primitive interface {
	isPrimitive()
}

// Vertex is a single mesh vertex.
type Vertex struct {
	Pos   Pos2
	UV    Pos2
	Color Color32
}

// Mesh is an indexed triangle list referencing one texture.
type Mesh struct {
	Indices   []uint32
	Vertices  []Vertex
	TextureID TextureID
}

// IsEmpty reports whether the mesh has nothing to draw.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) == 0 || len(m.Vertices) == 0
}

// PaintCallback asks the backend to run custom rendering inside Rect.
type PaintCallback struct {
	Rect     Rect
	Callback any
}

func (*Mesh) isPrimitive()          {}
func (*PaintCallback) isPrimitive() {}
