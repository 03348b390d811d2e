// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import "math"

// Pos2 is a position in logical points.
type Pos2 struct {
	X, Y float32
}

// Vec2 is a size or offset in logical points.
type Vec2 struct {
	X, Y float32
}

// Add returns p translated by v.
func (p Pos2) Add(v Vec2) Pos2 {
	return Pos2{X: p.X + v.X, Y: p.Y + v.Y}
}

// Sub returns the offset from q to p.
func (p Pos2) Sub(q Pos2) Vec2 {
	return Vec2{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned rectangle given by its min and max corners.
type Rect struct {
	Min, Max Pos2
}

// NothingRect is the empty rectangle that any point extends into a valid one.
var NothingRect = Rect{
	Min: Pos2{X: math.MaxFloat32, Y: math.MaxFloat32},
	Max: Pos2{X: -math.MaxFloat32, Y: -math.MaxFloat32},
}

// RectFromMinSize builds a rectangle from its origin and size.
func RectFromMinSize(min Pos2, size Vec2) Rect {
	return Rect{Min: min, Max: min.Add(size)}
}

// Size returns the width and height of r.
func (r Rect) Size() Vec2 {
	return r.Max.Sub(r.Min)
}

// Width returns the horizontal extent of r.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent of r.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// IsPositive reports whether r has a strictly positive area.
func (r Rect) IsPositive() bool {
	return r.Max.X > r.Min.X && r.Max.Y > r.Min.Y
}

// Extend returns the smallest rectangle containing both r and p.
func (r Rect) Extend(p Pos2) Rect {
	return Rect{
		Min: Pos2{X: min(r.Min.X, p.X), Y: min(r.Min.Y, p.Y)},
		Max: Pos2{X: max(r.Max.X, p.X), Y: max(r.Max.Y, p.Y)},
	}
}

// Translate returns r moved by v.
func (r Rect) Translate(v Vec2) Rect {
	return Rect{Min: r.Min.Add(v), Max: r.Max.Add(v)}
}
