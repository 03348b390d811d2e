// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import "errors"

var (
	// ErrInvalidDimensions is returned for non-positive sizes and regions
	// outside a texture.
	ErrInvalidDimensions = errors.New("soft: invalid dimensions")

	// ErrDataSize is returned when pixel data does not match the size.
	ErrDataSize = errors.New("soft: pixel data size mismatch")

	// ErrTextureDestroyed is returned when updating a destroyed texture.
	ErrTextureDestroyed = errors.New("soft: texture destroyed")

	// ErrReleased is returned when using a released node.
	ErrReleased = errors.New("soft: node released")

	// ErrIndexRange is returned for triangle indices outside the vertex list.
	ErrIndexRange = errors.New("soft: triangle index out of range")

	// ErrInvalidParent is returned when a parent node is not a soft node.
	ErrInvalidParent = errors.New("soft: invalid parent node")
)
