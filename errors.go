// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import "errors"

// Errors returned or raised by the bridge.
var (
	// ErrNilHost is returned by New when no host is given.
	ErrNilHost = errors.New("uibridge: nil host")

	// ErrNilContext is returned by New when no UI context is given.
	ErrNilContext = errors.New("uibridge: nil ui context")

	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("uibridge: controller is closed")

	// ErrRootViewport is returned when a caller tries to spawn or close
	// the root viewport, which the controller owns.
	ErrRootViewport = errors.New("uibridge: root viewport is managed by the controller")

	// ErrTexturePatchMissing reports a patch delta for a texture that was
	// never created. This is a contract violation by the UI library.
	ErrTexturePatchMissing = errors.New("uibridge: patch of unknown texture")

	// ErrTextureNotFound reports a free of a texture that does not exist,
	// usually because its creation failed earlier.
	ErrTextureNotFound = errors.New("uibridge: texture not found")

	// ErrTextureCreationFailed reports that the host could not create a
	// texture from an image delta.
	ErrTextureCreationFailed = errors.New("uibridge: texture creation failed")

	// ErrInvalidImage reports an image delta whose pixel count does not
	// match its dimensions.
	ErrInvalidImage = errors.New("uibridge: invalid image data")

	// ErrCallbackPrimitive is the panic value raised when a custom paint
	// callback primitive reaches the mesh renderer, which cannot draw it.
	ErrCallbackPrimitive = errors.New("uibridge: paint callback primitives are not implemented")
)
