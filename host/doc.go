// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package host defines what uibridge needs from the host application's
// scene tree, rendering server and display/input services.
//
// Host objects are not owned by Go value semantics. Every [Node] must be
// released explicitly, and children must be released before their parent:
// a viewport's [Control] goes before the [Window] that contains it.
//
// Texture creation and update follow the gpucontext contracts
// ([gpucontext.TextureCreator], [gpucontext.TextureUpdater],
// [gpucontext.TextureRegionUpdater]) so that any gogpu-compatible renderer
// can serve as a host.
package host
