// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ui defines the boundary between uibridge and an immediate-mode UI
// library.
//
// The UI library is treated as a black box: every frame it receives a
// [RawInput] and, at the end of the frame, produces a [FullOutput] holding
// the shapes to draw, the viewports it wants to exist and the incremental
// texture atlas changes. This package only carries those values; layout,
// widgets and tessellation belong to the library behind [Context].
//
// # Coordinates
//
// All positions are logical points in global desktop coordinates. The bridge
// always reports a pixel density of 1, so points and physical pixels match.
//
// # Viewports
//
// A viewport is an independent top-level surface identified by a
// [ViewportID]. [RootViewportID] is always present; every other viewport is
// declared by the library each frame through [FullOutput.Viewports] and
// disappears as soon as it is no longer declared.
package ui
