// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package uibridge drives an immediate-mode UI library inside a host
// application's scene tree.
//
// # Overview
//
// The UI library is a black box behind [ui.Context]: it takes a
// [ui.RawInput] at the start of a frame and returns a [ui.FullOutput] at the
// end. The host is reached through the interfaces in package host: controls,
// windows, a 2D rendering server and a display server.
//
// A [Controller] ties the two together. Once per host frame, [Controller.Tick]
//
//   - ends the previous UI frame,
//   - spawns, patches and despawns host windows so that every declared
//     viewport has exactly one control (and, unless it is the root, one
//     window),
//   - uploads texture deltas into a [TextureRegistry],
//   - records tessellated meshes on pooled canvas items with a
//     [MeshRenderer], and
//   - begins the next frame with the input collected by each viewport's
//     [IOBridge].
//
// Ticks with no repaint due are free: nothing in the host tree changes.
//
// # Quick Start
//
//	c, err := uibridge.New(h, ctx,
//	    uibridge.WithMaxTextureSide(4096),
//	)
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	for frame := range frames {
//	    c.Tick(frame.Delta)
//	}
//
// # Coordinates
//
// The UI lays out in global desktop coordinates. All viewports render into a
// single render target covering the bounding box of the physical displays;
// each control then draws its own rectangle of that target.
//
// # Logging
//
// The package is silent by default. Use [SetLogger] to route diagnostics to
// a [log/slog] handler, or [WithLogger] for a single controller.
//
// # Configuration
//
// Options can be set in code or loaded from a YAML or TOML file with
// [LoadConfig]:
//
//	max_texture_side: 4096
//	debug_vertex_lines: true
//	font_gamma: 0.55
//	log_level: debug
package uibridge
