// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package soft is a software host.Host for headless runs and tests.
//
// Controls and windows live in memory. Canvas items are rasterized into the
// render target with gg, one flat-shaded path per triangle, and each control
// keeps an RGBA surface that its handler blits into on Present.
//
//	h := soft.New(soft.WithScreens(image.Rect(0, 0, 1280, 720)))
//	c, _ := uibridge.New(h, ctx)
//	for range frames {
//	    c.Tick(16 * time.Millisecond)
//	    _ = h.Present()
//	}
//
// Input is injected with Control.Send, focus with Control.Focus and resizes
// with Control.SetRect or Window.SetSize.
package soft
