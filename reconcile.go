// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"errors"
	"maps"
	"slices"

	"github.com/gogpu/uibridge/ui"
)

// reconcile applies the output of a finished frame: it brings the live
// viewport set in line with out.Viewports, runs the deferred callbacks of
// viewports whose repaint is due, and renders out into the shared target.
func (c *Controller) reconcile(out ui.FullOutput) {
	c.syncViewports(out.Viewports)
	repainted := c.runDueCallbacks(out.Viewports)

	for _, set := range out.TexturesDelta.Set {
		if err := c.textures.Apply(set); err != nil {
			c.logTextureError("uibridge: texture set failed", set.ID, err)
		}
	}

	ppp := out.PixelsPerPoint
	if ppp <= 0 {
		ppp = 1
	}
	prims := c.shared.ctx.Tessellate(out.Shapes, ppp)
	offset, _ := c.shared.screen.Get()
	c.mesh.Paint(prims, c.textures, offset)

	for _, id := range out.TexturesDelta.Free {
		if err := c.textures.Free(id); err != nil {
			c.logTextureError("uibridge: texture free failed", id, err)
		}
	}

	for _, v := range repainted {
		v.control.QueueRedraw()
	}
}

// syncViewports despawns viewports missing from declared, spawns the new
// ones and patches the rest. The root viewport is never despawned.
func (c *Controller) syncViewports(declared map[ui.ViewportID]ui.ViewportOutput) {
	for _, id := range c.Viewports() {
		if _, ok := declared[id]; !ok && !id.IsRoot() {
			c.despawn(id)
		}
	}

	if _, ok := c.Viewport(ui.RootViewportID); !ok {
		if _, err := c.spawn(ui.RootViewportID, nil, ui.ViewportBuilder{}); err != nil {
			c.log().Warn("uibridge: root viewport spawn failed", "err", err)
		}
	}

	for _, id := range slices.Sorted(maps.Keys(declared)) {
		out := declared[id]
		var parent *ui.ViewportID
		if !id.IsRoot() {
			p := out.Parent
			parent = &p
		}

		v, ok := c.Viewport(id)
		if !ok {
			v, err := c.spawn(id, parent, out.Builder)
			if err != nil {
				c.log().Warn("uibridge: viewport spawn failed", "viewport", id, "err", err)
				continue
			}
			v.applyCommands(out.Commands)
			continue
		}

		commands, recreate := v.setup.Patch(out.Builder)
		if recreate && v.window != nil {
			setup := v.setup
			c.despawn(id)
			v, err := c.spawn(id, parent, setup)
			if err != nil {
				c.log().Warn("uibridge: viewport respawn failed", "viewport", id, "err", err)
				continue
			}
			v.applyCommands(out.Commands)
			continue
		}
		v.applyCommands(commands)
		v.applyCommands(out.Commands)
	}
}

// runDueCallbacks takes every due repaint deadline and runs the deferred UI
// callback of the matching viewport. Deadlines of viewports that are not
// live are dropped. It returns the repainted viewports in ascending id
// order.
func (c *Controller) runDueCallbacks(declared map[ui.ViewportID]ui.ViewportOutput) []*ViewportContext {
	var repainted []*ViewportContext
	for _, id := range c.shared.schedule.TakeDue(c.opts.clock.Now()) {
		v, ok := c.Viewport(id)
		if !ok {
			continue
		}
		if cb := declared[id].UICallback; cb != nil {
			cb(c.shared.ctx)
		}
		repainted = append(repainted, v)
	}
	return repainted
}

func (c *Controller) logTextureError(msg string, id ui.TextureID, err error) {
	if errors.Is(err, ErrTexturePatchMissing) {
		c.log().Error(msg, "texture", id, "err", err)
		return
	}
	c.log().Warn(msg, "texture", id, "err", err)
}
