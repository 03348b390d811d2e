// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package ui

import (
	"fmt"
	"hash/fnv"
)

// ViewportID is a stable identifier for a logical viewport.
type ViewportID uint64

// RootViewportID identifies the always-present root viewport.
const RootViewportID ViewportID = 0

// ViewportIDFrom derives a viewport id from an arbitrary string key.
// The result is never RootViewportID.
func ViewportIDFrom(key string) ViewportID {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	id := ViewportID(h.Sum64())
	if id == RootViewportID {
		id++
	}
	return id
}

// IsRoot reports whether id is the root viewport.
func (id ViewportID) IsRoot() bool {
	return id == RootViewportID
}

// String implements fmt.Stringer.
func (id ViewportID) String() string {
	if id.IsRoot() {
		return "ROOT"
	}
	return fmt.Sprintf("%016X", uint64(id))
}

// TextureID identifies a texture in the UI library's atlas.
type TextureID struct {
	// Managed is true for textures allocated by the library itself (such as
	// the font atlas). User textures have Managed == false.
	Managed bool
	Index   uint64
}

// String implements fmt.Stringer.
func (id TextureID) String() string {
	if id.Managed {
		return fmt.Sprintf("M%d", id.Index)
	}
	return fmt.Sprintf("U%d", id.Index)
}
