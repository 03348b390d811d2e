// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/gputypes"
)

// Texture is an in-memory RGBA8 texture. It implements gpucontext.Texture,
// gpucontext.TextureUpdater and gpucontext.TextureRegionUpdater.
type Texture struct {
	mu        sync.RWMutex
	img       *image.RGBA
	destroyed bool
}

func newTexture(w, h int, data []byte) (*Texture, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	if data != nil {
		if len(data) != len(img.Pix) {
			return nil, fmt.Errorf("%w: got %d bytes for %dx%d", ErrDataSize, len(data), w, h)
		}
		copy(img.Pix, data)
	}
	return &Texture{img: img}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return t.img.Rect.Dx() }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return t.img.Rect.Dy() }

// Format returns the pixel format of the texture.
func (t *Texture) Format() gputypes.TextureFormat { return gputypes.TextureFormatRGBA8Unorm }

// UpdateData replaces the whole texture contents.
func (t *Texture) UpdateData(data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return ErrTextureDestroyed
	}
	if len(data) != len(t.img.Pix) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrDataSize, len(data), len(t.img.Pix))
	}
	copy(t.img.Pix, data)
	return nil
}

// UpdateRegion replaces the w×h region at (x, y).
func (t *Texture) UpdateRegion(x, y, w, h int, data []byte) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.destroyed {
		return ErrTextureDestroyed
	}
	r := image.Rect(x, y, x+w, y+h)
	if !r.In(t.img.Rect) {
		return fmt.Errorf("%w: region %v outside %v", ErrInvalidDimensions, r, t.img.Rect)
	}
	if len(data) != w*h*4 {
		return fmt.Errorf("%w: got %d bytes for %dx%d region", ErrDataSize, len(data), w, h)
	}
	for row := range h {
		off := t.img.PixOffset(x, y+row)
		copy(t.img.Pix[off:off+w*4], data[row*w*4:(row+1)*w*4])
	}
	return nil
}

// Destroy marks the texture as released. Later updates fail.
func (t *Texture) Destroy() {
	t.mu.Lock()
	t.destroyed = true
	t.mu.Unlock()
}

// Destroyed reports whether Destroy was called.
func (t *Texture) Destroyed() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.destroyed
}

// Image returns a copy of the texture contents.
func (t *Texture) Image() *image.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := image.NewRGBA(t.img.Rect)
	copy(out.Pix, t.img.Pix)
	return out
}

// sample returns the texel nearest to the normalized coordinate (u, v).
func (t *Texture) sample(u, v float32) color.RGBA {
	t.mu.RLock()
	defer t.mu.RUnlock()
	w, h := t.img.Rect.Dx(), t.img.Rect.Dy()
	x := clampInt(int(u*float32(w)), 0, w-1)
	y := clampInt(int(v*float32(h)), 0, h-1)
	return t.img.RGBAAt(x, y)
}

// replace swaps in new contents, used by the render target after a pass.
func (t *Texture) replace(img *image.RGBA) {
	t.mu.Lock()
	t.img = img
	t.mu.Unlock()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
