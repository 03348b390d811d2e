// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package soft

import (
	"bytes"
	"errors"
	"image/color"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func solid(w, h int, c color.RGBA) []byte {
	data := make([]byte, w*h*4)
	for i := 0; i < len(data); i += 4 {
		data[i], data[i+1], data[i+2], data[i+3] = c.R, c.G, c.B, c.A
	}
	return data
}

var (
	red   = color.RGBA{R: 255, A: 255}
	green = color.RGBA{G: 255, A: 255}
	white = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestTextureInterfaces(t *testing.T) {
	var tex gpucontext.Texture
	tex, err := New().TextureCreator().NewTextureFromRGBA(2, 3, solid(2, 3, red))
	if err != nil {
		t.Fatal(err)
	}
	if tex.Width() != 2 || tex.Height() != 3 {
		t.Errorf("size = %dx%d, want 2x3", tex.Width(), tex.Height())
	}
	if _, ok := tex.(gpucontext.TextureUpdater); !ok {
		t.Error("texture does not implement TextureUpdater")
	}
	if _, ok := tex.(gpucontext.TextureRegionUpdater); !ok {
		t.Error("texture does not implement TextureRegionUpdater")
	}
	if f := tex.(*Texture).Format(); f != gputypes.TextureFormatRGBA8Unorm {
		t.Errorf("format = %v", f)
	}
}

func TestNewTextureErrors(t *testing.T) {
	creator := New().TextureCreator()
	if _, err := creator.NewTextureFromRGBA(0, 4, nil); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("zero width error = %v", err)
	}
	if _, err := creator.NewTextureFromRGBA(2, 2, make([]byte, 3)); !errors.Is(err, ErrDataSize) {
		t.Errorf("short data error = %v", err)
	}
}

func TestTextureUpdates(t *testing.T) {
	tex, _ := newTexture(4, 4, solid(4, 4, red))

	if err := tex.UpdateRegion(1, 2, 2, 1, solid(2, 1, green)); err != nil {
		t.Fatalf("UpdateRegion() error = %v", err)
	}
	img := tex.Image()
	if got := img.RGBAAt(1, 2); got != green {
		t.Errorf("(1,2) = %v, want green", got)
	}
	if got := img.RGBAAt(2, 2); got != green {
		t.Errorf("(2,2) = %v, want green", got)
	}
	if got := img.RGBAAt(3, 2); got != red {
		t.Errorf("(3,2) = %v, want red", got)
	}

	if err := tex.UpdateRegion(3, 3, 2, 2, solid(2, 2, green)); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("out of bounds region error = %v", err)
	}
	if err := tex.UpdateRegion(0, 0, 2, 2, solid(1, 1, green)); !errors.Is(err, ErrDataSize) {
		t.Errorf("short region data error = %v", err)
	}

	if err := tex.UpdateData(solid(4, 4, green)); err != nil {
		t.Fatalf("UpdateData() error = %v", err)
	}
	if !bytes.Equal(tex.Image().Pix, solid(4, 4, green)) {
		t.Error("UpdateData did not replace contents")
	}
	if err := tex.UpdateData(nil); !errors.Is(err, ErrDataSize) {
		t.Errorf("empty data error = %v", err)
	}

	tex.Destroy()
	if !tex.Destroyed() {
		t.Error("Destroyed() = false after Destroy")
	}
	if err := tex.UpdateData(solid(4, 4, red)); !errors.Is(err, ErrTextureDestroyed) {
		t.Errorf("update after destroy = %v", err)
	}
}

func TestTextureSampleClamps(t *testing.T) {
	data := append(solid(1, 1, red), solid(1, 1, green)...)
	tex, _ := newTexture(2, 1, data)

	tests := []struct {
		u, v float32
		want color.RGBA
	}{
		{0, 0, red},
		{0.49, 0.5, red},
		{0.5, 0.5, green},
		{1, 1, green},
		{-3, 7, red},
	}
	for _, tt := range tests {
		if got := tex.sample(tt.u, tt.v); got != tt.want {
			t.Errorf("sample(%v, %v) = %v, want %v", tt.u, tt.v, got, tt.want)
		}
	}
}
