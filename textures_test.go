// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"errors"
	"image"
	"testing"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/uibridge/ui"
	"github.com/gogpu/uibridge/ui/uitest"
)

// mockTexture implements gpucontext.Texture and Destroy.
type mockTexture struct {
	w, h      int
	data      []byte
	destroyed bool
}

func (m *mockTexture) Width() int  { return m.w }
func (m *mockTexture) Height() int { return m.h }
func (m *mockTexture) Destroy()    { m.destroyed = true }

// updatableTexture adds gpucontext.TextureUpdater.
type updatableTexture struct {
	mockTexture
	updates int
}

func (m *updatableTexture) UpdateData(data []byte) error {
	m.updates++
	m.data = append(m.data[:0], data...)
	return nil
}

// regionTexture adds gpucontext.TextureRegionUpdater.
type regionTexture struct {
	mockTexture
	regions []image.Rectangle
}

func (m *regionTexture) UpdateRegion(x, y, w, h int, data []byte) error {
	if len(data) != w*h*4 {
		return errors.New("bad region size")
	}
	m.regions = append(m.regions, image.Rect(x, y, x+w, y+h))
	return nil
}

// mockCreator implements gpucontext.TextureCreator.
type mockCreator struct {
	kind    string // "plain", "update" or "region"
	fail    bool
	created []gpucontext.Texture
}

func (c *mockCreator) NewTextureFromRGBA(w, h int, data []byte) (gpucontext.Texture, error) {
	if c.fail {
		return nil, errors.New("out of memory")
	}
	base := mockTexture{w: w, h: h, data: append([]byte(nil), data...)}
	var tex gpucontext.Texture
	switch c.kind {
	case "update":
		tex = &updatableTexture{mockTexture: base}
	case "region":
		tex = &regionTexture{mockTexture: base}
	default:
		tex = &base
	}
	c.created = append(c.created, tex)
	return tex, nil
}

var (
	red   = ui.Color32{R: 255, A: 255}
	green = ui.Color32{G: 255, A: 255}
)

func TestUpsertCreatesAndReplaces(t *testing.T) {
	creator := &mockCreator{}
	reg := NewTextureRegistry(creator)
	id := ui.TextureID{Managed: true, Index: 1}

	if err := reg.Upsert(id, uitest.SolidImage(4, 2, red), nil); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}
	tex, ok := reg.Lookup(id)
	if !ok || tex.Width() != 4 || tex.Height() != 2 {
		t.Fatalf("Lookup() = %v, %t; want 4x2 texture", tex, ok)
	}

	if err := reg.Upsert(id, uitest.SolidImage(8, 8, green), nil); err != nil {
		t.Fatalf("replace error = %v", err)
	}
	if !creator.created[0].(*mockTexture).destroyed {
		t.Error("replaced texture not destroyed")
	}
	if reg.Len() != 1 {
		t.Errorf("Len() = %d, want 1", reg.Len())
	}
	src, _ := reg.Source(id)
	if src.Bounds().Dx() != 8 || src.Pix[1] != 255 {
		t.Errorf("source not replaced: bounds %v, first pixel %v", src.Bounds(), src.Pix[:4])
	}
}

func TestPatchPaths(t *testing.T) {
	pos := image.Pt(1, 1)
	patch := uitest.SolidImage(2, 2, green)

	t.Run("region updater", func(t *testing.T) {
		creator := &mockCreator{kind: "region"}
		reg := NewTextureRegistry(creator)
		id := ui.TextureID{Managed: true}
		_ = reg.Upsert(id, uitest.SolidImage(4, 4, red), nil)

		if err := reg.Upsert(id, patch, &pos); err != nil {
			t.Fatalf("patch error = %v", err)
		}
		tex := creator.created[0].(*regionTexture)
		if len(tex.regions) != 1 || tex.regions[0] != image.Rect(1, 1, 3, 3) {
			t.Errorf("regions = %v, want [(1,1)-(3,3)]", tex.regions)
		}
		if len(creator.created) != 1 {
			t.Error("patch recreated the texture")
		}
	})

	t.Run("whole updater", func(t *testing.T) {
		creator := &mockCreator{kind: "update"}
		reg := NewTextureRegistry(creator)
		id := ui.TextureID{Managed: true}
		_ = reg.Upsert(id, uitest.SolidImage(4, 4, red), nil)

		if err := reg.Upsert(id, patch, &pos); err != nil {
			t.Fatalf("patch error = %v", err)
		}
		tex := creator.created[0].(*updatableTexture)
		if tex.updates != 1 {
			t.Errorf("updates = %d, want 1", tex.updates)
		}
		// Pixel (1,1) is green, (0,0) still red.
		if px := tex.data[(1*4+1)*4:][:4]; px[0] != 0 || px[1] != 255 {
			t.Errorf("patched pixel = %v, want green", px)
		}
		if px := tex.data[:4]; px[0] != 255 {
			t.Errorf("untouched pixel = %v, want red", px)
		}
	})

	t.Run("recreate fallback", func(t *testing.T) {
		creator := &mockCreator{}
		reg := NewTextureRegistry(creator)
		id := ui.TextureID{Managed: true}
		_ = reg.Upsert(id, uitest.SolidImage(4, 4, red), nil)

		if err := reg.Upsert(id, patch, &pos); err != nil {
			t.Fatalf("patch error = %v", err)
		}
		if len(creator.created) != 2 {
			t.Fatalf("created = %d, want 2", len(creator.created))
		}
		if !creator.created[0].(*mockTexture).destroyed {
			t.Error("old texture not destroyed")
		}
		if tex, _ := reg.Lookup(id); tex != creator.created[1] {
			t.Error("registry does not hold the recreated texture")
		}
	})

	t.Run("outside bounds", func(t *testing.T) {
		creator := &mockCreator{kind: "region"}
		reg := NewTextureRegistry(creator)
		id := ui.TextureID{Managed: true}
		_ = reg.Upsert(id, uitest.SolidImage(4, 4, red), nil)

		far := image.Pt(10, 10)
		if err := reg.Upsert(id, patch, &far); err != nil {
			t.Fatalf("patch error = %v", err)
		}
		if n := len(creator.created[0].(*regionTexture).regions); n != 0 {
			t.Errorf("regions = %d, want 0", n)
		}
	})
}

func TestPatchMissingTexture(t *testing.T) {
	reg := NewTextureRegistry(&mockCreator{})
	pos := image.Pt(0, 0)
	err := reg.Upsert(ui.TextureID{Index: 9}, uitest.SolidImage(1, 1, red), &pos)
	if !errors.Is(err, ErrTexturePatchMissing) {
		t.Errorf("error = %v, want ErrTexturePatchMissing", err)
	}
	if reg.Len() != 0 {
		t.Error("patch of missing texture created a descriptor")
	}
}

func TestCreationFailure(t *testing.T) {
	reg := NewTextureRegistry(&mockCreator{fail: true})
	id := ui.TextureID{Managed: true}
	err := reg.Upsert(id, uitest.SolidImage(1, 1, red), nil)
	if !errors.Is(err, ErrTextureCreationFailed) {
		t.Errorf("error = %v, want ErrTextureCreationFailed", err)
	}
	if err := reg.Free(id); !errors.Is(err, ErrTextureNotFound) {
		t.Errorf("Free after failed create = %v, want ErrTextureNotFound", err)
	}
}

func TestFree(t *testing.T) {
	creator := &mockCreator{}
	reg := NewTextureRegistry(creator)
	id := ui.TextureID{Managed: false, Index: 2}
	_ = reg.Upsert(id, uitest.SolidImage(1, 1, red), nil)

	if err := reg.Free(id); err != nil {
		t.Fatalf("Free() error = %v", err)
	}
	if !creator.created[0].(*mockTexture).destroyed {
		t.Error("freed texture not destroyed")
	}
	if _, ok := reg.Lookup(id); ok {
		t.Error("freed texture still found")
	}
	if err := reg.Free(id); !errors.Is(err, ErrTextureNotFound) {
		t.Errorf("second Free() = %v, want ErrTextureNotFound", err)
	}
}

func TestRegistryClose(t *testing.T) {
	creator := &mockCreator{}
	reg := NewTextureRegistry(creator)
	for i := range 3 {
		_ = reg.Upsert(ui.TextureID{Index: uint64(i)}, uitest.SolidImage(1, 1, red), nil)
	}
	reg.Close()
	if reg.Len() != 0 {
		t.Errorf("Len() after Close = %d", reg.Len())
	}
	for i, tex := range creator.created {
		if !tex.(*mockTexture).destroyed {
			t.Errorf("texture %d not destroyed", i)
		}
	}
}

func TestNormalizeImage(t *testing.T) {
	tests := []struct {
		name    string
		data    ui.ImageData
		want    [4]uint8
		wantErr bool
	}{
		{
			name: "opaque color",
			data: &ui.ColorImage{Width: 1, Height: 1, Pixels: []ui.Color32{{R: 10, G: 20, B: 30, A: 255}}},
			want: [4]uint8{10, 20, 30, 255},
		},
		{
			name: "premultiplied color is unmultiplied",
			data: &ui.ColorImage{Width: 1, Height: 1, Pixels: []ui.Color32{{R: 64, A: 128}}},
			want: ui.Color32{R: 64, A: 128}.Unmultiplied(),
		},
		{
			name: "full font coverage",
			data: &ui.FontImage{Width: 1, Height: 1, Pixels: []float32{1}},
			want: [4]uint8{255, 255, 255, 255},
		},
		{
			name: "no font coverage",
			data: &ui.FontImage{Width: 1, Height: 1, Pixels: []float32{0}},
			want: [4]uint8{0, 0, 0, 0},
		},
		{
			name:    "pixel count mismatch",
			data:    &ui.ColorImage{Width: 2, Height: 2, Pixels: []ui.Color32{red}},
			wantErr: true,
		},
		{
			name:    "empty image",
			data:    &ui.FontImage{},
			wantErr: true,
		},
		{
			name:    "nil image",
			data:    nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := normalizeImage(tt.data, DefaultFontGamma)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidImage) {
					t.Errorf("error = %v, want ErrInvalidImage", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			var got [4]uint8
			copy(got[:], img.Pix[:4])
			if got != tt.want {
				t.Errorf("pixel = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCoverageAlphaGamma(t *testing.T) {
	// Gamma below one brightens partial coverage.
	half := coverageAlpha(0.5, DefaultFontGamma)
	if half <= 128 {
		t.Errorf("coverageAlpha(0.5) = %d, want > 128", half)
	}
	if got := coverageAlpha(0.5, 1); got != 128 {
		t.Errorf("coverageAlpha(0.5, gamma 1) = %d, want 128", got)
	}
}

func TestWithFontGammaReachesRegistry(t *testing.T) {
	reg := NewTextureRegistry(&mockCreator{}, WithFontGamma(1))
	id := ui.TextureID{Managed: true}
	if err := reg.Upsert(id, &ui.FontImage{Width: 1, Height: 1, Pixels: []float32{0.5}}, nil); err != nil {
		t.Fatal(err)
	}
	src, _ := reg.Source(id)
	if src.Pix[3] != 128 {
		t.Errorf("alpha = %d, want 128 with gamma 1", src.Pix[3])
	}
}
