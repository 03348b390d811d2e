// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package uibridge

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/draw"

	"github.com/gogpu/uibridge/ui"
)

// TextureFormat is the single pixel format every UI image is normalized to
// before upload.
const TextureFormat = gputypes.TextureFormatRGBA8Unorm

// textureDestroyer matches the Destroy method of gogpu textures.
type textureDestroyer interface {
	Destroy()
}

// TextureDescriptor mirrors one UI library texture on the host.
type TextureDescriptor struct {
	// Source is the CPU copy of the texture; patches are applied here first.
	Source *image.RGBA

	// Texture is the host texture sampled by draw commands.
	Texture gpucontext.Texture
}

// TextureRegistry owns the host textures mirroring the UI library's atlas.
// It is safe for concurrent use.
type TextureRegistry struct {
	mu       sync.Mutex
	creator  gpucontext.TextureCreator
	gamma    float32
	log      func() *slog.Logger
	textures map[ui.TextureID]*TextureDescriptor
}

// NewTextureRegistry creates an empty registry uploading through creator.
func NewTextureRegistry(creator gpucontext.TextureCreator, opts ...Option) *TextureRegistry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &TextureRegistry{
		creator:  creator,
		gamma:    o.fontGamma,
		log:      o.logSource(),
		textures: make(map[ui.TextureID]*TextureDescriptor),
	}
}

// Apply applies one set delta: a whole image creates or replaces the
// texture, a positioned image patches it.
func (r *TextureRegistry) Apply(set ui.TextureSet) error {
	return r.Upsert(set.ID, set.Delta.Image, set.Delta.Pos)
}

// Upsert creates or replaces the texture id when pos is nil, or patches the
// existing texture at pos. Patching a texture that does not exist returns
// ErrTexturePatchMissing.
func (r *TextureRegistry) Upsert(id ui.TextureID, data ui.ImageData, pos *image.Point) error {
	src, err := normalizeImage(data, r.gamma)
	if err != nil {
		return fmt.Errorf("texture %v: %w", id, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if pos != nil {
		desc, ok := r.textures[id]
		if !ok {
			return fmt.Errorf("%w: %v", ErrTexturePatchMissing, id)
		}
		return r.patch(desc, src, *pos)
	}

	b := src.Bounds()
	tex, err := r.creator.NewTextureFromRGBA(b.Dx(), b.Dy(), src.Pix)
	if err != nil {
		return fmt.Errorf("%w: %v: %w", ErrTextureCreationFailed, id, err)
	}
	if old, ok := r.textures[id]; ok {
		destroyTexture(old.Texture)
	}
	r.textures[id] = &TextureDescriptor{Source: src, Texture: tex}
	r.log().Debug("uibridge: texture set", "id", id, "width", b.Dx(), "height", b.Dy())
	return nil
}

// patch blits src into desc at pos and pushes the changed region to the
// host texture.
func (r *TextureRegistry) patch(desc *TextureDescriptor, src *image.RGBA, pos image.Point) error {
	dirty := src.Bounds().Add(pos).Intersect(desc.Source.Bounds())
	if dirty.Empty() {
		return nil
	}
	draw.Copy(desc.Source, pos, src, src.Bounds(), draw.Src, nil)

	switch tex := desc.Texture.(type) {
	case gpucontext.TextureRegionUpdater:
		region := image.NewRGBA(image.Rectangle{Max: dirty.Size()})
		draw.Copy(region, image.Point{}, desc.Source, dirty, draw.Src, nil)
		if err := tex.UpdateRegion(dirty.Min.X, dirty.Min.Y, dirty.Dx(), dirty.Dy(), region.Pix); err != nil {
			return fmt.Errorf("uibridge: texture region update failed: %w", err)
		}
	case gpucontext.TextureUpdater:
		if err := tex.UpdateData(desc.Source.Pix); err != nil {
			return fmt.Errorf("uibridge: texture update failed: %w", err)
		}
	default:
		b := desc.Source.Bounds()
		fresh, err := r.creator.NewTextureFromRGBA(b.Dx(), b.Dy(), desc.Source.Pix)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTextureCreationFailed, err)
		}
		destroyTexture(desc.Texture)
		desc.Texture = fresh
	}
	return nil
}

// Free removes the texture id. Freeing an unknown id returns
// ErrTextureNotFound and changes nothing.
func (r *TextureRegistry) Free(id ui.TextureID) error {
	r.mu.Lock()
	desc, ok := r.textures[id]
	delete(r.textures, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %v", ErrTextureNotFound, id)
	}
	destroyTexture(desc.Texture)
	r.log().Debug("uibridge: texture freed", "id", id)
	return nil
}

// Lookup returns the host texture for id.
func (r *TextureRegistry) Lookup(id ui.TextureID) (gpucontext.Texture, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc, ok := r.textures[id]
	if !ok {
		return nil, false
	}
	return desc.Texture, true
}

// Source returns a copy of the CPU-side pixels of id.
func (r *TextureRegistry) Source(id ui.TextureID) (*image.RGBA, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	desc, ok := r.textures[id]
	if !ok {
		return nil, false
	}
	cp := image.NewRGBA(desc.Source.Bounds())
	copy(cp.Pix, desc.Source.Pix)
	return cp, true
}

// Len returns the number of live textures.
func (r *TextureRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.textures)
}

// Close destroys every texture.
func (r *TextureRegistry) Close() {
	r.mu.Lock()
	textures := r.textures
	r.textures = make(map[ui.TextureID]*TextureDescriptor)
	r.mu.Unlock()

	for _, desc := range textures {
		destroyTexture(desc.Texture)
	}
}

func destroyTexture(tex gpucontext.Texture) {
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	}
}

// normalizeImage converts UI image data to straight-alpha RGBA8. Font
// coverage becomes premultiplied white with gamma applied.
func normalizeImage(data ui.ImageData, gamma float32) (*image.RGBA, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	w, h := data.Size()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: size %dx%d", ErrInvalidImage, w, h)
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	switch im := data.(type) {
	case *ui.ColorImage:
		if len(im.Pixels) != w*h {
			return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImage, len(im.Pixels), w, h)
		}
		for i, c := range im.Pixels {
			px := c.Unmultiplied()
			copy(img.Pix[i*4:i*4+4], px[:])
		}
	case *ui.FontImage:
		if len(im.Pixels) != w*h {
			return nil, fmt.Errorf("%w: %d pixels for %dx%d", ErrInvalidImage, len(im.Pixels), w, h)
		}
		for i, coverage := range im.Pixels {
			a := coverageAlpha(coverage, gamma)
			img.Pix[i*4+0] = a
			img.Pix[i*4+1] = a
			img.Pix[i*4+2] = a
			img.Pix[i*4+3] = a
		}
	default:
		return nil, fmt.Errorf("%w: unsupported type %T", ErrInvalidImage, data)
	}
	return img, nil
}

func coverageAlpha(coverage, gamma float32) uint8 {
	if coverage <= 0 {
		return 0
	}
	if coverage >= 1 {
		return 255
	}
	v := math.Pow(float64(coverage), float64(gamma))
	return uint8(math.Round(v * 255))
}
