//go:build !nogpu

package wgpu

import (
	"fmt"
	"path/filepath"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
	"github.com/gogpu/overlay/internal/imageio"
)

// spriteTexture is one uploaded sprite image: the HAL texture, its view,
// and a pre-built bind group pairing it with the pipeline's uniforms and
// sampler. Owned by the overlay texture cache via overlay.Texture.
type spriteTexture struct {
	backend   *SpriteBackend
	texture   hal.Texture
	view      hal.TextureView
	bindGroup hal.BindGroup
	width     int
	height    int
	destroyed bool
}

func (t *spriteTexture) Width() int  { return t.width }
func (t *spriteTexture) Height() int { return t.height }

// Destroy releases the GPU resources. Safe to call repeatedly.
func (t *spriteTexture) Destroy() {
	if t.destroyed {
		return
	}
	t.destroyed = true
	d := t.backend.device
	if d == nil {
		return
	}
	if t.bindGroup != nil {
		d.DestroyBindGroup(t.bindGroup)
		t.bindGroup = nil
	}
	if t.view != nil {
		d.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.texture != nil {
		d.DestroyTexture(t.texture)
		t.texture = nil
	}
}

// CreateTexture decodes the image at path, stretches it to exactly
// width x height on the CPU, and uploads it as an RGBA8 texture.
func (b *SpriteBackend) CreateTexture(path string, width, height int) (overlay.Texture, error) {
	if !b.initialized {
		return nil, ErrNotInitialized
	}

	rgba, err := imageio.DecodeStretched(path, width, height)
	if err != nil {
		return nil, err
	}

	label := "sprite:" + filepath.Base(path)
	w, h := uint32(width), uint32(height)

	tex, err := b.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create texture %s: %w", label, err)
	}

	view, err := b.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:         label + "_view",
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Dimension:     gputypes.TextureViewDimension2D,
		Aspect:        gputypes.TextureAspectAll,
		MipLevelCount: 1,
	})
	if err != nil {
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create texture view %s: %w", label, err)
	}

	b.queue.WriteTexture(
		&hal.ImageCopyTexture{Texture: tex, MipLevel: 0},
		rgba.Pix,
		&hal.ImageDataLayout{Offset: 0, BytesPerRow: w * 4, RowsPerImage: h},
		&hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	)

	bindGroup, err := b.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:  label + "_bind",
		Layout: b.pipeline.uniformLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: gputypes.BufferBinding{
				Buffer: b.pipeline.uniformBuf.NativeHandle(), Offset: 0, Size: spriteUniformSize,
			}},
			{Binding: 1, Resource: gputypes.TextureViewBinding{
				TextureView: view.NativeHandle(),
			}},
			{Binding: 2, Resource: gputypes.SamplerBinding{
				Sampler: b.pipeline.sampler.NativeHandle(),
			}},
		},
	})
	if err != nil {
		b.device.DestroyTextureView(view)
		b.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create bind group %s: %w", label, err)
	}

	return &spriteTexture{
		backend:   b,
		texture:   tex,
		view:      view,
		bindGroup: bindGroup,
		width:     width,
		height:    height,
	}, nil
}
