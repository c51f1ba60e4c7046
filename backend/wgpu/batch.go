//go:build !nogpu

package wgpu

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/overlay"
)

// verticesPerQuad is two triangles per sprite quad.
const verticesPerQuad = 6

// gpuTimeout bounds the fence wait at batch submission.
const gpuTimeout = 5 * time.Second

// BeginBatch opens the per-frame sprite batch and resets the CPU-side
// vertex accumulator.
func (b *SpriteBackend) BeginBatch() error {
	if !b.initialized {
		return ErrNotInitialized
	}
	if b.inBatch {
		return overlay.ErrBatchAlreadyOpen
	}
	b.inBatch = true
	b.verts = b.verts[:0]
	b.draws = b.draws[:0]
	return nil
}

// Draw validates the command and appends one quad to the batch. GPU work is
// deferred to EndBatch so the whole frame is one submission.
func (b *SpriteBackend) Draw(cmd overlay.DrawCommand) error {
	if !b.inBatch {
		return overlay.ErrBatchNotOpen
	}
	if cmd.Texture == nil {
		return overlay.ErrNilTexture
	}
	tex, ok := cmd.Texture.(*spriteTexture)
	if !ok {
		return fmt.Errorf("wgpu: foreign texture %T", cmd.Texture)
	}
	if tex.destroyed {
		return fmt.Errorf("wgpu: texture %dx%d already destroyed", tex.width, tex.height)
	}

	first := uint32(len(b.verts) / spriteVertexStride)
	b.appendQuad(tex, cmd)
	b.draws = append(b.draws, spriteDraw{tex: tex, first: first, count: verticesPerQuad})
	return nil
}

// appendQuad emits the six vertices of one sprite quad in pixel space with
// normalized texture coordinates.
func (b *SpriteBackend) appendQuad(tex *spriteTexture, cmd overlay.DrawCommand) {
	x0 := float32(cmd.X)
	y0 := float32(cmd.Y)
	x1 := x0 + float32(float64(cmd.Source.W)*cmd.ScaleX)
	y1 := y0 + float32(float64(cmd.Source.H)*cmd.ScaleY)

	tw := float32(tex.width)
	th := float32(tex.height)
	u0 := float32(cmd.Source.X) / tw
	v0 := float32(cmd.Source.Y) / th
	u1 := float32(cmd.Source.X+cmd.Source.W) / tw
	v1 := float32(cmd.Source.Y+cmd.Source.H) / th

	// RGBA byte order for the unorm8x4 attribute.
	r, g, bl, a := cmd.Color.Red(), cmd.Color.Green(), cmd.Color.Blue(), cmd.Color.Alpha()

	quad := [verticesPerQuad][4]float32{
		{x0, y0, u0, v0},
		{x1, y0, u1, v0},
		{x1, y1, u1, v1},
		{x0, y0, u0, v0},
		{x1, y1, u1, v1},
		{x0, y1, u0, v1},
	}
	for _, v := range quad {
		var buf [spriteVertexStride]byte
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(v[0]))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(v[1]))
		binary.LittleEndian.PutUint32(buf[8:], math.Float32bits(v[2]))
		binary.LittleEndian.PutUint32(buf[12:], math.Float32bits(v[3]))
		buf[16], buf[17], buf[18], buf[19] = r, g, bl, a
		b.verts = append(b.verts, buf[:]...)
	}
}

// EndBatch uploads the accumulated vertices, encodes one render pass with a
// draw per quad, and submits. An empty batch submits nothing.
func (b *SpriteBackend) EndBatch() error {
	if !b.inBatch {
		return overlay.ErrBatchNotOpen
	}
	b.inBatch = false

	if len(b.draws) == 0 {
		return nil
	}

	view, err := b.targetView()
	if err != nil {
		return err
	}

	vertBuf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "sprite_batch_verts",
		Size:  uint64(len(b.verts)),
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("wgpu: create batch vertex buffer: %w", err)
	}
	defer b.device.DestroyBuffer(vertBuf)
	b.queue.WriteBuffer(vertBuf, 0, b.verts)

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "sprite_batch_encoder",
	})
	if err != nil {
		return fmt.Errorf("wgpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("sprite_batch"); err != nil {
		return fmt.Errorf("wgpu: begin encoding: %w", err)
	}

	// Load the existing target content: the overlay composites over the
	// host frame rather than replacing it. The offscreen fallback target
	// has no host content and is cleared instead.
	loadOp := gputypes.LoadOpLoad
	if b.surfaceView == nil {
		loadOp = gputypes.LoadOpClear
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "sprite_batch_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{
			{
				View:       view,
				LoadOp:     loadOp,
				StoreOp:    gputypes.StoreOpStore,
				ClearValue: gputypes.Color{R: 0, G: 0, B: 0, A: 0},
			},
		},
	})
	rp.SetPipeline(b.pipeline.pipeline)
	rp.SetVertexBuffer(0, vertBuf, 0)
	for _, d := range b.draws {
		rp.SetBindGroup(0, d.tex.bindGroup, nil)
		rp.Draw(d.count, 1, d.first, 0)
	}
	rp.End()

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("wgpu: end encoding: %w", err)
	}
	defer b.device.FreeCommandBuffer(cmdBuf)

	fence, err := b.device.CreateFence()
	if err != nil {
		return fmt.Errorf("wgpu: create fence: %w", err)
	}
	defer b.device.DestroyFence(fence)

	if err := b.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("wgpu: submit batch: %w", err)
	}
	ok, err := b.device.Wait(fence, 1, gpuTimeout)
	if err != nil {
		return fmt.Errorf("wgpu: wait for batch: %w", err)
	}
	if !ok {
		return fmt.Errorf("wgpu: wait for batch timed out after %s", gpuTimeout)
	}
	return nil
}
