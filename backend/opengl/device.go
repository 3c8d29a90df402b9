// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"log/slog"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gldraw"
)

// Device issues gldraw commands to the OpenGL context current on the
// calling thread. gl.Init must have been called for that context.
//
// Device is NOT safe for concurrent use. All calls must come from the
// thread owning the context.
type Device struct {
	logger *slog.Logger
}

var _ gldraw.Device = (*Device)(nil)

// NewDevice returns a device for the current context.
func NewDevice() *Device {
	return &Device{logger: gldraw.Logger()}
}

// SetLogger sets the logger used for object lifetime messages.
func (d *Device) SetLogger(l *slog.Logger) {
	if l == nil {
		l = gldraw.Logger()
	}
	d.logger = l
}

func (d *Device) Enable(c gldraw.Capability)  { gl.Enable(capability(c)) }
func (d *Device) Disable(c gldraw.Capability) { gl.Disable(capability(c)) }

func (d *Device) DepthFunc(fn gputypes.CompareFunction) { gl.DepthFunc(compareFunc(fn)) }
func (d *Device) DepthMask(write bool)                  { gl.DepthMask(write) }
func (d *Device) DepthRange(near, far float32)          { gl.DepthRangef(near, far) }

func (d *Device) StencilFuncSeparate(f gldraw.Face, fn gputypes.CompareFunction, ref int32, readMask uint32) {
	gl.StencilFuncSeparate(face(f), compareFunc(fn), ref, readMask)
}

func (d *Device) StencilMaskSeparate(f gldraw.Face, writeMask uint32) {
	gl.StencilMaskSeparate(face(f), writeMask)
}

func (d *Device) StencilOpSeparate(f gldraw.Face, fail, depthFail, pass hal.StencilOperation) {
	gl.StencilOpSeparate(face(f), stencilOp(fail), stencilOp(depthFail), stencilOp(pass))
}

func (d *Device) BlendEquation(op gputypes.BlendOperation) { gl.BlendEquation(blendEquation(op)) }

func (d *Device) BlendFunc(src, dst gputypes.BlendFactor) {
	gl.BlendFunc(blendFactor(src), blendFactor(dst))
}

func (d *Device) ColorMask(m gputypes.ColorWriteMask) {
	gl.ColorMask(
		m&gputypes.ColorWriteMaskRed != 0,
		m&gputypes.ColorWriteMaskGreen != 0,
		m&gputypes.ColorWriteMaskBlue != 0,
		m&gputypes.ColorWriteMaskAlpha != 0,
	)
}

func (d *Device) LineWidth(width float32)                  { gl.LineWidth(width) }
func (d *Device) PointSize(size float32)                   { gl.PointSize(size) }
func (d *Device) CullFace(m gputypes.CullMode)             { gl.CullFace(cullFace(m)) }
func (d *Device) PolygonMode(m gldraw.PolygonMode)         { gl.PolygonMode(gl.FRONT_AND_BACK, polygonMode(m)) }
func (d *Device) PatchVertices(n int32)                    { gl.PatchParameteri(gl.PATCH_VERTICES, n) }
func (d *Device) BeginQuery(k gldraw.QueryKind, id uint32) { gl.BeginQuery(queryTarget(k), id) }
func (d *Device) EndQuery(k gldraw.QueryKind)              { gl.EndQuery(queryTarget(k)) }

func (d *Device) Viewport(r gldraw.Rect) {
	gl.Viewport(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
}

func (d *Device) Scissor(r gldraw.Rect) {
	gl.Scissor(int32(r.X), int32(r.Y), int32(r.Width), int32(r.Height))
}

func (d *Device) BeginConditionalRender(id uint32, wait, perRegion bool) {
	gl.BeginConditionalRender(id, conditionalMode(wait, perRegion))
}

func (d *Device) EndConditionalRender() { gl.EndConditionalRender() }

// BeginConditionalRenderNV uses the core entry point. A core profile
// context always provides it, and the NV modes share the core values.
func (d *Device) BeginConditionalRenderNV(id uint32, wait, perRegion bool) {
	d.BeginConditionalRender(id, wait, perRegion)
}

func (d *Device) EndConditionalRenderNV() { gl.EndConditionalRender() }

func (d *Device) BindFramebuffer(t gldraw.FramebufferTarget, id uint32) {
	gl.BindFramebuffer(framebufferTarget(t), id)
}

func (d *Device) UseProgram(id uint32)                         { gl.UseProgram(id) }
func (d *Device) ActiveTexture(unit uint32)                    { gl.ActiveTexture(gl.TEXTURE0 + unit) }
func (d *Device) BindTexture(dim gldraw.TextureDim, id uint32) { gl.BindTexture(textureTarget(dim), id) }
func (d *Device) BindSampler(unit, id uint32)                  { gl.BindSampler(unit, id) }

func (d *Device) CreateSampler(b gldraw.SamplerBehavior) uint32 {
	var id uint32
	gl.GenSamplers(1, &id)
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_S, addressMode(b.WrapS))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_T, addressMode(b.WrapT))
	gl.SamplerParameteri(id, gl.TEXTURE_WRAP_R, addressMode(b.WrapR))
	gl.SamplerParameteri(id, gl.TEXTURE_MIN_FILTER, minFilter(b.MinFilter, b.MipmapFilter))
	gl.SamplerParameteri(id, gl.TEXTURE_MAG_FILTER, magFilter(b.MagFilter))
	if b.MaxAnisotropy > 1 {
		gl.SamplerParameterf(id, gl.TEXTURE_MAX_ANISOTROPY, float32(b.MaxAnisotropy))
	}
	if b.Compare != 0 {
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_MODE, gl.COMPARE_REF_TO_TEXTURE)
		gl.SamplerParameteri(id, gl.TEXTURE_COMPARE_FUNC, int32(compareFunc(b.Compare)))
	}
	d.logger.Debug("opengl: sampler object created", "sampler", id)
	return id
}

func (d *Device) DeleteSampler(id uint32) {
	gl.DeleteSamplers(1, &id)
	d.logger.Debug("opengl: sampler object deleted", "sampler", id)
}

func (d *Device) BindBuffer(t gldraw.BufferTarget, id uint32) { gl.BindBuffer(bufferTarget(t), id) }

func (d *Device) BindBufferBase(t gldraw.BufferTarget, index, id uint32) {
	gl.BindBufferBase(bufferTarget(t), index, id)
}

func (d *Device) BindBufferRange(t gldraw.BufferTarget, index, id uint32, offset, size int) {
	gl.BindBufferRange(bufferTarget(t), index, id, offset, size)
}

func (d *Device) UniformBlockBinding(program, block, binding uint32) {
	gl.UniformBlockBinding(program, block, binding)
}

func (d *Device) EnableVertexAttribArray(loc uint32)  { gl.EnableVertexAttribArray(loc) }
func (d *Device) DisableVertexAttribArray(loc uint32) { gl.DisableVertexAttribArray(loc) }
func (d *Device) VertexAttribDivisor(loc, div uint32) { gl.VertexAttribDivisor(loc, div) }

// VertexAttribPointer reads integer types as integers unless they are normalized.
func (d *Device) VertexAttribPointer(loc uint32, components int32, typ gldraw.AttributeType, normalized bool, stride, offset int) {
	if isInteger(typ) && !normalized {
		gl.VertexAttribIPointerWithOffset(loc, components, attribType(typ), int32(stride), uintptr(offset))
		return
	}
	gl.VertexAttribPointerWithOffset(loc, components, attribType(typ), normalized, int32(stride), uintptr(offset))
}

func (d *Device) Uniform(loc int32, v gldraw.RawUniform) {
	f, i, u := v.F, v.I, v.U
	switch v.Kind {
	case gldraw.TypeFloat:
		gl.Uniform1f(loc, f[0])
	case gldraw.TypeVec2:
		gl.Uniform2f(loc, f[0], f[1])
	case gldraw.TypeVec3:
		gl.Uniform3f(loc, f[0], f[1], f[2])
	case gldraw.TypeVec4:
		gl.Uniform4f(loc, f[0], f[1], f[2], f[3])
	case gldraw.TypeInt, gldraw.TypeBool, gldraw.TypeSampler:
		gl.Uniform1i(loc, i[0])
	case gldraw.TypeIVec2:
		gl.Uniform2i(loc, i[0], i[1])
	case gldraw.TypeIVec3:
		gl.Uniform3i(loc, i[0], i[1], i[2])
	case gldraw.TypeIVec4:
		gl.Uniform4i(loc, i[0], i[1], i[2], i[3])
	case gldraw.TypeUint:
		gl.Uniform1ui(loc, u[0])
	case gldraw.TypeUVec2:
		gl.Uniform2ui(loc, u[0], u[1])
	case gldraw.TypeUVec3:
		gl.Uniform3ui(loc, u[0], u[1], u[2])
	case gldraw.TypeUVec4:
		gl.Uniform4ui(loc, u[0], u[1], u[2], u[3])
	case gldraw.TypeMat2:
		gl.UniformMatrix2fv(loc, 1, false, &f[0])
	case gldraw.TypeMat3:
		gl.UniformMatrix3fv(loc, 1, false, &f[0])
	case gldraw.TypeMat4:
		gl.UniformMatrix4fv(loc, 1, false, &f[0])
	default:
		d.logger.Warn("opengl: uniform of unknown kind dropped", "location", loc, "kind", v.Kind)
	}
}

func (d *Device) BindTransformFeedback(id uint32) { gl.BindTransformFeedback(gl.TRANSFORM_FEEDBACK, id) }

func (d *Device) BeginTransformFeedback(mode gputypes.PrimitiveTopology) {
	gl.BeginTransformFeedback(topology(mode))
}

func (d *Device) EndTransformFeedback() { gl.EndTransformFeedback() }

func (d *Device) DrawArrays(p gldraw.PrimitiveType, first, count int) {
	gl.DrawArrays(primitiveMode(p), int32(first), int32(count))
}

func (d *Device) DrawArraysInstanced(p gldraw.PrimitiveType, first, count, instances int) {
	gl.DrawArraysInstanced(primitiveMode(p), int32(first), int32(count), int32(instances))
}

func (d *Device) DrawElements(p gldraw.PrimitiveType, count int, typ gldraw.IndexType, offset int) {
	gl.DrawElementsWithOffset(primitiveMode(p), int32(count), indexType(typ), uintptr(offset))
}

func (d *Device) DrawElementsInstanced(p gldraw.PrimitiveType, count int, typ gldraw.IndexType, offset, instances int) {
	gl.DrawElementsInstanced(primitiveMode(p), int32(count), indexType(typ), gl.PtrOffset(offset), int32(instances))
}

func (d *Device) MultiDrawArraysIndirect(p gldraw.PrimitiveType, offset, drawCount, stride int) {
	gl.MultiDrawArraysIndirect(primitiveMode(p), gl.PtrOffset(offset), int32(drawCount), int32(stride))
}

func (d *Device) FenceSync() gldraw.SyncToken {
	return gldraw.SyncToken(gl.FenceSync(gl.SYNC_GPU_COMMANDS_COMPLETE, 0))
}

func (d *Device) DeleteSync(t gldraw.SyncToken) { gl.DeleteSync(uintptr(t)) }
