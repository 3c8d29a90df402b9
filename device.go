package gldraw

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// Device is the command vocabulary of an OpenGL-style device context.
//
// Implementations forward each call to the driver. The core never reads
// state back from a Device; it relies on its own mirror, so every call
// must take effect exactly as issued.
//
// See backend/opengl for the go-gl implementation and gldrawtest for a
// recording implementation.
type Device interface {
	Enable(c Capability)
	Disable(c Capability)

	DepthFunc(fn gputypes.CompareFunction)
	DepthMask(write bool)
	DepthRange(near, far float32)

	StencilFuncSeparate(face Face, fn gputypes.CompareFunction, ref int32, readMask uint32)
	StencilMaskSeparate(face Face, writeMask uint32)
	StencilOpSeparate(face Face, fail, depthFail, pass hal.StencilOperation)

	BlendEquation(op gputypes.BlendOperation)
	BlendFunc(src, dst gputypes.BlendFactor)
	ColorMask(mask gputypes.ColorWriteMask)
	LineWidth(width float32)
	PointSize(size float32)
	CullFace(mode gputypes.CullMode)
	PolygonMode(mode PolygonMode)
	Viewport(r Rect)
	Scissor(r Rect)
	PatchVertices(n int32)

	BeginQuery(kind QueryKind, id uint32)
	EndQuery(kind QueryKind)
	BeginConditionalRender(id uint32, wait, perRegion bool)
	EndConditionalRender()
	BeginConditionalRenderNV(id uint32, wait, perRegion bool)
	EndConditionalRenderNV()

	BindFramebuffer(target FramebufferTarget, id uint32)
	UseProgram(id uint32)

	// ActiveTexture selects the texture unit by index, not by enum.
	ActiveTexture(unit uint32)
	BindTexture(dim TextureDim, id uint32)
	BindSampler(unit, id uint32)
	CreateSampler(b SamplerBehavior) uint32
	DeleteSampler(id uint32)

	BindBuffer(target BufferTarget, id uint32)
	BindBufferBase(target BufferTarget, index, id uint32)
	BindBufferRange(target BufferTarget, index, id uint32, offset, size int)
	UniformBlockBinding(program, block, binding uint32)

	EnableVertexAttribArray(location uint32)
	DisableVertexAttribArray(location uint32)
	VertexAttribPointer(location uint32, components int32, typ AttributeType, normalized bool, stride, offset int)
	VertexAttribDivisor(location, divisor uint32)

	// Uniform uploads v to location of the program in use.
	Uniform(location int32, v RawUniform)

	BindTransformFeedback(id uint32)
	BeginTransformFeedback(mode gputypes.PrimitiveTopology)
	EndTransformFeedback()

	DrawArrays(mode PrimitiveType, first, count int)
	DrawArraysInstanced(mode PrimitiveType, first, count, instances int)
	DrawElements(mode PrimitiveType, count int, typ IndexType, offset int)
	DrawElementsInstanced(mode PrimitiveType, count int, typ IndexType, offset, instances int)
	MultiDrawArraysIndirect(mode PrimitiveType, offset, drawCount, stride int)

	FenceSync() SyncToken
	DeleteSync(t SyncToken)
}

// Capability is a device toggle switched with Enable and Disable.
type Capability uint8

const (
	CapDepthTest Capability = iota
	CapStencilTest
	CapBlend
	CapCullFace
	CapMultisample
	CapDither
	CapScissorTest
	CapRasterizerDiscard
	// CapRasterizerDiscardEXT is the EXT_transform_feedback variant used before GL 3.0.
	CapRasterizerDiscardEXT
	CapFramebufferSRGB
)

// String returns a human-readable name for the capability.
func (c Capability) String() string {
	switch c {
	case CapDepthTest:
		return "DepthTest"
	case CapStencilTest:
		return "StencilTest"
	case CapBlend:
		return "Blend"
	case CapCullFace:
		return "CullFace"
	case CapMultisample:
		return "Multisample"
	case CapDither:
		return "Dither"
	case CapScissorTest:
		return "ScissorTest"
	case CapRasterizerDiscard:
		return "RasterizerDiscard"
	case CapRasterizerDiscardEXT:
		return "RasterizerDiscardEXT"
	case CapFramebufferSRGB:
		return "FramebufferSRGB"
	default:
		return unknownString
	}
}

// Face selects the polygon face a stencil call applies to.
type Face uint8

const (
	FaceFront Face = iota
	FaceBack
	FaceFrontAndBack
)

// String returns a human-readable name for the face.
func (f Face) String() string {
	switch f {
	case FaceFront:
		return "Front"
	case FaceBack:
		return "Back"
	case FaceFrontAndBack:
		return "FrontAndBack"
	default:
		return unknownString
	}
}

// PolygonMode controls how polygons are rasterized.
type PolygonMode uint8

const (
	PolygonFill PolygonMode = iota
	PolygonLine
	PolygonPoint
)

// String returns a human-readable name for the polygon mode.
func (m PolygonMode) String() string {
	switch m {
	case PolygonFill:
		return "Fill"
	case PolygonLine:
		return "Line"
	case PolygonPoint:
		return "Point"
	default:
		return unknownString
	}
}

// FramebufferTarget is the binding point of a framebuffer.
type FramebufferTarget uint8

const (
	// FramebufferDraw is the draw target, available on GL 3.0+ or
	// ARB_framebuffer_object.
	FramebufferDraw FramebufferTarget = iota
	FramebufferRead
	// FramebufferBoth binds draw and read at once.
	FramebufferBoth
)

// String returns a human-readable name for the target.
func (t FramebufferTarget) String() string {
	switch t {
	case FramebufferDraw:
		return "Draw"
	case FramebufferRead:
		return "Read"
	case FramebufferBoth:
		return "Both"
	default:
		return unknownString
	}
}

// BufferTarget is a buffer binding point.
type BufferTarget uint8

const (
	BufferArray BufferTarget = iota
	BufferElementArray
	BufferDrawIndirect
	BufferUniform
	BufferTransformFeedback
)

// String returns a human-readable name for the target.
func (t BufferTarget) String() string {
	switch t {
	case BufferArray:
		return "Array"
	case BufferElementArray:
		return "ElementArray"
	case BufferDrawIndirect:
		return "DrawIndirect"
	case BufferUniform:
		return "Uniform"
	case BufferTransformFeedback:
		return "TransformFeedback"
	default:
		return unknownString
	}
}

// Rect is a window-space rectangle in pixels.
type Rect struct {
	X, Y          int
	Width, Height int
}

const unknownString = "Unknown"
