// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gldraw"
)

func capability(c gldraw.Capability) uint32 {
	switch c {
	case gldraw.CapDepthTest:
		return gl.DEPTH_TEST
	case gldraw.CapStencilTest:
		return gl.STENCIL_TEST
	case gldraw.CapBlend:
		return gl.BLEND
	case gldraw.CapCullFace:
		return gl.CULL_FACE
	case gldraw.CapMultisample:
		return gl.MULTISAMPLE
	case gldraw.CapDither:
		return gl.DITHER
	case gldraw.CapScissorTest:
		return gl.SCISSOR_TEST
	case gldraw.CapRasterizerDiscard, gldraw.CapRasterizerDiscardEXT:
		// GL_RASTERIZER_DISCARD_EXT has the core value.
		return gl.RASTERIZER_DISCARD
	case gldraw.CapFramebufferSRGB:
		return gl.FRAMEBUFFER_SRGB
	default:
		return 0
	}
}

func compareFunc(f gputypes.CompareFunction) uint32 {
	switch f {
	case gputypes.CompareFunctionNever:
		return gl.NEVER
	case gputypes.CompareFunctionLess:
		return gl.LESS
	case gputypes.CompareFunctionEqual:
		return gl.EQUAL
	case gputypes.CompareFunctionLessEqual:
		return gl.LEQUAL
	case gputypes.CompareFunctionGreater:
		return gl.GREATER
	case gputypes.CompareFunctionNotEqual:
		return gl.NOTEQUAL
	case gputypes.CompareFunctionGreaterEqual:
		return gl.GEQUAL
	default:
		return gl.ALWAYS
	}
}

func stencilOp(op hal.StencilOperation) uint32 {
	switch op {
	case hal.StencilOperationZero:
		return gl.ZERO
	case hal.StencilOperationReplace:
		return gl.REPLACE
	case hal.StencilOperationInvert:
		return gl.INVERT
	case hal.StencilOperationIncrementClamp:
		return gl.INCR
	case hal.StencilOperationDecrementClamp:
		return gl.DECR
	case hal.StencilOperationIncrementWrap:
		return gl.INCR_WRAP
	case hal.StencilOperationDecrementWrap:
		return gl.DECR_WRAP
	default:
		return gl.KEEP
	}
}

func face(f gldraw.Face) uint32 {
	switch f {
	case gldraw.FaceFront:
		return gl.FRONT
	case gldraw.FaceBack:
		return gl.BACK
	default:
		return gl.FRONT_AND_BACK
	}
}

func cullFace(m gputypes.CullMode) uint32 {
	if m == gputypes.CullModeFront {
		return gl.FRONT
	}
	return gl.BACK
}

func blendEquation(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	default:
		return gl.FUNC_ADD
	}
}

func blendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	default:
		return gl.ONE
	}
}

func polygonMode(m gldraw.PolygonMode) uint32 {
	switch m {
	case gldraw.PolygonLine:
		return gl.LINE
	case gldraw.PolygonPoint:
		return gl.POINT
	default:
		return gl.FILL
	}
}

func queryTarget(k gldraw.QueryKind) uint32 {
	switch k {
	case gldraw.QueryAnySamplesPassed:
		return gl.ANY_SAMPLES_PASSED
	case gldraw.QueryAnySamplesPassedConservative:
		return gl.ANY_SAMPLES_PASSED_CONSERVATIVE
	case gldraw.QueryTimeElapsed:
		return gl.TIME_ELAPSED
	case gldraw.QueryPrimitivesGenerated:
		return gl.PRIMITIVES_GENERATED
	case gldraw.QueryTransformFeedbackPrimitivesWritten:
		return gl.TRANSFORM_FEEDBACK_PRIMITIVES_WRITTEN
	default:
		return gl.SAMPLES_PASSED
	}
}

// conditionalMode returns the GL_QUERY_* mode. The NV extension uses the same values.
func conditionalMode(wait, perRegion bool) uint32 {
	switch {
	case wait && perRegion:
		return gl.QUERY_BY_REGION_WAIT
	case perRegion:
		return gl.QUERY_BY_REGION_NO_WAIT
	case wait:
		return gl.QUERY_WAIT
	default:
		return gl.QUERY_NO_WAIT
	}
}

func framebufferTarget(t gldraw.FramebufferTarget) uint32 {
	switch t {
	case gldraw.FramebufferDraw:
		return gl.DRAW_FRAMEBUFFER
	case gldraw.FramebufferRead:
		return gl.READ_FRAMEBUFFER
	default:
		return gl.FRAMEBUFFER
	}
}

func textureTarget(d gldraw.TextureDim) uint32 {
	switch d {
	case gldraw.Texture1D:
		return gl.TEXTURE_1D
	case gldraw.Texture1DArray:
		return gl.TEXTURE_1D_ARRAY
	case gldraw.Texture2DArray:
		return gl.TEXTURE_2D_ARRAY
	case gldraw.Texture2DMultisample:
		return gl.TEXTURE_2D_MULTISAMPLE
	case gldraw.Texture2DMultisampleArray:
		return gl.TEXTURE_2D_MULTISAMPLE_ARRAY
	case gldraw.Texture3D:
		return gl.TEXTURE_3D
	case gldraw.TextureCube:
		return gl.TEXTURE_CUBE_MAP
	default:
		return gl.TEXTURE_2D
	}
}

func bufferTarget(t gldraw.BufferTarget) uint32 {
	switch t {
	case gldraw.BufferElementArray:
		return gl.ELEMENT_ARRAY_BUFFER
	case gldraw.BufferDrawIndirect:
		return gl.DRAW_INDIRECT_BUFFER
	case gldraw.BufferUniform:
		return gl.UNIFORM_BUFFER
	case gldraw.BufferTransformFeedback:
		return gl.TRANSFORM_FEEDBACK_BUFFER
	default:
		return gl.ARRAY_BUFFER
	}
}

func attribType(t gldraw.AttributeType) uint32 {
	switch t {
	case gldraw.AttribFloat16:
		return gl.HALF_FLOAT
	case gldraw.AttribInt8:
		return gl.BYTE
	case gldraw.AttribUint8:
		return gl.UNSIGNED_BYTE
	case gldraw.AttribInt16:
		return gl.SHORT
	case gldraw.AttribUint16:
		return gl.UNSIGNED_SHORT
	case gldraw.AttribInt32:
		return gl.INT
	case gldraw.AttribUint32:
		return gl.UNSIGNED_INT
	default:
		return gl.FLOAT
	}
}

// isInteger reports whether t is read by integer vertex inputs when not normalized.
func isInteger(t gldraw.AttributeType) bool {
	return t != gldraw.AttribFloat32 && t != gldraw.AttribFloat16
}

func indexType(t gldraw.IndexType) uint32 {
	switch t {
	case gldraw.IndexUint8:
		return gl.UNSIGNED_BYTE
	case gldraw.IndexUint16:
		return gl.UNSIGNED_SHORT
	default:
		return gl.UNSIGNED_INT
	}
}

func primitiveMode(p gldraw.PrimitiveType) uint32 {
	if p.IsPatches() {
		return gl.PATCHES
	}
	return topology(p.Topology)
}

func topology(t gputypes.PrimitiveTopology) uint32 {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	default:
		return gl.TRIANGLES
	}
}

func addressMode(m gputypes.AddressMode) int32 {
	switch m {
	case gputypes.AddressModeClampToEdge:
		return gl.CLAMP_TO_EDGE
	case gputypes.AddressModeMirrorRepeat:
		return gl.MIRRORED_REPEAT
	default:
		return gl.REPEAT
	}
}

// minFilter combines the minification and mipmap filters into one GL value.
func minFilter(minify, mip gputypes.FilterMode) int32 {
	linear := minify == gputypes.FilterModeLinear
	mipLinear := mip == gputypes.FilterModeLinear
	switch {
	case linear && mipLinear:
		return gl.LINEAR_MIPMAP_LINEAR
	case linear:
		return gl.LINEAR_MIPMAP_NEAREST
	case mipLinear:
		return gl.NEAREST_MIPMAP_LINEAR
	default:
		return gl.NEAREST_MIPMAP_NEAREST
	}
}

func magFilter(f gputypes.FilterMode) int32 {
	if f == gputypes.FilterModeLinear {
		return gl.LINEAR
	}
	return gl.NEAREST
}
