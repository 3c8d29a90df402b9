package gldraw

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// syncState brings every render-state axis to the values of p.
// The conditional render predicate is applied last because it decides
// whether the draw that follows has any effect.
func (c *Context) syncState(p *DrawParameters, prog Program, prim PrimitiveType, width, height int) error {
	c.syncDepth(p)
	c.syncStencil(p)
	c.syncBlending(p.Blending)
	c.syncColorMask(p.ColorMask)
	c.syncLineWidth(p.LineWidth)
	c.syncPointSize(p.PointSize)
	c.syncPolygonMode(p.PolygonMode)
	c.syncCulling(p.Culling)
	c.setCap(CapMultisample, &c.state.Multisample, p.Multisampling)
	c.setCap(CapDither, &c.state.Dither, p.Dithering)
	c.syncViewport(p.Viewport, width, height)
	c.syncScissor(p.Scissor)
	c.syncRasterizerDiscard(!p.DrawPrimitives)
	if prim.IsPatches() {
		c.syncPatchVertices(prim.VerticesPerPatch)
	}
	c.syncFramebufferSRGB(prog)
	c.syncTransformFeedback(p.TransformFeedback, prim)
	if err := c.syncQueries(p); err != nil {
		return err
	}
	c.syncConditionalRender(p.ConditionalRendering)
	return nil
}

func (c *Context) syncDepth(p *DrawParameters) {
	st := &c.state
	if p.DepthTest == gputypes.CompareFunctionAlways {
		c.setCap(CapDepthTest, &st.DepthTest, false)
	} else {
		if st.DepthFunc != p.DepthTest {
			c.dev.DepthFunc(p.DepthTest)
			st.DepthFunc = p.DepthTest
		}
		c.setCap(CapDepthTest, &st.DepthTest, true)
	}

	if st.DepthMask != p.DepthWrite {
		c.dev.DepthMask(p.DepthWrite)
		st.DepthMask = p.DepthWrite
	}
	if st.DepthRange != p.DepthRange {
		c.dev.DepthRange(p.DepthRange[0], p.DepthRange[1])
		st.DepthRange = p.DepthRange
	}
}

// syncStencil applies the clockwise configuration to the back face and
// the counter-clockwise one to the front face.
func (c *Context) syncStencil(p *DrawParameters) {
	st := &c.state
	c.syncStencilFace(FaceBack, &st.StencilBack, p.StencilClockwise)
	c.syncStencilFace(FaceFront, &st.StencilFront, p.StencilCounterClockwise)

	enable := p.StencilClockwise.Test != gputypes.CompareFunctionAlways ||
		p.StencilCounterClockwise.Test != gputypes.CompareFunctionAlways ||
		p.StencilClockwise.FailOp != hal.StencilOperationKeep ||
		p.StencilCounterClockwise.FailOp != hal.StencilOperationKeep
	c.setCap(CapStencilTest, &st.StencilTest, enable)
}

func (c *Context) syncStencilFace(face Face, mirror *StencilFace, want StencilFace) {
	fn, ref, mask := want.encodedTest()
	if mirror.Test != fn || mirror.Reference != ref || mirror.ReadMask != mask {
		c.dev.StencilFuncSeparate(face, fn, ref, mask)
		mirror.Test, mirror.Reference, mirror.ReadMask = fn, ref, mask
	}
	if mirror.WriteMask != want.WriteMask {
		c.dev.StencilMaskSeparate(face, want.WriteMask)
		mirror.WriteMask = want.WriteMask
	}
	if mirror.FailOp != want.FailOp || mirror.DepthFailOp != want.DepthFailOp || mirror.PassOp != want.PassOp {
		c.dev.StencilOpSeparate(face, want.FailOp, want.DepthFailOp, want.PassOp)
		mirror.FailOp, mirror.DepthFailOp, mirror.PassOp = want.FailOp, want.DepthFailOp, want.PassOp
	}
}

func (c *Context) syncBlending(b Blending) {
	st := &c.state
	if b.Mode == BlendReplace {
		c.setCap(CapBlend, &st.Blend, false)
		return
	}

	op, factors := b.Mode.operation()
	if st.BlendEquation != op {
		c.dev.BlendEquation(op)
		st.BlendEquation = op
	}
	c.setCap(CapBlend, &st.Blend, true)

	if factors && (st.BlendSrc != b.Source || st.BlendDst != b.Destination) {
		c.dev.BlendFunc(b.Source, b.Destination)
		st.BlendSrc, st.BlendDst = b.Source, b.Destination
	}
}

func (c *Context) syncColorMask(m gputypes.ColorWriteMask) {
	if c.state.ColorMask != m {
		c.dev.ColorMask(m)
		c.state.ColorMask = m
	}
}

func (c *Context) syncLineWidth(w *float32) {
	if w != nil && c.state.LineWidth != *w {
		c.dev.LineWidth(*w)
		c.state.LineWidth = *w
	}
}

func (c *Context) syncPointSize(s *float32) {
	if s != nil && c.state.PointSize != *s {
		c.dev.PointSize(*s)
		c.state.PointSize = *s
	}
}

// syncPolygonMode is a no-op on OpenGL ES, where only fill exists.
func (c *Context) syncPolygonMode(m PolygonMode) {
	if !c.caps.SupportsPolygonMode() {
		return
	}
	if c.state.PolygonMode != m {
		c.dev.PolygonMode(m)
		c.state.PolygonMode = m
	}
}

func (c *Context) syncCulling(cull Culling) {
	st := &c.state
	var mode gputypes.CullMode
	switch cull {
	case CullClockwise:
		mode = gputypes.CullModeBack
	case CullCounterClockwise:
		mode = gputypes.CullModeFront
	default:
		c.setCap(CapCullFace, &st.CullFace, false)
		return
	}
	c.setCap(CapCullFace, &st.CullFace, true)
	if st.CullMode != mode {
		c.dev.CullFace(mode)
		st.CullMode = mode
	}
}

func (c *Context) syncViewport(v *Rect, width, height int) {
	want := Rect{Width: width, Height: height}
	if v != nil {
		want = *v
	}
	if c.state.Viewport != want {
		c.dev.Viewport(want)
		c.state.Viewport = want
	}
}

func (c *Context) syncScissor(r *Rect) {
	st := &c.state
	if r == nil {
		c.setCap(CapScissorTest, &st.ScissorTest, false)
		return
	}
	if st.Scissor != *r {
		c.dev.Scissor(*r)
		st.Scissor = *r
	}
	c.setCap(CapScissorTest, &st.ScissorTest, true)
}

func (c *Context) syncRasterizerDiscard(discard bool) {
	flag := CapRasterizerDiscard
	if !c.caps.coreRasterizerDiscard() {
		flag = CapRasterizerDiscardEXT
	}
	c.setCap(flag, &c.state.RasterizerDiscard, discard)
}

func (c *Context) syncPatchVertices(n int) {
	if c.state.PatchVertices != int32(n) {
		c.dev.PatchVertices(int32(n))
		c.state.PatchVertices = int32(n)
	}
}

// syncFramebufferSRGB converts to sRGB on write unless the program
// already outputs sRGB values.
func (c *Context) syncFramebufferSRGB(prog Program) {
	if !c.caps.SupportsFramebufferSRGB() {
		return
	}
	c.setCap(CapFramebufferSRGB, &c.state.FramebufferSRGB, !prog.HasSRGBOutput())
}

// syncTransformFeedback keeps a running capture when the session and the
// primitive mode are unchanged.
func (c *Context) syncTransformFeedback(tf *TransformFeedbackSession, prim PrimitiveType) {
	st := &c.state
	if tf == nil {
		c.endTransformFeedback()
		return
	}

	mode := prim.FeedbackTopology()
	if !st.TransformFeedbackActive || st.TransformFeedback != tf.ID || st.TransformFeedbackMode != mode {
		c.endTransformFeedback()
		if st.TransformFeedback != tf.ID {
			c.dev.BindTransformFeedback(tf.ID)
			st.TransformFeedback = tf.ID
		}
		c.dev.BeginTransformFeedback(mode)
		st.TransformFeedbackActive = true
		st.TransformFeedbackMode = mode
	}
	c.fences.addBuffer(tf.Buffer)
}

func (c *Context) endTransformFeedback() {
	if c.state.TransformFeedbackActive {
		c.dev.EndTransformFeedback()
		c.state.TransformFeedbackActive = false
	}
}
