package gldraw

// DrawRequest is everything one draw call needs.
// The core only borrows it for the duration of Draw.
type DrawRequest struct {
	// Framebuffer is the target framebuffer object, 0 for the default one.
	Framebuffer uint32
	// Width and Height are the target dimensions in pixels.
	Width, Height int

	Vertices []VertexSource
	Indices  IndicesSource
	Program  Program
	Uniforms Uniforms

	// Parameters defaults to DefaultDrawParameters when nil.
	Parameters *DrawParameters
}

// Draw issues one draw call.
//
// Configuration errors are reported before the device is touched. Later
// errors abort the call but leave the state changes already made in
// place; the mirror stays correct either way. Requesting more textures
// or uniform blocks than the device can bind at once panics.
func (c *Context) Draw(req *DrawRequest) error {
	if err := c.draw(req); err != nil {
		c.fences.reset()
		Logger().Debug("gldraw: draw failed", "program", programID(req.Program), "err", err)
		return err
	}
	return nil
}

func (c *Context) draw(req *DrawRequest) error {
	if req.Program == nil {
		return ErrNoProgram
	}
	params := req.Parameters
	if params == nil {
		d := DefaultDrawParameters()
		params = &d
	}
	if err := params.Validate(&c.caps, req.Width, req.Height); err != nil {
		return err
	}

	prim := req.Indices.primitive
	if prim.IsPatches() {
		if !c.caps.SupportsTessellation() {
			return ErrTessellationNotSupported
		}
		if prim.VerticesPerPatch <= 0 || prim.VerticesPerPatch > c.caps.MaxPatchVertices {
			return ErrUnsupportedVerticesPerPatch
		}
	}
	if req.Indices.kind == IndicesMultidrawIndirect && !c.caps.SupportsMultidrawIndirect() {
		return ErrMultidrawIndirectNotSupported
	}

	counts, err := c.bindVertices(req.Program, req.Vertices, req.Indices)
	if err != nil {
		return err
	}

	c.bindFramebuffer(req.Framebuffer)
	c.useProgram(req.Program.ProgramID())

	if err := c.bindUniforms(req.Program, req.Uniforms, c.newBindings()); err != nil {
		return err
	}
	if err := c.syncState(params, req.Program, prim, req.Width, req.Height); err != nil {
		return err
	}

	if err := c.issue(req.Indices, counts); err != nil {
		return err
	}

	c.fences.install(c.dev)
	c.samplers.trim()
	return nil
}

// issue emits the single draw call selected by the indices source.
func (c *Context) issue(indices IndicesSource, counts sourceCounts) error {
	prim := indices.primitive
	switch indices.kind {
	case IndicesBuffer:
		buf := indices.buffer
		if counts.instanced {
			c.dev.DrawElementsInstanced(prim, buf.ElementCount(), indices.indexType, buf.OffsetBytes(), counts.instances)
		} else {
			c.dev.DrawElements(prim, buf.ElementCount(), indices.indexType, buf.OffsetBytes())
		}
		c.fences.addBuffer(buf)

	case IndicesMultidrawIndirect:
		buf := indices.buffer
		c.bindBuffer(BufferDrawIndirect, &c.state.IndirectBuffer, buf.BufferID())
		c.dev.MultiDrawArraysIndirect(prim, buf.OffsetBytes(), buf.ElementCount(), 0)
		c.fences.addBuffer(buf)

	default:
		if !counts.verticesKnown {
			return ErrVerticesSourcesLengthMismatch
		}
		if counts.instanced {
			c.dev.DrawArraysInstanced(prim, 0, counts.vertices, counts.instances)
		} else {
			c.dev.DrawArrays(prim, 0, counts.vertices)
		}
	}
	return nil
}

// bindFramebuffer binds id for drawing. Devices without separate draw
// and read targets bind both.
func (c *Context) bindFramebuffer(id uint32) {
	st := &c.state
	if c.caps.SupportsDrawFramebuffer() {
		if st.DrawFramebuffer != id {
			c.dev.BindFramebuffer(FramebufferDraw, id)
			st.DrawFramebuffer = id
		}
		return
	}
	if st.DrawFramebuffer != id || st.ReadFramebuffer != id {
		c.dev.BindFramebuffer(FramebufferBoth, id)
		st.DrawFramebuffer, st.ReadFramebuffer = id, id
	}
}

// useProgram makes id current. A running transform feedback capture is
// ended first; the device rejects program changes during a capture.
func (c *Context) useProgram(id uint32) {
	if c.state.Program == id {
		return
	}
	c.endTransformFeedback()
	c.dev.UseProgram(id)
	c.state.Program = id
}

func programID(p Program) uint32 {
	if p == nil {
		return 0
	}
	return p.ProgramID()
}
