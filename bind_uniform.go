package gldraw

import (
	"fmt"

	"github.com/gogpu/gldraw/internal/bitset"
)

// bindings holds the slots claimed by the current draw call.
type bindings struct {
	textureUnits   *bitset.Set
	uniformBuffers *bitset.Set
}

func (c *Context) newBindings() bindings {
	return bindings{
		textureUnits:   bitset.New(c.caps.MaxCombinedTextureImageUnits),
		uniformBuffers: bitset.New(c.caps.MaxUniformBufferBindings),
	}
}

// bindUniforms binds every value of u whose name prog declares.
// Names the program does not declare are skipped.
func (c *Context) bindUniforms(prog Program, u Uniforms, b bindings) error {
	if u == nil {
		return nil
	}
	pc := c.programCache(prog.ProgramID())
	for name, v := range u.All() {
		if info, ok := prog.Uniform(name); ok {
			if err := c.bindUniform(pc, name, info, v, b); err != nil {
				return err
			}
			continue
		}
		if block, ok := prog.UniformBlock(name); ok {
			if err := c.bindUniformBlock(prog, pc, name, block, v, b); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Context) bindUniform(pc *programCache, name string, info UniformInfo, v UniformValue, b bindings) error {
	if info.Size > 1 {
		return &UniformError{Name: name, Err: ErrUniformArrayNotSupported}
	}
	if v.Kind() == TypeBlock {
		return &UniformError{Name: name, Err: ErrUniformBufferToValue}
	}

	if v.Kind() != TypeSampler {
		if v.Kind() != info.Type.Kind {
			return &UniformError{Name: name, Expected: info.Type, Err: ErrUniformTypeMismatch}
		}
		c.uploadUniform(pc, info.Location, v.raw)
		return nil
	}

	if !info.Type.acceptsTexture(v.texture) {
		return &UniformError{Name: name, Expected: info.Type, Err: ErrUniformTypeMismatch}
	}
	var sampler uint32
	if v.sampler != nil {
		if !c.caps.SupportsSamplerObjects() {
			return &UniformError{Name: name, Err: ErrSamplersNotSupported}
		}
		sampler = c.samplers.get(*v.sampler)
	}
	unit := c.bindTexture(b.textureUnits, v.texture, sampler)
	c.uploadUniform(pc, info.Location, RawUniform{Kind: TypeInt, I: [4]int32{int32(unit)}})
	return nil
}

// uploadUniform skips values already present in the program.
func (c *Context) uploadUniform(pc *programCache, loc int32, raw RawUniform) {
	if have, ok := pc.uniforms[loc]; ok && have == raw {
		return
	}
	c.dev.Uniform(loc, raw)
	pc.uniforms[loc] = raw
}

// bindTexture picks a texture unit for (ref, sampler), claims it and
// makes the device match. In order of preference:
//
//  1. a unit already holding the texture and the sampler, even if claimed
//  2. an unclaimed unit holding the texture with another sampler
//  3. a unit never used so far
//  4. the lowest unclaimed unit
//
// Running out of units panics.
func (c *Context) bindTexture(claimed *bitset.Set, ref TextureRef, sampler uint32) uint32 {
	st := &c.state
	want := TextureUnit{Dim: ref.Dim, Texture: ref.ID, Sampler: sampler}

	units := st.TextureUnits[:min(len(st.TextureUnits), claimed.Capacity())]
	unit := -1
	for i, u := range units {
		if u == want {
			unit = i
			break
		}
	}
	if unit < 0 {
		for i, u := range units {
			if !claimed.IsUsed(i) && u.Texture == ref.ID && u.Dim == ref.Dim {
				unit = i
				break
			}
		}
	}
	if unit < 0 && len(st.TextureUnits) < claimed.Capacity() {
		unit = len(st.TextureUnits)
		st.TextureUnits = append(st.TextureUnits, TextureUnit{})
	}
	if unit < 0 {
		i, ok := claimed.Unused()
		if !ok {
			panic(fmt.Sprintf("gldraw: all %d texture units are in use by this draw", claimed.Capacity()))
		}
		unit = i
		Logger().Debug("gldraw: evicting texture unit", "unit", unit, "texture", st.TextureUnits[unit].Texture)
	}
	claimed.Use(unit)

	u := &st.TextureUnits[unit]
	if *u == want {
		return uint32(unit)
	}
	if st.ActiveTexture != uint32(unit) {
		c.dev.ActiveTexture(uint32(unit))
		st.ActiveTexture = uint32(unit)
	}
	if u.Texture != want.Texture || u.Dim != want.Dim {
		c.dev.BindTexture(want.Dim, want.Texture)
		u.Texture, u.Dim = want.Texture, want.Dim
	}
	if u.Sampler != want.Sampler {
		c.dev.BindSampler(uint32(unit), want.Sampler)
		u.Sampler = want.Sampler
	}
	return uint32(unit)
}

func (c *Context) bindUniformBlock(prog Program, pc *programCache, name string, block *UniformBlock, v UniformValue, b bindings) error {
	if v.Kind() != TypeBlock {
		return &UniformError{Name: name, Err: ErrUniformValueToBlock}
	}
	if v.matches != nil && !v.matches(block) {
		return &UniformError{Name: name, Err: ErrUniformBlockLayoutMismatch}
	}

	point, ok := b.uniformBuffers.Unused()
	if !ok {
		panic(fmt.Sprintf("gldraw: all %d uniform buffer binding points are in use by this draw", b.uniformBuffers.Capacity()))
	}
	b.uniformBuffers.Use(point)

	st := &c.state
	for len(st.UniformBuffers) <= point {
		st.UniformBuffers = append(st.UniformBuffers, BufferRange{})
	}
	buf := v.block
	want := BufferRange{Buffer: buf.BufferID(), Offset: buf.OffsetBytes(), Size: buf.SizeBytes()}
	if st.UniformBuffers[point] != want {
		// A view without a size stands for the whole buffer object.
		if want.Size <= 0 && want.Offset == 0 {
			c.dev.BindBufferBase(BufferUniform, uint32(point), want.Buffer)
		} else {
			c.dev.BindBufferRange(BufferUniform, uint32(point), want.Buffer, want.Offset, want.Size)
		}
		st.UniformBuffers[point] = want
	}

	if have, ok := pc.blocks[block.Index]; !ok || have != uint32(point) {
		c.dev.UniformBlockBinding(prog.ProgramID(), block.Index, uint32(point))
		pc.blocks[block.Index] = uint32(point)
	}
	c.fences.addBuffer(buf)
	return nil
}
