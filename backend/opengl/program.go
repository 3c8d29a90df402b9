// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gldraw"
)

var (
	// ErrCompile is returned when a shader stage fails to compile.
	ErrCompile = errors.New("opengl: shader compilation failed")

	// ErrLink is returned when a program fails to link.
	ErrLink = errors.New("opengl: program link failed")
)

// ShaderSource holds the GLSL source of every stage of a program.
// Empty stages are skipped.
type ShaderSource struct {
	Vertex         string
	TessControl    string
	TessEvaluation string
	Geometry       string
	Fragment       string

	// SRGBOutput marks a fragment stage that already writes sRGB values.
	SRGBOutput bool
}

// NewProgram compiles and links src and introspects the result.
func NewProgram(src ShaderSource) (*gldraw.ProgramInfo, error) {
	stages := []struct {
		kind uint32
		text string
	}{
		{gl.VERTEX_SHADER, src.Vertex},
		{gl.TESS_CONTROL_SHADER, src.TessControl},
		{gl.TESS_EVALUATION_SHADER, src.TessEvaluation},
		{gl.GEOMETRY_SHADER, src.Geometry},
		{gl.FRAGMENT_SHADER, src.Fragment},
	}

	id := gl.CreateProgram()
	var shaders []uint32
	defer func() {
		for _, s := range shaders {
			gl.DeleteShader(s)
		}
	}()
	for _, st := range stages {
		if st.text == "" {
			continue
		}
		s, err := compile(st.kind, st.text)
		if err != nil {
			gl.DeleteProgram(id)
			return nil, err
		}
		shaders = append(shaders, s)
		gl.AttachShader(id, s)
	}

	gl.LinkProgram(id)
	var status int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		log := programLog(id)
		gl.DeleteProgram(id)
		return nil, fmt.Errorf("%w: %s", ErrLink, log)
	}
	for _, s := range shaders {
		gl.DetachShader(id, s)
	}

	p := &gldraw.ProgramInfo{
		ID:           id,
		Uniforms:     uniforms(id),
		Blocks:       blocks(id),
		Attributes:   attributes(id),
		Tessellation: src.TessControl != "" || src.TessEvaluation != "",
		SRGBOutput:   src.SRGBOutput,
	}
	gldraw.Logger().Debug("opengl: program linked",
		"program", id,
		"uniforms", len(p.Uniforms),
		"blocks", len(p.Blocks),
		"attributes", len(p.Attributes))
	return p, nil
}

func compile(kind uint32, text string) (uint32, error) {
	s := gl.CreateShader(kind)
	csrc, free := gl.Strs(text + "\x00")
	gl.ShaderSource(s, 1, csrc, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &n)
		log := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(s, n, nil, gl.Str(log))
		gl.DeleteShader(s)
		return 0, fmt.Errorf("%w: %s: %s", ErrCompile, stageName(kind), strings.TrimRight(log, "\x00"))
	}
	return s, nil
}

func programLog(id uint32) string {
	var n int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &n)
	log := strings.Repeat("\x00", int(n+1))
	gl.GetProgramInfoLog(id, n, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func stageName(kind uint32) string {
	switch kind {
	case gl.VERTEX_SHADER:
		return "vertex"
	case gl.TESS_CONTROL_SHADER:
		return "tessellation control"
	case gl.TESS_EVALUATION_SHADER:
		return "tessellation evaluation"
	case gl.GEOMETRY_SHADER:
		return "geometry"
	case gl.FRAGMENT_SHADER:
		return "fragment"
	default:
		return "unknown"
	}
}

// activeName reads the name of an active resource into a Go string.
func activeName(get func(buf *uint8, length *int32), maxLen int32) string {
	buf := make([]uint8, maxLen+1)
	var n int32
	get(&buf[0], &n)
	return string(buf[:n])
}

func uniforms(id uint32) map[string]gldraw.UniformInfo {
	var count, maxLen int32
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORMS, &count)
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORM_MAX_LENGTH, &maxLen)

	out := make(map[string]gldraw.UniformInfo, count)
	for i := range uint32(count) {
		var size int32
		var typ uint32
		name := activeName(func(buf *uint8, n *int32) {
			gl.GetActiveUniform(id, i, maxLen+1, n, &size, &typ, buf)
		}, maxLen)
		name = strings.TrimSuffix(name, "[0]")

		// Block members have no location.
		loc := gl.GetUniformLocation(id, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		out[name] = gldraw.UniformInfo{Location: loc, Type: uniformType(typ), Size: int(size)}
	}
	return out
}

func attributes(id uint32) map[string]gldraw.AttributeInfo {
	var count, maxLen int32
	gl.GetProgramiv(id, gl.ACTIVE_ATTRIBUTES, &count)
	gl.GetProgramiv(id, gl.ACTIVE_ATTRIBUTE_MAX_LENGTH, &maxLen)

	out := make(map[string]gldraw.AttributeInfo, count)
	for i := range uint32(count) {
		var size int32
		var typ uint32
		name := activeName(func(buf *uint8, n *int32) {
			gl.GetActiveAttrib(id, i, maxLen+1, n, &size, &typ, buf)
		}, maxLen)

		// Built-ins such as gl_VertexID report -1.
		loc := gl.GetAttribLocation(id, gl.Str(name+"\x00"))
		if loc < 0 {
			continue
		}
		out[name] = gldraw.AttributeInfo{Location: uint32(loc), Type: uniformType(typ)}
	}
	return out
}

func blocks(id uint32) map[string]*gldraw.UniformBlock {
	var count, maxLen, uniformMax int32
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORM_BLOCKS, &count)
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORM_BLOCK_MAX_NAME_LENGTH, &maxLen)
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORM_MAX_LENGTH, &uniformMax)
	out := make(map[string]*gldraw.UniformBlock, count)
	for i := range uint32(count) {
		name := activeName(func(buf *uint8, n *int32) {
			gl.GetActiveUniformBlockName(id, i, maxLen+1, n, buf)
		}, maxLen)
		var size int32
		gl.GetActiveUniformBlockiv(id, i, gl.UNIFORM_BLOCK_DATA_SIZE, &size)
		out[name] = &gldraw.UniformBlock{Index: i, Size: int(size)}
	}

	var total int32
	gl.GetProgramiv(id, gl.ACTIVE_UNIFORMS, &total)
	byIndex := make(map[uint32]*gldraw.UniformBlock, count)
	for _, b := range out {
		byIndex[b.Index] = b
	}
	for i := range uint32(total) {
		var blockIndex, offset int32
		gl.GetActiveUniformsiv(id, 1, &i, gl.UNIFORM_BLOCK_INDEX, &blockIndex)
		if blockIndex < 0 {
			continue
		}
		gl.GetActiveUniformsiv(id, 1, &i, gl.UNIFORM_OFFSET, &offset)

		var size int32
		var typ uint32
		name := activeName(func(buf *uint8, n *int32) {
			gl.GetActiveUniform(id, i, uniformMax+1, n, &size, &typ, buf)
		}, uniformMax)

		b, ok := byIndex[uint32(blockIndex)]
		if !ok {
			continue
		}
		b.Members = append(b.Members, gldraw.BlockMember{
			Name:   memberName(name),
			Offset: int(offset),
			Type:   uniformType(typ),
			Size:   int(size),
		})
	}
	return out
}

// memberName drops the instance prefix and the array suffix of a block member.
func memberName(name string) string {
	name = strings.TrimSuffix(name, "[0]")
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return name
}

// uniformType maps a GL type enum to the gldraw type vocabulary.
// Unknown enums map to TypeNone.
func uniformType(t uint32) gldraw.UniformType {
	kind := func(k gldraw.TypeKind) gldraw.UniformType { return gldraw.UniformType{Kind: k} }
	fl, si, ui := gputypes.TextureSampleTypeFloat, gputypes.TextureSampleTypeSint, gputypes.TextureSampleTypeUint
	depth := gputypes.TextureSampleTypeDepth

	switch t {
	case gl.FLOAT:
		return kind(gldraw.TypeFloat)
	case gl.FLOAT_VEC2:
		return kind(gldraw.TypeVec2)
	case gl.FLOAT_VEC3:
		return kind(gldraw.TypeVec3)
	case gl.FLOAT_VEC4:
		return kind(gldraw.TypeVec4)
	case gl.INT:
		return kind(gldraw.TypeInt)
	case gl.INT_VEC2:
		return kind(gldraw.TypeIVec2)
	case gl.INT_VEC3:
		return kind(gldraw.TypeIVec3)
	case gl.INT_VEC4:
		return kind(gldraw.TypeIVec4)
	case gl.UNSIGNED_INT:
		return kind(gldraw.TypeUint)
	case gl.UNSIGNED_INT_VEC2:
		return kind(gldraw.TypeUVec2)
	case gl.UNSIGNED_INT_VEC3:
		return kind(gldraw.TypeUVec3)
	case gl.UNSIGNED_INT_VEC4:
		return kind(gldraw.TypeUVec4)
	case gl.BOOL:
		return kind(gldraw.TypeBool)
	case gl.FLOAT_MAT2:
		return kind(gldraw.TypeMat2)
	case gl.FLOAT_MAT3:
		return kind(gldraw.TypeMat3)
	case gl.FLOAT_MAT4:
		return kind(gldraw.TypeMat4)

	case gl.SAMPLER_1D:
		return gldraw.SamplerType(gldraw.Texture1D, fl)
	case gl.SAMPLER_2D:
		return gldraw.SamplerType(gldraw.Texture2D, fl)
	case gl.SAMPLER_3D:
		return gldraw.SamplerType(gldraw.Texture3D, fl)
	case gl.SAMPLER_CUBE:
		return gldraw.SamplerType(gldraw.TextureCube, fl)
	case gl.SAMPLER_1D_ARRAY:
		return gldraw.SamplerType(gldraw.Texture1DArray, fl)
	case gl.SAMPLER_2D_ARRAY:
		return gldraw.SamplerType(gldraw.Texture2DArray, fl)
	case gl.SAMPLER_2D_MULTISAMPLE:
		return gldraw.SamplerType(gldraw.Texture2DMultisample, fl)
	case gl.SAMPLER_2D_MULTISAMPLE_ARRAY:
		return gldraw.SamplerType(gldraw.Texture2DMultisampleArray, fl)
	case gl.SAMPLER_2D_SHADOW:
		return gldraw.SamplerType(gldraw.Texture2D, depth)
	case gl.SAMPLER_2D_ARRAY_SHADOW:
		return gldraw.SamplerType(gldraw.Texture2DArray, depth)
	case gl.SAMPLER_CUBE_SHADOW:
		return gldraw.SamplerType(gldraw.TextureCube, depth)

	case gl.INT_SAMPLER_2D:
		return gldraw.SamplerType(gldraw.Texture2D, si)
	case gl.INT_SAMPLER_3D:
		return gldraw.SamplerType(gldraw.Texture3D, si)
	case gl.INT_SAMPLER_2D_ARRAY:
		return gldraw.SamplerType(gldraw.Texture2DArray, si)
	case gl.UNSIGNED_INT_SAMPLER_2D:
		return gldraw.SamplerType(gldraw.Texture2D, ui)
	case gl.UNSIGNED_INT_SAMPLER_3D:
		return gldraw.SamplerType(gldraw.Texture3D, ui)
	case gl.UNSIGNED_INT_SAMPLER_2D_ARRAY:
		return gldraw.SamplerType(gldraw.Texture2DArray, ui)
	default:
		return kind(gldraw.TypeNone)
	}
}
