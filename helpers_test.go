package gldraw_test

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/gldraw"
	"github.com/gogpu/gldraw/gldrawtest"
)

// testFormat is a vec2 position followed by a vec4 color.
var testFormat = &gldraw.VertexFormat{
	Stride: 24,
	Attributes: []gldraw.VertexAttribute{
		{Name: "position", Offset: 0, Type: gldraw.AttribFloat32, Components: 2},
		{Name: "color", Offset: 8, Type: gldraw.AttribFloat32, Components: 4},
	},
}

var instanceFormat = &gldraw.VertexFormat{
	Stride: 8,
	Attributes: []gldraw.VertexAttribute{
		{Name: "offset", Offset: 0, Type: gldraw.AttribFloat32, Components: 2},
	},
}

// newTestProgram declares the attributes of testFormat and instanceFormat,
// a few plain uniforms, two samplers and a uniform block.
func newTestProgram(id uint32) *gldraw.ProgramInfo {
	return &gldraw.ProgramInfo{
		ID: id,
		Attributes: map[string]gldraw.AttributeInfo{
			"position": {Location: 0, Type: gldraw.UniformType{Kind: gldraw.TypeVec2}},
			"color":    {Location: 1, Type: gldraw.UniformType{Kind: gldraw.TypeVec4}},
			"offset":   {Location: 2, Type: gldraw.UniformType{Kind: gldraw.TypeVec2}},
		},
		Uniforms: map[string]gldraw.UniformInfo{
			"scale":    {Location: 0, Type: gldraw.UniformType{Kind: gldraw.TypeFloat}, Size: 1},
			"tint":     {Location: 1, Type: gldraw.UniformType{Kind: gldraw.TypeVec4}, Size: 1},
			"weights":  {Location: 2, Type: gldraw.UniformType{Kind: gldraw.TypeFloat}, Size: 4},
			"diffuse":  {Location: 3, Type: gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeFloat), Size: 1},
			"normals":  {Location: 4, Type: gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeFloat), Size: 1},
			"ids":      {Location: 5, Type: gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeUint), Size: 1},
			"shadowed": {Location: 6, Type: gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeDepth), Size: 1},
		},
		Blocks: map[string]*gldraw.UniformBlock{
			"Camera": {
				Index: 0,
				Size:  64,
				Members: []gldraw.BlockMember{
					{Name: "viewProj", Offset: 0, Type: gldraw.UniformType{Kind: gldraw.TypeMat4}, Size: 1},
				},
			},
			"Lights": {Index: 1, Size: 32},
		},
	}
}

func newTestContext(t *testing.T, caps gldraw.Capabilities, opts ...gldraw.Option) (*gldraw.Context, *gldrawtest.Recorder) {
	t.Helper()
	rec := gldrawtest.NewRecorder()
	return gldraw.NewContext(rec, caps, opts...), rec
}

// triangleRequest draws three vertices from vbo with default parameters.
func triangleRequest(prog gldraw.Program, vbo gldraw.Buffer) *gldraw.DrawRequest {
	return &gldraw.DrawRequest{
		Width:    640,
		Height:   480,
		Vertices: []gldraw.VertexSource{gldraw.VertexBuffer(vbo, testFormat)},
		Indices:  gldraw.NoIndices(gldraw.Triangles),
		Program:  prog,
	}
}

func withParams(req *gldraw.DrawRequest, edit func(p *gldraw.DrawParameters)) *gldraw.DrawRequest {
	p := gldraw.DefaultDrawParameters()
	edit(&p)
	req.Parameters = &p
	return req
}

func mustDraw(t *testing.T, ctx *gldraw.Context, req *gldraw.DrawRequest) {
	t.Helper()
	if err := ctx.Draw(req); err != nil {
		t.Fatalf("Draw() = %v", err)
	}
}

// callArgs returns the arguments of the only call named name.
func callArgs(t *testing.T, rec *gldrawtest.Recorder, name string) []any {
	t.Helper()
	calls := rec.Find(name)
	if len(calls) != 1 {
		t.Fatalf("%s called %d times, want 1; calls: %v", name, len(calls), rec.Calls())
	}
	return calls[0].Args
}

func caps(api gldraw.API, major, minor int, exts ...string) gldraw.Capabilities {
	c := gldraw.DefaultCapabilities()
	c.Version = gldraw.Version{API: api, Major: major, Minor: minor}
	for _, e := range exts {
		c.Extensions[e] = true
	}
	return c
}
