package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/gldraw"
)

// Scenario is a replayable list of draws against a described device.
type Scenario struct {
	Device   DeviceDesc    `toml:"device"`
	Programs []ProgramDesc `toml:"program"`
	Draws    []DrawDesc    `toml:"draw"`
}

// DeviceDesc describes the capabilities of the traced device.
// Zero limits keep the values of gldraw.DefaultCapabilities.
type DeviceDesc struct {
	API                   string   `toml:"api"`
	Version               string   `toml:"version"`
	Extensions            []string `toml:"extensions"`
	TextureUnits          int      `toml:"texture_units"`
	UniformBufferBindings int      `toml:"uniform_buffer_bindings"`
	PatchVertices         int      `toml:"patch_vertices"`
	SamplerCache          int      `toml:"sampler_cache"`
}

// ProgramDesc declares a linked program. Attributes are packed float
// vectors in declaration order.
type ProgramDesc struct {
	ID           uint32                 `toml:"id"`
	Tessellation bool                   `toml:"tessellation"`
	SRGBOutput   bool                   `toml:"srgb_output"`
	Attributes   []AttributeDesc        `toml:"attributes"`
	Uniforms     map[string]UniformDesc `toml:"uniforms"`
}

type AttributeDesc struct {
	Name       string `toml:"name"`
	Location   uint32 `toml:"location"`
	Components int32  `toml:"components"`
}

type UniformDesc struct {
	Location int32  `toml:"location"`
	Type     string `toml:"type"`
}

// DrawDesc is one draw call and its render state.
type DrawDesc struct {
	Name        string `toml:"name"`
	Program     uint32 `toml:"program"`
	Framebuffer uint32 `toml:"framebuffer"`
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`

	Primitive     string `toml:"primitive"`
	PatchVertices int    `toml:"patch_vertices"`
	VertexBuffer  uint32 `toml:"vertex_buffer"`
	VertexCount   int    `toml:"vertex_count"`
	IndexBuffer   uint32 `toml:"index_buffer"`
	IndexType     string `toml:"index_type"`
	IndexCount    int    `toml:"index_count"`
	Instances     int    `toml:"instances"`

	Depth      string `toml:"depth"`
	DepthWrite bool   `toml:"depth_write"`
	Blend      string `toml:"blend"`
	Cull       string `toml:"cull"`
	Polygon    string `toml:"polygon"`
	Viewport   []int  `toml:"viewport"`
	Scissor    []int  `toml:"scissor"`
	Discard    bool   `toml:"discard"`

	Uniforms map[string]any `toml:"uniforms"`
}

var errScenario = errors.New("gltrace: invalid scenario")

// LoadScenario decodes a TOML scenario. Unknown keys are rejected.
func LoadScenario(r io.Reader) (*Scenario, error) {
	var s Scenario
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("gltrace: decode scenario: %w", err)
	}
	if len(s.Draws) == 0 {
		return nil, fmt.Errorf("%w: no draws", errScenario)
	}
	return &s, nil
}

// Capabilities converts the device section.
func (d DeviceDesc) Capabilities() (gldraw.Capabilities, error) {
	c := gldraw.DefaultCapabilities()
	switch strings.ToLower(d.API) {
	case "", "opengl", "gl":
		c.Version.API = gldraw.APIOpenGL
	case "opengles", "gles", "es":
		c.Version.API = gldraw.APIOpenGLES
	default:
		return c, fmt.Errorf("%w: api %q", errScenario, d.API)
	}
	if d.Version != "" {
		major, minor, ok := strings.Cut(d.Version, ".")
		maj, err1 := strconv.Atoi(major)
		mnr, err2 := strconv.Atoi(minor)
		if !ok || err1 != nil || err2 != nil {
			return c, fmt.Errorf("%w: version %q", errScenario, d.Version)
		}
		c.Version.Major, c.Version.Minor = maj, mnr
	}
	for _, ext := range d.Extensions {
		c.Extensions[ext] = true
	}
	if d.TextureUnits > 0 {
		c.MaxCombinedTextureImageUnits = d.TextureUnits
	}
	if d.UniformBufferBindings > 0 {
		c.MaxUniformBufferBindings = d.UniformBufferBindings
	}
	if d.PatchVertices > 0 {
		c.MaxPatchVertices = d.PatchVertices
	}
	return c, nil
}

// build returns the program and the packed vertex format of its attributes.
func (p ProgramDesc) build() (*gldraw.ProgramInfo, *gldraw.VertexFormat, error) {
	info := &gldraw.ProgramInfo{
		ID:           p.ID,
		Attributes:   make(map[string]gldraw.AttributeInfo, len(p.Attributes)),
		Uniforms:     make(map[string]gldraw.UniformInfo, len(p.Uniforms)),
		Blocks:       map[string]*gldraw.UniformBlock{},
		Tessellation: p.Tessellation,
		SRGBOutput:   p.SRGBOutput,
	}
	format := &gldraw.VertexFormat{}
	for _, a := range p.Attributes {
		if a.Components < 1 || a.Components > 4 {
			return nil, nil, fmt.Errorf("%w: attribute %q has %d components", errScenario, a.Name, a.Components)
		}
		kinds := [...]gldraw.TypeKind{gldraw.TypeFloat, gldraw.TypeVec2, gldraw.TypeVec3, gldraw.TypeVec4}
		info.Attributes[a.Name] = gldraw.AttributeInfo{
			Location: a.Location,
			Type:     gldraw.UniformType{Kind: kinds[a.Components-1]},
		}
		format.Attributes = append(format.Attributes, gldraw.VertexAttribute{
			Name:       a.Name,
			Offset:     format.Stride,
			Type:       gldraw.AttribFloat32,
			Components: a.Components,
		})
		format.Stride += 4 * int(a.Components)
	}
	for name, u := range p.Uniforms {
		typ, err := parseUniformType(u.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("uniform %q: %w", name, err)
		}
		info.Uniforms[name] = gldraw.UniformInfo{Location: u.Location, Type: typ, Size: 1}
	}
	return info, format, nil
}

func parseUniformType(s string) (gldraw.UniformType, error) {
	kinds := map[string]gldraw.TypeKind{
		"float": gldraw.TypeFloat, "vec2": gldraw.TypeVec2, "vec3": gldraw.TypeVec3, "vec4": gldraw.TypeVec4,
		"int": gldraw.TypeInt, "uint": gldraw.TypeUint, "bool": gldraw.TypeBool,
		"mat4": gldraw.TypeMat4,
	}
	if k, ok := kinds[s]; ok {
		return gldraw.UniformType{Kind: k}, nil
	}
	switch s {
	case "sampler2D":
		return gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeFloat), nil
	case "sampler3D":
		return gldraw.SamplerType(gldraw.Texture3D, gputypes.TextureSampleTypeFloat), nil
	case "samplerCube":
		return gldraw.SamplerType(gldraw.TextureCube, gputypes.TextureSampleTypeFloat), nil
	case "usampler2D":
		return gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeUint), nil
	}
	return gldraw.UniformType{}, fmt.Errorf("%w: uniform type %q", errScenario, s)
}

func parsePrimitive(s string, patch int) (gldraw.PrimitiveType, error) {
	switch s {
	case "", "triangles":
		return gldraw.Triangles, nil
	case "triangle_strip":
		return gldraw.TriangleStrip, nil
	case "lines":
		return gldraw.Lines, nil
	case "line_strip":
		return gldraw.LineStrip, nil
	case "points":
		return gldraw.Points, nil
	case "patches":
		return gldraw.Patches(patch), nil
	}
	return gldraw.PrimitiveType{}, fmt.Errorf("%w: primitive %q", errScenario, s)
}

func parseIndexType(s string) (gldraw.IndexType, error) {
	switch s {
	case "uint8":
		return gldraw.IndexUint8, nil
	case "", "uint16":
		return gldraw.IndexUint16, nil
	case "uint32":
		return gldraw.IndexUint32, nil
	}
	return 0, fmt.Errorf("%w: index type %q", errScenario, s)
}

func parseCompare(s string) (gputypes.CompareFunction, error) {
	switch s {
	case "", "always":
		return gputypes.CompareFunctionAlways, nil
	case "never":
		return gputypes.CompareFunctionNever, nil
	case "less":
		return gputypes.CompareFunctionLess, nil
	case "less_equal":
		return gputypes.CompareFunctionLessEqual, nil
	case "equal":
		return gputypes.CompareFunctionEqual, nil
	case "not_equal":
		return gputypes.CompareFunctionNotEqual, nil
	case "greater":
		return gputypes.CompareFunctionGreater, nil
	case "greater_equal":
		return gputypes.CompareFunctionGreaterEqual, nil
	}
	return 0, fmt.Errorf("%w: compare function %q", errScenario, s)
}

func parseBlend(s string) (gldraw.Blending, error) {
	switch s {
	case "", "replace":
		return gldraw.Blending{Mode: gldraw.BlendReplace}, nil
	case "alpha":
		return gldraw.AlphaBlending(), nil
	case "premultiplied":
		return gldraw.PremultipliedBlending(), nil
	case "additive":
		return gldraw.Blending{
			Mode:        gldraw.BlendAdd,
			Source:      gputypes.BlendFactorOne,
			Destination: gputypes.BlendFactorOne,
		}, nil
	case "min":
		return gldraw.Blending{Mode: gldraw.BlendMin}, nil
	case "max":
		return gldraw.Blending{Mode: gldraw.BlendMax}, nil
	}
	return gldraw.Blending{}, fmt.Errorf("%w: blend %q", errScenario, s)
}

func parseCulling(s string) (gldraw.Culling, error) {
	switch s {
	case "", "none":
		return gldraw.CullingDisabled, nil
	case "clockwise":
		return gldraw.CullClockwise, nil
	case "counter_clockwise":
		return gldraw.CullCounterClockwise, nil
	}
	return 0, fmt.Errorf("%w: cull %q", errScenario, s)
}

func parsePolygon(s string) (gldraw.PolygonMode, error) {
	switch s {
	case "", "fill":
		return gldraw.PolygonFill, nil
	case "line":
		return gldraw.PolygonLine, nil
	case "point":
		return gldraw.PolygonPoint, nil
	}
	return 0, fmt.Errorf("%w: polygon mode %q", errScenario, s)
}

func parseRect(v []int) (*gldraw.Rect, error) {
	switch len(v) {
	case 0:
		return nil, nil
	case 4:
		return &gldraw.Rect{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
	}
	return nil, fmt.Errorf("%w: rectangle needs 4 values, got %d", errScenario, len(v))
}

// parameters converts the render-state fields of d.
func (d DrawDesc) parameters() (*gldraw.DrawParameters, error) {
	p := gldraw.DefaultDrawParameters()
	var err error
	if p.DepthTest, err = parseCompare(d.Depth); err != nil {
		return nil, err
	}
	p.DepthWrite = d.DepthWrite
	if p.Blending, err = parseBlend(d.Blend); err != nil {
		return nil, err
	}
	if p.Culling, err = parseCulling(d.Cull); err != nil {
		return nil, err
	}
	if p.PolygonMode, err = parsePolygon(d.Polygon); err != nil {
		return nil, err
	}
	if p.Viewport, err = parseRect(d.Viewport); err != nil {
		return nil, err
	}
	if p.Scissor, err = parseRect(d.Scissor); err != nil {
		return nil, err
	}
	p.DrawPrimitives = !d.Discard
	return &p, nil
}

// uniformValue converts a decoded TOML value to the declared type.
// Sampler uniforms take a texture object name.
func uniformValue(typ gldraw.UniformType, v any) (gldraw.UniformValue, error) {
	floats, err := toFloats(v)
	if err != nil {
		return gldraw.UniformValue{}, err
	}
	need := map[gldraw.TypeKind]int{
		gldraw.TypeVec2: 2, gldraw.TypeVec3: 3, gldraw.TypeVec4: 4, gldraw.TypeMat4: 16,
	}[typ.Kind]
	if need == 0 {
		need = 1
	}
	if len(floats) != need {
		return gldraw.UniformValue{}, fmt.Errorf("%w: %s needs %d values, got %d", errScenario, typ, need, len(floats))
	}

	switch typ.Kind {
	case gldraw.TypeFloat:
		return gldraw.Float(floats[0]), nil
	case gldraw.TypeVec2:
		return gldraw.Vec2([2]float32(floats)), nil
	case gldraw.TypeVec3:
		return gldraw.Vec3([3]float32(floats)), nil
	case gldraw.TypeVec4:
		return gldraw.Vec4([4]float32(floats)), nil
	case gldraw.TypeMat4:
		return gldraw.Mat4([16]float32(floats)), nil
	case gldraw.TypeInt:
		return gldraw.Int(int32(floats[0])), nil
	case gldraw.TypeUint:
		return gldraw.Uint(uint32(floats[0])), nil
	case gldraw.TypeBool:
		return gldraw.Bool(floats[0] != 0), nil
	case gldraw.TypeSampler:
		return gldraw.Texture(gldraw.TextureRef{
			ID:   uint32(floats[0]),
			Dim:  typ.Dim,
			Kind: sampleKind(typ.Sample),
		}), nil
	}
	return gldraw.UniformValue{}, fmt.Errorf("%w: unsupported uniform type %s", errScenario, typ)
}

func sampleKind(t gputypes.TextureSampleType) gldraw.SampleKind {
	if t == gputypes.TextureSampleTypeUint {
		return gldraw.SampleUnsigned
	}
	return gldraw.SampleColor
}

func toFloats(v any) ([]float32, error) {
	switch x := v.(type) {
	case bool:
		if x {
			return []float32{1}, nil
		}
		return []float32{0}, nil
	case int64:
		return []float32{float32(x)}, nil
	case float64:
		return []float32{float32(x)}, nil
	case []any:
		out := make([]float32, 0, len(x))
		for _, e := range x {
			f, err := toFloats(e)
			if err != nil {
				return nil, err
			}
			out = append(out, f...)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: unsupported value %v", errScenario, v)
}
