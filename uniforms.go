package gldraw

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"
)

// TypeKind is the shape of a uniform value or of a declared uniform.
type TypeKind uint8

const (
	TypeNone TypeKind = iota
	TypeFloat
	TypeVec2
	TypeVec3
	TypeVec4
	TypeInt
	TypeIVec2
	TypeIVec3
	TypeIVec4
	TypeUint
	TypeUVec2
	TypeUVec3
	TypeUVec4
	TypeBool
	TypeMat2
	TypeMat3
	TypeMat4
	TypeSampler
	TypeBlock
)

var typeKindNames = [...]string{
	TypeNone:    "None",
	TypeFloat:   "Float",
	TypeVec2:    "Vec2",
	TypeVec3:    "Vec3",
	TypeVec4:    "Vec4",
	TypeInt:     "Int",
	TypeIVec2:   "IVec2",
	TypeIVec3:   "IVec3",
	TypeIVec4:   "IVec4",
	TypeUint:    "Uint",
	TypeUVec2:   "UVec2",
	TypeUVec3:   "UVec3",
	TypeUVec4:   "UVec4",
	TypeBool:    "Bool",
	TypeMat2:    "Mat2",
	TypeMat3:    "Mat3",
	TypeMat4:    "Mat4",
	TypeSampler: "Sampler",
	TypeBlock:   "Block",
}

// String returns a human-readable name for the kind.
func (k TypeKind) String() string {
	if int(k) < len(typeKindNames) {
		return typeKindNames[k]
	}
	return unknownString
}

// UniformType is a declared uniform type.
// Dim and Sample are only meaningful for samplers.
type UniformType struct {
	Kind   TypeKind
	Dim    TextureDim
	Sample gputypes.TextureSampleType
}

// SamplerType returns the type of a sampler uniform.
func SamplerType(dim TextureDim, sample gputypes.TextureSampleType) UniformType {
	return UniformType{Kind: TypeSampler, Dim: dim, Sample: sample}
}

// String returns a human-readable name for the type.
func (t UniformType) String() string {
	if t.Kind != TypeSampler {
		return t.Kind.String()
	}
	prefix := ""
	switch t.Sample {
	case gputypes.TextureSampleTypeSint:
		prefix = "I"
	case gputypes.TextureSampleTypeUint:
		prefix = "U"
	case gputypes.TextureSampleTypeDepth:
		return "Sampler" + t.Dim.String() + "Shadow"
	}
	return prefix + "Sampler" + t.Dim.String()
}

// acceptsTexture reports whether a sampler of type t can read ref.
// Depth textures can be read by float samplers as well.
func (t UniformType) acceptsTexture(ref TextureRef) bool {
	if t.Kind != TypeSampler || t.Dim != ref.Dim {
		return false
	}
	got := ref.Kind.SampleType()
	switch t.Sample {
	case gputypes.TextureSampleTypeFloat, gputypes.TextureSampleTypeUnfilterableFloat:
		return got == gputypes.TextureSampleTypeFloat || got == gputypes.TextureSampleTypeDepth
	default:
		return got == t.Sample
	}
}

// RawUniform is a uniform value in upload form. Kind selects the upload
// entry point and which of F, I and U carry data. RawUniform is
// comparable; equal values are never uploaded twice.
type RawUniform struct {
	Kind TypeKind
	F    [16]float32
	I    [4]int32
	U    [4]uint32
}

// Components returns the number of scalars carried by the value.
func (r RawUniform) Components() int {
	switch r.Kind {
	case TypeFloat, TypeInt, TypeUint, TypeBool:
		return 1
	case TypeVec2, TypeIVec2, TypeUVec2:
		return 2
	case TypeVec3, TypeIVec3, TypeUVec3:
		return 3
	case TypeVec4, TypeIVec4, TypeUVec4, TypeMat2:
		return 4
	case TypeMat3:
		return 9
	case TypeMat4:
		return 16
	default:
		return 0
	}
}

// UniformValue is a value bound to a named uniform or uniform block.
// Build one with the constructors below.
type UniformValue struct {
	raw     RawUniform
	texture TextureRef
	sampler *SamplerBehavior
	block   Buffer
	matches func(*UniformBlock) bool
}

// Kind returns the value's kind.
func (v UniformValue) Kind() TypeKind {
	if v.block != nil {
		return TypeBlock
	}
	return v.raw.Kind
}

// Raw returns the upload form of a plain value.
func (v UniformValue) Raw() RawUniform { return v.raw }

func Float(f float32) UniformValue {
	return UniformValue{raw: RawUniform{Kind: TypeFloat, F: [16]float32{f}}}
}

func Int(i int32) UniformValue {
	return UniformValue{raw: RawUniform{Kind: TypeInt, I: [4]int32{i}}}
}

func Uint(u uint32) UniformValue {
	return UniformValue{raw: RawUniform{Kind: TypeUint, U: [4]uint32{u}}}
}

func Bool(b bool) UniformValue {
	r := RawUniform{Kind: TypeBool}
	if b {
		r.I[0] = 1
	}
	return UniformValue{raw: r}
}

func Vec2(v mgl32.Vec2) UniformValue { return floats(TypeVec2, v[:]) }
func Vec3(v mgl32.Vec3) UniformValue { return floats(TypeVec3, v[:]) }
func Vec4(v mgl32.Vec4) UniformValue { return floats(TypeVec4, v[:]) }

// Mat2 uploads m in its column-major order.
func Mat2(m mgl32.Mat2) UniformValue { return floats(TypeMat2, m[:]) }

// Mat3 uploads m in its column-major order.
func Mat3(m mgl32.Mat3) UniformValue { return floats(TypeMat3, m[:]) }

// Mat4 uploads m in its column-major order.
func Mat4(m mgl32.Mat4) UniformValue { return floats(TypeMat4, m[:]) }

func IVec2(v [2]int32) UniformValue { return ints(TypeIVec2, v[:]) }
func IVec3(v [3]int32) UniformValue { return ints(TypeIVec3, v[:]) }
func IVec4(v [4]int32) UniformValue { return ints(TypeIVec4, v[:]) }

func UVec2(v [2]uint32) UniformValue { return uints(TypeUVec2, v[:]) }
func UVec3(v [3]uint32) UniformValue { return uints(TypeUVec3, v[:]) }
func UVec4(v [4]uint32) UniformValue { return uints(TypeUVec4, v[:]) }

func floats(k TypeKind, f []float32) UniformValue {
	r := RawUniform{Kind: k}
	copy(r.F[:], f)
	return UniformValue{raw: r}
}

func ints(k TypeKind, i []int32) UniformValue {
	r := RawUniform{Kind: k}
	copy(r.I[:], i)
	return UniformValue{raw: r}
}

func uints(k TypeKind, u []uint32) UniformValue {
	r := RawUniform{Kind: k}
	copy(r.U[:], u)
	return UniformValue{raw: r}
}

// Texture binds ref with the sampling state stored in the texture object.
func Texture(ref TextureRef) UniformValue {
	return UniformValue{raw: RawUniform{Kind: TypeSampler}, texture: ref}
}

// SampledTexture binds ref through a sampler object with behavior b.
// It requires sampler object support.
func SampledTexture(ref TextureRef, b SamplerBehavior) UniformValue {
	return UniformValue{raw: RawUniform{Kind: TypeSampler}, texture: ref, sampler: &b}
}

// Block binds buf to a uniform block. matches is called with the
// program's block description and must report whether the buffer's
// contents have the same layout.
func Block(buf Buffer, matches func(*UniformBlock) bool) UniformValue {
	return UniformValue{block: buf, matches: matches}
}

// MatchSize returns a layout predicate accepting blocks of exactly size bytes.
func MatchSize(size int) func(*UniformBlock) bool {
	return func(b *UniformBlock) bool { return b.Size == size }
}

// MatchMembers returns a layout predicate accepting blocks that declare
// every member of want at the same offset with the same type.
func MatchMembers(want ...BlockMember) func(*UniformBlock) bool {
	return func(b *UniformBlock) bool {
		for _, w := range want {
			m, ok := b.Member(w.Name)
			if !ok || m.Offset != w.Offset || m.Type != w.Type {
				return false
			}
		}
		return true
	}
}

// Uniforms provides the named values of a draw call.
type Uniforms interface {
	All() iter.Seq2[string, UniformValue]
}

// UniformSet is an ordered set of named values.
// Values are bound in insertion order.
type UniformSet struct {
	names  []string
	values []UniformValue
}

// NewUniformSet returns an empty set.
func NewUniformSet() *UniformSet {
	return &UniformSet{}
}

// Set stores v under name, replacing an earlier value of that name.
// It returns s to allow chaining.
func (s *UniformSet) Set(name string, v UniformValue) *UniformSet {
	for i, n := range s.names {
		if n == name {
			s.values[i] = v
			return s
		}
	}
	s.names = append(s.names, name)
	s.values = append(s.values, v)
	return s
}

// Len returns the number of values in the set.
func (s *UniformSet) Len() int { return len(s.names) }

// All yields the values in insertion order.
func (s *UniformSet) All() iter.Seq2[string, UniformValue] {
	return func(yield func(string, UniformValue) bool) {
		for i, n := range s.names {
			if !yield(n, s.values[i]) {
				return
			}
		}
	}
}

type emptyUniforms struct{}

func (emptyUniforms) All() iter.Seq2[string, UniformValue] {
	return func(func(string, UniformValue) bool) {}
}

// EmptyUniforms provides no values.
var EmptyUniforms Uniforms = emptyUniforms{}
