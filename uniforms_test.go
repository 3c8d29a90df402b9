package gldraw_test

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gldraw"
)

func TestUniformSetOrder(t *testing.T) {
	s := gldraw.NewUniformSet().
		Set("b", gldraw.Float(1)).
		Set("a", gldraw.Float(2)).
		Set("b", gldraw.Float(3))

	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	var names []string
	var last gldraw.UniformValue
	for name, v := range s.All() {
		names = append(names, name)
		if name == "b" {
			last = v
		}
	}
	if len(names) != 2 || names[0] != "b" || names[1] != "a" {
		t.Errorf("All() order = %v, want [b a]", names)
	}
	if last.Raw().F[0] != 3 {
		t.Errorf("replaced value = %v, want 3", last.Raw().F[0])
	}
}

func TestUniformValueKinds(t *testing.T) {
	buf := gldraw.NewBufferSlice(1, 16, 1)
	tests := []struct {
		v    gldraw.UniformValue
		want gldraw.TypeKind
	}{
		{gldraw.Float(1), gldraw.TypeFloat},
		{gldraw.Bool(true), gldraw.TypeBool},
		{gldraw.Uint(1), gldraw.TypeUint},
		{gldraw.IVec3([3]int32{1, 2, 3}), gldraw.TypeIVec3},
		{gldraw.UVec2([2]uint32{1, 2}), gldraw.TypeUVec2},
		{gldraw.Vec2(mgl32.Vec2{1, 2}), gldraw.TypeVec2},
		{gldraw.Mat3(mgl32.Ident3()), gldraw.TypeMat3},
		{gldraw.Texture(gldraw.TextureRef{ID: 1}), gldraw.TypeSampler},
		{gldraw.Block(buf, nil), gldraw.TypeBlock},
	}
	for _, tt := range tests {
		if got := tt.v.Kind(); got != tt.want {
			t.Errorf("Kind() = %v, want %v", got, tt.want)
		}
	}
}

func TestMat4ColumnMajor(t *testing.T) {
	m := mgl32.Translate3D(1, 2, 3)
	raw := gldraw.Mat4(m).Raw()
	if raw.F[12] != 1 || raw.F[13] != 2 || raw.F[14] != 3 {
		t.Errorf("translation not in the last column: %v", raw.F)
	}
}

func TestRawUniformComponents(t *testing.T) {
	if got := gldraw.Vec3(mgl32.Vec3{}).Raw().Components(); got != 3 {
		t.Errorf("Vec3 components = %d, want 3", got)
	}
	if got := gldraw.Bool(false).Raw().Components(); got != 1 {
		t.Errorf("Bool components = %d, want 1", got)
	}
}

func TestUniformTypeString(t *testing.T) {
	tests := []struct {
		typ  gldraw.UniformType
		want string
	}{
		{gldraw.UniformType{Kind: gldraw.TypeMat4}, "Mat4"},
		{gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeFloat), "Sampler2D"},
		{gldraw.SamplerType(gldraw.Texture3D, gputypes.TextureSampleTypeUint), "USampler3D"},
		{gldraw.SamplerType(gldraw.Texture2D, gputypes.TextureSampleTypeDepth), "Sampler2DShadow"},
	}
	for _, tt := range tests {
		if got := tt.typ.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestMatchMembers(t *testing.T) {
	block := &gldraw.UniformBlock{
		Size: 80,
		Members: []gldraw.BlockMember{
			{Name: "model", Offset: 0, Type: gldraw.UniformType{Kind: gldraw.TypeMat4}},
			{Name: "tint", Offset: 64, Type: gldraw.UniformType{Kind: gldraw.TypeVec4}},
		},
	}
	ok := gldraw.MatchMembers(gldraw.BlockMember{Name: "tint", Offset: 64, Type: gldraw.UniformType{Kind: gldraw.TypeVec4}})
	if !ok(block) {
		t.Error("matching member rejected")
	}
	missing := gldraw.MatchMembers(gldraw.BlockMember{Name: "color", Offset: 64, Type: gldraw.UniformType{Kind: gldraw.TypeVec4}})
	if missing(block) {
		t.Error("unknown member accepted")
	}
	if !gldraw.MatchSize(80)(block) || gldraw.MatchSize(64)(block) {
		t.Error("MatchSize compared the wrong size")
	}
}
