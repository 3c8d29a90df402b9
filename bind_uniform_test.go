package gldraw_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gldraw"
)

func drawUniforms(t *testing.T, ctx *gldraw.Context, prog gldraw.Program, u gldraw.Uniforms) error {
	t.Helper()
	req := triangleRequest(prog, gldraw.NewBufferSlice(10, 72, 3))
	req.Uniforms = u
	return ctx.Draw(req)
}

func unitValue(unit int32) gldraw.RawUniform {
	return gldraw.RawUniform{Kind: gldraw.TypeInt, I: [4]int32{unit}}
}

func color(id uint32) gldraw.TextureRef {
	return gldraw.TextureRef{ID: id, Dim: gldraw.Texture2D, Kind: gldraw.SampleColor}
}

func TestUniformUploadIsCached(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)
	u := gldraw.NewUniformSet().
		Set("scale", gldraw.Float(2)).
		Set("tint", gldraw.Vec4(mgl32.Vec4{1, 0, 0, 1}))

	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("Uniform") != 2 {
		t.Fatalf("Uniform called %d times, want 2", rec.Count("Uniform"))
	}
	if !hasCall(rec.Calls(), "Uniform", int32(0), gldraw.TypeFloat, gldraw.Float(2).Raw()) {
		t.Errorf("scale not uploaded: %v", rec.Find("Uniform"))
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("Uniform") != 0 {
		t.Errorf("unchanged values uploaded again: %v", rec.Find("Uniform"))
	}

	rec.Reset()
	u.Set("scale", gldraw.Float(3))
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if got := callArgs(t, rec, "Uniform"); got[0] != int32(0) {
		t.Errorf("Uniform%v, want location 0", got)
	}
}

func TestUniformCachePerProgram(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	u := gldraw.NewUniformSet().Set("scale", gldraw.Float(2))

	for _, id := range []uint32{1, 2, 1} {
		if err := drawUniforms(t, ctx, newTestProgram(id), u); err != nil {
			t.Fatal(err)
		}
	}
	if rec.Count("Uniform") != 2 {
		t.Errorf("Uniform called %d times, want once per program", rec.Count("Uniform"))
	}

	ctx.ForgetProgram(1)
	rec.Reset()
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("Uniform") != 1 || rec.Count("UseProgram") != 1 {
		t.Errorf("forgotten program not reinitialized: %v", rec.Names())
	}
}

func TestUniformErrors(t *testing.T) {
	camera := gldraw.NewBufferSlice(50, 64, 1)
	tests := []struct {
		name     string
		uniform  string
		value    gldraw.UniformValue
		caps     gldraw.Capabilities
		want     error
		expected gldraw.TypeKind
	}{
		{"type mismatch", "scale", gldraw.Int(1), gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeFloat},
		{"vector size mismatch", "tint", gldraw.Vec3(mgl32.Vec3{}), gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeVec4},
		{"array", "weights", gldraw.Float(1), gldraw.DefaultCapabilities(), gldraw.ErrUniformArrayNotSupported, gldraw.TypeNone},
		{"buffer to value", "scale", gldraw.Block(camera, nil), gldraw.DefaultCapabilities(), gldraw.ErrUniformBufferToValue, gldraw.TypeNone},
		{"value to block", "Camera", gldraw.Float(1), gldraw.DefaultCapabilities(), gldraw.ErrUniformValueToBlock, gldraw.TypeNone},
		{"layout mismatch", "Camera", gldraw.Block(camera, gldraw.MatchSize(32)), gldraw.DefaultCapabilities(), gldraw.ErrUniformBlockLayoutMismatch, gldraw.TypeNone},
		{
			"member mismatch", "Camera",
			gldraw.Block(camera, gldraw.MatchMembers(gldraw.BlockMember{Name: "viewProj", Offset: 16, Type: gldraw.UniformType{Kind: gldraw.TypeMat4}})),
			gldraw.DefaultCapabilities(), gldraw.ErrUniformBlockLayoutMismatch, gldraw.TypeNone,
		},
		{"texture in a value", "scale", gldraw.Texture(color(5)), gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeFloat},
		{"value in a sampler", "diffuse", gldraw.Int(0), gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeSampler},
		{"color texture in an unsigned sampler", "ids", gldraw.Texture(color(5)), gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeSampler},
		{
			"3D texture in a 2D sampler", "diffuse",
			gldraw.Texture(gldraw.TextureRef{ID: 5, Dim: gldraw.Texture3D}),
			gldraw.DefaultCapabilities(), gldraw.ErrUniformTypeMismatch, gldraw.TypeSampler,
		},
		{
			"sampler objects unsupported", "diffuse",
			gldraw.SampledTexture(color(5), gldraw.DefaultSamplerBehavior()),
			caps(gldraw.APIOpenGL, 3, 2), gldraw.ErrSamplersNotSupported, gldraw.TypeNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, tt.caps)
			err := drawUniforms(t, ctx, newTestProgram(1), gldraw.NewUniformSet().Set(tt.uniform, tt.value))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Draw() = %v, want %v", err, tt.want)
			}
			var ue *gldraw.UniformError
			if !errors.As(err, &ue) {
				t.Fatalf("Draw() error %T is not a *UniformError", err)
			}
			if ue.Name != tt.uniform {
				t.Errorf("UniformError.Name = %q, want %q", ue.Name, tt.uniform)
			}
			if ue.Expected.Kind != tt.expected {
				t.Errorf("UniformError.Expected = %v, want kind %v", ue.Expected, tt.expected)
			}
			if !strings.Contains(err.Error(), tt.uniform) {
				t.Errorf("error %q does not name the uniform", err)
			}
			if rec.Count("DrawArrays") != 0 {
				t.Error("draw issued despite a binding error")
			}
		})
	}
}

func TestUniformUnknownNamesIgnored(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	err := drawUniforms(t, ctx, newTestProgram(1), gldraw.NewUniformSet().Set("missing", gldraw.Float(1)))
	if err != nil {
		t.Fatalf("Draw() = %v", err)
	}
	if rec.Count("Uniform") != 0 {
		t.Errorf("undeclared uniform uploaded: %v", rec.Find("Uniform"))
	}
}

func TestUniformDepthTextures(t *testing.T) {
	ctx, _ := newTestContext(t, gldraw.DefaultCapabilities())
	depth := gldraw.TextureRef{ID: 9, Dim: gldraw.Texture2D, Kind: gldraw.SampleDepth}
	u := gldraw.NewUniformSet().
		Set("shadowed", gldraw.Texture(depth)).
		Set("diffuse", gldraw.Texture(depth))
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Errorf("depth textures rejected: %v", err)
	}
}

func TestTextureUnits(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)
	u := gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(5))).
		Set("normals", gldraw.Texture(color(6)))

	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if !hasCall(calls, "BindTexture", gldraw.Texture2D, uint32(5)) || !hasCall(calls, "BindTexture", gldraw.Texture2D, uint32(6)) {
		t.Errorf("textures not bound: %v", calls)
	}
	if !hasCall(calls, "ActiveTexture", uint32(1)) {
		t.Errorf("second unit not activated: %v", calls)
	}
	if !hasCall(calls, "Uniform", int32(3), gldraw.TypeInt, unitValue(0)) ||
		!hasCall(calls, "Uniform", int32(4), gldraw.TypeInt, unitValue(1)) {
		t.Errorf("unit indices not uploaded: %v", rec.Find("Uniform"))
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if changes := rec.StateChanges(); len(changes) != 0 {
		t.Errorf("rebinding the same textures changed state: %v", changes)
	}
}

func TestTextureUnitsPreferBoundTextures(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)

	first := gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(5))).
		Set("normals", gldraw.Texture(color(6)))
	if err := drawUniforms(t, ctx, prog, first); err != nil {
		t.Fatal(err)
	}

	rec.Reset()
	swapped := gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(6))).
		Set("normals", gldraw.Texture(color(5)))
	if err := drawUniforms(t, ctx, prog, swapped); err != nil {
		t.Fatal(err)
	}
	if rec.Count("BindTexture") != 0 {
		t.Errorf("textures already bound were rebound: %v", rec.Find("BindTexture"))
	}
	if !hasCall(rec.Calls(), "Uniform", int32(3), gldraw.TypeInt, unitValue(1)) {
		t.Errorf("diffuse should read unit 1: %v", rec.Find("Uniform"))
	}
}

func TestTextureUnitsSameTextureTwice(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	u := gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(5))).
		Set("normals", gldraw.Texture(color(5)))
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("BindTexture") != 1 {
		t.Errorf("BindTexture called %d times, want 1", rec.Count("BindTexture"))
	}
	if !hasCall(rec.Calls(), "Uniform", int32(4), gldraw.TypeInt, unitValue(0)) {
		t.Errorf("both samplers should share unit 0: %v", rec.Find("Uniform"))
	}
}

func TestTextureUnitEviction(t *testing.T) {
	c := gldraw.DefaultCapabilities()
	c.MaxCombinedTextureImageUnits = 2
	ctx, rec := newTestContext(t, c)
	prog := newTestProgram(1)

	if err := drawUniforms(t, ctx, prog, gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(5))).
		Set("normals", gldraw.Texture(color(6)))); err != nil {
		t.Fatal(err)
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(7))).
		Set("normals", gldraw.Texture(color(6)))); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if !hasCall(calls, "ActiveTexture", uint32(0)) || !hasCall(calls, "BindTexture", gldraw.Texture2D, uint32(7)) {
		t.Errorf("new texture should replace unit 0: %v", calls)
	}
	if rec.Count("BindTexture") != 1 {
		t.Errorf("BindTexture called %d times, want 1", rec.Count("BindTexture"))
	}
}

func TestTextureUnitExhaustionPanics(t *testing.T) {
	c := gldraw.DefaultCapabilities()
	c.MaxCombinedTextureImageUnits = 1
	ctx, _ := newTestContext(t, c)

	defer func() {
		if recover() == nil {
			t.Error("binding two textures to one unit did not panic")
		}
	}()
	_ = drawUniforms(t, ctx, newTestProgram(1), gldraw.NewUniformSet().
		Set("diffuse", gldraw.Texture(color(5))).
		Set("normals", gldraw.Texture(color(6))))
}

func TestSamplerObjects(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)
	u := gldraw.NewUniformSet().Set("diffuse", gldraw.SampledTexture(color(5), gldraw.DefaultSamplerBehavior()))

	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("CreateSampler") != 1 || !hasCall(rec.Calls(), "BindSampler", uint32(0), uint32(1)) {
		t.Fatalf("sampler object not created and bound: %v", rec.Calls())
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("CreateSampler") != 0 || rec.Count("BindSampler") != 0 {
		t.Errorf("cached sampler object recreated or rebound: %v", rec.Calls())
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, gldraw.NewUniformSet().Set("diffuse", gldraw.Texture(color(5)))); err != nil {
		t.Fatal(err)
	}
	if !hasCall(rec.Calls(), "BindSampler", uint32(0), uint32(0)) {
		t.Errorf("texture without a sampler still reads through one: %v", rec.Calls())
	}
}

func TestSampledTextureDrawReturns(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	u := gldraw.NewUniformSet().Set("diffuse", gldraw.SampledTexture(color(5), gldraw.DefaultSamplerBehavior()))

	done := make(chan error, 1)
	go func() { done <- drawUniforms(t, ctx, newTestProgram(1), u) }()
	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("Draw with a new sampler behavior did not return")
	}
	if rec.Count("CreateSampler") != 1 {
		t.Errorf("CreateSampler called %d times, want 1", rec.Count("CreateSampler"))
	}
}

func TestSamplerCacheTrim(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities(), gldraw.WithSamplerCacheLimit(1))
	prog := newTestProgram(1)
	nearest := gldraw.DefaultSamplerBehavior()
	nearest.MinFilter = gputypes.FilterModeNearest

	u := gldraw.NewUniformSet().
		Set("diffuse", gldraw.SampledTexture(color(5), gldraw.DefaultSamplerBehavior())).
		Set("normals", gldraw.SampledTexture(color(6), nearest))
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if rec.Count("CreateSampler") != 2 {
		t.Fatalf("CreateSampler called %d times, want 2", rec.Count("CreateSampler"))
	}
	if got := callArgs(t, rec, "DeleteSampler")[0]; got != uint32(1) {
		t.Errorf("DeleteSampler(%v), want the least recently used sampler 1", got)
	}
	if st := ctx.State(); st.TextureUnits[0].Sampler != 0 {
		t.Errorf("unit 0 still mirrors destroyed sampler %d", st.TextureUnits[0].Sampler)
	}

	rec.Reset()
	ctx.ReleaseSamplers()
	if got := callArgs(t, rec, "DeleteSampler")[0]; got != uint32(2) {
		t.Errorf("ReleaseSamplers deleted %v, want 2", got)
	}
}

func TestUniformBlockBindTarget(t *testing.T) {
	tests := []struct {
		name string
		buf  *gldraw.BufferSlice
		call string
		args []any
	}{
		{"head of a larger buffer", gldraw.NewBufferSlice(52, 256, 8).Slice(0, 1), "BindBufferRange",
			[]any{gldraw.BufferUniform, uint32(0), uint32(52), 0, 32}},
		{"whole buffer of unknown size", &gldraw.BufferSlice{ID: 53}, "BindBufferBase",
			[]any{gldraw.BufferUniform, uint32(0), uint32(53)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
			u := gldraw.NewUniformSet().Set("Lights", gldraw.Block(tt.buf, nil))
			if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
				t.Fatal(err)
			}
			if !hasCall(rec.Calls(), tt.call, tt.args...) {
				t.Errorf("want %s%v: %v", tt.call, tt.args, rec.Calls())
			}
			want := gldraw.BufferRange{Buffer: tt.buf.ID, Offset: tt.buf.Offset, Size: tt.buf.Size}
			if got := ctx.State().UniformBuffers[0]; got != want {
				t.Errorf("mirror = %+v, want %+v", got, want)
			}
		})
	}
}

func TestUniformBlocks(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)
	camera := gldraw.NewBufferSlice(50, 64, 1)
	lights := gldraw.NewBufferSlice(51, 256, 8).Slice(2, 1)

	u := gldraw.NewUniformSet().
		Set("Camera", gldraw.Block(camera, gldraw.MatchMembers(gldraw.BlockMember{
			Name: "viewProj", Offset: 0, Type: gldraw.UniformType{Kind: gldraw.TypeMat4},
		}))).
		Set("Lights", gldraw.Block(lights, gldraw.MatchSize(32)))

	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	calls := rec.Calls()
	if !hasCall(calls, "BindBufferRange", gldraw.BufferUniform, uint32(0), uint32(50), 0, 64) {
		t.Errorf("camera block not bound to point 0: %v", calls)
	}
	if !hasCall(calls, "BindBufferRange", gldraw.BufferUniform, uint32(1), uint32(51), 64, 32) {
		t.Errorf("lights range not bound to point 1: %v", calls)
	}
	if !hasCall(calls, "UniformBlockBinding", uint32(1), uint32(0), uint32(0)) ||
		!hasCall(calls, "UniformBlockBinding", uint32(1), uint32(1), uint32(1)) {
		t.Errorf("block bindings not assigned: %v", calls)
	}
	if rec.Count("FenceSync") != 3 {
		t.Errorf("FenceSync called %d times, want one per buffer", rec.Count("FenceSync"))
	}

	rec.Reset()
	if err := drawUniforms(t, ctx, prog, u); err != nil {
		t.Fatal(err)
	}
	if changes := rec.StateChanges(); len(changes) != 0 {
		t.Errorf("rebinding the same blocks changed state: %v", changes)
	}
}
