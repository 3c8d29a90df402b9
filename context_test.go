package gldraw_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/gogpu/gldraw"
)

func TestWithInitialState(t *testing.T) {
	st := gldraw.DefaultState()
	st.DepthTest = true
	st.Blend = true
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities(), gldraw.WithInitialState(st))

	mustDraw(t, ctx, triangleRequest(newTestProgram(1), gldraw.NewBufferSlice(10, 72, 3)))
	calls := rec.Calls()
	if !hasCall(calls, "Disable", gldraw.CapDepthTest) || !hasCall(calls, "Disable", gldraw.CapBlend) {
		t.Errorf("initial state not mirrored: %v", calls)
	}
}

func TestWithInitialStateCopies(t *testing.T) {
	st := gldraw.DefaultState()
	st.TextureUnits = []gldraw.TextureUnit{{Texture: 5}}
	ctx, _ := newTestContext(t, gldraw.DefaultCapabilities(), gldraw.WithInitialState(st))

	st.TextureUnits[0].Texture = 9
	if got := ctx.State().TextureUnits[0].Texture; got != 5 {
		t.Errorf("mirror shares memory with the caller: unit 0 holds %d", got)
	}
}

func TestStateReturnsCopy(t *testing.T) {
	ctx, _ := newTestContext(t, gldraw.DefaultCapabilities())
	u := gldraw.NewUniformSet().Set("diffuse", gldraw.Texture(color(5)))
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Fatal(err)
	}

	st := ctx.State()
	st.TextureUnits[0].Texture = 42
	if got := ctx.State().TextureUnits[0].Texture; got != 5 {
		t.Errorf("State() exposed the mirror: unit 0 holds %d", got)
	}
}

func TestResync(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	prog := newTestProgram(1)
	req := triangleRequest(prog, gldraw.NewBufferSlice(10, 72, 3))
	req.Uniforms = gldraw.NewUniformSet().Set("scale", gldraw.Float(1))
	mustDraw(t, ctx, req)

	ctx.Resync(gldraw.DefaultState())
	rec.Reset()
	mustDraw(t, ctx, req)

	for _, name := range []string{"UseProgram", "VertexAttribPointer", "Uniform", "Viewport"} {
		if rec.Count(name) == 0 {
			t.Errorf("%s not reissued after Resync; calls: %v", name, rec.Names())
		}
	}
}

func TestForgetBuffer(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	req := triangleRequest(newTestProgram(1), gldraw.NewBufferSlice(10, 72, 3))
	mustDraw(t, ctx, req)

	ctx.ForgetBuffer(10)
	rec.Reset()
	mustDraw(t, ctx, req)
	if !hasCall(rec.Calls(), "BindBuffer", gldraw.BufferArray, uint32(10)) {
		t.Errorf("recreated buffer not rebound: %v", rec.Calls())
	}
	if rec.Count("VertexAttribPointer") != 2 {
		t.Errorf("attribute pointers not reissued: %v", rec.Names())
	}
}

func TestForgetTexture(t *testing.T) {
	ctx, rec := newTestContext(t, gldraw.DefaultCapabilities())
	u := gldraw.NewUniformSet().Set("diffuse", gldraw.Texture(color(5)))
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Fatal(err)
	}

	ctx.ForgetTexture(5)
	rec.Reset()
	if err := drawUniforms(t, ctx, newTestProgram(1), u); err != nil {
		t.Fatal(err)
	}
	if !hasCall(rec.Calls(), "BindTexture", gldraw.Texture2D, uint32(5)) {
		t.Errorf("recreated texture not rebound: %v", rec.Calls())
	}
}

func TestContextLogging(t *testing.T) {
	orig := gldraw.Logger()
	t.Cleanup(func() { gldraw.SetLogger(orig) })

	var buf bytes.Buffer
	gldraw.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	ctx, _ := newTestContext(t, gldraw.DefaultCapabilities())
	if !strings.Contains(buf.String(), "context created") {
		t.Errorf("context creation not logged: %s", buf.String())
	}

	buf.Reset()
	_ = ctx.Draw(&gldraw.DrawRequest{Indices: gldraw.NoIndices(gldraw.Points)})
	if !strings.Contains(buf.String(), "draw failed") {
		t.Errorf("failed draw not logged: %s", buf.String())
	}

	buf.Reset()
	ctx.Resync(gldraw.DefaultState())
	if !strings.Contains(buf.String(), "level=WARN") {
		t.Errorf("resync not logged as a warning: %s", buf.String())
	}
}

func TestNewContextNilExtensions(t *testing.T) {
	c := gldraw.DefaultCapabilities()
	c.Extensions = nil
	ctx, _ := newTestContext(t, c)
	if got := ctx.Capabilities(); got.Extensions == nil {
		t.Error("Capabilities().Extensions is nil")
	}
}
