// Package gldraw is the draw-call core of an immediate-mode OpenGL renderer.
//
// # Overview
//
// gldraw turns one draw request into the minimal, correctly ordered
// sequence of device commands. A request bundles vertex sources, an
// indices source, a linked program, named uniform values and a set of
// render-state parameters:
//
//	ctx := gldraw.NewContext(dev, caps)
//
//	err := ctx.Draw(&gldraw.DrawRequest{
//	    Width:    800,
//	    Height:   600,
//	    Vertices: []gldraw.VertexSource{gldraw.VertexBuffer(vbo, &format)},
//	    Indices:  gldraw.NoIndices(gldraw.Triangles),
//	    Program:  prog,
//	    Uniforms: gldraw.NewUniformSet().Set("u_color", gldraw.Vec4(color)),
//	})
//
// # State Mirror
//
// Every Context keeps a CPU-side copy of the device state it has set up
// ([State]). Each render-state axis is compared against the mirror and a
// device call is emitted only when the requested value differs, so
// repeating a draw with identical parameters issues no state changes at
// all. Code that touches the device behind the context's back must call
// [Context.Resync] afterwards.
//
// # Binding Slots
//
// Texture units and uniform-buffer binding points are allocated per draw
// call. Units that already hold the requested texture and sampler are
// reused before anything is evicted.
//
// # Fences
//
// Buffers read by a draw receive a fresh [SyncToken] in their
// [FenceSlot] once the draw call has been issued. The previous token of
// that slot is destroyed. Waiting on fences is left to the resource layer.
//
// # Devices
//
// The [Device] interface is the complete vocabulary the core speaks.
// backend/opengl implements it on top of go-gl; gldrawtest records the calls
// for tests and tooling.
//
// # Thread Safety
//
// A Context is NOT safe for concurrent use. Use one Context per device
// context and submit from a single goroutine. [FenceSlot] is the only
// type meant to be shared with other goroutines.
package gldraw

// Release identifies this version of the module.
const (
	ReleaseMajor = 0
	ReleaseMinor = 1
	ReleasePatch = 0

	Release = "0.1.0"
)
