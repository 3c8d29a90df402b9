// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gldrawtest provides a recording gldraw.Device for tests and
// command-stream tooling.
//
//	rec := gldrawtest.NewRecorder()
//	ctx := gldraw.NewContext(rec, gldraw.DefaultCapabilities())
//	_ = ctx.Draw(req)
//	for _, call := range rec.Calls() {
//	    fmt.Println(call)
//	}
package gldrawtest

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/gldraw"
)

// Call is one recorded device call.
type Call struct {
	Name string
	Args []any
}

// String formats the call as Name(arg, arg).
func (c Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Name + "(" + strings.Join(args, ", ") + ")"
}

// Recorder is a gldraw.Device that records every call it receives.
// Sync tokens and sampler objects are numbered from 1.
//
// Recorder is NOT safe for concurrent use.
type Recorder struct {
	calls       []Call
	nextSync    gldraw.SyncToken
	nextSampler uint32
	liveSyncs   map[gldraw.SyncToken]bool
	logger      *slog.Logger
}

var _ gldraw.Device = (*Recorder)(nil)

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{liveSyncs: make(map[gldraw.SyncToken]bool)}
}

func (r *Recorder) record(name string, args ...any) {
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

// Calls returns the calls recorded since the last Reset.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Names returns the names of the recorded calls in order.
func (r *Recorder) Names() []string {
	names := make([]string, len(r.calls))
	for i, c := range r.calls {
		names[i] = c.Name
	}
	return names
}

// Count returns how many calls named name were recorded.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Find returns the recorded calls named name.
func (r *Recorder) Find(name string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// StateChanges returns the recorded calls that change device state.
// Draw calls and object creation or destruction are excluded.
func (r *Recorder) StateChanges() []Call {
	var out []Call
	for _, c := range r.calls {
		if !isStateChange(c.Name) {
			continue
		}
		out = append(out, c)
	}
	return out
}

// LiveSyncs returns the number of sync tokens created and not yet deleted.
func (r *Recorder) LiveSyncs() int {
	return len(r.liveSyncs)
}

// SetLogger receives the logger of the Context the recorder is attached to.
func (r *Recorder) SetLogger(l *slog.Logger) { r.logger = l }

// Logger returns the logger set by SetLogger, or nil.
func (r *Recorder) Logger() *slog.Logger { return r.logger }

// Reset forgets the recorded calls. Live sync tokens are kept.
func (r *Recorder) Reset() {
	r.calls = nil
}

func isStateChange(name string) bool {
	switch name {
	case "DrawArrays", "DrawArraysInstanced", "DrawElements", "DrawElementsInstanced",
		"MultiDrawArraysIndirect", "FenceSync", "DeleteSync", "CreateSampler", "DeleteSampler":
		return false
	}
	return true
}

func (r *Recorder) Enable(c gldraw.Capability)  { r.record("Enable", c) }
func (r *Recorder) Disable(c gldraw.Capability) { r.record("Disable", c) }

func (r *Recorder) DepthFunc(fn gputypes.CompareFunction) { r.record("DepthFunc", fn) }
func (r *Recorder) DepthMask(write bool)                  { r.record("DepthMask", write) }
func (r *Recorder) DepthRange(near, far float32)          { r.record("DepthRange", near, far) }

func (r *Recorder) StencilFuncSeparate(face gldraw.Face, fn gputypes.CompareFunction, ref int32, readMask uint32) {
	r.record("StencilFuncSeparate", face, fn, ref, readMask)
}

func (r *Recorder) StencilMaskSeparate(face gldraw.Face, writeMask uint32) {
	r.record("StencilMaskSeparate", face, writeMask)
}

func (r *Recorder) StencilOpSeparate(face gldraw.Face, fail, depthFail, pass hal.StencilOperation) {
	r.record("StencilOpSeparate", face, fail, depthFail, pass)
}

func (r *Recorder) BlendEquation(op gputypes.BlendOperation)    { r.record("BlendEquation", op) }
func (r *Recorder) BlendFunc(src, dst gputypes.BlendFactor)     { r.record("BlendFunc", src, dst) }
func (r *Recorder) ColorMask(mask gputypes.ColorWriteMask)      { r.record("ColorMask", mask) }
func (r *Recorder) LineWidth(width float32)                     { r.record("LineWidth", width) }
func (r *Recorder) PointSize(size float32)                      { r.record("PointSize", size) }
func (r *Recorder) CullFace(mode gputypes.CullMode)             { r.record("CullFace", mode) }
func (r *Recorder) PolygonMode(mode gldraw.PolygonMode)         { r.record("PolygonMode", mode) }
func (r *Recorder) Viewport(rect gldraw.Rect)                   { r.record("Viewport", rect) }
func (r *Recorder) Scissor(rect gldraw.Rect)                    { r.record("Scissor", rect) }
func (r *Recorder) PatchVertices(n int32)                       { r.record("PatchVertices", n) }
func (r *Recorder) BeginQuery(kind gldraw.QueryKind, id uint32) { r.record("BeginQuery", kind, id) }
func (r *Recorder) EndQuery(kind gldraw.QueryKind)              { r.record("EndQuery", kind) }

func (r *Recorder) BeginConditionalRender(id uint32, wait, perRegion bool) {
	r.record("BeginConditionalRender", id, wait, perRegion)
}

func (r *Recorder) EndConditionalRender() { r.record("EndConditionalRender") }

func (r *Recorder) BeginConditionalRenderNV(id uint32, wait, perRegion bool) {
	r.record("BeginConditionalRenderNV", id, wait, perRegion)
}

func (r *Recorder) EndConditionalRenderNV() { r.record("EndConditionalRenderNV") }

func (r *Recorder) BindFramebuffer(target gldraw.FramebufferTarget, id uint32) {
	r.record("BindFramebuffer", target, id)
}

func (r *Recorder) UseProgram(id uint32)                         { r.record("UseProgram", id) }
func (r *Recorder) ActiveTexture(unit uint32)                    { r.record("ActiveTexture", unit) }
func (r *Recorder) BindTexture(dim gldraw.TextureDim, id uint32) { r.record("BindTexture", dim, id) }
func (r *Recorder) BindSampler(unit, id uint32)                  { r.record("BindSampler", unit, id) }

func (r *Recorder) CreateSampler(b gldraw.SamplerBehavior) uint32 {
	r.nextSampler++
	r.record("CreateSampler", r.nextSampler)
	return r.nextSampler
}

func (r *Recorder) DeleteSampler(id uint32) { r.record("DeleteSampler", id) }

func (r *Recorder) BindBuffer(target gldraw.BufferTarget, id uint32) {
	r.record("BindBuffer", target, id)
}

func (r *Recorder) BindBufferBase(target gldraw.BufferTarget, index, id uint32) {
	r.record("BindBufferBase", target, index, id)
}

func (r *Recorder) BindBufferRange(target gldraw.BufferTarget, index, id uint32, offset, size int) {
	r.record("BindBufferRange", target, index, id, offset, size)
}

func (r *Recorder) UniformBlockBinding(program, block, binding uint32) {
	r.record("UniformBlockBinding", program, block, binding)
}

func (r *Recorder) EnableVertexAttribArray(location uint32) {
	r.record("EnableVertexAttribArray", location)
}

func (r *Recorder) DisableVertexAttribArray(location uint32) {
	r.record("DisableVertexAttribArray", location)
}

func (r *Recorder) VertexAttribPointer(location uint32, components int32, typ gldraw.AttributeType, normalized bool, stride, offset int) {
	r.record("VertexAttribPointer", location, components, typ, normalized, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(location, divisor uint32) {
	r.record("VertexAttribDivisor", location, divisor)
}

func (r *Recorder) Uniform(location int32, v gldraw.RawUniform) {
	r.record("Uniform", location, v.Kind, v)
}

func (r *Recorder) BindTransformFeedback(id uint32) { r.record("BindTransformFeedback", id) }

func (r *Recorder) BeginTransformFeedback(mode gputypes.PrimitiveTopology) {
	r.record("BeginTransformFeedback", mode)
}

func (r *Recorder) EndTransformFeedback() { r.record("EndTransformFeedback") }

func (r *Recorder) DrawArrays(mode gldraw.PrimitiveType, first, count int) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawArraysInstanced(mode gldraw.PrimitiveType, first, count, instances int) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
}

func (r *Recorder) DrawElements(mode gldraw.PrimitiveType, count int, typ gldraw.IndexType, offset int) {
	r.record("DrawElements", mode, count, typ, offset)
}

func (r *Recorder) DrawElementsInstanced(mode gldraw.PrimitiveType, count int, typ gldraw.IndexType, offset, instances int) {
	r.record("DrawElementsInstanced", mode, count, typ, offset, instances)
}

func (r *Recorder) MultiDrawArraysIndirect(mode gldraw.PrimitiveType, offset, drawCount, stride int) {
	r.record("MultiDrawArraysIndirect", mode, offset, drawCount, stride)
}

func (r *Recorder) FenceSync() gldraw.SyncToken {
	r.nextSync++
	r.liveSyncs[r.nextSync] = true
	r.record("FenceSync", r.nextSync)
	return r.nextSync
}

func (r *Recorder) DeleteSync(t gldraw.SyncToken) {
	delete(r.liveSyncs, t)
	r.record("DeleteSync", t)
}
