// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package opengl implements gldraw.Device on top of the go-gl OpenGL 4.6
// core bindings.
//
// The package also links shader programs into gldraw.ProgramInfo values
// and reads gldraw.Capabilities from the current context:
//
//	if err := gl.Init(); err != nil {
//		return err
//	}
//	caps, err := opengl.QueryCapabilities()
//	if err != nil {
//		return err
//	}
//	ctx := gldraw.NewContext(opengl.NewDevice(), caps)
//
// Every function in this package must run on the thread that owns the
// current GL context.
package opengl
