// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package opengl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/gl/v4.6-core/gl"

	"github.com/gogpu/gldraw"
)

// ErrVersionFormat is returned when the GL_VERSION string cannot be parsed.
var ErrVersionFormat = errors.New("opengl: unrecognized GL_VERSION string")

// QueryCapabilities reads the version, extensions and binding limits of
// the current context.
func QueryCapabilities() (gldraw.Capabilities, error) {
	v, err := ParseVersion(gl.GoStr(gl.GetString(gl.VERSION)))
	if err != nil {
		return gldraw.Capabilities{}, err
	}

	c := gldraw.Capabilities{
		Version:                      v,
		Extensions:                   make(map[string]bool),
		MaxCombinedTextureImageUnits: int(getInteger(gl.MAX_COMBINED_TEXTURE_IMAGE_UNITS)),
		MaxUniformBufferBindings:     int(getInteger(gl.MAX_UNIFORM_BUFFER_BINDINGS)),
		MaxPatchVertices:             int(getInteger(gl.MAX_PATCH_VERTICES)),
	}

	n := getInteger(gl.NUM_EXTENSIONS)
	for i := range uint32(n) {
		c.Extensions[gl.GoStr(gl.GetStringi(gl.EXTENSIONS, i))] = true
	}

	var dims [2]int32
	gl.GetIntegerv(gl.MAX_VIEWPORT_DIMS, &dims[0])
	c.MaxViewportDims = [2]int{int(dims[0]), int(dims[1])}

	gldraw.Logger().Info("opengl: capabilities queried",
		"version", v.String(),
		"extensions", len(c.Extensions),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))
	return c, nil
}

func getInteger(pname uint32) int32 {
	var v int32
	gl.GetIntegerv(pname, &v)
	return v
}

// ParseVersion parses a GL_VERSION string such as "4.6.0 NVIDIA 535.54"
// or "OpenGL ES 3.2 Mesa 23.1".
func ParseVersion(s string) (gldraw.Version, error) {
	v := gldraw.Version{API: gldraw.APIOpenGL}
	rest := strings.TrimSpace(s)
	if after, ok := strings.CutPrefix(rest, "OpenGL ES"); ok {
		v.API = gldraw.APIOpenGLES
		rest = strings.TrimSpace(after)
		// "OpenGL ES-CM 1.1" and friends.
		if i := strings.IndexByte(rest, ' '); i >= 0 && strings.HasPrefix(rest, "-") {
			rest = rest[i+1:]
		}
	}

	number, _, _ := strings.Cut(rest, " ")
	parts := strings.Split(number, ".")
	if len(parts) < 2 {
		return gldraw.Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return gldraw.Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return gldraw.Version{}, fmt.Errorf("%w: %q", ErrVersionFormat, s)
	}
	v.Major, v.Minor = major, minor
	return v, nil
}
