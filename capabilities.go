package gldraw

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// API is the flavor of the device's OpenGL implementation.
type API uint8

const (
	APIOpenGL API = iota
	APIOpenGLES
)

// String returns a human-readable name for the API.
func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "OpenGL"
	case APIOpenGLES:
		return "OpenGL ES"
	default:
		return unknownString
	}
}

// Version is a device API version.
type Version struct {
	API   API
	Major int
	Minor int
}

// AtLeast reports whether v is api at version major.minor or later.
// Versions of different APIs never compare as at least each other.
func (v Version) AtLeast(api API, major, minor int) bool {
	if v.API != api {
		return false
	}
	return v.Major > major || (v.Major == major && v.Minor >= minor)
}

func (v Version) String() string {
	return fmt.Sprintf("%s %d.%d", v.API, v.Major, v.Minor)
}

// Capabilities describes the limits and feature set of a device.
// Extensions is keyed by the full extension name, as in "GL_NV_conditional_render".
type Capabilities struct {
	Version    Version
	Extensions map[string]bool

	MaxCombinedTextureImageUnits int
	MaxUniformBufferBindings     int
	MaxPatchVertices             int
	MaxViewportDims              [2]int
}

// Guaranteed minimum of GL_MAX_PATCH_VERTICES.
const minMaxPatchVertices = 32

// DefaultCapabilities describes an OpenGL 4.6 core device with the
// limits of gputypes.DefaultLimits.
func DefaultCapabilities() Capabilities {
	c := CapabilitiesFromLimits(gputypes.DefaultLimits())
	c.Version = Version{API: APIOpenGL, Major: 4, Minor: 6}
	return c
}

// CapabilitiesFromLimits seeds the binding limits from a WebGPU limits
// descriptor. Version and Extensions are left for the caller.
func CapabilitiesFromLimits(l gputypes.Limits) Capabilities {
	return Capabilities{
		Extensions:                   map[string]bool{},
		MaxCombinedTextureImageUnits: int(l.MaxSampledTexturesPerShaderStage),
		MaxUniformBufferBindings:     int(l.MaxUniformBuffersPerShaderStage),
		MaxPatchVertices:             minMaxPatchVertices,
		MaxViewportDims:              [2]int{int(l.MaxTextureDimension2D), int(l.MaxTextureDimension2D)},
	}
}

// HasExtension reports whether the named extension is present.
func (c *Capabilities) HasExtension(name string) bool {
	return c.Extensions[name]
}

func (c *Capabilities) gl(major, minor int) bool {
	return c.Version.AtLeast(APIOpenGL, major, minor)
}

func (c *Capabilities) gles(major, minor int) bool {
	return c.Version.AtLeast(APIOpenGLES, major, minor)
}

func (c *Capabilities) any(exts ...string) bool {
	for _, e := range exts {
		if c.Extensions[e] {
			return true
		}
	}
	return false
}

// SupportsDrawFramebuffer reports whether draw and read framebuffers can be bound separately.
func (c *Capabilities) SupportsDrawFramebuffer() bool {
	return c.gl(3, 0) || c.gles(3, 0) || c.any("GL_ARB_framebuffer_object")
}

// SupportsSamplerObjects reports whether sampler objects are available.
func (c *Capabilities) SupportsSamplerObjects() bool {
	return c.gl(3, 3) || c.gles(3, 0) || c.any("GL_ARB_sampler_objects")
}

// SupportsTessellation reports whether tessellation shaders are available.
func (c *Capabilities) SupportsTessellation() bool {
	return c.gl(4, 0) || c.gles(3, 2) ||
		c.any("GL_ARB_tessellation_shader", "GL_OES_tessellation_shader", "GL_EXT_tessellation_shader")
}

// SupportsTransformFeedback reports whether transform feedback is available.
func (c *Capabilities) SupportsTransformFeedback() bool {
	return c.gl(3, 0) || c.gles(3, 0) || c.any("GL_EXT_transform_feedback")
}

// SupportsRasterizerDiscard reports whether primitives can be discarded
// before rasterization, through the core or the EXT capability.
func (c *Capabilities) SupportsRasterizerDiscard() bool {
	return c.coreRasterizerDiscard() || c.any("GL_EXT_transform_feedback")
}

func (c *Capabilities) coreRasterizerDiscard() bool {
	return c.gl(3, 0) || c.gles(3, 0)
}

// SupportsConditionalRender reports whether conditional rendering is
// available through the core or the NV entry points.
func (c *Capabilities) SupportsConditionalRender() bool {
	return c.coreConditionalRender() || c.any("GL_NV_conditional_render")
}

func (c *Capabilities) coreConditionalRender() bool {
	return c.gl(3, 0)
}

// SupportsFramebufferSRGB reports whether linear to sRGB conversion on
// framebuffer writes can be toggled.
func (c *Capabilities) SupportsFramebufferSRGB() bool {
	return c.gl(3, 0) || c.any("GL_ARB_framebuffer_sRGB", "GL_EXT_framebuffer_sRGB")
}

// SupportsPolygonMode reports whether points and lines polygon modes are available.
func (c *Capabilities) SupportsPolygonMode() bool {
	return c.Version.API == APIOpenGL
}

// SupportsBlendMinMax reports whether the min and max blend equations are available.
func (c *Capabilities) SupportsBlendMinMax() bool {
	if c.Version.API == APIOpenGLES && c.Version.Major < 3 {
		return c.any("GL_EXT_blend_minmax")
	}
	return true
}

// SupportsMultidrawIndirect reports whether MultiDrawArraysIndirect is available.
func (c *Capabilities) SupportsMultidrawIndirect() bool {
	return c.gl(4, 3) || c.any("GL_ARB_multi_draw_indirect", "GL_EXT_multi_draw_indirect")
}

// SupportsQuery reports whether queries of kind k can be run.
func (c *Capabilities) SupportsQuery(k QueryKind) bool {
	switch k {
	case QuerySamplesPassed:
		return c.gl(1, 5) || c.any("GL_ARB_occlusion_query")
	case QueryAnySamplesPassed:
		return c.gl(3, 3) || c.gles(3, 0) || c.any("GL_ARB_occlusion_query2", "GL_EXT_occlusion_query_boolean")
	case QueryAnySamplesPassedConservative:
		return c.gl(4, 3) || c.gles(3, 0) || c.any("GL_ARB_ES3_compatibility", "GL_EXT_occlusion_query_boolean")
	case QueryTimeElapsed:
		return c.gl(3, 3) || c.any("GL_ARB_timer_query", "GL_EXT_timer_query", "GL_EXT_disjoint_timer_query")
	case QueryPrimitivesGenerated:
		return c.gl(3, 0) || c.gles(3, 2) || c.any("GL_EXT_transform_feedback")
	case QueryTransformFeedbackPrimitivesWritten:
		return c.gl(3, 0) || c.gles(3, 0) || c.any("GL_EXT_transform_feedback")
	default:
		return false
	}
}
