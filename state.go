package gldraw

import (
	"slices"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// State is the mirror of the device state a Context has set up.
//
// The mirror must equal the real device state at all times. Every field
// is written only after the matching device call has been issued.
type State struct {
	DepthTest  bool
	DepthFunc  gputypes.CompareFunction
	DepthMask  bool
	DepthRange [2]float32

	StencilTest  bool
	StencilFront StencilFace
	StencilBack  StencilFace

	Blend         bool
	BlendEquation gputypes.BlendOperation
	BlendSrc      gputypes.BlendFactor
	BlendDst      gputypes.BlendFactor

	ColorMask gputypes.ColorWriteMask
	LineWidth float32
	PointSize float32

	CullFace    bool
	CullMode    gputypes.CullMode
	PolygonMode PolygonMode

	Multisample bool
	Dither      bool

	Viewport    Rect
	ScissorTest bool
	Scissor     Rect

	RasterizerDiscard bool
	PatchVertices     int32
	FramebufferSRGB   bool

	// Queries holds the active query object of every kind, 0 when idle.
	// At most one of the three sample kinds is active.
	Queries           [queryKindCount]uint32
	ConditionalRender ConditionalRenderState

	DrawFramebuffer uint32
	ReadFramebuffer uint32
	Program         uint32

	ActiveTexture  uint32
	TextureUnits   []TextureUnit
	UniformBuffers []BufferRange

	ArrayBuffer    uint32
	ElementBuffer  uint32
	IndirectBuffer uint32

	TransformFeedback       uint32
	TransformFeedbackActive bool
	TransformFeedbackMode   gputypes.PrimitiveTopology
}

// ConditionalRenderState is the active predication. Query 0 means none.
type ConditionalRenderState struct {
	Query     uint32
	Wait      bool
	PerRegion bool
}

// TextureUnit is the content of one texture unit.
type TextureUnit struct {
	Dim     TextureDim
	Texture uint32
	Sampler uint32
}

// BufferRange is the content of one indexed buffer binding point.
type BufferRange struct {
	Buffer uint32
	Offset int
	Size   int
}

// DefaultState returns the state of a freshly created device context.
// The viewport is unknown and left zero.
func DefaultState() State {
	stencil := StencilFace{
		Test:        gputypes.CompareFunctionAlways,
		ReadMask:    0xFFFFFFFF,
		WriteMask:   0xFFFFFFFF,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return State{
		DepthFunc:     gputypes.CompareFunctionLess,
		DepthMask:     true,
		DepthRange:    [2]float32{0, 1},
		StencilFront:  stencil,
		StencilBack:   stencil,
		BlendEquation: gputypes.BlendOperationAdd,
		BlendSrc:      gputypes.BlendFactorOne,
		BlendDst:      gputypes.BlendFactorZero,
		ColorMask:     gputypes.ColorWriteMaskAll,
		LineWidth:     1,
		PointSize:     1,
		CullMode:      gputypes.CullModeBack,
		PolygonMode:   PolygonFill,
		Multisample:   true,
		Dither:        true,
		PatchVertices: 3,
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.TextureUnits = slices.Clone(s.TextureUnits)
	s.UniformBuffers = slices.Clone(s.UniformBuffers)
	return s
}

// forgetSampler drops a destroyed sampler object from the units.
// The device reverts such units to sampler 0.
func (s *State) forgetSampler(id uint32) {
	for i := range s.TextureUnits {
		if s.TextureUnits[i].Sampler == id {
			s.TextureUnits[i].Sampler = 0
		}
	}
}

// forgetTexture drops a destroyed texture object from the units.
func (s *State) forgetTexture(id uint32) {
	for i := range s.TextureUnits {
		if s.TextureUnits[i].Texture == id {
			s.TextureUnits[i].Texture = 0
		}
	}
}

// forgetBuffer drops a destroyed buffer object from every binding.
func (s *State) forgetBuffer(id uint32) {
	for _, b := range []*uint32{&s.ArrayBuffer, &s.ElementBuffer, &s.IndirectBuffer} {
		if *b == id {
			*b = 0
		}
	}
	for i := range s.UniformBuffers {
		if s.UniformBuffers[i].Buffer == id {
			s.UniformBuffers[i] = BufferRange{}
		}
	}
}
