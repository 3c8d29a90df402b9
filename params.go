package gldraw

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// StencilFace is the stencil configuration of one winding direction.
type StencilFace struct {
	Test      gputypes.CompareFunction
	Reference int32
	ReadMask  uint32
	WriteMask uint32

	FailOp      hal.StencilOperation
	DepthFailOp hal.StencilOperation
	PassOp      hal.StencilOperation
}

// encodedTest returns the comparison, reference and read mask as sent to
// the device. Tests that ignore the stencil buffer use a read mask of 0.
func (f StencilFace) encodedTest() (gputypes.CompareFunction, int32, uint32) {
	switch f.Test {
	case gputypes.CompareFunctionAlways, gputypes.CompareFunctionNever:
		return f.Test, f.Reference, 0
	default:
		return f.Test, f.Reference, f.ReadMask
	}
}

// BlendMode selects the blend equation.
type BlendMode uint8

const (
	// BlendReplace overwrites the destination; blending is disabled.
	BlendReplace BlendMode = iota
	BlendMin
	BlendMax
	BlendAdd
	BlendSubtract
	BlendReverseSubtract
)

// String returns a human-readable name for the blend mode.
func (m BlendMode) String() string {
	switch m {
	case BlendReplace:
		return "Replace"
	case BlendMin:
		return "Min"
	case BlendMax:
		return "Max"
	case BlendAdd:
		return "Add"
	case BlendSubtract:
		return "Subtract"
	case BlendReverseSubtract:
		return "ReverseSubtract"
	default:
		return unknownString
	}
}

// operation returns the device equation of m and whether m uses blend factors.
func (m BlendMode) operation() (op gputypes.BlendOperation, factors bool) {
	switch m {
	case BlendMin:
		return gputypes.BlendOperationMin, false
	case BlendMax:
		return gputypes.BlendOperationMax, false
	case BlendSubtract:
		return gputypes.BlendOperationSubtract, true
	case BlendReverseSubtract:
		return gputypes.BlendOperationReverseSubtract, true
	default:
		return gputypes.BlendOperationAdd, true
	}
}

// Blending is the blend configuration of a draw.
// Source and Destination apply to the add and subtract modes only.
type Blending struct {
	Mode        BlendMode
	Source      gputypes.BlendFactor
	Destination gputypes.BlendFactor
}

// AlphaBlending returns standard non-premultiplied alpha blending.
func AlphaBlending() Blending {
	return Blending{
		Mode:        BlendAdd,
		Source:      gputypes.BlendFactorSrcAlpha,
		Destination: gputypes.BlendFactorOneMinusSrcAlpha,
	}
}

// PremultipliedBlending returns blending for premultiplied alpha.
func PremultipliedBlending() Blending {
	return Blending{
		Mode:        BlendAdd,
		Source:      gputypes.BlendFactorOne,
		Destination: gputypes.BlendFactorOneMinusSrcAlpha,
	}
}

// Culling selects which winding is culled. The device keeps
// counter-clockwise as the front face.
type Culling uint8

const (
	CullingDisabled Culling = iota
	// CullClockwise culls clockwise triangles, the back faces.
	CullClockwise
	// CullCounterClockwise culls counter-clockwise triangles, the front faces.
	CullCounterClockwise
)

// String returns a human-readable name for the culling mode.
func (c Culling) String() string {
	switch c {
	case CullingDisabled:
		return "Disabled"
	case CullClockwise:
		return "Clockwise"
	case CullCounterClockwise:
		return "CounterClockwise"
	default:
		return unknownString
	}
}

// ConditionalRendering predicates a draw on the result of a sample query.
type ConditionalRendering struct {
	Query *Query
	// Wait blocks the device until the query result is available.
	Wait bool
	// PerRegion allows the result to be evaluated per screen region.
	PerRegion bool
}

// TransformFeedbackSession captures the vertex outputs of a draw into
// the buffers attached to a transform feedback object.
type TransformFeedbackSession struct {
	ID uint32
	// Buffer is the capture buffer; it receives a fence.
	Buffer Buffer
}

// DrawParameters is the render-state configuration of a draw.
type DrawParameters struct {
	// DepthTest of CompareFunctionAlways disables the depth test.
	DepthTest  gputypes.CompareFunction
	DepthWrite bool
	DepthRange [2]float32

	StencilClockwise        StencilFace
	StencilCounterClockwise StencilFace

	Blending  Blending
	ColorMask gputypes.ColorWriteMask

	// LineWidth and PointSize leave the device untouched when nil.
	LineWidth *float32
	PointSize *float32

	Culling     Culling
	PolygonMode PolygonMode

	Multisampling bool
	Dithering     bool

	// Viewport defaults to the whole target.
	Viewport *Rect
	// Scissor disables the scissor test when nil.
	Scissor *Rect

	// DrawPrimitives false discards primitives before rasterization.
	DrawPrimitives bool

	// SamplesPassedQuery takes any of the three sample query kinds.
	SamplesPassedQuery                      *Query
	TimeElapsedQuery                        *Query
	PrimitivesGeneratedQuery                *Query
	TransformFeedbackPrimitivesWrittenQuery *Query

	ConditionalRendering *ConditionalRendering
	TransformFeedback    *TransformFeedbackSession
}

// DefaultDrawParameters returns parameters drawing every fragment
// without depth, stencil or blending.
func DefaultDrawParameters() DrawParameters {
	stencil := StencilFace{
		Test:        gputypes.CompareFunctionAlways,
		ReadMask:    0xFFFFFFFF,
		WriteMask:   0xFFFFFFFF,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	return DrawParameters{
		DepthTest:               gputypes.CompareFunctionAlways,
		DepthRange:              [2]float32{0, 1},
		StencilClockwise:        stencil,
		StencilCounterClockwise: stencil,
		Blending:                Blending{Mode: BlendReplace},
		ColorMask:               gputypes.ColorWriteMaskAll,
		Culling:                 CullingDisabled,
		PolygonMode:             PolygonFill,
		Multisampling:           true,
		Dithering:               true,
		DrawPrimitives:          true,
	}
}

// Validate checks p against the device capabilities for a target of
// width by height pixels.
func (p *DrawParameters) Validate(caps *Capabilities, width, height int) error {
	if maxW, maxH := caps.MaxViewportDims[0], caps.MaxViewportDims[1]; maxW > 0 && maxH > 0 {
		if width > maxW || height > maxH {
			return ErrViewportTooLarge
		}
		if v := p.Viewport; v != nil && (v.Width > maxW || v.Height > maxH) {
			return ErrViewportTooLarge
		}
	}
	for _, d := range p.DepthRange {
		if d < 0 || d > 1 {
			return ErrInvalidDepthRange
		}
	}
	for _, f := range [...]gputypes.CompareFunction{p.DepthTest, p.StencilClockwise.Test, p.StencilCounterClockwise.Test} {
		if f < gputypes.CompareFunctionNever || f > gputypes.CompareFunctionAlways {
			return ErrInvalidCompareFunction
		}
	}
	if b := p.Blending; b.Mode != BlendReplace {
		if _, factors := b.Mode.operation(); factors && (!validFactor(b.Source) || !validFactor(b.Destination)) {
			return ErrInvalidBlendFactor
		}
	}
	if p.LineWidth != nil && *p.LineWidth <= 0 {
		return ErrInvalidLineWidth
	}
	if p.PointSize != nil && *p.PointSize <= 0 {
		return ErrInvalidPointSize
	}
	if m := p.Blending.Mode; (m == BlendMin || m == BlendMax) && !caps.SupportsBlendMinMax() {
		return ErrBlendingNotSupported
	}
	if !p.DrawPrimitives && !caps.SupportsRasterizerDiscard() {
		return ErrRasterizerDiscardNotSupported
	}
	if p.PolygonMode != PolygonFill && !caps.SupportsPolygonMode() {
		return ErrPolygonModeNotSupported
	}
	if err := p.validateQueries(caps); err != nil {
		return err
	}
	if cr := p.ConditionalRendering; cr != nil {
		if !caps.SupportsConditionalRender() {
			return ErrConditionalRenderingNotSupported
		}
		if cr.Query == nil || !cr.Query.Kind().IsOcclusion() {
			return ErrQueryKindMismatch
		}
	}
	if p.TransformFeedback != nil && !caps.SupportsTransformFeedback() {
		return ErrTransformFeedbackNotSupported
	}
	return nil
}

func validFactor(f gputypes.BlendFactor) bool {
	return f >= gputypes.BlendFactorZero && f <= gputypes.BlendFactorOneMinusConstant
}

func (p *DrawParameters) validateQueries(caps *Capabilities) error {
	if q := p.SamplesPassedQuery; q != nil {
		if !q.Kind().IsOcclusion() {
			return ErrQueryKindMismatch
		}
		if !caps.SupportsQuery(q.Kind()) {
			return ErrQueryNotSupported
		}
	}
	slots := [...]struct {
		q    *Query
		kind QueryKind
	}{
		{p.TimeElapsedQuery, QueryTimeElapsed},
		{p.PrimitivesGeneratedQuery, QueryPrimitivesGenerated},
		{p.TransformFeedbackPrimitivesWrittenQuery, QueryTransformFeedbackPrimitivesWritten},
	}
	for _, s := range slots {
		if s.q == nil {
			continue
		}
		if s.q.Kind() != s.kind {
			return ErrQueryKindMismatch
		}
		if !caps.SupportsQuery(s.kind) {
			return ErrQueryNotSupported
		}
	}
	return nil
}
