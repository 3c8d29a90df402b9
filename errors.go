package gldraw

import "errors"

// Configuration errors. They are reported before any device call is made.
var (
	// ErrNoProgram is returned for a draw request without a program.
	ErrNoProgram = errors.New("gldraw: draw request without program")

	// ErrViewportTooLarge is returned when the viewport or the target
	// exceeds the device's maximum viewport dimensions.
	ErrViewportTooLarge = errors.New("gldraw: viewport exceeds device limits")

	// ErrInvalidDepthRange is returned when a depth range bound is outside [0, 1].
	ErrInvalidDepthRange = errors.New("gldraw: depth range outside [0, 1]")

	// ErrInvalidCompareFunction is returned when the depth test or a
	// stencil test is not a defined comparison.
	ErrInvalidCompareFunction = errors.New("gldraw: undefined compare function")

	// ErrInvalidBlendFactor is returned when an add or subtract blend mode
	// has an undefined source or destination factor.
	ErrInvalidBlendFactor = errors.New("gldraw: undefined blend factor")

	// ErrInvalidLineWidth is returned for a non-positive line width.
	ErrInvalidLineWidth = errors.New("gldraw: line width must be positive")

	// ErrInvalidPointSize is returned for a non-positive point size.
	ErrInvalidPointSize = errors.New("gldraw: point size must be positive")

	// ErrBlendingNotSupported is returned when the blend mode is not
	// available on the device (min/max on OpenGL ES 2).
	ErrBlendingNotSupported = errors.New("gldraw: blending mode not supported")

	// ErrRasterizerDiscardNotSupported is returned when DrawPrimitives is
	// false on a device without rasterizer discard.
	ErrRasterizerDiscardNotSupported = errors.New("gldraw: rasterizer discard not supported")

	// ErrPolygonModeNotSupported is returned for point or line polygon modes on OpenGL ES.
	ErrPolygonModeNotSupported = errors.New("gldraw: polygon mode not supported")

	// ErrQueryNotSupported is returned when the device cannot run a query of the requested kind.
	ErrQueryNotSupported = errors.New("gldraw: query kind not supported")

	// ErrQueryKindMismatch is returned when a query is placed in a slot of another kind.
	ErrQueryKindMismatch = errors.New("gldraw: query placed in a slot of another kind")

	// ErrConditionalRenderingNotSupported is returned when the device has
	// neither core nor NV conditional rendering.
	ErrConditionalRenderingNotSupported = errors.New("gldraw: conditional rendering not supported")

	// ErrTransformFeedbackNotSupported is returned when a transform
	// feedback session is requested on a device without transform feedback.
	ErrTransformFeedbackNotSupported = errors.New("gldraw: transform feedback not supported")

	// ErrUnsupportedVerticesPerPatch is returned when a patch primitive
	// has zero vertices or more than the device's maximum.
	ErrUnsupportedVerticesPerPatch = errors.New("gldraw: unsupported number of vertices per patch")

	// ErrTessellationNotSupported is returned for patch primitives on a
	// device without tessellation shaders.
	ErrTessellationNotSupported = errors.New("gldraw: tessellation not supported")

	// ErrMultidrawIndirectNotSupported is returned for indirect draws on a
	// device without MultiDrawArraysIndirect.
	ErrMultidrawIndirectNotSupported = errors.New("gldraw: multidraw indirect not supported")

	// ErrSamplersNotSupported is returned when a sampler behavior is
	// requested on a device without sampler objects.
	ErrSamplersNotSupported = errors.New("gldraw: sampler objects not supported")
)

// Shape errors, detected while iterating the vertex sources.
var (
	// ErrInstancesCountMismatch is returned when per-instance sources disagree on their length.
	ErrInstancesCountMismatch = errors.New("gldraw: per-instance sources have different lengths")

	// ErrVerticesSourcesLengthMismatch is returned for a non-indexed draw
	// whose per-vertex sources disagree on their length.
	ErrVerticesSourcesLengthMismatch = errors.New("gldraw: vertex sources have different lengths")
)

// Binding errors. They are wrapped in a *UniformError naming the uniform.
var (
	// ErrUniformTypeMismatch is returned when a value does not match the declared uniform type.
	ErrUniformTypeMismatch = errors.New("gldraw: uniform type mismatch")

	// ErrUniformBlockLayoutMismatch is returned when a block's layout predicate rejects the program's block.
	ErrUniformBlockLayoutMismatch = errors.New("gldraw: uniform block layout mismatch")

	// ErrUniformBufferToValue is returned when a buffer is bound to a plain uniform.
	ErrUniformBufferToValue = errors.New("gldraw: buffer bound to a plain uniform")

	// ErrUniformValueToBlock is returned when a plain value is bound to a uniform block.
	ErrUniformValueToBlock = errors.New("gldraw: value bound to a uniform block")

	// ErrUniformArrayNotSupported is returned for array uniforms.
	ErrUniformArrayNotSupported = errors.New("gldraw: array uniforms are not supported")
)

// ErrWrongQueryOperation is returned when a draw begins a query object
// that has already been used.
var ErrWrongQueryOperation = errors.New("gldraw: query object already used")

// UniformError reports a uniform that could not be bound.
type UniformError struct {
	// Name is the uniform or block name as supplied by the caller.
	Name string

	// Expected is the declared type, set for type mismatches.
	Expected UniformType

	// Err is one of the binding sentinels.
	Err error
}

func (e *UniformError) Error() string {
	if errors.Is(e.Err, ErrUniformTypeMismatch) {
		return e.Err.Error() + ": " + e.Name + " (expected " + e.Expected.String() + ")"
	}
	return e.Err.Error() + ": " + e.Name
}

func (e *UniformError) Unwrap() error {
	return e.Err
}
