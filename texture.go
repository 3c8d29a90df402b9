package gldraw

import "github.com/gogpu/gputypes"

// TextureDim is the dimensionality of a texture and of the sampler reading it.
type TextureDim uint8

const (
	Texture2D TextureDim = iota
	Texture1D
	Texture1DArray
	Texture2DArray
	Texture2DMultisample
	Texture2DMultisampleArray
	Texture3D
	TextureCube
)

// String returns a human-readable name for the dimensionality.
func (d TextureDim) String() string {
	switch d {
	case Texture1D:
		return "1D"
	case Texture1DArray:
		return "1DArray"
	case Texture2D:
		return "2D"
	case Texture2DArray:
		return "2DArray"
	case Texture2DMultisample:
		return "2DMultisample"
	case Texture2DMultisampleArray:
		return "2DMultisampleArray"
	case Texture3D:
		return "3D"
	case TextureCube:
		return "Cube"
	default:
		return unknownString
	}
}

// SampleKind is the kind of texels a texture stores.
type SampleKind uint8

const (
	SampleColor SampleKind = iota
	SampleIntegral
	SampleUnsigned
	SampleDepth
	SampleSRGB
	SampleCompressed
	SampleCompressedSRGB
)

// String returns a human-readable name for the sample kind.
func (k SampleKind) String() string {
	switch k {
	case SampleColor:
		return "Color"
	case SampleIntegral:
		return "Integral"
	case SampleUnsigned:
		return "Unsigned"
	case SampleDepth:
		return "Depth"
	case SampleSRGB:
		return "SRGB"
	case SampleCompressed:
		return "Compressed"
	case SampleCompressedSRGB:
		return "CompressedSRGB"
	default:
		return unknownString
	}
}

// SampleType returns the sample type a shader sees when reading texels of kind k.
func (k SampleKind) SampleType() gputypes.TextureSampleType {
	switch k {
	case SampleIntegral:
		return gputypes.TextureSampleTypeSint
	case SampleUnsigned:
		return gputypes.TextureSampleTypeUint
	case SampleDepth:
		return gputypes.TextureSampleTypeDepth
	default:
		return gputypes.TextureSampleTypeFloat
	}
}

// TextureRef identifies a texture object for sampling.
type TextureRef struct {
	ID   uint32
	Dim  TextureDim
	Kind SampleKind
}
