package gldraw

import (
	"fmt"

	"github.com/gogpu/gputypes"
)

// PrimitiveType describes how vertices are assembled into primitives.
// Tessellation patches are built with Patches; their Topology is ignored.
type PrimitiveType struct {
	Topology         gputypes.PrimitiveTopology
	VerticesPerPatch int

	patches bool
}

// Common primitive types.
var (
	Points        = PrimitiveType{Topology: gputypes.PrimitiveTopologyPointList}
	Lines         = PrimitiveType{Topology: gputypes.PrimitiveTopologyLineList}
	LineStrip     = PrimitiveType{Topology: gputypes.PrimitiveTopologyLineStrip}
	Triangles     = PrimitiveType{Topology: gputypes.PrimitiveTopologyTriangleList}
	TriangleStrip = PrimitiveType{Topology: gputypes.PrimitiveTopologyTriangleStrip}
)

// Patches returns a patch primitive of n control points.
func Patches(n int) PrimitiveType {
	return PrimitiveType{VerticesPerPatch: n, patches: true}
}

// IsPatches reports whether p is a tessellation patch.
func (p PrimitiveType) IsPatches() bool {
	return p.patches
}

// FeedbackTopology returns the base primitive captured by transform
// feedback: points, lines or triangles.
func (p PrimitiveType) FeedbackTopology() gputypes.PrimitiveTopology {
	switch p.Topology {
	case gputypes.PrimitiveTopologyPointList:
		return gputypes.PrimitiveTopologyPointList
	case gputypes.PrimitiveTopologyLineList, gputypes.PrimitiveTopologyLineStrip:
		return gputypes.PrimitiveTopologyLineList
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

// String returns a human-readable name for the primitive type.
func (p PrimitiveType) String() string {
	if p.IsPatches() {
		return fmt.Sprintf("Patches(%d)", p.VerticesPerPatch)
	}
	switch p.Topology {
	case gputypes.PrimitiveTopologyPointList:
		return "Points"
	case gputypes.PrimitiveTopologyLineList:
		return "Lines"
	case gputypes.PrimitiveTopologyLineStrip:
		return "LineStrip"
	case gputypes.PrimitiveTopologyTriangleList:
		return "Triangles"
	case gputypes.PrimitiveTopologyTriangleStrip:
		return "TriangleStrip"
	default:
		return unknownString
	}
}

// IndexType is the element type of an index buffer.
type IndexType uint8

const (
	IndexUint8 IndexType = iota
	IndexUint16
	IndexUint32
)

// Size returns the size of one index in bytes.
func (t IndexType) Size() int {
	switch t {
	case IndexUint8:
		return 1
	case IndexUint16:
		return 2
	default:
		return 4
	}
}

// String returns a human-readable name for the index type.
func (t IndexType) String() string {
	switch t {
	case IndexUint8:
		return "Uint8"
	case IndexUint16:
		return "Uint16"
	case IndexUint32:
		return "Uint32"
	default:
		return unknownString
	}
}

// IndicesKind selects the draw entry point of a call.
type IndicesKind uint8

const (
	// IndicesNone draws the vertices in order.
	IndicesNone IndicesKind = iota
	// IndicesBuffer draws through an element buffer.
	IndicesBuffer
	// IndicesMultidrawIndirect reads draw records from an indirect buffer.
	IndicesMultidrawIndirect
)

// String returns a human-readable name for the kind.
func (k IndicesKind) String() string {
	switch k {
	case IndicesNone:
		return "NoIndices"
	case IndicesBuffer:
		return "IndexBuffer"
	case IndicesMultidrawIndirect:
		return "MultidrawIndirect"
	default:
		return unknownString
	}
}

// IndicesSource describes how the vertices of a draw are assembled.
// Build one with IndexBuffer, MultidrawIndirect or NoIndices.
type IndicesSource struct {
	kind      IndicesKind
	buffer    Buffer
	indexType IndexType
	primitive PrimitiveType
}

// IndexBuffer draws the elements of buf, each of type typ.
func IndexBuffer(buf Buffer, typ IndexType, p PrimitiveType) IndicesSource {
	return IndicesSource{kind: IndicesBuffer, buffer: buf, indexType: typ, primitive: p}
}

// MultidrawIndirect issues one draw per record stored in buf.
// Instancing is selected per record.
func MultidrawIndirect(buf Buffer, p PrimitiveType) IndicesSource {
	return IndicesSource{kind: IndicesMultidrawIndirect, buffer: buf, primitive: p}
}

// NoIndices draws the vertex sources in order.
func NoIndices(p PrimitiveType) IndicesSource {
	return IndicesSource{kind: IndicesNone, primitive: p}
}

func (s IndicesSource) Kind() IndicesKind        { return s.kind }
func (s IndicesSource) Buffer() Buffer           { return s.buffer }
func (s IndicesSource) IndexType() IndexType     { return s.indexType }
func (s IndicesSource) Primitive() PrimitiveType { return s.primitive }
