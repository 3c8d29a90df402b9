package gldraw

// AttributeType is the component type of a vertex attribute in memory.
type AttributeType uint8

const (
	AttribFloat32 AttributeType = iota
	AttribFloat16
	AttribInt8
	AttribUint8
	AttribInt16
	AttribUint16
	AttribInt32
	AttribUint32
)

// String returns a human-readable name for the attribute type.
func (t AttributeType) String() string {
	switch t {
	case AttribFloat32:
		return "Float32"
	case AttribFloat16:
		return "Float16"
	case AttribInt8:
		return "Int8"
	case AttribUint8:
		return "Uint8"
	case AttribInt16:
		return "Int16"
	case AttribUint16:
		return "Uint16"
	case AttribInt32:
		return "Int32"
	case AttribUint32:
		return "Uint32"
	default:
		return unknownString
	}
}

// VertexAttribute is one named field of a vertex.
type VertexAttribute struct {
	Name       string
	Offset     int
	Type       AttributeType
	Components int32
	Normalized bool
}

// VertexFormat is the memory layout of one vertex.
type VertexFormat struct {
	Stride     int
	Attributes []VertexAttribute
}

// VertexSource is one input stream of a draw call.
// Build one with VertexBuffer, InstancedVertexBuffer or VertexMarker.
type VertexSource struct {
	buffer      Buffer
	format      *VertexFormat
	perInstance bool
	length      int
}

// VertexBuffer returns a per-vertex source reading buf with layout format.
func VertexBuffer(buf Buffer, format *VertexFormat) VertexSource {
	return VertexSource{buffer: buf, format: format}
}

// InstancedVertexBuffer returns a source advancing once per instance.
func InstancedVertexBuffer(buf Buffer, format *VertexFormat) VertexSource {
	return VertexSource{buffer: buf, format: format, perInstance: true}
}

// VertexMarker returns a source without storage. It only takes part in
// vertex or instance count inference.
func VertexMarker(n int, perInstance bool) VertexSource {
	return VertexSource{length: n, perInstance: perInstance}
}

// Len returns the number of vertices, or instances, the source provides.
func (s VertexSource) Len() int {
	if s.buffer != nil {
		return s.buffer.ElementCount()
	}
	return s.length
}

// PerInstance reports whether the source advances once per instance.
func (s VertexSource) PerInstance() bool { return s.perInstance }

// Buffer returns the backing buffer, or nil for a marker.
func (s VertexSource) Buffer() Buffer { return s.buffer }
