package gldraw

// Program is a linked shader program as seen by the draw core.
// The resource layer introspects the program once after linking.
type Program interface {
	// ProgramID returns the device object name.
	ProgramID() uint32

	// Uniform looks up a plain uniform by name.
	Uniform(name string) (UniformInfo, bool)

	// UniformBlock looks up a uniform block by name.
	UniformBlock(name string) (*UniformBlock, bool)

	// Attribute looks up a vertex input by name.
	Attribute(name string) (AttributeInfo, bool)

	HasTessellationShaders() bool

	// HasSRGBOutput reports whether the fragment stage already writes sRGB values.
	HasSRGBOutput() bool
}

// UniformInfo describes a plain uniform of a program.
type UniformInfo struct {
	Location int32
	Type     UniformType
	// Size is the array length; 1 for non-array uniforms.
	Size int
}

// UniformBlock describes a uniform block of a program.
type UniformBlock struct {
	// Index is the block index inside the program.
	Index uint32
	// Size is the minimum buffer size in bytes.
	Size    int
	Members []BlockMember
}

// BlockMember is one field of a uniform block.
type BlockMember struct {
	Name   string
	Offset int
	Type   UniformType
	// Size is the array length; 1 for non-array members.
	Size int
}

// Member returns the member named name.
func (b *UniformBlock) Member(name string) (BlockMember, bool) {
	for _, m := range b.Members {
		if m.Name == name {
			return m, true
		}
	}
	return BlockMember{}, false
}

// AttributeInfo describes a vertex input of a program.
type AttributeInfo struct {
	Location uint32
	Type     UniformType
}

// ProgramInfo is the plain Program implementation filled in by a linker.
type ProgramInfo struct {
	ID           uint32
	Uniforms     map[string]UniformInfo
	Blocks       map[string]*UniformBlock
	Attributes   map[string]AttributeInfo
	Tessellation bool
	SRGBOutput   bool
}

func (p *ProgramInfo) ProgramID() uint32 { return p.ID }

func (p *ProgramInfo) Uniform(name string) (UniformInfo, bool) {
	u, ok := p.Uniforms[name]
	return u, ok
}

func (p *ProgramInfo) UniformBlock(name string) (*UniformBlock, bool) {
	b, ok := p.Blocks[name]
	return b, ok
}

func (p *ProgramInfo) Attribute(name string) (AttributeInfo, bool) {
	a, ok := p.Attributes[name]
	return a, ok
}

func (p *ProgramInfo) HasTessellationShaders() bool { return p.Tessellation }
func (p *ProgramInfo) HasSRGBOutput() bool          { return p.SRGBOutput }
