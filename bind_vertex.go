package gldraw

// attribState mirrors one vertex attribute location.
type attribState struct {
	buffer     uint32
	offset     int
	stride     int
	typ        AttributeType
	components int32
	normalized bool
	divisor    uint32
	enabled    bool
}

// sourceCounts is what the vertex sources say about the draw's size.
type sourceCounts struct {
	vertices      int
	verticesKnown bool
	instances     int
	instanced     bool
}

// bindVertices binds every buffer-backed source to the attribute
// locations prog declares and infers the vertex and instance counts.
// Per-vertex sources of different lengths leave the vertex count unknown;
// per-instance sources of different lengths are an error.
func (c *Context) bindVertices(prog Program, sources []VertexSource, indices IndicesSource) (sourceCounts, error) {
	var counts sourceCounts
	vertexSeen := false
	used := make([]bool, len(c.attribs))

	for _, src := range sources {
		n := src.Len()
		if src.perInstance {
			if counts.instanced && counts.instances != n {
				return counts, ErrInstancesCountMismatch
			}
			counts.instances, counts.instanced = n, true
		} else {
			switch {
			case !vertexSeen:
				counts.vertices, counts.verticesKnown, vertexSeen = n, true, true
			case counts.vertices != n:
				counts.verticesKnown = false
			}
		}

		if src.buffer == nil || src.format == nil {
			continue
		}
		used = c.bindSource(prog, src, used)
		c.fences.addBuffer(src.buffer)
	}

	for loc := range c.attribs {
		a := &c.attribs[loc]
		if a.enabled && (loc >= len(used) || !used[loc]) {
			c.dev.DisableVertexAttribArray(uint32(loc))
			a.enabled = false
		}
	}

	if indices.kind == IndicesBuffer {
		c.bindBuffer(BufferElementArray, &c.state.ElementBuffer, indices.buffer.BufferID())
		c.fences.addBuffer(indices.buffer)
	}
	return counts, nil
}

// bindSource sets up the attributes of one source and marks their
// locations in used, which is grown as needed.
func (c *Context) bindSource(prog Program, src VertexSource, used []bool) []bool {
	id := src.buffer.BufferID()
	var divisor uint32
	if src.perInstance {
		divisor = 1
	}

	for _, attr := range src.format.Attributes {
		info, ok := prog.Attribute(attr.Name)
		if !ok {
			continue
		}
		loc := int(info.Location)
		for len(c.attribs) <= loc {
			c.attribs = append(c.attribs, attribState{})
		}
		for len(used) <= loc {
			used = append(used, false)
		}
		used[loc] = true

		a := &c.attribs[loc]
		want := attribState{
			buffer:     id,
			offset:     src.buffer.OffsetBytes() + attr.Offset,
			stride:     src.format.Stride,
			typ:        attr.Type,
			components: attr.Components,
			normalized: attr.Normalized,
		}
		if a.buffer != want.buffer || a.offset != want.offset || a.stride != want.stride ||
			a.typ != want.typ || a.components != want.components || a.normalized != want.normalized {
			c.bindBuffer(BufferArray, &c.state.ArrayBuffer, id)
			c.dev.VertexAttribPointer(info.Location, want.components, want.typ, want.normalized, want.stride, want.offset)
			a.buffer, a.offset, a.stride = want.buffer, want.offset, want.stride
			a.typ, a.components, a.normalized = want.typ, want.components, want.normalized
		}
		if a.divisor != divisor {
			c.dev.VertexAttribDivisor(info.Location, divisor)
			a.divisor = divisor
		}
		if !a.enabled {
			c.dev.EnableVertexAttribArray(info.Location)
			a.enabled = true
		}
	}
	return used
}

func (c *Context) bindBuffer(target BufferTarget, mirror *uint32, id uint32) {
	if *mirror != id {
		c.dev.BindBuffer(target, id)
		*mirror = id
	}
}
