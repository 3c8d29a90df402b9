package gldraw

// Context issues draw calls against one device context.
//
// A Context owns the state mirror of its device. Use one Context per
// device context; two contexts never share a mirror.
//
// Context is NOT safe for concurrent use.
type Context struct {
	dev  Device
	caps Capabilities

	state    State
	programs map[uint32]*programCache
	attribs  []attribState
	samplers *samplerObjects
	fences   pendingFences
}

// programCache remembers what has been uploaded into one program object.
type programCache struct {
	uniforms map[int32]RawUniform
	// blocks maps a block index to its binding point.
	blocks map[uint32]uint32
}

func newProgramCache() *programCache {
	return &programCache{
		uniforms: make(map[int32]RawUniform),
		blocks:   make(map[uint32]uint32),
	}
}

// NewContext creates a Context issuing commands to dev.
//
// caps must describe dev; see opengl.QueryCapabilities. By default
// the mirror starts from DefaultState, which is correct for a device
// context nobody has used yet.
func NewContext(dev Device, caps Capabilities, opts ...Option) *Context {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	st := DefaultState()
	if o.initial != nil {
		st = *o.initial
	}
	if caps.Extensions == nil {
		caps.Extensions = map[string]bool{}
	}

	c := &Context{
		dev:      dev,
		caps:     caps,
		state:    st,
		programs: make(map[uint32]*programCache),
	}
	c.samplers = newSamplerObjects(c, o.samplerCacheLimit)

	l := Logger()
	propagateLogger(dev, l)
	l.Info("gldraw: context created",
		"version", caps.Version.String(),
		"textureUnits", caps.MaxCombinedTextureImageUnits,
		"uniformBufferBindings", caps.MaxUniformBufferBindings)
	return c
}

// Device returns the device the context issues commands to.
func (c *Context) Device() Device { return c.dev }

// Capabilities returns the capabilities the context was created with.
func (c *Context) Capabilities() Capabilities { return c.caps }

// State returns a copy of the mirrored device state.
func (c *Context) State() State { return c.state.Clone() }

// Resync replaces the mirror with s. Call it after code outside the
// Context changed device state. Uploaded uniform values and the vertex
// attribute mirror are forgotten as well.
func (c *Context) Resync(s State) {
	Logger().Warn("gldraw: state mirror resynced", "program", s.Program)
	c.state = s.Clone()
	clear(c.programs)
	c.attribs = c.attribs[:0]
}

// ForgetProgram drops the cached uniforms of a deleted program object.
func (c *Context) ForgetProgram(id uint32) {
	delete(c.programs, id)
	if c.state.Program == id {
		c.state.Program = 0
	}
}

// ForgetTexture updates the mirror after a texture object was deleted.
func (c *Context) ForgetTexture(id uint32) {
	c.state.forgetTexture(id)
}

// ForgetBuffer updates the mirror after a buffer object was deleted.
func (c *Context) ForgetBuffer(id uint32) {
	c.state.forgetBuffer(id)
	for i := range c.attribs {
		if c.attribs[i].buffer == id {
			c.attribs[i].buffer = 0
		}
	}
}

// ReleaseSamplers destroys every cached sampler object.
func (c *Context) ReleaseSamplers() {
	c.samplers.cache.Purge()
}

func (c *Context) programCache(id uint32) *programCache {
	pc, ok := c.programs[id]
	if !ok {
		pc = newProgramCache()
		c.programs[id] = pc
	}
	return pc
}

// setCap enables or disables flag when the mirror differs.
func (c *Context) setCap(flag Capability, mirror *bool, want bool) {
	if *mirror == want {
		return
	}
	if want {
		c.dev.Enable(flag)
	} else {
		c.dev.Disable(flag)
	}
	*mirror = want
}
