package gldraw

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/gldraw/internal/cache"
)

// SamplerBehavior is the sampling state of a sampler object.
// Equal behaviors share one device object.
type SamplerBehavior struct {
	WrapS gputypes.AddressMode
	WrapT gputypes.AddressMode
	WrapR gputypes.AddressMode

	MinFilter    gputypes.FilterMode
	MagFilter    gputypes.FilterMode
	MipmapFilter gputypes.FilterMode

	// MaxAnisotropy of 1 or less disables anisotropic filtering.
	MaxAnisotropy uint16

	// Compare enables depth comparison when non-zero.
	Compare gputypes.CompareFunction
}

// DefaultSamplerBehavior returns repeating, trilinear sampling.
func DefaultSamplerBehavior() SamplerBehavior {
	return SamplerBehavior{
		WrapS:         gputypes.AddressModeRepeat,
		WrapT:         gputypes.AddressModeRepeat,
		WrapR:         gputypes.AddressModeRepeat,
		MinFilter:     gputypes.FilterModeLinear,
		MagFilter:     gputypes.FilterModeLinear,
		MipmapFilter:  gputypes.FilterModeLinear,
		MaxAnisotropy: 1,
	}
}

// defaultSamplerCacheLimit is the number of sampler objects kept alive
// between draws.
const defaultSamplerCacheLimit = 32

// samplerObjects maps behaviors to device sampler objects.
type samplerObjects struct {
	ctx   *Context
	cache *cache.Cache[SamplerBehavior, uint32]
}

func newSamplerObjects(c *Context, limit int) *samplerObjects {
	s := &samplerObjects{ctx: c}
	s.cache = cache.New(limit, s.evict)
	return s
}

// get returns the sampler object for b, creating it on first use.
func (s *samplerObjects) get(b SamplerBehavior) uint32 {
	created := false
	id := s.cache.GetOrCreate(b, func() uint32 {
		created = true
		return s.ctx.dev.CreateSampler(b)
	})
	// The create func runs under the cache lock; log once it is released.
	if created {
		Logger().Debug("gldraw: sampler created", "sampler", id, "cached", s.cache.Len())
	}
	return id
}

// trim destroys the least recently used objects above the cache limit.
func (s *samplerObjects) trim() {
	s.cache.Trim()
}

func (s *samplerObjects) evict(_ SamplerBehavior, id uint32) {
	s.ctx.dev.DeleteSampler(id)
	s.ctx.state.forgetSampler(id)
	Logger().Debug("gldraw: sampler evicted", "sampler", id)
}
