// Package cache provides the LRU cache that keeps device objects, such
// as sampler objects, alive across draw calls.
//
//	c := cache.New[SamplerBehavior, uint32](32, func(_ SamplerBehavior, id uint32) {
//	    dev.DeleteSampler(id)
//	})
//	id := c.GetOrCreate(behavior, create)
//	...
//	c.Trim() // once the draw has been issued
//
// Insertion never evicts; Trim does. Cache is safe for concurrent use
// and must not be copied after creation.
package cache
