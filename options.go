package gldraw

// Option configures a Context during creation.
//
// Example:
//
//	// Mirror a context that already applied some state
//	ctx := gldraw.NewContext(dev, caps, gldraw.WithInitialState(st))
//
//	// Keep more sampler objects alive between draws
//	ctx := gldraw.NewContext(dev, caps, gldraw.WithSamplerCacheLimit(128))
type Option func(*options)

// options holds optional configuration for Context creation.
type options struct {
	initial           *State
	samplerCacheLimit int
}

// defaultOptions returns the default context options.
func defaultOptions() options {
	return options{
		initial:           nil, // DefaultState
		samplerCacheLimit: defaultSamplerCacheLimit,
	}
}

// WithInitialState starts the mirror from s instead of DefaultState.
// Use it when the device context has been configured before the
// Context is created.
func WithInitialState(s State) Option {
	return func(o *options) {
		st := s.Clone()
		o.initial = &st
	}
}

// WithSamplerCacheLimit sets how many sampler objects survive a draw.
// A limit of 0 keeps every sampler object alive.
func WithSamplerCacheLimit(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.samplerCacheLimit = n
		}
	}
}
