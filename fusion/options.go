package fusion

// Options are filter options
type Options struct {
	// Epsilon guards kernel divisions
	Epsilon float64
	// Gate is innovation gate size in standard deviations; 0 disables gating
	Gate float64
}

// Option configures filter options
type Option func(*Options)

// WithEpsilon sets kernel epsilon
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		o.Epsilon = eps
	}
}

// WithGate sets innovation gate size in standard deviations
func WithGate(sigmas float64) Option {
	return func(o *Options) {
		o.Gate = sigmas
	}
}

// DefaultOptions returns default filter options
func DefaultOptions() Options {
	return Options{
		Epsilon: 1e-9,
		Gate:    5.0,
	}
}
