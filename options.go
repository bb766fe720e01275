package gosiegeom

// Option configures a query such as NewDelaunay2 or MinAreaCircle2.
//
// Example:
//
//	d, err := gosiegeom.NewDelaunay2(points, gosiegeom.WithShuffle(42))
type Option func(*options)

type options struct {
	shuffle   bool
	seed      int64
	exactOnly bool
}

func defaultOptions() options {
	return options{seed: 1}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithShuffle randomizes the insertion order with the given seed. The
// randomized incremental solvers (MinAreaCircle2, MinVolumeSphere3) always
// shuffle; for them the option only picks the seed.
func WithShuffle(seed int64) Option {
	return func(o *options) {
		o.shuffle = true
		o.seed = seed
	}
}

// WithExactOnly skips the interval filter and evaluates every predicate in
// exact rational arithmetic. Results are identical; only speed differs.
func WithExactOnly() Option {
	return func(o *options) {
		o.exactOnly = true
	}
}
