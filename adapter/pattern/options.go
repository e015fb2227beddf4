package pattern

// WithCache sets the shared pattern cache populated by successful
// compilations.
func WithCache(c Cache) Option {
	return func(co *Compiler) {
		co.cache = c
	}
}

// Option configures compiler behavior through the functional options pattern.
type Option func(*Compiler)
